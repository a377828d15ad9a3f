package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrPermissionDenied  = errors.New("permission denied")

	ErrPlanNotFound    = errors.New("plan not found")
	ErrStepNotFound    = errors.New("step not found")
	ErrAttemptNotFound = errors.New("assessment attempt not found")

	// ErrVersionConflict 乐观锁冲突，调用方可重试
	ErrVersionConflict = errors.New("plan was modified concurrently, please retry")

	// ErrAIUnavailable AI 服务不可用或超时，可重试；不会留下半个规划
	ErrAIUnavailable = errors.New("ai service unavailable")

	// ErrInvalidAIResponse AI 响应不满足最低结构门槛，生成失败可重试
	ErrInvalidAIResponse = errors.New("ai response failed validation")
)
