package repository

import (
	"errors"
	"mentora_backend/internal/model"
	"mentora_backend/internal/util"

	"gorm.io/gorm"
)

type PlanRepository struct {
	DB *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{DB: db}
}

// CreateGraph 单事务写入整张规划图：要么全部提交，要么全部回滚，
// 读者永远看不到半个规划。
func (r *PlanRepository) CreateGraph(plan *model.Plan) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Resources").Create(plan).Error; err != nil {
			return err
		}
		for i := range plan.Resources {
			if err := tx.Create(&plan.Resources[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByIDAndUser 所有查询按 userId 限定授权范围
func (r *PlanRepository) FindByIDAndUser(id string, userID uint) (*model.Plan, error) {
	var plan model.Plan
	err := r.DB.
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Steps.Checkpoints", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Steps.Skills").
		Preload("Resources").
		Where("id = ? AND user_id = ?", id, userID).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) ListByUser(userID uint, kind model.PlanKind) ([]model.Plan, error) {
	var plans []model.Plan
	query := r.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Find(&plans).Error
	return plans, err
}

// SaveProgress 带乐观锁的进度写回：版本号不匹配说明有并发写者，
// 整个事务回滚并返回 ErrVersionConflict，由调用方决定重试。
// leafUpdate 负责持久化本次变更的叶子行（检查点/技能/资源）。
func (r *PlanRepository) SaveProgress(plan *model.Plan, expectedVersion int, leafUpdate func(tx *gorm.DB) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Plan{}).
			Where("id = ? AND version = ?", plan.ID, expectedVersion).
			Updates(map[string]interface{}{
				"status":   plan.Status,
				"progress": plan.Progress,
				"version":  expectedVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrVersionConflict
		}

		for i := range plan.Steps {
			step := &plan.Steps[i]
			if err := tx.Model(&model.PlanStep{}).
				Where("id = ?", step.ID).
				Updates(map[string]interface{}{
					"status":   step.Status,
					"progress": step.Progress,
				}).Error; err != nil {
				return err
			}
		}

		if leafUpdate != nil {
			return leafUpdate(tx)
		}
		return nil
	})
}

// ArchiveSuperseded 新规划生成时归档同类型的旧活跃规划
func (r *PlanRepository) ArchiveSuperseded(userID uint, kind model.PlanKind, exceptID string) error {
	return r.DB.Model(&model.Plan{}).
		Where("user_id = ? AND kind = ? AND status = ? AND id <> ?", userID, kind, model.PlanActive, exceptID).
		Update("status", model.PlanArchived).Error
}
