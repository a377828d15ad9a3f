package repository

import (
	"mentora_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(task *model.Task) error {
	return r.DB.Create(task).Error
}

func (r *TaskRepository) FindByIDAndUser(id, userID uint) (*model.Task, error) {
	var task model.Task
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	return &task, err
}

func (r *TaskRepository) FindByUserID(userID uint) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.DB.Where("user_id = ?", userID).Order("scheduled_date ASC, priority DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) FindByUserAndDate(userID uint, date time.Time) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.DB.Where("user_id = ? AND scheduled_date >= ? AND scheduled_date < ?",
		userID, date.Format("2006-01-02"), date.AddDate(0, 0, 1).Format("2006-01-02")).
		Order("priority DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(task *model.Task) error {
	return r.DB.Save(task).Error
}

func (r *TaskRepository) Delete(id, userID uint) error {
	res := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountInRange 统计时间区间内的任务总数与完成数，供综合得分使用
func (r *TaskRepository) CountInRange(userID uint, from, to time.Time) (total, done int64, err error) {
	if err = r.DB.Model(&model.Task{}).
		Where("user_id = ? AND scheduled_date >= ? AND scheduled_date < ?", userID, from, to).
		Count(&total).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.Task{}).
		Where("user_id = ? AND scheduled_date >= ? AND scheduled_date < ? AND status = ?", userID, from, to, model.TaskDone).
		Count(&done).Error
	return
}
