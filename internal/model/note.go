package model

// swagger:model Note
type Note struct {
	BaseModel
	UserID  uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:longtext" json:"content"`
	Pinned  bool   `gorm:"default:false" json:"pinned"`
}

func (Note) TableName() string {
	return "notes"
}
