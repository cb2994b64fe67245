package models

type CategoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true;index"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
