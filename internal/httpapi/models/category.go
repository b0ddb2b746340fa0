package models

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:50;not null"`
	Name string `json:"name" gorm:"size:200;not null"`
}

func (Category) TableName() string {
	return "categories"
}
