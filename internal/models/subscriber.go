// internal/models/subscriber.go
package models

type EmailSubscriber struct {
	BaseModel
	Email    string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name     string `json:"name" gorm:"size:255"`
	Source   string `json:"source" gorm:"size:50;default:'website'"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}
