package model

import "time"

type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Nickname     string    `gorm:"size:64;not null" json:"nickname"`
	Email        string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Password     string    `gorm:"size:128" json:"-"`
	ProfileImage *string   `gorm:"type:mediumtext" json:"profileImage,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
