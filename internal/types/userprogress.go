package types

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress holds one record per (user, roadmap) pair, created once at
// generation time.
type UserProgress struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_user_roadmap,unique" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	RoadmapID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_roadmap,unique" json:"roadmap_id"`
	Roadmap      *Roadmap  `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
	TotalHours   int       `gorm:"column:total_hours;not null;default:0" json:"total_hours"`
	Streak       int       `gorm:"column:streak;not null;default:0" json:"streak"`
	LastActivity time.Time `gorm:"column:last_activity;not null" json:"last_activity"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserProgress) TableName() string { return "user_progress" }
