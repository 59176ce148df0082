package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Roadmap status values.
const (
	RoadmapStatusActive    = "active"
	RoadmapStatusPaused    = "paused"
	RoadmapStatusCompleted = "completed"
)

// Roadmap stores the generated plan. Phases is the generated phase list with
// milestones stripped out; milestones live in their own table keyed by
// roadmap_id + phase_id.
type Roadmap struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	Topic         string         `gorm:"column:topic;not null" json:"topic"`
	Goal          string         `gorm:"column:goal;not null" json:"goal"`
	SkillLevel    string         `gorm:"column:skill_level;not null" json:"skill_level"`
	TimePerWeek   int            `gorm:"column:time_per_week;not null" json:"time_per_week"`
	Duration      int            `gorm:"column:duration;not null" json:"duration"`
	LearningStyle string         `gorm:"column:learning_style;not null" json:"learning_style"`
	Details       string         `gorm:"column:details" json:"details"`
	Phases        datatypes.JSON `gorm:"column:phases;type:jsonb;not null" json:"phases"`
	Status        string         `gorm:"column:status;not null;default:'active'" json:"status"`
	Progress      int            `gorm:"column:progress;not null;default:0" json:"progress"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Roadmap) TableName() string { return "roadmaps" }
