package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Milestone is one completable unit inside a phase. Order is assigned
// globally per roadmap, strictly increasing in phase-then-milestone
// declaration order, and never reused. CompletedAt is non-nil iff Completed.
type Milestone struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoadmapID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"roadmap_id"`
	Roadmap     *Roadmap       `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
	PhaseID     string         `gorm:"column:phase_id;not null;index" json:"phase_id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description;not null" json:"description"`
	Order       int            `gorm:"column:sort_order;not null" json:"order"`
	Completed   bool           `gorm:"column:completed;not null;default:false" json:"completed"`
	Resources   datatypes.JSON `gorm:"column:resources;type:jsonb;not null" json:"resources"`
	CompletedAt *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Milestone) TableName() string { return "milestones" }
