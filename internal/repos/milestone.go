package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathforge/pathforge-backend/internal/logger"
	"github.com/pathforge/pathforge-backend/internal/types"
)

type MilestoneRepo interface {
	Create(ctx context.Context, tx *gorm.DB, milestones []*types.Milestone) ([]*types.Milestone, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, milestoneIDs []uuid.UUID) ([]*types.Milestone, error)
	// GetByRoadmapID returns milestones ordered by their global sort order.
	GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]*types.Milestone, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, milestoneID uuid.UUID, fields map[string]any) error
	DeleteByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) error
}

type milestoneRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMilestoneRepo(db *gorm.DB, baseLog *logger.Logger) MilestoneRepo {
	return &milestoneRepo{db: db, log: baseLog.With("repo", "MilestoneRepo")}
}

func (mr *milestoneRepo) Create(ctx context.Context, tx *gorm.DB, milestones []*types.Milestone) ([]*types.Milestone, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(milestones) == 0 {
		return []*types.Milestone{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

func (mr *milestoneRepo) GetByIDs(ctx context.Context, tx *gorm.DB, milestoneIDs []uuid.UUID) ([]*types.Milestone, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Milestone
	if len(milestoneIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", milestoneIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *milestoneRepo) GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]*types.Milestone, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Milestone
	if err := transaction.WithContext(ctx).
		Where("roadmap_id = ?", roadmapID).
		Order("sort_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *milestoneRepo) UpdateFields(ctx context.Context, tx *gorm.DB, milestoneID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Milestone{}).
		Where("id = ?", milestoneID).
		Updates(fields).Error
}

func (mr *milestoneRepo) DeleteByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(roadmapIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("roadmap_id IN ?", roadmapIDs).
		Delete(&types.Milestone{}).Error
}
