package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathforge/pathforge-backend/internal/logger"
	"github.com/pathforge/pathforge-backend/internal/types"
)

type UserProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.UserProgress) ([]*types.UserProgress, error)
	GetByUserAndRoadmap(ctx context.Context, tx *gorm.DB, userID, roadmapID uuid.UUID) (*types.UserProgress, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserProgress, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, recordID uuid.UUID, fields map[string]any) error
	DeleteByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) error
}

type userProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserProgressRepo {
	return &userProgressRepo{db: db, log: baseLog.With("repo", "UserProgressRepo")}
}

func (pr *userProgressRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.UserProgress) ([]*types.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(records) == 0 {
		return []*types.UserProgress{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (pr *userProgressRepo) GetByUserAndRoadmap(ctx context.Context, tx *gorm.DB, userID, roadmapID uuid.UUID) (*types.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.UserProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (pr *userProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.UserProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *userProgressRepo) UpdateFields(ctx context.Context, tx *gorm.DB, recordID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.UserProgress{}).
		Where("id = ?", recordID).
		Updates(fields).Error
}

func (pr *userProgressRepo) DeleteByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(roadmapIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("roadmap_id IN ?", roadmapIDs).
		Delete(&types.UserProgress{}).Error
}
