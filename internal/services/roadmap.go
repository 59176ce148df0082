package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathforge/pathforge-backend/internal/apperr"
	"github.com/pathforge/pathforge-backend/internal/generation"
	"github.com/pathforge/pathforge-backend/internal/logger"
	"github.com/pathforge/pathforge-backend/internal/repos"
	"github.com/pathforge/pathforge-backend/internal/types"
)

// RoadmapDetail is the composite view for one roadmap: the stored row, its
// milestones in global order, the owner's progress record, and the derived
// per-phase statuses.
type RoadmapDetail struct {
	Roadmap       *types.Roadmap      `json:"roadmap"`
	Milestones    []*types.Milestone  `json:"milestones"`
	Progress      *types.UserProgress `json:"progress,omitempty"`
	PhaseStatuses []PhaseStatus       `json:"phaseStatuses"`
	Unlocked      map[uuid.UUID]bool  `json:"unlocked"`
}

type RoadmapService interface {
	GetUserRoadmaps(ctx context.Context, userID uuid.UUID) ([]*types.Roadmap, error)
	GetRoadmapDetail(ctx context.Context, userID, roadmapID uuid.UUID) (*RoadmapDetail, error)
	DeleteRoadmap(ctx context.Context, userID, roadmapID uuid.UUID) error
}

type roadmapService struct {
	db            *gorm.DB
	log           *logger.Logger
	roadmapRepo   repos.RoadmapRepo
	milestoneRepo repos.MilestoneRepo
	progressRepo  repos.UserProgressRepo
}

func NewRoadmapService(
	db *gorm.DB,
	baseLog *logger.Logger,
	roadmapRepo repos.RoadmapRepo,
	milestoneRepo repos.MilestoneRepo,
	progressRepo repos.UserProgressRepo,
) RoadmapService {
	return &roadmapService{
		db:            db,
		log:           baseLog.With("service", "RoadmapService"),
		roadmapRepo:   roadmapRepo,
		milestoneRepo: milestoneRepo,
		progressRepo:  progressRepo,
	}
}

func (rs *roadmapService) GetUserRoadmaps(ctx context.Context, userID uuid.UUID) ([]*types.Roadmap, error) {
	roadmaps, err := rs.roadmapRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list roadmaps: %w", err)
	}
	if roadmaps == nil {
		// Serializes as [] rather than null.
		roadmaps = []*types.Roadmap{}
	}
	return roadmaps, nil
}

// getOwned fetches a roadmap and enforces ownership. Another user's roadmap
// is reported as not found rather than forbidden, so ids cannot be probed.
func (rs *roadmapService) getOwned(ctx context.Context, tx *gorm.DB, userID, roadmapID uuid.UUID) (*types.Roadmap, error) {
	found, err := rs.roadmapRepo.GetByIDs(ctx, tx, []uuid.UUID{roadmapID})
	if err != nil {
		return nil, fmt.Errorf("load roadmap: %w", err)
	}
	if len(found) == 0 || found[0] == nil || found[0].UserID != userID {
		return nil, apperr.NotFound(fmt.Errorf("roadmap %s not found", roadmapID))
	}
	return found[0], nil
}

func (rs *roadmapService) GetRoadmapDetail(ctx context.Context, userID, roadmapID uuid.UUID) (*RoadmapDetail, error) {
	roadmap, err := rs.getOwned(ctx, nil, userID, roadmapID)
	if err != nil {
		return nil, err
	}

	milestones, err := rs.milestoneRepo.GetByRoadmapID(ctx, nil, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("load milestones: %w", err)
	}

	progress, err := rs.progressRepo.GetByUserAndRoadmap(ctx, nil, userID, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	var phases []generation.Phase
	if len(roadmap.Phases) > 0 {
		if err := json.Unmarshal(roadmap.Phases, &phases); err != nil {
			rs.log.Error("Stored phases failed to decode", "error", err, "roadmap_id", roadmapID)
			return nil, fmt.Errorf("decode phases: %w", err)
		}
	}

	return &RoadmapDetail{
		Roadmap:       roadmap,
		Milestones:    milestones,
		Progress:      progress,
		PhaseStatuses: DerivePhaseStatuses(phases, milestones),
		Unlocked:      DeriveUnlockedMilestones(phases, milestones),
	}, nil
}

func (rs *roadmapService) DeleteRoadmap(ctx context.Context, userID, roadmapID uuid.UUID) error {
	if _, err := rs.getOwned(ctx, nil, userID, roadmapID); err != nil {
		return err
	}
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.milestoneRepo.DeleteByRoadmapIDs(ctx, tx, []uuid.UUID{roadmapID}); err != nil {
			return fmt.Errorf("delete milestones: %w", err)
		}
		if err := rs.progressRepo.DeleteByRoadmapIDs(ctx, tx, []uuid.UUID{roadmapID}); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		if err := rs.roadmapRepo.DeleteByIDs(ctx, tx, []uuid.UUID{roadmapID}); err != nil {
			return fmt.Errorf("delete roadmap: %w", err)
		}
		return nil
	})
	if err != nil {
		rs.log.Error("Roadmap deletion failed", "error", err, "roadmap_id", roadmapID)
		return apperr.Persistence(err)
	}
	return nil
}
