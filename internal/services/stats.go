package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathforge/pathforge-backend/internal/logger"
	"github.com/pathforge/pathforge-backend/internal/repos"
	"github.com/pathforge/pathforge-backend/internal/types"
)

// UserStats is the aggregate dashboard view across all of a user's roadmaps.
type UserStats struct {
	Streak              int `json:"streak"`
	CompletedMilestones int `json:"completedMilestones"`
	TotalMilestones     int `json:"totalMilestones"`
	TotalHours          int `json:"totalHours"`
	CompletedProjects   int `json:"completedProjects"`
	TotalRoadmaps       int `json:"totalRoadmaps"`
	ActiveRoadmaps      int `json:"activeRoadmaps"`
}

type StatsService interface {
	GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error)
}

type statsService struct {
	db            *gorm.DB
	log           *logger.Logger
	roadmapRepo   repos.RoadmapRepo
	milestoneRepo repos.MilestoneRepo
	progressRepo  repos.UserProgressRepo
}

func NewStatsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	roadmapRepo repos.RoadmapRepo,
	milestoneRepo repos.MilestoneRepo,
	progressRepo repos.UserProgressRepo,
) StatsService {
	return &statsService{
		db:            db,
		log:           baseLog.With("service", "StatsService"),
		roadmapRepo:   roadmapRepo,
		milestoneRepo: milestoneRepo,
		progressRepo:  progressRepo,
	}
}

func (ss *statsService) GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	roadmaps, err := ss.roadmapRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list roadmaps: %w", err)
	}

	stats := &UserStats{
		// Streak tracking isn't wired to real activity yet; the dashboard
		// shows a fixed value until it is.
		// TODO: derive streak from user_progress.last_activity.
		Streak:        12,
		TotalRoadmaps: len(roadmaps),
	}

	for _, r := range roadmaps {
		if r == nil {
			continue
		}
		if r.Status == types.RoadmapStatusActive {
			stats.ActiveRoadmaps++
		}
		milestones, err := ss.milestoneRepo.GetByRoadmapID(ctx, nil, r.ID)
		if err != nil {
			return nil, fmt.Errorf("load milestones for roadmap %s: %w", r.ID, err)
		}
		stats.TotalMilestones += len(milestones)
		for _, m := range milestones {
			if m != nil && m.Completed {
				stats.CompletedMilestones++
			}
		}
	}

	records, err := ss.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress records: %w", err)
	}
	for _, p := range records {
		if p != nil {
			stats.TotalHours += p.TotalHours
		}
	}

	// Rough proxy until roadmaps carry explicit project milestones.
	stats.CompletedProjects = stats.CompletedMilestones / 4
	return stats, nil
}
