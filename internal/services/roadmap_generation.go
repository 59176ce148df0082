package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pathforge/pathforge-backend/internal/apperr"
	"github.com/pathforge/pathforge-backend/internal/generation"
	"github.com/pathforge/pathforge-backend/internal/logger"
	"github.com/pathforge/pathforge-backend/internal/repos"
	"github.com/pathforge/pathforge-backend/internal/types"
)

// RoadmapGenerationService runs the full pipeline for one request: prompt →
// model call → repair → parse → link resolution → materialization. The chain
// is sequential; the model call is the only slow step and carries the
// caller's context for timeout propagation.
type RoadmapGenerationService interface {
	Generate(ctx context.Context, userID uuid.UUID, input generation.FormInput) (*types.Roadmap, *generation.Document, error)
}

type roadmapGenerationService struct {
	db            *gorm.DB
	log           *logger.Logger
	model         ModelClient
	roadmapRepo   repos.RoadmapRepo
	milestoneRepo repos.MilestoneRepo
	progressRepo  repos.UserProgressRepo
}

func NewRoadmapGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	model ModelClient,
	roadmapRepo repos.RoadmapRepo,
	milestoneRepo repos.MilestoneRepo,
	progressRepo repos.UserProgressRepo,
) RoadmapGenerationService {
	return &roadmapGenerationService{
		db:            db,
		log:           baseLog.With("service", "RoadmapGenerationService"),
		model:         model,
		roadmapRepo:   roadmapRepo,
		milestoneRepo: milestoneRepo,
		progressRepo:  progressRepo,
	}
}

func (gs *roadmapGenerationService) Generate(ctx context.Context, userID uuid.UUID, input generation.FormInput) (*types.Roadmap, *generation.Document, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, apperr.Validation(err)
	}

	prompt := generation.BuildPrompt(input)

	raw, err := gs.model.GenerateText(ctx, prompt)
	if err != nil {
		gs.log.Error("Model call failed", "error", err, "topic", input.Topic)
		return nil, nil, apperr.Provider(err)
	}

	repaired := generation.Repair(raw)

	doc, err := generation.Parse(repaired)
	if err != nil {
		var mErr *apperr.MalformedRoadmap
		if errors.As(err, &mErr) {
			// The excerpt stays in the logs; the user gets a generic message.
			gs.log.Error("Model returned malformed roadmap document", "error", mErr.Err, "excerpt", mErr.Excerpt)
		}
		return nil, nil, err
	}

	resolved := generation.ResolveResourceLinks(doc)

	roadmap, err := gs.materialize(ctx, userID, input, resolved)
	if err != nil {
		return nil, nil, err
	}
	return roadmap, resolved, nil
}

// materialize persists the resolved document as one logical unit: the
// roadmap, its milestones with a strictly increasing global order starting at
// 1, and the initial progress record. A single transaction gives the
// all-or-nothing guarantee; no partial roadmap is ever reachable.
func (gs *roadmapGenerationService) materialize(ctx context.Context, userID uuid.UUID, input generation.FormInput, doc *generation.Document) (*types.Roadmap, error) {
	phasesJSON, err := json.Marshal(doc.StrippedPhases())
	if err != nil {
		return nil, fmt.Errorf("marshal phases: %w", err)
	}

	now := time.Now()
	roadmap := &types.Roadmap{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         doc.Title,
		Topic:         input.Topic,
		Goal:          input.Goal,
		SkillLevel:    input.SkillLevel,
		TimePerWeek:   input.TimePerWeek,
		Duration:      input.Duration,
		LearningStyle: strings.Join(input.LearningStyle, ","),
		Details:       input.Details,
		Phases:        datatypes.JSON(phasesJSON),
		Status:        types.RoadmapStatusActive,
		Progress:      0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	milestones := make([]*types.Milestone, 0)
	order := 1
	for _, phase := range doc.Phases {
		for _, m := range phase.Milestones {
			resourcesJSON, mErr := json.Marshal(m.Resources)
			if mErr != nil {
				return nil, fmt.Errorf("marshal resources: %w", mErr)
			}
			milestones = append(milestones, &types.Milestone{
				ID:          uuid.New(),
				RoadmapID:   roadmap.ID,
				PhaseID:     phase.ID,
				Title:       m.Title,
				Description: m.Description,
				Order:       order,
				Completed:   false,
				Resources:   datatypes.JSON(resourcesJSON),
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			order++
		}
	}

	progress := &types.UserProgress{
		ID:           uuid.New(),
		UserID:       userID,
		RoadmapID:    roadmap.ID,
		TotalHours:   0,
		Streak:       0,
		LastActivity: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := gs.roadmapRepo.Create(ctx, tx, []*types.Roadmap{roadmap}); err != nil {
			return fmt.Errorf("create roadmap: %w", err)
		}
		if _, err := gs.milestoneRepo.Create(ctx, tx, milestones); err != nil {
			return fmt.Errorf("create milestones: %w", err)
		}
		if _, err := gs.progressRepo.Create(ctx, tx, []*types.UserProgress{progress}); err != nil {
			return fmt.Errorf("create user progress: %w", err)
		}
		return nil
	})
	if err != nil {
		gs.log.Error("Roadmap materialization failed", "error", err, "roadmap_id", roadmap.ID)
		return nil, apperr.Persistence(err)
	}
	return roadmap, nil
}
