package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathforge/pathforge-backend/internal/apperr"
	"github.com/pathforge/pathforge-backend/internal/generation"
	"github.com/pathforge/pathforge-backend/internal/logger"
	"github.com/pathforge/pathforge-backend/internal/repos"
	"github.com/pathforge/pathforge-backend/internal/types"
)

// Phase status values for the derived view.
const (
	PhaseStatusCompleted  = "completed"
	PhaseStatusInProgress = "in-progress"
	PhaseStatusUpcoming   = "upcoming"
)

type ProgressService interface {
	// ToggleMilestone flips a milestone's completed flag and recomputes the
	// owning roadmap's progress percentage.
	ToggleMilestone(ctx context.Context, milestoneID uuid.UUID) (*types.Milestone, error)
}

type progressService struct {
	db            *gorm.DB
	log           *logger.Logger
	roadmapRepo   repos.RoadmapRepo
	milestoneRepo repos.MilestoneRepo

	// Toggle runs read-recompute-write; two concurrent toggles on the same
	// roadmap would otherwise lose one update.
	locks *roadmapLocker
}

func NewProgressService(
	db *gorm.DB,
	baseLog *logger.Logger,
	roadmapRepo repos.RoadmapRepo,
	milestoneRepo repos.MilestoneRepo,
) ProgressService {
	return &progressService{
		db:            db,
		log:           baseLog.With("service", "ProgressService"),
		roadmapRepo:   roadmapRepo,
		milestoneRepo: milestoneRepo,
		locks:         newRoadmapLocker(),
	}
}

func (ps *progressService) ToggleMilestone(ctx context.Context, milestoneID uuid.UUID) (*types.Milestone, error) {
	found, err := ps.milestoneRepo.GetByIDs(ctx, nil, []uuid.UUID{milestoneID})
	if err != nil {
		return nil, fmt.Errorf("load milestone: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apperr.NotFound(fmt.Errorf("milestone %s not found", milestoneID))
	}
	roadmapID := found[0].RoadmapID

	unlock := ps.locks.lock(roadmapID)
	defer unlock()

	var milestone *types.Milestone
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := ps.milestoneRepo.GetByIDs(ctx, tx, []uuid.UUID{milestoneID})
		if err != nil {
			return fmt.Errorf("reload milestone: %w", err)
		}
		if len(rows) == 0 || rows[0] == nil {
			return apperr.NotFound(fmt.Errorf("milestone %s not found", milestoneID))
		}
		milestone = rows[0]

		now := time.Now()
		milestone.Completed = !milestone.Completed
		if milestone.Completed {
			milestone.CompletedAt = &now
		} else {
			milestone.CompletedAt = nil
		}
		milestone.UpdatedAt = now
		if err := ps.milestoneRepo.UpdateFields(ctx, tx, milestone.ID, map[string]any{
			"completed":    milestone.Completed,
			"completed_at": milestone.CompletedAt,
			"updated_at":   now,
		}); err != nil {
			return fmt.Errorf("update milestone: %w", err)
		}

		all, err := ps.milestoneRepo.GetByRoadmapID(ctx, tx, roadmapID)
		if err != nil {
			return fmt.Errorf("load roadmap milestones: %w", err)
		}
		completed := 0
		for _, m := range all {
			if m != nil && m.Completed {
				completed++
			}
		}
		if err := ps.roadmapRepo.UpdateFields(ctx, tx, roadmapID, map[string]any{
			"progress":   ComputeProgress(completed, len(all)),
			"updated_at": now,
		}); err != nil {
			return fmt.Errorf("update roadmap progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return milestone, nil
}

// ComputeProgress returns round(100 * completed / total), clamped to [0,100].
// A roadmap with no milestones has progress 0 — explicit policy, not an
// accident of division.
func ComputeProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// PhaseStatus is the derived per-phase view consumed by the presentation
// layer.
type PhaseStatus struct {
	PhaseID        string `json:"phase_id"`
	Status         string `json:"status"`
	CompletedCount int    `json:"completed_count"`
	TotalCount     int    `json:"total_count"`
}

// DerivePhaseStatuses computes each phase's status from its milestones, in
// declared phase order. A phase is completed when all its milestones are
// completed; in-progress when some are, or when none are but every strictly
// preceding phase is fully completed and non-empty; otherwise upcoming.
func DerivePhaseStatuses(phases []generation.Phase, milestones []*types.Milestone) []PhaseStatus {
	byPhase := groupByPhase(milestones)

	out := make([]PhaseStatus, 0, len(phases))
	for i, p := range phases {
		ms := byPhase[p.ID]
		completed := completedCount(ms)
		st := PhaseStatus{
			PhaseID:        p.ID,
			CompletedCount: completed,
			TotalCount:     len(ms),
		}
		switch {
		case len(ms) > 0 && completed == len(ms):
			st.Status = PhaseStatusCompleted
		case completed > 0:
			st.Status = PhaseStatusInProgress
		case allPrecedingComplete(phases[:i], byPhase):
			st.Status = PhaseStatusInProgress
		default:
			st.Status = PhaseStatusUpcoming
		}
		out = append(out, st)
	}
	return out
}

// DeriveUnlockedMilestones reports which milestones are currently actionable:
// exactly those in an in-progress phase whose preceding milestones (in phase
// order) are all completed. Milestones in completed or upcoming phases are
// locked regardless of their own state.
func DeriveUnlockedMilestones(phases []generation.Phase, milestones []*types.Milestone) map[uuid.UUID]bool {
	byPhase := groupByPhase(milestones)
	statuses := DerivePhaseStatuses(phases, milestones)

	unlocked := make(map[uuid.UUID]bool, len(milestones))
	for i, p := range phases {
		inProgress := statuses[i].Status == PhaseStatusInProgress
		prevComplete := true
		for _, m := range byPhase[p.ID] {
			if m == nil {
				continue
			}
			unlocked[m.ID] = inProgress && prevComplete
			prevComplete = prevComplete && m.Completed
		}
	}
	return unlocked
}

func groupByPhase(milestones []*types.Milestone) map[string][]*types.Milestone {
	byPhase := make(map[string][]*types.Milestone)
	for _, m := range milestones {
		if m == nil {
			continue
		}
		byPhase[m.PhaseID] = append(byPhase[m.PhaseID], m)
	}
	return byPhase
}

func completedCount(ms []*types.Milestone) int {
	n := 0
	for _, m := range ms {
		if m != nil && m.Completed {
			n++
		}
	}
	return n
}

func allPrecedingComplete(preceding []generation.Phase, byPhase map[string][]*types.Milestone) bool {
	for _, p := range preceding {
		ms := byPhase[p.ID]
		if len(ms) == 0 || completedCount(ms) != len(ms) {
			return false
		}
	}
	return true
}

// roadmapLocker hands out one mutex per roadmap id. Entries are refcounted
// and dropped once the last holder unlocks, so the map only ever holds ids
// with an in-flight toggle.
type roadmapLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newRoadmapLocker() *roadmapLocker {
	return &roadmapLocker{locks: make(map[uuid.UUID]*lockEntry)}
}

func (l *roadmapLocker) lock(id uuid.UUID) func() {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &lockEntry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()
	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
