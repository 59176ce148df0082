package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pathforge/pathforge-backend/internal/generation"
	"github.com/pathforge/pathforge-backend/internal/types"
)

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"empty_roadmap", 0, 0, 0},
		{"none_completed", 0, 5, 0},
		{"two_of_five", 2, 5, 40},
		{"all_completed", 5, 5, 100},
		{"rounds_up", 1, 3, 33},
		{"rounds_half_up", 1, 2, 50},
		{"two_of_three", 2, 3, 67},
		{"one_of_seven", 1, 7, 14},
		{"clamps_over", 6, 5, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeProgress(tt.completed, tt.total); got != tt.want {
				t.Errorf("ComputeProgress(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func mkMilestone(phaseID string, completed bool) *types.Milestone {
	return &types.Milestone{
		ID:        uuid.New(),
		PhaseID:   phaseID,
		Completed: completed,
	}
}

func TestDerivePhaseStatuses(t *testing.T) {
	phases := []generation.Phase{
		{ID: "phase-1", Title: "Foundations"},
		{ID: "phase-2", Title: "Core Skills"},
		{ID: "phase-3", Title: "Advanced"},
	}

	tests := []struct {
		name       string
		milestones []*types.Milestone
		want       []string
	}{
		{
			name: "fresh_roadmap_first_phase_active",
			milestones: []*types.Milestone{
				mkMilestone("phase-1", false),
				mkMilestone("phase-2", false),
				mkMilestone("phase-3", false),
			},
			want: []string{PhaseStatusInProgress, PhaseStatusUpcoming, PhaseStatusUpcoming},
		},
		{
			name: "first_complete_second_unlocks",
			milestones: []*types.Milestone{
				mkMilestone("phase-1", true),
				mkMilestone("phase-1", true),
				mkMilestone("phase-2", false),
				mkMilestone("phase-2", false),
				mkMilestone("phase-2", false),
				mkMilestone("phase-3", false),
			},
			want: []string{PhaseStatusCompleted, PhaseStatusInProgress, PhaseStatusUpcoming},
		},
		{
			name: "partial_phase_in_progress",
			milestones: []*types.Milestone{
				mkMilestone("phase-1", true),
				mkMilestone("phase-1", false),
				mkMilestone("phase-2", false),
				mkMilestone("phase-3", false),
			},
			want: []string{PhaseStatusInProgress, PhaseStatusUpcoming, PhaseStatusUpcoming},
		},
		{
			name: "out_of_order_completion_counts",
			milestones: []*types.Milestone{
				mkMilestone("phase-1", false),
				mkMilestone("phase-2", true),
				mkMilestone("phase-3", false),
			},
			want: []string{PhaseStatusInProgress, PhaseStatusInProgress, PhaseStatusUpcoming},
		},
		{
			name: "all_complete",
			milestones: []*types.Milestone{
				mkMilestone("phase-1", true),
				mkMilestone("phase-2", true),
				mkMilestone("phase-3", true),
			},
			want: []string{PhaseStatusCompleted, PhaseStatusCompleted, PhaseStatusCompleted},
		},
		{
			name:       "no_milestones_at_all",
			milestones: nil,
			want:       []string{PhaseStatusUpcoming, PhaseStatusUpcoming, PhaseStatusUpcoming},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivePhaseStatuses(phases, tt.milestones)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d statuses, want %d", len(got), len(tt.want))
			}
			for i, st := range got {
				if st.Status != tt.want[i] {
					t.Errorf("phase %s: status = %q, want %q", st.PhaseID, st.Status, tt.want[i])
				}
				if st.PhaseID != phases[i].ID {
					t.Errorf("status %d: phase id = %q, want %q", i, st.PhaseID, phases[i].ID)
				}
			}
		})
	}
}

func TestDerivePhaseStatusesCounts(t *testing.T) {
	phases := []generation.Phase{{ID: "phase-1"}, {ID: "phase-2"}}
	milestones := []*types.Milestone{
		mkMilestone("phase-1", true),
		mkMilestone("phase-1", true),
		mkMilestone("phase-2", true),
		mkMilestone("phase-2", false),
		mkMilestone("phase-2", false),
	}
	got := DerivePhaseStatuses(phases, milestones)
	if got[0].CompletedCount != 2 || got[0].TotalCount != 2 {
		t.Errorf("phase-1 counts = %d/%d, want 2/2", got[0].CompletedCount, got[0].TotalCount)
	}
	if got[1].CompletedCount != 1 || got[1].TotalCount != 3 {
		t.Errorf("phase-2 counts = %d/%d, want 1/3", got[1].CompletedCount, got[1].TotalCount)
	}
}

func TestDeriveUnlockedMilestones(t *testing.T) {
	phases := []generation.Phase{{ID: "phase-1"}, {ID: "phase-2"}}
	p1a := mkMilestone("phase-1", true)
	p1b := mkMilestone("phase-1", false)
	p1c := mkMilestone("phase-1", false)
	p2a := mkMilestone("phase-2", false)
	milestones := []*types.Milestone{p1a, p1b, p1c, p2a}

	unlocked := DeriveUnlockedMilestones(phases, milestones)

	if !unlocked[p1a.ID] {
		t.Error("first milestone of an in-progress phase should be unlocked")
	}
	if !unlocked[p1b.ID] {
		t.Error("next milestone after a completed one should be unlocked")
	}
	if unlocked[p1c.ID] {
		t.Error("milestone behind an incomplete one should be locked")
	}
	if unlocked[p2a.ID] {
		t.Error("milestone in an upcoming phase should be locked")
	}
}

func TestDeriveUnlockedMilestonesCompletedPhaseLocked(t *testing.T) {
	phases := []generation.Phase{{ID: "phase-1"}, {ID: "phase-2"}}
	p1a := mkMilestone("phase-1", true)
	p1b := mkMilestone("phase-1", true)
	p2a := mkMilestone("phase-2", false)

	unlocked := DeriveUnlockedMilestones(phases, []*types.Milestone{p1a, p1b, p2a})

	if unlocked[p1a.ID] || unlocked[p1b.ID] {
		t.Error("milestones in a completed phase should be locked")
	}
	if !unlocked[p2a.ID] {
		t.Error("first milestone of the next in-progress phase should be unlocked")
	}
}

func TestRoadmapLockerEvictsIdleEntries(t *testing.T) {
	locker := newRoadmapLocker()
	a, b := uuid.New(), uuid.New()

	unlockA := locker.lock(a)
	unlockB := locker.lock(b)
	if len(locker.locks) != 2 {
		t.Fatalf("held entries = %d, want 2", len(locker.locks))
	}
	unlockA()
	if len(locker.locks) != 1 {
		t.Errorf("entries after first release = %d, want 1", len(locker.locks))
	}
	unlockB()
	if len(locker.locks) != 0 {
		t.Errorf("entries after all released = %d, want 0", len(locker.locks))
	}

	// Re-acquiring after eviction must still serialize.
	done := make(chan struct{})
	unlock := locker.lock(a)
	go func() {
		inner := locker.lock(a)
		inner()
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("second lock acquired while first still held")
	case <-time.After(20 * time.Millisecond):
	}
	unlock()
	<-done
	if len(locker.locks) != 0 {
		t.Errorf("entries after contention drained = %d, want 0", len(locker.locks))
	}
}

func TestDeriveUnlockedMilestonesFreshRoadmap(t *testing.T) {
	phases := []generation.Phase{{ID: "phase-1"}}
	first := mkMilestone("phase-1", false)
	second := mkMilestone("phase-1", false)

	unlocked := DeriveUnlockedMilestones(phases, []*types.Milestone{first, second})

	if !unlocked[first.ID] {
		t.Error("first milestone of a fresh roadmap should be unlocked")
	}
	if unlocked[second.ID] {
		t.Error("second milestone should be locked until the first completes")
	}
}
