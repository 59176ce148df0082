package generation

import (
	"errors"
	"strings"
	"testing"

	"github.com/pathforge/pathforge-backend/internal/apperr"
)

const minimalDoc = `{
	"title": "Learn Go",
	"description": "A short path",
	"totalWeeks": 4,
	"phases": [
		{
			"id": "phase-1",
			"title": "Basics",
			"description": "Syntax and tooling",
			"weeks": 2,
			"milestones": [
				{
					"title": "Install the toolchain",
					"description": "Set up a working environment",
					"resources": []
				}
			]
		}
	],
	"projects": []
}`

func TestParseAcceptsMinimalDocument(t *testing.T) {
	doc, err := Parse(minimalDoc)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.Title != "Learn Go" {
		t.Errorf("title = %q, want %q", doc.Title, "Learn Go")
	}
	if len(doc.Phases) != 1 || len(doc.Phases[0].Milestones) != 1 {
		t.Fatalf("unexpected structure: %+v", doc)
	}
	if doc.Phases[0].ID != "phase-1" {
		t.Errorf("phase id = %q, want phase-1", doc.Phases[0].ID)
	}
}

func TestParsePreservesOrdering(t *testing.T) {
	text := `{
		"title": "T",
		"phases": [
			{"id": "z-last", "title": "Z", "milestones": [
				{"title": "m3", "description": "d", "resources": []},
				{"title": "m1", "description": "d", "resources": []}
			]},
			{"id": "a-first", "title": "A", "milestones": [
				{"title": "m2", "description": "d", "resources": []}
			]}
		]
	}`
	doc, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.Phases[0].ID != "z-last" || doc.Phases[1].ID != "a-first" {
		t.Fatalf("phase order changed: %+v", doc.Phases)
	}
	if doc.Phases[0].Milestones[0].Title != "m3" || doc.Phases[0].Milestones[1].Title != "m1" {
		t.Fatalf("milestone order changed: %+v", doc.Phases[0].Milestones)
	}
}

func TestParseRejections(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		wantMsg string
	}{
		{
			name:    "not_json",
			text:    "sorry, I cannot help with that",
			wantMsg: "",
		},
		{
			name:    "missing_title",
			text:    `{"phases":[{"id":"p1","title":"P","milestones":[{"title":"m","description":"d","resources":[]}]}]}`,
			wantMsg: "missing title",
		},
		{
			name:    "missing_phases",
			text:    `{"title":"T"}`,
			wantMsg: "missing phases",
		},
		{
			name:    "phase_without_id",
			text:    `{"title":"T","phases":[{"title":"P","milestones":[{"title":"m","description":"d","resources":[]}]}]}`,
			wantMsg: "missing id",
		},
		{
			name:    "phase_without_milestones",
			text:    `{"title":"T","phases":[{"id":"p1","title":"P"}]}`,
			wantMsg: "missing milestones",
		},
		{
			name:    "milestone_without_description",
			text:    `{"title":"T","phases":[{"id":"p1","title":"P","milestones":[{"title":"m","resources":[]}]}]}`,
			wantMsg: "missing description",
		},
		{
			name:    "milestone_without_resources",
			text:    `{"title":"T","phases":[{"id":"p1","title":"P","milestones":[{"title":"m","description":"d"}]}]}`,
			wantMsg: "missing resources",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.text)
			if err == nil {
				t.Fatal("Parse accepted malformed document")
			}
			var mErr *apperr.MalformedRoadmap
			if !errors.As(err, &mErr) {
				t.Fatalf("error type = %T, want *apperr.MalformedRoadmap", err)
			}
			if mErr.Excerpt == "" {
				t.Error("excerpt is empty")
			}
			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestParseExcerptBounded(t *testing.T) {
	long := "x" + strings.Repeat("y", 5000)
	_, err := Parse(long)
	var mErr *apperr.MalformedRoadmap
	if !errors.As(err, &mErr) {
		t.Fatalf("error type = %T, want *apperr.MalformedRoadmap", err)
	}
	if len(mErr.Excerpt) > 2*excerptLen+10 {
		t.Errorf("excerpt too long: %d chars", len(mErr.Excerpt))
	}
	if !strings.HasPrefix(mErr.Excerpt, "x") {
		t.Error("excerpt lost the head of the text")
	}
	if !strings.HasSuffix(mErr.Excerpt, "y") {
		t.Error("excerpt lost the tail of the text")
	}
}
