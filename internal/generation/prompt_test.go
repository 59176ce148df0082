package generation

import (
	"strings"
	"testing"
)

func validInput() FormInput {
	return FormInput{
		Topic:         "Rust",
		Goal:          GoalConceptMastery,
		SkillLevel:    LevelBeginner,
		TimePerWeek:   5,
		Duration:      8,
		LearningStyle: []string{"videos", "articles"},
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	in := validInput()
	if BuildPrompt(in) != BuildPrompt(in) {
		t.Fatal("BuildPrompt is not deterministic for identical input")
	}
}

func TestBuildPromptContents(t *testing.T) {
	in := validInput()
	in.Details = "focus on the borrow checker"
	prompt := BuildPrompt(in)

	for _, want := range []string{
		"Topic: Rust",
		"Skill Level: beginner",
		"Duration: 8 weeks",
		"Time per Week: 5 hours",
		"Learning Style: videos, articles",
		"focus on the borrow checker",
		`"totalWeeks": 8`,
		VideoSearchPrefix,
		"DO NOT include trailing commas",
		"Return ONLY valid JSON",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptEmptyDetails(t *testing.T) {
	prompt := BuildPrompt(validInput())
	if !strings.Contains(prompt, "Additional Details: None") {
		t.Error("empty details should render as None")
	}
}
