package generation

import "fmt"

// FormInput is the validated request body for roadmap generation. JSON field
// names follow the web client's form schema.
type FormInput struct {
	Topic         string   `json:"topic"`
	Goal          string   `json:"goal"`
	SkillLevel    string   `json:"skillLevel"`
	TimePerWeek   int      `json:"timePerWeek"`
	Duration      int      `json:"duration"`
	LearningStyle []string `json:"learningStyle"`
	Details       string   `json:"details"`
}

const (
	GoalProjectBuilding = "project-building"
	GoalExamPreparation = "exam-preparation"
	GoalConceptMastery  = "concept-mastery"

	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Validate rejects bad input before any model call is made.
func (f *FormInput) Validate() error {
	if f.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	switch f.Goal {
	case GoalProjectBuilding, GoalExamPreparation, GoalConceptMastery:
	default:
		return fmt.Errorf("goal must be one of project-building, exam-preparation, concept-mastery")
	}
	switch f.SkillLevel {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		return fmt.Errorf("skillLevel must be one of beginner, intermediate, advanced")
	}
	if f.TimePerWeek < 1 || f.TimePerWeek > 40 {
		return fmt.Errorf("timePerWeek must be between 1 and 40")
	}
	if f.Duration < 1 || f.Duration > 52 {
		return fmt.Errorf("duration must be between 1 and 52 weeks")
	}
	if len(f.LearningStyle) == 0 {
		return fmt.Errorf("at least one learningStyle is required")
	}
	for _, s := range f.LearningStyle {
		if s == "" {
			return fmt.Errorf("learningStyle entries must be non-empty")
		}
	}
	return nil
}
