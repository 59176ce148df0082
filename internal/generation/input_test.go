package generation

import "testing"

func TestFormInputValidate(t *testing.T) {
	mutate := func(fn func(*FormInput)) FormInput {
		in := validInput()
		fn(&in)
		return in
	}

	cases := []struct {
		name    string
		in      FormInput
		wantErr bool
	}{
		{name: "valid", in: validInput(), wantErr: false},
		{name: "empty_topic", in: mutate(func(f *FormInput) { f.Topic = "" }), wantErr: true},
		{name: "bad_goal", in: mutate(func(f *FormInput) { f.Goal = "world-domination" }), wantErr: true},
		{name: "bad_skill_level", in: mutate(func(f *FormInput) { f.SkillLevel = "expert" }), wantErr: true},
		{name: "time_too_low", in: mutate(func(f *FormInput) { f.TimePerWeek = 0 }), wantErr: true},
		{name: "time_too_high", in: mutate(func(f *FormInput) { f.TimePerWeek = 41 }), wantErr: true},
		{name: "duration_too_low", in: mutate(func(f *FormInput) { f.Duration = 0 }), wantErr: true},
		{name: "duration_too_high", in: mutate(func(f *FormInput) { f.Duration = 53 }), wantErr: true},
		{name: "no_learning_style", in: mutate(func(f *FormInput) { f.LearningStyle = nil }), wantErr: true},
		{name: "blank_learning_style", in: mutate(func(f *FormInput) { f.LearningStyle = []string{""} }), wantErr: true},
		{name: "boundary_max", in: mutate(func(f *FormInput) { f.TimePerWeek = 40; f.Duration = 52 }), wantErr: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestStrippedPhases(t *testing.T) {
	doc := docWithResources(Resource{Type: ResourceTypeArticle, URL: "https://x", Source: "X"})
	stripped := doc.StrippedPhases()
	if len(stripped) != 1 {
		t.Fatalf("len = %d, want 1", len(stripped))
	}
	if stripped[0].Milestones != nil {
		t.Error("milestones were not stripped")
	}
	if doc.Phases[0].Milestones == nil {
		t.Error("original document lost its milestones")
	}
	if stripped[0].ID != "phase-1" || stripped[0].Title != "P" {
		t.Errorf("phase fields lost: %+v", stripped[0])
	}
}
