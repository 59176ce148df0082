package generation

import (
	"encoding/json"
	"fmt"

	"github.com/pathforge/pathforge-backend/internal/apperr"
)

// excerptLen bounds the head/tail diagnostic slices attached to parse errors.
const excerptLen = 500

func excerpt(text string) string {
	if len(text) <= 2*excerptLen {
		return text
	}
	return text[:excerptLen] + " … " + text[len(text)-excerptLen:]
}

func malformed(text string, err error) *apperr.MalformedRoadmap {
	return &apperr.MalformedRoadmap{Excerpt: excerpt(text), Err: err}
}

// Parse decodes repaired text into a Document and checks structural
// completeness. Phase and milestone ordering is preserved exactly as given.
// Semantic validity of resource URLs is the resolver's concern, not ours.
func Parse(text string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, malformed(text, err)
	}
	if doc.Title == "" {
		return nil, malformed(text, fmt.Errorf("missing title"))
	}
	if len(doc.Phases) == 0 {
		return nil, malformed(text, fmt.Errorf("missing phases"))
	}
	for i, p := range doc.Phases {
		if p.ID == "" {
			return nil, malformed(text, fmt.Errorf("phase %d: missing id", i))
		}
		if p.Title == "" {
			return nil, malformed(text, fmt.Errorf("phase %q: missing title", p.ID))
		}
		if len(p.Milestones) == 0 {
			return nil, malformed(text, fmt.Errorf("phase %q: missing milestones", p.ID))
		}
		for j, m := range p.Milestones {
			if m.Title == "" {
				return nil, malformed(text, fmt.Errorf("phase %q milestone %d: missing title", p.ID, j))
			}
			if m.Description == "" {
				return nil, malformed(text, fmt.Errorf("phase %q milestone %q: missing description", p.ID, m.Title))
			}
			if m.Resources == nil {
				return nil, malformed(text, fmt.Errorf("phase %q milestone %q: missing resources", p.ID, m.Title))
			}
		}
	}
	return &doc, nil
}
