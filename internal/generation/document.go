package generation

// Document is the parsed model output. It exists only between parse and
// materialization; after persistence the phases (stripped of milestones) and
// the per-milestone rows carry the same data.
type Document struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TotalWeeks  int       `json:"totalWeeks"`
	Phases      []Phase   `json:"phases"`
	Projects    []Project `json:"projects"`
}

type Phase struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Weeks       int              `json:"weeks"`
	Milestones  []PhaseMilestone `json:"milestones,omitempty"`
}

type PhaseMilestone struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Resources   []Resource `json:"resources"`
}

// Resource is discriminated by Type (video, article, course). Duration is set
// for videos and courses, ReadTime for articles.
type Resource struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Duration string `json:"duration,omitempty"`
	ReadTime string `json:"readTime,omitempty"`
	Level    string `json:"level,omitempty"`
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Phase       string   `json:"phase"`
	Skills      []string `json:"skills"`
	Difficulty  string   `json:"difficulty"`
}

const (
	ResourceTypeVideo   = "video"
	ResourceTypeArticle = "article"
	ResourceTypeCourse  = "course"
)

// StrippedPhases returns the phase list without milestones, for the roadmap's
// embedded phases column. Milestones persist in their own table.
func (d *Document) StrippedPhases() []Phase {
	out := make([]Phase, len(d.Phases))
	for i, p := range d.Phases {
		p.Milestones = nil
		out[i] = p
	}
	return out
}
