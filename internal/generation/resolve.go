package generation

import (
	"net/url"
	"strings"
)

const videoSearchBaseURL = "https://www.youtube.com/results?search_query="

// ResolveResourceLinks returns a copy of doc with every video resource's
// placeholder directive rewritten into a concrete search URL. Non-video
// resources and already-resolved videos pass through unchanged, which makes
// the transform idempotent (the prefix is gone after the first pass).
func ResolveResourceLinks(doc *Document) *Document {
	out := *doc
	out.Phases = make([]Phase, len(doc.Phases))
	for i, p := range doc.Phases {
		np := p
		np.Milestones = make([]PhaseMilestone, len(p.Milestones))
		for j, m := range p.Milestones {
			nm := m
			nm.Resources = make([]Resource, len(m.Resources))
			for k, r := range m.Resources {
				nm.Resources[k] = resolveResource(r)
			}
			np.Milestones[j] = nm
		}
		out.Phases[i] = np
	}
	return &out
}

func resolveResource(r Resource) Resource {
	if r.Type != ResourceTypeVideo || !strings.HasPrefix(r.URL, VideoSearchPrefix) {
		return r
	}
	query := strings.TrimSpace(strings.TrimPrefix(r.URL, VideoSearchPrefix))
	r.URL = videoSearchBaseURL + encodeQuery(query)
	if r.Source == "YouTube" {
		r.Source = "YouTube Search"
	}
	return r
}

// encodeQuery percent-encodes like encodeURIComponent: spaces become %20,
// not '+'.
func encodeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}
