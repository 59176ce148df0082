package generation

import (
	"reflect"
	"strings"
	"testing"
)

func docWithResources(rs ...Resource) *Document {
	return &Document{
		Title: "T",
		Phases: []Phase{
			{
				ID:    "phase-1",
				Title: "P",
				Milestones: []PhaseMilestone{
					{Title: "m", Description: "d", Resources: rs},
				},
			},
		},
	}
}

func TestResolveVideoDirective(t *testing.T) {
	doc := docWithResources(Resource{
		Type:   ResourceTypeVideo,
		Title:  "Python basics",
		URL:    "YOUTUBE_SEARCH:python tutorial beginner",
		Source: "YouTube",
	})

	got := ResolveResourceLinks(doc).Phases[0].Milestones[0].Resources[0]

	wantURL := "https://www.youtube.com/results?search_query=python%20tutorial%20beginner"
	if got.URL != wantURL {
		t.Errorf("url = %q, want %q", got.URL, wantURL)
	}
	if got.Source != "YouTube Search" {
		t.Errorf("source = %q, want %q", got.Source, "YouTube Search")
	}
}

func TestResolveLeavesOtherResourcesAlone(t *testing.T) {
	cases := []struct {
		name string
		in   Resource
	}{
		{
			name: "article_untouched",
			in:   Resource{Type: ResourceTypeArticle, URL: "https://developer.mozilla.org/x", Source: "MDN"},
		},
		{
			name: "course_untouched",
			in:   Resource{Type: ResourceTypeCourse, URL: "https://www.coursera.org/learn/x", Source: "Coursera"},
		},
		{
			name: "video_without_directive_untouched",
			in:   Resource{Type: ResourceTypeVideo, URL: "https://www.youtube.com/watch?v=abc", Source: "YouTube"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveResourceLinks(docWithResources(tc.in)).Phases[0].Milestones[0].Resources[0]
			if got != tc.in {
				t.Errorf("resource changed: got %+v, want %+v", got, tc.in)
			}
		})
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	doc := docWithResources(Resource{
		Type:   ResourceTypeVideo,
		URL:    "YOUTUBE_SEARCH:go concurrency",
		Source: "YouTube",
	})
	_ = ResolveResourceLinks(doc)
	if doc.Phases[0].Milestones[0].Resources[0].URL != "YOUTUBE_SEARCH:go concurrency" {
		t.Fatal("input document was mutated")
	}
}

func TestResolveIdempotent(t *testing.T) {
	doc := docWithResources(
		Resource{Type: ResourceTypeVideo, URL: "YOUTUBE_SEARCH:rust ownership explained advanced", Source: "YouTube"},
		Resource{Type: ResourceTypeArticle, URL: "https://doc.rust-lang.org/book", Source: "Rust Docs"},
	)
	once := ResolveResourceLinks(doc)
	twice := ResolveResourceLinks(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("resolver not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
	if strings.Contains(once.Phases[0].Milestones[0].Resources[0].URL, VideoSearchPrefix) {
		t.Error("directive prefix survived resolution")
	}
}

func TestResolveTrimsAndEscapesQuery(t *testing.T) {
	doc := docWithResources(Resource{
		Type:   ResourceTypeVideo,
		URL:    "YOUTUBE_SEARCH:  C++ templates & traits  ",
		Source: "YouTube",
	})
	got := ResolveResourceLinks(doc).Phases[0].Milestones[0].Resources[0].URL
	want := "https://www.youtube.com/results?search_query=C%2B%2B%20templates%20%26%20traits"
	if got != want {
		t.Errorf("url = %q, want %q", got, want)
	}
}
