package generation

import (
	"fmt"
	"strings"
)

// VideoSearchPrefix is the reserved directive the model must emit in every
// video resource's url field. The resolver rewrites it into a real search URL.
const VideoSearchPrefix = "YOUTUBE_SEARCH:"

// BuildPrompt renders the single instruction string sent to the model. It is
// deterministic for identical input and embeds the mandated output shape plus
// the strict formatting rules the repair/parse steps rely on.
func BuildPrompt(f FormInput) string {
	details := f.Details
	if details == "" {
		details = "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Create a detailed learning roadmap for the following requirements:

Topic: %s
Learning Goal: %s
Skill Level: %s
Time per Week: %d hours
Duration: %d weeks
Learning Style: %s
Additional Details: %s

Please create a structured learning roadmap with the following format:
1. Generate 4-10 learning phases, each with a clear title and description
2. For each phase, create 3-8 specific milestones
3. For each milestone, provide curated resources including:
   - YouTube videos with search-optimized titles
   - Articles and tutorials from real educational websites
   - Online courses from known platforms
   - Project ideas to apply the learning

Return the response as a JSON object with this structure:
`, f.Topic, f.Goal, f.SkillLevel, f.TimePerWeek, f.Duration, strings.Join(f.LearningStyle, ", "), details)

	fmt.Fprintf(&b, `{
  "title": "Learning Path Title",
  "description": "Brief overview of the roadmap",
  "totalWeeks": %d,
  "phases": [
    {
      "id": "phase-1",
      "title": "Phase Title",
      "description": "Phase description",
      "weeks": 3,
      "milestones": [
        {
          "title": "Milestone Title",
          "description": "What the student will learn",
          "resources": [
            {
              "type": "video",
              "title": "Descriptive Video Title with Keywords",
              "url": "%sspecific searchable video title and topic keywords for %s level",
              "source": "YouTube",
              "duration": "45 min",
              "level": "beginner"
            },
            {
              "type": "article",
              "title": "Article Title",
              "url": "https://developer.mozilla.org/example",
              "source": "Website Name",
              "readTime": "10 min",
              "level": "beginner"
            },
            {
              "type": "course",
              "title": "Course Title",
              "url": "https://www.coursera.org/learn/example",
              "source": "Platform Name",
              "duration": "4 weeks",
              "level": "beginner"
            }
          ]
        }
      ]
    }
  ],
  "projects": [
    {
      "title": "Project Title",
      "description": "Project description",
      "phase": "phase-1",
      "skills": ["skill1", "skill2"],
      "difficulty": "beginner"
    }
  ]
}

`, f.Duration, VideoSearchPrefix, f.SkillLevel)

	fmt.Fprintf(&b, `CRITICAL INSTRUCTIONS FOR VIDEO RESOURCES:
- For ALL video type resources, set the url field to: "%sdetailed searchable query"
- The search query should include: topic name, specific concept, tutorial/guide keywords, and %s level
- Example: "%sReact hooks tutorial complete guide beginner 2024"
- Make search queries specific and likely to find high-quality educational content
- Use popular creator names if relevant (e.g., "traversy media", "freecodecamp", "net ninja")

FOR ARTICLES AND COURSES:
- Use real, well-known educational website domains (MDN, W3Schools, freeCodeCamp, Official Docs, etc.)
- For courses, use real platform URLs (Coursera, Udemy, edX, Pluralsight, etc.)
- Generic placeholder format: https://www.platformname.com/topic or https://docs.officialsite.com/topic

IMPORTANT:
- Make sure all resources are relevant and high-quality for the %s level
- Return ONLY valid JSON, no markdown formatting, no code blocks
- DO NOT include trailing commas in arrays or objects
- Ensure all strings are properly quoted and escaped
- Make sure all brackets and braces are properly closed`,
		VideoSearchPrefix, f.SkillLevel, VideoSearchPrefix, f.SkillLevel)

	return b.String()
}
