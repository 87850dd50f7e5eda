package extract

import "strings"

// Tag floor and cap for enrichment output.
const (
	minTags = 3
	maxTags = 6
)

// tagGroup maps content keywords to a set of personality-affinity tags.
type tagGroup struct {
	keywords []string
	tags     []string
}

// The keyword table is fixed; moderation curates anything beyond it.
var tagGroups = []tagGroup{
	{
		keywords: []string{"현대", "컨템포러리", "실험", "신진", "contemporary"},
		tags:     []string{"LAEF", "SAEF", "LAMF"},
	},
	{
		keywords: []string{"전통", "고미술", "서화", "traditional"},
		tags:     []string{"LRMC", "SRMC", "SAMC"},
	},
	{
		keywords: []string{"사진", "포토", "photo"},
		tags:     []string{"LREC", "SREC", "LREF"},
	},
	{
		keywords: []string{"체험", "인터랙티브", "미디어", "interactive"},
		tags:     []string{"SREF", "SAEF", "SRMF"},
	},
}

// defaultTags backfill the floor when keyword matching comes up short.
var defaultTags = []string{"SAEF", "LAEF", "SREC"}

// Category checks, ordered most specific first; general is the fallback.
var categoryChecks = []struct {
	keywords []string
	category string
}{
	{[]string{"현대", "컨템포러리"}, "contemporary_art"},
	{[]string{"전통", "고미술"}, "traditional_art"},
	{[]string{"사진", "포토"}, "photography"},
	{[]string{"체험", "인터랙티브"}, "interactive"},
	{[]string{"미니멀", "단색"}, "minimalism"},
}

// Tagger derives affinity tags and a coarse category from title and
// description text.
type Tagger struct{}

func NewTagger() *Tagger { return &Tagger{} }

// Tags returns at least 3 and at most 6 affinity tags; callers never
// receive zero tags.
func (t *Tagger) Tags(title, description string) []string {
	text := strings.ToLower(title + " " + description)

	tags := make([]string, 0, maxTags)
	seen := make(map[string]struct{})
	add := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, group := range tagGroups {
		if containsAny(text, group.keywords) {
			for _, tag := range group.tags {
				add(tag)
			}
		}
	}

	if len(tags) < minTags {
		for _, tag := range defaultTags {
			add(tag)
		}
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}

// Category returns the first matching category, or "general".
func (t *Tagger) Category(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, check := range categoryChecks {
		if containsAny(text, check.keywords) {
			return check.category
		}
	}
	return "general"
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
