package browse

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/briangreenhill/recipebox/mealdb"
)

var (
	stepLabelLine = regexp.MustCompile(`(?i)^step\s*\d+\s*[:.)-]?$`)
	stepPrefix    = regexp.MustCompile(`(?i)^(?:step\s*)?\d+\s*[.):-]\s+`)
)

func toCategory(c mealdb.CategoryJSON) Category {
	return Category{
		Name:         strings.TrimSpace(c.Name),
		Description:  strings.TrimSpace(c.Description),
		ThumbnailURL: strings.TrimSpace(c.Thumb),
	}
}

func toSummary(m mealdb.MealJSON) MealSummary {
	return MealSummary{Name: m.Name(), ThumbnailURL: m.Thumb(), ID: m.ID()}
}

func toSummaries(meals []mealdb.MealJSON) []MealSummary {
	out := make([]MealSummary, 0, len(meals))
	for _, m := range meals {
		if m == nil {
			continue
		}
		out = append(out, toSummary(m))
	}
	return out
}

func toDetail(m mealdb.MealJSON) MealDetail {
	return MealDetail{
		ID:               m.ID(),
		Name:             m.Name(),
		ThumbnailURL:     m.Thumb(),
		Category:         m.Category(),
		Area:             m.Area(),
		Source:           m.Source(),
		YouTube:          m.YouTube(),
		Tags:             SplitTags(m.Tags()),
		Ingredients:      ParseIngredients(m),
		InstructionSteps: SplitInstructions(m.Instructions()),
	}
}

// ParseIngredients reads the numbered ingredient/measure slots in order,
// skipping slots whose ingredient is blank.
func ParseIngredients(m mealdb.MealJSON) []Ingredient {
	var out []Ingredient
	for i := 1; i <= mealdb.MaxIngredients; i++ {
		name, measure := m.Ingredient(i)
		if name == "" {
			continue
		}
		out = append(out, Ingredient{Name: name, Measure: measure})
	}
	return out
}

// SplitTags splits the comma separated tag field.
func SplitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitInstructions turns the free-text instructions into ordered steps. Each
// non-blank line is a step, with "STEP n" label lines and "n." prefixes dropped.
// Text that is a single paragraph is split on sentence boundaries instead.
func SplitInstructions(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || stepLabelLine.MatchString(line) {
			continue
		}
		steps = appendStep(steps, stepPrefix.ReplaceAllString(line, ""))
	}

	if len(steps) == 1 {
		return splitSentences(steps[0])
	}
	return steps
}

// splitSentences breaks after . ! or ? (and any closing quote or bracket) when
// whitespace and an upper-case letter follow.
func splitSentences(p string) []string {
	runes := []rune(p)
	var out []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !strings.ContainsRune(".!?", runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && strings.ContainsRune(`"')]`, runes[j]) {
			j++
		}
		if j >= len(runes) || !unicode.IsSpace(runes[j]) {
			continue
		}
		k := j
		for k < len(runes) && unicode.IsSpace(runes[k]) {
			k++
		}
		if k < len(runes) && unicode.IsUpper(runes[k]) {
			out = appendStep(out, string(runes[start:j]))
			start = k
			i = k - 1
		}
	}
	return appendStep(out, string(runes[start:]))
}

func appendStep(steps []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		return append(steps, s)
	}
	return steps
}
