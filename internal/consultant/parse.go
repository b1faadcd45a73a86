package consultant

import (
	"regexp"
	"strings"
)

// headerPattern — строка «🎨 Name (Code)».
var headerPattern = regexp.MustCompile(`^🎨\s*(.+?)\s*\(([^()]+)\)\s*$`)

// Recommendation — цвет, рекомендованный консультантом.
type Recommendation struct {
	Name               string   `json:"name"`
	Code               string   `json:"code"`
	Hex                string   `json:"hex"`
	Description        string   `json:"description,omitempty"`
	SuggestedRooms     []string `json:"suggestedRooms,omitempty"`
	StyleTips          string   `json:"styleTips,omitempty"`
	LightingTips       string   `json:"lightingTips,omitempty"`
	Mood               string   `json:"mood,omitempty"`
	PairingSuggestions string   `json:"pairingSuggestions,omitempty"`
}

// parseResponse извлекает рекомендации и советы из ответа LLM.
// Ответ без распознаваемых блоков даёт пустые списки.
func parseResponse(text string) (recs []Recommendation, suggestions []string) {
	recs = []Recommendation{}
	suggestions = []string{}

	var current *Recommendation
	inSuggestions := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := headerPattern.FindStringSubmatch(strings.Trim(line, "*# ")); m != nil {
			recs = append(recs, Recommendation{Name: m[1], Code: strings.TrimSpace(m[2])})
			current = &recs[len(recs)-1]
			inSuggestions = false
			continue
		}

		if strings.HasPrefix(strings.Trim(line, "*# "), "Suggestions:") {
			inSuggestions = true
			current = nil
			continue
		}

		item := strings.TrimSpace(strings.TrimLeft(line, "•-* "))
		switch {
		case inSuggestions:
			if item != "" {
				suggestions = append(suggestions, item)
			}
		case current != nil:
			applyField(current, item)
		}
	}

	return recs, suggestions
}

// applyField заполняет поле рекомендации по строке «Key: value».
func applyField(r *Recommendation, line string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	value = strings.Trim(value, "* ")

	switch strings.ToLower(strings.Trim(key, "* ")) {
	case "hex":
		r.Hex = value
	case "description":
		r.Description = value
	case "perfect for":
		r.SuggestedRooms = splitList(value)
	case "style tips":
		r.StyleTips = value
	case "lighting tips":
		r.LightingTips = value
	case "mood":
		r.Mood = value
	case "pairing suggestions":
		r.PairingSuggestions = value
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
