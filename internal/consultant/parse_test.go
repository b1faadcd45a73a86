package consultant

import (
	"reflect"
	"testing"
)

const sampleResponse = `Here are a few ideas for your living room.

🎨 Chantilly Lace (OC-65)
• Hex: #F5F5F0
• Description: A crisp, clean white
• Perfect for: Living Room, Kitchen, Bedroom
• Style Tips: Clean lines and minimal decor
• Lighting Tips: Best in south-facing rooms
• Mood: Fresh and airy
• Pairing Suggestions: Bold accents and natural wood

🎨 Hale Navy (HC-154)
• Description: A sophisticated navy
• Perfect for: Study

Suggestions:
• Test colors in different lighting
- Create a mood board
• Sample small patches first
`

func TestParseResponse(t *testing.T) {
	recs, suggestions := parseResponse(sampleResponse)

	if len(recs) != 2 {
		t.Fatalf("рекомендаций = %d, ожидалось 2", len(recs))
	}

	want := Recommendation{
		Name:               "Chantilly Lace",
		Code:               "OC-65",
		Hex:                "#F5F5F0",
		Description:        "A crisp, clean white",
		SuggestedRooms:     []string{"Living Room", "Kitchen", "Bedroom"},
		StyleTips:          "Clean lines and minimal decor",
		LightingTips:       "Best in south-facing rooms",
		Mood:               "Fresh and airy",
		PairingSuggestions: "Bold accents and natural wood",
	}
	if !reflect.DeepEqual(recs[0], want) {
		t.Errorf("recs[0] = %+v\nожидалось %+v", recs[0], want)
	}

	if recs[1].Code != "HC-154" || recs[1].Hex != "" {
		t.Errorf("recs[1] = %+v, ожидался HC-154 без hex", recs[1])
	}

	wantSuggestions := []string{
		"Test colors in different lighting",
		"Create a mood board",
		"Sample small patches first",
	}
	if !reflect.DeepEqual(suggestions, wantSuggestions) {
		t.Errorf("suggestions = %q, ожидалось %q", suggestions, wantSuggestions)
	}
}

func TestParseResponse_Markdown(t *testing.T) {
	text := "**🎨 Edgecomb Gray (HC-173)**\n• **Hex:** #D8D5CC\n\n**Suggestions:**\n• Mind the flow between rooms"

	recs, suggestions := parseResponse(text)
	if len(recs) != 1 || recs[0].Name != "Edgecomb Gray" || recs[0].Hex != "#D8D5CC" {
		t.Errorf("recs = %+v", recs)
	}
	if len(suggestions) != 1 || suggestions[0] != "Mind the flow between rooms" {
		t.Errorf("suggestions = %q", suggestions)
	}
}

func TestParseResponse_PlainText(t *testing.T) {
	recs, suggestions := parseResponse("Warm whites work well in north-facing rooms.")
	if recs == nil || suggestions == nil {
		t.Fatal("ожидались пустые срезы, а не nil")
	}
	if len(recs) != 0 || len(suggestions) != 0 {
		t.Errorf("recs = %v, suggestions = %v", recs, suggestions)
	}
}
