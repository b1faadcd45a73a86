package model

import (
	"strings"
	"testing"
	"time"
)

func validColor() *Color {
	return &Color{
		Code:                "2121-70",
		Name:                "Chantilly Lace",
		Hex:                 "#F2F1E6",
		Family:              "White",
		Collection:          "Classic",
		Undertone:           "Neutral",
		Style:               "Casual Coastal",
		Lighting:            "All",
		LRV:                 92,
		Description:         "A crisp, clean white",
		SuggestedRooms:      []string{"Living Room", "Kitchen"},
		ComplementaryColors: []string{"#2D3142"},
		YearIntroduced:      2015,
	}
}

func TestColorValidate_OK(t *testing.T) {
	if err := validColor().Validate(); err != nil {
		t.Fatalf("Validate() = %v, ожидалось nil", err)
	}

	short := validColor()
	short.Hex = "#FFF"
	if err := short.Validate(); err != nil {
		t.Fatalf("Validate() для #RGB = %v", err)
	}
}

func TestColorValidate_Violations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Color)
		field  string
	}{
		{"hex без решётки", func(c *Color) { c.Hex = "F2F1E6" }, "Hex"},
		{"hex 8 символов", func(c *Color) { c.Hex = "#F2F1E6AA" }, "Hex"},
		{"неизвестная семья", func(c *Color) { c.Family = "Unknown" }, "Family"},
		{"неизвестный стиль", func(c *Color) { c.Style = "Baroque" }, "Style"},
		{"lrv > 100", func(c *Color) { c.LRV = 101 }, "LRV"},
		{"lrv < 0", func(c *Color) { c.LRV = -1 }, "LRV"},
		{"нет комнат", func(c *Color) { c.SuggestedRooms = nil }, "SuggestedRooms"},
		{"пустая комната", func(c *Color) { c.SuggestedRooms = []string{""} }, "SuggestedRooms"},
		{"плохой дополнительный", func(c *Color) { c.ComplementaryColors = []string{"blue"} }, "ComplementaryColors"},
		{"год до 1900", func(c *Color) { c.YearIntroduced = 1899 }, "YearIntroduced"},
		{"год в будущем", func(c *Color) { c.YearIntroduced = time.Now().Year() + 1 }, "YearIntroduced"},
		{"нет имени", func(c *Color) { c.Name = "" }, "Name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validColor()
			tc.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("ожидалась ошибка валидации")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("ошибка %q не упоминает поле %s", err, tc.field)
			}
		})
	}
}

func TestNewPlaceholder(t *testing.T) {
	p := NewPlaceholder("ZZ-000")
	if p.Name != "Color ZZ-000" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Hex != PlaceholderHex || p.Family != PlaceholderFamily {
		t.Errorf("Hex/Family = %q/%q", p.Hex, p.Family)
	}
	if len(p.SuggestedRooms) == 0 {
		t.Error("SuggestedRooms пуст")
	}
}
