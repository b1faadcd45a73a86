package palette

import (
	"testing"

	"github.com/bigkaa/colorsense/internal/domain/model"
)

func TestGenerate_HaleNavy(t *testing.T) {
	base := &model.Color{Code: "HC-154", Name: "Hale Navy", Hex: "#2D3142"}
	got := Generate(base)

	if len(got) != 6 {
		t.Fatalf("len = %d, ожидалось 6", len(got))
	}

	want := []model.Swatch{
		{Name: "Hale Navy", Code: "HC-154", Hex: "#2D3142", Type: model.SwatchBase, Source: "local"},
		{Name: "Hale Navy Complementary", Code: "CP-HC-154", Hex: "#d2cebd", Type: model.SwatchComplementary, Source: "local"},
		{Name: "Hale Navy Analogous 1", Code: "AN1-HC-154", Hex: "#4b4f60", Type: model.SwatchAnalogous, Source: "local"},
		{Name: "Hale Navy Analogous 2", Code: "AN2-HC-154", Hex: "#0f1324", Type: model.SwatchAnalogous, Source: "local"},
		{Name: "Hale Navy Triadic 1", Code: "TR1-HC-154", Hex: "#31422d", Type: model.SwatchTriadic, Source: "local"},
		{Name: "Hale Navy Triadic 2", Code: "TR2-HC-154", Hex: "#422d31", Type: model.SwatchTriadic, Source: "local"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("swatch[%d] = %+v, ожидался %+v", i, got[i], want[i])
		}
	}
}

func TestGenerate_ClampsChannels(t *testing.T) {
	got := Generate(&model.Color{Code: "W", Name: "Edge", Hex: "#F0100A"})

	if got[2].Hex != "#ff2e28" {
		t.Errorf("Analogous 1 = %s, ожидался #ff2e28", got[2].Hex)
	}
	if got[3].Hex != "#d20000" {
		t.Errorf("Analogous 2 = %s, ожидался #d20000", got[3].Hex)
	}
}

func TestGenerate_ShortHex(t *testing.T) {
	got := Generate(&model.Color{Code: "S", Name: "Short", Hex: "#ABC"})
	if len(got) != 6 {
		t.Fatalf("len = %d, ожидалось 6", len(got))
	}
	// #ABC == #aabbcc, инверсия — #554433
	if got[1].Hex != "#554433" {
		t.Errorf("Complementary = %s, ожидался #554433", got[1].Hex)
	}
}

func TestGenerate_MalformedHex(t *testing.T) {
	for _, hex := range []string{"", "2D3142", "#2D31", "#GGGGGG", "#2D3142FF"} {
		got := Generate(&model.Color{Code: "B", Name: "Broken", Hex: hex})
		if len(got) != 1 {
			t.Errorf("hex %q: len = %d, ожидался только базовый образец", hex, len(got))
			continue
		}
		if got[0].Type != model.SwatchBase || got[0].Hex != hex {
			t.Errorf("hex %q: базовый образец = %+v", hex, got[0])
		}
	}
}

// Для любого цвета каналы дополнительного образца в сумме с исходными дают 255.
func TestComplementary_ChannelSum(t *testing.T) {
	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 17 {
			for b := 0; b <= 255; b += 51 {
				c := complementary(rgb{r, g, b})
				if c.r+r != 255 || c.g+g != 255 || c.b+b != 255 {
					t.Fatalf("complementary(%d,%d,%d) = %+v", r, g, b, c)
				}
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	base := &model.Color{Code: "2121-70", Name: "Chantilly Lace", Hex: "#F2F1E6"}
	a, b := Generate(base), Generate(base)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("swatch[%d] различается: %+v vs %+v", i, a[i], b[i])
		}
	}
}
