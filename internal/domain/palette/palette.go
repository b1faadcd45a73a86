// Пакет palette — генерация палитры из базового цвета.
// Чистые функции без состояния: одна и та же запись всегда даёт одну и ту же палитру.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bigkaa/colorsense/internal/domain/model"
)

// shift — сдвиг каналов для аналогичных цветов.
const shift = 30

type rgb struct {
	r, g, b int
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

// Generate возвращает шесть образцов: базовый, дополнительный, два аналогичных и два триадных.
// При некорректном hex возвращается только базовый образец.
func Generate(base *model.Color) []model.Swatch {
	baseSwatch := model.Swatch{
		Name:   base.Name,
		Code:   base.Code,
		Hex:    base.Hex,
		Type:   model.SwatchBase,
		Source: model.SwatchSourceLocal,
	}

	c, ok := parseHex(base.Hex)
	if !ok {
		return []model.Swatch{baseSwatch}
	}

	derived := func(prefix, suffix, kind string, v rgb) model.Swatch {
		return model.Swatch{
			Name:   base.Name + " " + suffix,
			Code:   prefix + "-" + base.Code,
			Hex:    v.hex(),
			Type:   kind,
			Source: model.SwatchSourceLocal,
		}
	}

	return []model.Swatch{
		baseSwatch,
		derived("CP", "Complementary", model.SwatchComplementary, complementary(c)),
		derived("AN1", "Analogous 1", model.SwatchAnalogous, rgb{min(255, c.r+shift), min(255, c.g+shift), min(255, c.b+shift)}),
		derived("AN2", "Analogous 2", model.SwatchAnalogous, rgb{max(0, c.r-shift), max(0, c.g-shift), max(0, c.b-shift)}),
		derived("TR1", "Triadic 1", model.SwatchTriadic, rgb{c.g, c.b, c.r}),
		derived("TR2", "Triadic 2", model.SwatchTriadic, rgb{c.b, c.r, c.g}),
	}
}

// complementary инвертирует каждый канал.
func complementary(c rgb) rgb {
	return rgb{255 - c.r, 255 - c.g, 255 - c.b}
}

// parseHex разбирает #RRGGBB или #RGB (каждая цифра дублируется).
func parseHex(s string) (rgb, bool) {
	if !model.IsValidHex(s) {
		return rgb{}, false
	}
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}, true
}
