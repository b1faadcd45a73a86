// Пакет model — доменные модели colorsense.
// Color — маппинг таблицы colors, Swatch — элемент сгенерированной палитры.
package model

import "time"

// Допустимые значения категорий цвета (закрытые множества).
var (
	Families    = []string{"White", "Neutral", "Gray", "Yellow", "Orange", "Red", "Purple", "Blue", "Green"}
	Collections = []string{"Classic", "Modern", "Contemporary", "Traditional"}
	Undertones  = []string{"Warm", "Cool", "Neutral"}
	Styles      = []string{
		"Modern", "Traditional", "Casual Coastal", "Contemporary", "Art Deco", "Boho",
		"Cottage", "Craftsman", "French Country", "Midcentury Modern", "Minimalist", "Modern Farmhouse",
	}
	Lightings = []string{"All", "Natural", "North-Facing", "South-Facing", "East-Facing", "West-Facing"}
)

// Color — запись каталога красок.
// После создания считается неизменяемой: кэши не отслеживают обновления.
type Color struct {
	// Code — артикул производителя, первичный ключ
	Code string `json:"code" validate:"required"`
	// Name — уникальное название
	Name string `json:"name" validate:"required"`
	// Hex — #RRGGBB или #RGB
	Hex        string `json:"hex" validate:"required,hexcolor_rgb"`
	Family     string `json:"family" validate:"required,oneof=White Neutral Gray Yellow Orange Red Purple Blue Green"`
	Collection string `json:"collection" validate:"required,oneof=Classic Modern Contemporary Traditional"`
	Undertone  string `json:"undertone" validate:"required,oneof=Warm Cool Neutral"`
	Style      string `json:"style" validate:"required,color_style"`
	Lighting   string `json:"lighting" validate:"required,oneof=All Natural North-Facing South-Facing East-Facing West-Facing"`
	// LRV — light reflectance value, 0..100
	LRV         float64 `json:"lrv" validate:"gte=0,lte=100"`
	Description string  `json:"description" validate:"required"`
	// SuggestedRooms — упорядоченный непустой список комнат
	SuggestedRooms []string `json:"suggestedRooms" validate:"required,min=1,dive,required"`
	// ComplementaryColors — непустой список hex-значений
	ComplementaryColors []string `json:"complementaryColors" validate:"required,min=1,dive,hexcolor_rgb"`
	IsTrending          bool     `json:"isTrending"`
	// YearIntroduced — 1900..текущий год
	YearIntroduced int       `json:"yearIntroduced" validate:"gte=1900,not_future_year"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Значения по умолчанию для записи-заглушки.
const (
	PlaceholderHex         = "#FFFFFF"
	PlaceholderFamily      = "Unknown"
	PlaceholderDescription = "Color details not available"
)

// NewPlaceholder возвращает синтетическую запись для кода, отсутствующего в каталоге.
// Заглушка не является авторитетными данными и не должна попадать в кэш.
func NewPlaceholder(code string) *Color {
	return &Color{
		Code:                code,
		Name:                "Color " + code,
		Hex:                 PlaceholderHex,
		Family:              PlaceholderFamily,
		Collection:          "Classic",
		Undertone:           "Neutral",
		Style:               "Classic",
		Lighting:            "All",
		LRV:                 50,
		Description:         PlaceholderDescription,
		SuggestedRooms:      []string{"Living Room"},
		ComplementaryColors: []string{PlaceholderHex},
	}
}

// Типы образцов палитры.
const (
	SwatchBase          = "Base Color"
	SwatchComplementary = "Complementary"
	SwatchAnalogous     = "Analogous"
	SwatchTriadic       = "Triadic"

	// SwatchSourceLocal — образец вычислен локально, а не получен из внешнего источника.
	SwatchSourceLocal = "local"
)

// Swatch — один образец палитры.
type Swatch struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Hex    string `json:"hex"`
	Type   string `json:"type"`
	Source string `json:"source"`
}
