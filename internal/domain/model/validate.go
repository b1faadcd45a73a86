package model

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// hexPattern — допустимый формат hex: #RRGGBB или #RGB.
var hexPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// IsValidHex сообщает, соответствует ли строка формату #RRGGBB или #RGB.
func IsValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// oneof не умеет значения с пробелами ("Casual Coastal")
	_ = v.RegisterValidation("color_style", func(fl validator.FieldLevel) bool {
		return slices.Contains(Styles, fl.Field().String())
	})
	_ = v.RegisterValidation("hexcolor_rgb", func(fl validator.FieldLevel) bool {
		return IsValidHex(fl.Field().String())
	})
	_ = v.RegisterValidation("not_future_year", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(time.Now().Year())
	})
	return v
}

// Validate проверяет запись перед вставкой в каталог.
// Возвращает одну ошибку со всеми нарушениями через "; ".
func (c *Color) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// formatFieldError формирует читаемое сообщение для одного нарушения.
func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s обязательно", field)
	case "min":
		return fmt.Sprintf("%s: нужно не меньше %s элементов", field, fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s: значение %v вне допустимого диапазона", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s: %q не входит в {%s}", field, fe.Value(), fe.Param())
	case "color_style":
		return fmt.Sprintf("%s: %q не входит в {%s}", field, fe.Value(), strings.Join(Styles, ", "))
	case "hexcolor_rgb":
		return fmt.Sprintf("%s: %q не соответствует #RRGGBB или #RGB", field, fe.Value())
	case "not_future_year":
		return fmt.Sprintf("%s: год %v в будущем", field, fe.Value())
	default:
		return fmt.Sprintf("%s некорректно (%s)", field, fe.Tag())
	}
}
