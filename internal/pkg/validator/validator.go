package validator

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/map-annotation-service/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// halfstep - число кратно 0.5 (шаг слайдера масштаба иконки)
	_ = validate.RegisterValidation("halfstep", func(fl validator.FieldLevel) bool {
		steps := fl.Field().Float() / domain.IconScaleExponentStep
		return math.Abs(steps-math.Round(steps)) < 1e-9
	})

	// category - имя известной категории маркера
	_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseCategory(fl.Field().String())
		return err == nil
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}
