package validate

import (
	"github.com/go-playground/validator/v10"

	"social-service/internal/shared/apperr"
)

var v = validator.New()

func Struct(s any) error {
	if err := v.Struct(s); err != nil {
		return apperr.Validation(err.Error())
	}
	return nil
}
