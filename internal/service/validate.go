package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/erslabs/mort-manager/backend/internal/domain"
)

// validate checks the `validate` struct tags on domain inputs. The custom
// tags bind the domain vocabularies so enumerations live in one place.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "meal_type", func(fl validator.FieldLevel) bool {
		return domain.MealType(fl.Field().String()).Valid()
	})
	mustRegister(v, "equipment", func(fl validator.FieldLevel) bool {
		return domain.CookingEquipment(fl.Field().String()).Valid()
	})
	mustRegister(v, "dietary_tag", func(fl validator.FieldLevel) bool {
		return domain.DietaryTag(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("service: register validation %q: %v", tag, err))
	}
}

// check validates s and maps any failure to domain.ErrValidation, naming the
// first failing field.
func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s failed %q", domain.ErrValidation, verrs[0].Namespace(), verrs[0].Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// requireName rejects whitespace-only names, which `required` lets through.
func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return nil
}
