package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/apperror"
)

var (
	validate = newValidator()
	colorRe  = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// ValidColor reports whether s is a #RRGGBB color.
func ValidColor(s string) bool { return colorRe.MatchString(s) }

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report JSON names, which are what clients send
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("hexcolor7", func(fl validator.FieldLevel) bool {
		return ValidColor(fl.Field().String())
	})
	return v
}

// ValidateStruct checks validate tags and returns the first failure as a
// ValidationError naming the field.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.Validation("invalid input")
	}
	return apperror.Validation("%s", fieldMessage(verrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "hexcolor7":
		return "Invalid color format. Use #RRGGBB"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// TrimStrings trims every exported string field of the struct pointed to by p.
func TrimStrings(p any) {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}
