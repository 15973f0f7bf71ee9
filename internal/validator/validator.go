package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	models "github.com/rgaultier/taxiresa/internal"
)

// French local or international format: a leading 0 or a +33/0033 prefix,
// then nine digits grouped arbitrarily with spaces, dots or dashes.
var frenchPhoneRegex = regexp.MustCompile(`^(?:\+33|0033|0)[\s.\-]*[1-9](?:[\s.\-]*\d{2}){4}$`)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("french_phone", validateFrenchPhone)
	v.RegisterValidation("future_date", validateFutureDate)
	v.RegisterStructValidation(validateBookingRequest, models.BookingRequest{})
	v.RegisterTagNameFunc(jsonFieldName)

	return &CustomValidator{validator: v}
}

// Validate returns FieldErrors so handlers can render inline per-field
// messages. All rules are evaluated together.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func validateFrenchPhone(fl validator.FieldLevel) bool {
	return frenchPhoneRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateFutureDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now())
}

// Arrival must differ from departure, compared case-insensitively. The error
// is attached to the arrival field.
func validateBookingRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.BookingRequest)
	dep := strings.TrimSpace(req.Departure)
	arr := strings.TrimSpace(req.Arrival)
	if dep != "" && strings.EqualFold(dep, arr) {
		sl.ReportError(req.Arrival, "arrival", "Arrival", "distinct_arrival", "")
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "french_phone":
		return "must be a valid French phone number"
	case "future_date":
		return "must be in the future"
	case "distinct_arrival":
		return "arrival must differ from departure"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
