package form

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/flock-console/internal/models"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

// Messager lets a draft override the message of a failing rule. Keys are
// "<StructField>.<tag>", e.g. "EweID.samesheep".
type Messager interface {
	Messages() map[string]string
}

// NewValidator returns a validator with the draft rules registered:
// notblank, isodate, nonnegdecimal and sheepid, plus the mating pair
// cross-field check. Field names in messages come from the
// label struct tag, falling back to the form tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		raw := strings.TrimSpace(fl.Field().String())
		if raw == "" {
			return false
		}
		_, err := models.ParseDate(raw)
		return err == nil
	})
	mustRegister(v, "nonnegdecimal", func(fl validator.FieldLevel) bool {
		amount, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && !amount.IsNegative()
	})
	mustRegister(v, "sheepid", func(fl validator.FieldLevel) bool {
		_, ok := parseSheepID(fl.Field().String())
		return ok
	})
	v.RegisterStructValidation(distinctMatingSheep, MatingPairDraft{})
	return v
}

// parseSheepID accepts positive integer ids only.
func parseSheepID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	return id, err == nil && id > 0
}

// distinctMatingSheep compares the parsed ids so "1" and "01" count as the
// same sheep.
func distinctMatingSheep(sl validator.StructLevel) {
	draft := sl.Current().Interface().(MatingPairDraft)
	ram, okRam := parseSheepID(draft.RamID)
	ewe, okEwe := parseSheepID(draft.EweID)
	if okRam && okEwe && ram == ewe {
		sl.ReportError(draft.EweID, "Ewe", "EweID", "samesheep", "RamID")
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// firstFailure validates draft and converts the first failing rule into a
// validation error carrying a human message.
func firstFailure(v *validator.Validate, draft interface{}) error {
	err := v.Struct(draft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	fe := verrs[0]
	message := ""
	if m, ok := draft.(Messager); ok {
		message = m.Messages()[fe.StructField()+"."+fe.Tag()]
	}
	if message == "" {
		message = defaultMessage(fe)
	}
	return appErrors.Clone(appErrors.ErrValidation, message)
}

func defaultMessage(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "isodate":
		return label + " must be a date (YYYY-MM-DD)"
	case "nonnegdecimal":
		return label + " must be a non-negative number"
	case "numeric":
		return label + " must be a number"
	case "sheepid":
		return label + " must be a sheep id"
	case "email":
		return "Please enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return label + " does not match"
	case "nefield":
		return label + " must differ"
	}
	return label + " is invalid"
}
