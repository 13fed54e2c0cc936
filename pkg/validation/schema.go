package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/da"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"registration-form/pkg/models"
)

// FieldErrors maps a field name to a human readable message. A nil value means the
// candidate passed every rule.
type FieldErrors map[string]string

// Has reports whether the field has an error
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Schema validates registration candidates against the form rules
type Schema struct {
	validate *validator.Validate
	trans    ut.Translator
}

type nowKey struct{}

// WithNow stores the reference time used by age rules
func WithNow(ctx context.Context, now time.Time) context.Context {
	return context.WithValue(ctx, nowKey{}, now)
}

func nowFromContext(ctx context.Context) time.Time {
	if now, ok := ctx.Value(nowKey{}).(time.Time); ok {
		return now
	}
	return time.Now()
}

var charClasses = map[string]*regexp.Regexp{
	"hasupper":   regexp.MustCompile(`[A-Z]`),
	"haslower":   regexp.MustCompile(`[a-z]`),
	"hasdigit":   regexp.MustCompile(`[0-9]`),
	"hasspecial": regexp.MustCompile(`[!@#$%^&*]`),
}

// NewSchema builds the validator with the custom rules and Danish messages registered
func NewSchema() (*Schema, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the same names the form uses
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, re := range charClasses {
		re := re
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			return nil, fmt.Errorf("error registering %s rule: %w", tag, err)
		}
	}
	if err := v.RegisterValidation("digits", isDigits); err != nil {
		return nil, fmt.Errorf("error registering digits rule: %w", err)
	}
	if err := v.RegisterValidation("mindate", isOnOrAfterDate); err != nil {
		return nil, fmt.Errorf("error registering mindate rule: %w", err)
	}
	if err := v.RegisterValidationCtx("minage", hasMinimumAge); err != nil {
		return nil, fmt.Errorf("error registering minage rule: %w", err)
	}

	uni := ut.New(da.New(), da.New())
	trans, _ := uni.GetTranslator("da")
	if err := registerMessages(v, trans); err != nil {
		return nil, err
	}

	s := &Schema{validate: v, trans: trans}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// sample passes every rule, so checking it evaluates each tag of the schema
var sample = models.RegistrationFormData{
	FirstName:       "Anna",
	LastName:        "Hansen",
	Email:           "anna@example.com",
	Password:        "Abcdef1!",
	ConfirmPassword: "Abcdef1!",
	Birthday:        "1990-05-17",
	PhoneNumber:     "12345678",
	Address:         "Main St 1",
	ZipCode:         "1234",
}

// check runs the rules once so a broken schema fails at construction, not on a request
func (s *Schema) check() error {
	err := s.validate.StructCtx(WithNow(context.Background(), time.Now()), sample)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("error checking schema: sample rejected on %s", verrs[0].Field())
	}
	return fmt.Errorf("error checking schema: %w", err)
}

// Validate checks every field of the candidate against its rules and the password
// confirmation against the password. now is the reference time for the age rule.
func (s *Schema) Validate(candidate models.RegistrationFormData, now time.Time) (models.RegistrationRecord, FieldErrors) {
	err := s.validate.StructCtx(WithNow(context.Background(), now), candidate)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			// ruled out by check in NewSchema
			panic(err)
		}
		fieldErrors := make(FieldErrors, len(verrs))
		for _, fe := range verrs {
			if _, seen := fieldErrors[fe.Field()]; !seen {
				fieldErrors[fe.Field()] = fe.Translate(s.trans)
			}
		}
		return models.RegistrationRecord{}, fieldErrors
	}

	// the datetime rule already accepted the layout
	birthday, _ := time.Parse(models.BirthdayLayout, candidate.Birthday)

	return models.RegistrationRecord{
		FirstName:       candidate.FirstName,
		LastName:        candidate.LastName,
		Email:           candidate.Email,
		Password:        candidate.Password,
		ConfirmPassword: candidate.ConfirmPassword,
		Birthday:        birthday,
		PhoneNumber:     candidate.PhoneNumber,
		Address:         candidate.Address,
		ZipCode:         candidate.ZipCode,
	}, nil
}

// isDigits accepts strings made of exactly param ASCII digits
func isDigits(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("bad digits param %q", fl.Param()))
	}
	value := fl.Field().String()
	if len(value) != n {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

func isOnOrAfterDate(fl validator.FieldLevel) bool {
	minDate, err := time.Parse(models.BirthdayLayout, fl.Param())
	if err != nil {
		panic(fmt.Sprintf("bad mindate param %q", fl.Param()))
	}
	date, err := time.Parse(models.BirthdayLayout, fl.Field().String())
	if err != nil {
		return false
	}
	return !date.Before(minDate)
}

// hasMinimumAge accepts birthdays at least param years before the reference time.
// The comparison is by calendar day in the reference time's location.
func hasMinimumAge(ctx context.Context, fl validator.FieldLevel) bool {
	years, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("bad minage param %q", fl.Param()))
	}
	now := nowFromContext(ctx)
	birthday, err := time.ParseInLocation(models.BirthdayLayout, fl.Field().String(), now.Location())
	if err != nil {
		return false
	}
	cutoff := now.AddDate(-years, 0, 0)
	cutoffDay := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, cutoff.Location())
	return !birthday.After(cutoffDay)
}
