package validation

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"registration-form/pkg/models"
)

// labels are the Danish display names substituted into the shared messages
var labels = map[string]string{
	models.FieldFirstName:   "Fornavn",
	models.FieldLastName:    "Efternavn",
	models.FieldPassword:    "Adgangskode",
	models.FieldBirthday:    "Fødselsdato",
	models.FieldPhoneNumber: "Telefonnummer",
	models.FieldAddress:     "Adresse",
	models.FieldZipCode:     "Postnummer",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

type message struct {
	tag  string
	text string
	// args returns the placeholder values in {0}, {1} order
	args func(fe validator.FieldError) []string
}

func labelAndParam(fe validator.FieldError) []string {
	return []string{label(fe.Field()), fe.Param()}
}

func labelOnly(fe validator.FieldError) []string {
	return []string{label(fe.Field())}
}

func paramOnly(fe validator.FieldError) []string {
	return []string{fe.Param()}
}

func labelAndYear(fe validator.FieldError) []string {
	year := fe.Param()
	if len(year) >= 4 {
		year = year[:4]
	}
	return []string{label(fe.Field()), year}
}

func noArgs(validator.FieldError) []string { return nil }

var messages = []message{
	{tag: "min", text: "{0} skal være mindst {1} tegn", args: labelAndParam},
	{tag: "max", text: "{0} må ikke være længere end {1} tegn", args: labelAndParam},
	{tag: "email", text: "Ugyldig email adresse", args: noArgs},
	{tag: "hasupper", text: "{0} skal indeholde mindst ét stort bogstav", args: labelOnly},
	{tag: "haslower", text: "{0} skal indeholde mindst ét lille bogstav", args: labelOnly},
	{tag: "hasdigit", text: "{0} skal indeholde mindst ét tal", args: labelOnly},
	{tag: "hasspecial", text: "{0} skal indeholde mindst ét specialtegn (!@#$%^&*)", args: labelOnly},
	{tag: "eqfield", text: "Adgangskoderne er ikke ens", args: noArgs},
	{tag: "datetime", text: "Ugyldig fødselsdato", args: noArgs},
	{tag: "mindate", text: "{0} skal være efter {1}", args: labelAndYear},
	{tag: "minage", text: "Du skal være mindst {0} år gammel", args: paramOnly},
	{tag: "digits", text: "{0} skal være præcis {1} cifre", args: labelAndParam},
}

func registerMessages(v *validator.Validate, trans ut.Translator) error {
	for _, m := range messages {
		m := m
		err := v.RegisterTranslation(m.tag, trans,
			func(t ut.Translator) error {
				return t.Add(m.tag, m.text, true)
			},
			func(t ut.Translator, fe validator.FieldError) string {
				msg, err := t.T(fe.Tag(), m.args(fe)...)
				if err != nil {
					return fe.Error()
				}
				return msg
			},
		)
		if err != nil {
			return fmt.Errorf("error registering %s message: %w", m.tag, err)
		}
	}
	return nil
}
