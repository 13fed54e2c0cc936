package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetEveryField(t *testing.T) {
	var data RegistrationFormData
	for _, field := range Fields {
		require.NoError(t, data.Set(field, field+"-value"))
	}

	for _, field := range Fields {
		value, err := data.Get(field)
		require.NoError(t, err)
		assert.Equal(t, field+"-value", value)
	}
	assert.Equal(t, "confirmPassword-value", data.ConfirmPassword)
}

func TestUnknownField(t *testing.T) {
	var data RegistrationFormData

	err := data.Set("FirstName", "Anna")
	assert.True(t, errors.Is(err, ErrUnknownField))

	_, err = data.Get("")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestSanitizedDropsCredentials(t *testing.T) {
	record := RegistrationRecord{
		FirstName:       "Anna",
		LastName:        "Hansen",
		Email:           "anna@example.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		Birthday:        time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC),
		PhoneNumber:     "12345678",
		Address:         "Main St 1",
		ZipCode:         "1234",
	}

	want := SubmittedRecord{
		FirstName:   "Anna",
		LastName:    "Hansen",
		Email:       "anna@example.com",
		Birthday:    time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC),
		PhoneNumber: "12345678",
		Address:     "Main St 1",
		ZipCode:     "1234",
	}
	if diff := cmp.Diff(want, record.Sanitized()); diff != "" {
		t.Fatalf("sanitized mismatch (-want +got):\n%s", diff)
	}
}
