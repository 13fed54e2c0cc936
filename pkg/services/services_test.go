package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registration-form/pkg/models"
	"registration-form/pkg/validation"
)

var now = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func newSessionService(t *testing.T, timeout time.Duration) *SessionService {
	t.Helper()
	schema, err := validation.NewSchema()
	require.NoError(t, err)
	s := NewSessionService(schema, timeout, func() time.Time { return now })
	t.Cleanup(s.Close)
	return s
}

func TestResolveCreatesAndReusesSessions(t *testing.T) {
	s := newSessionService(t, time.Minute)

	first := s.Resolve("")
	require.NotEmpty(t, first.ID)

	assert.Same(t, first, s.Resolve(first.ID))
	assert.Equal(t, 1, s.Len())

	other := s.Resolve("not-a-session")
	assert.NotEqual(t, first.ID, other.ID)
	assert.Equal(t, 2, s.Len())
}

func TestResolveReplacesExpiredSession(t *testing.T) {
	s := newSessionService(t, 50*time.Millisecond)
	first := s.Resolve("")

	time.Sleep(100 * time.Millisecond)

	second := s.Resolve(first.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRegistrationFlow(t *testing.T) {
	s := newSessionService(t, time.Minute)
	svc := NewRegistrationService()
	session := s.Resolve("")

	shown, err := svc.ChangeField(session, models.FieldZipCode, "123")
	require.NoError(t, err)
	assert.Equal(t, validation.FieldErrors{models.FieldZipCode: "Postnummer skal være præcis 4 cifre"}, shown)

	_, err = svc.ChangeField(session, "nickname", "x")
	assert.True(t, errors.Is(err, models.ErrUnknownField))

	submitted, errs := svc.Submit(session, &models.RegistrationFormData{
		FirstName:       "Anna",
		LastName:        "Hansen",
		Email:           "anna@example.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		Birthday:        "1990-05-17",
		Address:         "Main St 1",
		ZipCode:         "1234",
	})
	require.Nil(t, errs)
	assert.Equal(t, "Hansen", submitted.LastName)

	state := svc.State(session)
	assert.Empty(t, state.Errors)
	require.NotNil(t, state.Submitted)
	assert.Equal(t, "1234", state.Values.ZipCode)

	svc.Clear(session)
	assert.Nil(t, svc.State(session).Submitted)
}

func TestSubmitWithoutDataUsesCurrentValues(t *testing.T) {
	s := newSessionService(t, time.Minute)
	svc := NewRegistrationService()
	session := s.Resolve("")

	_, err := svc.ChangeField(session, models.FieldFirstName, "Anna")
	require.NoError(t, err)

	submitted, errs := svc.Submit(session, nil)
	assert.Nil(t, submitted)
	assert.False(t, errs.Has(models.FieldFirstName))
	assert.True(t, errs.Has(models.FieldLastName))
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newSessionService(t, time.Minute)
	svc := NewRegistrationService()
	a := s.Resolve("")
	b := s.Resolve("")

	_, err := svc.ChangeField(a, models.FieldFirstName, "A")
	require.NoError(t, err)

	assert.NotEmpty(t, svc.State(a).Errors)
	assert.Empty(t, svc.State(b).Errors)
}

func TestResolveRestartsIdleTimer(t *testing.T) {
	s := newSessionService(t, 100*time.Millisecond)
	first := s.Resolve("")

	// repeated access must not add up to a longer lifetime
	for i := 0; i < 20; i++ {
		require.Same(t, first, s.Resolve(first.ID))
	}

	time.Sleep(300 * time.Millisecond)

	second := s.Resolve(first.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestResolveKeepsActiveSession(t *testing.T) {
	s := newSessionService(t, 200*time.Millisecond)
	first := s.Resolve("")

	for i := 0; i < 4; i++ {
		time.Sleep(100 * time.Millisecond)
		require.Same(t, first, s.Resolve(first.ID))
	}
}
