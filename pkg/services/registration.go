package services

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"registration-form/pkg/form"
	"registration-form/pkg/models"
	"registration-form/pkg/utils"
	"registration-form/pkg/validation"
)

// FormState is what the page shows for a session
type FormState struct {
	Values    models.RegistrationFormData
	Errors    validation.FieldErrors
	Submitted *models.SubmittedRecord
}

// RegistrationService defines the interface for handling form events of a session
type RegistrationService interface {
	ChangeField(session *Session, field, value string) (validation.FieldErrors, error)
	Submit(session *Session, data *models.RegistrationFormData) (*models.SubmittedRecord, validation.FieldErrors)
	Clear(session *Session)
	State(session *Session) FormState
}

type registrationServiceImpl struct{}

// NewRegistrationService creates a new registration service
func NewRegistrationService() RegistrationService {
	return &registrationServiceImpl{}
}

// ChangeField applies a single keystroke-level change
func (s *registrationServiceImpl) ChangeField(session *Session, field, value string) (validation.FieldErrors, error) {
	var (
		shown validation.FieldErrors
		err   error
	)
	session.Do(func(c *form.Controller) {
		shown, err = c.Change(field, value)
	})
	if err != nil {
		return nil, fmt.Errorf("error changing %q: %w", field, err)
	}
	return shown, nil
}

// Submit validates the whole form. When data is non-nil it replaces the field values first.
func (s *registrationServiceImpl) Submit(session *Session, data *models.RegistrationFormData) (*models.SubmittedRecord, validation.FieldErrors) {
	var (
		submitted *models.SubmittedRecord
		errs      validation.FieldErrors
	)
	session.Do(func(c *form.Controller) {
		if data != nil {
			c.Load(*data)
		}
		submitted, errs = c.Submit()
	})

	logger := log.WithField("session", session.ID)
	if errs != nil {
		logger.WithField("invalidFields", len(errs)).Info("Rejected registration")
		return nil, errs
	}

	// Email is logged as a hash only
	logger.WithField("emailHash", utils.HashString(submitted.Email)).Info("Accepted registration")
	return submitted, nil
}

// Clear removes the submitted record of the session
func (s *registrationServiceImpl) Clear(session *Session) {
	session.Do(func(c *form.Controller) {
		c.Clear()
	})
	log.WithField("session", session.ID).Debug("Cleared submitted registration")
}

// State snapshots the session's form
func (s *registrationServiceImpl) State(session *Session) FormState {
	var state FormState
	session.Do(func(c *form.Controller) {
		state = FormState{
			Values:    c.Values(),
			Errors:    c.Errors(),
			Submitted: c.Submitted(),
		}
	})
	return state
}
