// Package form keeps the editable state of one registration form and re-runs the
// validation schema whenever a field changes.
package form

import (
	"time"

	"github.com/samber/lo"

	"registration-form/pkg/models"
	"registration-form/pkg/validation"
)

// dependentFields lists the fields whose error slot must be refreshed when the key changes
var dependentFields = map[string][]string{
	models.FieldPassword: {models.FieldConfirmPassword},
}

// DependentFields returns the fields re-validated together with field
func DependentFields(field string) []string {
	return dependentFields[field]
}

// Controller holds the current values, the displayed errors and the last submitted
// record of one form. It is not safe for concurrent use.
type Controller struct {
	schema    *validation.Schema
	clock     func() time.Time
	values    models.RegistrationFormData
	errors    validation.FieldErrors
	submitted *models.SubmittedRecord
}

// NewController creates an empty form. clock supplies the reference time for age rules.
func NewController(schema *validation.Schema, clock func() time.Time) *Controller {
	if clock == nil {
		clock = time.Now
	}
	return &Controller{
		schema: schema,
		clock:  clock,
		errors: validation.FieldErrors{},
	}
}

// Change updates one field and refreshes the error slots of the field and its
// dependents. It returns the errors currently shown for those fields.
func (c *Controller) Change(field, value string) (validation.FieldErrors, error) {
	if err := c.values.Set(field, value); err != nil {
		return nil, err
	}

	_, result := c.schema.Validate(c.values, c.clock())

	affected := lo.Uniq(append([]string{field}, DependentFields(field)...))
	shown := validation.FieldErrors{}
	for _, f := range affected {
		if msg, ok := result[f]; ok {
			c.errors[f] = msg
			shown[f] = msg
		} else {
			delete(c.errors, f)
		}
	}
	return shown, nil
}

// Load replaces every field value without touching the displayed errors
func (c *Controller) Load(values models.RegistrationFormData) {
	c.values = values
}

// Submit validates the whole form. On success the sanitized record replaces the
// previous one; on failure the stored record is left as is.
func (c *Controller) Submit() (*models.SubmittedRecord, validation.FieldErrors) {
	record, result := c.schema.Validate(c.values, c.clock())
	if result != nil {
		c.errors = lo.Assign(result)
		return nil, result
	}

	c.errors = validation.FieldErrors{}
	submitted := record.Sanitized()
	c.submitted = &submitted
	return c.Submitted(), nil
}

// Clear drops the submitted record. Field values and errors stay.
func (c *Controller) Clear() {
	c.submitted = nil
}

// Values returns a copy of the current field values
func (c *Controller) Values() models.RegistrationFormData {
	return c.values
}

// Errors returns a copy of the errors currently shown
func (c *Controller) Errors() validation.FieldErrors {
	return lo.Assign(c.errors)
}

// Submitted returns a copy of the last submitted record, or nil
func (c *Controller) Submitted() *models.SubmittedRecord {
	if c.submitted == nil {
		return nil
	}
	submitted := *c.submitted
	return &submitted
}
