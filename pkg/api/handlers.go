package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	log "github.com/sirupsen/logrus"

	"registration-form/pkg/form"
	"registration-form/pkg/middleware"
	"registration-form/pkg/models"
	"registration-form/pkg/services"
)

// Handlers contains all HTTP handlers for the form
type Handlers struct {
	registrationService services.RegistrationService
}

// NewHandlers creates a new Handlers instance
func NewHandlers(registrationService services.RegistrationService) *Handlers {
	return &Handlers{
		registrationService: registrationService,
	}
}

type fieldView struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Error    string
	Required bool
}

var fieldInputs = []struct {
	name, label, inputType string
}{
	{models.FieldFirstName, "Fornavn", "text"},
	{models.FieldLastName, "Efternavn", "text"},
	{models.FieldEmail, "Email", "text"},
	{models.FieldPassword, "Password", "password"},
	{models.FieldConfirmPassword, "Confirm Password", "password"},
	{models.FieldBirthday, "Birthday", "date"},
	{models.FieldPhoneNumber, "Phone Number", "text"},
	{models.FieldAddress, "Adresse", "text"},
	{models.FieldZipCode, "Postnummer", "text"},
}

func formView(state services.FormState) gin.H {
	fields := make([]fieldView, 0, len(fieldInputs))
	for _, in := range fieldInputs {
		value, _ := state.Values.Get(in.name)
		if in.inputType == "password" {
			// never echo credentials back into the page
			value = ""
		}
		fields = append(fields, fieldView{
			Name:     in.name,
			Label:    in.label,
			Type:     in.inputType,
			Value:    value,
			Error:    state.Errors[in.name],
			Required: in.name != models.FieldPhoneNumber,
		})
	}

	view := gin.H{"Fields": fields}
	if state.Submitted != nil {
		rendered, err := json.MarshalIndent(state.Submitted, "", "  ")
		if err != nil {
			log.Printf("Error rendering submitted record: %v", err)
		} else {
			view["Submitted"] = string(rendered)
		}
	}
	return view
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ShowForm renders the page for the current session
func (h *Handlers) ShowForm(c *gin.Context) {
	session := middleware.CurrentSession(c)
	c.HTML(http.StatusOK, "form.html", formView(h.registrationService.State(session)))
}

// SubmitForm handles a plain HTML form post
func (h *Handlers) SubmitForm(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var data models.RegistrationFormData
	if err := c.ShouldBindWith(&data, binding.Form); err != nil {
		log.Printf("Error parsing form post: %v", err)
		c.String(http.StatusBadRequest, "Invalid form data")
		return
	}

	_, errs := h.registrationService.Submit(session, &data)
	status := http.StatusOK
	if errs != nil {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, "form.html", formView(h.registrationService.State(session)))
}

// ClearSubmission handles the clear button of the page
func (h *Handlers) ClearSubmission(c *gin.Context) {
	h.registrationService.Clear(middleware.CurrentSession(c))
	c.Redirect(http.StatusSeeOther, "/")
}

type changeRequest struct {
	Value *string `json:"value" binding:"required"`
}

// ChangeField processes a single field edit and answers with the errors of every
// field the edit re-validated
func (h *Handlers) ChangeField(c *gin.Context) {
	field := c.Param("field")

	var req changeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	shown, err := h.registrationService.ChangeField(middleware.CurrentSession(c), field, *req.Value)
	if err != nil {
		if errors.Is(err, models.ErrUnknownField) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error changing field %s: %v", field, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing change"})
		return
	}

	affected := append([]string{field}, form.DependentFields(field)...)
	c.JSON(http.StatusOK, gin.H{
		"fields": affected,
		"errors": shown,
	})
}

// SubmitJSON submits a complete JSON payload
func (h *Handlers) SubmitJSON(c *gin.Context) {
	var data models.RegistrationFormData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	submitted, errs := h.registrationService.Submit(middleware.CurrentSession(c), &data)
	if errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submitted": submitted})
}

// GetSubmission returns the stored record, or null
func (h *Handlers) GetSubmission(c *gin.Context) {
	state := h.registrationService.State(middleware.CurrentSession(c))
	c.JSON(http.StatusOK, gin.H{"submitted": state.Submitted})
}

// DeleteSubmission clears the stored record
func (h *Handlers) DeleteSubmission(c *gin.Context) {
	h.registrationService.Clear(middleware.CurrentSession(c))
	c.Status(http.StatusNoContent)
}
