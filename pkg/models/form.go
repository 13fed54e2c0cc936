package models

import (
	"errors"
	"time"
)

// ErrUnknownField is returned when a field name is not part of the registration form
var ErrUnknownField = errors.New("unknown form field")

// Field names as they appear in the form inputs and in JSON payloads
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldBirthday        = "birthday"
	FieldPhoneNumber     = "phoneNumber"
	FieldAddress         = "address"
	FieldZipCode         = "zipCode"
)

// Fields lists every form field in display order
var Fields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPassword,
	FieldConfirmPassword,
	FieldBirthday,
	FieldPhoneNumber,
	FieldAddress,
	FieldZipCode,
}

// BirthdayLayout is the value format of an HTML date input
const BirthdayLayout = "2006-01-02"

// Represents the raw values typed into the registration form
type RegistrationFormData struct {
	FirstName       string `json:"firstName" form:"firstName" validate:"min=2,max=100"`
	LastName        string `json:"lastName" form:"lastName" validate:"min=2,max=100"`
	Email           string `json:"email" form:"email" validate:"email"`
	Password        string `json:"password" form:"password" validate:"min=8,max=100,hasupper,haslower,hasdigit,hasspecial"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"eqfield=Password"`
	Birthday        string `json:"birthday" form:"birthday" validate:"datetime=2006-01-02,mindate=1900-01-01,minage=18"`
	PhoneNumber     string `json:"phoneNumber,omitempty" form:"phoneNumber" validate:"omitempty,digits=8"`
	Address         string `json:"address" form:"address" validate:"min=5"`
	ZipCode         string `json:"zipCode" form:"zipCode" validate:"digits=4"`
}

// Get returns the raw value of the named field
func (d *RegistrationFormData) Get(field string) (string, error) {
	p, err := d.fieldPtr(field)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// Set replaces the raw value of the named field
func (d *RegistrationFormData) Set(field, value string) error {
	p, err := d.fieldPtr(field)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

func (d *RegistrationFormData) fieldPtr(field string) (*string, error) {
	switch field {
	case FieldFirstName:
		return &d.FirstName, nil
	case FieldLastName:
		return &d.LastName, nil
	case FieldEmail:
		return &d.Email, nil
	case FieldPassword:
		return &d.Password, nil
	case FieldConfirmPassword:
		return &d.ConfirmPassword, nil
	case FieldBirthday:
		return &d.Birthday, nil
	case FieldPhoneNumber:
		return &d.PhoneNumber, nil
	case FieldAddress:
		return &d.Address, nil
	case FieldZipCode:
		return &d.ZipCode, nil
	}
	return nil, ErrUnknownField
}

// RegistrationRecord is the typed result of a successful validation
type RegistrationRecord struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Birthday        time.Time
	PhoneNumber     string
	Address         string
	ZipCode         string
}

// SubmittedRecord is a validated registration with the credential fields removed
type SubmittedRecord struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Birthday    time.Time `json:"birthday"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Address     string    `json:"address"`
	ZipCode     string    `json:"zipCode"`
}

// Sanitized drops password and confirmPassword from the record
func (r RegistrationRecord) Sanitized() SubmittedRecord {
	return SubmittedRecord{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Birthday:    r.Birthday,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		ZipCode:     r.ZipCode,
	}
}
