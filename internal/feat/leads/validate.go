package leads

import (
	"strings"

	"github.com/kozmoai/site/pkg/kz/validation"
)

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCompany = "company"
	FieldMessage = "message"

	nameMinLength    = 2
	nameMaxLength    = 200
	companyMaxLength = 200
	messageMaxLength = 5000

	msgNameTooShort = "Name must be at least 2 characters."
	msgInvalidEmail = "Please enter a valid email address."
)

// Validate checks the form and builds the record to store. Company and
// message are trimmed; blank means not provided.
func Validate(in FormInput) (*DemoRequest, validation.ValidationErrors) {
	var errs validation.ValidationErrors

	errs.AddError(validation.StringMinLength(FieldName, in.Name, nameMinLength, msgNameTooShort))
	errs.AddError(validation.StringMaxLength(FieldName, in.Name, nameMaxLength))
	errs.AddError(validation.Email(FieldEmail, in.Email, msgInvalidEmail))
	errs.AddError(validation.StringMaxLength(FieldCompany, in.Company, companyMaxLength))
	errs.AddError(validation.StringMaxLength(FieldMessage, in.Message, messageMaxLength))

	if errs.HasErrors() {
		return nil, errs
	}

	return &DemoRequest{
		Name:                  strings.TrimSpace(in.Name),
		Email:                 strings.TrimSpace(in.Email),
		Company:               strings.TrimSpace(in.Company),
		Message:               strings.TrimSpace(in.Message),
		SubscribeToNewsletter: in.WantsNewsletter(),
	}, nil
}
