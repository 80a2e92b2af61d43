package leads

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     FormInput
		wantField []string
	}{
		{"valid minimal", FormInput{Name: "Al", Email: "al@x.com"}, nil},
		{"valid full", FormInput{Name: "Ada Lovelace", Email: "ada@example.org", Company: "Analytical", Message: "Hi"}, nil},
		{"name too short", FormInput{Name: "A", Email: "al@x.com"}, []string{FieldName}},
		{"name short after trim", FormInput{Name: "  A  ", Email: "al@x.com"}, []string{FieldName}},
		{"name empty", FormInput{Email: "al@x.com"}, []string{FieldName}},
		{"email missing", FormInput{Name: "Al"}, []string{FieldEmail}},
		{"email no at", FormInput{Name: "Al", Email: "al.x.com"}, []string{FieldEmail}},
		{"email no domain", FormInput{Name: "Al", Email: "al@"}, []string{FieldEmail}},
		{"both invalid", FormInput{Name: "A", Email: "nope"}, []string{FieldName, FieldEmail}},
		{"message too long", FormInput{Name: "Al", Email: "al@x.com", Message: strings.Repeat("x", messageMaxLength+1)}, []string{FieldMessage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, errs := Validate(tt.input)
			if tt.wantField == nil {
				require.False(t, errs.HasErrors(), errs.Error())
				require.NotNil(t, req)
				return
			}
			assert.Nil(t, req)
			assert.Equal(t, tt.wantField, errs.Fields())
		})
	}
}

func TestValidateMessages(t *testing.T) {
	_, errs := Validate(FormInput{Name: "A", Email: "bad"})
	assert.Equal(t, "Name must be at least 2 characters.", errs.ByField(FieldName))
	assert.Equal(t, "Please enter a valid email address.", errs.ByField(FieldEmail))
}

func TestValidateNormalizes(t *testing.T) {
	req, errs := Validate(FormInput{
		Name:    "  Al  ",
		Email:   " al@x.com ",
		Company: "   ",
		Message: "\n",
	})
	require.False(t, errs.HasErrors())

	assert.Equal(t, "Al", req.Name)
	assert.Equal(t, "al@x.com", req.Email)
	assert.Empty(t, req.Company)
	assert.Empty(t, req.Message)
	assert.True(t, req.SubscribeToNewsletter, "newsletter defaults to true")
	assert.True(t, req.CreatedAt.IsZero(), "creation time is set when stored")
}

func TestValidateNewsletterOptOut(t *testing.T) {
	req, errs := Validate(FormInput{Name: "Al", Email: "al@x.com", Subscribe: boolPtr(false)})
	require.False(t, errs.HasErrors())
	assert.False(t, req.SubscribeToNewsletter)
}

func TestDefaultFormInput(t *testing.T) {
	in := DefaultFormInput()
	assert.Empty(t, in.Name)
	assert.Empty(t, in.Email)
	require.NotNil(t, in.Subscribe)
	assert.True(t, *in.Subscribe)
	assert.True(t, FormInput{}.WantsNewsletter())
}
