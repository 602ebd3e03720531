package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generateRequest struct {
	TemplateID string         `json:"template_id" validate:"required"`
	Email      string         `json:"email,omitempty" validate:"omitempty,email"`
	Note       string         `yaml:"note" validate:"max=5"`
	Label      string         `validate:"min=3"`
	Internal   string         `json:"-" validate:"required"`
	Data       map[string]any `json:"data"`
}

func validRequest() generateRequest {
	return generateRequest{TemplateID: "t-1", Label: "abc", Internal: "x"}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *generateRequest)
		wantErr bool
	}{
		{name: "Valid request", mutate: func(r *generateRequest) {}},
		{name: "Missing template id", mutate: func(r *generateRequest) { r.TemplateID = "" }, wantErr: true},
		{name: "Optional email may be empty", mutate: func(r *generateRequest) { r.Email = "" }},
		{name: "Invalid email", mutate: func(r *generateRequest) { r.Email = "nope" }, wantErr: true},
		{name: "Too long", mutate: func(r *generateRequest) { r.Note = "toolong" }, wantErr: true},
		{name: "Too short", mutate: func(r *generateRequest) { r.Label = "ab" }, wantErr: true},
		{name: "Skipped json field is still validated", mutate: func(r *generateRequest) { r.Internal = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := ValidateStruct(req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *generateRequest)
		message string
	}{
		{name: "Required uses json name", mutate: func(r *generateRequest) { r.TemplateID = "" }, message: "template_id is required"},
		{name: "Email uses json name", mutate: func(r *generateRequest) { r.Email = "nope" }, message: "email must be a valid email"},
		{name: "Max falls back to yaml name", mutate: func(r *generateRequest) { r.Note = "toolong" }, message: "note must be at most 5 characters"},
		{name: "Min without tags uses field name", mutate: func(r *generateRequest) { r.Label = "ab" }, message: "Label must be at least 3 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			messages := GetValidationErrors(ValidateStruct(req))
			require.Len(t, messages, 1)
			assert.Equal(t, tt.message, messages[0])
		})
	}

	t.Run("Multiple errors", func(t *testing.T) {
		messages := GetValidationErrors(ValidateStruct(generateRequest{}))
		assert.Len(t, messages, 3)
	})

	t.Run("Non validation error", func(t *testing.T) {
		assert.Empty(t, GetValidationErrors(assert.AnError))
		assert.Empty(t, GetValidationErrors(nil))
	})
}
