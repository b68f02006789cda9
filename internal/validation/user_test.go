package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todokeeper/internal/apperr"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM \n"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
		errMsg  string
	}{
		{name: "valid email", email: "alice@example.com", wantErr: false},
		{name: "valid with plus", email: "alice+todo@example.com", wantErr: false},
		{name: "valid subdomain", email: "bob@mail.example.org", wantErr: false},
		{name: "empty email", email: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "missing at", email: "alice.example.com", wantErr: true, errMsg: "invalid email"},
		{name: "missing local part", email: "@example.com", wantErr: true, errMsg: "invalid email"},
		{name: "display name form", email: "Alice <alice@example.com>", wantErr: true, errMsg: "invalid email"},
		{name: "spaces inside", email: "alice smith@example.com", wantErr: true, errMsg: "invalid email"},
		{
			name:    "too long",
			email:   strings.Repeat("a", MaxEmailLen) + "@example.com",
			wantErr: true,
			errMsg:  "must not exceed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperr.ErrValidation)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "empty", password: "", wantErr: true},
		{name: "single char", password: "x", wantErr: false},
		{name: "regular", password: "pw12345", wantErr: false},
		{name: "longer than bcrypt limit", password: strings.Repeat("p", 200), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
