package validation_test

import (
	"testing"

	"github.com/stitchdesk/crm/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Email / Phone / Color
// =============================================================================

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain address", "jane@example.com", true},
		{"subdomain", "orders@mail.stitch.co", true},
		{"missing at", "not-an-email", false},
		{"missing domain", "jane@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := validation.ValidateEmail(tt.input)
			if tt.valid {
				assert.Nil(t, fe)
				return
			}
			require.NotNil(t, fe)
			assert.Equal(t, "email", fe.Field)
		})
	}

	fe := validation.ValidateEmail("not-an-email")
	require.NotNil(t, fe)
	assert.Equal(t, "Invalid email", fe.Message)
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"national US number", "2015550123", true},
		{"international US number", "+12015550123", true},
		{"formatted", "(201) 555-0123", true},
		{"too short", "12345", false},
		{"too long", "+1201555012345678901", false},
		{"letters", "abcdefgh", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := validation.ValidatePhone(tt.input)
			if tt.valid {
				assert.Nil(t, fe)
				return
			}
			require.NotNil(t, fe)
			assert.Equal(t, "Must be a valid phone number", fe.Message)
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"short form", "#fff", true},
		{"long form", "#ffffff", true},
		{"upper case", "#A1B2C3", true},
		{"named color", "red", false},
		{"missing hash", "ffffff", false},
		{"not hex", "#ggg", false},
		{"too long", "#fffffffff", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := validation.ValidateHexColor(tt.input)
			if tt.valid {
				assert.Nil(t, fe)
				return
			}
			require.NotNil(t, fe)
			assert.Equal(t, "Must be a valid hex color", fe.Message)
		})
	}
}

// =============================================================================
// Username
// =============================================================================

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    validation.UsernameKind
		wantTag string
	}{
		{"two chars for sales rep", "ab", validation.UsernameSalesRep, ""},
		{"ten chars for sales rep", "abcde12345", validation.UsernameSalesRep, ""},
		{"one char is too short", "a", validation.UsernameSalesRep, "min"},
		{"eleven chars too long for sales rep", "abcde123456", validation.UsernameSalesRep, "max"},
		{"eleven chars fine as reference", "abcde123456", validation.UsernameReference, ""},
		{"punctuation", "ab!", validation.UsernameSalesRep, "username"},
		{"space", "a b", validation.UsernameReference, "username"},
		{"color settings exactly two", "jd", validation.UsernameColorSettings, ""},
		{"color settings three", "jdo", validation.UsernameColorSettings, "len"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := validation.ValidateUsername(tt.input, tt.kind)
			if tt.wantTag == "" {
				assert.Nil(t, fe)
				return
			}
			require.NotNil(t, fe)
			assert.Equal(t, tt.wantTag, fe.Tag)
		})
	}

	fe := validation.ValidateUsername("ab!", validation.UsernameSalesRep)
	require.NotNil(t, fe)
	assert.Equal(t, "Username can only contain alphanumeric characters", fe.Message)
}

// =============================================================================
// Address codes
// =============================================================================

func TestValidateAddressCodes(t *testing.T) {
	assert.Nil(t, validation.ValidateZip("12345"))
	assert.Nil(t, validation.ValidateZip("12345-6789"))
	if fe := validation.ValidateZip("1234"); assert.NotNil(t, fe) {
		assert.Equal(t, "Invalid zip", fe.Message)
	}

	assert.Nil(t, validation.ValidateState("NY"))
	if fe := validation.ValidateState("N1"); assert.NotNil(t, fe) {
		assert.Equal(t, "Invalid state", fe.Message)
	}
	assert.NotNil(t, validation.ValidateState("NYC"))

	assert.Nil(t, validation.ValidateCountry("US"))
	assert.Nil(t, validation.ValidateCountry("USA"))
	if fe := validation.ValidateCountry("U"); assert.NotNil(t, fe) {
		assert.Equal(t, "Invalid country code", fe.Message)
	}
	assert.NotNil(t, validation.ValidateCountry("US1"))
}

// =============================================================================
// Company / Settings
// =============================================================================

func TestValidateCompanyID(t *testing.T) {
	fe := validation.ValidateCompanyID(0)
	require.NotNil(t, fe)
	assert.Equal(t, "Please select a valid company", fe.Message)

	assert.NotNil(t, validation.ValidateCompanyID(-3))
	assert.Nil(t, validation.ValidateCompanyID(1))
	assert.Nil(t, validation.ValidateCompanyID(42))
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"object", `{"a":1}`, true},
		{"empty object", `{}`, true},
		{"array", `[1,2]`, true},
		{"not json", "not json", false},
		{"too short", "1", false},
		{"truncated", `{"a":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := validation.ValidateSettings(tt.input)
			if tt.valid {
				assert.Nil(t, fe)
				return
			}
			require.NotNil(t, fe)
			assert.Equal(t, "Invalid settings object", fe.Message)
		})
	}
}
