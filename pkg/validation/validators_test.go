package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomTags(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		value string
		tag   string
		ok    bool
	}{
		{"blank string", "   ", TagNotBlank, false},
		{"non blank", "J1", TagNotBlank, true},
		{"simple email", "jane@example.com", TagEmail, true},
		{"email without at", "jane.example.com", TagEmail, false},
		{"email with space in local part", "ja ne@example.com", TagEmail, false},
		{"ten digit phone", "0812345678", TagPhone, true},
		{"plus prefixed phone", "+628123456789", TagPhone, true},
		{"short phone", "123456789", TagPhone, false},
		{"phone with dashes", "0812-345-678", TagPhone, false},
		{"empty cv", "", TagCvURL, true},
		{"https cv", "https://cdn.example.com/cv.pdf", TagCvURL, true},
		{"upload cv", "/uploads/cv.pdf", TagCvURL, true},
		{"ftp cv", "ftp://example.com/cv.pdf", TagCvURL, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, tt.tag)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
