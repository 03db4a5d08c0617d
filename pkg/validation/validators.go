package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// local@domain, deliberately loose
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

	// optional +, digits 10-15 length
	phoneRegex = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)
)

// Accepted CV locations: absolute web URLs or files served from our upload dir.
var cvURLPrefixes = []string{"http://", "https://", "/uploads/"}

// Tag names registered by RegisterValidators
const (
	TagNotBlank = "not_blank"
	TagEmail    = "app_email"
	TagPhone    = "app_phone"
	TagCvURL    = "cv_url"
)

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation(TagNotBlank, NotBlank)
	_ = v.RegisterValidation(TagEmail, ValidEmail)
	_ = v.RegisterValidation(TagPhone, ValidPhone)
	_ = v.RegisterValidation(TagCvURL, ValidCvURL)
}

// NotBlank rejects empty and whitespace-only strings
func NotBlank(fl validator.FieldLevel) bool {
	return !IsBlank(fl.Field().String())
}

func ValidEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func ValidPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// ValidCvURL accepts an empty value; a CV is optional
func ValidCvURL(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true
	}
	for _, prefix := range cvURLPrefixes {
		if strings.HasPrefix(val, prefix) {
			return true
		}
	}
	return false
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
