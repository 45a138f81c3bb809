package validation_utils

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func IsEmail(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	return validate.Var(value, "email") == nil
}

// IsAbsoluteHTTPURL accepts only http and https URLs with a host.
func IsAbsoluteHTTPURL(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || validate.Var(value, "url") != nil {
		return false
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}

	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
