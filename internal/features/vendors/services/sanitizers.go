package vendors_services

import (
	"regexp"
	"strings"
	"unicode"

	vendors_dto "vendors-backend/internal/features/vendors/dto"
	validation_utils "vendors-backend/internal/util/validation"
)

var (
	htmlTagPattern    = regexp.MustCompile(`(?s)<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// sanitizeText strips markup and collapses whitespace to single spaces.
func sanitizeText(value string) string {
	value = htmlTagPattern.ReplaceAllString(value, "")
	value = whitespacePattern.ReplaceAllString(value, " ")

	return strings.TrimSpace(value)
}

func sanitizeURL(value string) string {
	value = strings.TrimSpace(value)
	if !validation_utils.IsAbsoluteHTTPURL(value) {
		return ""
	}

	return value
}

func sanitizeEmail(value string) string {
	value = strings.TrimSpace(value)
	if !validation_utils.IsEmail(value) {
		return ""
	}

	return value
}

// sanitizePhone keeps digits and a single leading plus sign.
func sanitizePhone(value string) string {
	value = strings.TrimSpace(value)

	var builder strings.Builder
	if strings.HasPrefix(value, "+") {
		builder.WriteByte('+')
	}

	for _, r := range value {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			builder.WriteRune(r)
		}
	}

	result := builder.String()
	if result == "+" {
		return ""
	}

	return result
}

func sanitizeYears(value int) int {
	if value < 0 {
		return -value
	}

	return value
}

func sanitizeContact(contact vendors_dto.VendorContactDTO) vendors_dto.VendorContactDTO {
	return vendors_dto.VendorContactDTO{
		Email:    sanitizeEmail(contact.Email),
		Phone:    sanitizePhone(contact.Phone),
		Whatsapp: sanitizePhone(contact.Whatsapp),
	}
}
