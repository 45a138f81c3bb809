package memberships_services

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	strictLoginPattern   = regexp.MustCompile(`(?i)[^a-z0-9 _.\-@]`)
	fallbackLoginPattern = regexp.MustCompile(`[^a-z0-9_\-]`)
	loginSpacesPattern   = regexp.MustCompile(`\s+`)
)

const (
	fallbackLogin        = "user"
	loginSuffixLength    = 6
	maxLoginLength       = 60
	loginSuffixSeparator = "_"
)

// loginFromEmail turns the local part of email into a login handle.
func loginFromEmail(email string) string {
	localPart, _, _ := strings.Cut(strings.TrimSpace(email), "@")

	login := strictLoginPattern.ReplaceAllString(localPart, "")
	login = strings.TrimSpace(loginSpacesPattern.ReplaceAllString(login, " "))

	if login == "" {
		login = fallbackLoginPattern.ReplaceAllString(strings.ToLower(localPart), "")
	}

	if login == "" {
		login = fallbackLogin
	}

	return truncateLogin(login, maxLoginLength)
}

// disambiguateLogin appends a short suffix derived from the email exactly
// as submitted, so the same email always maps to the same handle.
func disambiguateLogin(login string, email string) string {
	sum := md5.Sum([]byte(email))
	suffix := loginSuffixSeparator + hex.EncodeToString(sum[:])[:loginSuffixLength]

	return truncateLogin(login, maxLoginLength-len(suffix)) + suffix
}

func truncateLogin(login string, limit int) string {
	if len(login) <= limit {
		return login
	}

	return login[:limit]
}
