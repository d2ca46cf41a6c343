package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// accountNameRegex matches GitHub user and organization logins: alphanumerics
// and single hyphens, not starting or ending with a hyphen.
var accountNameRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9])*$`)

// ValidateAccountName checks that name is a plausible GitHub login before it
// is interpolated into an API path.
func ValidateAccountName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidAccount, "account name cannot be empty")
	}
	if len(name) > 39 {
		return New(ErrCodeInvalidAccount, "account name too long (max 39 characters): %q", name)
	}
	if !accountNameRegex.MatchString(name) {
		return New(ErrCodeInvalidAccount, "invalid account name: %q", name)
	}
	return nil
}

// ValidateReadmePath checks the path of the document to rewrite.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory-like path ("", ".", trailing separator)
func ValidateReadmePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "readme path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "readme path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "readme path must name a file, got directory %q", path)
	}
	if base := filepath.Base(path); base == "." || base == ".." {
		return New(ErrCodeInvalidPath, "readme path must name a file, got %q", path)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
