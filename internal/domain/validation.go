package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	MinUsernameLen = 3
	MinPasswordLen = 6
	// bcrypt ignores everything past 72 bytes
	MaxPasswordBytes = 72
	MaxBioLen        = 500
	MaxInterests     = 20
)

// NormalizeEmail trims and lower-cases an email for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks the sign-up form.
func ValidateRegistration(username, email, password, confirm string) error {
	v := NewValidationError()

	switch u := strings.TrimSpace(username); {
	case u == "":
		v.Add("username", "Username is required")
	case utf8.RuneCountInString(u) < MinUsernameLen:
		v.Add("username", "Username must be at least 3 characters")
	}

	validateEmail(v, email)

	switch {
	case strings.TrimSpace(password) == "":
		v.Add("password", "Password is required")
	case utf8.RuneCountInString(password) < MinPasswordLen:
		v.Add("password", "Password must be at least 6 characters")
	case len(password) > MaxPasswordBytes:
		v.Add("password", "Password length should not exceed 72 bytes")
	}

	switch {
	case strings.TrimSpace(confirm) == "":
		v.Add("confirm_password", "Please confirm your password")
	case confirm != password:
		v.Add("confirm_password", "Passwords do not match")
	}

	return v.OrNil()
}

// ValidateLogin checks the sign-in form.
func ValidateLogin(email, password string) error {
	v := NewValidationError()
	validateEmail(v, email)
	if strings.TrimSpace(password) == "" {
		v.Add("password", "Password is required")
	}
	return v.OrNil()
}

// ValidateProfile checks the profile-setup form. interests must already be
// normalized.
func ValidateProfile(bio string, interests []string) error {
	v := NewValidationError()
	switch b := strings.TrimSpace(bio); {
	case b == "":
		v.Add("bio", "Bio is required")
	case utf8.RuneCountInString(b) > MaxBioLen:
		v.Add("bio", "Bio is too long")
	}
	switch {
	case len(interests) == 0:
		v.Add("interests", "Interests are required")
	case len(interests) > MaxInterests:
		v.Add("interests", "Too many interests")
	}
	return v.OrNil()
}

// NormalizeInterests trims, lower-cases and de-duplicates interest tags,
// keeping first-seen order.
func NormalizeInterests(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, tag := range in {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func validateEmail(v *ValidationError, email string) {
	e := strings.TrimSpace(email)
	switch {
	case e == "":
		v.Add("email", "Email is required")
	case !emailPattern.MatchString(e):
		v.Add("email", "Please enter a valid email")
	}
}
