package flow

import "regexp"

// emailPattern is a pragmatic address grammar: one @, no whitespace, a dotted
// domain. Anything stricter belongs to the identity provider.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

const (
	minNameLen     = 3
	minPasswordLen = 3
)

// validate checks a normalized submission before any side effect. Returns a
// user-facing message, or "" when the input is acceptable.
func validate(mode Mode, name, email, password string) string {
	if mode == ModeSignUp && len(name) < minNameLen {
		return "Name must be at least 3 characters."
	}
	if !emailPattern.MatchString(email) {
		return "Please enter a valid email address."
	}
	if len(password) < minPasswordLen {
		return "Password must be at least 3 characters."
	}
	return ""
}
