package dispatch

import "regexp"

// emailPattern accepts local@domain(.domain)* and nothing else: no display
// names, no surrounding whitespace. Deliberately looser than full RFC 5322 so
// dirty input sources still mostly pass.
var emailPattern = regexp.MustCompile("^[A-Za-z0-9.!#$%&'*+/=?^_`{|}~-]+@[A-Za-z0-9-]+(?:\\.[A-Za-z0-9-]+)*$")

// IsValidEmail reports whether s is a plausible bare email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
