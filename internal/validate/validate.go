// Package validate holds the pure field predicates shared by the user
// directory and the ticket store.
package validate

import (
	"regexp"
	"strings"
)

// Deliberately loose: a local part, an @, and a domain with a dot. Not an
// RFC 5322 validator.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var knownStatuses = map[string]struct{}{
	"open":        {},
	"in_progress": {},
	"closed":      {},
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func IsNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

func IsPasswordLength(s string) bool {
	return len(s) >= 6
}

func IsKnownStatus(s string) bool {
	_, ok := knownStatuses[s]
	return ok
}
