package feedback

import (
	"sort"
	"strings"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is the confirmation channel contract for the UI layer:
// every successful mutation emits one, every hard failure emits one.
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func Success(message string) Notification {
	return Notification{Message: message, Severity: SeveritySuccess}
}

func Warning(message string) Notification {
	return Notification{Message: message, Severity: SeverityWarning}
}

func Failure(message string) Notification {
	return Notification{Message: message, Severity: SeverityError}
}

// FieldErrors maps an input field name to a user-facing message. It is the
// inline-display channel for validation failures and doubles as the error
// value returned by operations that reject their input.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "invalid input"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// Fields returns the field names in deterministic order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
