package feedback

import "testing"

func TestFieldErrorsErrorIsDeterministic(t *testing.T) {
	errs := FieldErrors{
		"title":  "Title is required",
		"status": "Status must be open, in_progress, or closed",
	}
	want := "status: Status must be open, in_progress, or closed; title: Title is required"
	if got := errs.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestFieldErrorsFieldsSorted(t *testing.T) {
	errs := FieldErrors{"name": "n", "email": "e", "password": "p"}
	fields := errs.Fields()
	if len(fields) != 3 || fields[0] != "email" || fields[1] != "name" || fields[2] != "password" {
		t.Fatalf("unexpected field order: %v", fields)
	}
}

func TestNotificationConstructors(t *testing.T) {
	if n := Success("ok"); n.Severity != SeveritySuccess || n.Message != "ok" {
		t.Fatalf("unexpected success notification: %+v", n)
	}
	if n := Warning("careful"); n.Severity != SeverityWarning {
		t.Fatalf("unexpected warning notification: %+v", n)
	}
	if n := Failure("bad"); n.Severity != SeverityError {
		t.Fatalf("unexpected failure notification: %+v", n)
	}
}
