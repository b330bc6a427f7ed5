package validate

import (
	"errors"
	"testing"

	"pinatlas/internal/apperr"
)

func kindOf(t *testing.T, err error) string {
	t.Helper()
	var validation *apperr.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	return validation.Kind
}

func TestArgsRejectsNilValue(t *testing.T) {
	err := New().Args(Arg{Name: "title", Value: nil})
	if kindOf(t, err) != apperr.KindRequirement {
		t.Fatalf("expected requirement kind, got %v", err)
	}
}

func TestArgsRejectsEmptyString(t *testing.T) {
	err := New().Args(Arg{Name: "title", Value: "   ", NotEmpty: true})
	if kindOf(t, err) != apperr.KindValue {
		t.Fatalf("expected value kind, got %v", err)
	}
}

func TestArgsAcceptsValidArguments(t *testing.T) {
	err := New().Args(
		Arg{Name: "title", Value: "Trips", NotEmpty: true},
		Arg{Name: "note", Value: "", NotEmpty: false},
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestEmailFormat(t *testing.T) {
	check := New()
	if err := check.Email("ana@example.com"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}
	err := check.Email("not-an-email")
	if kindOf(t, err) != apperr.KindFormat {
		t.Fatalf("expected format kind, got %v", err)
	}
}

func TestCoordinatesRange(t *testing.T) {
	check := New()
	if err := check.Coordinates(41.38, 2.17); err != nil {
		t.Fatalf("expected valid coordinates, got %v", err)
	}
	if err := check.Coordinates(91, 0); err == nil {
		t.Fatal("expected latitude out of range to fail")
	}
	if err := check.Coordinates(0, 181); err == nil {
		t.Fatal("expected longitude out of range to fail")
	}
}

func TestIDParsing(t *testing.T) {
	check := New()
	if _, err := check.ID("mapId", "507f1f77bcf86cd799439011"); err != nil {
		t.Fatalf("expected valid id, got %v", err)
	}
	_, err := check.ID("mapId", "nope")
	if kindOf(t, err) != apperr.KindType {
		t.Fatalf("expected type kind, got %v", err)
	}
}
