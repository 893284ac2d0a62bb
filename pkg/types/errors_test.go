package types

import (
	"errors"
	"strings"
	"testing"
)

func TestNewErrorStandardMessage(t *testing.T) {
	err := NewError(ErrMemberNotFound, "")
	if err.Message != "SQL/JSON member not found" {
		t.Fatalf("Message = %q", err.Message)
	}
	if !strings.Contains(err.Error(), "2203A") {
		t.Fatalf("Error() = %q, missing code", err.Error())
	}
}

func TestErrorfDetail(t *testing.T) {
	err := Errorf(ErrInvalidSubscript, "index %d out of range", 9)
	if err.Detail != "index 9 out of range" {
		t.Fatalf("Detail = %q", err.Detail)
	}
	if !strings.Contains(err.Error(), "index 9 out of range") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewError(ErrNumericOutOfRange, "").WithCause(cause)
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause not reachable via errors.Is")
	}
}

func TestSuppressible(t *testing.T) {
	suppressible := []ErrorCode{
		ErrArrayNotFound, ErrMemberNotFound, ErrNumberNotFound,
		ErrObjectNotFound, ErrScalarRequired, ErrSingletonRequired,
		ErrNonNumericItem, ErrInvalidSubscript, ErrInvalidDatetime,
		ErrDivisionByZero, ErrNumericOutOfRange, ErrUndefinedVariable,
	}
	for _, code := range suppressible {
		if !NewError(code, "x").Suppressible() {
			t.Errorf("%s should be suppressible", code)
		}
	}
	for _, code := range []ErrorCode{ErrInternal, ErrStackTooDeep} {
		if NewError(code, "x").Suppressible() {
			t.Errorf("%s should not be suppressible", code)
		}
	}
}
