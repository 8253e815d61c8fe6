package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestErrorCreation(t *testing.T) {
	err := E(Op("dataset.load"), KindParse, "malformed document")

	if err.Op != "dataset.load" {
		t.Errorf("expected Op 'dataset.load', got %q", err.Op)
	}
	if err.Kind != KindParse {
		t.Errorf("expected Kind KindParse, got %v", err.Kind)
	}
	if err.Msg != "malformed document" {
		t.Errorf("expected Msg 'malformed document', got %q", err.Msg)
	}
}

func TestErrorWithWrappedError(t *testing.T) {
	underlying := fmt.Errorf("no such file or directory")
	err := E(Op("source.open"), KindIO, underlying, "cannot open dataset")

	if err.Err != underlying {
		t.Error("expected underlying error to be set")
	}

	errStr := err.Error()
	for _, want := range []string{"source.open", "cannot open dataset", "no such file"} {
		if !strings.Contains(errStr, want) {
			t.Errorf("error string should contain %q, got %q", want, errStr)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	underlying := fmt.Errorf("root cause")
	err := E(Op("test"), underlying)

	if err.Unwrap() != underlying {
		t.Error("Unwrap should return the underlying error")
	}
}

func TestErrorStringFormats(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"op only", &Error{Op: "test"}, "test: "},
		{"msg only", &Error{Msg: "failed"}, "failed"},
		{"err only", &Error{Err: fmt.Errorf("root")}, "root"},
		{"op and msg", &Error{Op: "test", Msg: "failed"}, "test: failed"},
		{"all fields", &Error{Op: "test", Msg: "failed", Err: fmt.Errorf("root")}, "test: failed: root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown"},
		{KindUsage, "usage"},
		{KindMissingArgument, "missing argument"},
		{KindIO, "io"},
		{KindParse, "parse"},
		{KindConfig, "config"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWrapKeepsKind(t *testing.T) {
	inner := E(Op("dataset.parse"), KindParse, "unexpected EOF")
	err := Wrap("dataset.load", inner)

	if !IsKind(err, KindParse) {
		t.Errorf("expected wrapped error to keep KindParse, got %v", GetKind(err))
	}
	if Wrap("noop", nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if WrapMsg("noop", "msg", nil) != nil {
		t.Error("WrapMsg(nil) should return nil")
	}
}

func TestGetKindThroughFmtWrap(t *testing.T) {
	inner := E(KindIO, "permission denied")
	err := fmt.Errorf("loading: %w", inner)

	if got := GetKind(err); got != KindIO {
		t.Errorf("GetKind() = %v, want io", got)
	}
	if got := GetKind(fmt.Errorf("plain")); got != KindUnknown {
		t.Errorf("GetKind(plain) = %v, want unknown", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"usage", E(KindUsage, "bad"), ExitUsage},
		{"missing argument", E(KindMissingArgument, "bad"), ExitUsage},
		{"io", E(KindIO, "bad"), ExitLoad},
		{"parse", E(KindParse, "bad"), ExitLoad},
		{"config", E(KindConfig, "bad"), ExitLoad},
		{"unclassified", fmt.Errorf("bad"), ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSkipCounter(t *testing.T) {
	sc := NewSkipCounter("loading groups")
	sc.Skip(fmt.Errorf("missing id"), "group #2")
	sc.Skip(fmt.Errorf("missing id"), "group #5")

	if sc.Count != 2 {
		t.Errorf("expected count 2, got %d", sc.Count)
	}
	if sc.LastDetail != "group #5" {
		t.Errorf("expected last detail 'group #5', got %q", sc.LastDetail)
	}
}

func TestUsagef(t *testing.T) {
	err := Usagef("cli", "unknown query %q", "bogus")
	if err.Kind != KindUsage {
		t.Errorf("expected KindUsage, got %v", err.Kind)
	}
	if !strings.Contains(err.Error(), `unknown query "bogus"`) {
		t.Errorf("unexpected message %q", err.Error())
	}
}
