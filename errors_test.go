package jpegbridge

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		st   Status
		want string
	}{
		{Status{}, "0::::"},
		{Status{Code: CodeSizeMismatch, Message: "too small"}, "-8888::::too small"},
		{Status{Code: -1036, Message: "a::::b"}, "-1036::::a::::b"},
	}
	for _, tt := range tests {
		if got := tt.st.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		back, err := ParseStatus(tt.want)
		if err != nil {
			t.Fatalf("ParseStatus(%q) failed: %v", tt.want, err)
		}
		if back != tt.st {
			t.Errorf("ParseStatus(%q) = %+v, want %+v", tt.want, back, tt.st)
		}
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, s := range []string{"", "0", "abc::::msg", "1:::2"} {
		if _, err := ParseStatus(s); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("ParseStatus(%q) error = %v, want ErrInvalidParameter", s, err)
		}
	}
}

func TestStatus_Err(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{CodeInvalidParameter, ErrInvalidParameter},
		{CodeSizeMismatch, ErrSizeMismatch},
		{CodeAllocationFailed, ErrAllocation},
		{CodeEngineConstruction, ErrEngineConstruction},
		{CodeEngineFailure, ErrEngine},
		{int(ErrMalformedStream), ErrEngine},
	}
	for _, tt := range tests {
		err := Status{Code: tt.code, Message: "detail"}.Err()
		if !errors.Is(err, tt.want) {
			t.Errorf("Status{%d}.Err() = %v, want %v", tt.code, err, tt.want)
		}
		if !strings.Contains(err.Error(), "detail") {
			t.Errorf("Status{%d}.Err() = %q, want message included", tt.code, err)
		}
	}
	if err := (Status{}).Err(); err != nil {
		t.Errorf("Status{}.Err() = %v, want nil", err)
	}

	err := Status{Code: -1025, Message: "eof"}.Err()
	if !strings.Contains(err.Error(), "Stream run out of data") {
		t.Errorf("Err() = %q, want description of -1025", err)
	}
}

func TestDescription(t *testing.T) {
	if got := Description(-1040); !strings.Contains(got, "profile") {
		t.Errorf("Description(-1040) = %q", got)
	}
	if got := Description(-2046); got != "Failed to construct the JPEG object" {
		t.Errorf("Description(-2046) = %q", got)
	}
	if got := Description(-1039); got != "" {
		t.Errorf("Description(-1039) = %q, want empty", got)
	}
	if got := ErrorCode(-1).String(); got != "unknown error -1" {
		t.Errorf("ErrorCode(-1).String() = %q", got)
	}
}

func TestStatusOf(t *testing.T) {
	ee := engineErrorf(ErrParameterRange, "row %d", 99)
	if !errors.Is(ee, ErrEngine) {
		t.Error("EngineError does not match ErrEngine")
	}

	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"nil", nil, Status{}},
		{"engine error", ee, Status{Code: -1028, Message: "row 99"}},
		{"wrapped engine error", fmt.Errorf("stripe: %w", ee), Status{Code: -1028, Message: "row 99"}},
		{"plain error", errors.New("boom"), Status{Code: CodeEngineFailure, Message: "boom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusOf(tt.err); got != tt.want {
				t.Errorf("statusOf() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
