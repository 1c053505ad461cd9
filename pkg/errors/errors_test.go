package errors

import (
	"errors"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name      string
		err       *Error
		wantCode  Code
		wantMsg   string
		wantCause error
	}{
		{
			name:     "new",
			err:      New(ErrCodeInvalidFamily, "font family %q is not allowed", "../x"),
			wantCode: ErrCodeInvalidFamily,
			wantMsg:  `INVALID_FAMILY: font family "../x" is not allowed`,
		},
		{
			name:      "wrap",
			err:       Wrap(ErrCodeStorage, cause, "save font settings"),
			wantCode:  ErrCodeStorage,
			wantMsg:   "STORAGE_ERROR: save font settings: connection refused",
			wantCause: cause,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := errors.Unwrap(tt.err); got != tt.wantCause {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantCause)
			}
			if tt.wantCause != nil && !errors.Is(tt.err, tt.wantCause) {
				t.Error("errors.Is should reach the cause")
			}
		})
	}
}

func TestIs(t *testing.T) {
	storage := Wrap(ErrCodeStorage, New(ErrCodeInvalidFamily, "inner"), "write roboto.json")

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeNoFontList, "no catalog"), ErrCodeNoFontList, true},
		{"other code", New(ErrCodeNoFontList, "no catalog"), ErrCodeStorage, false},
		{"outer code", storage, ErrCodeStorage, true},
		{"inner code hidden", storage, ErrCodeInvalidFamily, false},
		{"plain error", errors.New("plain"), ErrCodeStorage, false},
		{"nil", nil, ErrCodeStorage, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidFamily, "test"),
			expected: ErrCodeInvalidFamily,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidateFamily(t *testing.T) {
	tests := []struct {
		name    string
		family  string
		wantErr bool
	}{
		{"simple", "Roboto", false},
		{"with spaces", "Open Sans", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"slash", "Roboto/../etc", true},
		{"backslash", `Roboto\x`, true},
		{"dot dot", "..", true},
		{"control", "Rob\x00oto", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFamily(tt.family)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateFamily(%q) error = %v, wantErr %v", tt.family, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFamily) {
				t.Errorf("ValidateFamily(%q) code = %v, want %v", tt.family, GetCode(err), ErrCodeInvalidFamily)
			}
		})
	}
}
