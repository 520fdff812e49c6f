package errors

import (
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/arc_data", false},
		{"absolute", "/tmp/gridtower", false},
		{"dotted file", "out/v1.2/dataset.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"traversal", "data/../etc", true},
		{"leading traversal", "../data", true},
		{"null byte", "data\x00", true},
		{"backslash", "data\\out", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateGridName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"Grid_1", false},
		{"Grid_20", false},
		{"a", false},
		{"", true},
		{"1Grid", true},
		{"Grid 1", true},
		{"Grid/1", true},
	}

	for _, tt := range tests {
		err := ValidateGridName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateGridName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateColorName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"Black", false},
		{"Dark Red", false},
		{"", true},
		{"   ", true},
		{"Red\n", true},
	}

	for _, tt := range tests {
		err := ValidateColorName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColorName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
