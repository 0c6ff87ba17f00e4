package errors

import "testing"

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "home", false},
		{"generated", "lx3k9a2-4f1c2b7e", false},
		{"with dots", "landing.v2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"slash", "pages/home", true},
		{"traversal", "..", true},
		{"backslash", `a\b`, true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidID) {
				t.Errorf("ValidateID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidID)
			}
		})
	}
}

func TestValidateTypeName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"hero", false},
		{"product-grid", false},
		{"promo_banner2", false},
		{"", true},
		{"Hero", true},
		{"2col", true},
		{"a b", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if err := ValidateTypeName(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateTypeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
