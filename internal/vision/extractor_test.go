package vision

import (
	"testing"
)

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name        string
		input       any
		want        float64
		wantPresent bool
		wantErr     bool
	}{
		{"absent", nil, 0, false, false},
		{"number", 1234.56, 1234.56, true, false},
		{"zero number", 0.0, 0, true, false},
		{"string", "150.75", 150.75, true, false},
		{"string with comma separator", "150,75", 150.75, true, false},
		{"string with whitespace", " 89.00 ", 89, true, false},
		{"unparseable string", "eighty nine", 0, false, true},
		{"unexpected type", true, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := coerceAmount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("coerceAmount(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("coerceAmount(%v) = %v, want %v", tt.input, got, tt.want)
			}
			if present != tt.wantPresent {
				t.Errorf("coerceAmount(%v) present = %v, want %v", tt.input, present, tt.wantPresent)
			}
		})
	}
}

func TestCoerceBox(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []float64
	}{
		{"valid box", []any{0.1, 0.2, 0.3, 0.4}, []float64{0.1, 0.2, 0.3, 0.4}},
		{"absent", nil, nil},
		{"not a list", "0.1,0.2,0.3,0.4", nil},
		{"too short", []any{0.1, 0.2, 0.3}, nil},
		{"too long", []any{0.1, 0.2, 0.3, 0.4, 0.5}, nil},
		{"non-numeric member", []any{0.1, "0.2", 0.3, 0.4}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coerceBox(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("coerceBox(%v) = %v, want nil", tt.input, got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("coerceBox(%v) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("coerceBox(%v)[%d] = %v, want %v", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestCleanAccount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "12345678", "12345678"},
		{"quoted", `"12345678"`, "12345678"},
		{"whitespace", "  12345678  ", "12345678"},
		{"quoted and padded", ` "12345678" `, "12345678"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanAccount(tt.input); got != tt.want {
				t.Errorf("cleanAccount(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
