package docnumber

import "testing"

func TestFixLicenseMisread(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double one becomes I", "11234567", "I1234567"},
		{"double one at minimum length", "1123456", "I123456"},
		{"double one too short", "112345", "112345"},
		{"IL becomes I", "IL1234567", "I1234567"},
		{"IL too short", "IL12345", "IL12345"},
		{"already correct", "I1234567", "I1234567"},
		{"single leading one untouched", "1234567", "1234567"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixLicenseMisread(tt.input); got != tt.want {
				t.Errorf("FixLicenseMisread(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCalifornia(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare seven digits get I prefix", "1234567", "I1234567"},
		{"double one fixed", "11234567", "I1234567"},
		{"IL fixed", "IL1234567", "I1234567"},
		{"DL label stripped", "DL 1234567", "I1234567"},
		{"lowercase dl label stripped", "dl1234567", "I1234567"},
		{"LIC label stripped", "LIC I1234567", "I1234567"},
		{"already correct", "I1234567", "I1234567"},
		{"other lengths untouched", "A12345678", "A12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCalifornia(tt.input); got != tt.want {
				t.Errorf("NormalizeCalifornia(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCalifornia_Idempotent(t *testing.T) {
	for _, in := range []string{"1234567", "11234567", "IL1234567", "DL 1234567", "I7654321"} {
		once := NormalizeCalifornia(in)
		if twice := NormalizeCalifornia(once); twice != once {
			t.Errorf("NormalizeCalifornia(%q) not idempotent: %q then %q", in, once, twice)
		}
	}

	// Stacked prefixes lose one layer per pass.
	stacked := []struct {
		input, once, twice string
	}{
		{"ILL123456", "IL123456", "I123456"},
		{"DLDL123456", "DL123456", "123456"},
	}
	for _, tt := range stacked {
		once := NormalizeCalifornia(tt.input)
		twice := NormalizeCalifornia(once)
		if once != tt.once || twice != tt.twice {
			t.Errorf("NormalizeCalifornia(%q) = %q then %q, want %q then %q", tt.input, once, twice, tt.once, tt.twice)
		}
	}
}
