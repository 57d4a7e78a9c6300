package colormodel

import (
	"errors"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		input string
		want  Hex
	}{
		{"#ff0000", "ff0000"},
		{"FF0000", "ff0000"},
		{"#AbCdEf", "abcdef"},
		{"#f0c", "ff00cc"},
		{"F0C", "ff00cc"},
		{"#a", "aaaaaa"},
		{"7", "777777"},
		{"  #123456 ", "123456"},
	}

	for _, tt := range tests {
		got, err := ParseHex(tt.input)
		if err != nil {
			t.Errorf("ParseHex(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	invalid := []string{"", "#", "ab", "#abcd", "abcde", "abcdef0", "#gggggg", "#xyz", "rgb"}
	for _, s := range invalid {
		_, err := ParseHex(s)
		if !errors.Is(err, ErrMalformedInput) {
			t.Errorf("ParseHex(%q) expected ErrMalformedInput, got %v", s, err)
		}
	}
}

func TestHexToRGB(t *testing.T) {
	got, err := HexToRGB("#0CC863")
	if err != nil {
		t.Fatal(err)
	}
	if got != (RGB{12, 200, 99}) {
		t.Errorf("HexToRGB = %v", got)
	}
	if got.String() != "rgb(12, 200, 99)" {
		t.Errorf("String() = %s", got.String())
	}
}

func TestParseRGB(t *testing.T) {
	got, err := ParseRGB("rgb(12, 200, 99)")
	if err != nil {
		t.Fatal(err)
	}
	if got != (RGB{12, 200, 99}) {
		t.Errorf("ParseRGB = %v", got)
	}

	got, err = ParseRGB("RGB(1,2,3)")
	if err != nil {
		t.Fatal(err)
	}
	if got != (RGB{1, 2, 3}) {
		t.Errorf("ParseRGB = %v", got)
	}

	malformed := []string{"rgb(1, 2)", "rgb(1, 2, 3, 4)", "rgb 1, 2, 3", "rgb(a, b, c)", "hsl(1, 2, 3)", "rgb(1.5, 2, 3)"}
	for _, s := range malformed {
		if _, err := ParseRGB(s); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("ParseRGB(%q) expected ErrMalformedInput, got %v", s, err)
		}
	}

	outOfRange := []string{"rgb(256, 0, 0)", "rgb(0, -1, 0)"}
	for _, s := range outOfRange {
		if _, err := ParseRGB(s); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ParseRGB(%q) expected ErrOutOfRange, got %v", s, err)
		}
	}
}

func TestParseHSL(t *testing.T) {
	got, err := ParseHSL("hsl(210, 40%, 60%)")
	if err != nil {
		t.Fatal(err)
	}
	if got != (HSL{210, 40, 60}) {
		t.Errorf("ParseHSL = %v", got)
	}

	got, err = ParseHSL("hsl(5,6,7)")
	if err != nil {
		t.Fatal(err)
	}
	if got != (HSL{5, 6, 7}) {
		t.Errorf("ParseHSL without percent = %v", got)
	}

	if _, err := ParseHSL("hsl(1%, 2%)"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}
	if _, err := ParseHSL("hsl(x, 2%, 3%)"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}

	outOfRange := []string{"hsl(360, 0%, 0%)", "hsl(-1, 0%, 0%)", "hsl(0, 101%, 0%)", "hsl(0, 0%, 101%)"}
	for _, s := range outOfRange {
		if _, err := ParseHSL(s); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ParseHSL(%q) expected ErrOutOfRange, got %v", s, err)
		}
	}
}
