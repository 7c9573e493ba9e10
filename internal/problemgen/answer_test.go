package problemgen

import (
	"testing"

	"github.com/abhisek/mathdrill/internal/facts"
)

func TestCheckAnswer(t *testing.T) {
	p := facts.NewProduct(6, 7)

	tests := []struct {
		input string
		want  bool
	}{
		{"42", true},
		{" 42 ", true},
		{"042", true},
		{"43", false},
		{"", false},
		{"abc", false},
		{"-42", false},
		{"4 2", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(tc.input, p)
		if got != tc.want {
			t.Errorf("CheckAnswer(%q, 6*7) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"007", 7, false},
		{"100", 100, false},
		{"", 0, true},
		{"  ", 0, true},
		{"+5", 0, true},
		{"1.5", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseAnswer(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseAnswer(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAnswer(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestRangeByName(t *testing.T) {
	tests := []struct {
		name    string
		want    DividendRange
		wantErr bool
	}{
		{"low", RangeLow, false},
		{"Medium", RangeMedium, false},
		{" high ", RangeHigh, false},
		{"", DividendRange{}, false},
		{"extreme", DividendRange{}, true},
	}
	for _, tc := range tests {
		got, err := RangeByName(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("RangeByName(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("RangeByName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDividendRange_Contains(t *testing.T) {
	if !RangeLow.Contains(2) || !RangeLow.Contains(30) {
		t.Error("range bounds must be inclusive")
	}
	if RangeLow.Contains(31) || RangeLow.Contains(1) {
		t.Error("values outside the range must be excluded")
	}
	if !(DividendRange{}).Contains(99) {
		t.Error("zero range must be unrestricted")
	}
}
