package validator

import "testing"

func TestSplitClock(t *testing.T) {
	tests := []struct {
		in           string
		hour, minute int
		ok           bool
	}{
		{"09:30", 9, 30, true},
		{"9:05", 9, 5, true},
		{" 23:59 ", 23, 59, true},
		{"00:00", 0, 0, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"1230", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		hour, minute, ok := SplitClock(tt.in)
		if ok != tt.ok || hour != tt.hour || minute != tt.minute {
			t.Errorf("SplitClock(%q) = %d, %d, %v; want %d, %d, %v", tt.in, hour, minute, ok, tt.hour, tt.minute, tt.ok)
		}
	}
}

func TestValidateDate(t *testing.T) {
	valid := []string{"2025-06-02", "2024-02-29"}
	invalid := []string{"2025-6-2", "2025-02-30", "2023-02-29", "02.06.2025", ""}

	for _, v := range valid {
		if !ValidateDate(v) {
			t.Errorf("ValidateDate(%q) = false", v)
		}
	}
	for _, v := range invalid {
		if ValidateDate(v) {
			t.Errorf("ValidateDate(%q) = true", v)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	tests := map[string]string{
		"  прошли дроби\x07 ":   "прошли дроби",
		"строка\nвторая":        "строка\nвторая",
		"<b>жирный</b>":         "bжирный/b",
		"\t\r":                  "",
		"урок; 'домашка' & тест": "урок домашка  тест",
	}

	for in, want := range tests {
		if got := NormalizeText(in); got != want {
			t.Errorf("NormalizeText(%q) = %q, want %q", in, got, want)
		}
	}
}
