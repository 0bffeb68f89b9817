package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "9:00", want: 540},
		{in: "00:00", want: 0},
		{in: "23:59", want: 1439},
		{in: " 14:30 ", want: 870},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "9.00", wantErr: true},
		{in: "", wantErr: true},
		{in: "123:00", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if !IsKind(err, KindInvalidInput) {
				t.Errorf("ParseClock(%q) err = %v, want invalid input", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q) unexpected err: %v", tt.in, err)
		}
		if got.Minutes() != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got.Minutes(), tt.want)
		}
	}
}

func TestClockNormalizesUnpaddedHours(t *testing.T) {
	if MustParseClock("9:05") != MustParseClock("09:05") {
		t.Fatal("9:05 and 09:05 must be equal")
	}
	if s := MustParseClock("9:05").String(); s != "09:05" {
		t.Fatalf("String() = %q, want 09:05", s)
	}
}

func TestClockAndDateJSON(t *testing.T) {
	var dto SessionSlotDTO
	if err := json.Unmarshal([]byte(`{"date":"2025-06-02","start_time":"9:00","end_time":"10:30"}`), &dto); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if dto.Date.String() != "2025-06-02" || dto.StartTime.String() != "09:00" || dto.EndTime.String() != "10:30" {
		t.Fatalf("unexpected dto %+v", dto)
	}

	out, err := json.Marshal(dto)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"date":"2025-06-02","start_time":"09:00","end_time":"10:30"}`
	if string(out) != want {
		t.Fatalf("marshal = %s, want %s", out, want)
	}

	if err := json.Unmarshal([]byte(`{"date":"2025-02-30"}`), &dto); err == nil {
		t.Fatal("expected error for impossible date")
	}
}

func TestNewTimeSlotRejectsInvertedRange(t *testing.T) {
	d := MustParseDate("2025-06-02")
	for _, tc := range [][2]string{{"10:00", "10:00"}, {"11:00", "10:00"}} {
		_, err := NewTimeSlot(d, MustParseClock(tc[0]), MustParseClock(tc[1]))
		var de *Error
		if !errors.As(err, &de) || de.Code != CodeInvalidTimeRange {
			t.Errorf("NewTimeSlot(%s-%s) err = %v, want %s", tc[0], tc[1], err, CodeInvalidTimeRange)
		}
	}
}

func slot(t *testing.T, date, start, end string) TimeSlot {
	t.Helper()
	s, err := ParseTimeSlot(date, start, end)
	if err != nil {
		t.Fatalf("ParseTimeSlot(%s %s-%s): %v", date, start, end, err)
	}
	return s
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeSlot
		want bool
	}{
		{"identical", slot(t, "2025-06-02", "09:00", "10:00"), slot(t, "2025-06-02", "09:00", "10:00"), true},
		{"partial", slot(t, "2025-06-02", "09:00", "10:00"), slot(t, "2025-06-02", "09:30", "10:30"), true},
		{"contains", slot(t, "2025-06-02", "08:00", "12:00"), slot(t, "2025-06-02", "09:00", "10:00"), true},
		{"touching", slot(t, "2025-06-02", "09:00", "10:00"), slot(t, "2025-06-02", "10:00", "11:00"), false},
		{"disjoint", slot(t, "2025-06-02", "09:00", "10:00"), slot(t, "2025-06-02", "13:00", "14:00"), false},
		{"other day", slot(t, "2025-06-02", "09:00", "10:00"), slot(t, "2025-06-03", "09:00", "10:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

// Every pair of valid ranges on a 15-minute grid must agree with the half-open test.
func TestRangesCollideMatchesHalfOpenOverlap(t *testing.T) {
	const step = 15
	for s1 := 0; s1 < minutesPerDay; s1 += step * 8 {
		for e1 := s1 + step; e1 <= minutesPerDay && e1 <= s1+step*16; e1 += step {
			for s2 := 0; s2 < minutesPerDay; s2 += step {
				for e2 := s2 + step; e2 <= minutesPerDay && e2 <= s2+step*8; e2 += step {
					want := s1 < e2 && s2 < e1
					got := RangesCollide(Clock(s1), Clock(e1), Clock(s2), Clock(e2))
					if got != want {
						t.Fatalf("RangesCollide(%d,%d,%d,%d) = %v, want %v", s1, e1, s2, e2, got, want)
					}
					if got != RangesCollide(Clock(s2), Clock(e2), Clock(s1), Clock(e1)) {
						t.Fatalf("RangesCollide is not symmetric for %d-%d / %d-%d", s1, e1, s2, e2)
					}
				}
			}
		}
	}
}

func TestDurationHours(t *testing.T) {
	tests := []struct {
		start, end string
		want       string
	}{
		{"09:00", "11:00", "2"},
		{"09:00", "10:30", "1.5"},
		{"09:00", "09:45", "0.75"},
		{"09:00", "09:20", "0.3333333333333333"},
	}

	for _, tt := range tests {
		got := slot(t, "2025-06-02", tt.start, tt.end).DurationHours()
		want := decimal.RequireFromString(tt.want)
		if !got.Equal(want) {
			t.Errorf("DurationHours(%s-%s) = %s, want %s", tt.start, tt.end, got, want)
		}
	}
}

func TestDateArithmetic(t *testing.T) {
	d := MustParseDate("2025-02-27")
	if got := d.AddDays(2).String(); got != "2025-03-01" {
		t.Fatalf("AddDays(2) = %s", got)
	}
	if n := d.DaysUntil(MustParseDate("2025-03-06")); n != 7 {
		t.Fatalf("DaysUntil = %d, want 7", n)
	}
	if !d.Equal(NewDate(2025, 2, 27)) {
		t.Fatal("Equal should ignore representation")
	}
}
