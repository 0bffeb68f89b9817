package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tutorhub/pkg/validator"
)

const minutesPerDay = 24 * 60

var minutesPerHour = decimal.NewFromInt(60)

// Clock is a wall-clock time of day with minute precision, stored as minutes since midnight.
type Clock int

func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, NewInvalidInput(CodeInvalidTime, fmt.Sprintf("некорректное время %d:%d", hour, minute))
	}
	return Clock(hour*60 + minute), nil
}

// ParseClock принимает H:MM или HH:MM, "9:00" и "09:00" дают одно и то же значение.
func ParseClock(value string) (Clock, error) {
	hour, minute, ok := validator.SplitClock(value)
	if !ok {
		return 0, NewInvalidInput(CodeInvalidTime, fmt.Sprintf("некорректный формат времени %q, ожидается HH:MM", value))
	}
	return Clock(hour*60 + minute), nil
}

func MustParseClock(value string) Clock {
	c, err := ParseClock(value)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Minutes() int { return int(c) }

func (c Clock) Hour() int { return int(c) / 60 }

func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return NewInvalidInput(CodeInvalidTime, "время должно быть строкой HH:MM")
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Date is a calendar day in the fixed local-day model; the underlying time is always midnight UTC.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf отбрасывает время и часовой пояс, сохраняя календарный день.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if !validator.ValidateDate(value) {
		return Date{}, NewInvalidInput(CodeInvalidDate, fmt.Sprintf("некорректный формат даты %q, ожидается YYYY-MM-DD", value))
	}
	t, err := time.Parse(validator.DateLayout, value)
	if err != nil {
		return Date{}, NewInvalidInput(CodeInvalidDate, fmt.Sprintf("некорректная дата %q", value))
	}
	return Date{t}, nil
}

func MustParseDate(value string) Date {
	d, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }

func (d Date) After(other Date) bool { return d.Time.After(other.Time) }

func (d Date) Equal(other Date) bool {
	return d.Year() == other.Year() && d.YearDay() == other.YearDay()
}

// DaysUntil возвращает количество дней от d до other (отрицательное, если other раньше).
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

func (d Date) String() string {
	return d.Format(validator.DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return NewInvalidInput(CodeInvalidDate, "дата должна быть строкой YYYY-MM-DD")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeSlot is an immutable date-bound time range [Start, End). Slots never cross midnight.
type TimeSlot struct {
	Date  Date  `json:"date"`
	Start Clock `json:"start_time"`
	End   Clock `json:"end_time"`
}

func NewTimeSlot(date Date, start, end Clock) (TimeSlot, error) {
	if start < 0 || end > minutesPerDay || end <= start {
		return TimeSlot{}, NewInvalidInput(CodeInvalidTimeRange,
			fmt.Sprintf("время окончания %s должно быть позже времени начала %s", end, start))
	}
	return TimeSlot{Date: date, Start: start, End: end}, nil
}

// ParseTimeSlot собирает слот из строковых представлений YYYY-MM-DD и HH:MM.
func ParseTimeSlot(date, start, end string) (TimeSlot, error) {
	d, err := ParseDate(date)
	if err != nil {
		return TimeSlot{}, err
	}
	s, err := ParseClock(start)
	if err != nil {
		return TimeSlot{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeSlot{}, err
	}
	return NewTimeSlot(d, s, e)
}

// Overlaps reports whether both slots fall on the same date and their half-open ranges intersect.
// Touching endpoints do not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	if !s.Date.Equal(other.Date) {
		return false
	}
	return RangesCollide(s.Start, s.End, other.Start, other.End)
}

func (s TimeSlot) DurationMinutes() int {
	return s.End.Minutes() - s.Start.Minutes()
}

func (s TimeSlot) DurationHours() decimal.Decimal {
	return decimal.NewFromInt(int64(s.DurationMinutes())).Div(minutesPerHour)
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Date, s.Start, s.End)
}

// RangesCollide is the single overlap rule shared by every conflict check.
// It matches the half-open test start < existingEnd && existingStart < end.
func RangesCollide(start, end, existingStart, existingEnd Clock) bool {
	startsInside := start >= existingStart && start < existingEnd
	endsInside := end > existingStart && end <= existingEnd
	covers := start <= existingStart && end >= existingEnd
	return startsInside || endsInside || covers
}
