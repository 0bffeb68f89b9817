package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RuleKind string

const (
	RuleKindSingle    RuleKind = "single"
	RuleKindRecurring RuleKind = "recurring"
)

type EntryStatus string

const (
	EntryStatusAvailable EntryStatus = "available"
	EntryStatusBooked    EntryStatus = "booked"
	EntryStatusCancelled EntryStatus = "cancelled"
)

// Weekday serialises as a lowercase English day name.
type Weekday time.Weekday

func ParseWeekday(value string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return Weekday(d), nil
		}
	}
	return 0, NewInvalidInput(CodeInvalidWeekday, fmt.Sprintf("неизвестный день недели %q", value))
}

func (w Weekday) String() string {
	return strings.ToLower(time.Weekday(w).String())
}

func (w Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *Weekday) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return NewInvalidInput(CodeInvalidWeekday, "день недели должен быть строкой")
	}
	parsed, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// AvailabilityRule is a tutor-declared teaching window: either one concrete slot or a weekly pattern over a date range.
type AvailabilityRule struct {
	ID             int64        `json:"id"`
	TutorID        int64        `json:"tutor_id"`
	CourseID       *int64       `json:"course_id,omitempty"`
	Kind           RuleKind     `json:"kind"`
	GroupID        uuid.UUID    `json:"group_id"`
	StartDate      Date         `json:"start_date"`
	EndDate        Date         `json:"end_date"`
	RepeatWeekdays []Weekday    `json:"repeat_weekdays,omitempty"`
	StartTime      Clock        `json:"start_time"`
	EndTime        Clock        `json:"end_time"`
	Mode           TeachingMode `json:"mode"`
	Location       *string      `json:"location,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// CandidateSlots returns the slots the rule describes in ascending date order.
func (r AvailabilityRule) CandidateSlots() []TimeSlot {
	if r.Kind == RuleKindSingle {
		return []TimeSlot{{Date: r.StartDate, Start: r.StartTime, End: r.EndTime}}
	}

	days := make(map[time.Weekday]struct{}, len(r.RepeatWeekdays))
	for _, w := range r.RepeatWeekdays {
		days[time.Weekday(w)] = struct{}{}
	}

	var slots []TimeSlot
	for d := r.StartDate; !d.After(r.EndDate); d = d.AddDays(1) {
		if _, ok := days[d.Weekday()]; !ok {
			continue
		}
		slots = append(slots, TimeSlot{Date: d, Start: r.StartTime, End: r.EndTime})
	}
	return slots
}

type CreateAvailabilityDTO struct {
	Kind           RuleKind     `json:"kind" binding:"required,oneof=single recurring"`
	Date           *Date        `json:"date,omitempty"`
	StartDate      *Date        `json:"start_date,omitempty"`
	EndDate        *Date        `json:"end_date,omitempty"`
	RepeatWeekdays []Weekday    `json:"repeat_weekdays,omitempty"`
	StartTime      Clock        `json:"start_time"`
	EndTime        Clock        `json:"end_time"`
	Mode           TeachingMode `json:"mode" binding:"required"`
	Location       *string      `json:"location,omitempty"`
	CourseID       *int64       `json:"course_id,omitempty"`
}

// BuildRule проверяет DTO и собирает правило для указанного репетитора.
// maxDays ограничивает длину диапазона повторяющегося правила, 0 отключает проверку.
func (dto CreateAvailabilityDTO) BuildRule(tutorID int64, maxDays int) (AvailabilityRule, error) {
	if dto.EndTime <= dto.StartTime {
		return AvailabilityRule{}, NewInvalidInput(CodeInvalidTimeRange,
			fmt.Sprintf("время окончания %s должно быть позже времени начала %s", dto.EndTime, dto.StartTime))
	}

	location, err := NormalizeLocation(dto.Mode, dto.Location)
	if err != nil {
		return AvailabilityRule{}, err
	}

	rule := AvailabilityRule{
		TutorID:   tutorID,
		CourseID:  dto.CourseID,
		Kind:      dto.Kind,
		GroupID:   uuid.New(),
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Mode:      dto.Mode,
		Location:  location,
	}

	switch dto.Kind {
	case RuleKindSingle:
		if dto.Date == nil {
			return AvailabilityRule{}, NewInvalidInput(CodeInvalidDate, "для разового правила нужна дата")
		}
		rule.StartDate = *dto.Date
		rule.EndDate = *dto.Date
	case RuleKindRecurring:
		if dto.StartDate == nil || dto.EndDate == nil {
			return AvailabilityRule{}, NewInvalidInput(CodeInvalidDateRange, "для повторяющегося правила нужны начальная и конечная даты")
		}
		if dto.EndDate.Before(*dto.StartDate) {
			return AvailabilityRule{}, NewInvalidInput(CodeInvalidDateRange, "конечная дата раньше начальной")
		}
		if maxDays > 0 && dto.StartDate.DaysUntil(*dto.EndDate)+1 > maxDays {
			return AvailabilityRule{}, NewInvalidInput(CodeRuleTooLong,
				fmt.Sprintf("правило не может охватывать больше %d дней", maxDays))
		}
		weekdays := uniqueWeekdays(dto.RepeatWeekdays)
		if len(weekdays) == 0 {
			return AvailabilityRule{}, NewInvalidInput(CodeEmptyWeekdays, "не выбраны дни недели")
		}
		rule.StartDate = *dto.StartDate
		rule.EndDate = *dto.EndDate
		rule.RepeatWeekdays = weekdays
	default:
		return AvailabilityRule{}, NewInvalidInput(CodeInvalidMode, fmt.Sprintf("неизвестный тип правила %q", dto.Kind))
	}

	return rule, nil
}

func uniqueWeekdays(in []Weekday) []Weekday {
	seen := make(map[Weekday]struct{}, len(in))
	out := make([]Weekday, 0, len(in))
	for _, w := range in {
		if w < 0 || w > Weekday(time.Saturday) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NormalizeLocation requires a location for offline sessions and drops it for online ones.
func NormalizeLocation(mode TeachingMode, location *string) (*string, error) {
	switch mode {
	case TeachingModeOnline:
		return nil, nil
	case TeachingModeOffline:
		if location == nil || strings.TrimSpace(*location) == "" {
			return nil, NewInvalidInput(CodeMissingLocation, "для офлайн-занятия нужно указать место")
		}
		trimmed := strings.TrimSpace(*location)
		return &trimmed, nil
	default:
		return nil, NewInvalidInput(CodeInvalidMode, fmt.Sprintf("некорректный режим занятия %q", mode))
	}
}

type ScheduleEntry struct {
	ID          int64        `json:"id"`
	TutorID     int64        `json:"tutor_id"`
	RuleID      *int64       `json:"rule_id,omitempty"`
	CourseID    *int64       `json:"course_id,omitempty"`
	Date        Date         `json:"date"`
	StartTime   Clock        `json:"start_time"`
	EndTime     Clock        `json:"end_time"`
	Mode        TeachingMode `json:"mode"`
	Location    *string      `json:"location,omitempty"`
	IsRecurring bool         `json:"is_recurring"`
	Status      EntryStatus  `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (e ScheduleEntry) Slot() TimeSlot {
	return TimeSlot{Date: e.Date, Start: e.StartTime, End: e.EndTime}
}

type ExpansionResult struct {
	Rule    AvailabilityRule `json:"rule"`
	Created []ScheduleEntry  `json:"created"`
	Skipped int              `json:"skipped"`
}

type ScheduleFilter struct {
	From   *Date        `json:"from"`
	To     *Date        `json:"to"`
	Status *EntryStatus `json:"status"`
}
