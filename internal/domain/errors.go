package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindNotFound     ErrorKind = "not_found"
	KindForbidden    ErrorKind = "forbidden"
	KindConflict     ErrorKind = "conflict"
	KindInternal     ErrorKind = "internal"
)

// Машинные коды ошибок, стабильные для клиентов API.
const (
	CodeInvalidTime       = "invalid_time"
	CodeInvalidDate       = "invalid_date"
	CodeInvalidTimeRange  = "invalid_time_range"
	CodeInvalidDateRange  = "invalid_date_range"
	CodeRuleTooLong       = "rule_too_long"
	CodeEmptyWeekdays     = "empty_weekdays"
	CodeInvalidWeekday    = "invalid_weekday"
	CodeInvalidMode       = "invalid_mode"
	CodeIncompatibleMode  = "incompatible_mode"
	CodeMissingLocation   = "missing_location"
	CodeNoSessions        = "no_sessions"
	CodeInvalidStatus     = "invalid_status"
	CodeInvalidTransition = "invalid_transition"
	CodeInvalidRating     = "invalid_rating"
	CodeEntryBooked       = "entry_booked"
	CodeInactiveCourse    = "inactive_course"
	CodeInvalidSource     = "invalid_source"
	CodeNotCompleted      = "session_not_completed"
	CodeEmptyNote         = "empty_note"

	CodeTutorNotFound   = "tutor_not_found"
	CodeCourseNotFound  = "course_not_found"
	CodeBookingNotFound = "booking_not_found"
	CodeSessionNotFound = "session_not_found"
	CodeEntryNotFound   = "entry_not_found"

	CodeRoleNotAllowed = "role_not_allowed"
	CodeNotAParty      = "not_a_party"
	CodeNotOwner       = "not_owner"

	CodeSlotConflict = "slot_conflict"
	CodeInternal     = "internal"
)

// Error is an expected business outcome returned to the caller.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewInvalidInput(code, message string) *Error {
	return &Error{Kind: KindInvalidInput, Code: code, Message: message}
}

func NewNotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func NewForbidden(code, message string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

// SlotConflict describes one requested slot and the existing commitment it collides with.
type SlotConflict struct {
	Requested    TimeSlot `json:"requested"`
	ExistingID   int64    `json:"existing_id"`
	ExistingSlot TimeSlot `json:"existing"`
}

type ConflictError struct {
	Message   string
	Conflicts []SlotConflict
}

func NewConflict(message string, conflicts []SlotConflict) *ConflictError {
	return &ConflictError{Message: message, Conflicts: conflicts}
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %d", e.Message, len(e.Conflicts))
}

// KindOf классифицирует ошибку; всё, что не является доменной ошибкой, считается внутренней.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return KindConflict
	}

	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}

	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
