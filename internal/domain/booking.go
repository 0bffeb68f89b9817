package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
)

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// CanTransitionTo сообщает, разрешён ли переход заявки в статус next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SessionStatus returns the status child sessions take when the request moves to s.
func (s BookingStatus) SessionStatus() SessionStatus {
	if s == BookingStatusRejected {
		return SessionStatusCancelled
	}
	return SessionStatus(s)
}

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusConfirmed SessionStatus = "confirmed"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) IsValid() bool {
	_, ok := sessionTransitions[s]
	return ok
}

func (s SessionStatus) IsTerminal() bool {
	return len(sessionTransitions[s]) == 0
}

func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted: nil,
	BookingStatusCancelled: nil,
	BookingStatusRejected:  nil,
}

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusPending:   {SessionStatusConfirmed, SessionStatusCancelled},
	SessionStatusConfirmed: {SessionStatusCompleted, SessionStatusCancelled},
	SessionStatusCompleted: nil,
	SessionStatusCancelled: nil,
}

// Students may only cancel; tutors confirm, complete or reject.
var roleTargets = map[UserRole][]string{
	UserRoleStudent: {"cancelled"},
	UserRoleTutor:   {"confirmed", "completed", "rejected"},
}

// CheckBookingTransition проверяет право роли и таблицу переходов для заявки.
func CheckBookingTransition(role UserRole, from, to BookingStatus) error {
	if !to.IsValid() {
		return NewInvalidInput(CodeInvalidStatus, fmt.Sprintf("неизвестный статус заявки %q", to))
	}
	if !roleMayTarget(role, string(to)) {
		return NewForbidden(CodeRoleNotAllowed, fmt.Sprintf("роль %s не может переводить заявку в статус %s", role, to))
	}
	if !from.CanTransitionTo(to) {
		return NewInvalidInput(CodeInvalidTransition, fmt.Sprintf("переход заявки %s -> %s недопустим", from, to))
	}
	return nil
}

func CheckSessionTransition(role UserRole, from, to SessionStatus) error {
	if !to.IsValid() {
		return NewInvalidInput(CodeInvalidStatus, fmt.Sprintf("неизвестный статус занятия %q", to))
	}
	if !roleMayTarget(role, string(to)) {
		return NewForbidden(CodeRoleNotAllowed, fmt.Sprintf("роль %s не может переводить занятие в статус %s", role, to))
	}
	if !from.CanTransitionTo(to) {
		return NewInvalidInput(CodeInvalidTransition, fmt.Sprintf("переход занятия %s -> %s недопустим", from, to))
	}
	return nil
}

func roleMayTarget(role UserRole, status string) bool {
	for _, allowed := range roleTargets[role] {
		if allowed == status {
			return true
		}
	}
	return false
}

// DeriveBookingStatus re-derives the parent status from its sessions: when every
// session shares one terminal status the parent takes it, otherwise current is kept.
func DeriveBookingStatus(current BookingStatus, sessions []BookingSession) BookingStatus {
	if len(sessions) == 0 || current.IsTerminal() {
		return current
	}

	first := sessions[0].Status
	if !first.IsTerminal() {
		return current
	}
	for _, s := range sessions[1:] {
		if s.Status != first {
			return current
		}
	}

	return BookingStatus(first)
}

type BookingRequest struct {
	ID          int64            `json:"id"`
	StudentID   int64            `json:"student_id"`
	TutorID     int64            `json:"tutor_id"`
	CourseID    int64            `json:"course_id"`
	Mode        TeachingMode     `json:"mode"`
	Location    *string          `json:"location,omitempty"`
	Note        *string          `json:"note,omitempty"`
	HourlyRate  decimal.Decimal  `json:"hourly_rate"`
	TotalHours  decimal.Decimal  `json:"total_hours"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Status      BookingStatus    `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Sessions    []BookingSession `json:"sessions,omitempty"`
}

type BookingSession struct {
	ID        int64           `json:"id"`
	RequestID int64           `json:"request_id"`
	TutorID   int64           `json:"tutor_id"`
	Date      Date            `json:"date"`
	StartTime Clock           `json:"start_time"`
	EndTime   Clock           `json:"end_time"`
	Hours     decimal.Decimal `json:"hours"`
	Amount    decimal.Decimal `json:"amount"`
	Status    SessionStatus   `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (s BookingSession) Slot() TimeSlot {
	return TimeSlot{Date: s.Date, Start: s.StartTime, End: s.EndTime}
}

type SessionSlotDTO struct {
	Date      Date  `json:"date"`
	StartTime Clock `json:"start_time"`
	EndTime   Clock `json:"end_time"`
}

type CreateBookingDTO struct {
	TutorID  int64            `json:"tutor_id" binding:"required"`
	CourseID int64            `json:"course_id" binding:"required"`
	Mode     TeachingMode     `json:"mode" binding:"required"`
	Location *string          `json:"location,omitempty"`
	Note     *string          `json:"note,omitempty"`
	Sessions []SessionSlotDTO `json:"sessions" binding:"required,min=1"`
}

type UpdateBookingStatusDTO struct {
	Status BookingStatus `json:"status" binding:"required"`
}

type UpdateSessionStatusDTO struct {
	Status SessionStatus `json:"status" binding:"required"`
}

type BookingFilter struct {
	StudentID *int64         `json:"student_id"`
	TutorID   *int64         `json:"tutor_id"`
	Status    *BookingStatus `json:"status"`
	From      *Date          `json:"from"`
	To        *Date          `json:"to"`
	Limit     int            `json:"limit"`
	Offset    int            `json:"offset"`
}

const (
	DefaultBookingPageSize = 20
	MaxBookingPageSize     = 100
)

// Normalize приводит параметры страницы к допустимым значениям.
func (f *BookingFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultBookingPageSize
	}
	if f.Limit > MaxBookingPageSize {
		f.Limit = MaxBookingPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Page возвращает номер страницы, начиная с 1.
func (f *BookingFilter) Page() int {
	if f.Limit <= 0 {
		return 1
	}
	return f.Offset/f.Limit + 1
}
