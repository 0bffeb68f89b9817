package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"tutorhub/internal/domain"
)

// completedSession books and completes a single session for the default student.
func (f *fixture) completedSession(t *testing.T, date string) domain.BookingSession {
	t.Helper()
	req := f.book(t, slotDTO(date, "09:00", "10:00"))
	if _, err := f.svc.Booking.SetBookingStatus(f.ctx, tutor, req.ID, domain.BookingStatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	sess, err := f.svc.Booking.SetSessionStatus(f.ctx, tutor, req.Sessions[0].ID, domain.SessionStatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	return *sess
}

func TestAddSessionNote_TutorThenStudentMerge(t *testing.T) {
	f := newFixture(t)
	sess := f.completedSession(t, "2025-06-02")

	if _, err := f.svc.SessionNote.AddSessionNote(f.ctx, tutor, sess.ID, domain.SessionNoteDTO{TutorNotes: PointerTo("  прошли дроби\x07 ")}); err != nil {
		t.Fatalf("tutor note: %v", err)
	}

	note, err := f.svc.SessionNote.AddSessionNote(f.ctx, student, sess.ID, domain.SessionNoteDTO{
		StudentRating:   PointerTo(5),
		StudentFeedback: PointerTo("Отлично"),
	})
	if err != nil {
		t.Fatalf("student note: %v", err)
	}

	if note.TutorNotes == nil || *note.TutorNotes != "прошли дроби" {
		t.Errorf("tutor notes = %v, want cleaned text preserved", note.TutorNotes)
	}
	if note.StudentRating == nil || *note.StudentRating != 5 {
		t.Errorf("rating = %v, want 5", note.StudentRating)
	}
	if note.StudentFeedback == nil || *note.StudentFeedback != "Отлично" {
		t.Errorf("feedback = %v, want Отлично", note.StudentFeedback)
	}
	if n := f.store.count(func(d memData) int { return len(d.notes) }); n != 1 {
		t.Errorf("notes = %d, want 1", n)
	}
}

func TestAddSessionNote_UpdatesTutorRating(t *testing.T) {
	f := newFixture(t)
	first := f.completedSession(t, "2025-06-02")
	second := f.completedSession(t, "2025-06-03")

	for sessionID, rating := range map[int64]int{first.ID: 4, second.ID: 5} {
		if _, err := f.svc.SessionNote.AddSessionNote(f.ctx, student, sessionID, domain.SessionNoteDTO{StudentRating: PointerTo(rating)}); err != nil {
			t.Fatalf("rate %d: %v", sessionID, err)
		}
	}

	profile, err := f.svc.Tutor.GetByID(f.ctx, tutorID)
	if err != nil {
		t.Fatal(err)
	}
	if want := decimal.RequireFromString("4.5"); !profile.Rating.Equal(want) {
		t.Errorf("rating = %s, want %s", profile.Rating, want)
	}
	if profile.RatedSessions != 2 {
		t.Errorf("rated sessions = %d, want 2", profile.RatedSessions)
	}
}

func TestAddSessionNote_Rules(t *testing.T) {
	f := newFixture(t)
	pending := f.book(t, slotDTO("2025-06-05", "09:00", "10:00")).Sessions[0]
	done := f.completedSession(t, "2025-06-02")

	tests := []struct {
		name      string
		actor     domain.Actor
		sessionID int64
		dto       domain.SessionNoteDTO
		kind      domain.ErrorKind
		code      string
	}{
		{"empty note", tutor, done.ID, domain.SessionNoteDTO{}, domain.KindInvalidInput, domain.CodeEmptyNote},
		{"rating too high", student, done.ID, domain.SessionNoteDTO{StudentRating: PointerTo(6)}, domain.KindInvalidInput, domain.CodeInvalidRating},
		{"rating too low", student, done.ID, domain.SessionNoteDTO{StudentRating: PointerTo(0)}, domain.KindInvalidInput, domain.CodeInvalidRating},
		{"rating before completion", student, pending.ID, domain.SessionNoteDTO{StudentRating: PointerTo(4)}, domain.KindInvalidInput, domain.CodeNotCompleted},
		{"student writes tutor notes", student, done.ID, domain.SessionNoteDTO{TutorNotes: PointerTo("x")}, domain.KindForbidden, domain.CodeRoleNotAllowed},
		{"tutor rates", tutor, done.ID, domain.SessionNoteDTO{StudentRating: PointerTo(5)}, domain.KindForbidden, domain.CodeRoleNotAllowed},
		{"other student", otherStudent, done.ID, domain.SessionNoteDTO{StudentRating: PointerTo(5)}, domain.KindForbidden, domain.CodeNotAParty},
		{"other tutor", otherTutor, done.ID, domain.SessionNoteDTO{TutorNotes: PointerTo("x")}, domain.KindForbidden, domain.CodeNotAParty},
		{"admin", admin, done.ID, domain.SessionNoteDTO{TutorNotes: PointerTo("x")}, domain.KindForbidden, domain.CodeNotAParty},
		{"unknown session", tutor, 424242, domain.SessionNoteDTO{TutorNotes: PointerTo("x")}, domain.KindNotFound, domain.CodeSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SessionNote.AddSessionNote(f.ctx, tt.actor, tt.sessionID, tt.dto)
			assertCode(t, err, tt.kind, tt.code)
		})
	}

	if n := f.store.count(func(d memData) int { return len(d.notes) }); n != 0 {
		t.Errorf("notes = %d, want 0", n)
	}
}

func TestAddSessionNote_TutorNotesOnPendingSession(t *testing.T) {
	f := newFixture(t)
	pending := f.book(t, slotDTO("2025-06-05", "09:00", "10:00")).Sessions[0]

	note, err := f.svc.SessionNote.AddSessionNote(f.ctx, tutor, pending.ID, domain.SessionNoteDTO{TutorNotes: PointerTo("подготовить задачи")})
	if err != nil {
		t.Fatalf("AddSessionNote() error = %v", err)
	}
	if note.SessionID != pending.ID {
		t.Errorf("session id = %d, want %d", note.SessionID, pending.ID)
	}
}
