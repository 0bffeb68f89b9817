package domain

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type SessionNote struct {
	ID              int64     `json:"id"`
	SessionID       int64     `json:"session_id"`
	TutorNotes      *string   `json:"tutor_notes,omitempty"`
	StudentRating   *int      `json:"student_rating,omitempty"`
	StudentFeedback *string   `json:"student_feedback,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SessionNoteDTO struct {
	TutorNotes      *string `json:"tutor_notes,omitempty"`
	StudentRating   *int    `json:"student_rating,omitempty"`
	StudentFeedback *string `json:"student_feedback,omitempty"`
}

func (dto SessionNoteDTO) HasTutorFields() bool {
	return dto.TutorNotes != nil
}

func (dto SessionNoteDTO) HasStudentFields() bool {
	return dto.StudentRating != nil || dto.StudentFeedback != nil
}

// Merge накладывает непустые поля DTO на существующую заметку.
func (n SessionNote) Merge(dto SessionNoteDTO) SessionNote {
	if dto.TutorNotes != nil {
		n.TutorNotes = dto.TutorNotes
	}
	if dto.StudentRating != nil {
		n.StudentRating = dto.StudentRating
	}
	if dto.StudentFeedback != nil {
		n.StudentFeedback = dto.StudentFeedback
	}
	return n
}
