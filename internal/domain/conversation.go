package domain

import (
	"time"
)

// Conversation is the messaging thread between a student and a tutor profile.
type Conversation struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	TutorID   int64     `json:"tutor_id"`
	CreatedAt time.Time `json:"created_at"`
}
