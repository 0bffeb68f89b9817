package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TutorProfile struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Headline      string          `json:"headline"`
	Rating        decimal.Decimal `json:"rating"`
	RatedSessions int             `json:"rated_sessions"`
	IsVerified    bool            `json:"is_verified"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	FirstName     string          `json:"first_name,omitempty"`
	LastName      string          `json:"last_name,omitempty"`
}

type TeachingMode string

const (
	TeachingModeOnline  TeachingMode = "online"
	TeachingModeOffline TeachingMode = "offline"
	TeachingModeBoth    TeachingMode = "both"
)

// IsValidSessionMode сообщает, может ли режим использоваться для конкретного занятия.
func (m TeachingMode) IsValidSessionMode() bool {
	return m == TeachingModeOnline || m == TeachingModeOffline
}

func (m TeachingMode) IsValidCourseMode() bool {
	return m.IsValidSessionMode() || m == TeachingModeBoth
}

// Accepts reports whether a course declaring m can host a session in the requested mode.
func (m TeachingMode) Accepts(requested TeachingMode) bool {
	if !requested.IsValidSessionMode() {
		return false
	}
	return m == TeachingModeBoth || m == requested
}

type Course struct {
	ID           int64           `json:"id"`
	TutorID      int64           `json:"tutor_id"`
	Title        string          `json:"title"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	TeachingMode TeachingMode    `json:"teaching_mode"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
