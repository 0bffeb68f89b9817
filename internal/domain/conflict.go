package domain

// ConflictSource selects which commitments a conflict check compares against.
type ConflictSource string

const (
	ConflictSourceSchedule ConflictSource = "schedule"
	ConflictSourceBookings ConflictSource = "bookings"
)

func (s ConflictSource) IsValid() bool {
	return s == ConflictSourceSchedule || s == ConflictSourceBookings
}

// Occupied is an existing, non-cancelled commitment of a tutor.
type Occupied struct {
	ID   int64
	Slot TimeSlot
}

// DetectConflicts проверяет кандидатов по порядку против занятых слотов и против
// ранее проверенных кандидатов той же пачки. Для пересечения внутри пачки ExistingID равен 0.
func DetectConflicts(candidates []TimeSlot, occupied []Occupied) []SlotConflict {
	var conflicts []SlotConflict

	for i, candidate := range candidates {
		for _, o := range occupied {
			if candidate.Overlaps(o.Slot) {
				conflicts = append(conflicts, SlotConflict{Requested: candidate, ExistingID: o.ID, ExistingSlot: o.Slot})
			}
		}
		for _, earlier := range candidates[:i] {
			if candidate.Overlaps(earlier) {
				conflicts = append(conflicts, SlotConflict{Requested: candidate, ExistingSlot: earlier})
			}
		}
	}

	return conflicts
}
