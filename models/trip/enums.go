package trip

// TripStatus represents the lifecycle state of a trip
type TripStatus string

const (
	TripStatusDraft      TripStatus = "DRAFT"
	TripStatusDispatched TripStatus = "DISPATCHED"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// Helper methods for TripStatus
func (ts TripStatus) String() string {
	return string(ts)
}

func (ts TripStatus) IsValid() bool {
	switch ts {
	case TripStatusDraft, TripStatusDispatched, TripStatusCompleted, TripStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further status change is allowed
func (ts TripStatus) IsTerminal() bool {
	return ts == TripStatusCompleted || ts == TripStatusCancelled
}

// CanBeDispatched returns true if the dispatch action is legal from this status
func (ts TripStatus) CanBeDispatched() bool {
	return ts == TripStatusDraft
}

// CanBeCompleted returns true if the complete action is legal from this status
func (ts TripStatus) CanBeCompleted() bool {
	return ts == TripStatusDispatched
}

// CanBeCancelled returns true if the cancel action is legal from this status
func (ts TripStatus) CanBeCancelled() bool {
	return ts == TripStatusDraft || ts == TripStatusDispatched
}

// GetAllTripStatuses returns all valid trip statuses
func GetAllTripStatuses() []TripStatus {
	return []TripStatus{
		TripStatusDraft,
		TripStatusDispatched,
		TripStatusCompleted,
		TripStatusCancelled,
	}
}
