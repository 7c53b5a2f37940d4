package models

// PawnStatus is the lifecycle state of a pawn
type PawnStatus string

const (
	PawnStatusActive     PawnStatus = "ACTIVO"
	PawnStatusPaid       PawnStatus = "PAGADO"
	PawnStatusExpired    PawnStatus = "VENCIDO"
	PawnStatusLiquidated PawnStatus = "REMATADO"
)

// pawnTransitions lists the legal moves out of each state. Terminal states
// have no entry.
var pawnTransitions = map[PawnStatus][]PawnStatus{
	PawnStatusActive: {PawnStatusPaid, PawnStatusExpired, PawnStatusLiquidated},
}

// PawnStatuses returns the canonical statuses in lifecycle order.
func PawnStatuses() []PawnStatus {
	return []PawnStatus{PawnStatusActive, PawnStatusPaid, PawnStatusExpired, PawnStatusLiquidated}
}

func (s PawnStatus) Valid() bool {
	switch s {
	case PawnStatusActive, PawnStatusPaid, PawnStatusExpired, PawnStatusLiquidated:
		return true
	}
	return false
}

// CanTransition reports whether a pawn may move from one status to another.
// Staying in the same status is always allowed.
func CanTransition(from, to PawnStatus) bool {
	if from == to {
		return true
	}
	for _, next := range pawnTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
