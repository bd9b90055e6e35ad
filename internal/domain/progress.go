package domain

import "time"

// Progress records how far a user got in a named simulation. One row per
// (UserID, SimulationName) pair; Completed is overwritten on every save.
type Progress struct {
	ID             int64
	UserID         int64
	SimulationName string
	Completed      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
