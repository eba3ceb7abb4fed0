package domain

import "time"

// Batch describes one stored generation run.
type Batch struct {
	ID                string
	Seed              uint64
	Requested         int
	RecordCount       int
	DuplicatesRemoved int
	GeneratorVersion  string
	SessionID         string
	CreatedAt         time.Time
}
