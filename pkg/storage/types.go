package storage

import "time"

// CategoryStats summarizes the stored items of one category.
type CategoryStats struct {
	Category  string
	ItemCount int
	HotCount  int
	MinPrice  float64
	MaxPrice  float64
}

// Import captures a single catalog import for auditing or printing.
type Import struct {
	OccurredAt time.Time
	Source     string
	ItemCount  int
}
