package model

import "time"

// ProgressSnapshot is a derived view of the store, recomputed on demand.
// It is never the source of truth; the category list is.
type ProgressSnapshot struct {
	LastUpdated      time.Time `json:"lastUpdated"`
	RunID            string    `json:"runId,omitempty"`
	Pending          int       `json:"pending"`
	Processing       int       `json:"processing"`
	Completed        int       `json:"completed"`
	Failed           int       `json:"failed"`
	Total            int       `json:"total"`
	CellsFilled      int       `json:"cellsFilled"`
	BatchesPersisted int       `json:"batchesPersisted"`
	CumulativeCost   float64   `json:"cumulativeCost"`
}

// Snapshot computes a ProgressSnapshot over the given categories.
func Snapshot(categories []Category) ProgressSnapshot {
	snap := ProgressSnapshot{Total: len(categories), LastUpdated: time.Now()}
	for i := range categories {
		switch categories[i].EvaluationStatus {
		case StatusPending:
			snap.Pending++
		case StatusProcessing:
			snap.Processing++
		case StatusCompleted:
			snap.Completed++
		case StatusFailed:
			snap.Failed++
		}
		snap.CellsFilled += categories[i].CellCount()
	}
	return snap
}
