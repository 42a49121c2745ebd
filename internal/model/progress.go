package model

// BatchProgress tracks how many items of a batch have been processed.
// Completed never exceeds Total and only grows within a batch.
type BatchProgress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"` // processed items, successful or not
	Failed    int `json:"failed"`    // subset of Completed that failed
}

// Percent returns Completed/Total*100 rounded down, or 0 for an empty batch
func (p BatchProgress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return p.Completed * 100 / p.Total
}

// Done reports whether every item of a non-empty batch has been processed
func (p BatchProgress) Done() bool {
	return p.Total > 0 && p.Completed >= p.Total
}

// Succeeded returns the number of processed items that did not fail
func (p BatchProgress) Succeeded() int {
	return p.Completed - p.Failed
}
