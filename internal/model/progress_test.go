package model

import "testing"

func TestBatchProgress_Percent(t *testing.T) {
	tests := []struct {
		total     int
		completed int
		expected  int
	}{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 100},
		{3, 1, 33},
		{3, 2, 66},
		{3, 3, 100},
		{7, 5, 71},
	}

	for _, test := range tests {
		p := BatchProgress{Total: test.total, Completed: test.completed}
		if result := p.Percent(); result != test.expected {
			t.Errorf("Percent() with %d/%d = %d, expected %d", test.completed, test.total, result, test.expected)
		}
	}
}

func TestBatchProgress_Done(t *testing.T) {
	if (BatchProgress{}).Done() {
		t.Error("Empty batch must never be done")
	}
	if (BatchProgress{Total: 2, Completed: 1}).Done() {
		t.Error("Half processed batch must not be done")
	}
	if !(BatchProgress{Total: 2, Completed: 2, Failed: 1}).Done() {
		t.Error("Batch with every item processed must be done")
	}
}

func TestBatchProgress_Succeeded(t *testing.T) {
	p := BatchProgress{Total: 4, Completed: 3, Failed: 1}
	if p.Succeeded() != 2 {
		t.Errorf("Succeeded() = %d, expected 2", p.Succeeded())
	}
}
