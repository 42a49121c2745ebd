package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDPrefix prefixes every generated request ID
const RequestIDPrefix = "req-"

// Request describes one download operation. It is passed to a worker by value
// and never modified after the worker starts.
type Request struct {
	ID          string `json:"id"`
	Source      string `json:"source" validate:"required"`           // media URL, playlist URL or descriptor path
	Destination string `json:"destination" validate:"required,dir"` // existing directory receiving the files
	Resolution  string `json:"resolution,omitempty"`                 // e.g. "720p", empty means any
	Name        string `json:"name,omitempty"`                       // display name, used for logging only
}

// NewRequest builds a request with a fresh time-ordered ID
func NewRequest(source, destination, resolution string) Request {
	return Request{
		ID:          NewRequestID(),
		Source:      strings.TrimSpace(source),
		Destination: strings.TrimSpace(destination),
		Resolution:  strings.TrimSpace(resolution),
	}
}

// DisplayName returns Name, or Source when no name was given
func (r Request) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Source
}

// NewRequestID generates a unique ID using UUID v7 so IDs sort by creation time
func NewRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(RequestIDPrefix+"%d", time.Now().UnixNano())
	}
	return RequestIDPrefix + id.String()
}

// Result is produced exactly once per requested item
type Result struct {
	RequestID string     `json:"request_id"`
	Index     int        `json:"index"` // position of the item inside its batch
	Source    string     `json:"source"`
	Name      string     `json:"name,omitempty"`
	FileName  string     `json:"file_name,omitempty"` // base name of the written file
	Path      string     `json:"path,omitempty"`      // full path of the written file
	Status    ItemStatus `json:"status"`
	Success   bool       `json:"success"`
	Error     string     `json:"error,omitempty"`
}

// GetDisplayTitle returns file name, display name, or source in order of preference
func (r Result) GetDisplayTitle() string {
	if r.FileName != "" {
		return r.FileName
	}
	if r.Name != "" {
		return r.Name
	}
	return r.Source
}
