package model

// ItemStatus represents the lifecycle state of a single download item
type ItemStatus string

const (
	// ItemStatusPending means the item is known but not started
	ItemStatusPending ItemStatus = "Pending"

	// ItemStatusResolving means a stream matching the constraints is being negotiated
	ItemStatusResolving ItemStatus = "Resolving"

	// ItemStatusDownloading means the transfer is in progress
	ItemStatusDownloading ItemStatus = "Downloading"

	// ItemStatusCompleted means the file was written successfully
	ItemStatusCompleted ItemStatus = "Completed"

	// ItemStatusFailed means resolution or transfer failed
	ItemStatusFailed ItemStatus = "Failed"

	// ItemStatusSkipped means the item was never attempted because its batch aborted
	ItemStatusSkipped ItemStatus = "Skipped"
)

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// IsActive returns true if the item is being worked on
func (s ItemStatus) IsActive() bool {
	return s == ItemStatusResolving || s == ItemStatusDownloading
}

// IsFinished returns true if the item reached a terminal state (completed, failed, or skipped)
func (s ItemStatus) IsFinished() bool {
	return s == ItemStatusCompleted || s == ItemStatusFailed || s == ItemStatusSkipped
}

// FailurePolicy decides what a sequential batch does after an item fails
type FailurePolicy string

const (
	// FailurePolicyContinue logs the failure and moves on to the next item
	FailurePolicyContinue FailurePolicy = "continue"

	// FailurePolicyAbort stops the batch and reports remaining items as skipped
	FailurePolicyAbort FailurePolicy = "abort"
)

// ParseFailurePolicy maps a stored setting to a policy, defaulting to continue
func ParseFailurePolicy(s string) FailurePolicy {
	if FailurePolicy(s) == FailurePolicyAbort {
		return FailurePolicyAbort
	}
	return FailurePolicyContinue
}
