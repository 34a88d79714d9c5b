package types

import (
	"strings"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
)

// SubmissionStatus is the review state of a submission. Any valid status may
// follow any other; only membership in the set is checked.
type SubmissionStatus string

const (
	StatusPending          SubmissionStatus = "pending"
	StatusInReview         SubmissionStatus = "in_review"
	StatusApproved         SubmissionStatus = "approved"
	StatusChangesRequested SubmissionStatus = "changes_requested"
)

var SubmissionStatuses = []SubmissionStatus{
	StatusPending,
	StatusInReview,
	StatusApproved,
	StatusChangesRequested,
}

func (s SubmissionStatus) Valid() bool {
	for _, status := range SubmissionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseSubmissionStatus validates a raw status value.
func ParseSubmissionStatus(raw string) (SubmissionStatus, error) {
	if raw == "" {
		return "", errs.InvalidInput("status is required")
	}

	status := SubmissionStatus(raw)
	if !status.Valid() {
		names := make([]string, len(SubmissionStatuses))
		for i, s := range SubmissionStatuses {
			names[i] = string(s)
		}
		return "", errs.InvalidInput("Invalid status, must be one of: " + strings.Join(names, ", "))
	}

	return status, nil
}
