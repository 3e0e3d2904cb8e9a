package order

import "strings"

// Status is the order lifecycle label. Orders are created pending; no
// operation here moves them further.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(s)); st {
	case StatusPending, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", ErrUnknownStatus
	}
}
