package approval

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when deciding an unknown request.
	ErrNotFound = errors.New("approval: request not found")

	// ErrAlreadyDecided is returned on a second decision for the same request.
	ErrAlreadyDecided = errors.New("approval: already decided")

	// ErrTimeout is returned when no decision arrives in time.
	ErrTimeout = errors.New("approval: timed out waiting for decision")
)

// Service defines the approval service interface.
type Service interface {
	RequestApproval(ctx context.Context, r *Request) error
	ListPending(ctx context.Context) ([]*Request, error)
	Decide(ctx context.Context, id string, approved bool, reason string) (*Decision, error)
	Decision(ctx context.Context, id string) (*Decision, error)
}
