package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/brigade/model"
)

// Kind identifies an execution backend
type Kind string

const (
	KindParallel Kind = "parallel"
	KindTimer    Kind = "timer"
)

// ParseKind converts text into a Kind
func ParseKind(text string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(text))) {
	case KindParallel:
		return KindParallel, nil
	case KindTimer:
		return KindTimer, nil
	}
	return "", fmt.Errorf("unknown backend kind: %q", text)
}

// ReportKind is the outcome of a cooking attempt
type ReportKind string

const (
	ReportDone      ReportKind = "done"
	ReportCancelled ReportKind = "cancelled"
)

// Report is sent by a backend when an assignment finishes
type Report struct {
	Kind       ReportKind
	Generation int
	ChefID     int
	OrderID    int
}

// Notify receives reports; it may be called from any goroutine.
type Notify func(Report)

// Assignment asks a backend to cook Order on chef ChefID.
type Assignment struct {
	Generation int
	ChefID     int
	Order      *model.Order
}

// Backend executes assignments.
type Backend interface {
	Kind() Kind

	// Provision tears down the previous generation and prepares one execution
	// context per chef id.
	Provision(ctx context.Context, generation int, chefIDs []int) error

	// Start begins cooking; the result arrives later through Notify.
	Start(ctx context.Context, assignment Assignment) (Handle, error)

	// Cancel asks the backend to stop cooking orderID on chefID. It does not
	// wait for acknowledgement.
	Cancel(chefID, orderID int)

	// Shutdown stops every execution context.
	Shutdown()
}
