package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/brigade/internal/clock"
	"github.com/viant/brigade/internal/idgen"
	"github.com/viant/brigade/policy"
)

const pollInterval = 10 * time.Millisecond

// DecisionFunc decides what to do with a pending request.
// Return (true, "") to approve or (false, "…") to reject with reason.
type DecisionFunc func(r *Request) (approved bool, reason string)

// AutoDecider starts a goroutine that polls ListPending and applies fn to
// every request. It returns stop(); cancelling ctx also stops it.
func AutoDecider(ctx context.Context, svc Service, fn DecisionFunc, interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				requests, _ := svc.ListPending(ctx)
				for _, r := range requests {
					ok, reason := fn(r)
					_, _ = svc.Decide(ctx, r.ID, ok, reason)
				}
			}
		}
	}()
	return func() { close(done) }
}

// AutoApprove automatically approves all pending requests
func AutoApprove(ctx context.Context, svc Service, interval time.Duration) func() {
	return AutoDecider(ctx, svc, func(*Request) (bool, string) { return true, "" }, interval)
}

// AutoReject automatically rejects all pending requests with the given reason
func AutoReject(ctx context.Context, svc Service, reason string, interval time.Duration) func() {
	return AutoDecider(ctx, svc, func(*Request) (bool, string) { return false, reason }, interval)
}

// WaitForDecision blocks until request id is decided, ctx is done or timeout elapses.
func WaitForDecision(ctx context.Context, svc Service, id string, timeout time.Duration) (*Decision, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if d, err := svc.Decision(waitCtx, id); err == nil && d != nil {
			return d, nil
		}
		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: request %s", ErrTimeout, id)
		case <-ticker.C:
		}
	}
}

// Confirm returns a policy.ConfirmFunc that files a resize request with svc
// and waits up to timeout for the decision. No decision counts as refusal.
func Confirm(svc Service, kitchenID string, timeout time.Duration) policy.ConfirmFunc {
	return func(ctx context.Context, count int, _ *policy.Policy) bool {
		now := clock.Now()
		expiresAt := now.Add(timeout)
		request := &Request{
			ID:        idgen.New(),
			KitchenID: kitchenID,
			Action:    ActionResize,
			Count:     count,
			CreatedAt: now,
			ExpiresAt: &expiresAt,
		}
		if err := svc.RequestApproval(ctx, request); err != nil {
			return false
		}
		decision, err := WaitForDecision(ctx, svc, request.ID, timeout)
		if err != nil {
			return false
		}
		return decision.Approved
	}
}
