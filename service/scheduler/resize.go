package scheduler

import (
	"context"
	"fmt"

	"github.com/viant/brigade/model"
	"github.com/viant/brigade/policy"
	"github.com/viant/brigade/progress"
	"github.com/viant/brigade/service/event"
	"github.com/viant/brigade/tracing"
)

// Resize replaces the chef pool with count idle chefs. Orders in flight are
// demoted to the head of the waiting queue, keeping their relative order,
// before the new pool picks work up again. Counts above the confirmation
// threshold are checked against the policy in ctx, or the kitchen policy.
func (s *Service) Resize(ctx context.Context, count int) (err error) {
	ctx, span := tracing.StartSpan(ctx, "scheduler.Resize", tracing.KindInternal)
	span.WithInt("chefs", count)
	defer func() { tracing.EndSpan(span, err) }()

	if count < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPoolSize, count)
	}
	if count > s.confirmAbove {
		p := policy.FromContext(ctx)
		if p == nil {
			p = s.policy
		}
		if !p.Confirm(ctx, count) {
			return fmt.Errorf("%w: %d chefs", ErrResizeDeclined, count)
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	demoted := make([]*model.Order, 0, len(s.cooking)+len(s.waiting))
	for _, o := range s.cooking {
		s.release(o.ID, nil)
		o.Requeue()
		s.save(ctx, o)
		demoted = append(demoted, o)
	}
	requeued := len(demoted)
	if requeued > 0 {
		s.progress.Update(progress.Delta{Cooking: -requeued, Waiting: requeued, Requeued: requeued})
	}
	s.waiting = append(demoted, s.waiting...)
	s.cooking = nil

	s.generation++
	s.chefs = model.NewChefs(count)
	if err = s.provision(ctx); err != nil {
		s.logger.Errorw("failed to provision pool", "generation", s.generation, "error", err)
	}
	s.logger.Infow("pool resized", "kitchen", s.kitchenID, "chefs", count, "generation", s.generation, "requeued", requeued, "backend", s.active.Kind())
	s.assign(ctx)
	snapshot := s.mutated()
	s.mu.Unlock()

	s.publish(event.TypeResized, snapshot, 0, 0)
	return err
}
