package scheduler

import (
	"context"
	"fmt"

	"github.com/viant/brigade/internal/clock"
	"github.com/viant/brigade/model"
	"github.com/viant/brigade/progress"
	"github.com/viant/brigade/service/event"
	"github.com/viant/brigade/tracing"
)

// Cancel withdraws order id from the waiting queue or the cooking set named
// by source. It returns true when the order was found there. A cooking
// order's chef is freed immediately; the backend is told asynchronously.
func (s *Service) Cancel(ctx context.Context, id int, source model.Source) (found bool, err error) {
	if !source.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}
	ctx, span := tracing.StartSpan(ctx, "scheduler.Cancel", tracing.KindInternal)
	span.WithInt("order.id", id)
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrClosed
	}
	var o *model.Order
	switch source {
	case model.SourceWaiting:
		if i := indexOf(s.waiting, id); i >= 0 {
			o = s.waiting[i]
			s.waiting = remove(s.waiting, i)
		}
	case model.SourceCooking:
		if i := indexOf(s.cooking, id); i >= 0 {
			o = s.cooking[i]
			s.cooking = remove(s.cooking, i)
			s.active.Cancel(o.Chef, id)
		}
	}

	chefID := 0
	if o != nil && o.Status != model.StatusCancelled {
		chefID = o.Chef
		delta := progress.Delta{Cancelled: 1}
		if o.Status == model.StatusCooking {
			delta.Cooking = -1
		} else {
			delta.Waiting = -1
		}
		o.Cancel(clock.Now())
		s.cancelled = append(s.cancelled, o)
		s.progress.Update(delta)
		s.save(ctx, o)
	}
	s.release(id, errCancelled)
	if chefID != 0 {
		s.freeChef(chefID, id)
	}
	s.assign(ctx)
	snapshot := s.mutated()
	s.mu.Unlock()

	s.publish(event.TypeCancelled, snapshot, id, chefID)
	return o != nil, nil
}
