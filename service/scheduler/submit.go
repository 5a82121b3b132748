package scheduler

import (
	"context"

	"github.com/viant/brigade/internal/clock"
	"github.com/viant/brigade/model"
	"github.com/viant/brigade/progress"
	"github.com/viant/brigade/service/event"
	"github.com/viant/brigade/tracing"
)

// Submit admits an order parsed from comma separated text. Text without any
// item is ignored and returns false without consuming an id. The returned
// copy reflects the state after assignment.
func (s *Service) Submit(ctx context.Context, text string) (*model.Order, bool) {
	items := model.ParseItems(text)
	if len(items) == 0 {
		return nil, false
	}
	ctx, span := tracing.StartSpan(ctx, "scheduler.Submit", tracing.KindInternal)
	defer tracing.EndSpan(span, nil)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, false
	}
	s.nextID++
	o := model.NewOrder(s.nextID, items, clock.Now())
	span.WithInt("order.id", o.ID)
	s.waiting = append(s.waiting, o)
	s.save(ctx, o)
	s.progress.Update(progress.Delta{Submitted: 1, Waiting: 1})
	s.assign(ctx)
	ret := o.Clone()
	snapshot := s.mutated()
	s.mu.Unlock()

	s.publish(event.TypeSubmitted, snapshot, ret.ID, ret.Chef)
	return ret, true
}
