package scheduler

import (
	"context"

	"github.com/viant/brigade/internal/clock"
	"github.com/viant/brigade/progress"
	"github.com/viant/brigade/service/backend"
	"github.com/viant/brigade/service/event"
)

// report applies a backend outcome. Reports from an abandoned backend, an
// older generation, a different chef or for orders no longer cooking are
// ignored.
func (s *Service) report(kind backend.Kind, r backend.Report) {
	ctx := context.Background()
	s.mu.Lock()
	if s.closed || kind != s.active.Kind() || r.Generation != s.generation {
		s.mu.Unlock()
		s.logger.Debugw("stale report ignored", "kind", r.Kind, "order", r.OrderID, "chef", r.ChefID, "generation", r.Generation)
		return
	}
	i := indexOf(s.cooking, r.OrderID)
	if i < 0 || s.cooking[i].Chef != r.ChefID {
		s.mu.Unlock()
		s.logger.Debugw("report for order not cooking ignored", "kind", r.Kind, "order", r.OrderID, "chef", r.ChefID)
		return
	}
	o := s.cooking[i]
	s.cooking = remove(s.cooking, i)

	eventType := event.TypeCompleted
	switch r.Kind {
	case backend.ReportCancelled:
		eventType = event.TypeCancelled
		o.Cancel(clock.Now())
		s.cancelled = append(s.cancelled, o)
		s.release(o.ID, errCancelled)
		s.progress.Update(progress.Delta{Cooking: -1, Cancelled: 1})
	default:
		o.Complete(clock.Now())
		s.completed = append(s.completed, o)
		s.release(o.ID, nil)
		s.progress.Update(progress.Delta{Cooking: -1, Completed: 1})
	}
	s.freeChef(r.ChefID, o.ID)
	s.save(ctx, o)
	s.assign(ctx)
	snapshot := s.mutated()
	s.mu.Unlock()

	s.publish(eventType, snapshot, r.OrderID, r.ChefID)
}
