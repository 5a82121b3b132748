package scheduler

import (
	"context"

	"github.com/viant/brigade/service/backend"
)

// provision prepares the active backend for the current generation, falling
// back to timers when the parallel backend fails. Caller holds s.mu.
func (s *Service) provision(ctx context.Context) error {
	ids := make([]int, len(s.chefs))
	for i, chef := range s.chefs {
		ids[i] = chef.ID
	}
	err := s.active.Provision(ctx, s.generation, ids)
	if err == nil {
		return nil
	}
	if s.active.Kind() != backend.KindParallel {
		return err
	}
	s.fallBack(ctx, err)
	return nil
}

// fallBack permanently switches to the timer backend. Orders already cooking
// on the parallel backend are restarted on timers with the same chef.
func (s *Service) fallBack(ctx context.Context, cause error) {
	s.logger.Warnw("parallel backend unavailable, falling back to timers", "kitchen", s.kitchenID, "generation", s.generation, "error", cause)
	s.parallel.Shutdown()
	s.active = s.timer
	s.fallback = true

	ids := make([]int, len(s.chefs))
	for i, chef := range s.chefs {
		ids[i] = chef.ID
	}
	if err := s.timer.Provision(ctx, s.generation, ids); err != nil {
		s.logger.Errorw("failed to provision timer backend", "error", err)
		return
	}
	for _, o := range s.cooking {
		handle, ok := s.handles[o.ID]
		if !ok {
			continue
		}
		handle.Release()
		delete(s.handles, o.ID)
		restarted, err := s.start(ctx, o)
		if err != nil {
			s.logger.Errorw("failed to restart order on timer", "order", o.ID, "error", err)
			continue
		}
		s.handles[o.ID] = restarted
	}
}
