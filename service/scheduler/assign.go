package scheduler

import (
	"context"
	"errors"

	"github.com/viant/brigade/internal/clock"
	"github.com/viant/brigade/model"
	"github.com/viant/brigade/progress"
	"github.com/viant/brigade/service/backend"
	"github.com/viant/brigade/service/backend/parallel"
	"github.com/viant/brigade/service/messaging"
	"github.com/viant/brigade/tracing"
)

// assign hands waiting orders to idle chefs in FIFO order. Caller holds s.mu.
func (s *Service) assign(ctx context.Context) {
	for len(s.waiting) > 0 {
		chef := s.idleChef()
		if chef == nil {
			return
		}
		o := s.waiting[0]
		s.waiting = s.waiting[1:]
		chef.Assign(o.ID)
		o.Start(chef.ID, clock.Now())
		s.cooking = append(s.cooking, o)
		s.progress.Update(progress.Delta{Waiting: -1, Cooking: 1})
		s.save(ctx, o)
		s.startCooking(ctx, o)
		s.logger.Debugw("order assigned", "order", o.ID, "chef", chef.ID, "generation", s.generation)
	}
}

// idleChef returns the idle chef with the lowest id
func (s *Service) idleChef() *model.Chef {
	var ret *model.Chef
	for _, chef := range s.chefs {
		if !chef.Idle {
			continue
		}
		if ret == nil || chef.ID < ret.ID {
			ret = chef
		}
	}
	return ret
}

// startCooking opens the cook span and starts the order on the active
// backend, falling back to timers when the chef's station is gone.
func (s *Service) startCooking(ctx context.Context, o *model.Order) {
	spanCtx, span := tracing.StartSpan(ctx, "order.cook", tracing.KindProducer)
	span.WithInt("order.id", o.ID).WithInt("chef.id", o.Chef).WithInt("generation", s.generation)
	s.spans[o.ID] = span

	handle, err := s.start(spanCtx, o)
	if err != nil && s.active.Kind() == backend.KindParallel && stationLost(err) {
		s.fallBack(ctx, err)
		handle, err = s.start(spanCtx, o)
	}
	if err != nil {
		s.logger.Errorw("failed to start order", "order", o.ID, "chef", o.Chef, "error", err)
		return
	}
	s.handles[o.ID] = handle
}

// stationLost reports whether a parallel start failed because the station
// could not be reached, as opposed to a caller context ending.
func stationLost(err error) bool {
	return errors.Is(err, parallel.ErrStationUnavailable) || errors.Is(err, messaging.ErrQueueClosed)
}

func (s *Service) start(ctx context.Context, o *model.Order) (backend.Handle, error) {
	return s.active.Start(ctx, backend.Assignment{
		Generation: s.generation,
		ChefID:     o.Chef,
		Order:      o.Clone(),
	})
}

// release voids the handle and ends the span of orderID
func (s *Service) release(orderID int, spanErr error) {
	if handle, ok := s.handles[orderID]; ok {
		handle.Release()
		delete(s.handles, orderID)
	}
	if span, ok := s.spans[orderID]; ok {
		tracing.EndSpan(span, spanErr)
		delete(s.spans, orderID)
	}
}

// freeChef idles the chef holding orderID
func (s *Service) freeChef(chefID, orderID int) {
	for _, chef := range s.chefs {
		if chef.ID == chefID && chef.OrderID == orderID {
			chef.Release()
			return
		}
	}
}

func indexOf(orders []*model.Order, id int) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func remove(orders []*model.Order, i int) []*model.Order {
	return append(orders[:i], orders[i+1:]...)
}
