package scheduler

import (
	"context"

	"github.com/viant/brigade/model"
	"github.com/viant/brigade/service/event"
)

// Snapshot returns a deep copy of the kitchen
func (s *Service) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// mutated bumps the version and returns the new snapshot. Caller holds s.mu.
func (s *Service) mutated() model.Snapshot {
	s.version++
	return s.snapshot()
}

func (s *Service) snapshot() model.Snapshot {
	chefs := make([]*model.Chef, len(s.chefs))
	for i, chef := range s.chefs {
		c := *chef
		chefs[i] = &c
	}
	return model.Snapshot{
		Version:    s.version,
		KitchenID:  s.kitchenID,
		Backend:    string(s.active.Kind()),
		Fallback:   s.fallback,
		Generation: s.generation,
		Waiting:    cloneOrders(s.waiting),
		Cooking:    cloneOrders(s.cooking),
		Chefs:      chefs,
		Completed:  cloneOrders(s.completed),
		Cancelled:  cloneOrders(s.cancelled),
		Tally:      s.progress.Tally(),
	}
}

func cloneOrders(orders []*model.Order) []*model.Order {
	ret := make([]*model.Order, len(orders))
	for i, o := range orders {
		ret[i] = o.Clone()
	}
	return ret
}

// publish hands the snapshot to the listener; called without s.mu held.
func (s *Service) publish(eventType string, snapshot model.Snapshot, orderID, chefID int) {
	if s.publisher == nil {
		return
	}
	evt := event.NewEvent(&event.Context{
		KitchenID: s.kitchenID,
		EventType: eventType,
		OrderID:   orderID,
		ChefID:    chefID,
	}, snapshot)
	if err := s.publisher.Publish(context.Background(), evt); err != nil {
		s.logger.Debugw("snapshot not published", "event", eventType, "error", err)
	}
}
