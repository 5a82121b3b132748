package model

// Tally holds aggregated kitchen counters
type Tally struct {
	Submitted int `json:"submitted"`
	Waiting   int `json:"waiting"`
	Cooking   int `json:"cooking"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Requeued  int `json:"requeued"`
}

// Snapshot is a read-only copy of the kitchen taken after a mutation.
type Snapshot struct {
	Version    uint64   `json:"version"`
	KitchenID  string   `json:"kitchenId"`
	Backend    string   `json:"backend"`
	Fallback   bool     `json:"fallback,omitempty"`
	Generation int      `json:"generation"`
	Waiting    []*Order `json:"waiting"`
	Cooking    []*Order `json:"cooking"`
	Chefs      []*Chef  `json:"chefs"`
	Completed  []*Order `json:"completed"`
	Cancelled  []*Order `json:"cancelled"`
	Tally      Tally    `json:"tally"`
}

// Lookup returns the order with the supplied id and the collection holding it.
func (s *Snapshot) Lookup(id int) (*Order, Status, bool) {
	for _, group := range []struct {
		status Status
		orders []*Order
	}{
		{StatusWaiting, s.Waiting},
		{StatusCooking, s.Cooking},
		{StatusCompleted, s.Completed},
		{StatusCancelled, s.Cancelled},
	} {
		for _, o := range group.orders {
			if o.ID == id {
				return o, group.status, true
			}
		}
	}
	return nil, "", false
}

// Chef returns the chef with the supplied id
func (s *Snapshot) Chef(id int) *Chef {
	for _, c := range s.Chefs {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// IdleChefs counts idle chefs
func (s *Snapshot) IdleChefs() int {
	count := 0
	for _, c := range s.Chefs {
		if c.Idle {
			count++
		}
	}
	return count
}
