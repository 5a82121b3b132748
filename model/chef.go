package model

// Chef is an execution slot of the current pool generation
type Chef struct {
	ID      int  `json:"id"`
	Idle    bool `json:"idle"`
	OrderID int  `json:"orderId,omitempty"` // 0 while idle
}

// NewChefs builds an idle batch with ids 1..count
func NewChefs(count int) []*Chef {
	ret := make([]*Chef, count)
	for i := range ret {
		ret[i] = &Chef{ID: i + 1, Idle: true}
	}
	return ret
}

// Assign marks the chef busy with the order
func (c *Chef) Assign(orderID int) {
	c.Idle = false
	c.OrderID = orderID
}

// Release marks the chef idle
func (c *Chef) Release() {
	c.Idle = true
	c.OrderID = 0
}
