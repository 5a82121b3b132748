// Package order provides the in-memory order registry used for lookups by id.
package order

import (
	"context"
	"sort"

	"github.com/viant/brigade/model"
	"github.com/viant/brigade/service/dao"
	"github.com/viant/brigade/service/dao/criteria"
	"github.com/viant/brigade/service/dao/store"
)

// Service stores copies of orders keyed by id. All API methods work with
// copies to eliminate data races between goroutines.
type Service struct {
	*store.MemoryStore[int, model.Order]
}

var _ dao.Service[int, model.Order] = (*Service)(nil)

// List returns matching orders sorted by id
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Order, error) {
	orders, err := s.MemoryStore.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

// New creates an empty registry
func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[int, model.Order](
			func(o *model.Order) int { return o.ID },
			store.WithClone[int, model.Order](func(o *model.Order) *model.Order { return o.Clone() }),
			store.WithKeyValidator[int, model.Order](func(id int) bool { return id > 0 }),
			store.WithMatcher[int, model.Order](func(o *model.Order, parameters []*dao.Parameter) bool {
				return criteria.FilterByStatus(string(o.Status), parameters)
			}),
		),
	}
}
