package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/brigade/internal/clock"
	"github.com/viant/brigade/internal/idgen"
	"github.com/viant/brigade/service/approval"
	"github.com/viant/brigade/service/dao"
	"github.com/viant/brigade/service/dao/store"
)

type service struct {
	reqDAO dao.Service[string, approval.Request]
	decDAO dao.Service[string, approval.Decision]
}

func reqKey(r *approval.Request) string  { return r.ID }
func decKey(d *approval.Decision) string { return d.ID }

// New creates an in-memory approval service
func New() approval.Service {
	return &service{
		reqDAO: store.NewMemoryStore[string, approval.Request](reqKey),
		decDAO: store.NewMemoryStore[string, approval.Decision](decKey),
	}
}

func (s *service) RequestApproval(ctx context.Context, r *approval.Request) error {
	if r == nil {
		return errors.New("invalid request")
	}
	if r.ID == "" {
		r.ID = idgen.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = clock.Now()
	}
	return s.reqDAO.Save(ctx, r)
}

// ListPending returns undecided requests that have not expired. Expired
// undecided requests are removed; nobody is waiting on them anymore.
func (s *service) ListPending(ctx context.Context) ([]*approval.Request, error) {
	all, err := s.reqDAO.List(ctx)
	if err != nil {
		return nil, err
	}
	now := clock.Now()
	pending := make([]*approval.Request, 0, len(all))
	for _, r := range all {
		if _, err := s.decDAO.Load(ctx, r.ID); !errors.Is(err, dao.ErrNotFound) {
			continue
		}
		if r.ExpiresAt != nil && now.After(*r.ExpiresAt) {
			if err := s.reqDAO.Delete(ctx, r.ID); err != nil && !errors.Is(err, dao.ErrNotFound) {
				return nil, fmt.Errorf("failed to prune request %s: %w", r.ID, err)
			}
			continue
		}
		pending = append(pending, r)
	}
	return pending, nil
}

func (s *service) Decide(ctx context.Context, id string, ok bool, reason string) (*approval.Decision, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	if _, err := s.reqDAO.Load(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: %s", approval.ErrNotFound, id)
	}
	if _, err := s.decDAO.Load(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: %s", approval.ErrAlreadyDecided, id)
	}
	d := &approval.Decision{
		ID:        id,
		Approved:  ok,
		Reason:    reason,
		DecidedAt: clock.Now(),
	}
	if err := s.decDAO.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Decision(ctx context.Context, id string) (*approval.Decision, error) {
	return s.decDAO.Load(ctx, id)
}

var _ approval.Service = (*service)(nil)
