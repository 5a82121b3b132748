package brigade_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/brigade"
	"github.com/viant/brigade/model"
	"github.com/viant/brigade/policy"
	"github.com/viant/brigade/service/approval"
	approvalmemory "github.com/viant/brigade/service/approval/memory"
	"github.com/viant/brigade/service/backend"
	"github.com/viant/brigade/service/scheduler"
	"go.uber.org/zap"
)

func testConfig(kind backend.Kind) *brigade.Config {
	cfg := brigade.DefaultConfig()
	cfg.Backend.Kind = string(kind)
	cfg.Cook = backend.Timing{PerItem: 2 * time.Millisecond}
	return cfg
}

func TestService(t *testing.T) {
	for _, kind := range []backend.Kind{backend.KindParallel, backend.KindTimer} {
		t.Run(string(kind), func(t *testing.T) {
			ctx := context.Background()
			srv, err := brigade.New(ctx,
				brigade.WithConfig(testConfig(kind)),
				brigade.WithLogger(zap.NewNop().Sugar()),
			)
			require.NoError(t, err)
			defer srv.Shutdown()

			kitchen := srv.Kitchen()
			assert.Equal(t, 2, kitchen.Chefs())
			assert.Equal(t, kind, kitchen.Backend())

			o, ok := kitchen.Submit(ctx, "eggs, toast")
			require.True(t, ok)
			assert.Equal(t, model.StatusCooking, o.Status)

			assert.Eventually(t, func() bool {
				loaded, err := kitchen.Order(ctx, o.ID)
				return err == nil && loaded.Status == model.StatusCompleted
			}, time.Second, 2*time.Millisecond)
		})
	}
}

func TestService_Confirm(t *testing.T) {
	ctx := context.Background()
	asked := 0
	srv, err := brigade.New(ctx,
		brigade.WithConfig(testConfig(backend.KindTimer)),
		brigade.WithLogger(zap.NewNop().Sugar()),
		brigade.WithConfirm(func(_ context.Context, count int, _ *policy.Policy) bool {
			asked++
			return count < 200
		}),
	)
	require.NoError(t, err)
	defer srv.Shutdown()

	kitchen := srv.Kitchen()
	require.NoError(t, kitchen.Resize(ctx, 150))
	assert.Equal(t, 150, kitchen.Chefs())
	assert.ErrorIs(t, kitchen.Resize(ctx, 250), scheduler.ErrResizeDeclined)
	assert.Equal(t, 150, kitchen.Chefs())
	assert.Equal(t, 2, asked)
}

func TestService_Approval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	approvals := approvalmemory.New()
	stop := approval.AutoDecider(ctx, approvals, func(r *approval.Request) (bool, string) {
		return r.Count <= 120, "kitchen too small"
	}, 5*time.Millisecond)
	defer stop()

	srv, err := brigade.New(ctx,
		brigade.WithConfig(testConfig(backend.KindTimer)),
		brigade.WithLogger(zap.NewNop().Sugar()),
		brigade.WithApproval(approvals, time.Second),
	)
	require.NoError(t, err)
	defer srv.Shutdown()

	kitchen := srv.Kitchen()
	require.NoError(t, kitchen.Resize(ctx, 120))
	assert.ErrorIs(t, kitchen.Resize(ctx, 121), scheduler.ErrResizeDeclined)
	assert.Equal(t, 120, kitchen.Chefs())
}

func TestService_InvalidConfig(t *testing.T) {
	cfg := brigade.DefaultConfig()
	cfg.Kitchen.Chefs = 0
	_, err := brigade.New(context.Background(), brigade.WithConfig(cfg))
	assert.Error(t, err)
}
