// Package brigade simulates a kitchen: orders are queued, cooked by a pool of
// chefs and end up completed or cancelled.
//
// The root package exposes a Service facade that loads configuration, builds
// the logger and wires the scheduler:
//
//	cfg, _ := brigade.LoadConfig(ctx, "brigade.yaml")
//	srv, _ := brigade.New(ctx, brigade.WithConfig(cfg))
//	defer srv.Shutdown()
//	kitchen := srv.Kitchen()
//	order, _ := kitchen.Submit(ctx, "eggs, toast")
//	_, _ = kitchen.Cancel(ctx, order.ID, model.SourceCooking)
//	_ = kitchen.Resize(ctx, 4)
//
// See the service/scheduler package for the scheduling rules.
package brigade
