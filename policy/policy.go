package policy

import (
	"context"
	"strings"
)

// Confirmation modes.
const (
	ModeAsk  = "ask"  // consult Ask before proceeding
	ModeAuto = "auto" // proceed without asking
	ModeDeny = "deny" // always refuse
)

// ConfirmFunc is invoked when Mode==ask with the requested chef count.
// Returning true approves the resize. Implementations MAY mutate the policy,
// for example switching to ModeAuto after the first approval.
type ConfirmFunc func(ctx context.Context, count int, p *Policy) bool

// Policy holds resize confirmation settings.
//
//   - Mode controls the behaviour (ask / auto / deny).
//   - Ask is only used when Mode==ask; a nil Ask refuses.
//
// A nil *Policy approves everything.
type Policy struct {
	Mode string
	Ask  ConfirmFunc
}

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// New creates a policy
func New(mode string, ask ConfirmFunc) *Policy {
	return &Policy{Mode: mode, Ask: ask}
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{Mode: p.Mode}
}

// FromConfig converts a stored Config back to a runtime Policy (without Ask).
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{Mode: c.Mode}
}

// IsValidMode reports whether mode is one of the known modes; empty means auto.
func IsValidMode(mode string) bool {
	switch strings.ToLower(mode) {
	case "", ModeAsk, ModeAuto, ModeDeny:
		return true
	}
	return false
}

// Confirm reports whether a resize to count chefs may proceed.
func (p *Policy) Confirm(ctx context.Context, count int) bool {
	if p == nil {
		return true
	}
	switch strings.ToLower(p.Mode) {
	case "", ModeAuto:
		return true
	case ModeAsk:
		if p.Ask == nil {
			return false
		}
		return p.Ask(ctx, count, p)
	}
	return false
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx; it overrides the kitchen policy for that call.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy embedded with WithPolicy, or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
