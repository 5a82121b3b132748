package parallel

import (
	"context"
	"errors"
	"time"

	"github.com/viant/brigade/service/backend"
	"github.com/viant/brigade/service/messaging"
	"go.uber.org/zap"
)

// station cooks one order at a time for a single chef
type station struct {
	generation int
	chefID     int
	inbox      messaging.Queue[Command]
	outbox     messaging.Queue[backend.Report]
	logger     *zap.SugaredLogger
	ctx        context.Context
	cancelFn   context.CancelFunc
	backlog    []Command
}

func (s *station) run(onExit func()) {
	defer onExit()
	for {
		cmd, ok := s.next()
		if !ok {
			return
		}
		switch cmd.Kind {
		case CommandCook:
			if !s.cook(cmd) {
				return
			}
		case CommandCancel:
			// nothing is cooking on this station
		}
	}
}

// next returns the next command: backlog first, then the inbox
func (s *station) next() (Command, bool) {
	if len(s.backlog) > 0 {
		cmd := s.backlog[0]
		s.backlog = s.backlog[1:]
		return cmd, true
	}
	return s.receive(s.ctx)
}

func (s *station) receive(ctx context.Context) (Command, bool) {
	msg, err := s.inbox.Consume(ctx)
	if err != nil || msg == nil {
		return Command{}, false
	}
	_ = msg.Ack()
	return *msg.T(), true
}

// cook waits for the cook duration while watching the inbox for a matching
// cancel. It returns false when the station must stop.
func (s *station) cook(cmd Command) bool {
	deadline := time.Now().Add(cmd.Duration)
	for {
		waitCtx, cancel := context.WithDeadline(s.ctx, deadline)
		msg, err := s.inbox.Consume(waitCtx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && s.ctx.Err() == nil {
				return s.report(backend.ReportDone, cmd.OrderID)
			}
			return false
		}
		if msg == nil {
			continue
		}
		_ = msg.Ack()
		next := *msg.T()
		switch {
		case next.Kind == CommandCancel && next.OrderID == cmd.OrderID:
			return s.report(backend.ReportCancelled, cmd.OrderID)
		case next.Kind == CommandCook:
			s.backlog = append(s.backlog, next)
		}
	}
}

func (s *station) report(kind backend.ReportKind, orderID int) bool {
	report := backend.Report{Kind: kind, Generation: s.generation, ChefID: s.chefID, OrderID: orderID}
	if err := s.outbox.Publish(s.ctx, &report); err != nil {
		s.logger.Debugw("station report dropped", "chef", s.chefID, "order", orderID, "error", err)
		return false
	}
	return true
}

func (s *station) stop() {
	s.cancelFn()
	if closer, ok := s.inbox.(messaging.Closer); ok {
		_ = closer.Close()
	}
}
