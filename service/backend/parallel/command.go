package parallel

import (
	"time"

	"github.com/viant/brigade/model"
)

// CommandKind enumerates station instructions
type CommandKind string

const (
	CommandCook   CommandKind = "cook"
	CommandCancel CommandKind = "cancel"
)

// Command is an inbox message
type Command struct {
	Kind     CommandKind
	OrderID  int
	Order    *model.Order
	Duration time.Duration
}
