package parallel

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/brigade/service/messaging"
	"github.com/viant/brigade/service/messaging/memory"
)

// ErrStationUnavailable is returned when a station cannot be constructed.
var ErrStationUnavailable = errors.New("parallel: station unavailable")

// Config represents parallel backend configuration
type Config struct {
	// MaxStations caps the number of stations; 0 means unlimited.
	MaxStations int
	// QueueBuffer is the channel capacity of inboxes and the outbox; messages
	// past it spill into an unbounded backlog.
	QueueBuffer int
}

// DefaultConfig returns the default parallel backend configuration
func DefaultConfig() Config {
	return Config{QueueBuffer: 64}
}

// StationSpec identifies the station being built
type StationSpec struct {
	Generation int
	ChefID     int
}

// StationFactory builds the inbox of one station.
type StationFactory func(ctx context.Context, spec StationSpec) (messaging.Queue[Command], error)

// DefaultFactory builds in-memory inboxes and refuses chef ids above MaxStations.
func DefaultFactory(config Config) StationFactory {
	return func(_ context.Context, spec StationSpec) (messaging.Queue[Command], error) {
		if config.MaxStations > 0 && spec.ChefID > config.MaxStations {
			return nil, fmt.Errorf("%w: chef %d exceeds limit of %d stations", ErrStationUnavailable, spec.ChefID, config.MaxStations)
		}
		return memory.NewQueue[Command](queueConfig(config)), nil
	}
}

// queueConfig builds unbounded queues: neither the scheduler nor a station
// may ever wait on the other while publishing.
func queueConfig(config Config) memory.Config {
	ret := memory.DefaultConfig()
	ret.Unbounded = true
	if config.QueueBuffer > 0 {
		ret.QueueBuffer = config.QueueBuffer
	}
	return ret
}
