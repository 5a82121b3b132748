package brigade

import (
	"fmt"

	"github.com/viant/brigade/tracing"
)

func (s *Service) initTracing() error {
	if err := tracing.Init(serviceName, Version, s.config.Tracing.Output); err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	return nil
}
