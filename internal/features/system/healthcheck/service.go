package system_healthcheck

import (
	"context"
	"time"

	"vendors-backend/internal/storage"
	errors_utils "vendors-backend/internal/util/errors"
)

const pingTimeout = 3 * time.Second

type HealthcheckService struct {
	ping func(ctx context.Context) error
}

func (s *HealthcheckService) IsHealthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.ping(ctx); err != nil {
		return errors_utils.DependencyUnavailable("Database is unavailable", err)
	}

	return nil
}

func newHealthcheckService() *HealthcheckService {
	return &HealthcheckService{ping: storage.Ping}
}
