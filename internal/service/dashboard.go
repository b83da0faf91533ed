package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/target/marketplace-console/internal/core"
	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/marketplace"
)

// Dashboard is everything the admin dashboard shows.
type Dashboard struct {
	Stats    *model.DashboardStats
	Settings *model.PlatformSettings
}

// DashboardService loads the admin dashboard.
type DashboardService struct {
	backend core.DashboardBackend
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(backend core.DashboardBackend) *DashboardService {
	if backend == nil {
		panic("dashboard backend is required")
	}
	return &DashboardService{backend: backend}
}

// Load fetches stats and settings concurrently. The first failure cancels the other read.
func (s *DashboardService) Load(ctx context.Context, sess *domainauth.Session) (*Dashboard, error) {
	g, gctx := errgroup.WithContext(withSession(ctx, sess))
	var out Dashboard

	g.Go(func() error {
		stats, err := s.backend.DashboardStats(gctx)
		if err != nil {
			return err
		}
		out.Stats = stats
		return nil
	})
	g.Go(func() error {
		settings, err := s.backend.Settings(gctx)
		if err != nil {
			return err
		}
		out.Settings = settings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return &out, nil
}
