package services

import (
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"github.com/SscSPs/million_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Normalization = NewNormalizationService(cfg.UnsupportedCurrencyPolicy)
	container.Conversion = NewConversionService(cfg.ConversionPolicy)
	container.Aggregation = NewAggregationService(container.Conversion)

	rateOptions := []RateServiceOption{
		WithRateTTL(cfg.RatesCacheTTL),
		// the upstream call plus the cache and history writes
		WithRateFetchTimeout(2 * cfg.RatesHTTPTimeout),
	}
	if repos.RateHistory != nil {
		rateOptions = append(rateOptions, WithRateHistory(repos.RateHistory))
	}
	container.Rates = NewRateService(repos.RateSource, repos.RateStore, rateOptions...)

	container.Dashboard = NewDashboardService(
		repos.Ledger,
		container.Normalization,
		container.Rates,
		container.Conversion,
		container.Aggregation,
		WithValuationSource(cfg.ValuationSource),
		WithGoalTarget(cfg.GoalTargetUSD),
	)

	container.Auth = NewAuthService(cfg)

	return container
}
