package di

import (
	"time"

	"github.com/jainnhimanshuu/savorini/internal/clock"
	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/handler"
	"github.com/jainnhimanshuu/savorini/internal/repository"
	"github.com/jainnhimanshuu/savorini/internal/service"
	"github.com/jainnhimanshuu/savorini/pkg/config"
	"github.com/jainnhimanshuu/savorini/pkg/database"
	"github.com/jainnhimanshuu/savorini/pkg/redis"
)

// Container holds all dependencies for the API service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client
	Clock clock.Clock

	// Repositories
	DealRepo        repository.DealRepository
	VenueRepo       repository.VenueRepository
	CandidateSource repository.CandidateSource
	RuleStore       repository.RuleStore
	RuleSource      repository.RuleSource
	FeedCache       repository.FeedCache

	// Services
	ComplianceService service.ComplianceService
	DiscoveryService  service.DiscoveryService
	DealService       service.DealService
	VenueService      service.VenueService
	RuleService       service.RuleService

	// Handlers
	HealthHandler *handler.HealthHandler
	FeedHandler   *handler.FeedHandler
	DealHandler   *handler.DealHandler
	VenueHandler  *handler.VenueHandler
	RuleHandler   *handler.RuleHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *redis.Client
	Clock  clock.Clock

	// Location is the wall-clock zone used for schedule evaluation
	Location *time.Location
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
		Clock: cfg.Clock,
	}
	if c.Clock == nil {
		c.Clock = clock.NewSystem()
	}

	disc := cfg.Config.Discovery

	if c.DB != nil {
		c.DealRepo = repository.NewPostgresDealRepository(c.DB)
		c.VenueRepo = repository.NewPostgresVenueRepository(c.DB)
		c.CandidateSource = repository.NewPostgresCandidateSource(c.DB)
		c.RuleSource = repository.NewPostgresRuleSource(c.DB)
	}
	if c.Redis != nil {
		c.FeedCache = repository.NewRedisFeedCache(c.Redis)
	}
	c.RuleStore = repository.NewMemoryRuleStore(domain.DefaultRules())

	defaultProvince := domain.Province(disc.DefaultProvince)
	c.ComplianceService = service.NewComplianceService(c.RuleStore, defaultProvince)
	c.RuleService = service.NewRuleService(c.RuleStore, c.RuleSource, c.Clock)

	c.DiscoveryService = service.NewDiscoveryService(
		c.CandidateSource,
		c.ComplianceService,
		c.FeedCache,
		c.Clock,
		service.DiscoveryServiceConfig{
			DefaultRadiusKm:   disc.DefaultRadiusKm,
			MinRadiusKm:       disc.MinRadiusKm,
			MaxRadiusKm:       disc.MaxRadiusKm,
			SoonLookahead:     disc.SoonLookahead,
			DefaultProvince:   defaultProvince,
			Location:          cfg.Location,
			FeedCacheTTL:      disc.FeedCacheTTL,
			ParallelThreshold: disc.ParallelThreshold,
		},
	)
	c.DealService = service.NewDealService(c.DealRepo, c.VenueRepo, c.ComplianceService, c.Clock)
	c.VenueService = service.NewVenueService(c.VenueRepo, c.Clock, disc.DefaultRadiusKm, disc.MaxRadiusKm)

	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis, cfg.Config.App.Version)
	c.FeedHandler = handler.NewFeedHandler(c.DiscoveryService)
	c.DealHandler = handler.NewDealHandler(c.DealService)
	c.VenueHandler = handler.NewVenueHandler(c.VenueService)
	c.RuleHandler = handler.NewRuleHandler(c.RuleService)

	return c
}
