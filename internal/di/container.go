package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/praxiscommerce/catalog-api/internal/platform/cache"
	"github.com/praxiscommerce/catalog-api/internal/platform/config"
	pfirestore "github.com/praxiscommerce/catalog-api/internal/platform/firestore"
	"github.com/praxiscommerce/catalog-api/internal/repositories"
	fsrepo "github.com/praxiscommerce/catalog-api/internal/repositories/firestore"
	"github.com/praxiscommerce/catalog-api/internal/services"
)

// Services bundles the service-layer contracts that handlers rely upon. Concrete implementations
// are assembled via dependency injection in NewContainer.
type Services struct {
	Catalog  services.CatalogResolutionService
	Profiles services.ProfileService
	System   services.SystemService
}

// Container wires the Firestore provider, cache store, repositories, and services for runtime use.
type Container struct {
	Config   config.Config
	Provider *pfirestore.Provider
	Cache    cache.Store
	Services Services
}

// NewContainer constructs the runtime dependencies. The provider connection is verified eagerly
// so startup fails fast when Firestore is unreachable.
func NewContainer(ctx context.Context, cfg config.Config) (*Container, error) {
	provider := pfirestore.NewProvider(cfg.Firestore)
	if _, err := provider.Client(ctx); err != nil {
		return nil, fmt.Errorf("connect firestore: %w", err)
	}

	store := cache.NewMemoryStore()
	if err := store.Connect(ctx); err != nil {
		provider.Close()
		return nil, fmt.Errorf("connect cache: %w", err)
	}

	svc, err := buildServices(cfg, provider, store)
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	return &Container{
		Config:   cfg,
		Provider: provider,
		Cache:    store,
		Services: svc,
	}, nil
}

// Close releases the Firestore client and the cache store.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if c.Provider != nil {
		if err := c.Provider.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close firestore provider: %w", err))
		}
	}
	return errors.Join(errs...)
}

func buildServices(cfg config.Config, provider *pfirestore.Provider, store cache.Store) (Services, error) {
	var svc Services

	products, err := fsrepo.NewProductRepository(provider, cfg.Firestore.Products)
	if err != nil {
		return Services{}, fmt.Errorf("build product repository: %w", err)
	}
	targets, err := fsrepo.NewAudienceTargetRepository(provider, cfg.Firestore.Targets)
	if err != nil {
		return Services{}, fmt.Errorf("build audience target repository: %w", err)
	}
	accounts, err := fsrepo.NewAccountRepository(provider, cfg.Firestore.Accounts)
	if err != nil {
		return Services{}, fmt.Errorf("build account repository: %w", err)
	}
	memberships, err := fsrepo.NewMembershipRepository(provider, cfg.Firestore.Memberships)
	if err != nil {
		return Services{}, fmt.Errorf("build membership repository: %w", err)
	}
	affiliates, err := fsrepo.NewAffiliateRepository(provider, cfg.Firestore.Affiliates)
	if err != nil {
		return Services{}, fmt.Errorf("build affiliate repository: %w", err)
	}

	profiles, err := services.NewProfileService(services.ProfileServiceDeps{
		Accounts:    accounts,
		Memberships: memberships,
		Affiliates:  affiliates,
		Clock:       time.Now,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build profile service: %w", err)
	}
	svc.Profiles = profiles

	audience, err := services.NewAudienceMatcher(services.AudienceMatcherDeps{
		Targets: targets,
		Workers: cfg.Catalog.LookupWorkers,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build audience matcher: %w", err)
	}

	catalog, err := services.NewCatalogResolutionService(services.CatalogResolutionDeps{
		Catalog:         products,
		Cache:           store,
		Profiles:        profiles,
		Audience:        audience,
		Purchase:        services.NewPurchaseEvaluator(),
		ListTTL:         cfg.Cache.ListTTL,
		ItemTTL:         cfg.Cache.ItemTTL,
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
		Clock:           time.Now,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build catalog resolution service: %w", err)
	}
	svc.Catalog = catalog

	healthRepo, err := repositories.NewDependencyHealthRepository([]repositories.DependencyCheck{
		{
			Name: "firestore",
			Check: func(ctx context.Context) error {
				_, err := products.Count(ctx)
				return err
			},
		},
		{
			Name: "cache",
			Check: func(ctx context.Context) error {
				probe := []byte("ok")
				if err := store.Set(ctx, "health:probe", probe, 5*time.Second); err != nil {
					return err
				}
				_, err := store.Get(ctx, "health:probe")
				return err
			},
		},
	})
	if err != nil {
		return Services{}, fmt.Errorf("build health repository: %w", err)
	}

	system, err := services.NewSystemService(services.SystemServiceDeps{
		HealthRepository: healthRepo,
		Clock:            time.Now,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build system service: %w", err)
	}
	svc.System = system

	return svc, nil
}
