package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
	"github.com/praxiscommerce/catalog-api/internal/repositories"
)

// ProfileServiceDeps bundles constructor inputs for the profile service.
type ProfileServiceDeps struct {
	Accounts    repositories.AccountRepository
	Memberships repositories.MembershipRepository
	Affiliates  repositories.AffiliateRepository
	Clock       func() time.Time
}

type profileService struct {
	accounts    repositories.AccountRepository
	memberships repositories.MembershipRepository
	affiliates  repositories.AffiliateRepository
	clock       func() time.Time
}

var _ ProfileService = (*profileService)(nil)

// NewProfileService constructs the profile provider backing the filter layers.
func NewProfileService(deps ProfileServiceDeps) (ProfileService, error) {
	if deps.Accounts == nil {
		return nil, errors.New("profile service: account repository is required")
	}
	if deps.Memberships == nil {
		return nil, errors.New("profile service: membership repository is required")
	}
	if deps.Affiliates == nil {
		return nil, errors.New("profile service: affiliate repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &profileService{
		accounts:    deps.Accounts,
		memberships: deps.Memberships,
		affiliates:  deps.Affiliates,
		clock:       clock,
	}, nil
}

// BuildProfile assembles the caller's profile snapshot. The underlying record
// fetches are independent and run concurrently; any failure fails the whole
// build so the caller can apply its own fail-open policy.
func (s *profileService) BuildProfile(ctx context.Context, caller domain.Caller) (domain.CallerProfile, error) {
	if caller.Anonymous() {
		return domain.CallerProfile{}, ErrAnonymousCaller
	}

	var (
		account      domain.Account
		memberships  []domain.Membership
		affiliate    domain.AffiliateProfile
		hasAffiliate bool
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		found, err := s.accounts.FindByID(groupCtx, caller.ID)
		if err != nil {
			return fmt.Errorf("profile: load account: %w", err)
		}
		account = found
		return nil
	})
	group.Go(func() error {
		found, err := s.memberships.FindByAccountID(groupCtx, caller.ID)
		if err != nil && !repositories.IsNotFound(err) {
			return fmt.Errorf("profile: load memberships: %w", err)
		}
		memberships = found
		return nil
	})
	if caller.Kind == domain.KindAffiliate {
		group.Go(func() error {
			found, err := s.affiliates.FindByAccountID(groupCtx, caller.ID)
			if err != nil {
				if repositories.IsNotFound(err) {
					return nil
				}
				return fmt.Errorf("profile: load affiliate attributes: %w", err)
			}
			affiliate = found
			hasAffiliate = true
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return domain.CallerProfile{}, err
	}

	now := s.clock()
	profile := domain.CallerProfile{
		UserID:          caller.ID,
		Kind:            caller.Kind,
		Tier:            caller.Tier,
		Province:        account.Province,
		Region:          account.Region,
		PracticeSetting: account.PracticeSetting,
		PracticeAreas:   account.PracticeAreas,
		Languages:       account.Languages,
		Interests:       account.Interests,
		YearsOfPractice: account.YearsOfPractice,
	}

	for _, membership := range memberships {
		if !membership.ActiveAt(now) {
			continue
		}
		profile.ActiveMembership = true
		if profile.MembershipCategory == nil {
			category := membership.Category
			profile.MembershipCategory = &category
		}
	}

	if hasAffiliate {
		if profile.Province == "" {
			profile.Province = affiliate.Province
		}
		if profile.Region == "" {
			profile.Region = affiliate.Region
		}
		if len(profile.Languages) == 0 {
			profile.Languages = affiliate.Languages
		}
		if len(profile.Interests) == 0 {
			profile.Interests = affiliate.Interests
		}
	}

	return profile, nil
}
