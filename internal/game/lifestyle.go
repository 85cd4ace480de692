package game

import (
	"context"
	"fmt"
	"time"
)

// BuyLuxuryItem purchases a car, jet, villa, or penthouse. Pure
// prestige play: money out, prestige in, item appended once.
func (s *Service) BuyLuxuryItem(ctx context.Context, itemID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	spec, ok := s.sheet.LuxuryByID(itemID)
	if !ok {
		return nil, ErrUnknownItem
	}
	if state.Artist.Money < spec.Cost {
		return nil, fmt.Errorf("%w: costs %d", ErrInsufficientFunds, spec.Cost)
	}
	for _, owned := range state.LuxuryItems {
		if owned.ID == spec.ID {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyOwned, spec.Name)
		}
	}

	state.Artist.Money -= spec.Cost
	state.Artist.Prestige += spec.Prestige
	state.LuxuryItems = append(state.LuxuryItems, LuxuryItem{
		ID:          spec.ID,
		Name:        spec.Name,
		Category:    spec.Category,
		Cost:        spec.Cost,
		Prestige:    spec.Prestige,
		Owned:       true,
		PurchasedAt: time.Now().UnixMilli(),
	})
	return s.persist(ctx, state)
}

// Invest puts the minimum stake into a business investment. The
// position starts flat: current value equals the stake, returns zero.
func (s *Service) Invest(ctx context.Context, optionID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	spec, ok := s.sheet.InvestmentByID(optionID)
	if !ok {
		return nil, ErrUnknownItem
	}
	if state.Artist.Money < spec.MinInvestment {
		return nil, fmt.Errorf("%w: minimum investment is %d", ErrInsufficientFunds, spec.MinInvestment)
	}

	state.Artist.Money -= spec.MinInvestment
	state.BusinessInvestments = append(state.BusinessInvestments, BusinessInvestment{
		ID:           NewID(),
		Name:         spec.Name,
		Type:         spec.Type,
		Invested:     spec.MinInvestment,
		CurrentValue: spec.MinInvestment,
	})
	return s.persist(ctx, state)
}

// SignBrandDeal takes an endorsement. Gated on prestige; one active
// deal per brand. The deal pays out its full value up front.
func (s *Service) SignBrandDeal(ctx context.Context, dealID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	spec, ok := s.sheet.BrandDealByID(dealID)
	if !ok {
		return nil, ErrUnknownItem
	}
	if state.Artist.Prestige < BrandDealMinPrestige {
		return nil, fmt.Errorf("%w: brand deals need %d prestige", ErrRequirementsNotMet, BrandDealMinPrestige)
	}
	for _, deal := range state.BrandDeals {
		if deal.Brand == spec.Brand && deal.Active {
			return nil, fmt.Errorf("%w: active deal with %s", ErrAlreadyOwned, spec.Brand)
		}
	}

	state.Artist.Money += spec.Value
	state.Artist.Prestige += spec.Prestige
	state.BrandDeals = append(state.BrandDeals, BrandDeal{
		ID:       NewID(),
		Brand:    spec.Brand,
		Type:     spec.Type,
		Value:    spec.Value,
		Duration: spec.Duration,
		Prestige: spec.Prestige,
		Active:   true,
	})
	return s.persist(ctx, state)
}

// SignContract signs a label deal. At most one signed contract per
// contract type; the advance is credited immediately.
func (s *Service) SignContract(ctx context.Context, contractID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	spec, ok := s.sheet.ContractByID(contractID)
	if !ok {
		return nil, ErrUnknownItem
	}
	for _, c := range state.Contracts {
		if c.Type == spec.Type && c.Signed {
			return nil, fmt.Errorf("%w: signed %s contract exists", ErrAlreadyOwned, spec.Type)
		}
	}

	state.Artist.Money += spec.Value
	state.Artist.Prestige += 10
	state.Contracts = append(state.Contracts, Contract{
		ID:          NewID(),
		Type:        spec.Type,
		Partner:     spec.Partner,
		RoyaltyRate: spec.RoyaltyRate,
		Value:       spec.Value,
		Duration:    spec.Duration,
		Signed:      true,
		SignedAt:    time.Now().UnixMilli(),
	})
	s.log.Info("contract signed", "type", spec.Type, "partner", spec.Partner)
	return s.persist(ctx, state)
}

// UpgradeFanClub buys the next fan club tier. Prestige scales with the
// tier number.
func (s *Service) UpgradeFanClub(ctx context.Context, tier int) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	spec, ok := s.sheet.FanClubTier(tier)
	if !ok {
		return nil, ErrUnknownItem
	}
	if state.Artist.Money < spec.Cost {
		return nil, fmt.Errorf("%w: costs %d", ErrInsufficientFunds, spec.Cost)
	}

	state.Artist.Money -= spec.Cost
	state.Artist.Prestige += tier * 5
	return s.persist(ctx, state)
}
