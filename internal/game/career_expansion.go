package game

import (
	"context"
	"fmt"
	"math"
	"time"
)

const (
	FashionLineCost = int64(50_000)
	PopupStoreCost  = int64(25_000)
	PopupDays       = 30
)

// Retirement goals. Progress is the fraction of goals met.
const (
	RetirementMoneyGoal    = int64(10_000_000)
	RetirementSongsGoal    = 20
	RetirementAwardsGoal   = 5
	RetirementPrestigeGoal = 500
)

type awardSpec struct {
	Name string
	Year int
	Won  func(*GameState) bool
}

var awardCatalog = []awardSpec{
	{Name: "Best Artist", Year: 2026, Won: func(s *GameState) bool { return s.Artist.Level >= 10 }},
	{Name: "Album of the Year", Year: 2026, Won: func(s *GameState) bool { return len(s.Songs) >= 5 }},
	{Name: "Song of the Year", Year: 2026, Won: func(s *GameState) bool {
		for _, song := range s.Songs {
			if song.Quality > 90 {
				return true
			}
		}
		return false
	}},
	{Name: "Breakthrough Artist", Year: 2025, Won: func(s *GameState) bool { return s.Artist.Level >= 5 }},
}

// LaunchMerch puts a product line on sale from one of the templates.
// Launching is free; money only moves when a drop sells units.
func (s *Service) LaunchMerch(ctx context.Context, templateID, productName string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	spec, ok := s.sheet.MerchByID(templateID)
	if !ok {
		return nil, ErrUnknownItem
	}
	if productName == "" {
		return nil, fmt.Errorf("%w: product name is empty", ErrRequirementsNotMet)
	}

	state.Merchandise = append(state.Merchandise, Merchandise{
		ID:    NewID(),
		Name:  productName,
		Type:  spec.Type,
		Price: spec.BasePrice,
	})
	return s.persist(ctx, state)
}

// RunMerchDrop simulates a sales window across every product line.
// Per item, units sold scale with fan count; all new revenue lands in
// the artist's pocket. Explicit player action, not a background tick.
func (s *Service) RunMerchDrop(ctx context.Context) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if len(state.Merchandise) == 0 {
		return nil, fmt.Errorf("%w: no merchandise launched", ErrRequirementsNotMet)
	}

	var newRevenue int64
	for i := range state.Merchandise {
		sales := int(math.Floor(s.nextFloat() * float64(state.Fanbase.Total) / 100))
		revenue := int64(sales) * state.Merchandise[i].Price
		state.Merchandise[i].UnitsSold += sales
		state.Merchandise[i].Revenue += revenue
		newRevenue += revenue
	}
	state.Artist.Money += newRevenue
	s.log.Info("merch drop", "revenue", newRevenue)
	return s.persist(ctx, state)
}

// LaunchFashionLine starts a branded fashion line.
func (s *Service) LaunchFashionLine(ctx context.Context, name string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if state.Artist.Money < FashionLineCost {
		return nil, fmt.Errorf("%w: costs %d", ErrInsufficientFunds, FashionLineCost)
	}

	state.Artist.Money -= FashionLineCost
	state.Artist.Prestige += 30
	state.FashionLines = append(state.FashionLines, FashionLine{
		ID:         NewID(),
		Name:       name,
		Cost:       FashionLineCost,
		LaunchedAt: time.Now().UnixMilli(),
	})
	return s.persist(ctx, state)
}

// OpenPopupStore opens a 30-day popup in one of the fashion capitals.
// One store per city.
func (s *Service) OpenPopupStore(ctx context.Context, city string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if !s.sheet.PopupCity(city) {
		return nil, ErrUnknownItem
	}
	if state.Artist.Money < PopupStoreCost {
		return nil, fmt.Errorf("%w: costs %d", ErrInsufficientFunds, PopupStoreCost)
	}
	for _, store := range state.PopupStores {
		if store.City == city {
			return nil, fmt.Errorf("%w: popup in %s", ErrAlreadyOwned, city)
		}
	}

	state.Artist.Money -= PopupStoreCost
	state.PopupStores = append(state.PopupStores, PopupStore{
		ID:       NewID(),
		City:     city,
		Cost:     PopupStoreCost,
		Duration: PopupDays,
		OpenedAt: time.Now().UnixMilli(),
	})
	return s.persist(ctx, state)
}

// ClaimAwards appends any newly earned trophies and refreshes the
// retirement progress. Awards already held are skipped and a call
// that changes nothing skips the save, so repeated calls settle.
func (s *Service) ClaimAwards(ctx context.Context) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	held := make(map[string]bool, len(state.Awards))
	for _, a := range state.Awards {
		held[a.Name] = true
	}
	earned := 0
	for _, spec := range awardCatalog {
		if held[spec.Name] || !spec.Won(state) {
			continue
		}
		state.Awards = append(state.Awards, Award{
			ID:       NewID(),
			Name:     spec.Name,
			Year:     spec.Year,
			Won:      true,
			EarnedAt: time.Now().UnixMilli(),
		})
		earned++
	}
	progress := RetirementProgress(state)
	if earned == 0 && progress == state.RetirementProgress {
		return state, nil
	}
	state.RetirementProgress = progress
	if earned > 0 {
		s.log.Info("awards claimed", "count", earned)
	}
	return s.persist(ctx, state)
}

// RetirementProgress is the fraction of career goals met, in [0,1].
func RetirementProgress(state *GameState) float64 {
	met := 0
	if state.Artist.Money >= RetirementMoneyGoal {
		met++
	}
	if len(state.Songs) >= RetirementSongsGoal {
		met++
	}
	if len(state.Awards) >= RetirementAwardsGoal {
		met++
	}
	if state.Artist.Prestige >= RetirementPrestigeGoal {
		met++
	}
	return float64(met) / 4
}
