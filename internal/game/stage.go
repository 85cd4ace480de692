package game

import (
	"context"
	"fmt"
	"math"
	"time"
)

// PerformAtVenue plays a show. Bigger venue types are gated on fan
// count; every show burns 20 energy. Revenue swings between 80% and
// 120% of the venue's base take. New fans land in total and casual.
func (s *Service) PerformAtVenue(ctx context.Context, venueID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	venue, ok := s.sheet.VenueByID(venueID)
	if !ok {
		return nil, ErrUnknownItem
	}
	if threshold := FanThreshold(venue.Type); state.Fanbase.Total < threshold {
		return nil, fmt.Errorf("%w: %s shows need %d fans", ErrRequirementsNotMet, venue.Type, threshold)
	}
	if state.Artist.Energy < PerformEnergyCost {
		return nil, fmt.Errorf("%w: performing needs %d energy", ErrInsufficientEnergy, PerformEnergyCost)
	}

	revenue := int64(math.Floor(float64(venue.BaseRevenue) * (0.8 + s.nextFloat()*0.4)))
	newFans := int(math.Floor(float64(venue.Capacity) * 0.1 * s.nextFloat()))
	prestige := 5
	if venue.Type == VenueTypeStadium {
		prestige = 10
	}

	state.Artist.Energy -= PerformEnergyCost
	state.Artist.Money += revenue
	state.Artist.Experience += 50
	state.Artist.Prestige += prestige
	state.Fanbase.Total += newFans
	state.Fanbase.Casual += newFans
	state.Tours = append(state.Tours, Tour{
		ID:          NewID(),
		VenueID:     venue.ID,
		VenueName:   venue.Name,
		City:        venue.City,
		Revenue:     revenue,
		NewFans:     newFans,
		PerformedAt: time.Now().UnixMilli(),
	})
	s.log.Info("performed", "venue", venue.Name, "revenue", revenue, "new_fans", newFans)
	return s.persist(ctx, state)
}

// BookMediaEvent buys a radio, TV, or press appearance. Fan growth
// scales with the event's impact; the stored event list keeps only the
// 50 most recent.
func (s *Service) BookMediaEvent(ctx context.Context, eventID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	spec, ok := s.sheet.MediaByID(eventID)
	if !ok {
		return nil, ErrUnknownItem
	}
	if state.Artist.Money < spec.Cost {
		return nil, fmt.Errorf("%w: costs %d", ErrInsufficientFunds, spec.Cost)
	}
	if state.Artist.Energy < MediaEnergyCost {
		return nil, fmt.Errorf("%w: media events need %d energy", ErrInsufficientEnergy, MediaEnergyCost)
	}

	newFans := int(math.Floor(float64(spec.Impact) * 100 * (0.8 + s.nextFloat()*0.4)))

	state.Artist.Money -= spec.Cost
	state.Artist.Energy -= MediaEnergyCost
	state.Artist.Reputation += spec.Impact
	state.Artist.Experience += 50
	state.Fanbase.Total += newFans
	state.MediaEvents = append([]MediaEvent{{
		ID:         NewID(),
		Name:       spec.Name,
		Type:       spec.Type,
		Impact:     spec.Impact,
		Cost:       spec.Cost,
		NewFans:    newFans,
		OccurredAt: time.Now().UnixMilli(),
	}}, state.MediaEvents...)
	if len(state.MediaEvents) > MaxStoredMediaEvents {
		state.MediaEvents = state.MediaEvents[:MaxStoredMediaEvents]
	}
	return s.persist(ctx, state)
}

// HoldPressConference publishes a statement on a topic. The statement
// body comes from the collaborator with a stock fallback.
func (s *Service) HoldPressConference(ctx context.Context, topic string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if state.Artist.Energy < PressEnergyCost {
		return nil, fmt.Errorf("%w: press conferences need %d energy", ErrInsufficientEnergy, PressEnergyCost)
	}

	statement := s.generateText(ctx,
		"You are a music industry publicist.",
		fmt.Sprintf("Write a short press statement (2-3 sentences) from artist %s about: %s",
			state.Artist.StageName, topic),
		200,
		fmt.Sprintf("%s thanks the fans for their support and promises more news about %s soon.",
			state.Artist.StageName, topic),
	)

	state.Artist.Energy -= PressEnergyCost
	state.Artist.Reputation += 10
	state.PressConferences = append(state.PressConferences, PressConference{
		ID:        NewID(),
		Topic:     topic,
		Statement: statement,
		HeldAt:    time.Now().UnixMilli(),
	})
	return s.persist(ctx, state)
}
