package game

import (
	"context"
	"fmt"
	"time"
)

// Recording costs per song type. Checked up front, deducted at commit.
var recordingCosts = map[string]struct {
	Money  int64
	Energy int
}{
	SongTypeSingle: {Money: 1_000, Energy: 10},
	SongTypeEP:     {Money: 3_000, Energy: 25},
	SongTypeAlbum:  {Money: 10_000, Energy: 50},
}

// PurchaseEquipment buys a piece of studio gear. Quality tier climbs
// one step per purchase, capped at the max tier; sound fidelity gets a
// flat +10 with no cap on this path.
func (s *Service) PurchaseEquipment(ctx context.Context, equipmentID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	spec, ok := s.sheet.EquipmentByID(equipmentID)
	if !ok {
		return nil, ErrUnknownItem
	}
	if state.Artist.Money < spec.Cost {
		return nil, fmt.Errorf("%w: costs %d", ErrInsufficientFunds, spec.Cost)
	}
	for _, owned := range state.Studio.Equipment {
		if owned.ID == spec.ID {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyOwned, spec.Name)
		}
	}

	state.Artist.Money -= spec.Cost
	state.Studio.Equipment = append(state.Studio.Equipment, Equipment{
		ID:      spec.ID,
		Name:    spec.Name,
		Type:    spec.Type,
		Quality: spec.Quality,
		Cost:    spec.Cost,
	})
	state.Studio.Quality = min(state.Studio.Quality+1, MaxStudioTier)
	state.Studio.SoundFidelity += 10
	return s.persist(ctx, state)
}

// BuildRoom adds a specialized room to the studio.
func (s *Service) BuildRoom(ctx context.Context, roomID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	spec, ok := s.sheet.RoomByID(roomID)
	if !ok {
		return nil, ErrUnknownItem
	}
	if state.Artist.Money < spec.Cost {
		return nil, fmt.Errorf("%w: costs %d", ErrInsufficientFunds, spec.Cost)
	}
	for _, owned := range state.Studio.Rooms {
		if owned.ID == spec.ID {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyOwned, spec.Name)
		}
	}

	state.Artist.Money -= spec.Cost
	state.Studio.Rooms = append(state.Studio.Rooms, StudioRoom{
		ID:    spec.ID,
		Name:  spec.Name,
		Type:  spec.Type,
		Level: 1,
		Boost: spec.Boost,
		Owned: true,
	})
	return s.persist(ctx, state)
}

// PurchaseUpgrade buys soundproofing or a plugin. Unlike the equipment
// path, this one clamps sound fidelity at 100.
func (s *Service) PurchaseUpgrade(ctx context.Context, upgradeID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	spec, ok := s.sheet.UpgradeByID(upgradeID)
	if !ok {
		return nil, ErrUnknownItem
	}
	if state.Artist.Money < spec.Cost {
		return nil, fmt.Errorf("%w: costs %d", ErrInsufficientFunds, spec.Cost)
	}
	for _, owned := range state.Studio.Upgrades {
		if owned.ID == spec.ID {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyOwned, spec.Name)
		}
	}

	state.Artist.Money -= spec.Cost
	state.Studio.Upgrades = append(state.Studio.Upgrades, StudioUpgrade{
		ID:      spec.ID,
		Name:    spec.Name,
		Cost:    spec.Cost,
		Benefit: fmt.Sprintf("+%d%% sound quality", spec.QualityBoost),
	})
	state.Studio.SoundFidelity = min(state.Studio.SoundFidelity+spec.QualityBoost, MaxSoundFidelity)
	return s.persist(ctx, state)
}

// UpgradeStudioTier raises the studio tier by one. The next tier costs
// (tier+1)*5000 and this path applies no cap.
func (s *Service) UpgradeStudioTier(ctx context.Context) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	cost := StudioTierUpgradeCost(state.Studio.Quality)
	if state.Artist.Money < cost {
		return nil, fmt.Errorf("%w: costs %d", ErrInsufficientFunds, cost)
	}
	state.Artist.Money -= cost
	state.Studio.Quality++
	return s.persist(ctx, state)
}

// StudioTierUpgradeCost is the price of moving past the given tier.
func StudioTierUpgradeCost(currentTier int) int64 {
	return int64(currentTier+1) * 5_000
}

// RecordSong releases a track. Cost and energy are validated before
// anything changes; lyrics come from the collaborator with a canned
// fallback; quality is studioTier*10 plus a random spread, capped at
// 100.
func (s *Service) RecordSong(ctx context.Context, title, songType, theme string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	cost, ok := recordingCosts[songType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown song type %q", ErrRequirementsNotMet, songType)
	}
	if state.Artist.Money < cost.Money {
		return nil, fmt.Errorf("%w: recording costs %d", ErrInsufficientFunds, cost.Money)
	}
	if state.Artist.Energy < cost.Energy {
		return nil, fmt.Errorf("%w: recording needs %d energy", ErrInsufficientEnergy, cost.Energy)
	}

	lyrics := s.generateText(ctx,
		"You are a hit songwriter.",
		fmt.Sprintf("Write creative and catchy song lyrics for a %s song titled %q with the theme of %s. Keep it under 200 words.",
			state.Artist.Genre, title, theme),
		400,
		fmt.Sprintf("[%s - a %s anthem about %s]", title, state.Artist.Genre, theme),
	)

	quality := state.Studio.Quality*10 + s.nextIntn(21)
	if quality > 100 {
		quality = 100
	}

	state.Artist.Money -= cost.Money
	state.Artist.Energy -= cost.Energy
	state.Artist.Experience += 100
	state.Artist.Reputation += 5
	state.Songs = append(state.Songs, Song{
		ID:          NewID(),
		Title:       title,
		Type:        songType,
		Genre:       state.Artist.Genre,
		Quality:     quality,
		ReleaseDate: time.Now().UnixMilli(),
		Lyrics:      lyrics,
	})
	s.log.Info("song recorded", "title", title, "type", songType, "quality", quality)
	return s.persist(ctx, state)
}

// ShootMusicVideo attaches a video to a released song. Prestige scales
// with the director's reputation.
func (s *Service) ShootMusicVideo(ctx context.Context, songID, directorID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	director, ok := s.sheet.DirectorByID(directorID)
	if !ok {
		return nil, ErrUnknownItem
	}
	idx := -1
	for i := range state.Songs {
		if state.Songs[i].ID == songID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrSongNotFound
	}
	if state.Songs[idx].MusicVideo != nil {
		return nil, fmt.Errorf("%w: song already has a video", ErrAlreadyOwned)
	}
	if state.Artist.Money < director.Cost {
		return nil, fmt.Errorf("%w: costs %d", ErrInsufficientFunds, director.Cost)
	}

	state.Artist.Money -= director.Cost
	state.Artist.Prestige += director.Quality * 5
	state.Songs[idx].MusicVideo = &MusicVideo{
		ID:         NewID(),
		Director:   director.Name,
		Quality:    director.Quality * 10,
		Cost:       director.Cost,
		ReleasedAt: time.Now().UnixMilli(),
	}
	return s.persist(ctx, state)
}
