package game

import (
	"context"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"starmaker/internal/balance"
)

// Store is the snapshot persistence contract. Load returns (nil, nil)
// when no usable save exists.
type Store interface {
	Load(ctx context.Context) (*GameState, error)
	Save(ctx context.Context, state *GameState) error
	Clear(ctx context.Context) error
}

// TextGenerator produces flavor text. Implementations are unreliable
// by contract; every caller keeps a deterministic fallback.
type TextGenerator interface {
	Enabled() bool
	Complete(ctx context.Context, system, userPrompt string, maxTokens int) (string, error)
}

// Service owns the session cache of the snapshot and the full rule
// catalog. Rules run one at a time: validate, mutate, one store write.
type Service struct {
	store Store
	gen   TextGenerator
	sheet *balance.Sheet
	log   *slog.Logger
	mu    sync.Mutex
	rand  *mathrand.Rand
	state *GameState
}

func NewService(store Store, gen TextGenerator, sheet *balance.Sheet, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store: store,
		gen:   gen,
		sheet: sheet,
		log:   logger,
		rand:  mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) nextFloat() float64 {
	return s.rand.Float64()
}

func (s *Service) nextIntn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rand.Intn(n)
}

// Balance exposes the catalogs for display surfaces.
func (s *Service) Balance() *balance.Sheet {
	return s.sheet
}

// current returns a working copy of the session snapshot, loading it
// on first use. Rules mutate the copy; the cached snapshot and the
// store never see a mutation that did not survive persist.
func (s *Service) current(ctx context.Context) (*GameState, error) {
	if s.state != nil {
		return s.state.Clone(), nil
	}
	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if state == nil {
		return nil, ErrNoGame
	}
	s.state = state
	return state.Clone(), nil
}

// persist performs the rule's single store write and promotes the
// mutated copy to the session cache. A failed save drops the cache so
// the next action re-reads the last good save instead of compounding
// on an unsaved mutation.
func (s *Service) persist(ctx context.Context, state *GameState) (*GameState, error) {
	if err := s.store.Save(ctx, state); err != nil {
		s.state = nil
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	s.state = state
	return state, nil
}

// generateText asks the collaborator for text and falls back when it
// is disabled, fails, or returns nothing. Never returns an error: AI
// failure must not abort the surrounding mutation.
func (s *Service) generateText(ctx context.Context, system, prompt string, maxTokens int, fallback string) string {
	if s.gen == nil || !s.gen.Enabled() {
		return fallback
	}
	out, err := s.gen.Complete(ctx, system, prompt, maxTokens)
	if err != nil {
		s.log.Warn("text generation failed, using fallback", "err", err)
		return fallback
	}
	if strings.TrimSpace(out) == "" {
		return fallback
	}
	return strings.TrimSpace(out)
}

// NewGame starts over: builds the default snapshot and overwrites any
// existing save.
func (s *Service) NewGame(ctx context.Context, name, stageName, genre string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := NewGameState(name, stageName, genre)
	s.log.Info("new game", "stage_name", stageName, "genre", genre)
	return s.persist(ctx, state)
}

// ResetGame deletes the save and the session cache.
func (s *Service) ResetGame(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear save: %w", err)
	}
	s.state = nil
	s.log.Info("game reset")
	return nil
}

// Current returns a copy of the live snapshot for display.
func (s *Service) Current(ctx context.Context) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx)
}

// Hire fills a team slot. The upfront cost is three months of salary;
// skill lands in [70,100).
func (s *Service) Hire(ctx context.Context, role, candidateID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	candidate, ok := s.sheet.Candidate(candidateID)
	if !ok {
		return nil, ErrUnknownItem
	}
	if role == "" {
		role = candidate.Role
	}
	slot, ok := state.Team.slot(role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrRequirementsNotMet, role)
	}
	upfront := candidate.Salary * HireSalaryMultiplier
	if state.Artist.Money < upfront {
		return nil, fmt.Errorf("%w: need %d upfront", ErrInsufficientFunds, upfront)
	}
	if *slot != nil {
		return nil, fmt.Errorf("%w: %s", ErrRoleOccupied, role)
	}

	state.Artist.Money -= upfront
	*slot = &TeamMember{
		ID:        NewID(),
		Name:      candidate.Name,
		Role:      role,
		Skill:     70 + s.nextIntn(30),
		Salary:    candidate.Salary,
		HiredDate: time.Now().UnixMilli(),
	}
	s.log.Info("hired", "role", role, "name", candidate.Name)
	return s.persist(ctx, state)
}

// Fire empties a team slot. No refund; firing an empty slot is a
// no-op.
func (s *Service) Fire(ctx context.Context, role string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	slot, ok := state.Team.slot(role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrRequirementsNotMet, role)
	}
	if *slot == nil {
		return state, nil
	}
	s.log.Info("fired", "role", role, "name", (*slot).Name)
	*slot = nil
	return s.persist(ctx, state)
}

// Rest trades money for a full energy bar.
func (s *Service) Rest(ctx context.Context) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if state.Artist.Money < RestCost {
		return nil, fmt.Errorf("%w: rest costs %d", ErrInsufficientFunds, RestCost)
	}
	state.Artist.Money -= RestCost
	state.Artist.Energy = state.Artist.MaxEnergy
	return s.persist(ctx, state)
}
