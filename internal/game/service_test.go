package game

import (
	"context"
	"errors"
	"log/slog"
	mathrand "math/rand"
	"testing"

	"starmaker/internal/balance"
)

type memStore struct {
	state   *GameState
	saves   int
	saveErr error
}

func (m *memStore) Load(ctx context.Context) (*GameState, error) {
	return m.state, nil
}

func (m *memStore) Save(ctx context.Context, state *GameState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.state = state
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.state = nil
	return nil
}

// downGenerator is enabled but always fails, the worst case for the
// collaborator contract.
type downGenerator struct{}

func (downGenerator) Enabled() bool { return true }

func (downGenerator) Complete(ctx context.Context, system, userPrompt string, maxTokens int) (string, error) {
	return "", errors.New("upstream unavailable")
}

type cannedGenerator struct {
	text string
}

func (cannedGenerator) Enabled() bool { return true }

func (g cannedGenerator) Complete(ctx context.Context, system, userPrompt string, maxTokens int) (string, error) {
	return g.text, nil
}

func testSheet(t *testing.T) *balance.Sheet {
	t.Helper()
	sheet, err := balance.Load("")
	if err != nil {
		t.Fatalf("load balance sheet: %v", err)
	}
	return sheet
}

func newTestService(t *testing.T, gen TextGenerator) (*Service, *memStore) {
	t.Helper()
	store := &memStore{}
	svc := NewService(store, gen, testSheet(t), slog.New(slog.DiscardHandler))
	svc.rand = mathrand.New(mathrand.NewSource(1))
	return svc, store
}

func startGame(t *testing.T, svc *Service) *GameState {
	t.Helper()
	state, err := svc.NewGame(context.Background(), "Ada Vale", "Nova", "pop")
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return state
}

func TestNewGameStartingSnapshot(t *testing.T) {
	svc, store := newTestService(t, nil)
	state := startGame(t, svc)

	if state.Artist.StageName != "Nova" || state.Artist.Genre != "pop" {
		t.Fatalf("identity = %s/%s", state.Artist.StageName, state.Artist.Genre)
	}
	if state.Artist.Money != 10_000 {
		t.Fatalf("money = %d, want 10000", state.Artist.Money)
	}
	if state.Artist.Energy != 100 {
		t.Fatalf("energy = %d, want 100", state.Artist.Energy)
	}
	if state.Artist.Prestige != 0 {
		t.Fatalf("prestige = %d, want 0", state.Artist.Prestige)
	}
	if state.Team.TourManager != nil {
		t.Fatalf("fresh save has a tour manager")
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}
}

func TestActionsWithoutSaveReturnErrNoGame(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.Current(ctx); !errors.Is(err, ErrNoGame) {
		t.Fatalf("Current = %v, want ErrNoGame", err)
	}
	if _, err := svc.Hire(ctx, "", "ty-marsh"); !errors.Is(err, ErrNoGame) {
		t.Fatalf("Hire = %v, want ErrNoGame", err)
	}
	if _, err := svc.RecordSong(ctx, "Echoes", SongTypeSingle, "love"); !errors.Is(err, ErrNoGame) {
		t.Fatalf("RecordSong = %v, want ErrNoGame", err)
	}
}

func TestHireRejectsInsufficientFunds(t *testing.T) {
	svc, store := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()

	// Ty Marsh costs 15000 upfront; the fresh save holds 10000.
	_, err := svc.Hire(ctx, "", "ty-marsh")
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Hire = %v, want ErrInsufficientFunds", err)
	}
	if store.state.Artist.Money != 10_000 {
		t.Fatalf("rejected hire changed money: %d", store.state.Artist.Money)
	}
	if store.state.Team.TourManager != nil {
		t.Fatalf("rejected hire filled the slot")
	}
	if store.saves != 1 {
		t.Fatalf("rejected hire wrote a save")
	}
}

func TestHireFillsSlotAndCharges(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Artist.Money = 20_000

	state, err := svc.Hire(ctx, "", "ty-marsh")
	if err != nil {
		t.Fatalf("hire: %v", err)
	}
	if state.Artist.Money != 5_000 {
		t.Fatalf("money = %d, want 5000", state.Artist.Money)
	}
	m := state.Team.TourManager
	if m == nil {
		t.Fatalf("tour manager slot empty after hire")
	}
	if m.Salary != 5_000 {
		t.Fatalf("salary = %d, want 5000", m.Salary)
	}
	if m.Skill < 70 || m.Skill > 99 {
		t.Fatalf("skill = %d, want [70,99]", m.Skill)
	}

	// Second hire into the same role is rejected.
	svc.state.Artist.Money = 100_000
	if _, err := svc.Hire(ctx, "", "ty-marsh"); !errors.Is(err, ErrRoleOccupied) {
		t.Fatalf("second hire = %v, want ErrRoleOccupied", err)
	}
}

func TestHireUnknownCandidate(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)

	if _, err := svc.Hire(context.Background(), "", "nobody"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("Hire = %v, want ErrUnknownItem", err)
	}
}

func TestFireEmptiesSlotAndEmptyFireIsNoop(t *testing.T) {
	svc, store := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Artist.Money = 20_000

	if _, err := svc.Hire(ctx, "", "ty-marsh"); err != nil {
		t.Fatalf("hire: %v", err)
	}
	savesBefore := store.saves

	state, err := svc.Fire(ctx, RoleTourManager)
	if err != nil {
		t.Fatalf("fire: %v", err)
	}
	if state.Team.TourManager != nil {
		t.Fatalf("slot still occupied after fire")
	}
	if store.saves != savesBefore+1 {
		t.Fatalf("fire did not save")
	}

	// Firing the already empty slot changes nothing and skips the save.
	if _, err := svc.Fire(ctx, RoleTourManager); err != nil {
		t.Fatalf("second fire: %v", err)
	}
	if store.saves != savesBefore+1 {
		t.Fatalf("no-op fire wrote a save")
	}

	if _, err := svc.Fire(ctx, "roadie"); !errors.Is(err, ErrRequirementsNotMet) {
		t.Fatalf("fire unknown role = %v, want ErrRequirementsNotMet", err)
	}
}

func TestRecordSingleDeductsAndAppends(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Artist.Money = 5_000
	svc.state.Artist.Energy = 50

	state, err := svc.RecordSong(ctx, "Echoes", SongTypeSingle, "distance")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if state.Artist.Money != 4_000 {
		t.Fatalf("money = %d, want 4000", state.Artist.Money)
	}
	if state.Artist.Energy != 40 {
		t.Fatalf("energy = %d, want 40", state.Artist.Energy)
	}
	if state.Artist.Experience != 100 || state.Artist.Reputation != 5 {
		t.Fatalf("exp/rep = %d/%d, want 100/5", state.Artist.Experience, state.Artist.Reputation)
	}
	if len(state.Songs) != 1 {
		t.Fatalf("songs = %d, want 1", len(state.Songs))
	}
	song := state.Songs[0]
	if song.Title != "Echoes" || song.Type != SongTypeSingle || song.Genre != "pop" {
		t.Fatalf("song = %+v", song)
	}
	if song.Quality < 0 || song.Quality > 100 {
		t.Fatalf("quality = %d, want [0,100]", song.Quality)
	}
	if song.Lyrics == "" {
		t.Fatalf("no lyrics on recorded song")
	}
}

func TestRecordSongValidatesBeforeMutating(t *testing.T) {
	svc, store := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()

	svc.state.Artist.Money = 500
	if _, err := svc.RecordSong(ctx, "Echoes", SongTypeSingle, "x"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("record = %v, want ErrInsufficientFunds", err)
	}

	svc.state.Artist.Money = 5_000
	svc.state.Artist.Energy = 5
	if _, err := svc.RecordSong(ctx, "Echoes", SongTypeSingle, "x"); !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("record = %v, want ErrInsufficientEnergy", err)
	}
	if len(store.state.Songs) != 0 {
		t.Fatalf("rejected recording appended a song")
	}

	if _, err := svc.RecordSong(ctx, "Echoes", "mixtape", "x"); !errors.Is(err, ErrRequirementsNotMet) {
		t.Fatalf("record = %v, want ErrRequirementsNotMet", err)
	}
}

func TestRecordSongCommitsOnGeneratorFailure(t *testing.T) {
	svc, _ := newTestService(t, downGenerator{})
	startGame(t, svc)

	state, err := svc.RecordSong(context.Background(), "Echoes", SongTypeSingle, "distance")
	if err != nil {
		t.Fatalf("record with dead collaborator: %v", err)
	}
	if len(state.Songs) != 1 {
		t.Fatalf("songs = %d, want 1", len(state.Songs))
	}
	want := "[Echoes - a pop anthem about distance]"
	if state.Songs[0].Lyrics != want {
		t.Fatalf("lyrics = %q, want fallback %q", state.Songs[0].Lyrics, want)
	}
}

func TestPerformGatesOnFanThreshold(t *testing.T) {
	svc, store := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Fanbase.Total = 50_000

	// Wembley is a stadium: 100k fans required.
	_, err := svc.PerformAtVenue(ctx, "wembley")
	if !errors.Is(err, ErrRequirementsNotMet) {
		t.Fatalf("perform = %v, want ErrRequirementsNotMet", err)
	}
	if store.state.Artist.Energy != 100 || len(store.state.Tours) != 0 {
		t.Fatalf("rejected show mutated state")
	}
}

func TestPerformGatesOnEnergy(t *testing.T) {
	svc, store := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Fanbase.Total = 6_000
	svc.state.Artist.Energy = PerformEnergyCost - 1

	_, err := svc.PerformAtVenue(ctx, "the-roxy")
	if !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("perform = %v, want ErrInsufficientEnergy", err)
	}
	if store.state.Artist.Money != StarterMoney || len(store.state.Tours) != 0 {
		t.Fatalf("rejected show mutated state")
	}
}

func TestPerformPaysOutWithinBand(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Fanbase.Total = 6_000

	// The Roxy: theater, base 8000, capacity 600.
	state, err := svc.PerformAtVenue(ctx, "the-roxy")
	if err != nil {
		t.Fatalf("perform: %v", err)
	}
	if state.Artist.Energy != 80 {
		t.Fatalf("energy = %d, want 80", state.Artist.Energy)
	}
	revenue := state.Artist.Money - 10_000
	if revenue < 6_400 || revenue > 9_600 {
		t.Fatalf("revenue = %d, want [6400,9600]", revenue)
	}
	if state.Artist.Prestige != 5 {
		t.Fatalf("prestige = %d, want 5 for a theater", state.Artist.Prestige)
	}
	if len(state.Tours) != 1 {
		t.Fatalf("tours = %d, want 1", len(state.Tours))
	}
	newFans := state.Tours[0].NewFans
	if newFans < 0 || newFans > 60 {
		t.Fatalf("new fans = %d, want [0,60]", newFans)
	}
	if state.Fanbase.Total != 6_000+newFans {
		t.Fatalf("total = %d, want %d", state.Fanbase.Total, 6_000+newFans)
	}
	if state.Fanbase.Casual != newFans {
		t.Fatalf("casual = %d, want %d", state.Fanbase.Casual, newFans)
	}
}

func TestEquipmentAndUpgradeClampDifferently(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Artist.Money = 1_000_000
	svc.state.Studio.Quality = 10
	svc.state.Studio.SoundFidelity = 95

	// Equipment: quality stays clamped at 10, fidelity passes 100.
	state, err := svc.PurchaseEquipment(ctx, "u87")
	if err != nil {
		t.Fatalf("buy equipment: %v", err)
	}
	if state.Studio.Quality != 10 {
		t.Fatalf("quality = %d, want clamp at 10", state.Studio.Quality)
	}
	if state.Studio.SoundFidelity != 105 {
		t.Fatalf("fidelity = %d, want 105 (no clamp on this path)", state.Studio.SoundFidelity)
	}

	// Upgrade path clamps fidelity at 100.
	state.Studio.SoundFidelity = 95
	state, err = svc.PurchaseUpgrade(ctx, "plugin-eq")
	if err != nil {
		t.Fatalf("buy upgrade: %v", err)
	}
	if state.Studio.SoundFidelity != 100 {
		t.Fatalf("fidelity = %d, want clamp at 100", state.Studio.SoundFidelity)
	}

	// Tier upgrades have no cap at all.
	state, err = svc.UpgradeStudioTier(ctx)
	if err != nil {
		t.Fatalf("tier upgrade: %v", err)
	}
	if state.Studio.Quality != 11 {
		t.Fatalf("quality = %d, want 11", state.Studio.Quality)
	}
}

func TestDuplicatePurchasesRejected(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Artist.Money = 10_000_000

	if _, err := svc.PurchaseEquipment(ctx, "u87"); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	if _, err := svc.PurchaseEquipment(ctx, "u87"); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("duplicate equipment = %v, want ErrAlreadyOwned", err)
	}

	if _, err := svc.BuyLuxuryItem(ctx, "lamborghini"); err != nil {
		t.Fatalf("luxury purchase: %v", err)
	}
	if _, err := svc.BuyLuxuryItem(ctx, "lamborghini"); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("duplicate luxury = %v, want ErrAlreadyOwned", err)
	}
}

func TestPublishPostBumpsTotalOnly(t *testing.T) {
	svc, _ := newTestService(t, downGenerator{})
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Fanbase.Total = 1_000
	svc.state.Fanbase.Hardcore = 100
	svc.state.Fanbase.Casual = 300

	state, err := svc.PublishPost(ctx, "New single drops friday")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	post := state.SocialMedia.StarGram.Posts[0]
	if post.Content != "New single drops friday" {
		t.Fatalf("content = %q", post.Content)
	}
	if len(post.Comments) != 3 {
		t.Fatalf("comments = %d, want 3 fallback comments", len(post.Comments))
	}
	for i, want := range fallbackComments {
		if post.Comments[i].Content != want {
			t.Fatalf("comment %d = %q, want %q", i, post.Comments[i].Content, want)
		}
	}
	grown := state.Fanbase.Total - 1_000
	if grown != state.SocialMedia.StarGram.Followers {
		t.Fatalf("followers %d and total growth %d diverged", state.SocialMedia.StarGram.Followers, grown)
	}
	// Buckets are untouched: the total deliberately drifts from their sum.
	if state.Fanbase.Hardcore != 100 || state.Fanbase.Casual != 300 {
		t.Fatalf("post touched fan buckets")
	}
}

func TestPublishPostRejectsEmptyContent(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	if _, err := svc.PublishPost(context.Background(), "   "); !errors.Is(err, ErrRequirementsNotMet) {
		t.Fatalf("publish = %v, want ErrRequirementsNotMet", err)
	}
}

func TestPostFeedKeepsTwentyNewest(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()

	for i := 0; i < MaxStoredPosts+5; i++ {
		if _, err := svc.PublishPost(ctx, "post"); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}
	if got := len(svc.state.SocialMedia.StarGram.Posts); got != MaxStoredPosts {
		t.Fatalf("feed = %d posts, want %d", got, MaxStoredPosts)
	}
}

func TestRelationshipUniquePerNameAndType(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()

	if _, err := svc.Collaborate(ctx, "Luna Star"); err != nil {
		t.Fatalf("collab: %v", err)
	}
	if _, err := svc.Collaborate(ctx, "Luna Star"); !errors.Is(err, ErrDuplicateRelationship) {
		t.Fatalf("duplicate collab = %v, want ErrDuplicateRelationship", err)
	}
	// Same name, different type is fine.
	state, err := svc.StartRivalry(ctx, "Luna Star")
	if err != nil {
		t.Fatalf("rivalry with existing collaborator: %v", err)
	}
	if len(state.Relationships) != 2 {
		t.Fatalf("relationships = %d, want 2", len(state.Relationships))
	}
}

func TestBrandDealGatedOnPrestige(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()

	if _, err := svc.SignBrandDeal(ctx, "rolex"); !errors.Is(err, ErrRequirementsNotMet) {
		t.Fatalf("deal at prestige 0 = %v, want ErrRequirementsNotMet", err)
	}

	svc.state.Artist.Prestige = BrandDealMinPrestige
	state, err := svc.SignBrandDeal(ctx, "rolex")
	if err != nil {
		t.Fatalf("deal: %v", err)
	}
	if state.Artist.Money != 10_000+2_000_000 {
		t.Fatalf("money = %d, want payout credited", state.Artist.Money)
	}
	if _, err := svc.SignBrandDeal(ctx, "rolex"); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("second rolex deal = %v, want ErrAlreadyOwned", err)
	}
}

func TestContractUniquePerType(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()

	state, err := svc.SignContract(ctx, "distribution-universal")
	if err != nil {
		t.Fatalf("contract: %v", err)
	}
	if state.Artist.Money != 110_000 {
		t.Fatalf("money = %d, want 110000", state.Artist.Money)
	}
	if state.Artist.Prestige != 10 {
		t.Fatalf("prestige = %d, want 10", state.Artist.Prestige)
	}
	if _, err := svc.SignContract(ctx, "distribution-universal"); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("second distribution deal = %v, want ErrAlreadyOwned", err)
	}
	// A different contract type is still open.
	if _, err := svc.SignContract(ctx, "licensing-sony"); err != nil {
		t.Fatalf("licensing contract: %v", err)
	}
}

func TestRestRefillsEnergy(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Artist.Energy = 10

	state, err := svc.Rest(ctx)
	if err != nil {
		t.Fatalf("rest: %v", err)
	}
	if state.Artist.Energy != state.Artist.MaxEnergy {
		t.Fatalf("energy = %d, want %d", state.Artist.Energy, state.Artist.MaxEnergy)
	}
	if state.Artist.Money != 5_000 {
		t.Fatalf("money = %d, want 5000", state.Artist.Money)
	}

	state.Artist.Money = 100
	if _, err := svc.Rest(ctx); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("broke rest = %v, want ErrInsufficientFunds", err)
	}
}

func TestMerchDropSharesRandomRoll(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Fanbase.Total = 10_000

	if _, err := svc.RunMerchDrop(ctx); !errors.Is(err, ErrRequirementsNotMet) {
		t.Fatalf("drop with no merch = %v, want ErrRequirementsNotMet", err)
	}

	if _, err := svc.LaunchMerch(ctx, "hoodie", "Nova Hoodie"); err != nil {
		t.Fatalf("launch: %v", err)
	}
	// Launching a line is free; only drops move money.
	if svc.state.Artist.Money != StarterMoney {
		t.Fatalf("launch charged money: %d", svc.state.Artist.Money)
	}
	moneyBefore := svc.state.Artist.Money
	state, err := svc.RunMerchDrop(ctx)
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	item := state.Merchandise[0]
	if item.Revenue != int64(item.UnitsSold)*item.Price {
		t.Fatalf("revenue %d != units %d * price %d", item.Revenue, item.UnitsSold, item.Price)
	}
	if state.Artist.Money != moneyBefore+item.Revenue {
		t.Fatalf("drop revenue not credited")
	}
}

func TestClaimAwardsSettles(t *testing.T) {
	svc, store := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Artist.Level = 5

	state, err := svc.ClaimAwards(ctx)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if len(state.Awards) != 1 || state.Awards[0].Name != "Breakthrough Artist" {
		t.Fatalf("awards = %+v", state.Awards)
	}

	savesBefore := store.saves
	state, err = svc.ClaimAwards(ctx)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if len(state.Awards) != 1 {
		t.Fatalf("second claim duplicated the award")
	}
	if store.saves != savesBefore {
		t.Fatalf("settled claim wrote a save")
	}
}

func TestClaimAwardsPersistsProgressChange(t *testing.T) {
	svc, store := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()

	// The money goal alone moves progress without earning a trophy.
	svc.state.Artist.Money = RetirementMoneyGoal
	state, err := svc.ClaimAwards(ctx)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if len(state.Awards) != 0 {
		t.Fatalf("awards = %+v, want none", state.Awards)
	}
	if state.RetirementProgress != 0.25 {
		t.Fatalf("progress = %v, want 0.25", state.RetirementProgress)
	}
	if store.state.RetirementProgress != 0.25 {
		t.Fatalf("refreshed progress never reached the store")
	}
}

func TestPopupStoreOnePerCity(t *testing.T) {
	svc, _ := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()
	svc.state.Artist.Money = 100_000

	if _, err := svc.OpenPopupStore(ctx, "Atlantis"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("unknown city = %v, want ErrUnknownItem", err)
	}
	if _, err := svc.OpenPopupStore(ctx, "Paris"); err != nil {
		t.Fatalf("popup: %v", err)
	}
	if _, err := svc.OpenPopupStore(ctx, "Paris"); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("second paris popup = %v, want ErrAlreadyOwned", err)
	}
}

func TestPressConferenceUsesGeneratedStatement(t *testing.T) {
	svc, _ := newTestService(t, cannedGenerator{text: "Nova announces a world tour."})
	startGame(t, svc)

	state, err := svc.HoldPressConference(context.Background(), "the tour")
	if err != nil {
		t.Fatalf("press: %v", err)
	}
	if state.Artist.Energy != 90 {
		t.Fatalf("energy = %d, want 90", state.Artist.Energy)
	}
	if state.Artist.Reputation != 10 {
		t.Fatalf("reputation = %d, want 10", state.Artist.Reputation)
	}
	pc := state.PressConferences[0]
	if pc.Statement != "Nova announces a world tour." {
		t.Fatalf("statement = %q", pc.Statement)
	}
}

func TestFailedSaveDropsSessionCache(t *testing.T) {
	svc, store := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()

	store.saveErr = errors.New("disk full")
	if _, err := svc.Rest(ctx); err == nil {
		t.Fatalf("rest succeeded with a failing store")
	}

	// Rules mutate a copy, so even a store that hands back its own
	// pointer on Load still holds the pre-mutation snapshot.
	if store.state.Artist.Money != 10_000 {
		t.Fatalf("store money = %d, failed save leaked a mutation", store.state.Artist.Money)
	}

	// The next read comes from the last good save, not the unsaved
	// mutation.
	store.saveErr = nil
	state, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if state.Artist.Money != 10_000 {
		t.Fatalf("money = %d, want last saved 10000", state.Artist.Money)
	}
}

func TestResetClearsSave(t *testing.T) {
	svc, store := newTestService(t, nil)
	startGame(t, svc)
	ctx := context.Background()

	if err := svc.ResetGame(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if store.state != nil {
		t.Fatalf("store still holds a save")
	}
	if _, err := svc.Current(ctx); !errors.Is(err, ErrNoGame) {
		t.Fatalf("current after reset = %v, want ErrNoGame", err)
	}
}
