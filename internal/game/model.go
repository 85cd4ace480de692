package game

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SchemaVersion = 1

	StarterMoney        = int64(10_000)
	StarterEnergy       = 100
	StarterSoundQuality = 50
	StarterStudioTier   = 1

	MaxStudioTier    = 10
	MaxSoundFidelity = 100

	HireSalaryMultiplier = 3

	PerformEnergyCost = 20
	MediaEnergyCost   = 15
	CollabEnergyCost  = 20
	PressEnergyCost   = 10

	RestCost = int64(5_000)

	BrandDealMinPrestige = 50

	TheaterFanThreshold = 5_000
	ArenaFanThreshold   = 50_000
	StadiumFanThreshold = 100_000

	MaxStoredPosts       = 20
	MaxStoredMediaEvents = 50
)

var (
	ErrNoGame                = errors.New("no saved game")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientEnergy    = errors.New("insufficient energy")
	ErrAlreadyOwned          = errors.New("already owned")
	ErrRoleOccupied          = errors.New("role already occupied")
	ErrDuplicateRelationship = errors.New("relationship already exists")
	ErrRequirementsNotMet    = errors.New("requirements not met")
	ErrUnknownItem           = errors.New("unknown catalog item")
	ErrSongNotFound          = errors.New("song not found")
)

// GameState is the whole save file: one aggregate, persisted wholesale
// under a single key. Nested records are owned by value; nothing inside
// is shared between parents.
type GameState struct {
	SchemaVersion       int                  `json:"schemaVersion"`
	Artist              Artist               `json:"artist"`
	Team                Team                 `json:"team"`
	Studio              Studio               `json:"studio"`
	Songs               []Song               `json:"songs"`
	Fanbase             Fanbase              `json:"fanbase"`
	SocialMedia         SocialMedia          `json:"socialMedia"`
	Relationships       []Relationship       `json:"relationships"`
	LuxuryItems         []LuxuryItem         `json:"luxuryItems"`
	Merchandise         []Merchandise        `json:"merchandise"`
	Tours               []Tour               `json:"tours"`
	MediaEvents         []MediaEvent         `json:"mediaEvents"`
	Awards              []Award              `json:"awards"`
	Contracts           []Contract           `json:"contracts"`
	BusinessInvestments []BusinessInvestment `json:"businessInvestments"`
	BrandDeals          []BrandDeal          `json:"brandDeals"`
	FashionLines        []FashionLine        `json:"fashionLines"`
	PopupStores         []PopupStore         `json:"popupStores"`
	PressConferences    []PressConference    `json:"pressConferences"`
	RetirementProgress  float64              `json:"retirementProgress"`
	LastSaved           int64                `json:"lastSaved"`
}

type Artist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	StageName  string `json:"stageName"`
	Genre      string `json:"genre"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	Energy     int    `json:"energy"`
	MaxEnergy  int    `json:"maxEnergy"`
	Prestige   int    `json:"prestige"`
	Money      int64  `json:"money"`
	Reputation int    `json:"reputation"`
	CreatedAt  int64  `json:"createdAt"`
}

// Team holds one optional member per role. Slot uniqueness is the
// hiring rule's job; the struct itself allows anything.
type Team struct {
	Manager           *TeamMember `json:"manager"`
	Engineer          *TeamMember `json:"engineer"`
	Publicist         *TeamMember `json:"publicist"`
	CreativeDirector  *TeamMember `json:"creativeDirector"`
	DigitalStrategist *TeamMember `json:"digitalStrategist"`
	PressAttache      *TeamMember `json:"pressAttache"`
	TourManager       *TeamMember `json:"tourManager"`
	Bodyguards        *TeamMember `json:"bodyguards"`
}

type TeamMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Skill     int    `json:"skill"`
	Salary    int64  `json:"salary"`
	HiredDate int64  `json:"hiredDate"`
}

const (
	RoleManager           = "manager"
	RoleEngineer          = "engineer"
	RolePublicist         = "publicist"
	RoleCreativeDirector  = "creative-director"
	RoleDigitalStrategist = "digital-strategist"
	RolePressAttache      = "press-attache"
	RoleTourManager       = "tour-manager"
	RoleBodyguards        = "bodyguards"
)

var TeamRoles = []string{
	RoleManager,
	RoleEngineer,
	RolePublicist,
	RoleCreativeDirector,
	RoleDigitalStrategist,
	RolePressAttache,
	RoleTourManager,
	RoleBodyguards,
}

func (t *Team) slot(role string) (**TeamMember, bool) {
	switch role {
	case RoleManager:
		return &t.Manager, true
	case RoleEngineer:
		return &t.Engineer, true
	case RolePublicist:
		return &t.Publicist, true
	case RoleCreativeDirector:
		return &t.CreativeDirector, true
	case RoleDigitalStrategist:
		return &t.DigitalStrategist, true
	case RolePressAttache:
		return &t.PressAttache, true
	case RoleTourManager:
		return &t.TourManager, true
	case RoleBodyguards:
		return &t.Bodyguards, true
	default:
		return nil, false
	}
}

// Member returns the occupant of a role, or nil.
func (t *Team) Member(role string) *TeamMember {
	slot, ok := t.slot(role)
	if !ok {
		return nil
	}
	return *slot
}

type Studio struct {
	Quality       int             `json:"quality"`
	Equipment     []Equipment     `json:"equipment"`
	Upgrades      []StudioUpgrade `json:"upgrades"`
	Rooms         []StudioRoom    `json:"rooms"`
	SoundFidelity int             `json:"soundFidelity"`
}

type Equipment struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Quality int    `json:"quality"`
	Cost    int64  `json:"cost"`
}

type StudioUpgrade struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Cost    int64  `json:"cost"`
	Benefit string `json:"benefit"`
}

type StudioRoom struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Level int    `json:"level"`
	Boost int    `json:"boost"`
	Owned bool   `json:"owned"`
}

const (
	SongTypeSingle = "single"
	SongTypeEP     = "ep"
	SongTypeAlbum  = "album"
)

type Song struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Type          string      `json:"type"`
	Genre         string      `json:"genre"`
	Quality       int         `json:"quality"`
	Streams       int64       `json:"streams"`
	Earnings      int64       `json:"earnings"`
	ReleaseDate   int64       `json:"releaseDate"`
	ChartPosition int         `json:"chartPosition,omitempty"`
	Lyrics        string      `json:"lyrics,omitempty"`
	MusicVideo    *MusicVideo `json:"musicVideo,omitempty"`
}

type MusicVideo struct {
	ID         string `json:"id"`
	Director   string `json:"director"`
	Quality    int    `json:"quality"`
	Cost       int64  `json:"cost"`
	ReleasedAt int64  `json:"releasedAt"`
}

// Fanbase counters are independent: total is NOT kept equal to
// hardcore+casual+haters. Rules bump total and at most one bucket,
// matching the original save format. Consumers must not assume a
// partition.
type Fanbase struct {
	Total        int          `json:"total"`
	Hardcore     int          `json:"hardcore"`
	Casual       int          `json:"casual"`
	Haters       int          `json:"haters"`
	Demographics Demographics `json:"demographics"`
	Engagement   float64      `json:"engagement"`
}

type Demographics struct {
	Regions   map[string]int `json:"regions"`
	AgeGroups map[string]int `json:"ageGroups"`
}

var AgeGroups = []string{"13-17", "18-24", "25-34", "35-44", "45+"}

type SocialMedia struct {
	StarGram SocialAccount `json:"starGram"`
	TwittArt SocialAccount `json:"twittArt"`
}

type SocialAccount struct {
	Followers int    `json:"followers"`
	Posts     []Post `json:"posts"`
}

type Post struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	Comments  []Comment `json:"comments"`
	Timestamp int64     `json:"timestamp"`
	IsViral   bool      `json:"isViral"`
}

type Comment struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Sentiment string `json:"sentiment"`
}

const (
	RelationshipCollaboration = "collaboration"
	RelationshipRivalry       = "rivalry"
	RelationshipRomance       = "romance"
	RelationshipEntourage     = "entourage"
)

type Relationship struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Affinity       int    `json:"affinity"`
	Interactions   int    `json:"interactions"`
	AIGenerated    bool   `json:"aiGenerated,omitempty"`
	ImpactOnCareer string `json:"impactOnCareer,omitempty"`
}

type LuxuryItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Cost        int64  `json:"cost"`
	Prestige    int    `json:"prestige"`
	Owned       bool   `json:"owned"`
	PurchasedAt int64  `json:"purchasedAt,omitempty"`
}

type Merchandise struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Price     int64  `json:"price"`
	UnitsSold int    `json:"unitsSold"`
	Revenue   int64  `json:"revenue"`
}

const (
	VenueTypeClub    = "club"
	VenueTypeTheater = "theater"
	VenueTypeArena   = "arena"
	VenueTypeStadium = "stadium"
)

type Tour struct {
	ID          string `json:"id"`
	VenueID     string `json:"venueId"`
	VenueName   string `json:"venueName"`
	City        string `json:"city"`
	Revenue     int64  `json:"revenue"`
	NewFans     int    `json:"newFans"`
	PerformedAt int64  `json:"performedAt"`
}

type MediaEvent struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Impact     int    `json:"impact"`
	Cost       int64  `json:"cost"`
	NewFans    int    `json:"newFans"`
	OccurredAt int64  `json:"occurredAt"`
}

type Award struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Won      bool   `json:"won"`
	EarnedAt int64  `json:"earnedAt"`
}

const (
	ContractDistribution = "distribution"
	ContractLicensing    = "licensing"
	ContractPublishing   = "publishing"
	ContractSync         = "sync"
)

type Contract struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Partner     string  `json:"partner"`
	RoyaltyRate float64 `json:"royaltyRate"`
	Value       int64   `json:"value"`
	Duration    int     `json:"duration"`
	Signed      bool    `json:"signed"`
	Earnings    int64   `json:"earnings"`
	SignedAt    int64   `json:"signedAt,omitempty"`
}

type BusinessInvestment struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Invested     int64  `json:"invested"`
	CurrentValue int64  `json:"currentValue"`
	Returns      int64  `json:"returns"`
}

type BrandDeal struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	Type     string `json:"type"`
	Value    int64  `json:"value"`
	Duration int    `json:"duration"`
	Prestige int    `json:"prestige"`
	Active   bool   `json:"active"`
}

type FashionLine struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Cost       int64  `json:"cost"`
	LaunchedAt int64  `json:"launchedAt"`
}

type PopupStore struct {
	ID       string `json:"id"`
	City     string `json:"city"`
	Cost     int64  `json:"cost"`
	Duration int    `json:"duration"`
	OpenedAt int64  `json:"openedAt"`
}

type PressConference struct {
	ID        string `json:"id"`
	Topic     string `json:"topic"`
	Statement string `json:"statement"`
	HeldAt    int64  `json:"heldAt"`
}

// NewGameState builds a fresh save. Blank names are the caller's
// problem; no validation happens here.
func NewGameState(name, stageName, genre string) *GameState {
	now := time.Now().UnixMilli()
	return &GameState{
		SchemaVersion: SchemaVersion,
		Artist: Artist{
			ID:        NewID(),
			Name:      name,
			StageName: stageName,
			Genre:     genre,
			Level:     1,
			Energy:    StarterEnergy,
			MaxEnergy: StarterEnergy,
			Money:     StarterMoney,
			CreatedAt: now,
		},
		Studio: Studio{
			Quality:       StarterStudioTier,
			Equipment:     []Equipment{},
			Upgrades:      []StudioUpgrade{},
			Rooms:         []StudioRoom{},
			SoundFidelity: StarterSoundQuality,
		},
		Songs: []Song{},
		Fanbase: Fanbase{
			Demographics: Demographics{
				Regions:   map[string]int{},
				AgeGroups: zeroedAgeGroups(),
			},
		},
		SocialMedia: SocialMedia{
			StarGram: SocialAccount{Posts: []Post{}},
			TwittArt: SocialAccount{Posts: []Post{}},
		},
		Relationships:       []Relationship{},
		LuxuryItems:         []LuxuryItem{},
		Merchandise:         []Merchandise{},
		Tours:               []Tour{},
		MediaEvents:         []MediaEvent{},
		Awards:              []Award{},
		Contracts:           []Contract{},
		BusinessInvestments: []BusinessInvestment{},
		BrandDeals:          []BrandDeal{},
		FashionLines:        []FashionLine{},
		PopupStores:         []PopupStore{},
		PressConferences:    []PressConference{},
		LastSaved:           now,
	}
}

func zeroedAgeGroups() map[string]int {
	groups := make(map[string]int, len(AgeGroups))
	for _, g := range AgeGroups {
		groups[g] = 0
	}
	return groups
}

// Migrate normalizes a loaded snapshot to the current schema. Saves
// written before the version field existed load as version 0 and get
// their missing sub-records filled in place.
func Migrate(s *GameState) {
	if s.SchemaVersion >= SchemaVersion {
		return
	}
	if s.Studio.SoundFidelity == 0 {
		s.Studio.SoundFidelity = StarterSoundQuality
	}
	if s.Studio.Rooms == nil {
		s.Studio.Rooms = []StudioRoom{}
	}
	if s.Studio.Upgrades == nil {
		s.Studio.Upgrades = []StudioUpgrade{}
	}
	if s.Fanbase.Demographics.Regions == nil {
		s.Fanbase.Demographics.Regions = map[string]int{}
	}
	if s.Fanbase.Demographics.AgeGroups == nil {
		s.Fanbase.Demographics.AgeGroups = zeroedAgeGroups()
	}
	if s.PopupStores == nil {
		s.PopupStores = []PopupStore{}
	}
	if s.FashionLines == nil {
		s.FashionLines = []FashionLine{}
	}
	if s.PressConferences == nil {
		s.PressConferences = []PressConference{}
	}
	s.SchemaVersion = SchemaVersion
}

// Clone deep-copies the snapshot through its JSON save form. The
// aggregate holds only JSON-serializable fields, so the round trip
// cannot fail.
func (s *GameState) Clone() *GameState {
	raw, _ := json.Marshal(s)
	var out GameState
	_ = json.Unmarshal(raw, &out)
	return &out
}

func NewID() string {
	return uuid.NewString()
}

// ValidateRole reports whether role names one of the eight team slots.
func ValidateRole(role string) error {
	for _, r := range TeamRoles {
		if r == strings.TrimSpace(role) {
			return nil
		}
	}
	return ErrRequirementsNotMet
}

// FanThreshold returns the fan count required to book a venue type.
// Clubs have no gate.
func FanThreshold(venueType string) int {
	switch venueType {
	case VenueTypeTheater:
		return TheaterFanThreshold
	case VenueTypeArena:
		return ArenaFanThreshold
	case VenueTypeStadium:
		return StadiumFanThreshold
	default:
		return 0
	}
}
