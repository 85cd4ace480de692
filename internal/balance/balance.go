// Package balance holds the tunable game catalogs: what can be bought,
// who can be hired, where the artist can play. Values ship as an
// embedded YAML sheet and can be overridden by a file on disk.
package balance

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultSheet []byte

type Sheet struct {
	TeamCandidates []TeamCandidate  `yaml:"teamCandidates"`
	Equipment      []EquipmentSpec  `yaml:"equipment"`
	Rooms          []RoomSpec       `yaml:"rooms"`
	Upgrades       []UpgradeSpec    `yaml:"upgrades"`
	Venues         []VenueSpec      `yaml:"venues"`
	Contracts      []ContractSpec   `yaml:"contracts"`
	BrandDeals     []BrandDealSpec  `yaml:"brandDeals"`
	Investments    []InvestmentSpec `yaml:"investments"`
	LuxuryItems    []LuxurySpec     `yaml:"luxuryItems"`
	MediaEvents    []MediaSpec      `yaml:"mediaEvents"`
	MerchTemplates []MerchSpec      `yaml:"merchTemplates"`
	Directors      []DirectorSpec   `yaml:"directors"`
	FanClubTiers   []FanClubSpec    `yaml:"fanClubTiers"`
	PopupCities    []string         `yaml:"popupCities"`
}

type TeamCandidate struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Role   string `yaml:"role"`
	Salary int64  `yaml:"salary"`
}

type EquipmentSpec struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Cost    int64  `yaml:"cost"`
	Quality int    `yaml:"quality"`
}

type RoomSpec struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Cost  int64  `yaml:"cost"`
	Boost int    `yaml:"boost"`
}

type UpgradeSpec struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Cost         int64  `yaml:"cost"`
	QualityBoost int    `yaml:"qualityBoost"`
}

type VenueSpec struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	City        string `yaml:"city"`
	Type        string `yaml:"type"`
	Capacity    int    `yaml:"capacity"`
	BaseRevenue int64  `yaml:"baseRevenue"`
}

type ContractSpec struct {
	ID          string  `yaml:"id"`
	Type        string  `yaml:"type"`
	Partner     string  `yaml:"partner"`
	RoyaltyRate float64 `yaml:"royaltyRate"`
	Value       int64   `yaml:"value"`
	Duration    int     `yaml:"duration"`
}

type BrandDealSpec struct {
	ID       string `yaml:"id"`
	Brand    string `yaml:"brand"`
	Type     string `yaml:"type"`
	Value    int64  `yaml:"value"`
	Duration int    `yaml:"duration"`
	Prestige int    `yaml:"prestige"`
}

type InvestmentSpec struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Type           string  `yaml:"type"`
	MinInvestment  int64   `yaml:"minInvestment"`
	ExpectedReturn float64 `yaml:"expectedReturn"`
}

type LuxurySpec struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Cost     int64  `yaml:"cost"`
	Prestige int    `yaml:"prestige"`
}

type MediaSpec struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Impact int    `yaml:"impact"`
	Cost   int64  `yaml:"cost"`
}

type MerchSpec struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	BasePrice int64  `yaml:"basePrice"`
}

type DirectorSpec struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Cost    int64  `yaml:"cost"`
	Quality int    `yaml:"quality"`
}

type FanClubSpec struct {
	Tier int   `yaml:"tier"`
	Cost int64 `yaml:"cost"`
}

// Load returns the embedded defaults, overlaid by the YAML file at
// path when one is given.
func Load(path string) (*Sheet, error) {
	var sheet Sheet
	if err := yaml.Unmarshal(defaultSheet, &sheet); err != nil {
		return nil, fmt.Errorf("parse default balance sheet: %w", err)
	}
	if path == "" {
		return &sheet, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read balance sheet: %w", err)
	}
	if err := yaml.Unmarshal(raw, &sheet); err != nil {
		return nil, fmt.Errorf("parse balance sheet %s: %w", path, err)
	}
	return &sheet, nil
}

func (s *Sheet) Candidate(id string) (TeamCandidate, bool) {
	for _, c := range s.TeamCandidates {
		if c.ID == id {
			return c, true
		}
	}
	return TeamCandidate{}, false
}

func (s *Sheet) EquipmentByID(id string) (EquipmentSpec, bool) {
	for _, e := range s.Equipment {
		if e.ID == id {
			return e, true
		}
	}
	return EquipmentSpec{}, false
}

func (s *Sheet) RoomByID(id string) (RoomSpec, bool) {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return RoomSpec{}, false
}

func (s *Sheet) UpgradeByID(id string) (UpgradeSpec, bool) {
	for _, u := range s.Upgrades {
		if u.ID == id {
			return u, true
		}
	}
	return UpgradeSpec{}, false
}

func (s *Sheet) VenueByID(id string) (VenueSpec, bool) {
	for _, v := range s.Venues {
		if v.ID == id {
			return v, true
		}
	}
	return VenueSpec{}, false
}

func (s *Sheet) ContractByID(id string) (ContractSpec, bool) {
	for _, c := range s.Contracts {
		if c.ID == id {
			return c, true
		}
	}
	return ContractSpec{}, false
}

func (s *Sheet) BrandDealByID(id string) (BrandDealSpec, bool) {
	for _, d := range s.BrandDeals {
		if d.ID == id {
			return d, true
		}
	}
	return BrandDealSpec{}, false
}

func (s *Sheet) InvestmentByID(id string) (InvestmentSpec, bool) {
	for _, i := range s.Investments {
		if i.ID == id {
			return i, true
		}
	}
	return InvestmentSpec{}, false
}

func (s *Sheet) LuxuryByID(id string) (LuxurySpec, bool) {
	for _, l := range s.LuxuryItems {
		if l.ID == id {
			return l, true
		}
	}
	return LuxurySpec{}, false
}

func (s *Sheet) MediaByID(id string) (MediaSpec, bool) {
	for _, m := range s.MediaEvents {
		if m.ID == id {
			return m, true
		}
	}
	return MediaSpec{}, false
}

func (s *Sheet) MerchByID(id string) (MerchSpec, bool) {
	for _, m := range s.MerchTemplates {
		if m.ID == id {
			return m, true
		}
	}
	return MerchSpec{}, false
}

func (s *Sheet) DirectorByID(id string) (DirectorSpec, bool) {
	for _, d := range s.Directors {
		if d.ID == id {
			return d, true
		}
	}
	return DirectorSpec{}, false
}

func (s *Sheet) FanClubTier(tier int) (FanClubSpec, bool) {
	for _, f := range s.FanClubTiers {
		if f.Tier == tier {
			return f, true
		}
	}
	return FanClubSpec{}, false
}

func (s *Sheet) PopupCity(city string) bool {
	for _, c := range s.PopupCities {
		if c == city {
			return true
		}
	}
	return false
}
