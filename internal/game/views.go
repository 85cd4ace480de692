package game

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Read-model accessors: pure derivations over a snapshot. None of
// these mutate state and all are safe to call repeatedly.

// FormatMoney renders a currency amount with thousands separators.
func FormatMoney(v int64) string {
	if v < 0 {
		return "-$" + humanize.Comma(-v)
	}
	return "$" + humanize.Comma(v)
}

// FormatCompact renders a count with the k/M suffixes the UI uses.
func FormatCompact(v int64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", float64(v)/1_000)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// EnergyPercent is the energy bar fill, 0..100.
func EnergyPercent(state *GameState) float64 {
	if state.Artist.MaxEnergy == 0 {
		return 0
	}
	return float64(state.Artist.Energy) / float64(state.Artist.MaxEnergy) * 100
}

// FanBuckets reports the raw audience counters. The buckets are
// independent of the total; they are not a partition and may not sum
// to it.
func FanBuckets(state *GameState) (total, hardcore, casual, haters int) {
	f := state.Fanbase
	return f.Total, f.Hardcore, f.Casual, f.Haters
}

// DemographicShares converts the age-group counters into fractions of
// their own sum. An empty map yields no shares.
func DemographicShares(state *GameState) map[string]float64 {
	sum := 0
	for _, n := range state.Fanbase.Demographics.AgeGroups {
		sum += n
	}
	shares := make(map[string]float64, len(state.Fanbase.Demographics.AgeGroups))
	if sum == 0 {
		return shares
	}
	for group, n := range state.Fanbase.Demographics.AgeGroups {
		shares[group] = float64(n) / float64(sum)
	}
	return shares
}

// TotalSongEarnings sums lifetime earnings across the discography.
func TotalSongEarnings(state *GameState) int64 {
	var sum int64
	for _, song := range state.Songs {
		sum += song.Earnings
	}
	return sum
}

// TotalStreams sums lifetime streams across the discography.
func TotalStreams(state *GameState) int64 {
	var sum int64
	for _, song := range state.Songs {
		sum += song.Streams
	}
	return sum
}

// TotalMerchRevenue sums revenue across all product lines.
func TotalMerchRevenue(state *GameState) int64 {
	var sum int64
	for _, m := range state.Merchandise {
		sum += m.Revenue
	}
	return sum
}

// TotalMerchUnits sums units sold across all product lines.
func TotalMerchUnits(state *GameState) int {
	sum := 0
	for _, m := range state.Merchandise {
		sum += m.UnitsSold
	}
	return sum
}

// TotalTourRevenue sums revenue across every show played.
func TotalTourRevenue(state *GameState) int64 {
	var sum int64
	for _, t := range state.Tours {
		sum += t.Revenue
	}
	return sum
}

// CanAfford reports whether the artist can pay the given amount.
func CanAfford(state *GameState, cost int64) bool {
	return state.Artist.Money >= cost
}

// CanPlayVenue checks the fan threshold and energy gate for a venue
// type without spending anything.
func CanPlayVenue(state *GameState, venueType string) bool {
	if state.Fanbase.Total < FanThreshold(venueType) {
		return false
	}
	return state.Artist.Energy >= PerformEnergyCost
}

// CanSignBrandDeals reports whether the prestige gate is met.
func CanSignBrandDeals(state *GameState) bool {
	return state.Artist.Prestige >= BrandDealMinPrestige
}

// TeamSize counts occupied team slots.
func TeamSize(state *GameState) int {
	n := 0
	for _, role := range TeamRoles {
		if state.Team.Member(role) != nil {
			n++
		}
	}
	return n
}

// MonthlyPayroll sums the salaries of the current team.
func MonthlyPayroll(state *GameState) int64 {
	var sum int64
	for _, role := range TeamRoles {
		if m := state.Team.Member(role); m != nil {
			sum += m.Salary
		}
	}
	return sum
}

// CareerSummary is the condensed header view most screens show.
type CareerSummary struct {
	StageName          string  `json:"stageName"`
	Genre              string  `json:"genre"`
	Level              int     `json:"level"`
	Money              string  `json:"money"`
	Energy             int     `json:"energy"`
	MaxEnergy          int     `json:"maxEnergy"`
	Prestige           int     `json:"prestige"`
	Reputation         int     `json:"reputation"`
	Fans               string  `json:"fans"`
	Songs              int     `json:"songs"`
	TeamSize           int     `json:"teamSize"`
	Awards             int     `json:"awards"`
	RetirementProgress float64 `json:"retirementProgress"`
}

// Summarize builds the header view from a snapshot.
func Summarize(state *GameState) CareerSummary {
	return CareerSummary{
		StageName:          state.Artist.StageName,
		Genre:              state.Artist.Genre,
		Level:              state.Artist.Level,
		Money:              FormatMoney(state.Artist.Money),
		Energy:             state.Artist.Energy,
		MaxEnergy:          state.Artist.MaxEnergy,
		Prestige:           state.Artist.Prestige,
		Reputation:         state.Artist.Reputation,
		Fans:               FormatCompact(int64(state.Fanbase.Total)),
		Songs:              len(state.Songs),
		TeamSize:           TeamSize(state),
		Awards:             len(state.Awards),
		RetirementProgress: RetirementProgress(state),
	}
}
