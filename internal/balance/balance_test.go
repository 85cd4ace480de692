package balance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaults(t *testing.T) {
	sheet, err := Load("")
	require.NoError(t, err)

	require.Len(t, sheet.TeamCandidates, 8)
	require.Len(t, sheet.Venues, 8)
	require.NotEmpty(t, sheet.Equipment)
	require.NotEmpty(t, sheet.Upgrades)
	require.NotEmpty(t, sheet.PopupCities)

	mic, ok := sheet.EquipmentByID("u87")
	require.True(t, ok)
	require.EqualValues(t, 15_000, mic.Cost)
	require.Equal(t, 9, mic.Quality)

	tm, ok := sheet.Candidate("ty-marsh")
	require.True(t, ok)
	require.Equal(t, "tour-manager", tm.Role)
	require.EqualValues(t, 5_000, tm.Salary)

	wembley, ok := sheet.VenueByID("wembley")
	require.True(t, ok)
	require.Equal(t, "stadium", wembley.Type)
	require.EqualValues(t, 500_000, wembley.BaseRevenue)

	require.True(t, sheet.PopupCity("Paris"))
	require.False(t, sheet.PopupCity("Atlantis"))

	_, ok = sheet.FanClubTier(3)
	require.True(t, ok)
	_, ok = sheet.FanClubTier(99)
	require.False(t, ok)
}

func TestLookupMiss(t *testing.T) {
	sheet, err := Load("")
	require.NoError(t, err)

	_, ok := sheet.EquipmentByID("theremin")
	require.False(t, ok)
	_, ok = sheet.Candidate("nobody")
	require.False(t, ok)
	_, ok = sheet.DirectorByID("nobody")
	require.False(t, ok)
}

func TestFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	override := `
equipment:
  - { id: tape-machine, name: Studer Tape Machine, type: tape, cost: 20000, quality: 8 }
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o600))

	sheet, err := Load(path)
	require.NoError(t, err)

	// Overridden section is replaced wholesale.
	require.Len(t, sheet.Equipment, 1)
	tape, ok := sheet.EquipmentByID("tape-machine")
	require.True(t, ok)
	require.EqualValues(t, 20_000, tape.Cost)

	// Untouched sections keep their defaults.
	require.Len(t, sheet.TeamCandidates, 8)
}

func TestMissingOverrideFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
