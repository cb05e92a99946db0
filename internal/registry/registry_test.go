package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sparklabs-au/ignite-api/internal/models"
)

func validSession(id string) models.SessionDefinition {
	return models.SessionDefinition{
		ID:          id,
		ProgramType: models.ProgramDropOff,
		Location:    "Lane Cove",
		DaysOfWeek:  []string{"Wednesday"},
		StartTime:   "15:30",
		EndTime:     "16:30",
		Capacity:    12,
	}
}

func TestNewKeepsDeclarationOrder(t *testing.T) {
	r := New([]models.SessionDefinition{
		validSession("c-session"),
		validSession("a-session"),
		validSession("b-session"),
	}, 20, zap.NewNop())

	require.Equal(t, 3, r.Len())
	list := r.List()
	assert.Equal(t, "c-session", list[0].ID)
	assert.Equal(t, "a-session", list[1].ID)
	assert.Equal(t, "b-session", list[2].ID)
}

func TestNewSkipsInvalidEntries(t *testing.T) {
	noID := validSession("")
	noLocation := validSession("no-location")
	noLocation.Location = ""
	badStart := validSession("bad-start")
	badStart.StartTime = "3pm"
	inverted := validSession("inverted")
	inverted.StartTime = "16:30"
	inverted.EndTime = "15:30"
	noDays := validSession("no-days")
	noDays.DaysOfWeek = []string{"Wodinsday"}

	r := New([]models.SessionDefinition{
		noID, validSession("good"), noLocation, badStart, inverted, noDays,
	}, 20, zap.NewNop())

	require.Equal(t, 1, r.Len())
	_, ok := r.Get("good")
	assert.True(t, ok)
}

func TestNewSkipsDuplicateIDs(t *testing.T) {
	first := validSession("twice")
	second := validSession("twice")
	second.Location = "Chatswood"

	r := New([]models.SessionDefinition{first, second}, 20, zap.NewNop())

	require.Equal(t, 1, r.Len())
	def, ok := r.Get("twice")
	require.True(t, ok)
	assert.Equal(t, "Lane Cove", def.Location)
}

func TestNewAppliesDefaultCapacity(t *testing.T) {
	def := validSession("uncapped")
	def.Capacity = 0

	r := New([]models.SessionDefinition{def, validSession("capped")}, 20, zap.NewNop())

	uncapped, _ := r.Get("uncapped")
	assert.Equal(t, 20, uncapped.Capacity)
	capped, _ := r.Get("capped")
	assert.Equal(t, 12, capped.Capacity)
}

func TestNewKeepsSessionWithPartlyUnknownDays(t *testing.T) {
	def := validSession("mixed-days")
	def.DaysOfWeek = []string{"Wednesday", "Funday"}

	r := New([]models.SessionDefinition{def}, 20, zap.NewNop())

	require.Equal(t, 1, r.Len())
}

func TestListReturnsCopy(t *testing.T) {
	r := New([]models.SessionDefinition{validSession("only")}, 20, zap.NewNop())

	list := r.List()
	list[0].Location = "mutated"

	again := r.List()
	assert.Equal(t, "Lane Cove", again[0].Location)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.yaml")
	yaml := `sessions:
  - id: lane-cove-wed
    programType: drop-off
    location: Lane Cove
    address: 1 Longueville Rd, Lane Cove NSW
    daysOfWeek: [Wednesday]
    startTime: "15:30"
    endTime: "16:30"
    priceWeekly: "35.00"
    capacity: 16
  - id: chatswood-sat
    programType: school-pickup
    location: Chatswood
    daysOfWeek: [Saturday, Sunday]
    startTime: "09:00"
    endTime: "10:30"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	r, err := Load(path, 20, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	laneCove, ok := r.Get("lane-cove-wed")
	require.True(t, ok)
	assert.Equal(t, models.ProgramDropOff, laneCove.ProgramType)
	assert.Equal(t, 16, laneCove.Capacity)
	assert.Equal(t, "35.00", laneCove.PriceWeekly)

	chatswood, ok := r.Get("chatswood-sat")
	require.True(t, ok)
	assert.Equal(t, 20, chatswood.Capacity)
	assert.Len(t, chatswood.DaysOfWeek, 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), 20, zap.NewNop())
	assert.Error(t, err)
}
