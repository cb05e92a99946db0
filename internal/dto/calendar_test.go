package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparklabs-au/ignite-api/internal/models"
	"github.com/sparklabs-au/ignite-api/internal/timezone"
)

func enrolledOccurrence() models.EventOccurrence {
	return models.EventOccurrence{
		SessionID:   "lane-cove-wed",
		Date:        timezone.NewDate(2025, time.March, 5),
		Start:       time.Date(2025, time.March, 5, 4, 30, 0, 0, time.UTC),
		End:         time.Date(2025, time.March, 5, 5, 30, 0, 0, time.UTC),
		Location:    "Lane Cove",
		Address:     "1 Longueville Rd, Lane Cove NSW",
		ProgramType: models.ProgramDropOff,
		Capacity:    20,
		Students: []models.Student{
			{ID: "stu-1", Name: "Ari Nguyen"},
			{ID: "stu-2", Name: "Leo Park"},
		},
	}
}

func TestAdminEvent(t *testing.T) {
	event := AdminEvent(enrolledOccurrence())

	assert.Equal(t, "lane-cove-wed-2025-03-05", event.ID)
	assert.Equal(t, "Lane Cove (2/20)", event.Title)
	assert.Equal(t, "#f59e0b", event.BackgroundColor)
	require.NotNil(t, event.ExtendedProps.Capacity)
	assert.Equal(t, 20, *event.ExtendedProps.Capacity)
	require.NotNil(t, event.ExtendedProps.CurrentCount)
	assert.Equal(t, 2, *event.ExtendedProps.CurrentCount)
	assert.Equal(t, 18, event.ExtendedProps.AvailableSpots)
	assert.True(t, event.ExtendedProps.IsRecurring)
	require.Len(t, event.ExtendedProps.Students, 2)
}

func TestPublicEventSerializedShape(t *testing.T) {
	event := PublicEvent(enrolledOccurrence())

	raw, err := json.Marshal(event)
	require.NoError(t, err)
	body := string(raw)

	// No subscriber identity or enrollment detail may survive serialization.
	assert.NotContains(t, body, "Ari Nguyen")
	assert.NotContains(t, body, "stu-1")
	assert.NotContains(t, body, "students")
	assert.NotContains(t, body, "capacity")
	assert.NotContains(t, body, "currentCount")
	assert.NotContains(t, body, "sessionId")
	assert.NotContains(t, body, "programType")

	var decoded struct {
		Title         string `json:"title"`
		ExtendedProps map[string]interface{} `json:"extendedProps"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Lane Cove", decoded.Title)
	assert.Len(t, decoded.ExtendedProps, 2)
	assert.Equal(t, "Lane Cove", decoded.ExtendedProps["location"])
	assert.Equal(t, float64(18), decoded.ExtendedProps["availableSpots"])
}
