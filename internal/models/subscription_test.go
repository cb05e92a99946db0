package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountsTowardOccupancy(t *testing.T) {
	assert.True(t, SubscriptionActive.CountsTowardOccupancy())
	assert.True(t, SubscriptionTrialing.CountsTowardOccupancy())
	assert.False(t, SubscriptionPaused.CountsTowardOccupancy())
	assert.False(t, SubscriptionCanceled.CountsTowardOccupancy())
	assert.False(t, SubscriptionPastDue.CountsTowardOccupancy())
}

func TestResolveStudentsPrefersStructuredRecords(t *testing.T) {
	sub := Subscription{
		ID: "sub-1",
		Students: []Student{
			{ID: "stu-1", Name: "Ari Nguyen"},
			{ID: "stu-2", Name: "   "},
		},
		LegacyStudents: []byte(`["Should Not Appear"]`),
	}

	students := sub.ResolveStudents()
	require.Len(t, students, 1)
	assert.Equal(t, "stu-1", students[0].ID)
}

func TestResolveStudentsLegacyStrings(t *testing.T) {
	sub := Subscription{
		ID:             "sub-2",
		LegacyStudents: []byte(`["Mia Chen", "", "Leo Park"]`),
	}

	students := sub.ResolveStudents()
	require.Len(t, students, 2)
	assert.Equal(t, "legacy-sub-2-0", students[0].ID)
	assert.Equal(t, "Mia Chen", students[0].Name)
	// Synthetic ids keep the original blob index even when entries are
	// dropped, so they stay stable as the blob is cleaned up.
	assert.Equal(t, "legacy-sub-2-2", students[1].ID)
	assert.Equal(t, "Leo Park", students[1].Name)
}

func TestResolveStudentsLegacyObjects(t *testing.T) {
	sub := Subscription{
		ID:             "sub-3",
		LegacyStudents: []byte(`[{"name": "Ove Berg"}, {"name": "  "}]`),
	}

	students := sub.ResolveStudents()
	require.Len(t, students, 1)
	assert.Equal(t, "Ove Berg", students[0].Name)
}

func TestResolveStudentsUnparseableBlob(t *testing.T) {
	sub := Subscription{
		ID:             "sub-4",
		LegacyStudents: []byte(`not json at all`),
	}

	assert.Nil(t, sub.ResolveStudents())
}

func TestResolveStudentsEmpty(t *testing.T) {
	assert.Nil(t, Subscription{ID: "sub-5"}.ResolveStudents())
}
