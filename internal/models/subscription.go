package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx/types"
)

// SubscriptionStatus mirrors the billing provider's lifecycle states.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionTrialing SubscriptionStatus = "TRIALING"
	SubscriptionPaused   SubscriptionStatus = "PAUSED"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
	SubscriptionPastDue  SubscriptionStatus = "PAST_DUE"
)

// CountsTowardOccupancy reports whether the status contributes to session
// occupancy. Only active and trialing subscriptions hold a spot.
func (s SubscriptionStatus) CountsTowardOccupancy() bool {
	return s == SubscriptionActive || s == SubscriptionTrialing
}

// Student is a learner identity after normalization. Legacy entries carry a
// synthetic id so de-duplication works uniformly.
type Student struct {
	ID   string `db:"student_id" json:"id"`
	Name string `db:"student_name" json:"name"`
}

// Subscription is a billing-backed enrollment in one session. SessionID is a
// weak reference: it may be empty or point at a retired session, in which case
// the subscription is skipped by the calendar, never treated as an error.
type Subscription struct {
	ID             string             `db:"id" json:"id"`
	Status         SubscriptionStatus `db:"status" json:"status"`
	SessionID      string             `db:"session_id" json:"session_id"`
	Students       []Student          `json:"students,omitempty"`
	LegacyStudents types.JSONText     `db:"legacy_students" json:"-"`
}

// legacyStudentEntry tolerates both bare name strings and {"name": ...}
// objects in the legacy blob.
type legacyStudentEntry struct {
	Name string
}

func (e *legacyStudentEntry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		e.Name = name
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Name = obj.Name
	return nil
}

// ResolveStudents returns the normalized learner list for the subscription.
// Structured records win; otherwise the legacy free-form blob is parsed into
// synthetic legacy-{subscriptionID}-{index} identities. Blank names are
// dropped silently, and an unparseable blob yields no students rather than an
// error.
func (s Subscription) ResolveStudents() []Student {
	if len(s.Students) > 0 {
		out := make([]Student, 0, len(s.Students))
		for _, st := range s.Students {
			if strings.TrimSpace(st.Name) == "" {
				continue
			}
			out = append(out, st)
		}
		return out
	}

	if len(s.LegacyStudents) == 0 {
		return nil
	}

	var entries []legacyStudentEntry
	if err := json.Unmarshal(s.LegacyStudents, &entries); err != nil {
		return nil
	}

	students := make([]Student, 0, len(entries))
	for i, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		students = append(students, Student{
			ID:   fmt.Sprintf("legacy-%s-%d", s.ID, i),
			Name: name,
		})
	}
	return students
}
