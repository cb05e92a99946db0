package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sparklabs-au/ignite-api/internal/models"
	"github.com/sparklabs-au/ignite-api/internal/timezone"
)

type rosterSubscriptionSource interface {
	ListBillable(ctx context.Context) ([]models.Subscription, error)
}

// RosterKey addresses the enrolled-student set for one session on one local
// calendar date. Date uses the yyyy-MM-dd key format.
type RosterKey struct {
	SessionID string
	Date      string
}

// RosterService resolves billing subscriptions into per-occurrence student
// rosters.
type RosterService struct {
	subs   rosterSubscriptionSource
	logger *zap.Logger
}

// NewRosterService constructs a roster service.
func NewRosterService(subs rosterSubscriptionSource, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{subs: subs, logger: logger}
}

// Resolve maps every (session, date) pair in the inclusive range to its
// distinct enrolled students. Subscriptions referencing an unknown session are
// skipped, and students appearing on multiple subscriptions for the same
// session are counted once, keeping first-seen order.
func (s *RosterService) Resolve(ctx context.Context, sessions []models.SessionDefinition, from, to timezone.Date) (map[RosterKey][]models.Student, error) {
	rosters := make(map[RosterKey][]models.Student)
	if from.After(to) {
		return rosters, nil
	}

	subs, err := s.subs.ListBillable(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(sessions))
	for _, def := range sessions {
		known[def.ID] = struct{}{}
	}

	// Rosters do not vary by date within a query, so resolve each session's
	// student set once and share it across matching dates.
	bySession := make(map[string][]models.Student)
	for _, sub := range subs {
		if !sub.Status.CountsTowardOccupancy() {
			continue
		}
		if _, ok := known[sub.SessionID]; !ok {
			s.logger.Debug("skipping subscription with unknown session",
				zap.String("subscription_id", sub.ID),
				zap.String("session_id", sub.SessionID))
			continue
		}
		students := sub.ResolveStudents()
		if len(students) == 0 {
			continue
		}
		bySession[sub.SessionID] = append(bySession[sub.SessionID], students...)
	}
	for id, students := range bySession {
		bySession[id] = dedupeStudents(students)
	}

	for d := from; !d.After(to); d = d.Next() {
		weekday := d.Weekday()
		key := d.String()
		for _, def := range sessions {
			if !def.OccursOn(weekday) {
				continue
			}
			roster := bySession[def.ID]
			if len(roster) == 0 {
				continue
			}
			rosters[RosterKey{SessionID: def.ID, Date: key}] = roster
		}
	}

	return rosters, nil
}

func dedupeStudents(students []models.Student) []models.Student {
	seen := make(map[string]struct{}, len(students))
	out := make([]models.Student, 0, len(students))
	for _, st := range students {
		if _, dup := seen[st.ID]; dup {
			continue
		}
		seen[st.ID] = struct{}{}
		out = append(out, st)
	}
	return out
}
