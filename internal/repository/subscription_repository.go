package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sparklabs-au/ignite-api/internal/models"
)

// SubscriptionRepository reads billing-backed enrollments.
type SubscriptionRepository struct {
	db *sqlx.DB
}

// NewSubscriptionRepository constructs the repository.
func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

type subscriptionStudentRow struct {
	SubscriptionID string `db:"subscription_id"`
	StudentID      string `db:"student_id"`
	StudentName    string `db:"student_name"`
}

// ListBillable returns subscriptions whose status holds a session spot, with
// their structured student records attached in stored order. Legacy student
// blobs come back raw; resolution happens in the model.
func (r *SubscriptionRepository) ListBillable(ctx context.Context) ([]models.Subscription, error) {
	const query = `SELECT id, status, COALESCE(session_id, '') AS session_id, legacy_students
        FROM subscriptions
        WHERE status IN ($1, $2)
        ORDER BY id`

	var subs []models.Subscription
	if err := r.db.SelectContext(ctx, &subs, query,
		models.SubscriptionActive, models.SubscriptionTrialing); err != nil {
		return nil, fmt.Errorf("list billable subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return subs, nil
	}

	const studentQuery = `SELECT ss.subscription_id, ss.student_id, ss.student_name
        FROM subscription_students ss
        JOIN subscriptions s ON s.id = ss.subscription_id
        WHERE s.status IN ($1, $2)
        ORDER BY ss.subscription_id, ss.position`

	var rows []subscriptionStudentRow
	if err := r.db.SelectContext(ctx, &rows, studentQuery,
		models.SubscriptionActive, models.SubscriptionTrialing); err != nil {
		return nil, fmt.Errorf("list subscription students: %w", err)
	}

	byID := make(map[string]int, len(subs))
	for i, sub := range subs {
		byID[sub.ID] = i
	}
	for _, row := range rows {
		i, ok := byID[row.SubscriptionID]
		if !ok {
			continue
		}
		subs[i].Students = append(subs[i].Students, models.Student{
			ID:   row.StudentID,
			Name: row.StudentName,
		})
	}

	return subs, nil
}
