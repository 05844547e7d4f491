package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
)

type PolicyRepository struct {
	db *sql.DB
}

func NewPolicyRepository(db *sql.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// GetActivePolicy returns the policy effective for the hostel at the given
// time, or (nil, nil) when the hostel has none.
func (r *PolicyRepository) GetActivePolicy(ctx context.Context, hostelID uuid.UUID, at time.Time) (*domain.CancellationPolicy, error) {
	query := `
	SELECT id, hostel_id, effective_from, effective_until
	FROM cancellation_policies
	WHERE hostel_id = $1
		AND effective_from <= $2
		AND (effective_until IS NULL OR effective_until > $2)
	ORDER BY effective_from DESC
	LIMIT 1
	`

	var p domain.CancellationPolicy
	var effectiveUntil sql.NullTime

	err := r.db.QueryRowContext(ctx, query, hostelID, at).Scan(&p.ID, &p.HostelID, &p.EffectiveFrom, &effectiveUntil)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	p.EffectiveUntil = timeOrNil(effectiveUntil)

	tierQuery := `
	SELECT days_before_checkin, charge_percentage
	FROM cancellation_policy_tiers
	WHERE policy_id = $1
	ORDER BY days_before_checkin DESC
	`

	rows, err := r.db.QueryContext(ctx, tierQuery, p.ID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var tier domain.PolicyTier
		if err := rows.Scan(&tier.DaysBeforeCheckIn, &tier.ChargePercentage); err != nil {
			return nil, err
		}

		p.Tiers = append(p.Tiers, tier)
	}

	return &p, rows.Err()
}
