package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/crmkit/pkg/pg"
	"github.com/dmitrymomot/crmkit/pkg/plan"
)

// pgUsageColumns maps metered features to their counter columns. Column
// names come from this fixed map, never from caller input, so building
// the increment statement with Sprintf is safe.
var pgUsageColumns = map[plan.Feature]string{
	plan.FeatureLeads:       "leads_count",
	plan.FeatureCompetitors: "competitors_count",
	plan.FeatureAI:          "ai_requests_this_month",
	plan.FeatureScraping:    "scraping_requests_this_month",
}

// pgStore persists subscriptions in a PostgreSQL table, one row per
// user. Counter increments run as single UPDATE ... RETURNING
// statements, so concurrent writers serialize on the row lock and no
// increment is lost.
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store over the given connection pool. The
// subscriptions table is expected to exist; see the migrations shipped
// with this package.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &pgStore{pool: pool}
}

const pgSubscriptionColumns = `user_id, plan, max_leads, max_competitors, max_ai_requests, max_scraping_requests,
	has_advanced_analytics, has_api_access,
	leads_count, competitors_count, ai_requests_this_month, scraping_requests_this_month,
	status, start_date, end_date, trial_end_date,
	price_amount, price_currency, is_trial_used, created_at, updated_at`

func scanSubscription(row pgx.Row) (*Subscription, error) {
	var sub Subscription
	err := row.Scan(
		&sub.UserID, &sub.Plan,
		&sub.Limits.MaxLeads, &sub.Limits.MaxCompetitors, &sub.Limits.MaxAIRequests, &sub.Limits.MaxScrapingRequests,
		&sub.Limits.HasAdvancedAnalytics, &sub.Limits.HasAPIAccess,
		&sub.CurrentUsage.LeadsCount, &sub.CurrentUsage.CompetitorsCount,
		&sub.CurrentUsage.AIRequestsThisMonth, &sub.CurrentUsage.ScrapingRequestsThisMonth,
		&sub.Status, &sub.StartDate, &sub.EndDate, &sub.TrialEndDate,
		&sub.MonthlyPrice.Amount, &sub.MonthlyPrice.Currency,
		&sub.IsTrialUsed, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return &sub, nil
}

func (s *pgStore) Get(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgSubscriptionColumns+` FROM subscriptions WHERE user_id = $1`,
		userID,
	)
	return scanSubscription(row)
}

func (s *pgStore) Create(ctx context.Context, sub *Subscription) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO subscriptions (`+pgSubscriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		sub.UserID, sub.Plan,
		sub.Limits.MaxLeads, sub.Limits.MaxCompetitors, sub.Limits.MaxAIRequests, sub.Limits.MaxScrapingRequests,
		sub.Limits.HasAdvancedAnalytics, sub.Limits.HasAPIAccess,
		sub.CurrentUsage.LeadsCount, sub.CurrentUsage.CompetitorsCount,
		sub.CurrentUsage.AIRequestsThisMonth, sub.CurrentUsage.ScrapingRequestsThisMonth,
		sub.Status, sub.StartDate, sub.EndDate, sub.TrialEndDate,
		sub.MonthlyPrice.Amount, sub.MonthlyPrice.Currency,
		sub.IsTrialUsed, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *pgStore) Update(ctx context.Context, sub *Subscription) error {
	// Usage columns are deliberately absent: counters move only through
	// IncrementUsage and ResetMonthlyUsage, so a stale in-memory
	// snapshot cannot roll back concurrent increments.
	tag, err := s.pool.Exec(ctx,
		`UPDATE subscriptions SET
			plan = $2,
			max_leads = $3, max_competitors = $4, max_ai_requests = $5, max_scraping_requests = $6,
			has_advanced_analytics = $7, has_api_access = $8,
			status = $9, start_date = $10, end_date = $11, trial_end_date = $12,
			price_amount = $13, price_currency = $14,
			is_trial_used = $15, updated_at = $16
		WHERE user_id = $1`,
		sub.UserID, sub.Plan,
		sub.Limits.MaxLeads, sub.Limits.MaxCompetitors, sub.Limits.MaxAIRequests, sub.Limits.MaxScrapingRequests,
		sub.Limits.HasAdvancedAnalytics, sub.Limits.HasAPIAccess,
		sub.Status, sub.StartDate, sub.EndDate, sub.TrialEndDate,
		sub.MonthlyPrice.Amount, sub.MonthlyPrice.Currency,
		sub.IsTrialUsed, sub.UpdatedAt,
	)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) IncrementUsage(ctx context.Context, userID uuid.UUID, f plan.Feature, delta int64) (int64, error) {
	col, ok := pgUsageColumns[f]
	if !ok {
		return 0, ErrNotMetered
	}

	var current int64
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE subscriptions SET %s = %s + $2, updated_at = now() WHERE user_id = $1 RETURNING %s`, col, col, col),
		userID, delta,
	).Scan(&current)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return 0, ErrNotFound
		}
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return current, nil
}

func (s *pgStore) ResetMonthlyUsage(ctx context.Context) (int64, error) {
	// One statement across all rows; cumulative counters stay untouched.
	tag, err := s.pool.Exec(ctx,
		`UPDATE subscriptions SET ai_requests_this_month = 0, scraping_requests_this_month = 0, updated_at = now()`,
	)
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return tag.RowsAffected(), nil
}
