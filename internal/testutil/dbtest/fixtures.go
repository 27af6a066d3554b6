//go:build integration

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type CampaignFixture struct {
	ClientID  *uuid.UUID
	Name      string
	Status    string
	StartDate time.Time
	EndDate   time.Time
}

// CreateTestCampaign inserts an active fixed-value campaign unless the fixture says otherwise
func CreateTestCampaign(t *testing.T, db DBLike, f CampaignFixture) uuid.UUID {
	t.Helper()

	if f.Name == "" {
		f.Name = "Test Campaign"
	}
	if f.Status == "" {
		f.Status = "active"
	}
	now := time.Now().UTC()
	if f.StartDate.IsZero() {
		f.StartDate = now.Add(-24 * time.Hour)
	}
	if f.EndDate.IsZero() {
		f.EndDate = now.Add(30 * 24 * time.Hour)
	}

	var id uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO campaigns (client_id, name, status, is_active, start_date, end_date, coupon_type, coupon_min_value, coupon_max_value)
		VALUES ($1, $2, $3::campaign_status, $4, $5, $6, 'fixed', 10, 50)
		RETURNING id`,
		f.ClientID, f.Name, f.Status, f.Status == "active", f.StartDate, f.EndDate).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateTestBottle(t *testing.T, db DBLike, campaignID uuid.UUID, token string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO bottles (campaign_id, qr_token) VALUES ($1, $2) RETURNING id",
		campaignID, token).Scan(&id)
	require.NoError(t, err)
	return id
}

func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT count(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
