//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DefaultSeatCount is how many seats SeedReferenceData puts in the hall.
const DefaultSeatCount = 10

type CustomerFixture struct {
	Surname string
	Name    string
	Phone   string
	Email   string
}

func CreateTestCustomer(t *testing.T, db DBLike, c CustomerFixture) int64 {
	t.Helper()

	if c.Surname == "" {
		c.Surname = "Ivanov"
	}
	if c.Name == "" {
		c.Name = "Ivan"
	}
	var email any
	if c.Email != "" {
		email = c.Email
	}

	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO customers (surname, name, patronymic, phone, birth_date, email)
		 VALUES ($1, $2, 'Ivanovich', $3, '1990-05-17', $4) RETURNING id`,
		c.Surname, c.Name, c.Phone, email).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateTestSession(t *testing.T, db DBLike, filmTitle string, startsAt time.Time, duration time.Duration) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		"INSERT INTO sessions (film_title, starts_at, ends_at) VALUES ($1, $2, $3) RETURNING id",
		filmTitle, startsAt, startsAt.Add(duration)).Scan(&id)
	require.NoError(t, err)
	return id
}

func SeatIDByNumber(t *testing.T, db DBLike, number int) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(), "SELECT id FROM seats WHERE number = $1", number).Scan(&id)
	require.NoError(t, err)
	return id
}

func CustomerEmail(t *testing.T, db DBLike, customerID int64) string {
	t.Helper()

	var email *string
	err := db.QueryRow(context.Background(), "SELECT email FROM customers WHERE id = $1", customerID).Scan(&email)
	require.NoError(t, err)
	if email == nil {
		return ""
	}
	return *email
}

func CountTickets(t *testing.T, db DBLike, sessionID int64) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM tickets WHERE session_id = $1", sessionID).Scan(&n)
	require.NoError(t, err)
	return n
}

// TicketDocumentPath returns the stored reference, empty when unset.
func TicketDocumentPath(t *testing.T, db DBLike, ticketID int64) string {
	t.Helper()

	var path *string
	err := db.QueryRow(context.Background(), "SELECT document_path FROM tickets WHERE id = $1", ticketID).Scan(&path)
	require.NoError(t, err)
	if path == nil {
		return ""
	}
	return *path
}

// SeedReferenceData fills the hall with seats 1..DefaultSeatCount.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO seats (number)
		SELECT n FROM generate_series(1, $1::int) AS n
		ON CONFLICT (number) DO NOTHING;
	`, DefaultSeatCount)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables and reseeds reference data.
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
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
