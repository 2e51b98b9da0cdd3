// Package storage persists application snapshots to SQLite. Only the raw
// input records are stored; funding results are always rederived.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"grantcalc/internal/core"
	"grantcalc/internal/store"

	_ "modernc.org/sqlite"
)

const (
	roleHost          = "host"
	roleInternational = "international"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save implements store.ApplicationWriter. Saving an existing application
// number replaces the previous snapshot atomically.
func (r *SQLiteRepository) Save(ctx context.Context, app core.Application) error {
	if err := app.Validate(); err != nil {
		return fmt.Errorf("validate application: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO applications (number, country, endowed_gift_cents)
		VALUES (?, ?, ?)
		ON CONFLICT(number) DO UPDATE SET
			country = excluded.country,
			endowed_gift_cents = excluded.endowed_gift_cents,
			updated_at = CURRENT_TIMESTAMP`,
		app.Number, app.Country, app.EndowedGift.Cents)
	if err != nil {
		return fmt.Errorf("upsert application: %w", err)
	}

	for _, table := range []string{"clubs", "donors"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE application_number = ?", app.Number); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := insertClubs(ctx, tx, app.Number, roleHost, app.HostClubs); err != nil {
		return err
	}
	if err := insertClubs(ctx, tx, app.Number, roleInternational, app.InternationalClubs); err != nil {
		return err
	}
	for i, d := range app.OtherDonors {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO donors (application_number, position, name, amount_direct_cents, amount_trf_cents)
			VALUES (?, ?, ?, ?, ?)`,
			app.Number, i, d.Name, d.AmountDirect.Cents, d.AmountTRF.Cents)
		if err != nil {
			return fmt.Errorf("insert donor %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Application saved",
		"application_number", app.Number,
		"host_clubs", len(app.HostClubs),
		"international_clubs", len(app.InternationalClubs),
		"other_donors", len(app.OtherDonors))
	return nil
}

func insertClubs(ctx context.Context, tx *sql.Tx, number, role string, clubs []core.Club) error {
	for i, c := range clubs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO clubs (application_number, role, position, name, ddf_cents, cash_direct_cents, cash_trf_cents)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			number, role, i, c.Name, c.DDF.Cents, c.CashDirect.Cents, c.CashTRF.Cents)
		if err != nil {
			return fmt.Errorf("insert %s club %d: %w", role, i, err)
		}
	}
	return nil
}

// Get implements store.ApplicationReader.
func (r *SQLiteRepository) Get(ctx context.Context, number string) (core.Application, error) {
	app := core.Application{Number: number}

	err := r.db.QueryRowContext(ctx,
		"SELECT country, endowed_gift_cents FROM applications WHERE number = ?", number).
		Scan(&app.Country, &app.EndowedGift.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Application{}, store.ErrNotFound
	}
	if err != nil {
		return core.Application{}, fmt.Errorf("select application: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT role, name, ddf_cents, cash_direct_cents, cash_trf_cents
		FROM clubs WHERE application_number = ? ORDER BY role, position`, number)
	if err != nil {
		return core.Application{}, fmt.Errorf("select clubs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var role string
		var c core.Club
		if err := rows.Scan(&role, &c.Name, &c.DDF.Cents, &c.CashDirect.Cents, &c.CashTRF.Cents); err != nil {
			return core.Application{}, fmt.Errorf("scan club: %w", err)
		}
		if role == roleHost {
			app.HostClubs = append(app.HostClubs, c)
		} else {
			app.InternationalClubs = append(app.InternationalClubs, c)
		}
	}
	if err := rows.Err(); err != nil {
		return core.Application{}, fmt.Errorf("iterate clubs: %w", err)
	}

	donorRows, err := r.db.QueryContext(ctx, `
		SELECT name, amount_direct_cents, amount_trf_cents
		FROM donors WHERE application_number = ? ORDER BY position`, number)
	if err != nil {
		return core.Application{}, fmt.Errorf("select donors: %w", err)
	}
	defer donorRows.Close()
	for donorRows.Next() {
		var d core.Donor
		if err := donorRows.Scan(&d.Name, &d.AmountDirect.Cents, &d.AmountTRF.Cents); err != nil {
			return core.Application{}, fmt.Errorf("scan donor: %w", err)
		}
		app.OtherDonors = append(app.OtherDonors, d)
	}
	if err := donorRows.Err(); err != nil {
		return core.Application{}, fmt.Errorf("iterate donors: %w", err)
	}

	return app, nil
}

// List implements store.ApplicationReader.
func (r *SQLiteRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT number FROM applications ORDER BY number")
	if err != nil {
		return nil, fmt.Errorf("select application numbers: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan number: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate numbers: %w", err)
	}
	return numbers, nil
}
