package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quorumlabs/rollcall/internal/extract"
)

// Schema is the SQL DDL for the speakers table. Execute it via
// [PostgresStore.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS speakers (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    last_name       TEXT NOT NULL DEFAULT '',
    primary_role    TEXT NOT NULL DEFAULT 'unknown',
    tier            TEXT NOT NULL DEFAULT 'low',
    frequency       INTEGER NOT NULL DEFAULT 0,
    document_count  INTEGER NOT NULL DEFAULT 0,
    variants        JSONB NOT NULL DEFAULT '[]',
    affiliations    JSONB NOT NULL DEFAULT '[]',
    sample_context  TEXT NOT NULL DEFAULT '',
    roster_match    TEXT NOT NULL DEFAULT '',
    roster_score    DOUBLE PRECISION NOT NULL DEFAULT 0,
    verified        BOOLEAN NOT NULL DEFAULT FALSE,
    notes           TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_speakers_last_name ON speakers(last_name);
CREATE INDEX IF NOT EXISTS idx_speakers_tier ON speakers(tier);
`

// DB is the database interface used by [PostgresStore]. Both *pgxpool.Pool
// and *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is a [Store] backed by a PostgreSQL database.
// Variant and affiliation lists are serialised as JSONB.
type PostgresStore struct {
	db DB
}

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new [PostgresStore] that uses the given database
// connection or pool. The caller is responsible for calling
// [PostgresStore.Migrate] to ensure the schema exists before issuing queries.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate executes the [Schema] DDL against the database, creating the
// speakers table and indexes if they do not already exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, Schema)
	if err != nil {
		return fmt.Errorf("directory: migrate: %w", err)
	}
	return nil
}

// Upsert creates or replaces the record with the same ID. Repeated extraction
// runs refresh existing entries rather than duplicating them. The verified
// flag and notes are curator-owned: an upsert never overwrites them, so
// manual enhancement survives re-extraction.
func (s *PostgresStore) Upsert(ctx context.Context, rec *Record) error {
	variantsJSON, err := json.Marshal(emptySlice(rec.Variants))
	if err != nil {
		return fmt.Errorf("directory: marshal variants: %w", err)
	}
	affiliationsJSON, err := json.Marshal(emptySlice(rec.Affiliations))
	if err != nil {
		return fmt.Errorf("directory: marshal affiliations: %w", err)
	}

	const query = `
		INSERT INTO speakers (
			id, name, last_name, primary_role, tier,
			frequency, document_count, variants, affiliations, sample_context,
			roster_match, roster_score
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			last_name = EXCLUDED.last_name,
			primary_role = EXCLUDED.primary_role,
			tier = EXCLUDED.tier,
			frequency = EXCLUDED.frequency,
			document_count = EXCLUDED.document_count,
			variants = EXCLUDED.variants,
			affiliations = EXCLUDED.affiliations,
			sample_context = EXCLUDED.sample_context,
			roster_match = EXCLUDED.roster_match,
			roster_score = EXCLUDED.roster_score,
			updated_at = now()
		RETURNING verified, notes, created_at, updated_at`

	err = s.db.QueryRow(ctx, query,
		rec.ID, rec.Name, rec.LastName, string(rec.PrimaryRole), string(rec.Tier),
		rec.Frequency, rec.DocumentCount, variantsJSON, affiliationsJSON, rec.SampleContext,
		rec.RosterMatch, rec.RosterScore,
	).Scan(&rec.Verified, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("directory: upsert %q: %w", rec.Name, err)
	}
	return nil
}

// Get retrieves a record by ID. It returns (nil, nil) if no record with the
// given ID exists.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Record, error) {
	const query = `
		SELECT id, name, last_name, primary_role, tier,
		       frequency, document_count, variants, affiliations, sample_context,
		       roster_match, roster_score, verified, notes, created_at, updated_at
		FROM speakers
		WHERE id = $1`

	rec, err := scanRecord(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("directory: get %q: %w", id, err)
	}
	return rec, nil
}

// List returns all records, optionally filtered by tier, ordered by frequency
// descending then name. A zero tier returns everything.
func (s *PostgresStore) List(ctx context.Context, tier extract.Tier) ([]Record, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if tier == "" {
		const query = `
			SELECT id, name, last_name, primary_role, tier,
			       frequency, document_count, variants, affiliations, sample_context,
			       roster_match, roster_score, verified, notes, created_at, updated_at
			FROM speakers
			ORDER BY frequency DESC, name`
		rows, err = s.db.Query(ctx, query)
	} else {
		const query = `
			SELECT id, name, last_name, primary_role, tier,
			       frequency, document_count, variants, affiliations, sample_context,
			       roster_match, roster_score, verified, notes, created_at, updated_at
			FROM speakers
			WHERE tier = $1
			ORDER BY frequency DESC, name`
		rows, err = s.db.Query(ctx, query, string(tier))
	}
	if err != nil {
		return nil, fmt.Errorf("directory: list: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("directory: list scan: %w", scanErr)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("directory: list: %w", err)
	}
	return records, nil
}

// Delete removes a record by ID. Deleting a non-existent record is not an
// error.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM speakers WHERE id = $1`
	_, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("directory: delete %q: %w", id, err)
	}
	return nil
}

// scanRecord reads one row into a [Record], deserialising the JSONB columns.
func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var role, tier string
	var variantsJSON, affiliationsJSON []byte

	if err := row.Scan(
		&rec.ID, &rec.Name, &rec.LastName, &role, &tier,
		&rec.Frequency, &rec.DocumentCount, &variantsJSON, &affiliationsJSON, &rec.SampleContext,
		&rec.RosterMatch, &rec.RosterScore, &rec.Verified, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	rec.PrimaryRole = extract.Role(role)
	rec.Tier = extract.Tier(tier)

	if err := json.Unmarshal(variantsJSON, &rec.Variants); err != nil {
		return nil, fmt.Errorf("unmarshal variants: %w", err)
	}
	if err := json.Unmarshal(affiliationsJSON, &rec.Affiliations); err != nil {
		return nil, fmt.Errorf("unmarshal affiliations: %w", err)
	}
	return &rec, nil
}

// emptySlice returns s if non-nil, otherwise an empty non-nil slice. This
// ensures JSON marshalling produces "[]" instead of "null".
func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
