// Package directory turns extraction results into a persistent speaker
// directory: one record per clustered entity, with a stable identifier, a
// primary role, and the evidence backing the entry.
package directory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quorumlabs/rollcall/internal/extract"
)

// recordNamespace seeds deterministic record IDs. The same canonical name
// always maps to the same UUID, so repeated runs upsert rather than
// duplicate.
var recordNamespace = uuid.MustParse("9f2c1a44-83b7-4f0e-b5c6-2d94d3a1e7f0")

// Record is one speaker directory entry.
type Record struct {
	// ID is a deterministic UUID derived from Name.
	ID string

	// Name is the canonical form of the entity cluster.
	Name string

	// LastName is the final token of Name, for alphabetical indexing.
	LastName string

	// PrimaryRole is the highest-priority role observed across the
	// cluster's mentions.
	PrimaryRole extract.Role

	// Tier is the canonical entity's confidence tier.
	Tier extract.Tier

	// Frequency is the cluster's total mention count.
	Frequency int

	// DocumentCount is the largest document count among cluster members.
	// Members may share documents, so summing would overcount.
	DocumentCount int

	// Variants lists every raw surface form observed across the cluster,
	// sorted and deduplicated.
	Variants []string

	// Affiliations lists organizations observed with the speaker, most
	// frequent first.
	Affiliations []string

	// SampleContext is one representative context window from the
	// canonical entity.
	SampleContext string

	// RosterMatch is the official roster name this record was matched to,
	// when a roster was supplied. Empty when unmatched.
	RosterMatch string

	// RosterScore is the similarity score behind RosterMatch.
	RosterScore float64

	// Verified marks a record confirmed by hand. The builder always emits
	// false; the flag survives re-runs because upserts never overwrite it.
	Verified bool

	// Notes holds free-form curator annotations, preserved across upserts
	// like Verified.
	Notes string

	// CreatedAt and UpdatedAt are set by the store on persistence.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordID returns the deterministic UUID for a canonical name.
func RecordID(name string) string {
	return uuid.NewSHA1(recordNamespace, []byte(name)).String()
}

// Store persists directory records.
type Store interface {
	// Migrate creates the backing schema if it does not exist.
	Migrate(ctx context.Context) error

	// Upsert creates or replaces the record with the same ID.
	Upsert(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns (nil, nil) when absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records, optionally filtered by tier, ordered by
	// frequency descending then name.
	List(ctx context.Context, tier extract.Tier) ([]Record, error)

	// Delete removes a record by ID. Deleting an absent record is not an
	// error.
	Delete(ctx context.Context, id string) error
}
