// Package store persists analysis results.
//
// A Result is one augmented graph: the serialized graph with its attribute
// bags, the options that produced it, and the warnings raised along the
// way. Results are keyed by UUID so a server can hand out stable links to
// long-running analyses.
//
// Two backends are provided: an in-memory store for tests and single-shot
// CLI runs, and a MongoDB store for server deployments.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/cverad/connectome/pkg/errors"
)

// Result is a persisted analysis outcome.
type Result struct {
	ID        string          `bson:"_id" json:"id"`
	Name      string          `bson:"name" json:"name"`
	GraphHash string          `bson:"graph_hash" json:"graph_hash"`
	Atlas     string          `bson:"atlas,omitempty" json:"atlas,omitempty"`
	Method    string          `bson:"method" json:"method"`
	Transform string          `bson:"transform" json:"transform"`
	Warnings  []errors.Warning `bson:"warnings,omitempty" json:"warnings,omitempty"`
	Graph     json.RawMessage `bson:"graph" json:"graph"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
}

// Summary is the listing view of a result, without the graph payload.
type Summary struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	GraphHash string    `bson:"graph_hash" json:"graph_hash"`
	Method    string    `bson:"method" json:"method"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// New creates a result with a fresh UUID and timestamp.
func New(name, graphHash string) *Result {
	return &Result{
		ID:        uuid.NewString(),
		Name:      name,
		GraphHash: graphHash,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for result storage backends.
type Store interface {
	// Get retrieves a result by ID. Returns RESULT_NOT_FOUND if absent.
	Get(ctx context.Context, id string) (*Result, error)

	// Put stores a result, replacing any existing one with the same ID.
	Put(ctx context.Context, r *Result) error

	// List returns summaries of the most recent results, newest first.
	// A limit of 0 means no limit.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes a result. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func (r *Result) summary() Summary {
	return Summary{
		ID:        r.ID,
		Name:      r.Name,
		GraphHash: r.GraphHash,
		Method:    r.Method,
		CreatedAt: r.CreatedAt,
	}
}
