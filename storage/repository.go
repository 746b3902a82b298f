package storage

import (
	"encoding/json"
	"errors"
	"log/slog"

	"blocktrack/core/types"
)

// Persisted document keys. Each key holds the literal JSON array of the
// entity shapes; there is no schema version tag.
var (
	keyProducts     = []byte("blocktrack/products")
	keyParticipants = []byte("blocktrack/participants")
	keyPayments     = []byte("blocktrack/payments")
)

// Repository persists the three entity documents. Reads never fail the
// caller: a missing or unreadable document falls back to the built-in seed
// set. Writes are best-effort; failures are logged and swallowed because the
// in-memory state stays authoritative for the running session. The repository
// assumes a single writer and performs no locking of its own.
type Repository struct {
	db     Database
	logger *slog.Logger
}

// NewRepository wires a repository over the given key-value backend. A nil
// logger falls back to the process default.
func NewRepository(db Database, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func loadDocument[T any](r *Repository, key []byte, seed func() []T) []T {
	raw, err := r.db.Get(key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			r.logger.Warn("read persisted document failed, using seed data", "key", string(key), "error", err)
		}
		return seed()
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		r.logger.Warn("decode persisted document failed, using seed data", "key", string(key), "error", err)
		return seed()
	}
	return out
}

func (r *Repository) saveDocument(key []byte, doc any) {
	raw, err := json.Marshal(doc)
	if err != nil {
		r.logger.Warn("encode document failed, skipping persist", "key", string(key), "error", err)
		return
	}
	if err := r.db.Put(key, raw); err != nil {
		r.logger.Warn("persist document failed", "key", string(key), "error", err)
	}
}

// LoadEntities returns the persisted products and participants, falling back
// to seed data per document.
func (r *Repository) LoadEntities() ([]*types.Product, []*types.Participant) {
	products := loadDocument(r, keyProducts, SeedProducts)
	participants := loadDocument(r, keyParticipants, SeedParticipants)
	return products, participants
}

// SaveEntities persists both entity documents, best-effort.
func (r *Repository) SaveEntities(products []*types.Product, participants []*types.Participant) {
	r.saveDocument(keyProducts, products)
	r.saveDocument(keyParticipants, participants)
}

// LoadPayments returns the persisted ledger, falling back to seed data.
func (r *Repository) LoadPayments() []*types.Payment {
	return loadDocument(r, keyPayments, SeedPayments)
}

// SavePayments persists the ledger document, best-effort.
func (r *Repository) SavePayments(payments []*types.Payment) {
	r.saveDocument(keyPayments, payments)
}
