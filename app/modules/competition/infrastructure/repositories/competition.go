package competitiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a content page does not exist.
var ErrNotFound = errors.New("content page not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new competition repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// LoadPage retrieves the body of a content page.
func (r *Impl) LoadPage(ctx context.Context, db bun.IDB, pageID string) (string, error) {
	db = r.resolveDB(db)
	page := new(ContentPage)
	err := db.NewSelect().
		Model(page).
		Where("page_id = ?", pageID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to load content page %q: %w", pageID, err)
	}
	return page.Body, nil
}

// SavePage creates or overwrites a content page. There is no version check:
// the last save wins.
func (r *Impl) SavePage(ctx context.Context, db bun.IDB, pageID, text string) error {
	db = r.resolveDB(db)
	page := &ContentPage{
		PageID:    pageID,
		Body:      text,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := db.NewInsert().
		Model(page).
		On("CONFLICT (page_id) DO UPDATE").
		Set("body = EXCLUDED.body").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save content page %q: %w", pageID, err)
	}
	return nil
}

// ListParticipants returns every participant ordered by creation time, then id.
func (r *Impl) ListParticipants(ctx context.Context, db bun.IDB) ([]Participant, error) {
	db = r.resolveDB(db)
	var participants []Participant
	err := db.NewSelect().
		Model(&participants).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	if participants == nil {
		participants = []Participant{}
	}
	return participants, nil
}

// UpsertParticipants inserts new participants and refreshes the names of
// existing ones. created_at is left untouched on conflict so the directory
// order stays stable.
func (r *Impl) UpsertParticipants(ctx context.Context, db bun.IDB, participants []Participant) error {
	if len(participants) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&participants).
		On("CONFLICT (id) DO UPDATE").
		Set("full_name = EXCLUDED.full_name").
		Set("display_name = EXCLUDED.display_name").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert participants: %w", err)
	}
	return nil
}
