package competitiondb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for competition persistence.
type Repository interface {
	// LoadPage returns the text stored under pageID, or ErrNotFound.
	LoadPage(ctx context.Context, db bun.IDB, pageID string) (string, error)

	// SavePage overwrites the text stored under pageID.
	SavePage(ctx context.Context, db bun.IDB, pageID, text string) error

	// ListParticipants returns the directory in insertion order.
	ListParticipants(ctx context.Context, db bun.IDB) ([]Participant, error)

	// UpsertParticipants creates or updates directory rows.
	UpsertParticipants(ctx context.Context, db bun.IDB, participants []Participant) error
}
