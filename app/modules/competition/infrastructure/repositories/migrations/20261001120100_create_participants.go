package competitionmigrations

import (
	"context"
	"fmt"

	competitiondb "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating participants table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().Model((*competitiondb.Participant)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create participants table: %w", err)
			}

			// Directory listing order.
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_participants_created_at_id ON participants(created_at, id);
			`); err != nil {
				return fmt.Errorf("failed to create participants index: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping participants table...")
		if _, err := db.NewDropTable().Model((*competitiondb.Participant)(nil)).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop participants table: %w", err)
		}
		return nil
	})
}
