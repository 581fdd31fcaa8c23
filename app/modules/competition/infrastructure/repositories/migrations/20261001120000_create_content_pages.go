package competitionmigrations

import (
	"context"
	"fmt"

	competitiondb "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating content_pages table...")
			if _, err := db.NewCreateTable().Model((*competitiondb.ContentPage)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create content_pages table: %w", err)
			}
			fmt.Println("content_pages table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping content_pages table...")
			if _, err := db.NewDropTable().Model((*competitiondb.ContentPage)(nil)).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop content_pages table: %w", err)
			}
			return nil
		},
	)
}
