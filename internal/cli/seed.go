package cli

import (
	"fmt"

	"folio/internal/database"
	"folio/internal/media"
	"folio/internal/posts"
	"folio/internal/seed"
	"folio/internal/settings"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample categories, posts, photos, videos and settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(ctx, db); err != nil {
				return err
			}

			// Seeding bypasses the cache; the site's TTLs pick up the new rows.
			res, err := seed.Run(ctx, seed.Content{
				Posts:    posts.NewService(posts.NewRepository(db), nil),
				Media:    media.NewService(media.NewRepository(db), nil, nil),
				Settings: settings.NewService(settings.NewRepository(db), nil),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Seeded %d categories, %d posts, %d photos, %d videos, %d settings\n",
				res.Categories, res.Posts, res.Photos, res.Videos, res.Settings)
			return nil
		},
	}
}
