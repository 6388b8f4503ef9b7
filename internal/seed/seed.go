// Package seed fills an empty site with sample content for local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"folio/internal/media"
	"folio/internal/posts"
	"folio/internal/settings"
)

// Content is the set of services seeding writes through.
type Content struct {
	Posts    *posts.Service
	Media    *media.Service
	Settings *settings.Service
}

// Result counts what Run created.
type Result struct {
	Categories int
	Posts      int
	Photos     int
	Videos     int
	Settings   int
}

var categories = []posts.CreateCategoryRequest{
	{Name: "Engineering"},
	{Name: "Photography"},
	{Name: "Travel"},
}

var samplePosts = []posts.CreatePostRequest{
	{
		Title:     "Hello, world",
		Excerpt:   "Why this site exists and what to expect here.",
		Content:   "This is the first post on the new site.\n\nExpect notes on engineering, photography and the occasional trip report.",
		Category:  "engineering",
		Tags:      []string{"meta", "intro"},
		Published: true,
	},
	{
		Title:     "Shooting at golden hour",
		Excerpt:   "A short field guide to warm light.",
		Content:   "Golden hour is the hour after sunrise and before sunset.\n\nKeep the sun low and to the side, and expose for the highlights.",
		Category:  "photography",
		Tags:      []string{"light", "guide"},
		Published: true,
	},
	{
		Title:    "Notes from the road (draft)",
		Excerpt:  "Unfinished travel notes.",
		Content:  "Draft content that only shows up in the admin area.",
		Category: "travel",
		Tags:     []string{"travel"},
	},
}

var samplePhotos = []media.CreateItemRequest{
	{Title: "Dunes at dawn", URL: "https://images.unsplash.com/photo-1509316785289-025f5b846b35", Category: "portfolio", SortOrder: 1},
	{Title: "Harbor lights", URL: "https://images.unsplash.com/photo-1493246507139-91e8fad9978e", Category: "travel", SortOrder: 2},
	{Title: "Forest path", URL: "https://images.unsplash.com/photo-1441974231531-c6227db76b6e", Category: "portfolio", SortOrder: 3},
}

var sampleVideos = []media.CreateItemRequest{
	{Title: "Showreel", URL: "https://vimeo.com/76979871", Description: "Selected work.", SortOrder: 1},
}

var sampleSettings = map[string]string{
	settings.KeySiteTitle:       "Folio",
	settings.KeyTagline:         "Writing, photography and video",
	settings.KeyBio:             "I build software and make pictures.\n\nThis site collects both.",
	settings.KeySponsorshipText: "Brands and creators can sponsor posts or commission photo work.",
	settings.KeyContactEmail:    "hello@example.com",
}

// Run creates the sample content. Existing rows are left alone, so running it
// twice is harmless.
func Run(ctx context.Context, c Content) (*Result, error) {
	res := &Result{}

	for _, req := range categories {
		_, err := c.Posts.CreateCategory(ctx, req)
		switch {
		case errors.Is(err, posts.ErrSlugExists):
			continue
		case err != nil:
			return res, fmt.Errorf("seed category %q: %w", req.Name, err)
		}
		res.Categories++
	}

	for _, req := range samplePosts {
		_, err := c.Posts.CreatePost(ctx, req)
		switch {
		case errors.Is(err, posts.ErrSlugExists):
			continue
		case err != nil:
			return res, fmt.Errorf("seed post %q: %w", req.Title, err)
		}
		res.Posts++
	}

	var err error
	if res.Photos, err = seedGallery(ctx, c.Media, media.KindPhoto, samplePhotos); err != nil {
		return res, err
	}
	if res.Videos, err = seedGallery(ctx, c.Media, media.KindVideo, sampleVideos); err != nil {
		return res, err
	}

	existing, err := c.Settings.All(ctx)
	if err != nil {
		return res, fmt.Errorf("seed settings: %w", err)
	}
	missing := map[string]string{}
	for k, v := range sampleSettings {
		if _, ok := existing[k]; !ok {
			missing[k] = v
		}
	}
	if len(missing) > 0 {
		if _, err := c.Settings.Update(ctx, missing); err != nil {
			return res, fmt.Errorf("seed settings: %w", err)
		}
		res.Settings = len(missing)
	}

	slog.Info("Seed complete",
		"categories", res.Categories,
		"posts", res.Posts,
		"photos", res.Photos,
		"videos", res.Videos,
		"settings", res.Settings,
	)
	return res, nil
}

// seedGallery only fills an empty gallery.
func seedGallery(ctx context.Context, svc *media.Service, kind media.Kind, items []media.CreateItemRequest) (int, error) {
	current, err := svc.List(ctx, kind, "")
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", kind.Plural(), err)
	}
	if len(current) > 0 {
		return 0, nil
	}

	for _, req := range items {
		if _, err := svc.Create(ctx, kind, req); err != nil {
			return 0, fmt.Errorf("seed %s %q: %w", kind, req.Title, err)
		}
	}
	return len(items), nil
}
