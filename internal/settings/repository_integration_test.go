//go:build integration

package settings

import (
	"context"
	"testing"

	"folio/internal/database/dbtest"
)

func TestRepository_Postgres(t *testing.T) {
	repo := NewRepository(dbtest.Start(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, map[string]string{KeySiteTitle: "One", KeyBio: "bio"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(ctx, map[string]string{KeySiteTitle: "Two"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if all[KeySiteTitle] != "Two" || all[KeyBio] != "bio" || len(all) != 2 {
		t.Errorf("Unexpected settings %v", all)
	}
}
