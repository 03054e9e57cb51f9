package gormrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"idleodyssey/internal/adapter/repo/gorm/model"
	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("IDLE_DB_DSN")
	if dsn == "" {
		t.Skip("IDLE_DB_DSN is required for integration test")
	}
	return dsn
}

func TestCatalogRepo_RoundTripDefaultCatalog(t *testing.T) {
	dsn := requireDSN(t)
	ctx := context.Background()
	db, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if _, err := ApplyMigrations(ctx, db, filepath.Join("..", "..", "..", "..", "migrations")); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	repo := NewCatalogRepo(db)
	want := idle.DefaultCatalog()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog mismatch after round trip:\n got=%+v\nwant=%+v", got, want)
	}

	// saving again replaces rather than appends
	small := idle.DefaultCatalog()
	small.Recipes = nil
	if err := repo.Save(ctx, small); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(got.Recipes) != 0 {
		t.Fatalf("expected no recipes after replace, got %d", len(got.Recipes))
	}
}

func TestCatalogRepo_LoadEmpty(t *testing.T) {
	dsn := requireDSN(t)
	ctx := context.Background()
	db, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if _, err := ApplyMigrations(ctx, db, filepath.Join("..", "..", "..", "..", "migrations")); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	_ = db.Exec("DELETE FROM " + model.TableNameCatalogMetum).Error

	if _, err := NewCatalogRepo(db).Load(ctx); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogRepo_SaveRejectsInvalid(t *testing.T) {
	bad := idle.DefaultCatalog()
	bad.Resources = nil
	// validation runs before any query, so a nil db is never touched
	if err := (CatalogRepo{}).Save(context.Background(), bad); !errors.Is(err, idle.ErrInvalidCatalog) {
		t.Fatalf("expected invalid catalog, got %v", err)
	}
}

func TestTxManager_JoinsOuterTransaction(t *testing.T) {
	dsn := requireDSN(t)
	ctx := context.Background()
	db, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if _, err := ApplyMigrations(ctx, db, filepath.Join("..", "..", "..", "..", "migrations")); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	repo := NewCatalogRepo(db)
	if err := repo.Save(ctx, idle.DefaultCatalog()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rollback := errors.New("rollback")
	err = NewTxManager(db).RunInTx(ctx, func(ctx context.Context) error {
		small := idle.DefaultCatalog()
		small.Recipes = nil
		if err := repo.Save(ctx, small); err != nil {
			return err
		}
		got, err := repo.Load(ctx)
		if err != nil {
			return err
		}
		if len(got.Recipes) != 0 {
			t.Errorf("load inside tx should see the uncommitted save, got %d recipes", len(got.Recipes))
		}
		return rollback
	})
	if !errors.Is(err, rollback) {
		t.Fatalf("expected rollback error, got %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load after rollback: %v", err)
	}
	if len(got.Recipes) != len(idle.DefaultCatalog().Recipes) {
		t.Fatalf("rolled back save leaked: recipes=%d", len(got.Recipes))
	}
}
