package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/geofence-console/internal/adapter/postgres"
	"github.com/heartmarshall/geofence-console/internal/adapter/postgres/testhelper"
)

const deactivateSQL = `UPDATE geofences SET active = false WHERE id = $1`

func geofenceActive(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	var active bool
	if err := pool.QueryRow(context.Background(), `SELECT active FROM geofences WHERE id = $1`, id).Scan(&active); err != nil {
		t.Fatalf("geofenceActive: %v", err)
	}
	return active
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	org := testhelper.SeedOrganization(t, pool)
	g := testhelper.SeedGeofence(t, pool, org.ID)

	err := postgres.NewTxManager(pool).RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, deactivateSQL, g.ID)
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}

	if geofenceActive(t, pool, g.ID) {
		t.Fatal("expected geofence to be inactive after commit")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	org := testhelper.SeedOrganization(t, pool)
	g := testhelper.SeedGeofence(t, pool, org.ID)
	sentinel := errors.New("not visible")

	err := postgres.NewTxManager(pool).RunInTx(context.Background(), func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, deactivateSQL, g.ID); err != nil {
			t.Fatalf("update inside tx: %v", err)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
	if !geofenceActive(t, pool, g.ID) {
		t.Fatal("expected rollback to keep the geofence active")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	org := testhelper.SeedOrganization(t, pool)
	g := testhelper.SeedGeofence(t, pool, org.ID)

	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("expected panic %q to be re-raised, got %v", "boom", r)
		}
		if !geofenceActive(t, pool, g.ID) {
			t.Fatal("expected rollback after panic")
		}
	}()

	_ = postgres.NewTxManager(pool).RunInTx(context.Background(), func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, deactivateSQL, g.ID); err != nil {
			t.Fatalf("update inside tx: %v", err)
		}
		panic("boom")
	})
}

func TestRunInTx_UncommittedInvisibleToPool(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	org := testhelper.SeedOrganization(t, pool)
	g := testhelper.SeedGeofence(t, pool, org.ID)

	err := postgres.NewTxManager(pool).RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx, deactivateSQL, g.ID); err != nil {
			return err
		}

		var active bool
		if err := q.QueryRow(ctx, `SELECT active FROM geofences WHERE id = $1`, g.ID).Scan(&active); err != nil {
			return err
		}
		if active {
			t.Error("tx should see its own update")
		}
		if !geofenceActive(t, pool, g.ID) {
			t.Error("uncommitted update leaked outside the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}
}

func TestRunInTx_NestedFailureRollsBackSavepointOnly(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	org := testhelper.SeedOrganization(t, pool)
	outer := testhelper.SeedGeofence(t, pool, org.ID)
	inner := testhelper.SeedGeofence(t, pool, org.ID)
	tm := postgres.NewTxManager(pool)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, deactivateSQL, outer.ID); err != nil {
			return err
		}

		innerErr := tm.RunInTx(ctx, func(ctx context.Context) error {
			if _, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, deactivateSQL, inner.ID); err != nil {
				return err
			}
			return errors.New("inner failed")
		})
		if innerErr == nil {
			t.Error("expected inner error")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}

	if geofenceActive(t, pool, outer.ID) {
		t.Error("outer update should be committed")
	}
	if !geofenceActive(t, pool, inner.ID) {
		t.Error("inner update should be rolled back")
	}
}
