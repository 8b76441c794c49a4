package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	org := SeedOrganization(t, pool)
	g := SeedGeofence(t, pool, org.ID)

	var (
		name     string
		polyType string
	)
	err := pool.QueryRow(
		context.Background(),
		`SELECT name, polygon_json->>'type' FROM geofences WHERE id = $1 AND organization_id = $2`,
		g.ID, org.ID,
	).Scan(&name, &polyType)
	if err != nil {
		t.Fatalf("expected geofence in DB, got error: %v", err)
	}

	if name != g.Name {
		t.Fatalf("expected name %q, got %q", g.Name, name)
	}
	if polyType != "Polygon" {
		t.Fatalf("expected Polygon, got %q", polyType)
	}
}

func TestSetupTestDB_SessionSettings(t *testing.T) {
	pool := SetupTestDB(t)

	var appName, timeout string
	err := pool.QueryRow(context.Background(),
		`SELECT current_setting('application_name'), current_setting('statement_timeout')`,
	).Scan(&appName, &timeout)
	if err != nil {
		t.Fatalf("query settings: %v", err)
	}

	if appName != "geofence-api" {
		t.Errorf("application_name = %q, want geofence-api", appName)
	}
	if timeout != "30s" {
		t.Errorf("statement_timeout = %q, want 30s", timeout)
	}
}
