package application

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"guildcal/internal/domain"
)

func newTimezoneFixture(t *testing.T) (*TimezoneService, *fakePrefRepo) {
	t.Helper()
	prefs := newFakePrefRepo()
	svc, err := NewTimezoneService(prefs)
	if err != nil {
		t.Fatalf("NewTimezoneService: %v", err)
	}
	return svc, prefs
}

func TestSetUserTimezoneRejectsInvalidZone(t *testing.T) {
	svc, _ := newTimezoneFixture(t)
	for _, zone := range []string{"Mars/Olympus", ""} {
		if err := svc.SetUserTimezone(context.Background(), "u1", zone); !errors.Is(err, domain.ErrInvalidTimezone) {
			t.Errorf("SetUserTimezone(%q) = %v, want ErrInvalidTimezone", zone, err)
		}
	}
}

func TestResolveFallbackChain(t *testing.T) {
	svc, _ := newTimezoneFixture(t)
	ctx := context.Background()

	// Nothing set anywhere.
	if zone := svc.ResolveOrDefault(ctx, "g1", "u1"); zone != "UTC" {
		t.Errorf("zone = %q, want UTC fallback", zone)
	}

	// Guild display zones exist: first one wins.
	if err := svc.AddGuildTimezone(ctx, "g1", "Europe/Brussels"); err != nil {
		t.Fatalf("AddGuildTimezone: %v", err)
	}
	if err := svc.AddGuildTimezone(ctx, "g1", "America/New_York"); err != nil {
		t.Fatalf("AddGuildTimezone: %v", err)
	}
	if zone := svc.ResolveOrDefault(ctx, "g1", "u1"); zone != "Europe/Brussels" {
		t.Errorf("zone = %q, want first guild zone", zone)
	}

	// A user preference beats the guild zones.
	if err := svc.SetUserTimezone(ctx, "u1", "Asia/Tokyo"); err != nil {
		t.Fatalf("SetUserTimezone: %v", err)
	}
	if zone := svc.ResolveOrDefault(ctx, "g1", "u1"); zone != "Asia/Tokyo" {
		t.Errorf("zone = %q, want user preference", zone)
	}

	// Removing the preference falls back again.
	if err := svc.RemoveUserTimezone(ctx, "u1"); err != nil {
		t.Fatalf("RemoveUserTimezone: %v", err)
	}
	if zone := svc.ResolveOrDefault(ctx, "g1", "u1"); zone != "Europe/Brussels" {
		t.Errorf("zone = %q, want guild zone after removal", zone)
	}
}

func TestResolveCachesLookups(t *testing.T) {
	svc, prefs := newTimezoneFixture(t)
	ctx := context.Background()

	if err := svc.SetUserTimezone(ctx, "u1", "Asia/Tokyo"); err != nil {
		t.Fatalf("SetUserTimezone: %v", err)
	}
	prefs.userLoads = 0
	for i := 0; i < 3; i++ {
		if zone, ok := svc.Resolve(ctx, "u1"); !ok || zone != "Asia/Tokyo" {
			t.Fatalf("Resolve = %q, %v", zone, ok)
		}
	}
	if prefs.userLoads != 1 {
		t.Errorf("store loads = %d, want 1 (cached)", prefs.userLoads)
	}
}

func TestResolveCachesKnownUnset(t *testing.T) {
	svc, prefs := newTimezoneFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, ok := svc.Resolve(ctx, "u1"); ok {
			t.Fatal("Resolve reported a zone for an unset preference")
		}
	}
	if prefs.userLoads != 1 {
		t.Errorf("store loads = %d, want absence cached too", prefs.userLoads)
	}

	// Setting the preference must invalidate the cached absence.
	if err := svc.SetUserTimezone(ctx, "u1", "Asia/Tokyo"); err != nil {
		t.Fatalf("SetUserTimezone: %v", err)
	}
	if zone, ok := svc.Resolve(ctx, "u1"); !ok || zone != "Asia/Tokyo" {
		t.Errorf("Resolve after set = %q, %v, want Asia/Tokyo", zone, ok)
	}
}

func TestGuildTimezonesOrderAndIdempotence(t *testing.T) {
	svc, _ := newTimezoneFixture(t)
	ctx := context.Background()

	for _, zone := range []string{"Europe/Brussels", "America/New_York", "Europe/Brussels"} {
		if err := svc.AddGuildTimezone(ctx, "g1", zone); err != nil {
			t.Fatalf("AddGuildTimezone(%s): %v", zone, err)
		}
	}
	zones, err := svc.GuildTimezones(ctx, "g1")
	if err != nil {
		t.Fatalf("GuildTimezones: %v", err)
	}
	want := []string{"Europe/Brussels", "America/New_York"}
	if !reflect.DeepEqual(zones, want) {
		t.Errorf("zones = %v, want %v (insertion order, no duplicates)", zones, want)
	}
}

func TestRemoveGuildTimezone(t *testing.T) {
	svc, _ := newTimezoneFixture(t)
	ctx := context.Background()

	if err := svc.AddGuildTimezone(ctx, "g1", "Europe/Brussels"); err != nil {
		t.Fatalf("AddGuildTimezone: %v", err)
	}
	if err := svc.RemoveGuildTimezone(ctx, "g1", "Europe/Brussels"); err != nil {
		t.Fatalf("RemoveGuildTimezone: %v", err)
	}
	if err := svc.RemoveGuildTimezone(ctx, "g1", "Europe/Brussels"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for absent zone", err)
	}
}

func TestInvalidateGuildDropsCachedZones(t *testing.T) {
	svc, prefs := newTimezoneFixture(t)
	ctx := context.Background()

	if err := svc.AddGuildTimezone(ctx, "g1", "Europe/Brussels"); err != nil {
		t.Fatalf("AddGuildTimezone: %v", err)
	}
	if _, err := svc.GuildTimezones(ctx, "g1"); err != nil {
		t.Fatalf("GuildTimezones: %v", err)
	}

	// Simulate a guild reset wiping the backing store out of band.
	prefs.mu.Lock()
	delete(prefs.guildZones, "g1")
	prefs.mu.Unlock()

	svc.InvalidateGuild("g1")
	zones, err := svc.GuildTimezones(ctx, "g1")
	if err != nil {
		t.Fatalf("GuildTimezones: %v", err)
	}
	if len(zones) != 0 {
		t.Errorf("zones = %v, want reload after invalidation", zones)
	}
}
