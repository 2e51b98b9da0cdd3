package memory

import (
	"context"
	"errors"
	"testing"

	"grantcalc/internal/core"
	"grantcalc/internal/store"
)

func app(number string) core.Application {
	return core.Application{
		Number:  number,
		Country: "Peru",
		HostClubs: []core.Club{
			{Name: "Lima Norte", DDF: core.Money{Cents: 100000}},
		},
	}
}

func TestSaveGetRoundtrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Save(ctx, app("GG-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(ctx, "GG-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Country != "Peru" || len(got.HostClubs) != 1 || got.HostClubs[0].Name != "Lima Norte" {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := New()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveReplacesAndValidates(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Save(ctx, app("GG-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	updated := app("GG-1")
	updated.Country = "Bolivia"
	if err := s.Save(ctx, updated); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, _ := s.Get(ctx, "GG-1")
	if got.Country != "Bolivia" {
		t.Fatalf("expected replacement, got %+v", got)
	}

	bad := app("")
	if err := s.Save(ctx, bad); !errors.Is(err, core.ErrMissingNumber) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListSorted(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, n := range []string{"GG-3", "GG-1", "GG-2"} {
		if err := s.Save(ctx, app(n)); err != nil {
			t.Fatalf("save %s: %v", n, err)
		}
	}
	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"GG-1", "GG-2", "GG-3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestStoredSnapshotIsIsolated(t *testing.T) {
	s := New()
	ctx := context.Background()
	original := app("GG-1")
	if err := s.Save(ctx, original); err != nil {
		t.Fatalf("save: %v", err)
	}
	original.HostClubs[0].Name = "mutated"

	got, _ := s.Get(ctx, "GG-1")
	if got.HostClubs[0].Name != "Lima Norte" {
		t.Fatalf("store leaked caller mutation: %+v", got.HostClubs[0])
	}
}
