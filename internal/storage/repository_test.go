package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"grantcalc/internal/core"
	"grantcalc/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "grants.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testApplication() core.Application {
	return core.Application{
		Number:  "GG-2026-007",
		Country: "Ghana",
		HostClubs: []core.Club{
			{Name: "Accra South", DDF: core.Money{Cents: 1000000}, CashTRF: core.Money{Cents: 500000}},
			{Name: "Kumasi", CashDirect: core.Money{Cents: 250000}},
		},
		InternationalClubs: []core.Club{
			{Name: "Bergen", DDF: core.Money{Cents: 200000}},
		},
		OtherDonors: []core.Donor{
			{Name: "Local Partner", AmountDirect: core.Money{Cents: 100000}, AmountTRF: core.Money{Cents: 50000}},
		},
		EndowedGift: core.Money{Cents: 75000},
	}
}

func TestSaveGetRoundtrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	want := testApplication()

	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(ctx, want.Number)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Country != want.Country || got.EndowedGift != want.EndowedGift {
		t.Fatalf("header mismatch: %+v", got)
	}
	if len(got.HostClubs) != 2 || len(got.InternationalClubs) != 1 || len(got.OtherDonors) != 1 {
		t.Fatalf("row counts mismatch: %+v", got)
	}
	// Input order is preserved per group
	if got.HostClubs[0].Name != "Accra South" || got.HostClubs[1].Name != "Kumasi" {
		t.Fatalf("host order lost: %+v", got.HostClubs)
	}
	if got.HostClubs[0].CashTRF.Cents != 500000 {
		t.Fatalf("amounts lost: %+v", got.HostClubs[0])
	}
	if got.OtherDonors[0].AmountTRF.Cents != 50000 {
		t.Fatalf("donor amounts lost: %+v", got.OtherDonors[0])
	}
}

func TestSaveReplacesSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testApplication()
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := testApplication()
	second.Country = "Togo"
	second.HostClubs = second.HostClubs[:1]
	second.OtherDonors = nil
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got, err := repo.Get(ctx, first.Number)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Country != "Togo" || len(got.HostClubs) != 1 || len(got.OtherDonors) != 0 {
		t.Fatalf("snapshot not replaced: %+v", got)
	}
}

func TestGetMissingApplication(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveRejectsInvalidApplication(t *testing.T) {
	repo := newTestRepo(t)
	bad := testApplication()
	bad.HostClubs[0].DDF.Cents = -1
	if err := repo.Save(context.Background(), bad); !errors.Is(err, core.ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, n := range []string{"GG-B", "GG-A"} {
		app := testApplication()
		app.Number = n
		if err := repo.Save(ctx, app); err != nil {
			t.Fatalf("save %s: %v", n, err)
		}
	}
	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0] != "GG-A" || got[1] != "GG-B" {
		t.Fatalf("got %v", got)
	}
}
