package quote

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupQuoteTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Quote{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRepositoryCRUD(t *testing.T) {
	db := setupQuoteTestDB(t)
	repo := NewRepository()

	q := Quote{
		NegotiationID: 1,
		Amount:        decimal.NewFromInt(250000),
		Status:        StatusDraft,
	}
	if err := repo.Create(db, &q); err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.ID == 0 {
		t.Fatal("id not generated")
	}

	got, err := repo.FindByID(db, q.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !got.Amount.Equal(decimal.NewFromInt(250000)) {
		t.Fatalf("amount round-trip failed: %s", got.Amount)
	}

	if err := repo.Update(db, q.ID, map[string]interface{}{"status": StatusSent}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.FindByID(db, q.ID)
	if got.Status != StatusSent {
		t.Fatalf("expected sent, got %q", got.Status)
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Fatal("updatedAt not refreshed")
	}

	if err := repo.Delete(db, q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(db, q.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestRepositoryNotFound(t *testing.T) {
	db := setupQuoteTestDB(t)
	repo := NewRepository()

	if err := repo.Update(db, 999, map[string]interface{}{"status": StatusSent}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}
	if err := repo.Delete(db, 999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found on delete, got %v", err)
	}
}

func TestListByNegotiationNewestFirst(t *testing.T) {
	db := setupQuoteTestDB(t)
	repo := NewRepository()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		q := Quote{
			NegotiationID: 7,
			Amount:        decimal.NewFromInt(int64(100 * (i + 1))),
			Status:        StatusDraft,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(db, &q); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	// a quote under another negotiation must not leak in
	other := Quote{NegotiationID: 8, Amount: decimal.NewFromInt(999), Status: StatusDraft}
	if err := repo.Create(db, &other); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := repo.ListByNegotiation(db, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3, got %d", len(list))
	}
	if !list[0].Amount.Equal(decimal.NewFromInt(300)) || !list[2].Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected newest first, got %s .. %s", list[0].Amount, list[2].Amount)
	}
}

func TestItemsRoundTrip(t *testing.T) {
	db := setupQuoteTestDB(t)
	repo := NewRepository()

	q := Quote{
		NegotiationID: 1,
		Amount:        decimal.NewFromInt(400000),
		Status:        StatusDraft,
		Items: []Item{
			{Name: "performance", Quantity: 2, UnitPrice: decimal.NewFromInt(150000), LineTotal: decimal.NewFromInt(300000)},
			{Name: "travel", Quantity: 1, UnitPrice: decimal.NewFromInt(100000), LineTotal: decimal.NewFromInt(100000)},
		},
	}
	if err := repo.Create(db, &q); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByID(db, q.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].Name != "performance" || got.Items[0].Quantity != 2 {
		t.Fatalf("item round-trip failed: %+v", got.Items[0])
	}
	if !got.Items[0].LineTotal.Equal(decimal.NewFromInt(300000)) {
		t.Fatalf("line total round-trip failed: %s", got.Items[0].LineTotal)
	}

	// wholesale replacement, not a merge
	if err := repo.Update(db, q.ID, map[string]interface{}{
		"items": ItemsJSON([]Item{{Name: "performance", Quantity: 1, UnitPrice: decimal.NewFromInt(150000), LineTotal: decimal.NewFromInt(150000)}}),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.FindByID(db, q.ID)
	if len(got.Items) != 1 {
		t.Fatalf("expected items replaced wholesale, got %d", len(got.Items))
	}
}
