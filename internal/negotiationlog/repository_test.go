package negotiationlog

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&NegotiationLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestAppendDefaults(t *testing.T) {
	db := setupLogTestDB(t)
	repo := NewRepository()

	entry := NegotiationLog{
		NegotiationID: 1,
		Type:          TypeStatusChange,
		Content:       "pending → in-progress",
	}
	if err := repo.Append(db, &entry); err != nil {
		t.Fatalf("append: %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Fatal("id not generated")
	}
	if entry.Date.IsZero() {
		t.Fatal("date not defaulted")
	}
	if entry.User != SystemUser {
		t.Fatalf("expected system actor, got %q", entry.User)
	}
}

func TestAppendKeepsExplicitValues(t *testing.T) {
	db := setupLogTestDB(t)
	repo := NewRepository()

	matchID := uint(42)
	date := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	entry := NegotiationLog{
		NegotiationID: 1,
		MatchID:       &matchID,
		Date:          date,
		Type:          TypeQuoteCreated,
		Content:       "quote created with amount 1000000.00",
		User:          "kim",
	}
	if err := repo.Append(db, &entry); err != nil {
		t.Fatalf("append: %v", err)
	}

	var got NegotiationLog
	if err := db.First(&got, "id = ?", entry.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.User != "kim" {
		t.Fatalf("actor overwritten: %q", got.User)
	}
	if got.MatchID == nil || *got.MatchID != 42 {
		t.Fatalf("matchId lost: %v", got.MatchID)
	}
	if !got.Date.Equal(date) {
		t.Fatalf("date overwritten: %v", got.Date)
	}
}

func TestListByNegotiationNewestFirst(t *testing.T) {
	db := setupLogTestDB(t)
	repo := NewRepository()

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i, content := range []string{"oldest", "middle", "newest"} {
		entry := NegotiationLog{
			NegotiationID: 5,
			Date:          base.Add(time.Duration(i) * time.Hour),
			Type:          TypeStatusChange,
			Content:       content,
		}
		if err := repo.Append(db, &entry); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	other := NegotiationLog{NegotiationID: 6, Type: TypeStatusChange, Content: "other"}
	if err := repo.Append(db, &other); err != nil {
		t.Fatalf("append: %v", err)
	}

	list, err := repo.ListByNegotiation(db, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3, got %d", len(list))
	}
	if list[0].Content != "newest" || list[2].Content != "oldest" {
		t.Fatalf("expected newest first, got %q .. %q", list[0].Content, list[2].Content)
	}
}
