package reminder

import (
	"fmt"
	"testing"
	"time"

	"github.com/encorebooking/api-agency/internal/negotiation"
	"github.com/encorebooking/api-agency/internal/negotiationlog"
	"github.com/encorebooking/api-agency/internal/quote"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReminderTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&negotiation.Negotiation{}, &quote.Quote{}, &negotiationlog.NegotiationLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedWithDeadline(t *testing.T, db *gorm.DB, status string, deadline *time.Time) negotiation.Negotiation {
	t.Helper()
	n := negotiation.Negotiation{
		CustomerID: 1,
		SingerID:   2,
		Status:     status,
		Deadline:   deadline,
	}
	if err := db.Create(&n).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return n
}

func warningCount(t *testing.T, db *gorm.DB, negotiationID uint) int64 {
	t.Helper()
	var count int64
	db.Model(&negotiationlog.NegotiationLog{}).
		Where("negotiation_id = ? AND type = ?", negotiationID, negotiationlog.TypeDeadlineWarning).
		Count(&count)
	return count
}

func TestSweep(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	soon := now.Add(60 * time.Hour)
	far := now.Add(240 * time.Hour)

	t.Run("flags near deadlines and logs once", func(t *testing.T) {
		db := setupReminderTestDB(t)
		svc := NewService(db)
		n := seedWithDeadline(t, db, negotiation.StatusInProgress, &soon)

		if err := svc.Sweep(now); err != nil {
			t.Fatalf("sweep: %v", err)
		}
		var fresh negotiation.Negotiation
		if err := db.First(&fresh, n.ID).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if !fresh.IsUrgent {
			t.Fatal("expected negotiation marked urgent")
		}
		if got := warningCount(t, db, n.ID); got != 1 {
			t.Fatalf("expected 1 warning, got %d", got)
		}

		// same-day sweep must not duplicate the warning
		if err := svc.Sweep(now.Add(time.Hour)); err != nil {
			t.Fatalf("second sweep: %v", err)
		}
		if got := warningCount(t, db, n.ID); got != 1 {
			t.Fatalf("expected 1 warning after rerun, got %d", got)
		}

		// next day it warns again
		if err := svc.Sweep(now.Add(25 * time.Hour)); err != nil {
			t.Fatalf("next-day sweep: %v", err)
		}
		if got := warningCount(t, db, n.ID); got != 2 {
			t.Fatalf("expected 2 warnings next day, got %d", got)
		}
	})

	t.Run("skips finished and distant negotiations", func(t *testing.T) {
		db := setupReminderTestDB(t)
		svc := NewService(db)
		done := seedWithDeadline(t, db, negotiation.StatusCompleted, &soon)
		cancelled := seedWithDeadline(t, db, negotiation.StatusCancelled, &soon)
		distant := seedWithDeadline(t, db, negotiation.StatusPending, &far)
		noDeadline := seedWithDeadline(t, db, negotiation.StatusPending, nil)

		if err := svc.Sweep(now); err != nil {
			t.Fatalf("sweep: %v", err)
		}
		for _, n := range []negotiation.Negotiation{done, cancelled, distant, noDeadline} {
			if got := warningCount(t, db, n.ID); got != 0 {
				t.Fatalf("negotiation %d should not be warned, got %d", n.ID, got)
			}
		}
	})
}
