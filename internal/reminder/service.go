package reminder

import (
	"fmt"
	"log"
	"time"

	"github.com/encorebooking/api-agency/internal/negotiation"
	"github.com/encorebooking/api-agency/internal/negotiationlog"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// deadlineWindow is how far ahead the sweep looks for deadlines.
const deadlineWindow = 72 * time.Hour

// Service flags negotiations whose deadline is closing in. It marks them
// urgent and records a deadline_warning log entry, at most one per
// negotiation per day.
type Service struct {
	db           *gorm.DB
	negotiations negotiation.Repository
	logs         negotiationlog.Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:           db,
		negotiations: negotiation.NewRepository(),
		logs:         negotiationlog.NewRepository(),
	}
}

// StartScheduler runs Sweep hourly until the returned cron is stopped.
func (s *Service) StartScheduler() *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		if err := s.Sweep(time.Now()); err != nil {
			log.Printf("deadline sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("could not schedule deadline sweep: %v", err)
		return c
	}
	c.Start()
	log.Println("deadline sweep scheduled")
	return c
}

// Sweep scans for unfinished negotiations with a deadline inside the window.
func (s *Service) Sweep(now time.Time) error {
	list, err := s.negotiations.ListDeadlineWithin(s.db, now, now.Add(deadlineWindow))
	if err != nil {
		return err
	}
	for _, n := range list {
		if err := s.warn(n, now); err != nil {
			log.Printf("negotiation %d: deadline warning failed: %v", n.ID, err)
		}
	}
	return nil
}

func (s *Service) warn(n negotiation.Negotiation, now time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if s.warnedToday(tx, n.ID, now) {
			return nil
		}
		entry := negotiationlog.NegotiationLog{
			NegotiationID: n.ID,
			Date:          now,
			Type:          negotiationlog.TypeDeadlineWarning,
			Content:       fmt.Sprintf("deadline %s is near", n.Deadline.Format("2006-01-02")),
		}
		if err := s.logs.Append(tx, &entry); err != nil {
			return err
		}
		if n.IsUrgent {
			return nil
		}
		return s.negotiations.Update(tx, n.ID, map[string]interface{}{"is_urgent": true})
	})
}

func (s *Service) warnedToday(tx *gorm.DB, negotiationID uint, now time.Time) bool {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var count int64
	tx.Model(&negotiationlog.NegotiationLog{}).
		Where("negotiation_id = ? AND type = ? AND date >= ?",
			negotiationID, negotiationlog.TypeDeadlineWarning, startOfDay).
		Count(&count)
	return count > 0
}
