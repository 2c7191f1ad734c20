package negotiation

import (
	"errors"
	"fmt"
	"time"

	"github.com/encorebooking/api-agency/internal/negotiationlog"
	"github.com/encorebooking/api-agency/internal/quote"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Validation errors, rejected before any store call.
var (
	ErrMissingCustomer    = errors.New("customerId is required")
	ErrMissingSinger      = errors.New("singerId is required")
	ErrMissingNegotiation = errors.New("negotiationId is required")
	ErrMissingLogType     = errors.New("log type is required")
	ErrInvalidStatus      = errors.New("invalid negotiation status")
	ErrInvalidQuoteStatus = errors.New("invalid quote status")
	ErrNegativeAmount     = errors.New("amount must not be negative")
)

// Service orchestrates negotiations, their quotes and the audit log. It keeps
// no state between calls; every mutating operation runs in a single
// transaction, and the log append executes before the state write so a crash
// never leaves an unexplained change.
type Service struct {
	db           *gorm.DB
	negotiations Repository
	quotes       quote.Repository
	logs         negotiationlog.Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:           db,
		negotiations: NewRepository(),
		quotes:       quote.NewRepository(),
		logs:         negotiationlog.NewRepository(),
	}
}

type CreateNegotiationParams struct {
	CustomerID    uint
	SingerID      uint
	Status        string
	Title         string
	Description   string
	EventLocation string
	EventType     string
	EventDuration string
	Requirements  string
	Notes         string
	AssignedTo    string
	InitialAmount decimal.Decimal
	FinalAmount   decimal.Decimal
	EventDate     *time.Time
	Deadline      *time.Time
	IsUrgent      bool
}

// CreateNegotiation stores a new negotiation. Creation itself is not logged;
// the trail starts at the first status-affecting update.
func (s *Service) CreateNegotiation(p CreateNegotiationParams) (*Negotiation, error) {
	if p.CustomerID == 0 {
		return nil, ErrMissingCustomer
	}
	if p.SingerID == 0 {
		return nil, ErrMissingSinger
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	if !ValidStatus(p.Status) {
		return nil, ErrInvalidStatus
	}
	if p.InitialAmount.IsNegative() || p.FinalAmount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	n := Negotiation{
		CustomerID:    p.CustomerID,
		SingerID:      p.SingerID,
		Status:        p.Status,
		Title:         p.Title,
		Description:   p.Description,
		EventLocation: p.EventLocation,
		EventType:     p.EventType,
		EventDuration: p.EventDuration,
		Requirements:  p.Requirements,
		Notes:         p.Notes,
		AssignedTo:    p.AssignedTo,
		InitialAmount: p.InitialAmount,
		FinalAmount:   p.FinalAmount,
		EventDate:     p.EventDate,
		Deadline:      p.Deadline,
		IsUrgent:      p.IsUrgent,
	}
	if err := s.negotiations.Create(s.db, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// UpdateNegotiationParams is a patch: nil fields are left untouched.
type UpdateNegotiationParams struct {
	Status        *string
	Title         *string
	Description   *string
	EventLocation *string
	EventType     *string
	EventDuration *string
	Requirements  *string
	Notes         *string
	AssignedTo    *string
	InitialAmount *decimal.Decimal
	FinalAmount   *decimal.Decimal
	EventDate     *time.Time
	Deadline      *time.Time
	IsUrgent      *bool
	UpdatedBy     string
}

func (p UpdateNegotiationParams) fields() map[string]interface{} {
	m := map[string]interface{}{}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.EventLocation != nil {
		m["event_location"] = *p.EventLocation
	}
	if p.EventType != nil {
		m["event_type"] = *p.EventType
	}
	if p.EventDuration != nil {
		m["event_duration"] = *p.EventDuration
	}
	if p.Requirements != nil {
		m["requirements"] = *p.Requirements
	}
	if p.Notes != nil {
		m["notes"] = *p.Notes
	}
	if p.AssignedTo != nil {
		m["assigned_to"] = *p.AssignedTo
	}
	if p.InitialAmount != nil {
		m["initial_amount"] = *p.InitialAmount
	}
	if p.FinalAmount != nil {
		m["final_amount"] = *p.FinalAmount
	}
	if p.EventDate != nil {
		m["event_date"] = *p.EventDate
	}
	if p.Deadline != nil {
		m["deadline"] = *p.Deadline
	}
	if p.IsUrgent != nil {
		m["is_urgent"] = *p.IsUrgent
	}
	return m
}

// UpdateNegotiation merges the provided fields onto the negotiation. A status
// change is logged before the update is applied, inside the same transaction.
func (s *Service) UpdateNegotiation(id uint, p UpdateNegotiationParams) (*Negotiation, error) {
	if p.Status != nil && !ValidStatus(*p.Status) {
		return nil, ErrInvalidStatus
	}
	if p.InitialAmount != nil && p.InitialAmount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if p.FinalAmount != nil && p.FinalAmount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	var out *Negotiation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := s.negotiations.FindByID(tx, id)
		if err != nil {
			return err
		}
		if err := s.applyNegotiationUpdate(tx, current, p); err != nil {
			return err
		}
		out, err = s.negotiations.FindByID(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyNegotiationUpdate logs an actual status change, then merges the patch.
// Runs inside the caller's transaction; also the landing point for quote
// cascade events.
func (s *Service) applyNegotiationUpdate(tx *gorm.DB, current *Negotiation, p UpdateNegotiationParams) error {
	if p.Status != nil && *p.Status != current.Status {
		entry := negotiationlog.NegotiationLog{
			NegotiationID: current.ID,
			Type:          negotiationlog.TypeStatusChange,
			Content:       fmt.Sprintf("%s → %s", current.Status, *p.Status),
			User:          p.UpdatedBy,
		}
		if err := s.logs.Append(tx, &entry); err != nil {
			return err
		}
	}
	fields := p.fields()
	if len(fields) == 0 {
		return nil
	}
	return s.negotiations.Update(tx, current.ID, fields)
}

// RemoveNegotiation deletes the negotiation row. Quotes and logs are left in
// place and no log entry is written for the deletion.
func (s *Service) RemoveNegotiation(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.negotiations.FindByID(tx, id); err != nil {
			return err
		}
		return s.negotiations.Delete(tx, id)
	})
}

// FindNegotiationByID returns the negotiation with quotes and logs populated.
func (s *Service) FindNegotiationByID(id uint) (*Negotiation, error) {
	return s.negotiations.FindByIDWithDetail(s.db, id)
}

func (s *Service) ListNegotiations(f Filter) ([]Negotiation, error) {
	return s.negotiations.List(s.db, f)
}

type CreateQuoteParams struct {
	NegotiationID  uint
	Amount         decimal.Decimal
	Status         string
	Description    string
	ValidUntil     *time.Time
	Items          []quote.Item
	Tax            decimal.Decimal
	Discount       decimal.Decimal
	DiscountReason string
	Terms          string
	Notes          string
	CreatedBy      string
	IsFinal        bool
}

// CreateQuote stores a new quote under an existing negotiation and logs the
// creation. The negotiation lookup is the referential check the quote store
// itself does not perform.
func (s *Service) CreateQuote(p CreateQuoteParams) (*quote.Quote, error) {
	if p.NegotiationID == 0 {
		return nil, ErrMissingNegotiation
	}
	if p.Status == "" {
		p.Status = quote.StatusDraft
	}
	if !quote.ValidStatus(p.Status) {
		return nil, ErrInvalidQuoteStatus
	}
	if p.Amount.IsNegative() || p.Tax.IsNegative() || p.Discount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	q := quote.Quote{
		NegotiationID:  p.NegotiationID,
		Amount:         p.Amount,
		Status:         p.Status,
		Description:    p.Description,
		ValidUntil:     p.ValidUntil,
		Items:          withLineTotals(p.Items),
		Tax:            p.Tax,
		Discount:       p.Discount,
		DiscountReason: p.DiscountReason,
		Terms:          p.Terms,
		Notes:          p.Notes,
		CreatedBy:      p.CreatedBy,
		IsFinal:        p.IsFinal,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.negotiations.FindByID(tx, p.NegotiationID); err != nil {
			return err
		}
		if err := s.quotes.Create(tx, &q); err != nil {
			return err
		}
		entry := negotiationlog.NegotiationLog{
			NegotiationID: p.NegotiationID,
			Type:          negotiationlog.TypeQuoteCreated,
			Content:       fmt.Sprintf("quote created with amount %s", q.Amount.StringFixed(2)),
			User:          p.CreatedBy,
		}
		return s.logs.Append(tx, &entry)
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuoteParams is a patch: nil fields are left untouched. Items, when
// present, replace the stored list wholesale.
type UpdateQuoteParams struct {
	Amount         *decimal.Decimal
	Status         *string
	Description    *string
	ValidUntil     *time.Time
	Items          []quote.Item
	Tax            *decimal.Decimal
	Discount       *decimal.Decimal
	DiscountReason *string
	Terms          *string
	Notes          *string
	IsFinal        *bool
	UpdatedBy      string
}

func (p UpdateQuoteParams) fields() map[string]interface{} {
	m := map[string]interface{}{}
	if p.Amount != nil {
		m["amount"] = *p.Amount
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.ValidUntil != nil {
		m["valid_until"] = *p.ValidUntil
	}
	if p.Items != nil {
		m["items"] = quote.ItemsJSON(withLineTotals(p.Items))
	}
	if p.Tax != nil {
		m["tax"] = *p.Tax
	}
	if p.Discount != nil {
		m["discount"] = *p.Discount
	}
	if p.DiscountReason != nil {
		m["discount_reason"] = *p.DiscountReason
	}
	if p.Terms != nil {
		m["terms"] = *p.Terms
	}
	if p.Notes != nil {
		m["notes"] = *p.Notes
	}
	if p.IsFinal != nil {
		m["is_final"] = *p.IsFinal
	}
	if p.UpdatedBy != "" {
		m["updated_by"] = p.UpdatedBy
	}
	return m
}

// UpdateQuote merges the provided fields onto the quote. An actual status
// change is logged first; transitions to final or accepted additionally
// cascade into the owning negotiation before the quote row is written.
func (s *Service) UpdateQuote(id uint, p UpdateQuoteParams) (*quote.Quote, error) {
	if p.Status != nil && !quote.ValidStatus(*p.Status) {
		return nil, ErrInvalidQuoteStatus
	}
	if p.Amount != nil && p.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	var out *quote.Quote
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := s.quotes.FindByID(tx, id)
		if err != nil {
			return err
		}
		if p.Status != nil && *p.Status != current.Status {
			entry := negotiationlog.NegotiationLog{
				NegotiationID: current.NegotiationID,
				Type:          negotiationlog.TypeQuoteStatusChange,
				Content:       fmt.Sprintf("%s → %s", current.Status, *p.Status),
				User:          p.UpdatedBy,
			}
			if err := s.logs.Append(tx, &entry); err != nil {
				return err
			}
			if ev := quoteTransitionEvent(current, p); ev != nil {
				if err := s.applyQuoteEvent(tx, *ev); err != nil {
					return err
				}
			}
		}
		fields := p.fields()
		if len(fields) > 0 {
			if err := s.quotes.Update(tx, id, fields); err != nil {
				return err
			}
		}
		out, err = s.quotes.FindByID(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveQuote deletes the quote row. No negotiation update and no log entry.
func (s *Service) RemoveQuote(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.quotes.FindByID(tx, id); err != nil {
			return err
		}
		return s.quotes.Delete(tx, id)
	})
}

func (s *Service) FindQuoteByID(id uint) (*quote.Quote, error) {
	return s.quotes.FindByID(s.db, id)
}

func (s *Service) ListQuotes(negotiationID uint) ([]quote.Quote, error) {
	return s.quotes.ListByNegotiation(s.db, negotiationID)
}

func (s *Service) ListLogs(negotiationID uint) ([]negotiationlog.NegotiationLog, error) {
	return s.logs.ListByNegotiation(s.db, negotiationID)
}

type CreateLogParams struct {
	NegotiationID uint
	MatchID       *uint
	Date          time.Time
	Type          string
	Content       string
	User          string
}

// CreateLog records an event outside the standard transitions. Escape hatch
// for callers; the entry is still immutable once written.
func (s *Service) CreateLog(p CreateLogParams) (*negotiationlog.NegotiationLog, error) {
	if p.NegotiationID == 0 {
		return nil, ErrMissingNegotiation
	}
	if p.Type == "" {
		return nil, ErrMissingLogType
	}
	entry := negotiationlog.NegotiationLog{
		NegotiationID: p.NegotiationID,
		MatchID:       p.MatchID,
		Date:          p.Date,
		Type:          p.Type,
		Content:       p.Content,
		User:          p.User,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.negotiations.FindByID(tx, p.NegotiationID); err != nil {
			return err
		}
		return s.logs.Append(tx, &entry)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// withLineTotals recomputes each item's line total from quantity and unit
// price, ignoring whatever the caller sent in that field.
func withLineTotals(items []quote.Item) []quote.Item {
	if items == nil {
		return nil
	}
	out := make([]quote.Item, len(items))
	for i, it := range items {
		it.LineTotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		out[i] = it
	}
	return out
}
