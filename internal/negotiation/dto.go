package negotiation

import (
	"time"

	"github.com/encorebooking/api-agency/internal/quote"
	"github.com/shopspring/decimal"
)

type createNegotiationRequest struct {
	CustomerID    uint            `json:"customerId"`
	SingerID      uint            `json:"singerId"`
	Status        string          `json:"status"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	EventLocation string          `json:"eventLocation"`
	EventType     string          `json:"eventType"`
	EventDuration string          `json:"eventDuration"`
	Requirements  string          `json:"requirements"`
	Notes         string          `json:"notes"`
	AssignedTo    string          `json:"assignedTo"`
	InitialAmount decimal.Decimal `json:"initialAmount"`
	FinalAmount   decimal.Decimal `json:"finalAmount"`
	EventDate     *time.Time      `json:"eventDate"`
	Deadline      *time.Time      `json:"deadline"`
	IsUrgent      bool            `json:"isUrgent"`
}

// updateNegotiationRequest is a patch body: absent fields stay untouched.
type updateNegotiationRequest struct {
	Status        *string          `json:"status"`
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	EventLocation *string          `json:"eventLocation"`
	EventType     *string          `json:"eventType"`
	EventDuration *string          `json:"eventDuration"`
	Requirements  *string          `json:"requirements"`
	Notes         *string          `json:"notes"`
	AssignedTo    *string          `json:"assignedTo"`
	InitialAmount *decimal.Decimal `json:"initialAmount"`
	FinalAmount   *decimal.Decimal `json:"finalAmount"`
	EventDate     *time.Time       `json:"eventDate"`
	Deadline      *time.Time       `json:"deadline"`
	IsUrgent      *bool            `json:"isUrgent"`
	UpdatedBy     string           `json:"updatedBy"`
}

func (r updateNegotiationRequest) params() UpdateNegotiationParams {
	return UpdateNegotiationParams{
		Status:        r.Status,
		Title:         r.Title,
		Description:   r.Description,
		EventLocation: r.EventLocation,
		EventType:     r.EventType,
		EventDuration: r.EventDuration,
		Requirements:  r.Requirements,
		Notes:         r.Notes,
		AssignedTo:    r.AssignedTo,
		InitialAmount: r.InitialAmount,
		FinalAmount:   r.FinalAmount,
		EventDate:     r.EventDate,
		Deadline:      r.Deadline,
		IsUrgent:      r.IsUrgent,
		UpdatedBy:     r.UpdatedBy,
	}
}

type createQuoteRequest struct {
	NegotiationID  uint            `json:"negotiationId"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	Description    string          `json:"description"`
	ValidUntil     *time.Time      `json:"validUntil"`
	Items          []quote.Item    `json:"items"`
	Tax            decimal.Decimal `json:"tax"`
	Discount       decimal.Decimal `json:"discount"`
	DiscountReason string          `json:"discountReason"`
	Terms          string          `json:"terms"`
	Notes          string          `json:"notes"`
	CreatedBy      string          `json:"createdBy"`
	IsFinal        bool            `json:"isFinal"`
}

type updateQuoteRequest struct {
	Amount         *decimal.Decimal `json:"amount"`
	Status         *string          `json:"status"`
	Description    *string          `json:"description"`
	ValidUntil     *time.Time       `json:"validUntil"`
	Items          []quote.Item     `json:"items"`
	Tax            *decimal.Decimal `json:"tax"`
	Discount       *decimal.Decimal `json:"discount"`
	DiscountReason *string          `json:"discountReason"`
	Terms          *string          `json:"terms"`
	Notes          *string          `json:"notes"`
	IsFinal        *bool            `json:"isFinal"`
	UpdatedBy      string           `json:"updatedBy"`
}

func (r updateQuoteRequest) params() UpdateQuoteParams {
	return UpdateQuoteParams{
		Amount:         r.Amount,
		Status:         r.Status,
		Description:    r.Description,
		ValidUntil:     r.ValidUntil,
		Items:          r.Items,
		Tax:            r.Tax,
		Discount:       r.Discount,
		DiscountReason: r.DiscountReason,
		Terms:          r.Terms,
		Notes:          r.Notes,
		IsFinal:        r.IsFinal,
		UpdatedBy:      r.UpdatedBy,
	}
}

type createLogRequest struct {
	MatchID *uint     `json:"matchId"`
	Date    time.Time `json:"date"`
	Type    string    `json:"type"`
	Content string    `json:"content"`
	User    string    `json:"user"`
}
