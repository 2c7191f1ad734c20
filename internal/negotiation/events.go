package negotiation

import (
	"github.com/encorebooking/api-agency/internal/quote"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// quoteEvent is a quote transition that reacts onto the owning negotiation.
// Dispatch is synchronous and stays inside the caller's transaction.
type quoteEvent struct {
	negotiationID uint
	status        string
	amount        decimal.Decimal
	actor         string
}

// quoteTransitionEvent maps a quote status change to its negotiation
// reaction, or nil when the transition has none. The amount is the value as
// of after the update: a new amount in the patch wins over the stored one.
func quoteTransitionEvent(current *quote.Quote, p UpdateQuoteParams) *quoteEvent {
	amount := current.Amount
	if p.Amount != nil {
		amount = *p.Amount
	}
	switch *p.Status {
	case quote.StatusFinal:
		return &quoteEvent{
			negotiationID: current.NegotiationID,
			status:        StatusFinalQuote,
			amount:        amount,
			actor:         p.UpdatedBy,
		}
	case quote.StatusAccepted:
		return &quoteEvent{
			negotiationID: current.NegotiationID,
			status:        StatusCompleted,
			amount:        amount,
			actor:         p.UpdatedBy,
		}
	}
	return nil
}

// applyQuoteEvent runs the negotiation reaction: set the cascaded status and
// final amount through the same logged update path used by direct updates.
func (s *Service) applyQuoteEvent(tx *gorm.DB, ev quoteEvent) error {
	current, err := s.negotiations.FindByID(tx, ev.negotiationID)
	if err != nil {
		return err
	}
	status := ev.status
	amount := ev.amount
	return s.applyNegotiationUpdate(tx, current, UpdateNegotiationParams{
		Status:      &status,
		FinalAmount: &amount,
		UpdatedBy:   ev.actor,
	})
}
