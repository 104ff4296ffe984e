package donation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"reliefdesk/internal/domain"
)

// maxIDAttempts bounds how many colliding ids Submit tolerates.
const maxIDAttempts = 32

// State is the ordered donation collection of one session. Transitions
// return a new State and never modify the slice they were given.
type State struct {
	donations []domain.Donation
}

// NewState builds a State from existing records, copying the input.
func NewState(donations ...domain.Donation) State {
	return State{donations: append([]domain.Donation(nil), donations...)}
}

// Donations returns a copy of the records in insertion order.
func (s State) Donations() []domain.Donation {
	out := make([]domain.Donation, len(s.donations))
	copy(out, s.donations)
	return out
}

// Len returns the number of records.
func (s State) Len() int { return len(s.donations) }

// Find returns the record with the given id.
func (s State) Find(id string) (domain.Donation, bool) {
	if i := s.index(id); i >= 0 {
		return s.donations[i], true
	}
	return domain.Donation{}, false
}

func (s State) index(id string) int {
	for i := range s.donations {
		if s.donations[i].ID == id {
			return i
		}
	}
	return -1
}

// Summary counts records per status. Amount totals stop at math.MaxInt64.
func (s State) Summary() domain.Summary {
	sum := domain.Summary{Total: len(s.donations)}
	for _, d := range s.donations {
		switch d.Status {
		case domain.DonationStatusPending:
			sum.Pending++
			sum.PendingAmount = addAmount(sum.PendingAmount, d.Amount)
		case domain.DonationStatusApproved:
			sum.Approved++
			sum.ApprovedAmount = addAmount(sum.ApprovedAmount, d.Amount)
		case domain.DonationStatusRejected:
			sum.Rejected++
		}
	}
	return sum
}

// addAmount adds two non-negative amounts, saturating instead of wrapping.
func addAmount(total, amount int64) int64 {
	if amount > math.MaxInt64-total {
		return math.MaxInt64
	}
	return total + amount
}

// Submit turns a draft into a pending donation appended at the end of the
// collection. On an invalid amount the state and draft come back unchanged
// together with an error wrapping domain.ErrInvalidAmount.
func Submit(s State, draft domain.Draft, ids IDSource, now time.Time) (State, domain.Draft, domain.Donation, error) {
	amount, err := ResolveAmount(draft)
	if err != nil {
		return s, draft, domain.Donation{}, err
	}
	id, err := s.allocateID(ids)
	if err != nil {
		return s, draft, domain.Donation{}, err
	}

	name := draft.Name
	if strings.TrimSpace(name) == "" {
		name = domain.AnonymousDonor
	}
	record := domain.Donation{
		ID:         id,
		DonorName:  name,
		DonorEmail: draft.Email,
		Amount:     amount,
		Message:    draft.Message,
		Status:     domain.DonationStatusPending,
		CreatedAt:  now,
	}

	next := make([]domain.Donation, len(s.donations), len(s.donations)+1)
	copy(next, s.donations)
	next = append(next, record)
	return State{donations: next}, draft.Cleared(), record, nil
}

func (s State) allocateID(ids IDSource) (string, error) {
	for range maxIDAttempts {
		id := ids.NewID()
		if id != "" && s.index(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", domain.ErrIDExhausted, maxIDAttempts)
}

// Review applies a decision to a pending donation. Unknown ids, records
// that were already decided and unknown decisions leave the state as is and
// report false.
func Review(s State, id string, decision domain.Decision, now time.Time) (State, bool) {
	status, ok := decision.Status()
	if !ok {
		return s, false
	}
	i := s.index(id)
	if i < 0 || !s.donations[i].Pending() {
		return s, false
	}

	next := make([]domain.Donation, len(s.donations))
	copy(next, s.donations)
	reviewedAt := now
	next[i].Status = status
	next[i].ReviewedAt = &reviewedAt
	return State{donations: next}, true
}
