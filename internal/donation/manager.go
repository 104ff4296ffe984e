package donation

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"reliefdesk/internal/clock"
	"reliefdesk/internal/domain"
)

// DefaultPresets are the quick-pick amounts offered on the form.
var DefaultPresets = []int64{50, 100, 250, 500}

// Options configures a Manager. Zero values fall back to defaults.
type Options struct {
	Presets []int64
	IDs     IDSource
	Clock   clock.Clock
	Logger  zerolog.Logger
}

// Manager owns the donations and draft of a single session. Every method
// runs under the manager's lock so each call is applied atomically.
type Manager struct {
	mu      sync.Mutex
	state   State
	draft   domain.Draft
	presets []int64
	ids     IDSource
	clock   clock.Clock
	logger  zerolog.Logger
}

// NewManager creates an empty session with the first preset selected.
func NewManager(opts Options) (*Manager, error) {
	presets := opts.Presets
	if len(presets) == 0 {
		presets = DefaultPresets
	}
	for _, p := range presets {
		if p < domain.MinimumAmount {
			return nil, fmt.Errorf("donation: preset %d below minimum %d", p, domain.MinimumAmount)
		}
	}
	ids := opts.IDs
	if ids == nil {
		ids = NewRandomIDs()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Manager{
		presets: slices.Clone(presets),
		draft:   domain.Draft{Preset: presets[0]},
		ids:     ids,
		clock:   clk,
		logger:  opts.Logger,
	}, nil
}

// Presets returns the offered preset amounts.
func (m *Manager) Presets() []int64 {
	return slices.Clone(m.presets)
}

// Draft returns the current form draft.
func (m *Manager) Draft() domain.Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// UpdateDraft applies a patch to the draft. A preset in the patch must be
// one of the offered presets.
func (m *Manager) UpdateDraft(patch domain.DraftPatch) (domain.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if patch.Preset != nil && !slices.Contains(m.presets, *patch.Preset) {
		return m.draft, fmt.Errorf("%w: %d", domain.ErrUnknownPreset, *patch.Preset)
	}
	m.draft = patch.Apply(m.draft)
	return m.draft, nil
}

// SelectPreset picks a preset amount and clears any custom amount, the way
// tapping a preset button does on the form.
func (m *Manager) SelectPreset(amount int64) (domain.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.presets, amount) {
		return m.draft, fmt.Errorf("%w: %d", domain.ErrUnknownPreset, amount)
	}
	m.draft.Preset = amount
	m.draft.CustomAmount = ""
	return m.draft, nil
}

// Submit converts the current draft into a pending donation.
func (m *Manager) Submit() (domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitLocked()
}

// SubmitDraft applies patch and submits the result as one step, so no other
// call on the session can change the draft in between. It returns the draft
// as it stands afterwards: cleared on success, patched on validation failure.
func (m *Manager) SubmitDraft(patch domain.DraftPatch) (domain.Donation, domain.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if patch.Preset != nil && !slices.Contains(m.presets, *patch.Preset) {
		return domain.Donation{}, m.draft, fmt.Errorf("%w: %d", domain.ErrUnknownPreset, *patch.Preset)
	}
	m.draft = patch.Apply(m.draft)
	record, err := m.submitLocked()
	return record, m.draft, err
}

func (m *Manager) submitLocked() (domain.Donation, error) {
	state, draft, record, err := Submit(m.state, m.draft, m.ids, m.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			m.logger.Debug().Err(err).Str("custom_amount", m.draft.CustomAmount).Int64("preset", m.draft.Preset).Msg("donation rejected by validation")
		} else {
			m.logger.Error().Err(err).Msg("donation submit failed")
		}
		return domain.Donation{}, err
	}
	m.state, m.draft = state, draft
	m.logger.Info().Str("donation_id", record.ID).Int64("amount", record.Amount).Msg("donation submitted")
	return record, nil
}

// Review approves or rejects a pending donation. It reports whether the
// donation changed and returns the record as it stands afterwards.
func (m *Manager) Review(id string, decision domain.Decision) (domain.Donation, bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, applied := Review(m.state, id, decision, m.clock.Now())
	m.state = state
	record, found := m.state.Find(id)
	if applied {
		m.logger.Info().Str("donation_id", id).Str("status", string(record.Status)).Msg("donation reviewed")
	} else {
		m.logger.Debug().Str("donation_id", id).Str("decision", string(decision)).Bool("found", found).Msg("review ignored")
	}
	return record, applied, found
}

// Donations lists every record in submission order.
func (m *Manager) Donations() []domain.Donation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Donations()
}

// Get returns one record or domain.ErrNotFound.
func (m *Manager) Get(id string) (domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.state.Find(id)
	if !ok {
		return domain.Donation{}, fmt.Errorf("donation %q: %w", id, domain.ErrNotFound)
	}
	return record, nil
}

// Summary aggregates the session's donations.
func (m *Manager) Summary() domain.Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Summary()
}
