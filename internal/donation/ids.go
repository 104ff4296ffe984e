package donation

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDPrefix starts every generated donation id.
const IDPrefix = "DON-"

// IDSource produces candidate donation ids. Submit retries when a candidate
// collides with an id already present in the session.
type IDSource interface {
	NewID() string
}

// IDSourceFunc adapts a function into an IDSource.
type IDSourceFunc func() string

func (f IDSourceFunc) NewID() string { return f() }

// RandomIDs yields ids of the form DON-<n> with n in [0, 1000000).
type RandomIDs struct {
	intN func(n int) int
}

// NewRandomIDs returns a RandomIDs backed by math/rand/v2.
func NewRandomIDs() *RandomIDs {
	return &RandomIDs{intN: rand.IntN}
}

func (r *RandomIDs) NewID() string {
	return IDPrefix + strconv.Itoa(r.intN(1_000_000))
}

// SequenceIDs yields DON-1, DON-2, ... and is safe for concurrent use.
type SequenceIDs struct {
	next atomic.Int64
}

func (s *SequenceIDs) NewID() string {
	return IDPrefix + strconv.FormatInt(s.next.Add(1), 10)
}

// UUIDIDs yields DON-<uuid v4>.
type UUIDIDs struct{}

func (UUIDIDs) NewID() string {
	return IDPrefix + uuid.NewString()
}

// ID scheme names accepted by NewIDSource.
const (
	IDSchemeRandom   = "random"
	IDSchemeSequence = "sequence"
	IDSchemeUUID     = "uuid"
)

// NewIDSource builds the id source for a configured scheme name.
func NewIDSource(scheme string) (IDSource, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", IDSchemeRandom:
		return NewRandomIDs(), nil
	case IDSchemeSequence:
		return &SequenceIDs{}, nil
	case IDSchemeUUID:
		return UUIDIDs{}, nil
	default:
		return nil, fmt.Errorf("donation: unsupported id scheme %q", scheme)
	}
}

var (
	_ IDSource = (*RandomIDs)(nil)
	_ IDSource = (*SequenceIDs)(nil)
	_ IDSource = UUIDIDs{}
	_ IDSource = IDSourceFunc(nil)
)
