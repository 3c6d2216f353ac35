// Package session holds the process-wide slot for the single unlocked
// profile. The raw slot is never exposed; all access goes through Open,
// Current and Close.
package session

import (
	"errors"
	"sync"

	"github.com/smaillet/cabinet/internal/crypto"
	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/models"
)

// ErrNoActiveSession is returned by Current when no profile is unlocked.
// Data commands must treat this as an authorization failure, never as an
// empty result.
var ErrNoActiveSession = errors.New("no active session: open a profile first")

// Holder guards the single ActiveSession slot.
//
// The mutex is held only while reading or replacing the slot — never across
// a KDF call or a storage operation — so a slow unlock cannot stall
// unrelated commands.
type Holder interface {
	// Open installs sess as the active session, unconditionally replacing
	// any previous one. Opening a new profile in a single-window desktop
	// app implicitly abandons the old session; the replaced key is
	// zeroized before it is dropped.
	Open(sess models.ActiveSession)

	// Current returns a copy of the active session, or ErrNoActiveSession.
	// The key bytes are duplicated so a concurrent Close cannot zeroize a
	// buffer the caller is still using.
	Current() (models.ActiveSession, error)

	// Close ends the active session, overwriting its key material before
	// releasing it. Closing with no session open is a no-op.
	Close()
}

type holder struct {
	mu     sync.Mutex
	active *models.ActiveSession
	logger *logger.Logger
}

// NewHolder constructs an empty session [Holder].
func NewHolder(log *logger.Logger) Holder {
	return &holder{logger: log}
}

// Open implements [Holder].
func (h *holder) Open(sess models.ActiveSession) {
	// own our copy of the key, independent of the caller's buffer
	key := make([]byte, len(sess.DerivedKey))
	copy(key, sess.DerivedKey)
	sess.DerivedKey = key

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active != nil {
		h.logger.Debug().
			Str("replaced_profile_id", h.active.ProfileID).
			Str("profile_id", sess.ProfileID).
			Msg("replacing active session")
		crypto.Zeroize(h.active.DerivedKey)
	}

	h.active = &sess
}

// Current implements [Holder].
func (h *holder) Current() (models.ActiveSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == nil {
		return models.ActiveSession{}, ErrNoActiveSession
	}

	out := *h.active
	out.DerivedKey = make([]byte, len(h.active.DerivedKey))
	copy(out.DerivedKey, h.active.DerivedKey)

	return out, nil
}

// Close implements [Holder].
func (h *holder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == nil {
		return
	}

	h.logger.Debug().Str("profile_id", h.active.ProfileID).Msg("closing active session")
	crypto.Zeroize(h.active.DerivedKey)
	h.active = nil
}
