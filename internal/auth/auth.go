// package auth implements the one-time-code login protocol
//
// A login is a two-step exchange: RequestCode emails a six digit code to the
// address, Login verifies the code and establishes the session. Codes are
// held in memory only; restarting the process invalidates outstanding codes.
package auth

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/secure"
	"github.com/telaflix/telaflix/internal/services"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/telaflix/telaflix/internal/store"
)

const (
	// XP granted when an account is first created, and on each return visit.
	signupXP = 150
	loginXP  = 5

	resendCooldown = 60 * time.Second
)

// issuedCode tracks an outstanding verification code for one address.
type issuedCode struct {
	code     string
	issuedAt time.Time
}

// Authenticator drives the login protocol against the mailer and the local
// store. Safe for concurrent use.
type Authenticator struct {
	store  *store.Store
	mailer services.Mailer
	logger *log.Logger

	mu      sync.Mutex
	pending map[string]issuedCode

	// injection points for tests
	now     func() time.Time
	genCode func() string
}

// New creates an authenticator. The logger may be nil.
func New(st *store.Store, mailer services.Mailer, logger *log.Logger) *Authenticator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Authenticator{
		store:   st,
		mailer:  mailer,
		logger:  logger,
		pending: make(map[string]issuedCode),
		now:     time.Now,
		genCode: generateCode,
	}
}

// generateCode returns a uniform six digit code.
func generateCode() string {
	return fmt.Sprintf("%06d", 100000+rand.IntN(900000))
}

// normalizeEmail canonicalizes an address for use as a code and ledger key.
func normalizeEmail(email string) string {
	return strings.ToLower(secure.Sanitize(email))
}

// RequestCode issues a verification code for email and delivers it through
// the mailer. A second request for the same address inside the cooldown
// window returns [shared.ErrResendCooldown] without sending anything.
func (a *Authenticator) RequestCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email address", shared.ErrInvalidInput)
	}

	a.mu.Lock()
	if issued, ok := a.pending[email]; ok {
		if remaining := resendCooldown - a.now().Sub(issued.issuedAt); remaining > 0 {
			a.mu.Unlock()
			return fmt.Errorf("%w: wait %ds", shared.ErrResendCooldown, int(remaining.Seconds())+1)
		}
	}
	code := a.genCode()
	a.mu.Unlock()

	if err := a.mailer.SendVerificationCode(ctx, email, code); err != nil {
		return err
	}

	a.mu.Lock()
	a.pending[email] = issuedCode{code: code, issuedAt: a.now()}
	a.mu.Unlock()

	a.logger.Infof("verification code sent to %s", email)
	return nil
}

// verify consumes the outstanding code for email. A wrong code leaves the
// issued code in place so the user can retry.
func (a *Authenticator) verify(email, code string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	issued, ok := a.pending[email]
	if !ok {
		return shared.ErrCodeNotIssued
	}
	if strings.TrimSpace(code) != issued.code {
		return shared.ErrInvalidCode
	}
	delete(a.pending, email)
	return nil
}

// Login verifies the code and establishes a session for email.
//
// The first login for an address creates a fresh record with a generated ID
// and the signup XP grant. A returning address keeps its ID and creation
// time, accrues the login XP and refreshes LastLogin. The record is written
// both to the session and to the all-users ledger.
func (a *Authenticator) Login(ctx context.Context, email, name, code string) (*models.UserRecord, error) {
	email = normalizeEmail(email)
	if err := a.verify(email, code); err != nil {
		return nil, err
	}

	now := a.now()
	var record models.UserRecord
	if existing := a.store.FindUser(email); existing != nil {
		record = *existing
		record.XP += loginXP
		record.LastLogin = now
		if name = secure.Sanitize(name); name != "" {
			record.Name = name
		}
	} else {
		record = models.UserRecord{
			ID:        shared.GenerateID(),
			Email:     email,
			Name:      secure.Sanitize(name),
			CreatedAt: now,
			LastLogin: now,
			XP:        signupXP,
		}
	}
	if record.Name == "" {
		record.Name = displayName(email)
	}

	if err := a.store.UpsertUser(record); err != nil {
		return nil, err
	}
	if err := a.store.SaveSession(record); err != nil {
		return nil, err
	}

	a.logger.Infof("session established for %s (xp=%d)", email, record.XP)
	return &record, nil
}

// Logout clears the active session. The ledger entry is left untouched.
func (a *Authenticator) Logout() error {
	return a.store.ClearSession()
}

// Current returns the active session record, or an error when logged out.
func (a *Authenticator) Current() (*models.UserRecord, error) {
	if user := a.store.LoadSession(); user != nil {
		return user, nil
	}
	return nil, shared.ErrNotAuthenticated
}

// displayName derives a fallback display name from the address local part.
func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "Assinante"
	}
	return local
}
