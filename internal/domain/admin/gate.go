package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
)

var ErrWrongPassword = errors.New("wrong password")

// Settings is the admin_settings singleton row.
type Settings struct {
	ID                      int       `json:"id"`
	PasswordHash            string    `json:"-"`
	DefaultShippingBureau   int       `json:"default_shipping_bureau"`
	DefaultShippingDomicile int       `json:"default_shipping_domicile"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// SettingsRepository is the admin_settings table of the persistence service.
type SettingsRepository interface {
	Get(ctx context.Context) (*Settings, error)
	UpdatePasswordHash(ctx context.Context, digest string) error
	UpdateDefaultShipping(ctx context.Context, bureau, domicile int) (*Settings, error)
}

// Gate guards the back-office. It holds no session state itself; callers
// pass the Session they keep for the admin.
type Gate struct {
	settings SettingsRepository
	now      func() time.Time
}

func NewGate(settings SettingsRepository, now func() time.Time) *Gate {
	if now == nil {
		now = time.Now
	}
	return &Gate{settings: settings, now: now}
}

// Login checks password against the stored digest and, on success, moves
// session to LoggedIn. It fails closed: when the digest cannot be obtained
// the session is left logged out and a configuration or remote error is
// returned instead of ErrWrongPassword.
func (g *Gate) Login(ctx context.Context, session *Session, password string) error {
	if g.settings == nil {
		return apperr.Configuration("persistence service is not configured")
	}

	settings, err := g.settings.Get(ctx)
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.Configuration("admin settings row is missing")
	}
	if err != nil {
		log.Printf("[Admin] Failed to load settings: %v", err)
		return apperr.Remote("get admin settings", err)
	}
	if settings.PasswordHash == "" {
		return apperr.Configuration("admin password is not set")
	}

	if !Verify(password, settings.PasswordHash) {
		session.Logout()
		return ErrWrongPassword
	}

	session.login(g.now())
	log.Println("[Admin] Login succeeded")
	return nil
}

// Check reports whether session is still honoured. An expired session is
// forced back to LoggedOut.
func (g *Gate) Check(session *Session) bool {
	if session == nil || !session.IsLoggedIn() {
		return false
	}
	if g.now().Sub(session.StartedAt()) < SessionTTL {
		return true
	}
	session.Logout()
	return false
}

// ChangePassword stores the digest of newPassword. The current session is
// not affected.
func (g *Gate) ChangePassword(ctx context.Context, newPassword string) error {
	if len([]rune(newPassword)) < MinPasswordLength {
		return apperr.Validation("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if g.settings == nil {
		return apperr.Configuration("persistence service is not configured")
	}
	if err := g.settings.UpdatePasswordHash(ctx, HashPassword(newPassword)); err != nil {
		return apperr.Remote("update admin password", err)
	}
	log.Println("[Admin] Password changed")
	return nil
}

// Settings returns the singleton settings row.
func (g *Gate) Settings(ctx context.Context) (*Settings, error) {
	if g.settings == nil {
		return nil, apperr.Configuration("persistence service is not configured")
	}
	s, err := g.settings.Get(ctx)
	return s, apperr.Remote("get admin settings", err)
}

// UpdateDefaultShipping replaces the fallback shipping rates.
func (g *Gate) UpdateDefaultShipping(ctx context.Context, bureau, domicile int) (*Settings, error) {
	if bureau < 0 || domicile < 0 {
		return nil, apperr.Validation("shipping", "rates must not be negative")
	}
	if g.settings == nil {
		return nil, apperr.Configuration("persistence service is not configured")
	}
	s, err := g.settings.UpdateDefaultShipping(ctx, bureau, domicile)
	return s, apperr.Remote("update default shipping", err)
}
