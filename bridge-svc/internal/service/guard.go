package service

import (
	"context"
	"log"

	"menu-bridge/bridge-svc/internal/domain"
)

const DefaultLoginPath = "login.html"

// RequireAdminOrRedirect gates admin-only pages. It returns the current
// session when its user is on the admins allow-list; otherwise it sends nav
// to loginPath and returns nil.
func (b *Bridge) RequireAdminOrRedirect(ctx context.Context, nav Navigator, loginPath string) *domain.Session {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}

	session, err := b.sessions.Session(ctx)
	if err != nil {
		log.Printf("Warning: failed to read session: %v", err)
	}
	if err != nil || session == nil || session.UserID == "" {
		nav.Redirect(loginPath)
		return nil
	}

	rows, err := b.remote.Select(ctx, domain.Query{
		Table:   "admins",
		Columns: []string{"user_id"},
		Filters: []domain.Filter{domain.Eq("user_id", session.UserID)},
	})
	if err != nil || len(rows) != 1 {
		nav.Redirect(loginPath)
		return nil
	}
	return session
}
