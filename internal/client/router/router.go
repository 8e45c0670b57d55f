// Package router decides where a visitor may go based on the current
// session: role-gated sections, the login redirect for anonymous visitors
// and the post-authentication landing page.
package router

import (
	"path"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookit/internal/client/models"
	"github.com/dmitrijs2005/bookit/internal/client/session"
)

const (
	LoginPath    = "/login"
	RegisterPath = "/register"
)

var dashboards = map[models.Role]string{
	models.RoleAdmin:  "/admin/dashboard",
	models.RoleVendor: "/vendor/dashboard",
	models.RoleUser:   "/user/dashboard",
}

// DashboardFor returns the landing page for role. Unknown roles land on
// the customer dashboard.
func DashboardFor(role models.Role) string {
	if !role.IsValid() {
		role = models.RoleUser
	}
	return dashboards[role]
}

// RedirectAfterAuth picks where to send user once login or registration
// resolves. A recorded deep link wins over the role dashboard.
func RedirectAfterAuth(user *models.UserProfile, deepLink string) string {
	if deepLink != "" {
		return deepLink
	}
	if user == nil {
		return LoginPath
	}
	return DashboardFor(user.UserType)
}

// RequiredRole reports which role a path is reserved for, if any.
func RequiredRole(p string) (models.Role, bool) {
	p = normalize(p)
	for _, role := range []models.Role{models.RoleAdmin, models.RoleVendor, models.RoleUser} {
		prefix := "/" + string(role)
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return role, true
		}
	}
	return "", false
}

type Action int

const (
	// Allow lets the visitor through.
	Allow Action = iota
	// Wait means the session is still loading; ask again after it settles.
	Wait
	// Redirect sends the visitor to Decision.Target.
	Redirect
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

type Decision struct {
	Action Action
	Target string
}

// Router gates navigation against a session view. It remembers the last
// protected path an anonymous visitor asked for.
type Router struct {
	view session.View

	mu       sync.Mutex
	deepLink string
}

func New(view session.View) *Router {
	return &Router{view: view}
}

// Guard decides what happens when the visitor navigates to p.
func (r *Router) Guard(p string) Decision {
	p = normalize(p)
	s := r.view.Snapshot()

	role, protected := RequiredRole(p)
	if !protected {
		if s.IsAuthenticated && (p == LoginPath || p == RegisterPath) {
			return Decision{Action: Redirect, Target: DashboardFor(s.User.UserType)}
		}
		return Decision{Action: Allow, Target: p}
	}

	if s.Loading {
		return Decision{Action: Wait, Target: p}
	}

	if !s.IsAuthenticated {
		r.mu.Lock()
		r.deepLink = p
		r.mu.Unlock()
		return Decision{Action: Redirect, Target: LoginPath}
	}

	if s.User.UserType != role {
		return Decision{Action: Redirect, Target: DashboardFor(s.User.UserType)}
	}
	return Decision{Action: Allow, Target: p}
}

// DeepLink returns the recorded pre-authentication target, if any.
func (r *Router) DeepLink() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deepLink
}

// AfterAuth returns the landing page for user and forgets the deep link.
func (r *Router) AfterAuth(user *models.UserProfile) string {
	r.mu.Lock()
	link := r.deepLink
	r.deepLink = ""
	r.mu.Unlock()

	return RedirectAfterAuth(user, link)
}

// Reset forgets any recorded deep link, e.g. on logout.
func (r *Router) Reset() {
	r.mu.Lock()
	r.deepLink = ""
	r.mu.Unlock()
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
