package auth

import (
	"context"
	"log"
	"sync"

	"foodflow-frontend/internal/backend"
	"foodflow-frontend/internal/domain"
	"foodflow-frontend/internal/session"
)

type State int

const (
	StateUnknown State = iota
	StateChecking
	StateAuthenticated
	StateAnonymous
)

const (
	LandingRoute = "/restaurants"
	LoginRoute   = "/login"
)

// Gateway is the slice of the backend client the auth lifecycle needs.
type Gateway interface {
	Login(ctx context.Context, username, password string) (domain.TokenPair, error)
	Register(ctx context.Context, in backend.RegisterInput) (*domain.User, error)
	RefreshToken(ctx context.Context, refresh string) (string, error)
	GetProfile(ctx context.Context, token string) (*domain.User, error)
}

// Context holds the resolved auth state for one session: the profile and
// where in the unknown→checking→authenticated/anonymous lifecycle it is.
type Context struct {
	mu    sync.Mutex
	state State
	user  *domain.User
}

func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Context) User() *domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

func (c *Context) IsAuthenticated() bool {
	return c.User() != nil
}

func (c *Context) IsRestaurantOwner() bool {
	u := c.User()
	return u != nil && u.Role == domain.RoleRestaurantOwner
}

func (c *Context) set(state State, user *domain.User) {
	c.mu.Lock()
	c.state = state
	c.user = user
	c.mu.Unlock()
}

// beginCheck transitions Unknown→Checking. Returns false when another
// caller already resolved or is resolving this context.
func (c *Context) beginCheck() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateUnknown {
		return false
	}
	c.state = StateChecking
	return true
}

// Manager owns the per-session auth contexts. Profiles live in process
// memory; credentials live in the session store.
type Manager struct {
	gw       Gateway
	sessions *session.Store

	mu       sync.Mutex
	contexts map[string]*Context
}

func NewManager(gw Gateway, sessions *session.Store) *Manager {
	return &Manager{
		gw:       gw,
		sessions: sessions,
		contexts: make(map[string]*Context),
	}
}

func (m *Manager) Context(sid string) *Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.contexts[sid]; ok {
		return c
	}
	c := &Context{state: StateUnknown}
	m.contexts[sid] = c
	return c
}

func (m *Manager) evict(sid string) {
	m.mu.Lock()
	delete(m.contexts, sid)
	m.mu.Unlock()
}

// Revalidate evicts an authenticated context whose stored credentials
// have lapsed (session TTL expiry), returning a fresh unresolved one so
// the caller re-checks instead of trusting the stale profile.
func (m *Manager) Revalidate(ctx context.Context, sid string) *Context {
	c := m.Context(sid)
	if c.State() != StateAuthenticated {
		return c
	}
	if m.sessions.IsAuthenticated(ctx, sid) {
		return c
	}
	m.evict(sid)
	return m.Context(sid)
}

// Check resolves the initial auth state for a session: with a stored token
// it fetches the profile, refreshing an expired access token first when a
// refresh token is available. Any failure clears the stored credentials
// and resolves to anonymous rather than surfacing as fatal.
func (m *Manager) Check(ctx context.Context, sid string) *Context {
	c := m.Context(sid)
	if !c.beginCheck() {
		return c
	}

	sess, err := m.sessions.Get(ctx, sid)
	if err != nil || sess == nil {
		// Anonymous resolutions are not retained; the map holds only
		// in-flight checks and authenticated sessions, so anonymous
		// visitor traffic cannot grow it without bound.
		c.set(StateAnonymous, nil)
		m.evict(sid)
		return c
	}

	token := sess.Token
	if tokenExpired(token) && sess.RefreshToken != "" {
		access, err := m.gw.RefreshToken(ctx, sess.RefreshToken)
		if err == nil {
			token = access
			if err := m.sessions.SetAccessToken(ctx, sid, access); err != nil {
				log.Printf("[auth] failed to store refreshed token: %v", err)
			}
		}
	}

	user, err := m.gw.GetProfile(ctx, token)
	if err != nil {
		log.Printf("[auth] session check failed: %v", err)
		if err := m.sessions.ClearTokens(ctx, sid); err != nil {
			log.Printf("[auth] failed to clear credentials: %v", err)
		}
		c.set(StateAnonymous, nil)
		m.evict(sid)
		return c
	}

	c.set(StateAuthenticated, user)
	return c
}

// Login exchanges credentials for a token pair, stores both, fetches the
// profile and returns the default landing route. On failure the session
// stays unauthenticated and the error propagates to the caller.
func (m *Manager) Login(ctx context.Context, sid, username, password string) (string, error) {
	c := m.Context(sid)

	pair, err := m.gw.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	if err := m.sessions.SetTokens(ctx, sid, pair.Access, pair.Refresh); err != nil {
		return "", err
	}

	user, err := m.gw.GetProfile(ctx, pair.Access)
	if err != nil {
		c.set(StateAnonymous, nil)
		return "", err
	}

	c.set(StateAuthenticated, user)
	return LandingRoute, nil
}

// Register creates the account but does not authenticate; the caller is
// sent to the login route on success.
func (m *Manager) Register(ctx context.Context, in backend.RegisterInput) (string, error) {
	if _, err := m.gw.Register(ctx, in); err != nil {
		return "", err
	}
	return LoginRoute, nil
}

func (m *Manager) Logout(ctx context.Context, sid string) string {
	if err := m.sessions.ClearTokens(ctx, sid); err != nil {
		log.Printf("[auth] failed to clear credentials on logout: %v", err)
	}
	m.evict(sid)
	return LoginRoute
}
