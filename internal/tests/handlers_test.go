package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "foodflow-frontend/internal/api/http"
	"foodflow-frontend/internal/auth"
	"foodflow-frontend/internal/domain"
	"foodflow-frontend/internal/draft"
	"foodflow-frontend/internal/mocks"
	"foodflow-frontend/internal/service"
	"foodflow-frontend/internal/session"
)

type testEnv struct {
	router http.Handler
	gw     *mocks.Backend
	store  *session.Store
	auth   *auth.Manager
	drafts *draft.Handoff
}

func newTestEnv(t *testing.T) *testEnv {
	mr := miniredis.RunT(t)
	store := session.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	gw := new(mocks.Backend)
	authMgr := auth.NewManager(gw, store)
	drafts := draft.NewHandoff(store, gw)
	views := service.NewViewService(gw)
	qr := service.TrackingQRGenerator{BaseURL: "http://localhost:8080"}

	handler := httpapi.NewHandler(authMgr, store, gw, views, drafts, qr)
	return &testEnv{
		router: httpapi.NewRouter(handler),
		gw:     gw,
		store:  store,
		auth:   authMgr,
		drafts: drafts,
	}
}

func (e *testEnv) do(t *testing.T, method, target, sid, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// authenticate stores a token and primes the profile fetch so the next
// guarded request resolves to the given user.
func (e *testEnv) authenticate(t *testing.T, sid string, user *domain.User) {
	require.NoError(t, e.store.SetTokens(context.Background(), sid, "tok-"+sid, "refresh-"+sid))
	e.gw.On("GetProfile", mock.Anything, "tok-"+sid).Return(user, nil).Once()
}

func TestGuardRedirectsAnonymousWithRedirectParam(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/orders", "anon", "")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect=%2Forders", w.Header().Get("Location"))
}

func TestGuardRendersLoadingMidCheck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.store.SetTokens(ctx, "sid1", "tok", ""))

	started := make(chan struct{})
	release := make(chan struct{})
	env.gw.On("GetProfile", mock.Anything, "tok").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&domain.User{ID: 1, Role: domain.RoleCustomer}, nil).Once()

	go env.auth.Check(ctx, "sid1")
	<-started
	defer close(release)

	w := env.do(t, "GET", "/orders", "sid1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Location"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "loading", body["state"])
}

func TestLoginSurfacesBackendDetail(t *testing.T) {
	env := newTestEnv(t)

	env.gw.On("Login", mock.Anything, "bob", "wrong").
		Return(domain.TokenPair{}, &domain.RequestError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}).Once()

	w := env.do(t, "POST", "/login", "sid1", `{"username":"bob","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestLoginRedirects(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantLocation string
	}{
		{
			name:         "default landing",
			target:       "/login",
			wantLocation: "/restaurants",
		},
		{
			name:         "honours redirect parameter",
			target:       "/login?redirect=%2Frestaurants%2F5",
			wantLocation: "/restaurants/5",
		},
		{
			name:         "rejects offsite redirect",
			target:       "/login?redirect=https%3A%2F%2Fevil.example",
			wantLocation: "/restaurants",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.gw.On("Login", mock.Anything, "bob", "pw").
				Return(domain.TokenPair{Access: "a1", Refresh: "r1"}, nil).Once()
			env.gw.On("GetProfile", mock.Anything, "a1").
				Return(&domain.User{ID: 1, Username: "bob", Role: domain.RoleCustomer}, nil).Once()

			w := env.do(t, "POST", testCase.target, "sid1", `{"username":"bob","password":"pw"}`)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, testCase.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/login", "sid1", `{"username":"bob"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.gw.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoleGuards(t *testing.T) {
	tests := []struct {
		name         string
		user         *domain.User
		method       string
		target       string
		wantLocation string
	}{
		{
			name:         "customer bounced off dashboard",
			user:         &domain.User{ID: 1, Role: domain.RoleCustomer},
			method:       "GET",
			target:       "/dashboard",
			wantLocation: "/restaurants",
		},
		{
			name:         "owner bounced off order confirmation",
			user:         &domain.User{ID: 2, Role: domain.RoleRestaurantOwner},
			method:       "GET",
			target:       "/orders/new",
			wantLocation: "/dashboard",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.authenticate(t, "sid1", testCase.user)

			w := env.do(t, testCase.method, testCase.target, "sid1", "")

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, testCase.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestCheckoutStagesDraftAndRedirects(t *testing.T) {
	env := newTestEnv(t)
	env.authenticate(t, "sid1", &domain.User{ID: 1, Role: domain.RoleCustomer})

	catalog := []domain.MenuItem{
		{ID: 5, Name: "Pad Thai", Price: 9.5, Restaurant: 3},
		{ID: 6, Name: "Spring Rolls", Price: 4.0, Restaurant: 3},
	}
	env.gw.On("ListMenuItems", mock.Anything, 3).Return(catalog, nil).Once()

	for _, body := range []string{
		`{"menu_item":5,"op":"add"}`,
		`{"menu_item":5,"op":"add"}`,
		`{"menu_item":6,"op":"add"}`,
	} {
		w := env.do(t, "POST", "/restaurants/3/cart", "sid1", body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := env.do(t, "POST", "/restaurants/3/checkout", "sid1", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/orders/new", w.Header().Get("Location"))

	d, err := env.drafts.Resume(context.Background(), "sid1")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Restaurant)
	assert.InDelta(t, 23.0, d.TotalPrice, 1e-9)
	assert.ElementsMatch(t, []domain.DraftItem{
		{MenuItem: 5, Quantity: 2, Price: 9.5},
		{MenuItem: 6, Quantity: 1, Price: 4.0},
	}, d.Items)
}

func TestCheckoutWithEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	env.authenticate(t, "sid1", &domain.User{ID: 1, Role: domain.RoleCustomer})

	w := env.do(t, "POST", "/restaurants/3/checkout", "sid1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderConfirmationWithoutDraftRedirects(t *testing.T) {
	env := newTestEnv(t)
	env.authenticate(t, "sid1", &domain.User{ID: 1, Role: domain.RoleCustomer})

	w := env.do(t, "GET", "/orders/new", "sid1", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/restaurants", w.Header().Get("Location"))
}

func TestSubmitOrderCommitsDraft(t *testing.T) {
	env := newTestEnv(t)
	env.authenticate(t, "sid1", &domain.User{ID: 1, Role: domain.RoleCustomer})

	d := domain.OrderDraft{
		Restaurant: 3,
		Items:      []domain.DraftItem{{MenuItem: 5, Quantity: 2, Price: 9.5}},
		TotalPrice: 19.0,
	}
	require.NoError(t, env.drafts.Stage(context.Background(), "sid1", d))

	env.gw.On("CreateOrder", mock.Anything, "tok-sid1", mock.AnythingOfType("backend.OrderCreate")).
		Return(&domain.Order{ID: 42, Status: domain.StatusPending}, nil).Once()

	w := env.do(t, "POST", "/orders/new", "sid1", `{"delivery_address":"42 Main St"}`)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/orders/42", w.Header().Get("Location"))

	_, err := env.drafts.Resume(context.Background(), "sid1")
	assert.ErrorIs(t, err, domain.ErrNoDraft)
}

func TestSubmitOrderRequiresAddress(t *testing.T) {
	env := newTestEnv(t)
	env.authenticate(t, "sid1", &domain.User{ID: 1, Role: domain.RoleCustomer})

	require.NoError(t, env.drafts.Stage(context.Background(), "sid1", domain.OrderDraft{
		Restaurant: 3,
		Items:      []domain.DraftItem{{MenuItem: 5, Quantity: 1, Price: 9.5}},
		TotalPrice: 9.5,
	}))

	w := env.do(t, "POST", "/orders/new", "sid1", `{"delivery_address":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(gw *mocks.Backend)
		wantCode  int
	}{
		{
			name: "valid transition",
			body: `{"status":"preparing"}`,
			setupMock: func(gw *mocks.Backend) {
				gw.On("UpdateOrderStatus", mock.Anything, "tok-sid1", 7, domain.StatusPreparing).
					Return(&domain.Order{ID: 7, Status: domain.StatusPreparing}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "unknown status rejected before the backend sees it",
			body:      `{"status":"teleported"}`,
			setupMock: func(gw *mocks.Backend) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "backend enforces transition rules",
			body: `{"status":"cancelled"}`,
			setupMock: func(gw *mocks.Backend) {
				gw.On("UpdateOrderStatus", mock.Anything, "tok-sid1", 7, domain.StatusCancelled).
					Return(nil, &domain.RequestError{Status: http.StatusBadRequest, Message: "Cannot cancel a delivered order"}).Once()
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.authenticate(t, "sid1", &domain.User{ID: 2, Role: domain.RoleRestaurantOwner})
			testCase.setupMock(env.gw)

			w := env.do(t, "PATCH", "/orders/7", "sid1", testCase.body)
			assert.Equal(t, testCase.wantCode, w.Code)
			env.gw.AssertExpectations(t)
		})
	}
}

func TestRestaurantDetailIncludesCartTotals(t *testing.T) {
	env := newTestEnv(t)

	rest := &domain.Restaurant{ID: 3, Name: "Thai Corner", Owner: domain.Owner{ID: 9}}
	catalog := []domain.MenuItem{{ID: 5, Name: "Pad Thai", Price: 9.5, Restaurant: 3}}
	env.gw.On("GetRestaurant", mock.Anything, 3).Return(rest, nil)
	env.gw.On("ListMenuItems", mock.Anything, 3).Return(catalog, nil)

	w := env.do(t, "POST", "/restaurants/3/cart", "sid1", `{"menu_item":5,"op":"add"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", "/restaurants/3", "sid1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TotalItems int     `json:"total_items"`
		TotalPrice float64 `json:"total_price"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 1, body.TotalItems)
	assert.InDelta(t, 9.5, body.TotalPrice, 1e-9)
}

func TestConcurrentCartUpdates(t *testing.T) {
	env := newTestEnv(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := env.do(t, "POST", "/restaurants/3/cart", "sid1", `{"menu_item":5,"op":"add"}`)
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	env.gw.On("GetRestaurant", mock.Anything, 3).
		Return(&domain.Restaurant{ID: 3, Name: "Thai Corner"}, nil).Once()
	env.gw.On("ListMenuItems", mock.Anything, 3).
		Return([]domain.MenuItem{{ID: 5, Price: 9.5, Restaurant: 3}}, nil).Once()

	w := env.do(t, "GET", "/restaurants/3", "sid1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TotalItems int `json:"total_items"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 50, body.TotalItems)
}

func TestVisitingAnotherRestaurantDiscardsCart(t *testing.T) {
	env := newTestEnv(t)

	env.gw.On("GetRestaurant", mock.Anything, mock.Anything).
		Return(&domain.Restaurant{ID: 4, Name: "Other"}, nil)
	env.gw.On("ListMenuItems", mock.Anything, mock.Anything).
		Return([]domain.MenuItem{}, nil)

	w := env.do(t, "POST", "/restaurants/3/cart", "sid1", `{"menu_item":5,"op":"add"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Opening a different restaurant's page ends the first visit.
	w = env.do(t, "GET", "/restaurants/4", "sid1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", "/restaurants/3", "sid1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TotalItems int `json:"total_items"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 0, body.TotalItems)
}

func TestLogoutRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)
	env.authenticate(t, "sid1", &domain.User{ID: 1, Role: domain.RoleCustomer})
	env.gw.On("ListOrders", mock.Anything, "tok-sid1").Return([]domain.Order{}, nil).Once()

	// Resolve the session first, then log out.
	w := env.do(t, "GET", "/orders", "sid1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "POST", "/logout", "sid1", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = env.do(t, "GET", "/orders", "sid1", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect=%2Forders", w.Header().Get("Location"))
}

func TestExpiredSessionRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)
	env.authenticate(t, "sid1", &domain.User{ID: 1, Role: domain.RoleCustomer})
	env.gw.On("ListOrders", mock.Anything, "tok-sid1").Return([]domain.Order{}, nil).Once()

	w := env.do(t, "GET", "/orders", "sid1", "")
	require.Equal(t, http.StatusOK, w.Code)

	// The stored credentials lapse; the resolved profile must lapse too.
	require.NoError(t, env.store.ClearTokens(context.Background(), "sid1"))

	w = env.do(t, "GET", "/orders", "sid1", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect=%2Forders", w.Header().Get("Location"))
}

func TestOrderQRCode(t *testing.T) {
	env := newTestEnv(t)
	env.authenticate(t, "sid1", &domain.User{ID: 1, Role: domain.RoleCustomer})

	env.gw.On("GetOrder", mock.Anything, "tok-sid1", 42).
		Return(&domain.Order{ID: 42, Status: domain.StatusPending}, nil).Once()

	w := env.do(t, "GET", "/orders/42/qrcode", "sid1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}
