package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"foodflow-frontend/internal/auth"
	"foodflow-frontend/internal/backend"
	"foodflow-frontend/internal/cart"
	"foodflow-frontend/internal/domain"
	"foodflow-frontend/internal/draft"
	"foodflow-frontend/internal/service"
	"foodflow-frontend/internal/session"
)

type Handler struct {
	Auth     *auth.Manager
	Sessions *session.Store
	Backend  service.Backend
	Views    service.ViewServiceInterface
	Drafts   *draft.Handoff
	QR       service.QRGenerator

	carts *cartStore
}

func NewHandler(authMgr *auth.Manager, sessions *session.Store, b service.Backend, views service.ViewServiceInterface, drafts *draft.Handoff, qr service.QRGenerator) *Handler {
	return &Handler{
		Auth:     authMgr,
		Sessions: sessions,
		Backend:  b,
		Views:    views,
		Drafts:   drafts,
		QR:       qr,
		carts:    newCartStore(),
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(h.withSession)

	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/login", h.loginPage).Methods("GET")
	r.HandleFunc("/login", h.login).Methods("POST")
	r.HandleFunc("/register", h.register).Methods("POST")
	r.HandleFunc("/logout", h.logout).Methods("POST")

	r.HandleFunc("/restaurants", h.listRestaurants).Methods("GET")
	r.HandleFunc("/restaurants/{id}", h.restaurantDetail).Methods("GET")
	r.HandleFunc("/restaurants/{id}/cart", h.updateCart).Methods("POST")
	r.HandleFunc("/restaurants/{id}/checkout", h.requireRole(domain.RoleCustomer, h.checkout)).Methods("POST")

	r.HandleFunc("/orders/new", h.requireRole(domain.RoleCustomer, h.orderConfirmation)).Methods("GET")
	r.HandleFunc("/orders/new", h.requireRole(domain.RoleCustomer, h.submitOrder)).Methods("POST")
	r.HandleFunc("/orders", h.requireAuth(h.listOrders)).Methods("GET")
	r.HandleFunc("/orders/{id}", h.requireAuth(h.getOrder)).Methods("GET")
	r.HandleFunc("/orders/{id}", h.requireRole(domain.RoleRestaurantOwner, h.updateOrderStatus)).Methods("PATCH")
	r.HandleFunc("/orders/{id}/qrcode", h.requireAuth(h.orderQRCode)).Methods("GET")

	r.HandleFunc("/dashboard", h.requireRole(domain.RoleRestaurantOwner, h.dashboard)).Methods("GET")
	r.HandleFunc("/dashboard/restaurants", h.requireRole(domain.RoleRestaurantOwner, h.createRestaurant)).Methods("POST")
	r.HandleFunc("/dashboard/restaurants/{id}", h.requireRole(domain.RoleRestaurantOwner, h.updateRestaurant)).Methods("PATCH")
	r.HandleFunc("/dashboard/restaurants/{id}", h.requireRole(domain.RoleRestaurantOwner, h.deleteRestaurant)).Methods("DELETE")
	r.HandleFunc("/dashboard/restaurants/{id}/menu-items", h.requireRole(domain.RoleRestaurantOwner, h.createMenuItem)).Methods("POST")
	r.HandleFunc("/dashboard/menu-items/{id}", h.requireRole(domain.RoleRestaurantOwner, h.updateMenuItem)).Methods("PATCH")
	r.HandleFunc("/dashboard/menu-items/{id}", h.requireRole(domain.RoleRestaurantOwner, h.deleteMenuItem)).Methods("DELETE")

	r.HandleFunc("/profile", h.requireAuth(h.getProfile)).Methods("GET")
	r.HandleFunc("/profile", h.requireAuth(h.updateProfile)).Methods("PATCH")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "foodflow-frontend",
	})
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) renderLoading(w http.ResponseWriter) {
	respond(w, http.StatusOK, map[string]string{"state": "loading"})
}

// renderError maps the error taxonomy onto an inline banner payload. The
// page shows a single message string regardless of failure class.
func (h *Handler) renderError(w http.ResponseWriter, err error) {
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		respond(w, reqErr.Status, map[string]string{"error": reqErr.Message})
		return
	}
	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		respond(w, http.StatusBadGateway, map[string]string{"error": netErr.Error()})
		return
	}
	respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func (h *Handler) token(r *http.Request) string {
	sess, err := h.Sessions.Get(r.Context(), sessionID(r))
	if err != nil || sess == nil {
		return ""
	}
	return sess.Token
}

// --- auth pages ---

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"page":     "login",
		"redirect": r.URL.Query().Get("redirect"),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validateForm(form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	landing, err := h.Auth.Login(r.Context(), sessionID(r), form.Username, form.Password)
	if err != nil {
		h.renderError(w, err)
		return
	}

	if target := r.URL.Query().Get("redirect"); localPath(target) {
		landing = target
	}
	http.Redirect(w, r, landing, http.StatusSeeOther)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var form registerForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validateForm(form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	loginRoute, err := h.Auth.Register(r.Context(), backend.RegisterInput{
		Username:  form.Username,
		Email:     form.Email,
		Password:  form.Password,
		Role:      form.Role,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		h.renderError(w, err)
		return
	}
	http.Redirect(w, r, loginRoute, http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	loginRoute := h.Auth.Logout(r.Context(), sessionID(r))
	http.Redirect(w, r, loginRoute, http.StatusSeeOther)
}

// localPath accepts only same-site redirect targets.
func localPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}

// --- restaurants and cart ---

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Backend.ListRestaurants(r.Context(), r.URL.Query())
	if err != nil {
		h.renderError(w, err)
		return
	}
	respond(w, http.StatusOK, restaurants)
}

func (h *Handler) restaurantDetail(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	view, err := h.Views.RestaurantDetail(r.Context(), id)
	if err != nil {
		h.renderError(w, err)
		return
	}

	c := h.carts.visit(sessionID(r), id)
	respond(w, http.StatusOK, map[string]any{
		"restaurant":  view.Restaurant,
		"menu_items":  view.MenuItems,
		"cart":        c,
		"total_items": c.TotalItems(),
		"total_price": c.TotalPrice(view.MenuItems),
	})
}

func (h *Handler) updateCart(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var form cartForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validateForm(form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	c := h.carts.update(sessionID(r), id, func(c cart.Cart) {
		switch form.Op {
		case "add":
			c.Add(form.MenuItem)
		case "remove":
			c.Remove(form.MenuItem)
		}
	})

	respond(w, http.StatusOK, map[string]any{
		"cart":        c,
		"total_items": c.TotalItems(),
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c := h.carts.snapshot(sid, id)
	if c.TotalItems() == 0 {
		respond(w, http.StatusBadRequest, map[string]string{"error": "cart is empty"})
		return
	}

	catalog, err := h.Backend.ListMenuItems(r.Context(), id)
	if err != nil {
		h.renderError(w, err)
		return
	}

	d := domain.OrderDraft{
		Restaurant: id,
		Items:      c.Items(catalog),
		TotalPrice: c.TotalPrice(catalog),
	}
	if err := h.Drafts.Stage(r.Context(), sid, d); err != nil {
		h.renderError(w, err)
		return
	}

	h.carts.drop(sid, id)
	http.Redirect(w, r, "/orders/new", http.StatusSeeOther)
}

// --- orders ---

func (h *Handler) orderConfirmation(w http.ResponseWriter, r *http.Request) {
	d, err := h.Drafts.Resume(r.Context(), sessionID(r))
	if errors.Is(err, domain.ErrNoDraft) {
		http.Redirect(w, r, "/restaurants", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.renderError(w, err)
		return
	}

	rest, err := h.Backend.GetRestaurant(r.Context(), d.Restaurant)
	if err != nil {
		h.renderError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"draft":      d,
		"restaurant": rest,
	})
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	var form checkoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validateForm(form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	order, err := h.Drafts.Commit(r.Context(), sessionID(r), h.token(r), form.DeliveryAddress)
	if errors.Is(err, domain.ErrNoDraft) {
		http.Redirect(w, r, "/restaurants", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.renderError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/orders/%d", order.ID), http.StatusSeeOther)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Backend.ListOrders(r.Context(), h.token(r))
	if err != nil {
		h.renderError(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, err := h.Backend.GetOrder(r.Context(), h.token(r), id)
	if err != nil {
		h.renderError(w, err)
		return
	}
	respond(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var form statusForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validateForm(form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	order, err := h.Backend.UpdateOrderStatus(r.Context(), h.token(r), id, form.Status)
	if err != nil {
		h.renderError(w, err)
		return
	}
	respond(w, http.StatusOK, order)
}

func (h *Handler) orderQRCode(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	// Ownership is the backend's call; fetching the order first makes it.
	if _, err := h.Backend.GetOrder(r.Context(), h.token(r), id); err != nil {
		h.renderError(w, err)
		return
	}

	qr, err := h.QR.Generate(id)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "failed to generate QR code"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

// --- owner dashboard ---

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	user := h.Auth.Context(sessionID(r)).User()
	view, err := h.Views.Dashboard(r.Context(), h.token(r), user)
	if err != nil {
		h.renderError(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	form, image, err := h.restaurantInput(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rest, err := h.Backend.CreateRestaurant(r.Context(), h.token(r), form, image)
	if err != nil {
		h.renderError(w, err)
		return
	}
	respond(w, http.StatusCreated, rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	form, image, err := h.restaurantInput(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rest, err := h.Backend.UpdateRestaurant(r.Context(), h.token(r), id, form, image)
	if err != nil {
		h.renderError(w, err)
		return
	}
	respond(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Backend.DeleteRestaurant(r.Context(), h.token(r), id); err != nil {
		h.renderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["id"])
	form, image, err := h.menuItemInput(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	form.Restaurant = restaurantID

	item, err := h.Backend.CreateMenuItem(r.Context(), h.token(r), form, image)
	if err != nil {
		h.renderError(w, err)
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	form, image, err := h.menuItemInput(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	item, err := h.Backend.UpdateMenuItem(r.Context(), h.token(r), id, form, image)
	if err != nil {
		h.renderError(w, err)
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Backend.DeleteMenuItem(r.Context(), h.token(r), id); err != nil {
		h.renderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- profile ---

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.Backend.GetProfile(r.Context(), h.token(r))
	if err != nil {
		h.renderError(w, err)
		return
	}
	respond(w, http.StatusOK, user)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.Backend.UpdateProfile(r.Context(), h.token(r), fields)
	if err != nil {
		h.renderError(w, err)
		return
	}
	respond(w, http.StatusOK, user)
}

// --- form/multipart input shaping ---

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// imageUpload pulls the optional image file out of a multipart form.
func imageUpload(r *http.Request) (*backend.Upload, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("error retrieving the file")
	}

	if !allowedImageTypes[header.Header.Get("Content-Type")] {
		file.Close()
		return nil, errors.New("invalid file type. Only JPEG, PNG, GIF, WebP allowed")
	}

	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return nil, errors.New("failed to read file")
	}

	return &backend.Upload{Field: "image", Filename: header.Filename, Content: bytes.NewReader(data)}, nil
}

func (h *Handler) restaurantInput(r *http.Request) (backend.RestaurantInput, *backend.Upload, error) {
	var form restaurantForm

	var image *backend.Upload
	if isMultipart(r) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return backend.RestaurantInput{}, nil, errors.New("file too large")
		}
		form.Name = r.FormValue("name")
		form.Description = r.FormValue("description")
		form.Address = r.FormValue("address")
		form.PhoneNumber = r.FormValue("phone_number")

		var err error
		if image, err = imageUpload(r); err != nil {
			return backend.RestaurantInput{}, nil, err
		}
	} else if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		return backend.RestaurantInput{}, nil, errors.New("invalid request body")
	}

	if err := validateForm(form); err != nil {
		return backend.RestaurantInput{}, nil, err
	}

	return backend.RestaurantInput{
		Name:        form.Name,
		Description: form.Description,
		Address:     form.Address,
		PhoneNumber: form.PhoneNumber,
	}, image, nil
}

func (h *Handler) menuItemInput(r *http.Request) (backend.MenuItemInput, *backend.Upload, error) {
	var form menuItemForm

	var image *backend.Upload
	if isMultipart(r) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return backend.MenuItemInput{}, nil, errors.New("file too large")
		}
		form.Name = r.FormValue("name")
		form.Description = r.FormValue("description")
		form.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
		form.IsAvailable = r.FormValue("is_available") != "false"

		var err error
		if image, err = imageUpload(r); err != nil {
			return backend.MenuItemInput{}, nil, err
		}
	} else if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		return backend.MenuItemInput{}, nil, errors.New("invalid request body")
	}

	if err := validateForm(form); err != nil {
		return backend.MenuItemInput{}, nil, err
	}

	return backend.MenuItemInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		IsAvailable: form.IsAvailable,
	}, image, nil
}
