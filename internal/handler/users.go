package handler

import (
	"net/http"
	"time"

	"tracker/internal/config"
	"tracker/internal/events"
	"tracker/internal/middleware"
	"tracker/internal/model"
	"tracker/internal/response"
	"tracker/internal/store"

	"github.com/go-chi/chi/v5"
)

type Users struct {
	store        store.UserStorer
	events       events.Publisher
	maxBodyBytes int64
}

func NewUsers(store store.UserStorer, events events.Publisher) *Users {
	return &Users{store: store, events: events, maxBodyBytes: config.DefaultMaxBodyBytes}
}

// WithMaxBodyBytes sets the largest request body the handlers decode.
func (h *Users) WithMaxBodyBytes(n int64) *Users {
	if n > 0 {
		h.maxBodyBytes = n
	}
	return h
}

// Routes is the router mounted at /users.
func (h *Users) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(middleware.ETag).Get("/", h.List)
	r.Post("/add", h.Add)
	r.With(middleware.ETag).Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	return r
}

func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.List(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, users)
}

func (h *Users) Add(w http.ResponseWriter, r *http.Request) {
	var req model.UserRequest
	if !decode(w, r, h.maxBodyBytes, &req) {
		return
	}

	u, err := h.store.Create(r.Context(), model.User{Username: req.Username})
	if err != nil {
		storeError(w, err)
		return
	}

	publish(r.Context(), h.events, events.Event{Type: events.UserCreated, ID: u.ID, Username: u.Username, Time: time.Now()})
	response.JSON(w, http.StatusOK, "User added!")
}

func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, u)
}

func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}

	publish(r.Context(), h.events, events.Event{Type: events.UserDeleted, ID: id, Time: time.Now()})
	response.JSON(w, http.StatusOK, "User deleted.")
}
