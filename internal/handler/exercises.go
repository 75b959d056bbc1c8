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

type Exercises struct {
	store        store.ExerciseStorer
	events       events.Publisher
	maxBodyBytes int64
}

func NewExercises(store store.ExerciseStorer, events events.Publisher) *Exercises {
	return &Exercises{store: store, events: events, maxBodyBytes: config.DefaultMaxBodyBytes}
}

// WithMaxBodyBytes sets the largest request body the handlers decode.
func (h *Exercises) WithMaxBodyBytes(n int64) *Exercises {
	if n > 0 {
		h.maxBodyBytes = n
	}
	return h
}

// Routes is the router mounted at /exercises.
func (h *Exercises) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(middleware.ETag).Get("/", h.List)
	r.Post("/add", h.Add)
	r.With(middleware.ETag).Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	r.Post("/update/{id}", h.Update)
	return r
}

func (h *Exercises) List(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.store.List(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, exercises)
}

func (h *Exercises) Add(w http.ResponseWriter, r *http.Request) {
	var req model.ExerciseRequest
	if !decode(w, r, h.maxBodyBytes, &req) {
		return
	}

	e, err := h.store.Create(r.Context(), req.Exercise())
	if err != nil {
		storeError(w, err)
		return
	}

	publish(r.Context(), h.events, events.Event{Type: events.ExerciseCreated, ID: e.ID, Username: e.Username, Time: time.Now()})
	response.JSON(w, http.StatusOK, "Exercise added!")
}

func (h *Exercises) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, e)
}

func (h *Exercises) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}

	publish(r.Context(), h.events, events.Event{Type: events.ExerciseDeleted, ID: id, Time: time.Now()})
	response.JSON(w, http.StatusOK, "Exercise deleted.")
}

func (h *Exercises) Update(w http.ResponseWriter, r *http.Request) {
	var req model.ExerciseRequest
	if !decode(w, r, h.maxBodyBytes, &req) {
		return
	}

	e, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), req.Exercise())
	if err != nil {
		storeError(w, err)
		return
	}

	publish(r.Context(), h.events, events.Event{Type: events.ExerciseUpdated, ID: e.ID, Username: e.Username, Time: time.Now()})
	response.JSON(w, http.StatusOK, "Exercise updated!")
}
