package stub

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"navident-console/pkg/response"
	"navident-console/pkg/validator"
)

// entityHandler serves the standard collection verbs for one entity. Entity
// specific routes (exports, toggles, filtered listings) are registered by the
// router before these, so they win the match.
type entityHandler[T any] struct {
	col   *collection[T]
	v     *validator.CustomValidator
	log   *logrus.Logger
	label string

	// prepare runs after decode and validation, before the write. sanitize
	// runs on every record before it is written to the response.
	prepare  func(r *http.Request, record *T, existingID string) error
	sanitize func(record *T)
}

func newEntityHandler[T any](col *collection[T], v *validator.CustomValidator, log *logrus.Logger, label string) *entityHandler[T] {
	return &entityHandler[T]{col: col, v: v, log: log, label: label}
}

func (h *entityHandler[T]) register(r *mux.Router, base string) {
	r.HandleFunc(base+"/search", h.search).Methods(http.MethodGet)
	r.HandleFunc(base, h.list).Methods(http.MethodGet)
	r.HandleFunc(base, h.create).Methods(http.MethodPost)
	r.HandleFunc(base+"/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc(base+"/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc(base+"/{id}", h.remove).Methods(http.MethodDelete)
}

func (h *entityHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	sortDir := r.URL.Query().Get("sortDir")

	result := h.col.List(page, size, sortDir)
	for i := range result.Content {
		h.clean(&result.Content[i])
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *entityHandler[T]) search(w http.ResponseWriter, r *http.Request) {
	results := h.col.Search(r.URL.Query().Get("query"))
	for i := range results {
		h.clean(&results[i])
	}
	response.JSON(w, http.StatusOK, results)
}

func (h *entityHandler[T]) get(w http.ResponseWriter, r *http.Request) {
	record, ok := h.col.Get(mux.Vars(r)["id"])
	if !ok {
		response.NotFound(w, h.label+" not found")
		return
	}
	h.clean(&record)
	response.JSON(w, http.StatusOK, record)
}

func (h *entityHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	record, ok := h.decode(w, r, "")
	if !ok {
		return
	}

	created := h.col.Insert(*record)
	h.clean(&created)
	response.JSON(w, http.StatusCreated, created)
}

func (h *entityHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	record, ok := h.decode(w, r, id)
	if !ok {
		return
	}

	updated, found := h.col.Update(id, *record)
	if !found {
		response.NotFound(w, h.label+" not found")
		return
	}
	h.clean(&updated)
	response.JSON(w, http.StatusOK, updated)
}

func (h *entityHandler[T]) remove(w http.ResponseWriter, r *http.Request) {
	if !h.col.Delete(mux.Vars(r)["id"]) {
		response.NotFound(w, h.label+" not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *entityHandler[T]) decode(w http.ResponseWriter, r *http.Request, existingID string) (*T, bool) {
	var record T
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		response.BadRequest(w, "Invalid request body")
		return nil, false
	}

	if err := h.v.Validate(&record); err != nil {
		response.ValidationError(w, h.v.FormatValidationErrors(err))
		return nil, false
	}

	if h.prepare != nil {
		if err := h.prepare(r, &record, existingID); err != nil {
			h.log.Warnf("%s write rejected: %v", h.label, err)
			response.BadRequest(w, err.Error())
			return nil, false
		}
	}
	return &record, true
}

func (h *entityHandler[T]) clean(record *T) {
	if h.sanitize != nil {
		h.sanitize(record)
	}
}
