package stub

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"navident-console/internal/domain/entity"
	"navident-console/pkg/response"
	"navident-console/pkg/validator"
)

// userHandler layers the account rules on top of the generic verbs: passwords
// are hashed and stripped, the username is immutable, and password changes go
// through their own endpoint.
type userHandler struct {
	base      *entityHandler[entity.User]
	users     *collection[entity.User]
	passwords *passwordStore
	v         *validator.CustomValidator
	log       *logrus.Logger
}

func newUserHandler(users *collection[entity.User], passwords *passwordStore,
	v *validator.CustomValidator, log *logrus.Logger) *userHandler {

	base := newEntityHandler(users, v, log, "User")
	base.sanitize = func(u *entity.User) { u.Password = "" }

	return &userHandler{base: base, users: users, passwords: passwords, v: v, log: log}
}

func (h *userHandler) register(r *mux.Router) {
	r.HandleFunc("/users/{id}/change-password", h.changePassword).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}/toggle-active", h.toggleActive).Methods(http.MethodPut)

	r.HandleFunc("/users/search", h.base.search).Methods(http.MethodGet)
	r.HandleFunc("/users", h.base.list).Methods(http.MethodGet)
	r.HandleFunc("/users", h.create).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.base.get).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", h.remove).Methods(http.MethodDelete)
}

func (h *userHandler) create(w http.ResponseWriter, r *http.Request) {
	var user entity.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.v.Validate(&user); err != nil {
		response.ValidationError(w, h.v.FormatValidationErrors(err))
		return
	}
	if user.Password == "" {
		response.BadRequest(w, "Password is required")
		return
	}

	password := user.Password
	user.Password = ""
	created := h.users.Insert(user)
	if err := h.passwords.set(created.ID, password); err != nil {
		h.users.Delete(created.ID)
		response.InternalServerError(w, "")
		return
	}

	response.JSON(w, http.StatusCreated, created)
}

func (h *userHandler) update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	existing, ok := h.users.Get(id)
	if !ok {
		response.NotFound(w, "User not found")
		return
	}

	var user entity.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.v.Validate(&user); err != nil {
		response.ValidationError(w, h.v.FormatValidationErrors(err))
		return
	}

	// The username never changes and the password only changes through the
	// change-password endpoint.
	user.Username = existing.Username
	user.Password = ""

	updated, _ := h.users.Update(id, user)
	response.JSON(w, http.StatusOK, updated)
}

func (h *userHandler) remove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.users.Delete(id) {
		response.NotFound(w, "User not found")
		return
	}
	h.passwords.remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *userHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := h.users.Get(id); !ok {
		response.NotFound(w, "User not found")
		return
	}

	var change entity.PasswordChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.v.Validate(&change); err != nil {
		response.ValidationError(w, h.v.FormatValidationErrors(err))
		return
	}

	if !h.passwords.check(id, change.CurrentPassword) {
		response.BadRequest(w, "Current password is incorrect")
		return
	}
	if err := h.passwords.set(id, change.NewPassword); err != nil {
		response.InternalServerError(w, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *userHandler) toggleActive(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	user, ok := h.users.Get(id)
	if !ok {
		response.NotFound(w, "User not found")
		return
	}

	user.Active = !user.Active
	updated, _ := h.users.Update(id, user)
	response.JSON(w, http.StatusOK, updated)
}
