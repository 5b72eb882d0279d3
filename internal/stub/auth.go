package stub

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"navident-console/internal/domain/entity"
	"navident-console/pkg/jwt"
	"navident-console/pkg/response"
	"navident-console/pkg/validator"
)

// passwordStore keeps bcrypt hashes out of the user records so a serialized
// user can never leak one.
type passwordStore struct {
	mu     sync.RWMutex
	hashes map[string]string // user id -> bcrypt hash
}

func newPasswordStore() *passwordStore {
	return &passwordStore{hashes: map[string]string{}}
}

func (p *passwordStore) set(userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.hashes[userID] = string(hash)
	p.mu.Unlock()
	return nil
}

func (p *passwordStore) check(userID, password string) bool {
	p.mu.RLock()
	hash, ok := p.hashes[userID]
	p.mu.RUnlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (p *passwordStore) remove(userID string) {
	p.mu.Lock()
	delete(p.hashes, userID)
	p.mu.Unlock()
}

type authHandler struct {
	users     *collection[entity.User]
	passwords *passwordStore
	tokens    *jwt.TokenService
	v         *validator.CustomValidator
	log       *logrus.Logger
}

func newAuthHandler(users *collection[entity.User], passwords *passwordStore, tokens *jwt.TokenService,
	v *validator.CustomValidator, log *logrus.Logger) *authHandler {
	return &authHandler{users: users, passwords: passwords, tokens: tokens, v: v, log: log}
}

func (h *authHandler) register(r *mux.Router) {
	r.HandleFunc("/auth/signin", h.signIn).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", h.signUp).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", h.refresh).Methods(http.MethodPost)
}

func (h *authHandler) signIn(w http.ResponseWriter, r *http.Request) {
	var creds entity.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.v.Validate(&creds); err != nil {
		response.ValidationError(w, h.v.FormatValidationErrors(err))
		return
	}

	user, ok := h.byUsername(creds.Username)
	if !ok || !h.passwords.check(user.ID, creds.Password) {
		response.Unauthorized(w, "Invalid username or password")
		return
	}
	if !user.Active {
		response.Unauthorized(w, "Account is deactivated")
		return
	}

	h.respondWithToken(w, user)
}

func (h *authHandler) signUp(w http.ResponseWriter, r *http.Request) {
	var req entity.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.v.Validate(&req); err != nil {
		response.ValidationError(w, h.v.FormatValidationErrors(err))
		return
	}

	if _, taken := h.byUsername(req.Username); taken {
		response.BadRequest(w, "Username is already taken")
		return
	}

	role := req.Role
	if role == "" {
		role = entity.RoleClinicAssistant
	}

	user := h.users.Insert(entity.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      role,
		Active:    true,
	})
	if err := h.passwords.set(user.ID, req.Password); err != nil {
		response.InternalServerError(w, "")
		return
	}

	h.respondWithToken(w, &user)
}

func (h *authHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req entity.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.v.Validate(&req); err != nil {
		response.ValidationError(w, h.v.FormatValidationErrors(err))
		return
	}

	claims, err := h.tokens.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		response.Unauthorized(w, "Invalid or expired refresh token")
		return
	}

	user, ok := h.byUsername(claims.Username)
	if !ok || !user.Active {
		response.Unauthorized(w, "Unknown user")
		return
	}
	h.respondWithToken(w, user)
}

func (h *authHandler) respondWithToken(w http.ResponseWriter, user *entity.User) {
	token, err := h.tokens.GenerateAccessToken(user)
	if err != nil {
		h.log.Warnf("Failed to sign token: %v", err)
		response.InternalServerError(w, "")
		return
	}
	refresh, err := h.tokens.GenerateRefreshToken(user)
	if err != nil {
		h.log.Warnf("Failed to sign refresh token: %v", err)
		response.InternalServerError(w, "")
		return
	}

	response.JSON(w, http.StatusOK, entity.AuthResponse{
		Token:        token,
		RefreshToken: refresh,
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
	})
}

func (h *authHandler) byUsername(username string) (*entity.User, bool) {
	matches := h.users.Filter(func(u *entity.User) bool {
		return u.Username == username
	})
	if len(matches) == 0 {
		return nil, false
	}
	return &matches[0], true
}
