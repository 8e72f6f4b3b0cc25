package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/seoyeon-oh/maum-diary/backend/internal/apperr"
	"github.com/seoyeon-oh/maum-diary/backend/internal/model/account"
	"github.com/seoyeon-oh/maum-diary/backend/pkg/utils"
)

// Handler serves login and registration against the account store.
type Handler struct {
	accounts account.Store
	validate *validator.Validate
}

// New creates the auth handler.
func New(accounts account.Store) *Handler {
	return &Handler{
		accounts: accounts,
		validate: validator.New(),
	}
}

// RegisterRoutes wires the auth endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/register", h.handleRegister)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "잘못된 요청 형식입니다.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "이메일과 비밀번호를 모두 입력해주세요.")
		return
	}

	userID, err := h.accounts.VerifyCredentials(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		log.Printf("[auth] login succeeded for %s (user_id=%s)", req.Email, userID)
		utils.RespondMessage(w, http.StatusOK, "로그인 성공!")
	case errors.Is(err, account.ErrBadCredentials):
		utils.RespondError(w, http.StatusUnauthorized, "로그인 실패: 비밀번호가 올바르지 않습니다.")
	case errors.Is(err, account.ErrNotFound):
		utils.RespondError(w, http.StatusUnauthorized, "로그인 실패: 존재하지 않는 이메일입니다.")
	default:
		log.Printf("[auth] login failed for %s: %v", req.Email, err)
		utils.RespondError(w, apperr.Status(err), apperr.Message(err))
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "잘못된 요청 형식입니다.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "이메일과 비밀번호를 모두 입력해주세요.")
		return
	}

	userID, err := h.accounts.CreateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("[auth] registration failed for %s: %v", req.Email, err)
		utils.RespondError(w, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	log.Printf("[auth] registered %s (user_id=%s)", req.Email, userID)
	utils.RespondMessage(w, http.StatusCreated, "사용자 등록 성공!")
}
