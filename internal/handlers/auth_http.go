package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/apperror"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/service"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

type AuthHTTP struct {
	svc *service.AuthService
	log zerolog.Logger
}

func NewAuthHTTP(log zerolog.Logger, s *service.AuthService) *AuthHTTP {
	return &AuthHTTP{svc: s, log: log}
}

// Login answers {token, user, role} for valid credentials.
func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := utils.Decode(r, &in); err != nil {
			utils.Fail(w, h.log, err, "Login Failed")
			return
		}
		res, err := h.svc.Login(r.Context(), in.Username, in.Password)
		if err != nil {
			utils.Fail(w, h.log, err, "Login Failed")
			return
		}
		utils.JSON(w, http.StatusOK, res)
	}
}

func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := utils.PrincipalFrom(r.Context())
		if !ok {
			utils.Fail(w, h.log, apperror.Unauthorized("No token provided"), "")
			return
		}
		u, err := h.svc.Me(r.Context(), p.UserID)
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to load profile")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}
