package httpapi

import (
	"net/http"

	"github.com/riskibarqy/knight-arena/internal/usecase"
)

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignUp")
	defer span.End()

	var req signUpRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.authService.SignUp(ctx, usecase.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.logFailure(ctx, "sign up failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, authResultToDTO(result))
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignIn")
	defer span.End()

	var req signInRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.authService.SignIn(ctx, usecase.SignInInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.logFailure(ctx, "sign in failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, authResultToDTO(result))
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignOut")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.SignOut(ctx, principal.SessionID); err != nil {
		h.logFailure(ctx, "sign out failed", err, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	token, err := bearerToken(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	info, err := h.authService.Session(ctx, token)
	if err != nil {
		h.logFailure(ctx, "get session failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionDTO{
		UserID:    info.Principal.UserID,
		SessionID: info.Principal.SessionID,
		Role:      string(info.Principal.Role),
		ExpiresAt: formatTime(info.ExpiresAt),
		Profile:   profileToDTO(info.Profile),
	})
}

func authResultToDTO(result usecase.AuthResult) authDTO {
	return authDTO{
		Token:     result.Token,
		ExpiresAt: formatTime(result.ExpiresAt),
		Email:     result.Account.Email,
		Profile:   profileToDTO(result.Profile),
	}
}
