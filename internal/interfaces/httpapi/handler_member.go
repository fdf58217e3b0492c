package httpapi

import (
	"net/http"

	"github.com/riskibarqy/knight-arena/internal/usecase"
)

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMembers")
	defer span.End()

	activeOnly := true
	if v, err := queryBool(r, "active_only"); err != nil {
		writeError(ctx, w, err)
		return
	} else if v != nil {
		activeOnly = *v
	}

	search := r.URL.Query().Get("search")
	items, err := h.profileService.ListMembers(ctx, search, activeOnly)
	if err != nil {
		h.logFailure(ctx, "list members failed", err, "search", search)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profilesToDTO(items))
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMember")
	defer span.End()

	userID := pathValue(r, "userID")
	item, err := h.profileService.GetMember(ctx, userID)
	if err != nil {
		h.logFailure(ctx, "get member failed", err, "user_id", userID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, memberToDTO(item))
}

func (h *Handler) GetMemberByURL(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMemberByURL")
	defer span.End()

	param := pathValue(r, "param")
	item, err := h.profileService.GetMemberByURL(ctx, param)
	if err != nil {
		h.logFailure(ctx, "get member by url failed", err, "param", param)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, memberToDTO(item))
}

func (h *Handler) ListMemberKnights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMemberKnights")
	defer span.End()

	userID := pathValue(r, "userID")
	items, err := h.userKnightService.ListByUser(ctx, userID)
	if err != nil {
		h.logFailure(ctx, "list member knights failed", err, "user_id", userID)
		writeError(ctx, w, err)
		return
	}

	out := make([]ownedKnightDTO, 0, len(items))
	for _, item := range items {
		out = append(out, ownedKnightToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateProfileRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profileService.UpdateMe(ctx, usecase.UpdateProfileInput{
		Actor:            principal,
		DisplayName:      req.DisplayName,
		FavoriteKnightID: req.FavoriteKnightID,
	})
	if err != nil {
		h.logFailure(ctx, "update profile failed", err, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) SetMyKnight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMyKnight")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setOwnedRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	knightID := pathValue(r, "knightID")
	item, err := h.userKnightService.SetOwned(ctx, principal, knightID, *req.Owned)
	if err != nil {
		h.logFailure(ctx, "set owned knight failed", err, "user_id", principal.UserID, "knight_id", knightID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ownedKnightToDTO(item))
}
