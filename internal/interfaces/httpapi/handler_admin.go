package httpapi

import (
	"net/http"

	"github.com/riskibarqy/knight-arena/internal/domain/profile"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.adminService.ListUsers(ctx, principal, r.URL.Query().Get("search"))
	if err != nil {
		h.logFailure(ctx, "list users failed", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]managedUserDTO, 0, len(items))
	for _, item := range items {
		out = append(out, managedUserDTO{profileDTO: profileToDTO(item.Profile), Email: item.Email})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetUserActive")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setActiveRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	userID := pathValue(r, "userID")
	item, err := h.adminService.SetActive(ctx, principal, userID, *req.Active)
	if err != nil {
		h.logFailure(ctx, "set user active failed", err, "target_user_id", userID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetUserRole")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setRoleRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	userID := pathValue(r, "userID")
	item, err := h.adminService.SetRole(ctx, principal, userID, profile.Role(req.Role))
	if err != nil {
		h.logFailure(ctx, "set user role failed", err, "target_user_id", userID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteUser")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	userID := pathValue(r, "userID")
	if err := h.adminService.DeleteUser(ctx, principal, userID); err != nil {
		h.logFailure(ctx, "delete user failed", err, "target_user_id", userID)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
