package httpapi

import "net/http"

func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHome")
	defer span.End()

	overview, err := h.homeService.Overview(ctx)
	if err != nil {
		h.logFailure(ctx, "get home overview failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(ctx, overview))
}
