package httpapi

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/riskibarqy/knight-arena/internal/usecase"
)

const (
	maxImageUploadBytes = 5 << 20
	defaultMostUsed     = 5
	maxMostUsed         = 50
)

func (h *Handler) ListKnights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListKnights")
	defer span.End()

	search := r.URL.Query().Get("search")
	items, err := h.knightService.List(ctx, search)
	if err != nil {
		h.logFailure(ctx, "list knights failed", err, "search", search)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, knightsToDTO(items))
}

func (h *Handler) GetKnight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetKnight")
	defer span.End()

	knightID := pathValue(r, "knightID")
	item, err := h.knightService.Get(ctx, knightID)
	if err != nil {
		h.logFailure(ctx, "get knight failed", err, "knight_id", knightID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, knightToDTO(item))
}

func (h *Handler) GetKnightByURL(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetKnightByURL")
	defer span.End()

	param := pathValue(r, "param")
	item, err := h.knightService.GetByURL(ctx, param)
	if err != nil {
		h.logFailure(ctx, "get knight by url failed", err, "param", param)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, knightToDTO(item))
}

func (h *Handler) ListMostUsedKnights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMostUsedKnights")
	defer span.End()

	limit, err := queryInt(r, "limit", defaultMostUsed)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if limit < 1 || limit > maxMostUsed {
		writeError(ctx, w, fmt.Errorf("%w: limit must be between 1 and %d", usecase.ErrInvalidInput, maxMostUsed))
		return
	}

	items, err := h.knightService.MostUsed(ctx, limit)
	if err != nil {
		h.logFailure(ctx, "list most used knights failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, knightUsageToDTO(items))
}

func (h *Handler) CreateKnight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateKnight")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req knightRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.knightService.Create(ctx, usecase.CreateKnightInput{
		Actor:    principal,
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.logFailure(ctx, "create knight failed", err, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, knightToDTO(item))
}

func (h *Handler) UpdateKnight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateKnight")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateKnightRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	knightID := pathValue(r, "knightID")
	item, err := h.knightService.Update(ctx, usecase.UpdateKnightInput{
		Actor:    principal,
		KnightID: knightID,
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.logFailure(ctx, "update knight failed", err, "knight_id", knightID, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, knightToDTO(item))
}

func (h *Handler) DeleteKnight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteKnight")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	knightID := pathValue(r, "knightID")
	if err := h.knightService.Delete(ctx, principal, knightID); err != nil {
		h.logFailure(ctx, "delete knight failed", err, "knight_id", knightID)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

// UploadKnightImage takes the raw image as the request body.
func (h *Handler) UploadKnightImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadKnightImage")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid Content-Type header", usecase.ErrInvalidInput))
		return
	}
	if r.ContentLength <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: Content-Length is required", usecase.ErrInvalidInput))
		return
	}
	if r.ContentLength > maxImageUploadBytes {
		writeError(ctx, w, errBodyTooLarge)
		return
	}

	knightID := pathValue(r, "knightID")
	item, err := h.knightService.UploadImage(ctx, usecase.UploadKnightImageInput{
		Actor:       principal,
		KnightID:    knightID,
		ContentType: contentType,
		Size:        r.ContentLength,
		Body:        http.MaxBytesReader(w, r.Body, maxImageUploadBytes),
	})
	if err != nil {
		h.logFailure(ctx, "upload knight image failed", err, "knight_id", knightID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, knightToDTO(item))
}

func (h *Handler) ImportKnights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportKnights")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req importKnightsRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.knightService.Import(ctx, principal, req.Names)
	if err != nil {
		h.logFailure(ctx, "import knights failed", err, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	failed := make([]importFailureDTO, 0, len(result.Failed))
	for _, f := range result.Failed {
		failed = append(failed, importFailureDTO{Name: f.Name, Reason: f.Reason})
	}
	writeSuccess(ctx, w, http.StatusOK, importKnightsDTO{
		Created: knightsToDTO(result.Created),
		Failed:  failed,
	})
}

func (h *Handler) ListStigmas(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStigmas")
	defer span.End()

	items, err := h.stigmaService.List(ctx)
	if err != nil {
		h.logFailure(ctx, "list stigmas failed", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]stigmaDTO, 0, len(items))
	for _, item := range items {
		out = append(out, stigmaToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateStigma(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateStigma")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req stigmaRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.stigmaService.Create(ctx, usecase.CreateStigmaInput{
		Actor:    principal,
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.logFailure(ctx, "create stigma failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, stigmaToDTO(item))
}
