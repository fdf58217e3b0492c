package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/usecase"
)

// parseBattleFilter reads category, meta, knight_id, created_by, sort, page
// and page_size. Out of range paging is clamped by the service.
func parseBattleFilter(r *http.Request) (battle.Filter, error) {
	q := r.URL.Query()
	filter := battle.Filter{
		Category:  q.Get("category"),
		KnightID:  q.Get("knight_id"),
		CreatedBy: q.Get("created_by"),
	}

	switch sort := strings.ToLower(strings.TrimSpace(q.Get("sort"))); sort {
	case "", string(battle.SortRecent):
		filter.Sort = battle.SortRecent
	case string(battle.SortOldest):
		filter.Sort = battle.SortOldest
	default:
		return battle.Filter{}, fmt.Errorf("%w: sort must be recent or oldest", usecase.ErrInvalidInput)
	}

	meta, err := queryBool(r, "meta")
	if err != nil {
		return battle.Filter{}, err
	}
	filter.Meta = meta

	if filter.Page, err = queryInt(r, "page", 1); err != nil {
		return battle.Filter{}, err
	}
	if filter.PageSize, err = queryInt(r, "page_size", battle.DefaultPageSize); err != nil {
		return battle.Filter{}, err
	}
	return filter, nil
}

func (h *Handler) ListBattles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBattles")
	defer span.End()

	filter, err := parseBattleFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	list, err := h.battleService.List(ctx, filter)
	if err != nil {
		h.logFailure(ctx, "list battles failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, battleListToDTO(ctx, list))
}

func (h *Handler) GetBattle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBattle")
	defer span.End()

	battleID := pathValue(r, "battleID")
	detail, err := h.battleService.Get(ctx, battleID, viewerID(ctx))
	if err != nil {
		h.logFailure(ctx, "get battle failed", err, "battle_id", battleID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, battleDetailToDTO(ctx, detail))
}

func (h *Handler) CreateBattle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBattle")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createBattleRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.battleService.Create(ctx, usecase.CreateBattleInput{
		Actor:          principal,
		WinnerTeam:     req.WinnerTeam,
		LoserTeam:      req.LoserTeam,
		WinnerStigmaID: req.WinnerStigmaID,
		LoserStigmaID:  req.LoserStigmaID,
		Category:       req.Category,
		Meta:           req.Meta,
	})
	if err != nil {
		h.logFailure(ctx, "create battle failed", err, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	detail, err := h.battleService.Get(ctx, item.ID, principal.UserID)
	if err != nil {
		h.logFailure(ctx, "load created battle failed", err, "battle_id", item.ID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, battleDetailToDTO(ctx, detail))
}

func (h *Handler) DeleteBattle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteBattle")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	battleID := pathValue(r, "battleID")
	if err := h.battleService.Delete(ctx, principal, battleID); err != nil {
		h.logFailure(ctx, "delete battle failed", err, "battle_id", battleID)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) SetBattleMeta(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetBattleMeta")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setMetaRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	battleID := pathValue(r, "battleID")
	item, err := h.battleService.SetMeta(ctx, principal, battleID, *req.Meta)
	if err != nil {
		h.logFailure(ctx, "set battle meta failed", err, "battle_id", battleID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"id": item.ID, "meta": item.Meta})
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListComments")
	defer span.End()

	battleID := pathValue(r, "battleID")
	threads, err := h.commentService.ListThreads(ctx, battleID)
	if err != nil {
		h.logFailure(ctx, "list comments failed", err, "battle_id", battleID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, threadsToDTO(threads.Threads, threads.Authors))
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateComment")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createCommentRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	battleID := pathValue(r, "battleID")
	item, err := h.commentService.Create(ctx, usecase.CreateCommentInput{
		Actor:    principal,
		BattleID: battleID,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		h.logFailure(ctx, "create comment failed", err, "battle_id", battleID, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, commentToDTO(item, nil))
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteComment")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	commentID := pathValue(r, "commentID")
	if err := h.commentService.Delete(ctx, principal, commentID); err != nil {
		h.logFailure(ctx, "delete comment failed", err, "comment_id", commentID, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleReaction")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req reactionRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	battleID := pathValue(r, "battleID")
	result, err := h.reactionService.Toggle(ctx, usecase.ToggleReactionInput{
		Actor:    principal,
		BattleID: battleID,
		Type:     req.Type,
	})
	if err != nil {
		h.logFailure(ctx, "toggle reaction failed", err, "battle_id", battleID, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reactionResultDTO{
		State:   string(result.State),
		Summary: reactionSummaryToDTO(result.Summary),
	})
}
