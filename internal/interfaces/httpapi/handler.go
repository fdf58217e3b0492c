package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/knight-arena/internal/platform/logging"
	"github.com/riskibarqy/knight-arena/internal/usecase"
)

// Services groups the use cases served over HTTP.
type Services struct {
	Auth        *usecase.AuthService
	Knights     *usecase.KnightService
	Stigmas     *usecase.StigmaService
	Battles     *usecase.BattleService
	Comments    *usecase.CommentService
	Reactions   *usecase.ReactionService
	Profiles    *usecase.ProfileService
	UserKnights *usecase.UserKnightService
	Admin       *usecase.AdminService
	Home        *usecase.HomeService
}

type Handler struct {
	authService       *usecase.AuthService
	knightService     *usecase.KnightService
	stigmaService     *usecase.StigmaService
	battleService     *usecase.BattleService
	commentService    *usecase.CommentService
	reactionService   *usecase.ReactionService
	profileService    *usecase.ProfileService
	userKnightService *usecase.UserKnightService
	adminService      *usecase.AdminService
	homeService       *usecase.HomeService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:       services.Auth,
		knightService:     services.Knights,
		stigmaService:     services.Stigmas,
		battleService:     services.Battles,
		commentService:    services.Comments,
		reactionService:   services.Reactions,
		profileService:    services.Profiles,
		userKnightService: services.UserKnights,
		adminService:      services.Admin,
		homeService:       services.Home,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
func (h *Handler) decodeAndValidate(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decodeJSON(w, r, dst); err != nil {
		return err
	}
	return h.validateRequest(ctx, dst)
}

// logFailure logs at error for server faults and at warn for client errors.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}

func pathValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

// queryInt parses an optional integer query parameter; absent means fallback.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, name)
	}
	return &v, nil
}
