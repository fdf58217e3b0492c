package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/platform/id"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
	"github.com/riskibarqy/knight-arena/internal/platform/slug"
)

const (
	defaultImportWorkers = 4
	maxImportBatch       = 200
	maxImageBytes        = 5 << 20
)

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// ImageStorage stores knight artwork and returns its public URL.
type ImageStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

type CreateKnightInput struct {
	Actor    user.Principal
	Name     string
	ImageURL string
}

type UpdateKnightInput struct {
	Actor    user.Principal
	KnightID string
	Name     *string
	ImageURL *string
}

type UploadKnightImageInput struct {
	Actor       user.Principal
	KnightID    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ImportFailure struct {
	Name   string
	Reason string
}

type ImportKnightsResult struct {
	Created []knight.Knight
	Failed  []ImportFailure
}

// KnightUsage pairs a knight with its battle appearance count.
type KnightUsage struct {
	Knight knight.Knight
	Count  int
}

type KnightService struct {
	knights       knight.Repository
	battles       battle.Repository
	storage       ImageStorage
	idGen         id.Generator
	logger        *logging.Logger
	importWorkers int
	now           func() time.Time
}

func NewKnightService(
	knights knight.Repository,
	battles battle.Repository,
	storage ImageStorage,
	idGen id.Generator,
	importWorkers int,
	logger *logging.Logger,
) *KnightService {
	if logger == nil {
		logger = logging.Default()
	}
	if importWorkers < 1 {
		importWorkers = defaultImportWorkers
	}

	return &KnightService{
		knights:       knights,
		battles:       battles,
		storage:       storage,
		idGen:         idGen,
		logger:        logger,
		importWorkers: importWorkers,
		now:           time.Now,
	}
}

func (s *KnightService) List(ctx context.Context, search string) ([]knight.Knight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KnightService.List")
	defer span.End()

	items, err := s.knights.List(ctx, knight.Filter{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, fmt.Errorf("list knights: %w", err)
	}
	return items, nil
}

func (s *KnightService) Get(ctx context.Context, knightID string) (knight.Knight, error) {
	knightID = strings.TrimSpace(knightID)
	if knightID == "" {
		return knight.Knight{}, fmt.Errorf("%w: knight id is required", ErrInvalidInput)
	}

	item, exists, err := s.knights.GetByID(ctx, knightID)
	if err != nil {
		return knight.Knight{}, fmt.Errorf("get knight: %w", err)
	}
	if !exists {
		return knight.Knight{}, fmt.Errorf("%w: knight=%s", ErrNotFound, knightID)
	}
	return item, nil
}

// GetByURL resolves "<id prefix>-<slug>". When several knights share both,
// the oldest one wins and the collision is logged.
func (s *KnightService) GetByURL(ctx context.Context, param string) (knight.Knight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KnightService.GetByURL")
	defer span.End()

	parts, ok := slug.ParseKnightURL(strings.TrimSpace(param))
	if !ok {
		return knight.Knight{}, fmt.Errorf("%w: malformed knight url", ErrInvalidInput)
	}

	candidates, err := s.knights.ListByIDPrefix(ctx, parts.IDPrefix)
	if err != nil {
		return knight.Knight{}, fmt.Errorf("list knights by prefix: %w", err)
	}

	var matches []knight.Knight
	for _, k := range candidates {
		if k.Slug() == parts.Slug {
			matches = append(matches, k)
		}
	}
	if len(matches) == 0 {
		return knight.Knight{}, fmt.Errorf("%w: knight url=%s", ErrNotFound, param)
	}
	if len(matches) > 1 {
		s.logger.WarnContext(ctx, "knight url matches several knights",
			"url", param,
			"matches", len(matches),
			"picked_id", matches[0].ID,
		)
	}
	return matches[0], nil
}

func (s *KnightService) Create(ctx context.Context, input CreateKnightInput) (knight.Knight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KnightService.Create")
	defer span.End()

	if input.Actor.UserID == "" {
		return knight.Knight{}, fmt.Errorf("%w: sign in to create knights", ErrUnauthorized)
	}
	return s.create(ctx, input.Actor.UserID, input.Name, input.ImageURL)
}

func (s *KnightService) create(ctx context.Context, createdBy, name, imageURL string) (knight.Knight, error) {
	name = strings.TrimSpace(name)
	if err := knight.ValidateName(name); err != nil {
		return knight.Knight{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	knightID, err := s.idGen.NewID()
	if err != nil {
		return knight.Knight{}, fmt.Errorf("generate knight id: %w", err)
	}

	now := s.now().UTC()
	item := knight.Knight{
		ID:        knightID,
		Name:      name,
		ImageURL:  strings.TrimSpace(imageURL),
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.knights.Create(ctx, item); err != nil {
		if isDuplicateConstraintError(err) {
			return knight.Knight{}, fmt.Errorf("%w: knight %q", ErrConflict, name)
		}
		return knight.Knight{}, fmt.Errorf("create knight: %w", err)
	}
	return item, nil
}

// Update changes name or image. Only the creator or an admin may edit.
func (s *KnightService) Update(ctx context.Context, input UpdateKnightInput) (knight.Knight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KnightService.Update")
	defer span.End()

	item, err := s.Get(ctx, input.KnightID)
	if err != nil {
		return knight.Knight{}, err
	}
	if !input.Actor.IsAdmin() && (item.CreatedBy == "" || item.CreatedBy != input.Actor.UserID) {
		return knight.Knight{}, fmt.Errorf("%w: only the creator or an admin can edit this knight", ErrForbidden)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := knight.ValidateName(name); err != nil {
			return knight.Knight{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		item.Name = name
	}
	if input.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	item.UpdatedAt = s.now().UTC()

	if err := s.knights.Update(ctx, item); err != nil {
		if isDuplicateConstraintError(err) {
			return knight.Knight{}, fmt.Errorf("%w: knight %q", ErrConflict, item.Name)
		}
		return knight.Knight{}, fmt.Errorf("update knight: %w", err)
	}
	return item, nil
}

func (s *KnightService) Delete(ctx context.Context, actor user.Principal, knightID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.KnightService.Delete")
	defer span.End()

	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if _, err := s.Get(ctx, knightID); err != nil {
		return err
	}
	if err := s.knights.Delete(ctx, strings.TrimSpace(knightID)); err != nil {
		return fmt.Errorf("delete knight: %w", err)
	}
	return nil
}

func (s *KnightService) UploadImage(ctx context.Context, input UploadKnightImageInput) (knight.Knight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KnightService.UploadImage")
	defer span.End()

	if !input.Actor.IsAdmin() {
		return knight.Knight{}, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if s.storage == nil {
		return knight.Knight{}, fmt.Errorf("%w: image storage is disabled", ErrDependencyUnavailable)
	}

	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return knight.Knight{}, fmt.Errorf("%w: unsupported image type %q", ErrInvalidInput, input.ContentType)
	}
	if input.Body == nil || input.Size <= 0 {
		return knight.Knight{}, fmt.Errorf("%w: image body is required", ErrInvalidInput)
	}
	if input.Size > maxImageBytes {
		return knight.Knight{}, fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidInput, maxImageBytes)
	}

	item, err := s.Get(ctx, input.KnightID)
	if err != nil {
		return knight.Knight{}, err
	}

	objectID, err := s.idGen.NewID()
	if err != nil {
		return knight.Knight{}, fmt.Errorf("generate object id: %w", err)
	}
	key := fmt.Sprintf("knights/%s/%s.%s", item.ID, objectID, ext)

	url, err := s.storage.Upload(ctx, key, contentType, input.Body, input.Size)
	if err != nil {
		return knight.Knight{}, fmt.Errorf("%w: upload knight image: %v", ErrDependencyUnavailable, err)
	}

	item.ImageURL = url
	item.UpdatedAt = s.now().UTC()
	if err := s.knights.Update(ctx, item); err != nil {
		return knight.Knight{}, fmt.Errorf("update knight image: %w", err)
	}
	return item, nil
}

// Import creates knights in bulk on a bounded worker pool. Blank and repeated
// names are ignored; per-name failures are reported, not fatal.
func (s *KnightService) Import(ctx context.Context, actor user.Principal, names []string) (ImportKnightsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KnightService.Import")
	defer span.End()

	if !actor.IsAdmin() {
		return ImportKnightsResult{}, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := slug.Slugify(name)
		if name == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, name)
	}
	if len(unique) == 0 {
		return ImportKnightsResult{}, fmt.Errorf("%w: at least one name is required", ErrInvalidInput)
	}
	if len(unique) > maxImportBatch {
		return ImportKnightsResult{}, fmt.Errorf("%w: at most %d knights per import", ErrInvalidInput, maxImportBatch)
	}

	pool, err := ants.NewPool(min(s.importWorkers, len(unique)))
	if err != nil {
		return ImportKnightsResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	type outcome struct {
		index  int
		knight knight.Knight
		err    error
	}

	var (
		mu       sync.Mutex
		outcomes = make([]outcome, 0, len(unique))
		workers  sync.WaitGroup
	)
	for i, name := range unique {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			created, err := s.create(ctx, actor.UserID, name, "")
			mu.Lock()
			outcomes = append(outcomes, outcome{index: i, knight: created, err: err})
			mu.Unlock()
		}); err != nil {
			workers.Done()
			workers.Wait()
			return ImportKnightsResult{}, fmt.Errorf("submit import task: %w", err)
		}
	}
	workers.Wait()

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].index < outcomes[j].index })

	var result ImportKnightsResult
	for _, o := range outcomes {
		if o.err != nil {
			result.Failed = append(result.Failed, ImportFailure{Name: unique[o.index], Reason: o.err.Error()})
			continue
		}
		result.Created = append(result.Created, o.knight)
	}

	s.logger.InfoContext(ctx, "knight import finished",
		"user_id", actor.UserID,
		"created", len(result.Created),
		"failed", len(result.Failed),
	)
	return result, nil
}

// MostUsed ranks knights by appearances across all battles.
func (s *KnightService) MostUsed(ctx context.Context, limit int) ([]KnightUsage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KnightService.MostUsed")
	defer span.End()

	if limit <= 0 {
		limit = 5
	}

	battles, err := s.battles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list battles: %w", err)
	}
	return rankKnightUsage(ctx, s.knights, battle.CountKnightUsage(battles), limit)
}

// rankKnightUsage resolves usage rows to knights, skipping deleted ones.
func rankKnightUsage(ctx context.Context, repo knight.Repository, usage []battle.KnightUsage, limit int) ([]KnightUsage, error) {
	if len(usage) == 0 {
		return []KnightUsage{}, nil
	}

	ids := make([]string, 0, len(usage))
	for _, u := range usage {
		ids = append(ids, u.KnightID)
	}
	knights, err := repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list knights by ids: %w", err)
	}
	idx := battle.NewKnightIndex(knights)

	out := make([]KnightUsage, 0, min(limit, len(usage)))
	for _, u := range usage {
		if len(out) == limit {
			break
		}
		k, ok := idx[u.KnightID]
		if !ok {
			continue
		}
		out = append(out, KnightUsage{Knight: k, Count: u.Count})
	}
	return out, nil
}
