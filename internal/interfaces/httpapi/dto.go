package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/comment"
	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/reaction"
	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
	"github.com/riskibarqy/knight-arena/internal/usecase"
)

type signUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"display_name" validate:"required,min=3,max=32"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type knightRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type updateKnightRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=80"`
	ImageURL *string `json:"image_url" validate:"omitempty"`
}

type importKnightsRequest struct {
	Names []string `json:"names" validate:"required,min=1,max=200"`
}

type stigmaRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type createBattleRequest struct {
	WinnerTeam     []string `json:"winner_team" validate:"required,min=1,max=5,dive,required"`
	LoserTeam      []string `json:"loser_team" validate:"required,min=1,max=5,dive,required"`
	WinnerStigmaID string   `json:"winner_stigma_id" validate:"required"`
	LoserStigmaID  string   `json:"loser_stigma_id" validate:"required"`
	Category       string   `json:"category" validate:"required,max=40"`
	Meta           bool     `json:"meta"`
}

type setMetaRequest struct {
	Meta *bool `json:"meta" validate:"required"`
}

type createCommentRequest struct {
	Content  string `json:"content" validate:"required,max=2000"`
	ParentID string `json:"parent_id" validate:"omitempty"`
}

type reactionRequest struct {
	Type string `json:"type" validate:"required,oneof=like dislike"`
}

type updateProfileRequest struct {
	DisplayName      *string `json:"display_name" validate:"omitempty,min=3,max=32"`
	FavoriteKnightID *string `json:"favorite_knight_id"`
}

type setOwnedRequest struct {
	Owned *bool `json:"owned" validate:"required"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin member"`
}

type authDTO struct {
	Token     string     `json:"token"`
	ExpiresAt string     `json:"expires_at"`
	Email     string     `json:"email"`
	Profile   profileDTO `json:"profile"`
}

type sessionDTO struct {
	UserID    string     `json:"user_id"`
	SessionID string     `json:"session_id"`
	Role      string     `json:"role"`
	ExpiresAt string     `json:"expires_at"`
	Profile   profileDTO `json:"profile"`
}

type knightDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	URL       string `json:"url"`
	ImageURL  string `json:"image_url,omitempty"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type knightUsageDTO struct {
	Knight knightDTO `json:"knight"`
	Count  int       `json:"count"`
}

type importFailureDTO struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type importKnightsDTO struct {
	Created []knightDTO        `json:"created"`
	Failed  []importFailureDTO `json:"failed"`
}

type stigmaDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

type battleDTO struct {
	ID           string      `json:"id"`
	URL          string      `json:"url"`
	WinnerTeam   []knightDTO `json:"winner_team"`
	LoserTeam    []knightDTO `json:"loser_team"`
	WinnerStigma *stigmaDTO  `json:"winner_stigma,omitempty"`
	LoserStigma  *stigmaDTO  `json:"loser_stigma,omitempty"`
	Category     string      `json:"category"`
	Meta         bool        `json:"meta"`
	CreatedBy    string      `json:"created_by,omitempty"`
	CreatedAt    string      `json:"created_at"`
	UpdatedAt    string      `json:"updated_at"`
}

type battlePageDTO struct {
	Items    []battleDTO `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

type commentDTO struct {
	ID        string      `json:"id"`
	BattleID  string      `json:"battle_id"`
	ParentID  string      `json:"parent_id,omitempty"`
	Content   string      `json:"content"`
	Author    *profileDTO `json:"author,omitempty"`
	CreatedAt string      `json:"created_at"`
}

type threadDTO struct {
	commentDTO
	Replies []commentDTO `json:"replies"`
}

type reactionSummaryDTO struct {
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
	Mine     string `json:"mine"`
}

type reactionResultDTO struct {
	State   string             `json:"state"`
	Summary reactionSummaryDTO `json:"summary"`
}

type battleDetailDTO struct {
	battleDTO
	Creator   *profileDTO        `json:"creator,omitempty"`
	Comments  []threadDTO        `json:"comments"`
	Reactions reactionSummaryDTO `json:"reactions"`
	Related   []battleDTO        `json:"related"`
}

type profileDTO struct {
	UserID           string `json:"user_id"`
	DisplayName      string `json:"display_name"`
	URL              string `json:"url"`
	Active           bool   `json:"active"`
	Role             string `json:"role"`
	FavoriteKnightID string `json:"favorite_knight_id,omitempty"`
	CreatedAt        string `json:"created_at"`
}

type memberStatsDTO struct {
	BattlesCreated int              `json:"battles_created"`
	TopKnights     []knightUsageDTO `json:"top_knights"`
}

type memberDTO struct {
	Profile        profileDTO     `json:"profile"`
	FavoriteKnight *knightDTO     `json:"favorite_knight,omitempty"`
	Stats          memberStatsDTO `json:"stats"`
}

type ownedKnightDTO struct {
	Knight    knightDTO `json:"knight"`
	Owned     bool      `json:"owned"`
	UpdatedAt string    `json:"updated_at,omitempty"`
}

type managedUserDTO struct {
	profileDTO
	Email string `json:"email"`
}

type totalsDTO struct {
	Battles int `json:"battles"`
	Knights int `json:"knights"`
	Members int `json:"members"`
}

type overviewDTO struct {
	Recent     []battleDTO      `json:"recent"`
	Meta       []battleDTO      `json:"meta"`
	TopKnights []knightUsageDTO `json:"top_knights"`
	Totals     totalsDTO        `json:"totals"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func knightToDTO(item knight.Knight) knightDTO {
	return knightDTO{
		ID:        item.ID,
		Name:      item.Name,
		Slug:      item.Slug(),
		URL:       item.URL(),
		ImageURL:  item.ImageURL,
		CreatedBy: item.CreatedBy,
		CreatedAt: formatTime(item.CreatedAt),
		UpdatedAt: formatTime(item.UpdatedAt),
	}
}

func knightsToDTO(items []knight.Knight) []knightDTO {
	out := make([]knightDTO, 0, len(items))
	for _, item := range items {
		out = append(out, knightToDTO(item))
	}
	return out
}

func knightUsageToDTO(items []usecase.KnightUsage) []knightUsageDTO {
	out := make([]knightUsageDTO, 0, len(items))
	for _, item := range items {
		out = append(out, knightUsageDTO{Knight: knightToDTO(item.Knight), Count: item.Count})
	}
	return out
}

func stigmaToDTO(item stigma.Stigma) stigmaDTO {
	return stigmaDTO{ID: item.ID, Name: item.Name, ImageURL: item.ImageURL}
}

func stigmaRef(idx stigma.Index, stigmaID string) *stigmaDTO {
	item, ok := idx[stigmaID]
	if !ok {
		return nil
	}
	dto := stigmaToDTO(item)
	return &dto
}

func profileToDTO(item profile.Profile) profileDTO {
	return profileDTO{
		UserID:           item.UserID,
		DisplayName:      item.DisplayName,
		URL:              item.URL(),
		Active:           item.Active,
		Role:             string(item.Role),
		FavoriteKnightID: item.FavoriteKnightID,
		CreatedAt:        formatTime(item.CreatedAt),
	}
}

func profilesToDTO(items []profile.Profile) []profileDTO {
	out := make([]profileDTO, 0, len(items))
	for _, item := range items {
		out = append(out, profileToDTO(item))
	}
	return out
}

// battleToDTO resolves team ids through knights. Ids missing from the index
// are dropped from the rendered teams but still shape the URL as "unknown".
func battleToDTO(item battle.Battle, knights battle.KnightIndex, stigmas stigma.Index) battleDTO {
	return battleDTO{
		ID:           item.ID,
		URL:          item.URL(knights),
		WinnerTeam:   knightsToDTO(knights.Resolve(item.WinnerTeam)),
		LoserTeam:    knightsToDTO(knights.Resolve(item.LoserTeam)),
		WinnerStigma: stigmaRef(stigmas, item.WinnerStigmaID),
		LoserStigma:  stigmaRef(stigmas, item.LoserStigmaID),
		Category:     item.Category,
		Meta:         item.Meta,
		CreatedBy:    item.CreatedBy,
		CreatedAt:    formatTime(item.CreatedAt),
		UpdatedAt:    formatTime(item.UpdatedAt),
	}
}

func battlesToDTO(items []battle.Battle, knights battle.KnightIndex, stigmas stigma.Index) []battleDTO {
	out := make([]battleDTO, 0, len(items))
	for _, item := range items {
		out = append(out, battleToDTO(item, knights, stigmas))
	}
	return out
}

func battleListToDTO(ctx context.Context, list usecase.BattleList) battlePageDTO {
	_, span := startSpan(ctx, "httpapi.battleListToDTO")
	defer span.End()

	return battlePageDTO{
		Items:    battlesToDTO(list.Items, list.Knights, list.Stigmas),
		Total:    list.Total,
		Page:     list.Page.Page,
		PageSize: list.PageSize,
	}
}

func commentToDTO(item comment.Comment, authors map[string]profile.Profile) commentDTO {
	dto := commentDTO{
		ID:        item.ID,
		BattleID:  item.BattleID,
		ParentID:  item.ParentID,
		Content:   item.Content,
		CreatedAt: formatTime(item.CreatedAt),
	}
	if author, ok := authors[item.AuthorID]; ok {
		p := profileToDTO(author)
		dto.Author = &p
	}
	return dto
}

func threadsToDTO(threads []comment.Thread, authors map[string]profile.Profile) []threadDTO {
	out := make([]threadDTO, 0, len(threads))
	for _, thread := range threads {
		replies := make([]commentDTO, 0, len(thread.Replies))
		for _, reply := range thread.Replies {
			replies = append(replies, commentToDTO(reply, authors))
		}
		out = append(out, threadDTO{commentDTO: commentToDTO(thread.Comment, authors), Replies: replies})
	}
	return out
}

func reactionSummaryToDTO(s reaction.Summary) reactionSummaryDTO {
	return reactionSummaryDTO{Likes: s.Likes, Dislikes: s.Dislikes, Mine: string(s.Mine)}
}

func battleDetailToDTO(ctx context.Context, detail usecase.BattleDetail) battleDetailDTO {
	_, span := startSpan(ctx, "httpapi.battleDetailToDTO")
	defer span.End()

	dto := battleDetailDTO{
		battleDTO: battleToDTO(detail.Battle, detail.Knights, detail.Stigmas),
		Comments:  threadsToDTO(detail.Threads, detail.Authors),
		Reactions: reactionSummaryToDTO(detail.Reactions),
		Related:   battlesToDTO(detail.Related, detail.Knights, detail.Stigmas),
	}
	if detail.Creator != nil {
		creator := profileToDTO(*detail.Creator)
		dto.Creator = &creator
	}
	return dto
}

func memberToDTO(item usecase.Member) memberDTO {
	dto := memberDTO{
		Profile: profileToDTO(item.Profile),
		Stats: memberStatsDTO{
			BattlesCreated: item.Stats.BattlesCreated,
			TopKnights:     knightUsageToDTO(item.Stats.TopKnights),
		},
	}
	if item.FavoriteKnight != nil {
		fav := knightToDTO(*item.FavoriteKnight)
		dto.FavoriteKnight = &fav
	}
	return dto
}

func ownedKnightToDTO(item usecase.OwnedKnight) ownedKnightDTO {
	return ownedKnightDTO{
		Knight:    knightToDTO(item.Knight),
		Owned:     item.Owned,
		UpdatedAt: formatTime(item.UpdatedAt),
	}
}

func overviewToDTO(ctx context.Context, item usecase.Overview) overviewDTO {
	_, span := startSpan(ctx, "httpapi.overviewToDTO")
	defer span.End()

	return overviewDTO{
		Recent:     battlesToDTO(item.Recent, item.Knights, item.Stigmas),
		Meta:       battlesToDTO(item.Meta, item.Knights, item.Stigmas),
		TopKnights: knightUsageToDTO(item.TopKnights),
		Totals: totalsDTO{
			Battles: item.Totals.Battles,
			Knights: item.Totals.Knights,
			Members: item.Totals.Members,
		},
	}
}
