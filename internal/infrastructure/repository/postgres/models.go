package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/comment"
	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/reaction"
	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/domain/userknight"
)

type accountTableModel struct {
	ID           int64     `db:"id,readonly"`
	PublicID     string    `db:"public_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func accountFromRow(row accountTableModel) user.Account {
	return user.Account{
		ID:           row.PublicID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}

type profileTableModel struct {
	ID               int64          `db:"id,readonly"`
	UserID           string         `db:"user_id"`
	DisplayName      string         `db:"display_name"`
	Active           bool           `db:"active"`
	FavoriteKnightID sql.NullString `db:"favorite_knight_id"`
	Role             string         `db:"role"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func profileFromRow(row profileTableModel) profile.Profile {
	return profile.Profile{
		UserID:           row.UserID,
		DisplayName:      row.DisplayName,
		Active:           row.Active,
		FavoriteKnightID: fromNullString(row.FavoriteKnightID),
		Role:             profile.Role(row.Role),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

type knightTableModel struct {
	ID        int64          `db:"id,readonly"`
	PublicID  string         `db:"public_id"`
	Name      string         `db:"name"`
	ImageURL  string         `db:"image_url"`
	CreatedBy sql.NullString `db:"created_by"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func knightFromRow(row knightTableModel) knight.Knight {
	return knight.Knight{
		ID:        row.PublicID,
		Name:      row.Name,
		ImageURL:  row.ImageURL,
		CreatedBy: fromNullString(row.CreatedBy),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type stigmaTableModel struct {
	ID        int64     `db:"id,readonly"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	ImageURL  string    `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
}

func stigmaFromRow(row stigmaTableModel) stigma.Stigma {
	return stigma.Stigma{
		ID:        row.PublicID,
		Name:      row.Name,
		ImageURL:  row.ImageURL,
		CreatedAt: row.CreatedAt,
	}
}

type battleTableModel struct {
	ID             int64          `db:"id,readonly"`
	PublicID       string         `db:"public_id"`
	WinnerTeam     pq.StringArray `db:"winner_team"`
	LoserTeam      pq.StringArray `db:"loser_team"`
	WinnerStigmaID sql.NullString `db:"winner_stigma_id"`
	LoserStigmaID  sql.NullString `db:"loser_stigma_id"`
	Category       string         `db:"category"`
	Meta           bool           `db:"meta"`
	CreatedBy      sql.NullString `db:"created_by"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func battleFromRow(row battleTableModel) battle.Battle {
	return battle.Battle{
		ID:             row.PublicID,
		WinnerTeam:     append([]string(nil), row.WinnerTeam...),
		LoserTeam:      append([]string(nil), row.LoserTeam...),
		WinnerStigmaID: fromNullString(row.WinnerStigmaID),
		LoserStigmaID:  fromNullString(row.LoserStigmaID),
		Category:       row.Category,
		Meta:           row.Meta,
		CreatedBy:      fromNullString(row.CreatedBy),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func battlesFromRows(rows []battleTableModel) []battle.Battle {
	out := make([]battle.Battle, 0, len(rows))
	for _, row := range rows {
		out = append(out, battleFromRow(row))
	}
	return out
}

type commentTableModel struct {
	ID        int64          `db:"id,readonly"`
	PublicID  string         `db:"public_id"`
	BattleID  string         `db:"battle_id"`
	AuthorID  string         `db:"author_id"`
	Content   string         `db:"content"`
	ParentID  sql.NullString `db:"parent_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func commentFromRow(row commentTableModel) comment.Comment {
	return comment.Comment{
		ID:        row.PublicID,
		BattleID:  row.BattleID,
		AuthorID:  row.AuthorID,
		Content:   row.Content,
		ParentID:  fromNullString(row.ParentID),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type reactionTableModel struct {
	ID        int64     `db:"id,readonly"`
	PublicID  string    `db:"public_id"`
	BattleID  string    `db:"battle_id"`
	UserID    string    `db:"user_id"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func reactionFromRow(row reactionTableModel) reaction.Reaction {
	return reaction.Reaction{
		ID:        row.PublicID,
		BattleID:  row.BattleID,
		UserID:    row.UserID,
		Type:      reaction.Type(row.Type),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type userKnightTableModel struct {
	ID        int64     `db:"id,readonly"`
	UserID    string    `db:"user_id"`
	KnightID  string    `db:"knight_id"`
	Owned     bool      `db:"owned"`
	UpdatedAt time.Time `db:"updated_at"`
}

func userKnightFromRow(row userKnightTableModel) userknight.UserKnight {
	return userknight.UserKnight{
		UserID:    row.UserID,
		KnightID:  row.KnightID,
		Owned:     row.Owned,
		UpdatedAt: row.UpdatedAt,
	}
}
