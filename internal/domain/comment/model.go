package comment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxContentLen = 2000

// Comment belongs to a battle. ParentID is empty for top-level comments.
type Comment struct {
	ID        string
	BattleID  string
	AuthorID  string
	Content   string
	ParentID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Comment) IsMain() bool {
	return c.ParentID == ""
}

func (c Comment) Validate() error {
	if c.ID == "" || c.BattleID == "" || c.AuthorID == "" {
		return fmt.Errorf("comment id, battle and author are required")
	}
	return ValidateContent(c.Content)
}

func ValidateContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("comment content is required")
	}
	if utf8.RuneCountInString(content) > MaxContentLen {
		return fmt.Errorf("comment must have at most %d characters", MaxContentLen)
	}
	return nil
}
