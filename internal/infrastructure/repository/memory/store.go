package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/comment"
	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/reaction"
	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/domain/userknight"
)

// Store holds every table in memory behind one lock so deletes can cascade the
// same way the Postgres schema does.
type Store struct {
	mu sync.RWMutex

	accounts    map[string]user.Account
	profiles    map[string]profile.Profile
	knights     map[string]knight.Knight
	stigmas     map[string]stigma.Stigma
	battles     map[string]battle.Battle
	comments    map[string]comment.Comment
	reactions   map[string]reaction.Reaction
	userKnights map[string]userknight.UserKnight
}

func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]user.Account),
		profiles:    make(map[string]profile.Profile),
		knights:     make(map[string]knight.Knight),
		stigmas:     make(map[string]stigma.Stigma),
		battles:     make(map[string]battle.Battle),
		comments:    make(map[string]comment.Comment),
		reactions:   make(map[string]reaction.Reaction),
		userKnights: make(map[string]userknight.UserKnight),
	}
}

func duplicateError(constraint string) error {
	return fmt.Errorf("duplicate key value violates unique constraint %q", constraint)
}

func pairKey(a, b string) string {
	return a + "::" + b
}

func containsFold(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func cloneBattle(b battle.Battle) battle.Battle {
	b.WinnerTeam = append([]string(nil), b.WinnerTeam...)
	b.LoserTeam = append([]string(nil), b.LoserTeam...)
	return b
}

func sortBattles(items []battle.Battle, order battle.Sort) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if order == battle.SortOldest {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if order == battle.SortOldest {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
}

// deleteCommentTree removes a comment and its descendants. Callers hold mu.
func (s *Store) deleteCommentTree(id string) {
	delete(s.comments, id)
	for childID, c := range s.comments {
		if c.ParentID == id {
			s.deleteCommentTree(childID)
		}
	}
}

// deleteBattle removes a battle with its comments and reactions. Callers hold mu.
func (s *Store) deleteBattle(id string) {
	delete(s.battles, id)
	for cid, c := range s.comments {
		if c.BattleID == id {
			delete(s.comments, cid)
		}
	}
	for rid, r := range s.reactions {
		if r.BattleID == id {
			delete(s.reactions, rid)
		}
	}
}

// deleteAccount cascades to everything the user owns and nulls creator
// references. Callers hold mu.
func (s *Store) deleteAccount(id string) {
	delete(s.accounts, id)
	delete(s.profiles, id)
	for cid, c := range s.comments {
		if c.AuthorID == id {
			s.deleteCommentTree(cid)
		}
	}
	for key, r := range s.reactions {
		if r.UserID == id {
			delete(s.reactions, key)
		}
	}
	for key, uk := range s.userKnights {
		if uk.UserID == id {
			delete(s.userKnights, key)
		}
	}
	for kid, k := range s.knights {
		if k.CreatedBy == id {
			k.CreatedBy = ""
			s.knights[kid] = k
		}
	}
	for bid, b := range s.battles {
		if b.CreatedBy == id {
			b.CreatedBy = ""
			s.battles[bid] = b
		}
	}
}
