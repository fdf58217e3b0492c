package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/session"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

// ManagedUser is a row of the admin user table.
type ManagedUser struct {
	Profile profile.Profile
	Email   string
}

type AdminService struct {
	accounts user.Repository
	profiles profile.Repository
	sessions session.Store
	logger   *logging.Logger
	now      func() time.Time
}

func NewAdminService(
	accounts user.Repository,
	profiles profile.Repository,
	sessions session.Store,
	logger *logging.Logger,
) *AdminService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AdminService{
		accounts: accounts,
		profiles: profiles,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

func requireAdmin(actor user.Principal) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context, actor user.Principal, search string) ([]ManagedUser, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.ListUsers")
	defer span.End()

	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	profiles, err := s.profiles.List(ctx, profile.Filter{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}

	emails := make(map[string]string, len(ids))
	if len(ids) > 0 {
		accounts, err := s.accounts.ListByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		for _, a := range accounts {
			emails[a.ID] = a.Email
		}
	}

	out := make([]ManagedUser, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ManagedUser{Profile: p, Email: emails[p.UserID]})
	}
	return out, nil
}

func (s *AdminService) target(ctx context.Context, actor user.Principal, userID, action string) (profile.Profile, error) {
	if err := requireAdmin(actor); err != nil {
		return profile.Profile{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if userID == actor.UserID {
		return profile.Profile{}, fmt.Errorf("%w: admins cannot %s themselves", ErrInvalidInput, action)
	}

	item, exists, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}
	return item, nil
}

// SetActive toggles an account. Deactivation revokes every session of the user.
func (s *AdminService) SetActive(ctx context.Context, actor user.Principal, userID string, active bool) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SetActive")
	defer span.End()

	item, err := s.target(ctx, actor, userID, "deactivate")
	if err != nil {
		return profile.Profile{}, err
	}

	item.Active = active
	item.UpdatedAt = s.now().UTC()
	if err := s.profiles.Update(ctx, item); err != nil {
		return profile.Profile{}, fmt.Errorf("update profile: %w", err)
	}

	if !active {
		if err := s.sessions.DeleteByUser(ctx, item.UserID); err != nil {
			return profile.Profile{}, fmt.Errorf("%w: revoke sessions: %v", ErrDependencyUnavailable, err)
		}
	}

	s.logger.InfoContext(ctx, "user active flag changed",
		"admin_id", actor.UserID,
		"user_id", item.UserID,
		"active", active,
	)
	return item, nil
}

func (s *AdminService) SetRole(ctx context.Context, actor user.Principal, userID string, role profile.Role) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SetRole")
	defer span.End()

	if !role.Valid() {
		return profile.Profile{}, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, role)
	}
	item, err := s.target(ctx, actor, userID, "change the role of")
	if err != nil {
		return profile.Profile{}, err
	}

	item.Role = role
	item.UpdatedAt = s.now().UTC()
	if err := s.profiles.Update(ctx, item); err != nil {
		return profile.Profile{}, fmt.Errorf("update profile: %w", err)
	}

	s.logger.InfoContext(ctx, "user role changed",
		"admin_id", actor.UserID,
		"user_id", item.UserID,
		"role", string(role),
	)
	return item, nil
}

// DeleteUser removes the account; profile, comments, reactions and knight
// flags go with it.
func (s *AdminService) DeleteUser(ctx context.Context, actor user.Principal, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.DeleteUser")
	defer span.End()

	item, err := s.target(ctx, actor, userID, "delete")
	if err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, item.UserID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if err := s.sessions.DeleteByUser(ctx, item.UserID); err != nil {
		s.logger.WarnContext(ctx, "revoke sessions of deleted user failed", "user_id", item.UserID, "error", err)
	}

	s.logger.InfoContext(ctx, "user deleted", "admin_id", actor.UserID, "user_id", item.UserID)
	return nil
}
