package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/session"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/platform/id"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

type AuthConfig struct {
	JWTSecret  string
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
}

type SignInInput struct {
	Email    string
	Password string
}

// AuthResult is returned by sign-up and sign-in.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Account   user.Account
	Profile   profile.Profile
}

// SessionInfo describes the caller behind a verified token.
type SessionInfo struct {
	Principal user.Principal
	Profile   profile.Profile
	ExpiresAt time.Time
}

type tokenClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type AuthService struct {
	accounts user.Repository
	profiles profile.Repository
	sessions session.Store
	idGen    id.Generator
	cfg      AuthConfig
	logger   *logging.Logger
	now      func() time.Time
}

func NewAuthService(
	accounts user.Repository,
	profiles profile.Repository,
	sessions session.Store,
	idGen id.Generator,
	cfg AuthConfig,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "knight-arena"
	}

	return &AuthService{
		accounts: accounts,
		profiles: profiles,
		sessions: sessions,
		idGen:    idGen,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (AuthResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignUp")
	defer span.End()

	account, prof, err := s.register(ctx, input, profile.RoleMember)
	if err != nil {
		return AuthResult{}, err
	}

	return s.issue(ctx, account, prof)
}

func (s *AuthService) register(ctx context.Context, input SignUpInput, role profile.Role) (user.Account, profile.Profile, error) {
	email := user.NormalizeEmail(input.Email)
	displayName := strings.TrimSpace(input.DisplayName)

	if err := user.ValidateEmail(email); err != nil {
		return user.Account{}, profile.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := user.ValidatePassword(input.Password); err != nil {
		return user.Account{}, profile.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := profile.ValidateDisplayName(displayName); err != nil {
		return user.Account{}, profile.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.accounts.GetByEmail(ctx, email); err != nil {
		return user.Account{}, profile.Profile{}, fmt.Errorf("get account by email: %w", err)
	} else if exists {
		return user.Account{}, profile.Profile{}, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return user.Account{}, profile.Profile{}, fmt.Errorf("%w: password is too long", ErrInvalidInput)
		}
		return user.Account{}, profile.Profile{}, fmt.Errorf("hash password: %w", err)
	}

	accountID, err := s.idGen.NewID()
	if err != nil {
		return user.Account{}, profile.Profile{}, fmt.Errorf("generate account id: %w", err)
	}

	now := s.now().UTC()
	account := user.Account{
		ID:           accountID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	prof := profile.Profile{
		UserID:      accountID,
		DisplayName: displayName,
		Active:      true,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.accounts.Register(ctx, account, prof); err != nil {
		if isDuplicateConstraintError(err) {
			return user.Account{}, profile.Profile{}, fmt.Errorf("%w: email or display name already taken", ErrConflict)
		}
		return user.Account{}, profile.Profile{}, fmt.Errorf("register account: %w", err)
	}

	return account, prof, nil
}

func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (AuthResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignIn")
	defer span.End()

	email := user.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return AuthResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	account, exists, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("get account by email: %w", err)
	}
	if !exists {
		return AuthResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return AuthResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	prof, exists, err := s.profiles.GetByUserID(ctx, account.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return AuthResult{}, fmt.Errorf("%w: profile missing for account", ErrUnauthorized)
	}
	if !prof.Active {
		return AuthResult{}, fmt.Errorf("%w: user=%s", ErrAccountInactive, account.ID)
	}

	return s.issue(ctx, account, prof)
}

func (s *AuthService) issue(ctx context.Context, account user.Account, prof profile.Profile) (AuthResult, error) {
	sessionID, err := s.idGen.NewID()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate session id: %w", err)
	}

	now := s.now().UTC()
	sess := session.Session{
		ID:        sessionID,
		UserID:    account.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return AuthResult{}, fmt.Errorf("%w: save session: %v", ErrDependencyUnavailable, err)
	}

	claims := tokenClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}

	return AuthResult{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		Account:   account,
		Profile:   prof,
	}, nil
}

func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignOut")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: delete session: %v", ErrDependencyUnavailable, err)
	}
	return nil
}

// Session resolves a token into the caller's principal and profile.
func (s *AuthService) Session(ctx context.Context, token string) (SessionInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Session")
	defer span.End()

	claims, sess, err := s.verify(ctx, token)
	if err != nil {
		return SessionInfo{}, err
	}

	prof, err := s.activeProfile(ctx, claims.Subject)
	if err != nil {
		return SessionInfo{}, err
	}

	return SessionInfo{
		Principal: user.Principal{UserID: prof.UserID, SessionID: sess.ID, Role: prof.Role},
		Profile:   prof,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// VerifyAccessToken implements the HTTP bearer token check.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	info, err := s.Session(ctx, token)
	if err != nil {
		return user.Principal{}, err
	}
	return info.Principal, nil
}

func (s *AuthService) verify(ctx context.Context, raw string) (*tokenClaims, session.Session, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, session.Session{}, fmt.Errorf("%w: token is required", ErrUnauthorized)
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, session.Session{}, fmt.Errorf("%w: invalid token: %v", ErrUnauthorized, err)
	}
	if claims.SessionID == "" || claims.Subject == "" {
		return nil, session.Session{}, fmt.Errorf("%w: token is missing claims", ErrUnauthorized)
	}

	sess, exists, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, session.Session{}, fmt.Errorf("%w: get session: %v", ErrDependencyUnavailable, err)
	}
	if !exists || sess.Expired(s.now()) || sess.UserID != claims.Subject {
		return nil, session.Session{}, fmt.Errorf("%w: session expired or revoked", ErrUnauthorized)
	}

	return claims, sess, nil
}

// activeProfile loads the profile and revokes every session of a deactivated user.
func (s *AuthService) activeProfile(ctx context.Context, userID string) (profile.Profile, error) {
	prof, exists, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile not found", ErrUnauthorized)
	}
	if !prof.Active {
		if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
			s.logger.WarnContext(ctx, "revoke sessions of inactive user failed", "user_id", userID, "error", err)
		}
		return profile.Profile{}, fmt.Errorf("%w: user=%s", ErrAccountInactive, userID)
	}
	return prof, nil
}

// BootstrapAdmin makes sure the configured admin account exists and holds the
// admin role. An empty email disables it.
func (s *AuthService) BootstrapAdmin(ctx context.Context, input SignUpInput) error {
	email := user.NormalizeEmail(input.Email)
	if email == "" {
		return nil
	}

	account, exists, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get admin account: %w", err)
	}
	if !exists {
		account, _, err = s.register(ctx, input, profile.RoleAdmin)
		if err != nil {
			return fmt.Errorf("register admin: %w", err)
		}
		s.logger.InfoContext(ctx, "bootstrap admin created", "user_id", account.ID, "email", email)
		return nil
	}

	prof, exists, err := s.profiles.GetByUserID(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("get admin profile: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: admin profile missing for user=%s", ErrNotFound, account.ID)
	}
	if prof.IsAdmin() && prof.Active {
		return nil
	}

	prof.Role = profile.RoleAdmin
	prof.Active = true
	prof.UpdatedAt = s.now().UTC()
	if err := s.profiles.Update(ctx, prof); err != nil {
		return fmt.Errorf("promote admin: %w", err)
	}
	s.logger.InfoContext(ctx, "bootstrap admin promoted", "user_id", account.ID)
	return nil
}
