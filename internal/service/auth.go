package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itineraire-app/auth-service/internal/events"
	"github.com/itineraire-app/auth-service/internal/hash"
	"github.com/itineraire-app/auth-service/internal/logging"
	"github.com/itineraire-app/auth-service/internal/models"
	"github.com/itineraire-app/auth-service/internal/repo"
	"github.com/itineraire-app/auth-service/internal/tokens"
)

var (
	ErrValidation         = errors.New("missing required fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownToken       = errors.New("unknown token")
	ErrConflict           = errors.New("username already taken")
)

const SessionTTL = 3600 * time.Second

type AuthService struct {
	Repo      repo.GormRepo
	Hasher    *hash.Hasher
	JWTSecret []byte
	Events    *events.Producer
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || password == "" {
		return nil, ErrValidation
	}

	pwHash, err := s.Hasher.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicateUser) {
			l.Warn("register_conflict", "username", username)
			return nil, ErrConflict
		}
		l.Error("register_error", "error", err)
		return nil, err
	}

	res, err := s.issueSession(ctx, &user)
	if err != nil {
		l.Error("register_error", "reason", "cannot issue session", "error", err)
		return nil, err
	}

	s.publish(ctx, "user_registered", &user)
	return res, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if username == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Same error as a wrong password so responses cannot be used to
			// enumerate usernames.
			return nil, ErrInvalidCredentials
		}
		l.Error("login_error", "error", err)
		return nil, err
	}

	if !s.Hasher.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	res, err := s.issueSession(ctx, user)
	if err != nil {
		l.Error("login_error", "reason", "cannot issue session", "error", err)
		return nil, err
	}

	s.publish(ctx, "user_logged_in", user)
	return res, nil
}

// VerifyToken checks the signature first, then the sessions table. The store
// stays the source of truth so Logout revokes a still-signed token. No expiry
// extension happens here.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrValidation
	}

	if _, err := tokens.SessionClaimsFromToken(token, s.JWTSecret); err != nil {
		return nil, ErrUnknownToken
	}

	session, err := s.Repo.FindSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnknownToken
		}
		logging.FromContext(ctx).Error("verify_error", "error", err)
		return nil, err
	}
	if !session.ExpiresAt.After(time.Now()) {
		return nil, ErrUnknownToken
	}

	user, err := s.Repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnknownToken
		}
		logging.FromContext(ctx).Error("verify_error", "error", err)
		return nil, err
	}
	return user, nil
}

func (s *AuthService) LogOut(ctx context.Context, token string) error {
	if token == "" {
		return ErrValidation
	}

	if err := s.Repo.DeleteSessionByToken(ctx, token); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUnknownToken
		}
		logging.FromContext(ctx).Error("logout_error", "error", err)
		return err
	}
	return nil
}

// UpdateCredentials requires a verified token whose subject matches targetID.
// The original relay contract still sends the id field, so it is kept and
// cross-checked instead of trusted.
func (s *AuthService) UpdateCredentials(ctx context.Context, token string, targetID uint, newUsername, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "auth.update")

	user, err := s.VerifyToken(ctx, token)
	if err != nil {
		return err
	}

	if targetID == 0 {
		return ErrValidation
	}
	if newUsername == "" && newPassword == "" {
		return ErrValidation
	}
	if user.ID != targetID {
		l.Warn("update_subject_mismatch", "token_user_id", user.ID, "target_id", targetID)
		return ErrUnknownToken
	}

	var pwHash string
	if newPassword != "" {
		pwHash, err = s.Hasher.HashPassword(newPassword)
		if err != nil {
			l.Error("update_error", "reason", "cannot hash the password", "error", err)
			return err
		}
	}

	if err := s.Repo.UpdateCredentials(ctx, targetID, newUsername, pwHash); err != nil {
		if errors.Is(err, repo.ErrDuplicateUser) {
			l.Warn("update_conflict", "username", newUsername)
			return ErrConflict
		}
		l.Error("update_error", "error", err)
		return err
	}

	s.publish(ctx, "user_updated", user)
	return nil
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	expiresAt := time.Now().Add(SessionTTL)
	token, err := tokens.NewSessionToken(user.Username, s.JWTSecret, expiresAt)
	if err != nil {
		return nil, err
	}

	session := models.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if err := s.Repo.CreateSession(ctx, &session); err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// publish is best-effort: a broker outage must not fail the request.
func (s *AuthService) publish(ctx context.Context, eventType string, user *models.User) {
	if s.Events == nil {
		return
	}

	event := map[string]interface{}{
		"type":     eventType,
		"user_id":  user.ID,
		"username": user.Username,
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.Events.PublishEvent(pubCtx, fmt.Sprint(user.ID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "type", eventType, "error", err)
	}
}
