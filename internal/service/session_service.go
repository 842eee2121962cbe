package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"goldconnect/api/internal/config"
	"goldconnect/api/internal/geo"
	"goldconnect/api/internal/ids"
	"goldconnect/api/internal/models"
	"goldconnect/api/internal/security"
)

type userCreator interface {
	Create(ctx context.Context, user models.User) error
}

type LoginResult struct {
	Token   string
	Session models.Session
}

// SessionService owns login/logout lifecycle. Identity is a display
// name plus an admin flag derived by exact match against the reserved
// admin name. That check is a placeholder, not a security boundary.
type SessionService struct {
	users    userCreator
	resolver *geo.Resolver
	cache    *redis.Client
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewSessionService(users userCreator, resolver *geo.Resolver, cache *redis.Client, cfg *config.AppConfig, log zerolog.Logger) *SessionService {
	return &SessionService{
		users:    users,
		resolver: resolver,
		cache:    cache,
		cfg:      cfg,
		log:      log,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Login resolves the caller's country once, records presence for
// non-admin names and hands back a signed token. The admin name never
// creates a presence record.
func (s *SessionService) Login(ctx context.Context, name, ip string) (LoginResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LoginResult{}, fmt.Errorf("%w: name required", ErrValidation)
	}

	info := s.resolver.Resolve(ctx, ip)
	isAdmin := name == s.cfg.Session.AdminName

	if !isAdmin {
		user := models.User{
			ID:      ids.New(),
			Name:    name,
			Country: info.Country,
			Flag:    info.Flag,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return LoginResult{}, fmt.Errorf("create presence record: %w", err)
		}
	}

	session := models.Session{
		ID:      ids.New(),
		Name:    name,
		IsAdmin: isAdmin,
		Country: info.Country,
		Flag:    info.Flag,
	}

	if err := s.storeSession(ctx, session); err != nil {
		return LoginResult{}, err
	}

	token, err := security.GenerateSessionToken(s.cfg.Session.JWTSecret, session.ID, name, isAdmin, s.cfg.Session.TTL)
	if err != nil {
		return LoginResult{}, err
	}

	s.log.Info().Str("name", name).Bool("admin", isAdmin).Str("country", info.Country).Msg("login")

	return LoginResult{Token: token, Session: session}, nil
}

// Logout drops the stored session so a subsequent restore with the
// same token yields no session.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Restore loads the session a token refers to. A missing key means
// the session was logged out or expired.
func (s *SessionService) Restore(ctx context.Context, sessionID string) (models.Session, error) {
	if s.cache == nil {
		return models.Session{}, redis.Nil
	}
	raw, err := s.cache.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		return models.Session{}, err
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}
	session.ID = sessionID
	return session, nil
}

func (s *SessionService) storeSession(ctx context.Context, session models.Session) error {
	if s.cache == nil {
		return nil
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKey(session.ID), raw, s.cfg.Session.TTL).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
