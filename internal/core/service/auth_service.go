package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelfmark/library-catalog/internal/core/domain"
	"github.com/shelfmark/library-catalog/internal/core/ports"
)

// HashPassword returns the bcrypt hash of a password. Empty passwords are
// accepted; password strength policy is out of scope.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password hashes to the stored value.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService implements registration, login and session identity resolution.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	secret   string
	ttl      time.Duration
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, secret string, ttl time.Duration, log zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, secret: secret, ttl: ttl, log: log}
}

// Register creates a new user account. The username pre-check gives the
// friendly "already exists" notice; the unique index on username closes the
// check-then-insert race, and a lost race surfaces as the same ErrUserExists.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := domain.Role(input.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login verifies credentials and establishes a session. An unknown username
// and a wrong password both return ErrInvalidCredentials so the login notice
// does not reveal whether the account exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Principal, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	sess := &domain.Session{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		IssuedAt: time.Now().UTC(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return "", nil, err
	}

	token, err := s.signToken(sess)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", user.Username).Str("sid", sess.ID).Msg("login")

	return token, &domain.Principal{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// Resolve reconstructs the principal for a session token. The user document
// is re-read on every call, so the principal's role always reflects the
// current store state rather than the login-time snapshot.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	sid, ok := s.parseToken(token)
	if !ok {
		return nil, nil
	}

	sess, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		// A malformed or vanished user id means the session no longer maps
		// to an account: treat as logged out, not as a failure.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return nil, nil
		}
		return nil, err
	}

	return &domain.Principal{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// Logout tears down the session referenced by the token. Calling it with an
// absent or invalid token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sid, ok := s.parseToken(token)
	if !ok {
		return nil
	}
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return err
	}
	s.log.Info().Str("sid", sid).Msg("logout")
	return nil
}

func (s *AuthService) signToken(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": sess.ID,
		"sub": sess.UserID,
		"exp": sess.IssuedAt.Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// parseToken extracts the session id from a signed token. Any parse or
// signature failure reads as "no session".
func (s *AuthService) parseToken(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", false
	}
	return sid, true
}
