// Package auth implements the auth gateway: login, token refresh with a
// persisted session registry, registration and role-based authorization.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
	"github.com/yosvanyperez/fondos/pkg/utils"
)

// Service is the auth gateway.
type Service struct {
	uow    repository.UnitOfWork
	cfg    config.Jwt
	logger *slog.Logger
}

// New creates an auth Service.
func New(
	uow repository.UnitOfWork,
	cfg config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies credentials and issues a token pair. Unknown or deactivated
// users yield ErrUserNotFound; a bad password yields ErrUserUnauthorized.
func (s *Service) Login(
	ctx context.Context,
	username, password string,
) (result *dto.LoginResult, err error) {
	log := s.logger.With("context", "Login", "username", username)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		creds, err := users.GetCredentials(ctx, u.ID)
		if err != nil {
			return err
		}
		if !utils.CheckPassword(
			password, creds.PasswordHash, creds.PasswordSalt) {
			return domain.ErrUserUnauthorized
		}
		result, err = s.issueTokens(ctx, uow, u)
		return err
	})
	if err != nil {
		log.Error("Login failed", "error", err)
		return nil, err
	}
	log.Info("Login successful", "userID", result.UserID)
	return result, nil
}

// Refresh rotates a token pair. The refresh token must match a live session
// row; presenting it with the wrong access token revokes the session.
func (s *Service) Refresh(
	ctx context.Context,
	accessToken, refreshToken string,
) (result *dto.LoginResult, err error) {
	log := s.logger.With("context", "Refresh")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		sessions, err := uow.SessionRepository()
		if err != nil {
			return err
		}
		sess, err := sessions.GetByRefreshHash(ctx, hashToken(refreshToken))
		if err != nil {
			return err
		}
		if sess.Revoked() || sess.Expired(time.Now()) {
			return domain.ErrInvalidToken
		}
		if sess.AccessTokenHash != hashToken(accessToken) {
			// A stolen refresh token presented with a foreign access token
			// burns the whole session.
			_ = sessions.Revoke(ctx, sess.ID)
			return domain.ErrInvalidToken
		}
		if _, err := s.parseToken(
			refreshToken, s.cfg.RefreshSecret, true); err != nil {
			return domain.ErrInvalidToken
		}
		// The access token may be expired by now; only its signature and
		// issuer still matter.
		claims, err := s.parseToken(accessToken, s.cfg.Secret, false)
		if err != nil {
			return domain.ErrInvalidToken
		}
		username, _ := claims["username"].(string)

		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.GetByUsername(ctx, username)
		if err != nil {
			return domain.ErrInvalidToken
		}
		if err := sessions.Revoke(ctx, sess.ID); err != nil {
			return err
		}
		result, err = s.issueTokens(ctx, uow, u)
		return err
	})
	if err != nil {
		log.Error("Refresh failed", "error", err)
		return nil, err
	}
	log.Info("Refresh successful", "userID", result.UserID)
	return result, nil
}

// Register creates a user with a fresh salted password hash. The target role
// must exist. Administrator-only; the role check is enforced by the route.
func (s *Service) Register(
	ctx context.Context,
	in dto.RegisterInput,
) (created *dto.UserRead, err error) {
	log := s.logger.With("context", "Register", "username", in.Username)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		roles, err := uow.RoleRepository()
		if err != nil {
			return err
		}
		if _, err := roles.Get(ctx, in.RoleID); err != nil {
			return err
		}
		hash, salt, err := utils.HashPassword(in.Password)
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		created, err = users.Create(ctx, dto.UserCreate{
			Username:     in.Username,
			Email:        in.Email,
			RoleID:       in.RoleID,
			PasswordHash: hash,
			PasswordSalt: salt,
		})
		return err
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	log.Info("Register successful", "userID", created.ID, "role", created.Role)
	return created, nil
}

// Authorize resolves the live principal behind a middleware-validated token
// and, when a non-empty role set is given, checks membership.
func (s *Service) Authorize(
	ctx context.Context,
	token *jwt.Token,
	required ...domain.Role,
) (*dto.UserRead, domain.Role, error) {
	if token == nil {
		return nil, "", domain.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "", domain.ErrUserUnauthorized
	}
	username, _ := claims["username"].(string)
	roleClaim, _ := claims["role"].(string)
	role, err := domain.ParseRole(roleClaim)
	if err != nil {
		return nil, "", domain.ErrUserUnauthorized
	}

	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, "", err
	}
	u, err := users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", domain.ErrUserUnauthorized
	}

	if len(required) > 0 {
		allowed := false
		for _, r := range required {
			if r == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, "", domain.ErrUserUnauthorized
		}
	}
	return u, role, nil
}

// ValidateToken fully validates a raw access token (signature, issuer,
// expiry) and confirms the principal is still live.
func (s *Service) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*dto.TokenValidation, error) {
	claims, err := s.parseToken(tokenString, s.cfg.Secret, true)
	if err != nil {
		return nil, domain.ErrUserUnauthorized
	}
	username, _ := claims["username"].(string)
	roleClaim, _ := claims["role"].(string)
	role, err := domain.ParseRole(roleClaim)
	if err != nil {
		return nil, domain.ErrUserUnauthorized
	}

	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	if _, err := users.GetByUsername(ctx, username); err != nil {
		return nil, domain.ErrUserUnauthorized
	}
	return &dto.TokenValidation{Username: username, Role: role}, nil
}

func (s *Service) issueTokens(
	ctx context.Context,
	uow repository.UnitOfWork,
	u *dto.UserRead,
) (*dto.LoginResult, error) {
	now := time.Now()
	access, err := s.signToken(u, s.cfg.Secret, now.Add(s.cfg.Expiry))
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(
		u, s.cfg.RefreshSecret, now.Add(s.cfg.RefreshExpiry))
	if err != nil {
		return nil, err
	}

	sessions, err := uow.SessionRepository()
	if err != nil {
		return nil, err
	}
	err = sessions.Create(ctx, dto.SessionCreate{
		UserID:           u.ID,
		RefreshTokenHash: hashToken(refresh),
		AccessTokenHash:  hashToken(access),
		ExpiresAt:        now.Add(s.cfg.RefreshExpiry),
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResult{
		UserID:       u.ID,
		Role:         u.Role,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *Service) signToken(
	u *dto.UserRead,
	secret string,
	expiresAt time.Time,
) (string, error) {
	// The jti keeps tokens issued within the same second distinct, so a
	// rotated refresh token never hashes to the revoked session's hash.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  u.ID.String(),
		"username": u.Username,
		"role":     string(u.Role),
		"iss":      s.cfg.Issuer,
		"exp":      expiresAt.Unix(),
		"jti":      uuid.NewString(),
	})
	return token.SignedString([]byte(secret))
}

func (s *Service) parseToken(
	tokenString, secret string,
	checkExpiry bool,
) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
	}
	if !checkExpiry {
		opts = []jwt.ParserOption{
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		}
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	if !checkExpiry {
		// WithoutClaimsValidation skips the issuer check as well; keep it.
		if iss, _ := claims["iss"].(string); iss != s.cfg.Issuer {
			return nil, domain.ErrInvalidToken
		}
	}
	return claims, nil
}

// hashToken stores tokens as SHA-256 hex digests, never verbatim.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CurrentUserID extracts the principal's id from a middleware-validated
// token.
func CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	if token == nil {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	raw, _ := claims["user_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	return id, nil
}
