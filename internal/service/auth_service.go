package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/repository"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/jwt"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/redis"
)

// ── auth business errors ──

var (
	ErrCredencialesInvalidas = errors.New("correo o contraseña incorrectos")
	ErrCorreoRegistrado      = errors.New("el correo ya está registrado")
	ErrUsuarioNoEncontrado   = errors.New("el usuario no existe")
	ErrRefreshInvalido       = errors.New("el refresh token no es válido")
)

// AuthService handles accounts and token lifecycles. Logout flushes the
// user's snapshot session and blacklists the presented token.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID, jti string, expiresAt time.Time) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo     *repository.Repository
	sessions *session.Manager
	jwtMgr   *jwt.Manager
	rdb      *redis.Client
	logger   *zap.Logger
}

// NewAuthService creates the AuthService instance.
func NewAuthService(repo *repository.Repository, sessions *session.Manager, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{repo: repo, sessions: sessions, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{ID: u.ID, Email: u.Email, Nombre: u.Nombre}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrCorreoRegistrado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{Email: req.Email, PasswordHash: string(hash), Nombre: req.Nombre}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("user create failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return toUserResponse(user), nil
}

func (s *authService) tokenPair(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtMgr.AccessTokenTTL().Seconds()),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}
	return s.tokenPair(user)
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrRefreshInvalido
	}
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err == nil && blacklisted {
			return nil, ErrRefreshInvalido
		}
	}
	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrRefreshInvalido
	}
	return s.tokenPair(user)
}

// Logout flushes the snapshot immediately so a pending debounce window is
// not lost, then blacklists the token until it would have expired.
func (s *authService) Logout(ctx context.Context, userID, jti string, expiresAt time.Time) error {
	s.sessions.Acquire(ctx, userID).Flush(ctx)

	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Warn("token blacklist failed", zap.Error(err))
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	return toUserResponse(user), nil
}
