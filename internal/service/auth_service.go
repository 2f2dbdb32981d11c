package service

import (
	"context"
	"errors"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/config"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/license"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/model"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)

	// ResolveProfile is the session/profile resolver: it never fails for an
	// authenticated user — a missing or unreadable profile row substitutes the
	// tester default instead of surfacing an error.
	ResolveProfile(ctx context.Context, userID uuid.UUID, email string) *dto.ProfileResponse
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)

	// Admin user management.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.UserRepository
	gate *license.Gate
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, gate *license.Gate, cfg *config.Config) AuthService {
	return &authService{repo: repo, gate: gate, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return s.tokenResponse(ctx, user)
}

// Signup creates the user and its profile in one transaction; a half-created
// account (user without profile) would otherwise hit the fail-open default
// forever.
func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.LoginResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Active:       true,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, user); err != nil {
			return err
		}
		profile := &model.Profile{
			UserID:   user.ID,
			Role:     model.RoleVendedor,
			FullName: req.FullName,
			Theme:    "light",
			Locale:   "es",
		}
		return s.repo.CreateProfile(ctx, tx, profile)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.tokenResponse(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("malformed token")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Active {
		return nil, errors.New("user not found or inactive")
	}
	return s.tokenResponse(ctx, user)
}

func (s *authService) ResolveProfile(ctx context.Context, userID uuid.UUID, email string) *dto.ProfileResponse {
	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		// Fail-open default: tester is read-only everywhere, so a missing
		// profile can browse but never mutate.
		log.Warn().Str("user_id", userID.String()).Err(err).
			Msg("profile fetch failed — applying tester default")
		profile = model.DefaultProfile(userID)
	}
	return s.profileResponse(profile, email)
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("profile not found")
	}
	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if req.Theme != nil {
		profile.Theme = *req.Theme
	}
	if req.Locale != nil {
		profile.Locale = *req.Locale
	}
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profileResponse(profile, user.Email), nil
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Active:       true,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, user); err != nil {
			return err
		}
		return s.repo.CreateProfile(ctx, tx, &model.Profile{
			UserID:   user.ID,
			Role:     req.Role,
			FullName: req.FullName,
			Theme:    "light",
			Locale:   "es",
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return &dto.UserResponse{
		ID: user.ID.String(), Email: user.Email,
		FullName: req.FullName, Role: req.Role, Active: true,
	}, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		item := dto.UserResponse{ID: u.ID.String(), Email: u.Email, Active: u.Active}
		if p, err := s.repo.FindProfileByUserID(ctx, u.ID); err == nil {
			item.FullName = p.FullName
			item.Role = p.Role
		} else {
			item.Role = model.RoleTester
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *authService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	profile, err := s.repo.FindProfileByUserID(ctx, id)
	if err != nil {
		return nil, errors.New("profile not found")
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Role != nil {
		profile.Role = *req.Role
	}
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	return &dto.UserResponse{
		ID: user.ID.String(), Email: user.Email,
		FullName: profile.FullName, Role: profile.Role, Active: user.Active,
	}, nil
}

func (s *authService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *authService) profileResponse(p *model.Profile, email string) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		UserID:     p.UserID.String(),
		Email:      email,
		Role:       p.Role,
		IsTestUser: p.IsTestUser,
		FullName:   p.FullName,
		AvatarURL:  p.AvatarURL,
		Theme:      p.Theme,
		Locale:     p.Locale,
		DemoTier:   string(s.gate.TierFor(email)),
	}
}

func (s *authService) tokenResponse(ctx context.Context, user *model.User) (*dto.LoginResponse, error) {
	profile := s.ResolveProfile(ctx, user.ID, user.Email)

	access, err := s.generateToken(user, profile.Role, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(user, profile.Role, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *profile,
	}, nil
}

func (s *authService) generateToken(user *model.User, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    role,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
