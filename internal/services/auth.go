package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/data/db"
	"github.com/yungbote/motodiag-backend/internal/data/repos"
	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/apierr"
	"github.com/yungbote/motodiag-backend/internal/platform/ctxutil"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type JWTClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Username string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, apierr.BadRequest("invalid_request", "username and password are required")
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	switch role {
	case "":
		role = domain.RoleUser
	case domain.RoleUser, domain.RoleTechnician:
	default:
		return nil, apierr.BadRequest("invalid_role", fmt.Sprintf("role %q cannot be self-assigned", in.Role))
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Username: username, Password: hashed, Role: role}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := as.userRepo.UsernameExists(ctx, tx, username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exists {
			return apierr.Conflict("username_taken", "username already exists")
		}
		if _, err := as.userRepo.Create(ctx, tx, []*domain.User{user}); err != nil {
			if db.IsUniqueViolation(err) {
				return apierr.Conflict("username_taken", "username already exists")
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, apierr.BadRequest("invalid_request", "username and password are required")
	}
	user, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		if db.IsNotFound(err) {
			return "", nil, apierr.Unauthorized("invalid_credentials", "invalid username or password")
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apierr.Unauthorized("invalid_credentials", "invalid username or password")
	}
	token, err := as.generateAccessToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	return token, user, nil
}

func (as *authService) generateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken validates the token and attaches the caller to ctx. The
// user must still exist; role is read from storage, not from the claims.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, "invalid_token", fmt.Errorf("parse token: %w", err))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, apierr.Unauthorized("invalid_token", "invalid or expired token")
	}
	var userID uint
	if _, err := fmt.Sscan(claims.Subject, &userID); err != nil || userID == 0 {
		return ctx, apierr.Unauthorized("invalid_token", "invalid user id in token")
	}
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx, apierr.Unauthorized("invalid_token", "user no longer exists")
		}
		return ctx, fmt.Errorf("load token user: %w", err)
	}
	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
