package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pathforge/pathforge-backend/internal/apperr"
	"github.com/pathforge/pathforge-backend/internal/logger"
	"github.com/pathforge/pathforge-backend/internal/repos"
	"github.com/pathforge/pathforge-backend/internal/requestdata"
	"github.com/pathforge/pathforge-backend/internal/types"
	"github.com/pathforge/pathforge-backend/internal/utils"
)

type JWTClaims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) (string, string, error)
	LoginUser(ctx context.Context, username, password string) (*types.User, string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) (string, string, error) {
	utils.NormalizeUserFields(user)
	if err := utils.ValidateRegistration(user); err != nil {
		return "", "", apperr.Validation(err)
	}
	exists, err := as.userRepo.UsernameExists(ctx, nil, user.Username)
	if err != nil {
		return "", "", fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return "", "", apperr.Validation(fmt.Errorf("username already exists"))
	}
	if err := utils.HashPassword(user); err != nil {
		return "", "", err
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		var issueErr error
		accessToken, refreshToken, issueErr = as.issueTokens(ctx, tx, user)
		return issueErr
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (*types.User, string, string, error) {
	if err := utils.ValidateLogin(username, password); err != nil {
		return nil, "", "", apperr.Validation(err)
	}
	users, err := as.userRepo.GetByUsernames(ctx, nil, []string{username})
	if err != nil {
		return nil, "", "", fmt.Errorf("error retrieving user by username: %w", err)
	}
	if len(users) == 0 {
		return nil, "", "", apperr.New(401, "invalid_credentials", fmt.Errorf("invalid username or password"))
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", apperr.New(401, "invalid_credentials", fmt.Errorf("invalid username or password"))
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Drop any stale tokens for this user before issuing fresh ones.
		existing, ftErr := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
		if ftErr != nil {
			return fmt.Errorf("failed to check user tokens: %w", ftErr)
		}
		staleIDs := make([]uuid.UUID, 0, len(existing))
		for _, t := range existing {
			if t != nil {
				staleIDs = append(staleIDs, t.ID)
			}
		}
		if err := as.userTokenRepo.DeleteByIDs(ctx, tx, staleIDs); err != nil {
			return fmt.Errorf("failed to delete stale user tokens: %w", err)
		}
		var issueErr error
		accessToken, refreshToken, issueErr = as.issueTokens(ctx, tx, user)
		return issueErr
	})
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return apperr.New(401, "unauthorized", apperr.ErrUnauthorized)
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if err != nil {
			return fmt.Errorf("error finding user token: %w", err)
		}
		ids := make([]uuid.UUID, 0, len(found))
		for _, t := range found {
			if t != nil {
				ids = append(ids, t.ID)
			}
		}
		if err := as.userTokenRepo.DeleteByIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("error deleting user token: %w", err)
		}
		return nil
	})
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (string, string, error) {
	claims := JWTClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
		return "", "", fmt.Errorf("failed to create user token: %w", err)
	}
	return accessToken, refreshToken, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, fmt.Errorf("empty token")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}
	// A logged-out token has no row even if the JWT itself is still valid.
	found, err := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if err != nil {
		return ctx, fmt.Errorf("failed to fetch user token: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return ctx, fmt.Errorf("token revoked")
	}
	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: found[0].RefreshToken,
		UserID:       userID,
		Username:     claims.Username,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}
