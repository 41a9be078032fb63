package service

import (
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrGoogleAuthDisabled   = errors.New("google authentication is not configured")
	ErrGoogleAuthFailed     = errors.New("google authentication failed")
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// UserUpdate carries the fields a user may change about themselves. Nil
// fields are left untouched.
type UserUpdate struct {
	Name        *string
	Email       *string
	Preferences *domain.Preferences
}

// AuthService handles registration, login, profile updates and the Google
// OAuth flow. Tokens are HS256 JWTs carrying the user id.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (token string, user *domain.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	GetMe(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	UpdateDetails(ctx context.Context, userID primitive.ObjectID, update UserUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, currentPassword, newPassword string) (token string, err error)
	GoogleEnabled() bool
	GoogleAuthURL(state string) string
	GoogleCallback(ctx context.Context, code string) (token string, user *domain.User, err error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	oauthConfig   *oauth2.Config
}

// NewAuthService creates a new instance of authService. Google OAuth is
// enabled only when a client ID is configured.
func NewAuthService(userRepo repository.UserRepository, jwtCfg config.JWTConfig, googleCfg config.GoogleConfig) AuthService {
	if jwtCfg.Secret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	expiration := jwtCfg.Expiration
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}

	var oauthConfig *oauth2.Config
	if googleCfg.ClientID != "" && googleCfg.ClientSecret != "" {
		oauthConfig = &oauth2.Config{
			ClientID:     googleCfg.ClientID,
			ClientSecret: googleCfg.ClientSecret,
			RedirectURL:  googleCfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		}
	}

	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtCfg.Secret,
		jwtExpiration: expiration,
		oauthConfig:   oauthConfig,
	}
}

// Register handles new user registration and issues a token for the new
// account.
func (s *authService) Register(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	if name == "" || email == "" || password == "" {
		return "", nil, errors.New("name, email and password cannot be empty")
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return "", nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Preferences:  domain.DefaultPreferences(),
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique email index catches the race between the existence
		// check and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return "", nil, ErrUserAlreadyExists
		}
		return "", nil, err
	}
	user.ID = userID

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	// Accounts created via Google OAuth have no local password.
	if user.PasswordHash == "" {
		return "", nil, ErrAuthenticationFailed
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// GetMe returns the current user's profile.
func (s *authService) GetMe(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateDetails changes name, email and/or preferences of the current user.
func (s *authService) UpdateDetails(ctx context.Context, userID primitive.ObjectID, update UserUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.Name != nil && *update.Name != "" {
		user.Name = *update.Name
	}
	if update.Email != nil && *update.Email != "" {
		user.Email = *update.Email
	}
	if update.Preferences != nil {
		user.Preferences = *update.Preferences
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdatePassword verifies the current password, stores the new hash and
// issues a fresh token.
func (s *authService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, currentPassword, newPassword string) (string, error) {
	if newPassword == "" {
		return "", errors.New("new password cannot be empty")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword))
	if err != nil {
		return "", ErrAuthenticationFailed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", ErrTokenGeneration
	}
	return token, nil
}

// GoogleEnabled reports whether the Google OAuth flow is configured.
func (s *authService) GoogleEnabled() bool {
	return s.oauthConfig != nil
}

// GoogleAuthURL returns the Google consent page URL for the given state.
func (s *authService) GoogleAuthURL(state string) string {
	if s.oauthConfig == nil {
		return ""
	}
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// googleUserInfo mirrors the fields we need from Google's userinfo endpoint.
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleCallback exchanges the authorization code, resolves or creates the
// local account, and issues a JWT. Accounts are matched by Google ID first
// and linked by email second.
func (s *authService) GoogleCallback(ctx context.Context, code string) (string, *domain.User, error) {
	if s.oauthConfig == nil {
		return "", nil, ErrGoogleAuthDisabled
	}

	oauthToken, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", nil, ErrGoogleAuthFailed
	}

	info, err := s.fetchGoogleUserInfo(ctx, oauthToken)
	if err != nil {
		return "", nil, err
	}
	if info.ID == "" || info.Email == "" {
		return "", nil, ErrGoogleAuthFailed
	}

	user, err := s.userRepo.GetByGoogleID(ctx, info.ID)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.linkOrCreateGoogleUser(ctx, info)
	}
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// fetchGoogleUserInfo queries Google's userinfo endpoint with the exchanged
// token.
func (s *authService) fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, ErrGoogleAuthFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo returned status %d", ErrGoogleAuthFailed, resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, ErrGoogleAuthFailed
	}
	return &info, nil
}

// linkOrCreateGoogleUser attaches the Google identity to an existing account
// with the same email, or creates a fresh account.
func (s *authService) linkOrCreateGoogleUser(ctx context.Context, info *googleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err == nil {
		user.GoogleID = info.ID
		if user.Avatar == "" {
			user.Avatar = info.Picture
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user = &domain.User{
		Name:        info.Name,
		Email:       info.Email,
		GoogleID:    info.ID,
		Avatar:      info.Picture,
		Preferences: domain.DefaultPreferences(),
	}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID
	return user, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "workout-tracker",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}
