package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anima/models"
	"anima/progression"
	"anima/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRegistration = errors.New("invalid registration")
)

const minPasswordLen = 6

type AuthService struct {
	store UserStore
	game  *GameService
}

func NewAuthService(store UserStore, game *GameService) *AuthService {
	return &AuthService{store: store, game: game}
}

var authService *AuthService

func InitAuthService(store UserStore, game *GameService) *AuthService {
	authService = NewAuthService(store, game)
	return authService
}

func GetAuthService() *AuthService {
	return authService
}

type Registration struct {
	Username string
	Email    string
	Password string
	Species  string
}

// Session is what a client receives after register or login.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates a user with a starter pet and returns a signed token.
// An empty username falls back to the local part of the email.
func (a *AuthService) Register(ctx context.Context, reg Registration) (Session, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, fmt.Errorf("%w: email is required", ErrInvalidRegistration)
	}
	if len(reg.Password) < minPasswordLen {
		return Session{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRegistration, minPasswordLen)
	}
	species, err := models.ParseSpecies(reg.Species)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidRegistration, err)
	}
	username := strings.TrimSpace(reg.Username)
	if username == "" {
		username = utils.ExtractNameFromEmail(email)
	}

	hash, err := utils.HashPassword(reg.Password)
	if err != nil {
		return Session{}, err
	}

	user := progression.NewUser(username, email, hash, species, a.game.now())
	if err := a.store.Insert(ctx, user); err != nil {
		return Session{}, err
	}
	a.game.log.Info("user registered",
		zap.String("userID", user.ID.Hex()),
		zap.String("species", string(species)))

	return a.session(user)
}

// Login checks credentials, then settles the time-based rollover and decay
// owed since the previous visit before handing back the user.
func (a *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := a.store.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrUserNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return Session{}, ErrInvalidCredentials
	}

	if _, err := a.game.ApplyDecay(ctx, user.ID); err != nil {
		return Session{}, err
	}
	user, err = a.store.FindByID(ctx, user.ID)
	if err != nil {
		return Session{}, err
	}
	return a.session(user)
}

func (a *AuthService) session(user models.User) (Session, error) {
	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: user}, nil
}
