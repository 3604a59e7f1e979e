package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/krishanu7/sinkorsail/config"
	"github.com/krishanu7/sinkorsail/db"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

var (
	ErrEmptyCredentials   = errors.New("username and password cannot be empty")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type Service struct {
	db  *sql.DB
	cfg config.Config
}

func NewService(db *sql.DB, cfg config.Config) *Service {
	return &Service{
		db:  db,
		cfg: cfg,
	}
}

func (s *Service) Register(ctx context.Context, username, password string) (db.User, error) {
	if username == "" || password == "" {
		return db.User{}, ErrEmptyCredentials
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return db.User{}, err
	}

	query := "INSERT INTO users (id, username, password, created_at) VALUES ($1, $2, $3, $4) RETURNING id, username, created_at"
	var user db.User
	err = s.db.QueryRowContext(ctx, query, uuid.NewString(), username, string(hashedPassword), time.Now()).
		Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return db.User{}, ErrUsernameTaken
		}
		return db.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	user.Password = string(hashedPassword)
	return user, nil
}

// Login checks the password and issues a signed token for the user.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	var user db.User
	err := s.db.QueryRowContext(ctx, `
	SELECT id, username, password, created_at
	FROM users
	WHERE username = $1
`, username).Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(user.ID)
}

func (s *Service) issueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ParseToken verifies a token issued by Login and returns its user ID.
func (s *Service) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}
	return userID, nil
}
