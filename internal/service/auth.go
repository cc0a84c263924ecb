package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/moodwave/backend/internal/logger"
	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/internal/repository"
	"github.com/moodwave/backend/pkg/supabase"
)

type authService struct {
	client   *supabase.Client
	userRepo repository.UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(client *supabase.Client, userRepo repository.UserRepository) AuthService {
	return &authService{
		client:   client,
		userRepo: userRepo,
	}
}

// authAPIResponse is the shared shape of Supabase Auth's token and
// signup responses.
type authAPIResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// callAuthAPI posts credentials to a Supabase Auth endpoint.
func (s *authService) callAuthAPI(ctx context.Context, path, email, password string) (*authAPIResponse, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s%s", s.client.URL, path)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("apikey", s.client.ServiceKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("auth request failed: %s", string(body))
	}

	var decoded authAPIResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &decoded, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	resp, err := s.callAuthAPI(ctx, "/auth/v1/token?grant_type=password", req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return &models.AuthResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User: models.User{
			ID:    resp.User.ID,
			Email: resp.User.Email,
		},
	}, nil
}

func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	resp, err := s.callAuthAPI(ctx, "/auth/v1/signup", req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}

	// Mirror the auth user into our users table. Supabase already owns
	// the auth identity, so a conflict here is not fatal.
	user := &models.User{
		ID:    resp.User.ID,
		Email: resp.User.Email,
	}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		logger.Ctx(ctx).Warn("failed to mirror user record",
			logger.String("user_id", user.ID),
			logger.Err(err))
	}

	return &models.AuthResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         *user,
	}, nil
}

func (s *authService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
