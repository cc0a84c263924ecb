package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/pkg/supabase"
)

// Users live in Supabase Auth; the users table mirrors id and email so
// entries and alerts have something to join against.
type userRepository struct {
	client *supabase.Client
}

func NewUserRepository(client *supabase.Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	body, err := r.client.Query("users", map[string]interface{}{
		"id": fmt.Sprintf("eq.%s", id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return decodeUser(body)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	body, err := r.client.Query("users", map[string]interface{}{
		"email": fmt.Sprintf("eq.%s", email),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return decodeUser(body)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	body, err := r.client.Insert("users", map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created, err := decodeUser(body)
	if err != nil {
		return nil, fmt.Errorf("no user returned")
	}
	return created, nil
}

func decodeUser(body []byte) (*models.User, error) {
	var users []models.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}
