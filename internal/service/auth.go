package service

import (
	"context"

	"navident-console/internal/api"
	"navident-console/internal/domain/entity"
)

type AuthService struct {
	client *api.Client
}

func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

func (s *AuthService) SignIn(ctx context.Context, creds *entity.Credentials) (*entity.AuthResponse, error) {
	var resp entity.AuthResponse
	if err := s.client.Post(ctx, "/auth/signin", nil, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) SignUp(ctx context.Context, req *entity.SignupRequest) (*entity.AuthResponse, error) {
	var resp entity.AuthResponse
	if err := s.client.Post(ctx, "/auth/signup", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh trades a refresh token for a fresh access token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.AuthResponse, error) {
	var resp entity.AuthResponse
	req := entity.RefreshRequest{RefreshToken: refreshToken}
	if err := s.client.Post(ctx, "/auth/refresh", nil, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
