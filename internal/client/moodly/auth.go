package moodly

import (
	"context"
	"net/http"
)

type authService struct {
	client *Client
}

func (s *authService) Register(ctx context.Context, username string, email string, password string) (*User, error) {
	const route = "/api/auth/register"

	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	var resp struct {
		User User `json:"user"`
	}
	if err := s.client.do(ctx, http.MethodPost, route, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (s *authService) Login(ctx context.Context, login string, password string) (*Login, error) {
	const route = "/api/auth/login"

	body := map[string]string{
		"username": login,
		"password": password,
	}
	var resp Login
	if err := s.client.do(ctx, http.MethodPost, route, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context) error {
	const route = "/api/auth/logout"
	return s.client.do(ctx, http.MethodPost, route, nil, nil, nil)
}

func (s *authService) Me(ctx context.Context) (*User, error) {
	const route = "/api/auth/me"

	var resp struct {
		User User `json:"user"`
	}
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
