package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

// Login exchanges credentials for a token and profile. Invalid credentials
// surface as *domain.AuthError so the caller can distinguish them from
// transport failures.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil,
		domain.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		var fe *domain.FetchError
		if errors.As(err, &fe) && (fe.StatusCode == http.StatusUnauthorized || fe.StatusCode == http.StatusForbidden) {
			return nil, &domain.AuthError{Reason: domain.ReasonInvalidCredentials, Message: fe.UserMessage()}
		}
		return nil, err
	}
	return &resp, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", nil, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetPassword completes an invite or password-reset flow. An invalid or
// expired reset token surfaces as *domain.AuthError.
func (c *Client) SetPassword(ctx context.Context, token, newPassword string) error {
	err := c.doJSON(ctx, http.MethodPost, "/auth/set-password", nil,
		domain.SetPasswordRequest{Token: token, NewPassword: newPassword}, nil)
	if err != nil {
		var fe *domain.FetchError
		if errors.As(err, &fe) && (fe.StatusCode == http.StatusBadRequest || fe.StatusCode == http.StatusUnauthorized) {
			return &domain.AuthError{Reason: domain.ReasonInvalidResetToken, Message: fe.UserMessage()}
		}
		return err
	}
	return nil
}
