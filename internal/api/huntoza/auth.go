package huntoza

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// Login exchanges credentials for a token pair and stores it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp authResponse
	err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		c.logger.Error("login failed", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("login: %w", err)
	}

	c.tokens.Set(resp.Token, resp.RefreshToken)

	c.logger.Info("logged in", zap.String("email", resp.User.Email))

	return nil
}

// Logout invalidates the session server-side and clears the stored tokens
// regardless of the server's answer.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	c.tokens.Clear()
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	c.logger.Info("logged out")

	return nil
}
