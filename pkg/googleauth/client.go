// Package googleauth exchanges Google OAuth authorization codes for
// user profiles.
package googleauth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"nestify/pkg/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	authURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenURL    = "https://oauth2.googleapis.com/token"
	userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// UserInfo is the subset of the Google profile the backend cares about
type UserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Error       string `json:"error"`
}

// Client performs the two-step code exchange: authorization code for
// an access token, then access token for the user profile.
type Client struct {
	httpClient   *resty.Client
	clientID     string
	clientSecret string
	redirectURI  string
	tokenURL     string
	userinfoURL  string
	logger       *zap.Logger
}

// NewClient creates a Google OAuth client with a bounded timeout and
// retry budget on the outbound calls
func NewClient(cfg *config.GoogleConfig, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient:   httpClient,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		tokenURL:     tokenURL,
		userinfoURL:  userinfoURL,
		logger:       logger,
	}
}

// AuthURL builds the consent page URL the frontend redirects to
func (c *Client) AuthURL() string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("access_type", "offline")
	return authURL + "?" + params.Encode()
}

// Exchange trades an authorization code for the user's profile
func (c *Client) Exchange(ctx context.Context, code string) (*UserInfo, error) {
	var tokens tokenResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"code":          code,
			"grant_type":    "authorization_code",
			"redirect_uri":  c.redirectURI,
		}).
		SetResult(&tokens).
		Post(c.tokenURL)
	if err != nil {
		return nil, fmt.Errorf("google token exchange: %w", err)
	}
	if tokens.AccessToken == "" {
		c.logger.Warn("Google token exchange returned no access token",
			zap.Int("status", resp.StatusCode()),
			zap.String("oauth_error", tokens.Error))
		return nil, fmt.Errorf("google token exchange failed")
	}

	var info UserInfo
	_, err = c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(tokens.AccessToken).
		SetResult(&info).
		Get(c.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("google userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google userinfo missing email")
	}
	return &info, nil
}
