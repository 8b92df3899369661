package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GithubClient performs the OAuth code exchange and profile lookup against GitHub.
type GithubClient interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	FetchUser(ctx context.Context, accessToken string) (models.GithubIdentity, error)
}

type GithubOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	APIBaseURL   string
	// Endpoint defaults to github.Endpoint.
	Endpoint oauth2.Endpoint
}

type GithubOAuth struct {
	oauth      *oauth2.Config
	apiBaseURL string
}

func NewGithubOAuth(c GithubOAuthConfig) *GithubOAuth {
	endpoint := c.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = github.Endpoint
	}
	apiBaseURL := strings.TrimRight(c.APIBaseURL, "/")
	if apiBaseURL == "" {
		apiBaseURL = "https://api.github.com"
	}
	return &GithubOAuth{
		oauth: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"user"},
		},
		apiBaseURL: apiBaseURL,
	}
}

func (g *GithubOAuth) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token. Provider errors are
// returned as upstream errors carrying the provider's response body.
func (g *GithubOAuth) Exchange(ctx context.Context, code string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", errs.NewUpstreamError("github", string(retrieveErr.Body), err)
		}
		return "", errs.NewUpstreamError("github", err.Error(), err)
	}
	return token.AccessToken, nil
}

type githubUser struct {
	Login     string `json:"login"`
	HTMLURL   string `json:"html_url"`
	AvatarURL string `json:"avatar_url"`
}

// FetchUser reads the authenticated user's profile.
func (g *GithubOAuth) FetchUser(ctx context.Context, accessToken string) (models.GithubIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiBaseURL+"/user", nil)
	if err != nil {
		return models.GithubIdentity{}, fmt.Errorf("build github user request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := g.oauth.Client(ctx, &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	resp, err := client.Do(req)
	if err != nil {
		return models.GithubIdentity{}, errs.NewUpstreamError("github", "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.GithubIdentity{}, errs.NewUpstreamError("github", "", err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.GithubIdentity{}, errs.NewUpstreamError("github", string(body), fmt.Errorf("github user: status %d", resp.StatusCode))
	}

	var u githubUser
	if err := json.Unmarshal(body, &u); err != nil {
		return models.GithubIdentity{}, errs.NewUpstreamError("github", string(body), err)
	}
	if u.Login == "" {
		return models.GithubIdentity{}, errs.NewUpstreamError("github", string(body), errors.New("github user: missing login"))
	}

	return models.GithubIdentity{
		Username:    u.Login,
		ProfileURL:  u.HTMLURL,
		AvatarURL:   u.AvatarURL,
		AccessToken: accessToken,
	}, nil
}
