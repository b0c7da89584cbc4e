// Package oauth implementa social.Provider sobre golang.org/x/oauth2.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/domain/social"
	"pet-adoption/internal/platform/config"
	"pet-adoption/internal/platform/httpclient"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// profileFetcher trae el perfil con el access token ya canjeado.
type profileFetcher func(ctx context.Context, c *httpclient.Client, apiBase, accessToken string) (social.Profile, error)

type Provider struct {
	name    string
	conf    *oauth2.Config
	apiBase string
	client  *httpclient.Client
	fetch   profileFetcher
}

// Option ajusta un Provider (tests: endpoints falsos).
type Option func(*Provider)

func WithEndpoint(ep oauth2.Endpoint) Option {
	return func(p *Provider) { p.conf.Endpoint = ep }
}

func WithAPIBase(base string) Option {
	return func(p *Provider) { p.apiBase = strings.TrimRight(base, "/") }
}

func WithHTTPClient(c *httpclient.Client) Option {
	return func(p *Provider) {
		if c != nil {
			p.client = c
		}
	}
}

func newProvider(name string, cfg config.OAuthProvider, ep oauth2.Endpoint, scopes []string, apiBase string, fetch profileFetcher, opts ...Option) *Provider {
	p := &Provider{
		name: name,
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     ep,
			Scopes:       scopes,
		},
		apiBase: apiBase,
		client:  httpclient.New(10 * time.Second),
		fetch:   fetch,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewGoogle(cfg config.OAuthProvider, opts ...Option) *Provider {
	return newProvider("google", cfg, endpoints.Google,
		[]string{"openid", "email", "profile"},
		"https://openidconnect.googleapis.com", fetchGoogle, opts...)
}

// NewFacebook pide el scope email explícitamente; sin él Graph no lo devuelve.
func NewFacebook(cfg config.OAuthProvider, opts ...Option) *Provider {
	return newProvider("facebook", cfg, endpoints.Facebook,
		[]string{"email"},
		"https://graph.facebook.com", fetchFacebook, opts...)
}

func NewGitHub(cfg config.OAuthProvider, opts ...Option) *Provider {
	return newProvider("github", cfg, endpoints.GitHub,
		[]string{"read:user", "user:email"},
		"https://api.github.com", fetchGitHub, opts...)
}

// FromConfig arma los proveedores con client id y secret configurados.
func FromConfig(cfg config.Config, opts ...Option) []social.Provider {
	var out []social.Provider
	if cfg.Google.Enabled() {
		out = append(out, NewGoogle(cfg.Google, opts...))
	}
	if cfg.Facebook.Enabled() {
		out = append(out, NewFacebook(cfg.Facebook, opts...))
	}
	if cfg.GitHub.Enabled() {
		out = append(out, NewGitHub(cfg.GitHub, opts...))
	}
	return out
}

func (p *Provider) Name() string { return p.name }

// AuthCodeURL: flujo stateless, sin state.
func (p *Provider) AuthCodeURL() string {
	return p.conf.AuthCodeURL("", oauth2.AccessTypeOnline)
}

func (p *Provider) Exchange(ctx context.Context, code string) (social.Profile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client.HTTP)

	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil && re.Response.StatusCode < http.StatusInternalServerError {
			return social.Profile{}, fmt.Errorf("%s exchange: %w: %v", p.name, social.ErrProviderClient, err)
		}
		return social.Profile{}, fmt.Errorf("%s exchange: %w", p.name, err)
	}

	prof, err := p.fetch(ctx, p.client, p.apiBase, tok.AccessToken)
	if err != nil {
		if httpclient.IsClientError(err) {
			return social.Profile{}, fmt.Errorf("%s profile: %w: %v", p.name, social.ErrProviderClient, err)
		}
		return social.Profile{}, fmt.Errorf("%s profile: %w", p.name, err)
	}
	prof.Email = strings.TrimSpace(prof.Email)
	return prof, nil
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func fetchGoogle(ctx context.Context, c *httpclient.Client, apiBase, token string) (social.Profile, error) {
	var out struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := c.GetJSON(ctx, apiBase+"/v1/userinfo", bearer(token), &out); err != nil {
		return social.Profile{}, err
	}
	return social.Profile{Email: out.Email, Name: out.Name}, nil
}

func fetchFacebook(ctx context.Context, c *httpclient.Client, apiBase, token string) (social.Profile, error) {
	var out struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := c.GetJSON(ctx, apiBase+"/v19.0/me?fields=name,email", bearer(token), &out); err != nil {
		return social.Profile{}, err
	}
	return social.Profile{Email: out.Email, Name: out.Name}, nil
}

// fetchGitHub: si el email es privado, /user lo trae vacío y hay que ir a /user/emails.
func fetchGitHub(ctx context.Context, c *httpclient.Client, apiBase, token string) (social.Profile, error) {
	var u struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Login string `json:"login"`
	}
	if err := c.GetJSON(ctx, apiBase+"/user", bearer(token), &u); err != nil {
		return social.Profile{}, err
	}
	prof := social.Profile{Email: u.Email, Name: u.Name}
	if prof.Name == "" {
		prof.Name = u.Login
	}
	if prof.Email != "" {
		return prof, nil
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := c.GetJSON(ctx, apiBase+"/user/emails", bearer(token), &emails); err != nil {
		return social.Profile{}, err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			prof.Email = e.Email
			return prof, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			prof.Email = e.Email
			break
		}
	}
	return prof, nil
}
