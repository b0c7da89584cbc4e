package social

import (
	"context"
	"errors"
	"testing"

	"pet-adoption/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name string
	prof Profile
	err  error
}

func (f fakeProvider) Name() string        { return f.name }
func (f fakeProvider) AuthCodeURL() string { return "https://idp.example/" + f.name }
func (f fakeProvider) Exchange(ctx context.Context, code string) (Profile, error) {
	return f.prof, f.err
}

type fakeFinder map[string]users.User

func (f fakeFinder) GetByEmail(ctx context.Context, email string) (users.User, error) {
	u, ok := f[users.NormalizeEmail(email)]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func TestService_RedirectURL(t *testing.T) {
	svc := NewService(fakeFinder{}, fakeProvider{name: "google"}, nil)

	url, err := svc.RedirectURL("Google")
	require.NoError(t, err)
	assert.Equal(t, "https://idp.example/google", url)

	_, err = svc.RedirectURL("twitter")
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.Equal(t, []string{"google"}, svc.Providers())
}

func TestService_Callback(t *testing.T) {
	ana := users.User{ID: "u-1", Email: "ana@example.com"}
	finder := fakeFinder{"ana@example.com": ana}

	tests := []struct {
		name    string
		prov    fakeProvider
		code    string
		wantErr error
	}{
		{name: "ok", prov: fakeProvider{name: "github", prof: Profile{Email: "Ana@Example.com"}}, code: "c"},
		{name: "missing code", prov: fakeProvider{name: "github"}, code: "", wantErr: ErrMissingCode},
		{name: "no email", prov: fakeProvider{name: "github", prof: Profile{Name: "Ana"}}, code: "c", wantErr: ErrNoEmail},
		{name: "no account", prov: fakeProvider{name: "github", prof: Profile{Email: "bob@example.com"}}, code: "c", wantErr: ErrNoAccount},
		{name: "client error", prov: fakeProvider{name: "github", err: ErrProviderClient}, code: "c", wantErr: ErrProviderClient},
		{name: "upstream failure", prov: fakeProvider{name: "github", err: errors.New("boom")}, code: "c", wantErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(finder, tt.prov)
			u, err := svc.Callback(context.Background(), "github", tt.code)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, ana.ID, u.ID)
				return
			}
			require.Error(t, err)
			if errors.Is(tt.wantErr, ErrMissingCode) || errors.Is(tt.wantErr, ErrNoEmail) ||
				errors.Is(tt.wantErr, ErrNoAccount) || errors.Is(tt.wantErr, ErrProviderClient) {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.EqualError(t, err, tt.wantErr.Error())
			}
		})
	}
}
