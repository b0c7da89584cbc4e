package sessions

import (
	"context"
	"net/http"
	"time"
)

const xsrfCookie = "XSRF-TOKEN"

// TokenIssuer firma un token Bearer atado a la sesión (jti = session id).
type TokenIssuer interface {
	Issue(s Session) (string, error)
}

type CookieConfig struct {
	Name   string
	Secure bool
}

// Web agrupa lo que los handlers de login/logout hacen sobre la respuesta HTTP:
// sesión, cookie de sesión, rotación de XSRF-TOKEN y token Bearer.
type Web struct {
	Sessions *Service
	Tokens   TokenIssuer
	Cookie   CookieConfig
}

// Login crea la sesión y escribe cookies. Si el request ya traía una sesión, se descarta.
func (wb *Web) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, userID, email string) (Session, string, error) {
	if c, err := r.Cookie(wb.Cookie.Name); err == nil && c.Value != "" {
		_ = wb.Sessions.End(ctx, c.Value)
	}

	sess, err := wb.Sessions.Start(ctx, userID, email)
	if err != nil {
		return Session{}, "", err
	}

	var token string
	if wb.Tokens != nil {
		token, err = wb.Tokens.Issue(sess)
		if err != nil {
			_ = wb.Sessions.End(ctx, sess.ID)
			return Session{}, "", err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     wb.Cookie.Name,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   wb.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	if _, err := wb.IssueXSRF(w); err != nil {
		return Session{}, "", err
	}
	return sess, token, nil
}

// Logout borra la sesión (si hay) y expira ambas cookies.
func (wb *Web) Logout(ctx context.Context, w http.ResponseWriter, sessionID string) error {
	if err := wb.Sessions.End(ctx, sessionID); err != nil {
		return err
	}
	wb.expire(w, wb.Cookie.Name, true)
	wb.expire(w, xsrfCookie, false)
	return nil
}

// IssueXSRF rota la cookie XSRF-TOKEN (legible por JS, sin HttpOnly).
func (wb *Web) IssueXSRF(w http.ResponseWriter) (string, error) {
	v, err := NewID()
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     xsrfCookie,
		Value:    v,
		Path:     "/",
		MaxAge:   int(wb.Sessions.Lifetime().Seconds()),
		Secure:   wb.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return v, nil
}

func (wb *Web) expire(w http.ResponseWriter, name string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: httpOnly,
		Secure:   wb.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
