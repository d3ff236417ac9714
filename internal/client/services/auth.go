// Package services contains application services for the WealthWise client.
// This file defines the authentication service: login, signup, logout and
// the persisted session that survives restarts.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/wealthwise/internal/client/client"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wealthwise/internal/client/repositories/snapshots"
	"github.com/dmitrijs2005/wealthwise/internal/client/session"
	"github.com/dmitrijs2005/wealthwise/internal/dbx"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login / Signup: authenticate through the gateway and replace the
//     session atomically. Backend rejections are returned unchanged.
//   - Logout: clear token and user together, in memory and on disk. The
//     snapshot journal and last sync time belong to the account and go too.
//   - Current: the session as of now; never a token without a user.
//   - Restore: load the session persisted by an earlier run.
//   - Me: ask the backend who the token belongs to.
//
// A call abandoned by its context never mutates the session.
type AuthService interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
	Signup(ctx context.Context, email, password, confirm string) (session.Session, error)
	Logout(ctx context.Context) error
	Current() session.Session
	Restore(ctx context.Context) (session.Session, error)
	Me(ctx context.Context) (models.User, error)
	LastEmail(ctx context.Context) string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ErrNotLoggedIn is returned by operations that need a session.
var ErrNotLoggedIn = errors.New("not logged in")

type authService struct {
	client client.Client
	store  *session.Store
	db     *sql.DB
	log    logging.Logger
}

func NewAuthService(c client.Client, store *session.Store, db *sql.DB, log logging.Logger) AuthService {
	return &authService{client: c, store: store, db: db, log: log}
}

func (a *authService) persister(db dbx.DBTX) *session.MetadataPersister {
	return session.NewMetadataPersister(metadata.NewSQLiteRepository(db))
}

func (a *authService) Login(ctx context.Context, email, password string) (session.Session, error) {
	creds := models.Credentials{Email: strings.TrimSpace(email), Password: password}
	resp, err := a.client.Login(ctx, creds)
	if err != nil {
		return session.Session{}, err
	}
	return a.begin(ctx, resp)
}

func (a *authService) Signup(ctx context.Context, email, password, confirm string) (session.Session, error) {
	creds := models.SignupCredentials{Email: strings.TrimSpace(email), Password: password, ConfirmPassword: confirm}
	if creds.Password != creds.ConfirmPassword {
		return session.Session{}, &models.ValidationError{Field: "confirm_password", Reason: "does not match password"}
	}
	resp, err := a.client.Signup(ctx, creds)
	if err != nil {
		return session.Session{}, err
	}
	return a.begin(ctx, resp)
}

// begin installs a fresh session. The on-disk copy is written first, in
// one transaction with the remembered email; a failed write is logged and
// the in-memory session is installed regardless.
func (a *authService) begin(ctx context.Context, resp models.AuthResponse) (session.Session, error) {
	s := session.FromAuth(resp)
	if err := ctx.Err(); err != nil {
		return session.Session{}, err
	}
	if s.Token == "" || s.User.ID == "" {
		return session.Session{}, session.ErrIncomplete
	}

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := a.persister(tx).Save(ctx, s); err != nil {
			return err
		}
		return metadata.NewSQLiteRepository(tx).Set(ctx, metadata.KeyLastEmail, []byte(s.User.Email))
	})
	if err != nil {
		a.log.Warn(ctx, "session not persisted", "user_id", s.User.ID, "error", err)
	}

	if err := a.store.Replace(s); err != nil {
		return session.Session{}, err
	}
	a.log.Info(ctx, "session started", "user_id", s.User.ID)
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.store.Clear()
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := a.persister(tx).Clear(ctx); err != nil {
			return err
		}
		if err := snapshots.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return metadata.NewSQLiteRepository(tx).Delete(ctx, metadata.KeyLastSync)
	})
	if err != nil {
		return err
	}
	a.log.Info(ctx, "session cleared")
	return nil
}

func (a *authService) Current() session.Session {
	return a.store.Current()
}

func (a *authService) Restore(ctx context.Context) (session.Session, error) {
	return session.Restore(ctx, a.store, a.persister(a.db))
}

func (a *authService) Me(ctx context.Context) (models.User, error) {
	if !a.store.Current().Authenticated() {
		return models.User{}, ErrNotLoggedIn
	}
	return a.client.Me(ctx)
}

// LastEmail is the email of the most recent login, or "".
func (a *authService) LastEmail(ctx context.Context) string {
	v, err := metadata.NewSQLiteRepository(a.db).Get(ctx, metadata.KeyLastEmail)
	if err != nil {
		return ""
	}
	return string(v)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
