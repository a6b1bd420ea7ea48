package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"diaconisas/internal/domain/account"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// TokenIssuer signs access tokens for an authenticated username.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the access token of a successful login.
type LoginResult struct {
	AccessToken string
	Username    string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
	Tokens       TokenIssuer
	Now          func() time.Time
}

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
)

// ExecuteLogin validates credentials and issues an access token.
// PRE: Valid username and password provided
// POST: Returns a token on success, records the failed attempt otherwise
// INVARIANT: A locked account cannot log in even with the right password
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	now := deps.Now()

	acct, err := deps.AccountStore.GetByUsername(ctx, input.Username)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if acct.IsLocked(now) {
		slog.Info("auth_event", "event", "login_blocked", "username", input.Username, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin(now)
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			slog.Error("auth_event", "event", "save_failed_login", "username", input.Username, "error", err)
		}
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	if acct.FailedLogins > 0 {
		acct.ResetFailedLogins()
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			return LoginResult{}, err
		}
	}

	token, err := deps.Tokens.Issue(acct.Username)
	if err != nil {
		return LoginResult{}, err
	}

	slog.Info("auth_event", "event", "login_success", "username", acct.Username)
	return LoginResult{AccessToken: token, Username: acct.Username}, nil
}
