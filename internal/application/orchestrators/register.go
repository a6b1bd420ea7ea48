package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"diaconisas/internal/adapters/storage"
	storageAccount "diaconisas/internal/adapters/storage/account"
	"diaconisas/internal/domain/account"
)

// AccountStoreForRegister defines the store interface needed by Register and SeedAdmin.
type AccountStoreForRegister interface {
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// RegisterInput carries input for the register orchestrator.
type RegisterInput struct {
	Username string
	Password string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	AccountStore AccountStoreForRegister
	Tokens       TokenIssuer
	Enabled      bool
	GenerateID   func() string
	Now          func() time.Time
}

var (
	ErrRegistrationClosed = errors.New("registration is disabled")
	ErrUsernameTaken      = errors.New("username already registered")
)

// ExecuteRegister creates an account and logs it in.
// PRE: Registration is enabled
// POST: Account stored with a bcrypt hash; returns an access token
// INVARIANT: Usernames are unique
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (LoginResult, error) {
	if !deps.Enabled {
		return LoginResult{}, ErrRegistrationClosed
	}

	acct, err := createAccount(ctx, input.Username, input.Password, deps.AccountStore, deps.GenerateID, deps.Now)
	if err != nil {
		return LoginResult{}, err
	}

	token, err := deps.Tokens.Issue(acct.Username)
	if err != nil {
		return LoginResult{}, err
	}
	slog.Info("auth_event", "event", "account_registered", "username", acct.Username)
	return LoginResult{AccessToken: token, Username: acct.Username}, nil
}

// SeedAdminInput carries the configured administrator credentials.
type SeedAdminInput struct {
	Username string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForRegister
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSeedAdmin creates the configured administrator when it does not exist yet.
// PRE: none; an empty username or password skips seeding
// POST: Returns true when an account was created
// INVARIANT: An existing account is never modified
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) (bool, error) {
	if input.Username == "" || input.Password == "" {
		return false, nil
	}
	_, err := createAccount(ctx, input.Username, input.Password, deps.AccountStore, deps.GenerateID, deps.Now)
	if errors.Is(err, ErrUsernameTaken) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	slog.Info("auth_event", "event", "admin_seeded", "username", input.Username)
	return true, nil
}

func createAccount(ctx context.Context, username, password string, store AccountStoreForRegister, generateID func() string, now func() time.Time) (account.Account, error) {
	_, err := store.GetByUsername(ctx, username)
	if err == nil {
		return account.Account{}, ErrUsernameTaken
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return account.Account{}, err
	}

	acct := account.Account{
		ID:        generateID(),
		Username:  username,
		CreatedAt: now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := acct.SetPassword(password); err != nil {
		return account.Account{}, err
	}
	if err := store.Save(ctx, acct); err != nil {
		if errors.Is(err, storageAccount.ErrUsernameTaken) {
			return account.Account{}, ErrUsernameTaken
		}
		return account.Account{}, err
	}
	return acct, nil
}
