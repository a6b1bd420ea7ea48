package orchestrators

import (
	"context"
	"errors"
	"testing"
)

func TestExecuteRegister(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		store := newMockAccountStore()
		_, err := ExecuteRegister(context.Background(), RegisterInput{Username: "new", Password: "long-enough"}, RegisterDeps{
			AccountStore: store, Tokens: stubTokens{}, GenerateID: fixedID, Now: fixedNow,
		})
		if !errors.Is(err, ErrRegistrationClosed) {
			t.Fatalf("error = %v, want ErrRegistrationClosed", err)
		}
		if len(store.accounts) != 0 {
			t.Error("no account should be created")
		}
	})

	t.Run("taken", func(t *testing.T) {
		store := newMockAccountStore(hashedAccount(t, "admin", "s3cret-pass"))
		_, err := ExecuteRegister(context.Background(), RegisterInput{Username: "admin", Password: "long-enough"}, RegisterDeps{
			AccountStore: store, Tokens: stubTokens{}, Enabled: true, GenerateID: fixedID, Now: fixedNow,
		})
		if !errors.Is(err, ErrUsernameTaken) {
			t.Fatalf("error = %v, want ErrUsernameTaken", err)
		}
	})

	t.Run("created", func(t *testing.T) {
		store := newMockAccountStore()
		res, err := ExecuteRegister(context.Background(), RegisterInput{Username: "new", Password: "long-enough"}, RegisterDeps{
			AccountStore: store, Tokens: stubTokens{}, Enabled: true, GenerateID: fixedID, Now: fixedNow,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.AccessToken != "token-for-new" {
			t.Errorf("AccessToken = %q", res.AccessToken)
		}
		acct := store.accounts["new"]
		if acct.ID != "test-id-001" || acct.PasswordHash == "" {
			t.Errorf("stored account = %+v", acct)
		}
		if err := acct.CheckPassword("long-enough"); err != nil {
			t.Errorf("CheckPassword() error = %v", err)
		}
	})
}

func TestExecuteSeedAdminIsIdempotent(t *testing.T) {
	store := newMockAccountStore()
	deps := SeedAdminDeps{AccountStore: store, GenerateID: fixedID, Now: fixedNow}
	input := SeedAdminInput{Username: "admin", Password: "s3cret-pass"}

	created, err := ExecuteSeedAdmin(context.Background(), input, deps)
	if err != nil || !created {
		t.Fatalf("first seed = %v, %v; want true, nil", created, err)
	}
	hash := store.accounts["admin"].PasswordHash

	created, err = ExecuteSeedAdmin(context.Background(), SeedAdminInput{Username: "admin", Password: "another-pass"}, deps)
	if err != nil || created {
		t.Fatalf("second seed = %v, %v; want false, nil", created, err)
	}
	if store.accounts["admin"].PasswordHash != hash {
		t.Error("existing account must not be modified")
	}

	created, err = ExecuteSeedAdmin(context.Background(), SeedAdminInput{}, deps)
	if err != nil || created {
		t.Errorf("empty seed = %v, %v; want false, nil", created, err)
	}
}
