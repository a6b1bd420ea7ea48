package account_test

import (
	"testing"
	"time"

	"diaconisas/internal/domain/account"

	"golang.org/x/crypto/bcrypt"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account account.Account
		wantErr error
	}{
		{"valid", account.Account{Username: "admin"}, nil},
		{"blank username", account.Account{Username: "  "}, account.ErrEmptyUsername},
		{"long username", account.Account{Username: string(make([]byte, 65))}, account.ErrUsernameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.account.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_Password tests hashing and verification.
func TestAccount_Password(t *testing.T) {
	defer account.SetHashCostForTest(bcrypt.MinCost)()

	var a account.Account
	if err := a.SetPassword(""); err != account.ErrEmptyPassword {
		t.Errorf("empty password error = %v", err)
	}
	if err := a.SetPassword("short"); err != account.ErrPasswordTooShort {
		t.Errorf("short password error = %v", err)
	}
	if err := a.CheckPassword("anything"); err != account.ErrWrongPassword {
		t.Errorf("check without hash = %v", err)
	}
	if err := a.SetPassword("correct horse"); err != nil {
		t.Fatalf("SetPassword() = %v", err)
	}
	if a.PasswordHash == "correct horse" {
		t.Error("password stored in plaintext")
	}
	if err := a.CheckPassword("correct horse"); err != nil {
		t.Errorf("CheckPassword(correct) = %v", err)
	}
	if err := a.CheckPassword("wrong horse"); err != account.ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) = %v", err)
	}
}

// TestAccount_Lockout tests the failed login lockout.
func TestAccount_Lockout(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	var a account.Account
	for i := 0; i < account.MaxFailedLogins-1; i++ {
		a.RecordFailedLogin(now)
	}
	if a.IsLocked(now) {
		t.Fatal("locked before reaching the limit")
	}
	a.RecordFailedLogin(now)
	if !a.IsLocked(now) {
		t.Fatal("not locked after reaching the limit")
	}
	if a.IsLocked(now.Add(account.LockoutDuration + time.Second)) {
		t.Error("still locked after the lockout window")
	}
	a.ResetFailedLogins()
	if a.FailedLogins != 0 || a.IsLocked(now) {
		t.Errorf("ResetFailedLogins left %+v", a)
	}
}
