package orchestrators

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"diaconisas/internal/adapters/storage"
	"diaconisas/internal/domain/account"
	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/friend"
	"diaconisas/internal/domain/member"
)

var fixedTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// mockAccountStore implements AccountStoreForLogin and AccountStoreForRegister.
type mockAccountStore struct {
	accounts map[string]account.Account
	saves    int
}

func newMockAccountStore(accts ...account.Account) *mockAccountStore {
	m := &mockAccountStore{accounts: make(map[string]account.Account)}
	for _, a := range accts {
		m.accounts[a.Username] = a
	}
	return m
}

// GetByUsername implements AccountStoreForLogin.
// PRE: username is non-empty
// POST: returns the account or storage.ErrNotFound
func (m *mockAccountStore) GetByUsername(_ context.Context, username string) (account.Account, error) {
	a, ok := m.accounts[username]
	if !ok {
		return account.Account{}, storage.ErrNotFound
	}
	return a, nil
}

// Save implements AccountStoreForLogin.
// POST: account is persisted by username
func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.saves++
	m.accounts[a.Username] = a
	return nil
}

// stubTokens implements TokenIssuer.
type stubTokens struct{}

// Issue implements TokenIssuer.
func (stubTokens) Issue(subject string) (string, error) {
	return "token-for-" + subject, nil
}

// mockMemberStore implements MemberStoreForSave.
type mockMemberStore struct {
	members map[string]member.Member
}

func newMockMemberStore() *mockMemberStore {
	return &mockMemberStore{members: make(map[string]member.Member)}
}

// GetByID implements MemberStoreForSave.
// POST: returns the member or storage.ErrNotFound
func (m *mockMemberStore) GetByID(_ context.Context, id string) (member.Member, error) {
	mem, ok := m.members[id]
	if !ok {
		return member.Member{}, storage.ErrNotFound
	}
	return mem, nil
}

// Save implements MemberStoreForSave.
func (m *mockMemberStore) Save(_ context.Context, mem member.Member) error {
	m.members[mem.ID] = mem
	return nil
}

// Delete implements MemberStoreForSave.
func (m *mockMemberStore) Delete(_ context.Context, id string) error {
	if _, ok := m.members[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.members, id)
	return nil
}

// mockFriendStore implements FriendStoreForSave.
type mockFriendStore struct {
	friends map[string]friend.Friend
}

func newMockFriendStore() *mockFriendStore {
	return &mockFriendStore{friends: make(map[string]friend.Friend)}
}

// GetByID implements FriendStoreForSave.
// POST: returns the friend or storage.ErrNotFound
func (m *mockFriendStore) GetByID(_ context.Context, id string) (friend.Friend, error) {
	f, ok := m.friends[id]
	if !ok {
		return friend.Friend{}, storage.ErrNotFound
	}
	return f, nil
}

// Save implements FriendStoreForSave.
func (m *mockFriendStore) Save(_ context.Context, f friend.Friend) error {
	m.friends[f.ID] = f
	return nil
}

// Delete implements FriendStoreForSave.
func (m *mockFriendStore) Delete(_ context.Context, id string) error {
	if _, ok := m.friends[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.friends, id)
	return nil
}

// mockAttendanceStore implements AttendanceStoreForRecord with upsert semantics.
type mockAttendanceStore struct {
	records map[string]attendance.Record
	calls   int
}

func newMockAttendanceStore() *mockAttendanceStore {
	return &mockAttendanceStore{records: make(map[string]attendance.Record)}
}

// Upsert implements AttendanceStoreForRecord.
// POST: one record per (kind, person, date)
func (m *mockAttendanceStore) Upsert(_ context.Context, r attendance.Record) (attendance.Record, error) {
	m.calls++
	k := r.Key().String() + "/" + r.Date
	if existing, ok := m.records[k]; ok {
		r.ID = existing.ID
		r.CreatedAt = existing.CreatedAt
	} else {
		r.ID = k
		r.CreatedAt = fixedTime
	}
	m.records[k] = r
	return r, nil
}

// hashedAccount builds an account with a cheap bcrypt hash.
func hashedAccount(t *testing.T, username, password string) account.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return account.Account{ID: "acct-" + username, Username: username, PasswordHash: string(hash), CreatedAt: fixedTime}
}
