package accounts

import (
	"context"
	"testing"

	"github.com/ideabank/ideabank-backend/internal/ideas"
	"github.com/ideabank/ideabank-backend/internal/records"
	"github.com/ideabank/ideabank-backend/pkg/config"
	"github.com/ideabank/ideabank-backend/pkg/enums"
	pkgerrors "github.com/ideabank/ideabank-backend/pkg/errors"
	"github.com/ideabank/ideabank-backend/pkg/security"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
		MinLength:        4,
	}
}

func newTestService(t *testing.T) (Service, ideas.Service, *records.Records) {
	t.Helper()
	cfg := &config.Config{
		Store:    config.StoreConfig{DataDir: t.TempDir()},
		Password: testPasswordConfig(),
		Seed:     config.SeedConfig{AdminUsername: "admin", AdminPassword: "12345"},
	}
	recs, err := records.Open(cfg, nil, nil)
	if err != nil {
		t.Fatalf("open records: %v", err)
	}
	ideaSvc, err := ideas.NewService(ideas.ServiceParams{Ideas: recs.Ideas, Config: recs.Config})
	if err != nil {
		t.Fatalf("new idea service: %v", err)
	}
	svc, err := NewService(ServiceParams{Users: recs.Users, Ideas: ideaSvc, PasswordConfig: cfg.Password})
	if err != nil {
		t.Fatalf("new account service: %v", err)
	}
	return svc, ideaSvc, recs
}

func findUser(t *testing.T, recs *records.Records, id int64) records.User {
	t.Helper()
	var found records.User
	err := recs.Users.View(context.Background(), func(doc *records.UsersDocument) error {
		user := doc.FindByID(id)
		if user == nil {
			t.Fatalf("user %d not in document", id)
		}
		found = *user
		return nil
	})
	if err != nil {
		t.Fatalf("view users: %v", err)
	}
	return found
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _, recs := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "alice", "secret", enums.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id != 2 {
		t.Fatalf("expected id 2 after seed admin, got %d", id)
	}

	user := findUser(t, recs, id)
	if user.Password == "secret" || user.Password == "" {
		t.Fatalf("password must be stored as a digest, got %q", user.Password)
	}
	ok, err := security.VerifyPassword("secret", user.Password)
	if err != nil || !ok {
		t.Fatalf("digest must verify, ok=%v err=%v", ok, err)
	}
	if user.PlainPassword != "" || user.IsTempPassword {
		t.Fatal("plain registration must not retain a plaintext")
	}
	if user.NeedsPasswordChange {
		t.Fatal("regular users are not forced to change password")
	}
	if !user.IsActive {
		t.Fatal("new accounts start active")
	}
}

func TestRegisterAdminForcesPasswordChange(t *testing.T) {
	svc, _, recs := newTestService(t)
	id, err := svc.Register(context.Background(), "root2", "secret", enums.RoleAdmin)
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if !findUser(t, recs, id).NeedsPasswordChange {
		t.Fatal("new admins must be forced to change password")
	}
}

func TestRegisterRejectsDuplicateAndBlank(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "bob", "pw", enums.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "bob", "other", enums.RoleUser); !pkgerrors.IsCode(err, pkgerrors.CodeDuplicate) {
		t.Fatalf("expected DUPLICATE, got %v", err)
	}
	if _, err := svc.Register(ctx, "  ", "pw", enums.RoleUser); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if _, err := svc.Register(ctx, "carol", "pw", enums.Role("owner")); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for unknown role, got %v", err)
	}
}

func TestTempPasswordLifecycle(t *testing.T) {
	svc, _, recs := newTestService(t)
	ctx := context.Background()

	id, err := svc.RegisterWithTempPassword(ctx, "temp1", "handout99", enums.RoleUser)
	if err != nil {
		t.Fatalf("register with temp password: %v", err)
	}
	user := findUser(t, recs, id)
	if user.PlainPassword != "handout99" || !user.IsTempPassword {
		t.Fatalf("temp registration must retain the plaintext, got %+v", user)
	}

	roster, err := svc.TempPasswordUsers(ctx)
	if err != nil {
		t.Fatalf("temp password users: %v", err)
	}
	if len(roster) != 1 || roster[0].Username != "temp1" || roster[0].Password != "handout99" {
		t.Fatalf("unexpected roster: %+v", roster)
	}

	cleared, err := svc.HashTempPasswords(ctx)
	if err != nil {
		t.Fatalf("hash temp passwords: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected 1 cleared plaintext, got %d", cleared)
	}

	user = findUser(t, recs, id)
	if user.PlainPassword != "" || user.IsTempPassword {
		t.Fatalf("plaintext must be gone after bulk hash, got %+v", user)
	}
	ok, err := security.VerifyPassword("handout99", user.Password)
	if err != nil || !ok {
		t.Fatalf("digest must still verify after plaintext drop, ok=%v err=%v", ok, err)
	}

	roster, err = svc.TempPasswordUsers(ctx)
	if err != nil {
		t.Fatalf("temp password users: %v", err)
	}
	if len(roster) != 0 {
		t.Fatalf("roster must be empty after bulk hash, got %+v", roster)
	}
}

func TestGenerateWithPasswords(t *testing.T) {
	svc, _, recs := newTestService(t)
	ctx := context.Background()

	result, err := svc.GenerateWithPasswords(ctx, 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.TotalCreated != 5 || result.TotalFailed != 0 {
		t.Fatalf("unexpected totals: %+v", result)
	}
	for _, acc := range result.Accounts {
		if len(acc.Username) != security.GeneratedUsernameLen {
			t.Fatalf("expected %d-char username, got %q", security.GeneratedUsernameLen, acc.Username)
		}
		if len(acc.Password) != security.GeneratedPasswordLen {
			t.Fatalf("expected %d-char password, got %q", security.GeneratedPasswordLen, acc.Password)
		}
		user := findUser(t, recs, acc.ID)
		if !user.IsTempPassword || user.PlainPassword != acc.Password {
			t.Fatalf("generated account must hold its plaintext, got %+v", user)
		}
	}
}

func TestGenerateWithoutPasswords(t *testing.T) {
	svc, _, recs := newTestService(t)
	result, err := svc.Generate(context.Background(), 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.TotalCreated != 3 {
		t.Fatalf("expected 3 created, got %d", result.TotalCreated)
	}
	for _, acc := range result.Accounts {
		if acc.Password != "" {
			t.Fatalf("plain generation must not echo passwords, got %+v", acc)
		}
		user := findUser(t, recs, acc.ID)
		if user.IsTempPassword || user.PlainPassword != "" {
			t.Fatalf("plain generation must not retain plaintext, got %+v", user)
		}
	}
}

func TestGenerateCountBounds(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, 0); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for count 0, got %v", err)
	}
	if _, err := svc.Generate(ctx, 101); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for count 101, got %v", err)
	}
}

func TestBlockAndUnblock(t *testing.T) {
	svc, _, recs := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "dave", "pw", enums.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Block(ctx, id); err != nil {
		t.Fatalf("block: %v", err)
	}
	if findUser(t, recs, id).IsActive {
		t.Fatal("blocked user must be inactive")
	}
	if err := svc.Unblock(ctx, id); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if !findUser(t, recs, id).IsActive {
		t.Fatal("unblocked user must be active")
	}

	// seed admin has id 1
	if err := svc.Block(ctx, 1); !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN blocking an admin, got %v", err)
	}
	if err := svc.Block(ctx, 999); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeleteCascadesToIdeas(t *testing.T) {
	svc, ideaSvc, recs := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "erin", "pw", enums.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := ideaSvc.Create(ctx, ideas.CreateRequest{Title: "Erin's idea", AuthorID: id}); err != nil {
		t.Fatalf("create idea: %v", err)
	}
	if _, err := ideaSvc.Create(ctx, ideas.CreateRequest{Title: "Someone else's", AuthorID: 1}); err != nil {
		t.Fatalf("create idea: %v", err)
	}

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err = recs.Users.View(ctx, func(doc *records.UsersDocument) error {
		if doc.FindByID(id) != nil {
			t.Fatal("deleted user must be gone")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view users: %v", err)
	}

	remaining, err := ideaSvc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list ideas: %v", err)
	}
	if len(remaining) != 1 || remaining[0].AuthorID != 1 {
		t.Fatalf("cascade must remove only the deleted user's ideas, got %+v", remaining)
	}
}

func TestDeleteRefusesAdmins(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, 1); !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN deleting an admin, got %v", err)
	}
	if err := svc.Delete(ctx, 999); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListStripsCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RegisterWithTempPassword(ctx, "frank", "visible", enums.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected seed admin plus frank, got %d", len(list))
	}
	for _, acc := range list {
		if acc.Username == "" {
			t.Fatalf("listing must carry usernames, got %+v", acc)
		}
	}
}

func TestGenerateRetriesCollisionsWithLongerUsername(t *testing.T) {
	_, ideaSvc, recs := newTestService(t)
	ctx := context.Background()

	// Deterministic generator: the 8-char name always collides with a
	// pre-registered account, the 10-char retry succeeds.
	names := map[int]string{
		security.GeneratedUsernameLen:      "collided",
		security.GeneratedUsernameRetryLen: "retryname0",
	}
	svc, err := NewService(ServiceParams{
		Users:          recs.Users,
		Ideas:          ideaSvc,
		PasswordConfig: testPasswordConfig(),
		GenerateUsername: func(length int) (string, error) {
			return names[length], nil
		},
	})
	if err != nil {
		t.Fatalf("new account service: %v", err)
	}

	if _, err := svc.Register(ctx, "collided", "pw123", enums.RoleUser); err != nil {
		t.Fatalf("seed colliding account: %v", err)
	}

	result, err := svc.Generate(ctx, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.TotalCreated != 1 || result.TotalFailed != 0 {
		t.Fatalf("expected one account via retry, got %+v", result)
	}
	if result.Accounts[0].Username != "retryname0" {
		t.Fatalf("expected the longer retry username, got %q", result.Accounts[0].Username)
	}
}

func TestGenerateCountsExhaustedRetriesAsFailed(t *testing.T) {
	_, ideaSvc, recs := newTestService(t)
	ctx := context.Background()

	// Both the first attempt and the retry collide.
	svc, err := NewService(ServiceParams{
		Users:          recs.Users,
		Ideas:          ideaSvc,
		PasswordConfig: testPasswordConfig(),
		GenerateUsername: func(length int) (string, error) {
			return "stuckname", nil
		},
	})
	if err != nil {
		t.Fatalf("new account service: %v", err)
	}

	if _, err := svc.Register(ctx, "stuckname", "pw123", enums.RoleUser); err != nil {
		t.Fatalf("seed colliding account: %v", err)
	}

	result, err := svc.Generate(ctx, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.TotalCreated != 0 || result.TotalFailed != 1 {
		t.Fatalf("expected the exhausted retry to count as failed, got %+v", result)
	}
	if len(result.Accounts) != 0 {
		t.Fatalf("expected no accounts, got %+v", result.Accounts)
	}
}
