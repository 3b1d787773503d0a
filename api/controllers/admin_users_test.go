package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ideabank/ideabank-backend/internal/accounts"
	"github.com/ideabank/ideabank-backend/pkg/enums"
	pkgerrors "github.com/ideabank/ideabank-backend/pkg/errors"
)

type stubAccountsService struct {
	registerID    int64
	registerErr   error
	tempRegisters int
	generated     *accounts.GenerateResult
	blockErr      error

	blockedID int64
}

func (s *stubAccountsService) Register(ctx context.Context, username, password string, role enums.Role) (int64, error) {
	return s.registerID, s.registerErr
}

func (s *stubAccountsService) RegisterWithTempPassword(ctx context.Context, username, password string, role enums.Role) (int64, error) {
	s.tempRegisters++
	return s.registerID, s.registerErr
}

func (s *stubAccountsService) Generate(ctx context.Context, count int) (*accounts.GenerateResult, error) {
	return s.generated, nil
}

func (s *stubAccountsService) GenerateWithPasswords(ctx context.Context, count int) (*accounts.GenerateResult, error) {
	return s.generated, nil
}

func (s *stubAccountsService) TempPasswordUsers(ctx context.Context) ([]accounts.TempPasswordAccount, error) {
	return nil, nil
}

func (s *stubAccountsService) HashTempPasswords(ctx context.Context) (int, error) {
	return 0, nil
}

func (s *stubAccountsService) Block(ctx context.Context, userID int64) error {
	s.blockedID = userID
	return s.blockErr
}

func (s *stubAccountsService) Unblock(ctx context.Context, userID int64) error { return nil }
func (s *stubAccountsService) Delete(ctx context.Context, userID int64) error  { return nil }

func (s *stubAccountsService) List(ctx context.Context) ([]accounts.Account, error) {
	return nil, nil
}

func TestAdminUserRegisterSuccess(t *testing.T) {
	svc := &stubAccountsService{registerID: 42}
	handler := AdminUserRegister(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", bytes.NewReader([]byte(`{"username":"worker","password":"secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			UserID   int64  `json:"user_id"`
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.UserID != 42 || envelope.Data.Username != "worker" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
	if svc.tempRegisters != 0 {
		t.Fatal("expected plain registration path")
	}
}

func TestAdminUserRegisterTempPassword(t *testing.T) {
	svc := &stubAccountsService{registerID: 43}
	handler := AdminUserRegister(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", bytes.NewReader([]byte(`{"username":"worker","password":"secret","temp_password":true}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.tempRegisters != 1 {
		t.Fatal("expected temp-password registration path")
	}
}

func TestAdminUserRegisterUnknownRole(t *testing.T) {
	handler := AdminUserRegister(&stubAccountsService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", bytes.NewReader([]byte(`{"username":"worker","password":"secret","role":"owner"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminUserRegisterDuplicate(t *testing.T) {
	svc := &stubAccountsService{registerErr: pkgerrors.New(pkgerrors.CodeDuplicate, "username already taken")}
	handler := AdminUserRegister(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", bytes.NewReader([]byte(`{"username":"worker","password":"secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestAdminUsersGenerateRejectsOversizedBatch(t *testing.T) {
	handler := AdminUsersGenerate(&stubAccountsService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users/generate", bytes.NewReader([]byte(`{"count":101}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminUsersGenerateSuccess(t *testing.T) {
	svc := &stubAccountsService{generated: &accounts.GenerateResult{
		Accounts: []accounts.GeneratedAccount{
			{ID: 2, Username: "abcdefgh", Password: "p@ssw0rd12"},
		},
		TotalCreated: 1,
	}}
	handler := AdminUsersGenerate(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users/generate", bytes.NewReader([]byte(`{"count":1,"with_passwords":true}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Users        []accounts.GeneratedAccount `json:"users"`
			TotalCreated int                         `json:"total_created"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalCreated != 1 || len(envelope.Data.Users) != 1 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestAdminUserBlock(t *testing.T) {
	svc := &stubAccountsService{}
	handler := AdminUserBlock(svc, nil)

	req := newRouteRequest(http.MethodPost, "/api/admin/v1/users/5/block", "userID", "5")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.blockedID != 5 {
		t.Fatalf("expected block called with 5 got %d", svc.blockedID)
	}
}

func TestAdminUserBlockRefusesAdmins(t *testing.T) {
	svc := &stubAccountsService{blockErr: pkgerrors.New(pkgerrors.CodeForbidden, "administrators cannot be blocked")}
	handler := AdminUserBlock(svc, nil)

	req := newRouteRequest(http.MethodPost, "/api/admin/v1/users/1/block", "userID", "1")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestAdminUserBlockBadID(t *testing.T) {
	handler := AdminUserBlock(&stubAccountsService{}, nil)

	req := newRouteRequest(http.MethodPost, "/api/admin/v1/users/zero/block", "userID", "zero")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func newRouteRequest(method, target, paramKey, paramValue string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(paramKey, paramValue)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
