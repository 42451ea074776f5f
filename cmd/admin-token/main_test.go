package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"rampsync.backend/internal/config"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/pkg/jwt"
)

type userLookupStub struct {
	user *entities.User
	err  error
}

func (s userLookupStub) GetByID(context.Context, uuid.UUID) (*entities.User, error) {
	return s.user, s.err
}

func testDeps(users userLookup, out io.Writer) adminTokenDeps {
	return adminTokenDeps{
		loadEnv: func() error { return errors.New("no .env") },
		loadCfg: func() *config.Config {
			return &config.Config{JWT: config.JWTConfig{Secret: "test-secret", Issuer: "rampsync"}}
		},
		prepare: func(*config.Config) (userLookup, io.Closer, error) { return users, nil, nil },
		out:     out,
	}
}

func TestParseUserID(t *testing.T) {
	if _, err := parseUserID(""); err == nil {
		t.Fatal("expected error for empty user id")
	}
	if _, err := parseUserID("bad-uuid"); err == nil {
		t.Fatal("expected error for invalid uuid")
	}

	id := uuid.New()
	got, err := parseUserID(id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Fatalf("expected %s got %s", id, got)
	}
}

func TestRunAdminToken_IssuesValidToken(t *testing.T) {
	id := uuid.New()
	var out bytes.Buffer
	deps := testDeps(userLookupStub{user: &entities.User{ID: id, Email: "ops@example.com", Role: entities.UserRoleAdmin}}, &out)

	if err := runAdminToken([]string{"-user-id", id.String(), "-ttl", "30m"}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var token string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "ACCESS_TOKEN=") {
			token = strings.TrimPrefix(line, "ACCESS_TOKEN=")
		}
	}
	if token == "" {
		t.Fatalf("token missing from output: %s", out.String())
	}

	claims, err := jwt.NewJWTService("test-secret", "rampsync", time.Minute).ValidateToken(token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != id || claims.Role != string(entities.UserRoleAdmin) {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRunAdminToken_RejectsNonAdmin(t *testing.T) {
	id := uuid.New()
	deps := testDeps(userLookupStub{user: &entities.User{ID: id, Role: entities.UserRoleUser}}, io.Discard)

	err := runAdminToken([]string{"-user-id", id.String()}, deps)
	if err == nil || !strings.Contains(err.Error(), "not ADMIN") {
		t.Fatalf("expected non-admin error, got %v", err)
	}
}

func TestRunAdminToken_UserLookupError(t *testing.T) {
	deps := testDeps(userLookupStub{err: domainerrors.ErrNotFound}, io.Discard)

	err := runAdminToken([]string{"-user-id", uuid.NewString()}, deps)
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRunAdminToken_InvalidFlags(t *testing.T) {
	deps := testDeps(userLookupStub{}, io.Discard)

	if err := runAdminToken(nil, deps); err == nil {
		t.Fatal("expected error when --user-id is missing")
	}
	if err := runAdminToken([]string{"-user-id", uuid.NewString(), "-ttl", "0s"}, deps); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestRunAdminToken_PrepareError(t *testing.T) {
	deps := testDeps(nil, io.Discard)
	deps.prepare = func(*config.Config) (userLookup, io.Closer, error) { return nil, nil, errors.New("db down") }

	if err := runAdminToken([]string{"-user-id", uuid.NewString()}, deps); err == nil {
		t.Fatal("expected prepare error")
	}
}

func TestMain_ExitsWhenUserIDMissing(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_ADMIN_TOKEN") == "1" {
		os.Args = []string{"admin-token"}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestMain_ExitsWhenUserIDMissing")
	cmd.Env = append(os.Environ(), "GO_WANT_HELPER_ADMIN_TOKEN=1")
	if err := cmd.Run(); err == nil {
		t.Fatal("expected helper process to fail when --user-id is missing")
	}
}
