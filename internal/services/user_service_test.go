package services

import (
	"errors"
	"testing"

	"github.com/casavia/casavia-be/internal/models"
)

func TestCreateUser_HashesPassword(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	user, err := svc.CreateUser("Max Robinson", "password", "Max", "Robinson", "max@example.com", []string{models.RoleUser})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.ID == "" {
		t.Error("expected a generated user ID")
	}
	if user.PasswordHash != "" {
		t.Error("returned user must not carry the password hash")
	}

	stored, err := svc.GetUserByUsername("Max Robinson")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if stored.PasswordHash == "password" || stored.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestCreateUser_DuplicateUsername_DirectoryUnchanged(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.CreateUser("sarah", "pw", "Sarah", "Host", "sarah@example.com", []string{models.RoleHost}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	before, err := svc.CountUsers()
	if err != nil {
		t.Fatalf("CountUsers() error = %v", err)
	}

	_, err = svc.CreateUser("sarah", "other", "Other", "Person", "other@example.com", []string{models.RoleUser})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("CreateUser() error = %v, want ErrUsernameTaken", err)
	}

	after, err := svc.CountUsers()
	if err != nil {
		t.Fatalf("CountUsers() error = %v", err)
	}
	if after != before {
		t.Errorf("user count = %d, want %d (directory must be unchanged on conflict)", after, before)
	}
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.CreateUser("eve", "pw", "Eve", "Eavesdrop", "eve@example.com", []string{"ADMIN"}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("CreateUser() error = %v, want ErrInvalidRole", err)
	}
	if _, err := svc.CreateUser("eve", "pw", "Eve", "Eavesdrop", "eve@example.com", nil); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("CreateUser() with no role error = %v, want ErrInvalidRole", err)
	}
}

func TestAuthenticateUser(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.CreateUser("max", "password", "Max", "Robinson", "max@example.com", []string{models.RoleUser}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	user, err := svc.AuthenticateUser("max", "password")
	if err != nil {
		t.Fatalf("AuthenticateUser() error = %v", err)
	}
	if user.Username != "max" {
		t.Errorf("Username = %q, want %q", user.Username, "max")
	}
	if user.PasswordHash != "" {
		t.Error("authenticated user must not carry the password hash")
	}

	if _, err := svc.AuthenticateUser("max", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.AuthenticateUser("nobody", "password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: error = %v, want ErrInvalidCredentials", err)
	}
}

func TestBecomeHost_WidensRolesOnce(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	created, err := svc.CreateUser("max", "password", "Max", "Robinson", "max@example.com", []string{models.RoleUser})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	promoted, err := svc.BecomeHost(created.ID)
	if err != nil {
		t.Fatalf("BecomeHost() error = %v", err)
	}
	wantRoles := []string{models.RoleUser, models.RoleHost}
	if len(promoted.Roles) != 2 || promoted.Roles[0] != wantRoles[0] || promoted.Roles[1] != wantRoles[1] {
		t.Fatalf("Roles = %v, want %v", promoted.Roles, wantRoles)
	}

	// Promoting again is a no-op, not an error.
	again, err := svc.BecomeHost(created.ID)
	if err != nil {
		t.Fatalf("second BecomeHost() error = %v", err)
	}
	if len(again.Roles) != 2 {
		t.Errorf("Roles after second promotion = %v, want unchanged %v", again.Roles, wantRoles)
	}
}

func TestBecomeHost_UnknownUser(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.BecomeHost("user-404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("BecomeHost() error = %v, want ErrNotFound", err)
	}
}
