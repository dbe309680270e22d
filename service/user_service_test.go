package application

import (
	"context"
	"testing"

	"stayvista_service/authorization"
	"stayvista_service/domain"
	"stayvista_service/errors"
)

// the gate resolves roles through the user service
var _ authorization.RoleResolver = (*UserService)(nil)

func TestUpsertNewUserDefaults(t *testing.T) {
	store := newFakeUserStore()
	service := NewUserService(store, testTracer)

	user := &domain.User{Email: "guest@mail.com", Name: "Guest"}
	if err := service.Upsert(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	saved := store.users["guest@mail.com"]
	if saved == nil {
		t.Fatal("expected user to be stored")
	}
	if saved.Role != domain.RoleGuest {
		t.Errorf("expected default role guest, got %q", saved.Role)
	}
	if saved.Timestamp == 0 {
		t.Error("expected creation timestamp to be set")
	}
}

func TestUpsertDoesNotOverwriteExistingUser(t *testing.T) {
	store := newFakeUserStore()
	service := NewUserService(store, testTracer)

	original := &domain.User{Email: "guest@mail.com", Name: "Original", Role: domain.RoleHost}
	if err := service.Upsert(context.Background(), original); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	createdAt := store.users["guest@mail.com"].Timestamp

	again := &domain.User{Email: "guest@mail.com", Name: "Changed"}
	if err := service.Upsert(context.Background(), again); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	saved := store.users["guest@mail.com"]
	if saved.Name != "Original" {
		t.Errorf("expected existing record untouched, name is %q", saved.Name)
	}
	if saved.Role != domain.RoleHost {
		t.Errorf("expected existing role kept, got %q", saved.Role)
	}
	if saved.Timestamp != createdAt {
		t.Errorf("expected creation timestamp %d preserved, got %d", createdAt, saved.Timestamp)
	}
}

func TestUpsertHostRequestOnlyTransitionsStatus(t *testing.T) {
	store := newFakeUserStore()
	store.users["guest@mail.com"] = &domain.User{Email: "guest@mail.com", Name: "Guest", Role: domain.RoleGuest, Timestamp: 42}
	service := NewUserService(store, testTracer)

	request := &domain.User{Email: "guest@mail.com", Status: domain.StatusRequested}
	if err := service.Upsert(context.Background(), request); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	saved := store.users["guest@mail.com"]
	if saved.Status != domain.StatusRequested {
		t.Errorf("expected status requested, got %q", saved.Status)
	}
	if saved.Role != domain.RoleGuest || saved.Name != "Guest" || saved.Timestamp != 42 {
		t.Errorf("expected only the status to change, got %+v", saved)
	}
	if store.inserted != 0 {
		t.Errorf("expected no insert attempt for a status request, got %d", store.inserted)
	}
}

func TestUpdateRoleDefaultsToVerified(t *testing.T) {
	store := newFakeUserStore()
	store.users["guest@mail.com"] = &domain.User{Email: "guest@mail.com", Role: domain.RoleGuest, Status: domain.StatusRequested}
	service := NewUserService(store, testTracer)

	change := &domain.RoleChange{Role: domain.RoleHost}
	if err := service.UpdateRole(context.Background(), "guest@mail.com", change); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	saved := store.users["guest@mail.com"]
	if saved.Role != domain.RoleHost {
		t.Errorf("expected role host, got %q", saved.Role)
	}
	if saved.Status != domain.StatusVerified {
		t.Errorf("expected status verified, got %q", saved.Status)
	}
}

func TestResolveRoleUnknownUser(t *testing.T) {
	service := NewUserService(newFakeUserStore(), testTracer)

	_, err := service.ResolveRole(context.Background(), "nobody@mail.com")
	if err == nil || err.Error() != errors.UserNotFoundError {
		t.Fatalf("expected %q, got %v", errors.UserNotFoundError, err)
	}
}

func TestGetUnknownUser(t *testing.T) {
	service := NewUserService(newFakeUserStore(), testTracer)

	_, err := service.Get(context.Background(), "nobody@mail.com")
	if err == nil || err.Error() != errors.UserNotFoundError {
		t.Fatalf("expected %q, got %v", errors.UserNotFoundError, err)
	}
}
