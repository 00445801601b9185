package store

import (
	"testing"

	"github.com/google/uuid"

	"reelpress/internal/models"
)

func TestUserStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "store-test-user@northlightfilms.example"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	u, err := s.Create(email, "s3cret-pass", "Store Test", models.RoleEditor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Error("created user has nil ID")
	}
	if u.PasswordHash == "s3cret-pass" {
		t.Error("password stored in plaintext")
	}
	if u.Role != models.RoleEditor {
		t.Errorf("role = %q, want editor", u.Role)
	}
	if u.TOTPEnabled {
		t.Error("new user should not have 2FA enabled")
	}

	found, err := s.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil || found.ID != u.ID {
		t.Fatal("FindByEmail did not return the created user")
	}

	byID, err := s.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || byID.Email != email {
		t.Fatal("FindByID did not return the created user")
	}
}

func TestUserStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	u, err := s.FindByEmail("nobody@northlightfilms.example")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}

	u, err = s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}
}

func TestUserStoreCheckPassword(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "store-test-pass@northlightfilms.example"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	u, err := s.Create(email, "correct horse", "Pass Test", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !s.CheckPassword(u, "correct horse") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(u, "battery staple") {
		t.Error("wrong password accepted")
	}
}

func TestUserStoreTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "store-test-totp@northlightfilms.example"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	u, err := s.Create(email, "pw", "TOTP Test", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.SetTOTPSecret(u.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := s.EnableTOTP(u.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	updated, err := s.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !updated.TOTPEnabled {
		t.Error("TOTP should be enabled")
	}
	if updated.TOTPSecret == nil || *updated.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Error("TOTP secret not stored")
	}
	if updated.Needs2FASetup() {
		t.Error("user with enabled TOTP should not need setup")
	}
}
