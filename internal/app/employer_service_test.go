package app

import (
	"context"
	"testing"

	"github.com/klimenko666/dptmptch/internal/common"
)

func TestUpdateProfileKeepsPasswordHash(t *testing.T) {
	employers := newFakeEmployerRepo()
	service := NewEmployerService(employers)
	id := employers.add(t, "hr@techno-center.example")

	updated, err := service.UpdateProfile(context.Background(), id, ProfileInput{
		OrganizationName: "Techno Education Center",
		ContactName:      "Ivan Sidorov",
		Phone:            "+7 999 123-45-67",
		Email:            "hr@techno-center.example",
		City:             "Kazan",
		Description:      "STEM after-school programs",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.City != "Kazan" {
		t.Fatalf("expected city to be saved, got %q", updated.City)
	}
	stored, _ := employers.GetByID(context.Background(), id)
	if stored.PasswordHash == "" {
		t.Fatal("profile edits must not wipe the password hash")
	}
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	employers := newFakeEmployerRepo()
	service := NewEmployerService(employers)
	id := employers.add(t, "hr@techno-center.example")
	employers.add(t, "taken@school.example")

	_, err := service.UpdateProfile(context.Background(), id, ProfileInput{
		OrganizationName: "Techno Education Center",
		ContactName:      "Ivan Sidorov",
		Phone:            "+7 999 123-45-67",
		Email:            "taken@school.example",
	})
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateProfileRequiresContactFields(t *testing.T) {
	employers := newFakeEmployerRepo()
	service := NewEmployerService(employers)
	id := employers.add(t, "hr@techno-center.example")

	_, err := service.UpdateProfile(context.Background(), id, ProfileInput{
		OrganizationName: "Techno Education Center",
		Email:            "hr@techno-center.example",
	})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
