package account_test

import (
	"context"
	"errors"
	"testing"

	"lingualink/backend-api/internal/services/account"
	"lingualink/backend-api/internal/testutils"

	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T) (account.Service, func(t *testing.T, email, fullName string) int64) {
	db := testutils.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })
	logger := zaptest.NewLogger(t)
	cfg := testutils.GetTestConfig()
	svc := account.NewAccountService(cfg, logger, db)
	createUser := func(t *testing.T, email, fullName string) int64 {
		return testutils.CreateTestUser(t, db, email, fullName, "password123")
	}
	return svc, createUser
}

func TestGetUser(t *testing.T) {
	svc, createUser := newTestService(t)
	ctx := context.Background()
	userID := createUser(t, "alice@example.com", "Alice")

	user, err := svc.GetUser(ctx, userID)
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email mismatch: %q", user.Email)
	}

	if _, err := svc.GetUser(ctx, userID+999); !errors.Is(err, account.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	svc, createUser := newTestService(t)
	ctx := context.Background()
	userID := createUser(t, "alice@example.com", "Alice")

	user, err := svc.CompleteOnboarding(ctx, userID, &account.ProfileParams{
		FullName:         "Alice Smith",
		Bio:              "Learning Spanish",
		NativeLanguage:   "English",
		LearningLanguage: "Spanish",
		Location:         "London",
	})
	if err != nil {
		t.Fatalf("Failed to complete onboarding: %v", err)
	}
	if user.IsOnboarded != 1 {
		t.Error("Expected user to be onboarded")
	}
	if user.FullName != "Alice Smith" || user.NativeLanguage != "English" {
		t.Errorf("Profile fields mismatch: %+v", user)
	}
	// No profile pic supplied: the signup avatar survives.
	if user.ProfilePic == "" {
		t.Error("Expected the signup avatar to be kept")
	}
}

func TestCompleteOnboarding_MissingFields(t *testing.T) {
	svc, createUser := newTestService(t)
	ctx := context.Background()
	userID := createUser(t, "alice@example.com", "Alice")

	_, err := svc.CompleteOnboarding(ctx, userID, &account.ProfileParams{
		FullName: "Alice Smith",
		Bio:      "Learning Spanish",
		// language and location fields missing
	})
	if !errors.Is(err, account.ErrMissingFields) {
		t.Errorf("Expected ErrMissingFields, got %v", err)
	}

	user, err := svc.GetUser(ctx, userID)
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if user.IsOnboarded != 0 {
		t.Error("Rejected onboarding must not flip the onboarded flag")
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, createUser := newTestService(t)
	ctx := context.Background()
	userID := createUser(t, "alice@example.com", "Alice")

	// Editing before onboarding leaves the flag down.
	user, err := svc.UpdateProfile(ctx, userID, &account.ProfileParams{
		FullName:         "Alice Smith",
		Bio:              "Learning Spanish",
		NativeLanguage:   "English",
		LearningLanguage: "Spanish",
		Location:         "London",
	})
	if err != nil {
		t.Fatalf("Failed to update profile: %v", err)
	}
	if user.IsOnboarded != 0 {
		t.Error("Profile update must not mark the user onboarded")
	}
	if user.FullName != "Alice Smith" {
		t.Errorf("Full name mismatch: %q", user.FullName)
	}

	if _, err := svc.CompleteOnboarding(ctx, userID, &account.ProfileParams{
		FullName:         "Alice Smith",
		Bio:              "Learning Spanish",
		NativeLanguage:   "English",
		LearningLanguage: "Spanish",
		Location:         "London",
	}); err != nil {
		t.Fatalf("Failed to complete onboarding: %v", err)
	}

	// Editing after onboarding keeps the flag up.
	user, err = svc.UpdateProfile(ctx, userID, &account.ProfileParams{
		FullName:         "Alice Jones",
		Bio:              "Learning Japanese now",
		NativeLanguage:   "English",
		LearningLanguage: "Japanese",
		Location:         "Tokyo",
	})
	if err != nil {
		t.Fatalf("Failed to update profile: %v", err)
	}
	if user.IsOnboarded != 1 {
		t.Error("Profile update must not clear the onboarded flag")
	}
	if user.FullName != "Alice Jones" || user.LearningLanguage != "Japanese" {
		t.Errorf("Profile fields mismatch: %+v", user)
	}
}

func TestUpdateProfile_MissingFields(t *testing.T) {
	svc, createUser := newTestService(t)
	ctx := context.Background()
	userID := createUser(t, "alice@example.com", "Alice")

	_, err := svc.UpdateProfile(ctx, userID, &account.ProfileParams{
		FullName: "Alice Smith",
	})
	if !errors.Is(err, account.ErrMissingFields) {
		t.Errorf("Expected ErrMissingFields, got %v", err)
	}
}
