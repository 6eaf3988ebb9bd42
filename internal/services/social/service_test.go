package social_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"lingualink/backend-api/internal/services/social"
	"lingualink/backend-api/internal/testutils"

	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T) (social.Service, *sql.DB, func(t *testing.T, email, fullName string) int64) {
	db := testutils.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })
	logger := zaptest.NewLogger(t)
	cfg := testutils.GetTestConfig()
	svc := social.NewSocialService(cfg, logger, db)
	createUser := func(t *testing.T, email, fullName string) int64 {
		return testutils.CreateOnboardedUser(t, db, email, fullName, "password123")
	}
	return svc, db, createUser
}

func TestSendFriendRequest_Self(t *testing.T) {
	svc, _, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")

	_, err := svc.SendFriendRequest(ctx, alice, alice)
	if !errors.Is(err, social.ErrCannotFriendSelf) {
		t.Errorf("Expected ErrCannotFriendSelf, got %v", err)
	}
}

func TestSendFriendRequest_RecipientNotFound(t *testing.T) {
	svc, _, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")

	_, err := svc.SendFriendRequest(ctx, alice, alice+999)
	if !errors.Is(err, social.ErrRecipientNotFound) {
		t.Errorf("Expected ErrRecipientNotFound, got %v", err)
	}
}

func TestSendFriendRequest_DuplicateBothDirections(t *testing.T) {
	svc, _, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")
	bob := createUser(t, "bob@example.com", "Bob")

	req, err := svc.SendFriendRequest(ctx, alice, bob)
	if err != nil {
		t.Fatalf("Failed to send friend request: %v", err)
	}
	if req.SenderID != alice || req.RecipientID != bob {
		t.Errorf("Request sender/recipient mismatch: %+v", req)
	}
	if req.Status != "pending" {
		t.Errorf("Expected pending status, got %q", req.Status)
	}

	// Same direction
	_, err = svc.SendFriendRequest(ctx, alice, bob)
	if !errors.Is(err, social.ErrRequestAlreadyExists) {
		t.Errorf("Expected ErrRequestAlreadyExists for same direction, got %v", err)
	}

	// Reverse direction is blocked too
	_, err = svc.SendFriendRequest(ctx, bob, alice)
	if !errors.Is(err, social.ErrRequestAlreadyExists) {
		t.Errorf("Expected ErrRequestAlreadyExists for reverse direction, got %v", err)
	}
}

func TestSendFriendRequest_BlockedAfterAccept(t *testing.T) {
	svc, _, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")
	bob := createUser(t, "bob@example.com", "Bob")

	req, err := svc.SendFriendRequest(ctx, alice, bob)
	if err != nil {
		t.Fatalf("Failed to send friend request: %v", err)
	}
	if err := svc.AcceptFriendRequest(ctx, req.RequestID, bob); err != nil {
		t.Fatalf("Failed to accept friend request: %v", err)
	}

	_, err = svc.SendFriendRequest(ctx, alice, bob)
	if !errors.Is(err, social.ErrAlreadyFriends) {
		t.Errorf("Expected ErrAlreadyFriends after accept, got %v", err)
	}
	_, err = svc.SendFriendRequest(ctx, bob, alice)
	if !errors.Is(err, social.ErrAlreadyFriends) {
		t.Errorf("Expected ErrAlreadyFriends for reverse after accept, got %v", err)
	}
}

func TestSendFriendRequest_ConcurrentOppositeDirections(t *testing.T) {
	svc, _, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")
	bob := createUser(t, "bob@example.com", "Bob")

	var wg sync.WaitGroup
	results := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, results[0] = svc.SendFriendRequest(ctx, alice, bob)
	}()
	go func() {
		defer wg.Done()
		_, results[1] = svc.SendFriendRequest(ctx, bob, alice)
	}()
	wg.Wait()

	// Exactly one send wins, the other gets the duplicate conflict.
	var successes, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, social.ErrRequestAlreadyExists):
			conflicts++
		default:
			t.Errorf("Unexpected error from concurrent send: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Errorf("Expected 1 success and 1 conflict, got %d successes and %d conflicts", successes, conflicts)
	}

	incoming, err := svc.ListIncomingRequests(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list incoming requests: %v", err)
	}
	outgoing, err := svc.ListOutgoingPendingRequests(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list outgoing requests: %v", err)
	}
	if len(incoming)+len(outgoing) != 1 {
		t.Errorf("Expected exactly 1 request between the pair, got %d incoming and %d outgoing",
			len(incoming), len(outgoing))
	}
}

func TestAcceptFriendRequest_Symmetry(t *testing.T) {
	svc, _, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")
	bob := createUser(t, "bob@example.com", "Bob")

	req, err := svc.SendFriendRequest(ctx, alice, bob)
	if err != nil {
		t.Fatalf("Failed to send friend request: %v", err)
	}
	if err := svc.AcceptFriendRequest(ctx, req.RequestID, bob); err != nil {
		t.Fatalf("Failed to accept friend request: %v", err)
	}

	aliceFriends, err := svc.ListFriends(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list alice's friends: %v", err)
	}
	bobFriends, err := svc.ListFriends(ctx, bob)
	if err != nil {
		t.Fatalf("Failed to list bob's friends: %v", err)
	}
	if len(aliceFriends) != 1 || aliceFriends[0].FriendID != bob {
		t.Errorf("Expected alice to have bob as friend, got %+v", aliceFriends)
	}
	if len(bobFriends) != 1 || bobFriends[0].FriendID != alice {
		t.Errorf("Expected bob to have alice as friend, got %+v", bobFriends)
	}
}

func TestAcceptFriendRequest_NotFound(t *testing.T) {
	svc, _, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")

	err := svc.AcceptFriendRequest(ctx, "no-such-request", alice)
	if !errors.Is(err, social.ErrRequestNotFound) {
		t.Errorf("Expected ErrRequestNotFound, got %v", err)
	}
}

func TestAcceptFriendRequest_OnlyRecipient(t *testing.T) {
	svc, _, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")
	bob := createUser(t, "bob@example.com", "Bob")
	carol := createUser(t, "carol@example.com", "Carol")

	req, err := svc.SendFriendRequest(ctx, alice, bob)
	if err != nil {
		t.Fatalf("Failed to send friend request: %v", err)
	}

	// Neither the sender nor a third party may accept.
	if err := svc.AcceptFriendRequest(ctx, req.RequestID, alice); !errors.Is(err, social.ErrNotRequestRecipient) {
		t.Errorf("Expected ErrNotRequestRecipient for sender, got %v", err)
	}
	if err := svc.AcceptFriendRequest(ctx, req.RequestID, carol); !errors.Is(err, social.ErrNotRequestRecipient) {
		t.Errorf("Expected ErrNotRequestRecipient for third party, got %v", err)
	}

	// The failed attempts must not have changed anything.
	aliceFriends, err := svc.ListFriends(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list friends: %v", err)
	}
	if len(aliceFriends) != 0 {
		t.Errorf("Expected no friends after rejected accepts, got %d", len(aliceFriends))
	}
	incoming, err := svc.ListIncomingRequests(ctx, bob)
	if err != nil {
		t.Fatalf("Failed to list incoming requests: %v", err)
	}
	if len(incoming) != 1 {
		t.Errorf("Expected request still pending, got %d incoming", len(incoming))
	}
}

func TestAcceptFriendRequest_AlreadyAccepted(t *testing.T) {
	svc, _, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")
	bob := createUser(t, "bob@example.com", "Bob")

	req, err := svc.SendFriendRequest(ctx, alice, bob)
	if err != nil {
		t.Fatalf("Failed to send friend request: %v", err)
	}
	if err := svc.AcceptFriendRequest(ctx, req.RequestID, bob); err != nil {
		t.Fatalf("Failed to accept friend request: %v", err)
	}

	err = svc.AcceptFriendRequest(ctx, req.RequestID, bob)
	if !errors.Is(err, social.ErrRequestNotPending) {
		t.Errorf("Expected ErrRequestNotPending on second accept, got %v", err)
	}

	// Still exactly one edge per direction.
	bobFriends, err := svc.ListFriends(ctx, bob)
	if err != nil {
		t.Fatalf("Failed to list friends: %v", err)
	}
	if len(bobFriends) != 1 {
		t.Errorf("Expected 1 friend after repeated accept, got %d", len(bobFriends))
	}
}

func TestFavorites(t *testing.T) {
	svc, _, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")
	bob := createUser(t, "bob@example.com", "Bob")
	carol := createUser(t, "carol@example.com", "Carol")

	// Favoriting a non-friend is rejected.
	if err := svc.AddFavorite(ctx, alice, carol); !errors.Is(err, social.ErrNotFriends) {
		t.Errorf("Expected ErrNotFriends, got %v", err)
	}

	req, err := svc.SendFriendRequest(ctx, alice, bob)
	if err != nil {
		t.Fatalf("Failed to send friend request: %v", err)
	}
	if err := svc.AcceptFriendRequest(ctx, req.RequestID, bob); err != nil {
		t.Fatalf("Failed to accept friend request: %v", err)
	}

	if err := svc.AddFavorite(ctx, alice, bob); err != nil {
		t.Fatalf("Failed to add favorite: %v", err)
	}
	friends, err := svc.ListFriends(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list friends: %v", err)
	}
	if len(friends) != 1 || friends[0].IsFavorite != 1 {
		t.Errorf("Expected bob to be a favorite, got %+v", friends)
	}

	// Favorites are one-directional: bob has not favorited alice.
	bobFriends, err := svc.ListFriends(ctx, bob)
	if err != nil {
		t.Fatalf("Failed to list friends: %v", err)
	}
	if len(bobFriends) != 1 || bobFriends[0].IsFavorite != 0 {
		t.Errorf("Expected alice not to be bob's favorite, got %+v", bobFriends)
	}

	// Removal is idempotent, including for never-favorited users.
	if err := svc.RemoveFavorite(ctx, alice, bob); err != nil {
		t.Fatalf("Failed to remove favorite: %v", err)
	}
	if err := svc.RemoveFavorite(ctx, alice, bob); err != nil {
		t.Errorf("Expected idempotent remove, got %v", err)
	}
	if err := svc.RemoveFavorite(ctx, alice, carol); err != nil {
		t.Errorf("Expected remove on non-favorite to succeed, got %v", err)
	}

	friends, err = svc.ListFriends(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list friends: %v", err)
	}
	if len(friends) != 1 || friends[0].IsFavorite != 0 {
		t.Errorf("Expected favorite flag cleared, got %+v", friends)
	}
}

func TestListRecommendedUsers(t *testing.T) {
	svc, db, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")
	bob := createUser(t, "bob@example.com", "Bob")
	carol := createUser(t, "carol@example.com", "Carol")
	// dave signed up but never onboarded, so he must not be recommended
	testutils.CreateTestUser(t, db, "dave@example.com", "Dave", "password123")

	req, err := svc.SendFriendRequest(ctx, alice, bob)
	if err != nil {
		t.Fatalf("Failed to send friend request: %v", err)
	}
	if err := svc.AcceptFriendRequest(ctx, req.RequestID, bob); err != nil {
		t.Fatalf("Failed to accept friend request: %v", err)
	}

	recommended, err := svc.ListRecommendedUsers(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list recommended users: %v", err)
	}
	if len(recommended) != 1 || recommended[0].UserID != carol {
		t.Errorf("Expected only carol recommended, got %+v", recommended)
	}
}

func TestRequestFeeds(t *testing.T) {
	svc, _, createUser := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, "alice@example.com", "Alice")
	bob := createUser(t, "bob@example.com", "Bob")
	carol := createUser(t, "carol@example.com", "Carol")

	// alice -> bob stays pending, alice -> carol gets accepted.
	pendingReq, err := svc.SendFriendRequest(ctx, alice, bob)
	if err != nil {
		t.Fatalf("Failed to send friend request: %v", err)
	}
	acceptedReq, err := svc.SendFriendRequest(ctx, alice, carol)
	if err != nil {
		t.Fatalf("Failed to send friend request: %v", err)
	}
	if err := svc.AcceptFriendRequest(ctx, acceptedReq.RequestID, carol); err != nil {
		t.Fatalf("Failed to accept friend request: %v", err)
	}

	incoming, err := svc.ListIncomingRequests(ctx, bob)
	if err != nil {
		t.Fatalf("Failed to list incoming requests: %v", err)
	}
	if len(incoming) != 1 || incoming[0].RequestID != pendingReq.RequestID || incoming[0].SenderID != alice {
		t.Errorf("Expected bob to see alice's pending request, got %+v", incoming)
	}

	outgoingPending, err := svc.ListOutgoingPendingRequests(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list outgoing pending requests: %v", err)
	}
	if len(outgoingPending) != 1 || outgoingPending[0].RecipientID != bob {
		t.Errorf("Expected alice's outgoing pending list to hold bob, got %+v", outgoingPending)
	}

	outgoingAccepted, err := svc.ListOutgoingAcceptedRequests(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list outgoing accepted requests: %v", err)
	}
	if len(outgoingAccepted) != 1 || outgoingAccepted[0].RecipientID != carol {
		t.Errorf("Expected alice's accepted list to hold carol, got %+v", outgoingAccepted)
	}

	// Accepted requests leave the recipient's incoming feed.
	carolIncoming, err := svc.ListIncomingRequests(ctx, carol)
	if err != nil {
		t.Fatalf("Failed to list incoming requests: %v", err)
	}
	if len(carolIncoming) != 0 {
		t.Errorf("Expected no incoming requests for carol after accept, got %+v", carolIncoming)
	}
}
