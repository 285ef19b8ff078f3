package usecase

import (
	"context"
	"testing"

	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/repository"

	"github.com/google/uuid"
)

func newContactUsecaseForTest(t *testing.T) (ContactUsecase, *testEnv) {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{db: db}
	uc := NewContactUsecase(
		db,
		newTestLogger(),
		repository.NewContactRepository(),
		repository.NewDirectMessageRepository(),
		repository.NewAccountRepository(),
		newTestAuditService(db),
	)
	return uc, env
}

func TestSendFriendRequest(t *testing.T) {
	uc, env := newContactUsecaseForTest(t)
	alice := createClient(t, env.db)
	bob := createClient(t, env.db)
	ctx := context.Background()

	t.Run("creates a pending request", func(t *testing.T) {
		contact, err := uc.SendFriendRequest(ctx, alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("SendFriendRequest failed: %v", err)
		}
		if contact.IsFriend {
			t.Error("new request should be pending, not a friendship")
		}
		if contact.UserID != alice.ID || contact.FriendID != bob.ID {
			t.Error("request edge has the wrong endpoints")
		}
	})

	t.Run("duplicate request is rejected", func(t *testing.T) {
		_, err := uc.SendFriendRequest(ctx, alice.ID, bob.ID)
		if err != ErrRequestAlreadySent {
			t.Errorf("expected ErrRequestAlreadySent, got %v", err)
		}
	})

	t.Run("self request is rejected", func(t *testing.T) {
		_, err := uc.SendFriendRequest(ctx, alice.ID, alice.ID)
		if err != ErrSelfContact {
			t.Errorf("expected ErrSelfContact, got %v", err)
		}
	})

	t.Run("unknown target is rejected", func(t *testing.T) {
		_, err := uc.SendFriendRequest(ctx, alice.ID, uuid.New())
		if err != ErrAccountNotFound {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("existing friendship blocks a new request in either direction", func(t *testing.T) {
		carol := createClient(t, env.db)
		dave := createClient(t, env.db)

		if _, err := uc.SendFriendRequest(ctx, carol.ID, dave.ID); err != nil {
			t.Fatalf("SendFriendRequest failed: %v", err)
		}
		if err := uc.AcceptFriendRequest(ctx, dave.ID, carol.ID); err != nil {
			t.Fatalf("AcceptFriendRequest failed: %v", err)
		}

		if _, err := uc.SendFriendRequest(ctx, carol.ID, dave.ID); err != ErrAlreadyFriends {
			t.Errorf("expected ErrAlreadyFriends, got %v", err)
		}
		if _, err := uc.SendFriendRequest(ctx, dave.ID, carol.ID); err != ErrAlreadyFriends {
			t.Errorf("expected ErrAlreadyFriends, got %v", err)
		}
	})
}

func TestAcceptFriendRequest(t *testing.T) {
	uc, env := newContactUsecaseForTest(t)
	alice := createClient(t, env.db)
	bob := createClient(t, env.db)
	ctx := context.Background()

	if _, err := uc.SendFriendRequest(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("SendFriendRequest failed: %v", err)
	}
	if err := uc.AcceptFriendRequest(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("AcceptFriendRequest failed: %v", err)
	}

	t.Run("both directions become friendships", func(t *testing.T) {
		for _, pair := range [][2]any{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
			var contact entity.Contact
			err := env.db.Where("user_id = ? AND friend_id = ?", pair[0], pair[1]).First(&contact).Error
			if err != nil {
				t.Fatalf("missing edge %v -> %v: %v", pair[0], pair[1], err)
			}
			if !contact.IsFriend {
				t.Errorf("edge %v -> %v should be a friendship", pair[0], pair[1])
			}
		}
	})

	t.Run("both sides see each other in friend listings", func(t *testing.T) {
		aliceFriends, err := uc.ListFriends(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListFriends failed: %v", err)
		}
		if len(aliceFriends) != 1 || aliceFriends[0].FriendID != bob.ID {
			t.Error("alice should have bob as a friend")
		}

		bobFriends, err := uc.ListFriends(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListFriends failed: %v", err)
		}
		if len(bobFriends) != 1 || bobFriends[0].FriendID != alice.ID {
			t.Error("bob should have alice as a friend")
		}
	})

	t.Run("accepting a missing request fails", func(t *testing.T) {
		carol := createClient(t, env.db)
		if err := uc.AcceptFriendRequest(ctx, carol.ID, alice.ID); err != ErrRequestNotFound {
			t.Errorf("expected ErrRequestNotFound, got %v", err)
		}
	})
}

func TestRejectFriendRequest(t *testing.T) {
	uc, env := newContactUsecaseForTest(t)
	alice := createClient(t, env.db)
	bob := createClient(t, env.db)
	ctx := context.Background()

	if _, err := uc.SendFriendRequest(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("SendFriendRequest failed: %v", err)
	}

	if err := uc.RejectFriendRequest(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("RejectFriendRequest failed: %v", err)
	}

	var count int64
	env.db.Model(&entity.Contact{}).Where("user_id = ?", alice.ID).Count(&count)
	if count != 0 {
		t.Error("rejected request should be deleted")
	}

	t.Run("the requester may try again", func(t *testing.T) {
		if _, err := uc.SendFriendRequest(ctx, alice.ID, bob.ID); err != nil {
			t.Errorf("resending after rejection failed: %v", err)
		}
	})
}

func TestRemoveFriend(t *testing.T) {
	uc, env := newContactUsecaseForTest(t)
	alice := createClient(t, env.db)
	bob := createClient(t, env.db)
	ctx := context.Background()

	if _, err := uc.SendFriendRequest(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("SendFriendRequest failed: %v", err)
	}
	if err := uc.AcceptFriendRequest(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("AcceptFriendRequest failed: %v", err)
	}

	if err := uc.RemoveFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("RemoveFriend failed: %v", err)
	}

	var count int64
	env.db.Model(&entity.Contact{}).Count(&count)
	if count != 0 {
		t.Errorf("both edges should be deleted, %d remain", count)
	}

	t.Run("removing a non-friend fails", func(t *testing.T) {
		if err := uc.RemoveFriend(ctx, alice.ID, bob.ID); err != ErrNotFriends {
			t.Errorf("expected ErrNotFriends, got %v", err)
		}
	})
}

func TestListPendingRequests(t *testing.T) {
	uc, env := newContactUsecaseForTest(t)
	alice := createClient(t, env.db)
	bob := createClient(t, env.db)
	carol := createClient(t, env.db)
	ctx := context.Background()

	if _, err := uc.SendFriendRequest(ctx, alice.ID, carol.ID); err != nil {
		t.Fatalf("SendFriendRequest failed: %v", err)
	}
	if _, err := uc.SendFriendRequest(ctx, bob.ID, carol.ID); err != nil {
		t.Fatalf("SendFriendRequest failed: %v", err)
	}

	pending, err := uc.ListPendingRequests(ctx, carol.ID)
	if err != nil {
		t.Fatalf("ListPendingRequests failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending requests, got %d", len(pending))
	}

	none, err := uc.ListPendingRequests(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListPendingRequests failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no pending requests for the sender, got %d", len(none))
	}
}

func TestDirectMessages(t *testing.T) {
	uc, env := newContactUsecaseForTest(t)
	client := createClient(t, env.db)
	provider := createProvider(t, env.db)
	outsider := createClient(t, env.db)
	ctx := context.Background()

	t.Run("messaging works without friendship", func(t *testing.T) {
		message, err := uc.SendMessage(ctx, client.ID, &dto.SendMessageRequest{
			ReceiverID: provider.ID,
			Content:    "hello, are you taking new clients?",
		})
		if err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
		if message.SenderID != client.ID || message.ReceiverID != provider.ID {
			t.Error("message endpoints are wrong")
		}
	})

	t.Run("self message is rejected", func(t *testing.T) {
		_, err := uc.SendMessage(ctx, client.ID, &dto.SendMessageRequest{
			ReceiverID: client.ID,
			Content:    "note to self",
		})
		if err != ErrSelfMessage {
			t.Errorf("expected ErrSelfMessage, got %v", err)
		}
	})

	t.Run("conversation contains both directions in order", func(t *testing.T) {
		if _, err := uc.SendMessage(ctx, provider.ID, &dto.SendMessageRequest{
			ReceiverID: client.ID,
			Content:    "yes, my calendar is open",
		}); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}

		messages, err := uc.GetConversation(ctx, client.ID, provider.ID)
		if err != nil {
			t.Fatalf("GetConversation failed: %v", err)
		}
		if len(messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(messages))
		}
		if messages[0].SenderID != client.ID || messages[1].SenderID != provider.ID {
			t.Error("messages are out of order")
		}
	})

	t.Run("third parties are not part of the conversation", func(t *testing.T) {
		messages, err := uc.GetConversation(ctx, outsider.ID, provider.ID)
		if err != nil {
			t.Fatalf("GetConversation failed: %v", err)
		}
		if len(messages) != 0 {
			t.Errorf("expected an empty conversation, got %d messages", len(messages))
		}
	})
}
