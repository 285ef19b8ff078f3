package usecase

import (
	"context"
	"errors"
	"fmt"

	"calmseek-backend/internal/converter"
	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/domain/repository"
	"calmseek-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSelfContact        = errors.New("cannot befriend yourself")
	ErrAlreadyFriends     = errors.New("already friends")
	ErrRequestAlreadySent = errors.New("friend request already sent")
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrNotFriends         = errors.New("accounts are not friends")
	ErrSelfMessage        = errors.New("cannot message yourself")
)

type ContactUsecase interface {
	SendFriendRequest(ctx context.Context, userID, friendID uuid.UUID) (*dto.ContactResponse, error)
	AcceptFriendRequest(ctx context.Context, userID, requesterID uuid.UUID) error
	RejectFriendRequest(ctx context.Context, userID, requesterID uuid.UUID) error
	RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]dto.ContactResponse, error)
	ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]dto.ContactResponse, error)
	SendMessage(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.DirectMessageResponse, error)
	GetConversation(ctx context.Context, userID, partnerID uuid.UUID) ([]dto.DirectMessageResponse, error)
}

type contactUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	contactRepo  repository.ContactRepository
	messageRepo  repository.DirectMessageRepository
	accountRepo  repository.AccountRepository
	auditService service.AuditService
}

func NewContactUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	contactRepo repository.ContactRepository,
	messageRepo repository.DirectMessageRepository,
	accountRepo repository.AccountRepository,
	auditService service.AuditService,
) ContactUsecase {
	return &contactUsecase{
		db:           db,
		log:          log,
		contactRepo:  contactRepo,
		messageRepo:  messageRepo,
		accountRepo:  accountRepo,
		auditService: auditService,
	}
}

// SendFriendRequest creates a pending edge from the sender to the
// target. Friendship in either direction blocks a new request.
func (u *contactUsecase) SendFriendRequest(ctx context.Context, userID, friendID uuid.UUID) (*dto.ContactResponse, error) {
	if userID == friendID {
		return nil, ErrSelfContact
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	friend, err := u.accountRepo.FindByID(tx, friendID)
	if err != nil {
		return nil, err
	}
	if friend == nil {
		return nil, ErrAccountNotFound
	}

	for _, pair := range [][2]uuid.UUID{{userID, friendID}, {friendID, userID}} {
		edge, err := u.contactRepo.FindEdge(tx, pair[0], pair[1], true)
		if err != nil {
			u.log.Warnf("Failed to check existing friendship: %+v", err)
			return nil, err
		}
		if edge != nil {
			return nil, ErrAlreadyFriends
		}
	}

	contact, created, err := u.contactRepo.GetOrCreate(tx, userID, friendID, false)
	if err != nil {
		u.log.Warnf("Failed to create friend request: %+v", err)
		return nil, err
	}
	if !created {
		return nil, ErrRequestAlreadySent
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionFriendRequest, "contact", fmt.Sprintf("%d", contact.ID), contact); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ContactToResponse(contact), nil
}

// AcceptFriendRequest promotes the pending edge and mirrors it, so the
// friendship is recorded in both directions.
func (u *contactUsecase) AcceptFriendRequest(ctx context.Context, userID, requesterID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	pending, err := u.contactRepo.FindEdge(tx, requesterID, userID, false)
	if err != nil {
		u.log.Warnf("Failed to find friend request: %+v", err)
		return err
	}
	if pending == nil {
		return ErrRequestNotFound
	}

	pending.IsFriend = true
	if err := u.contactRepo.Update(tx, pending); err != nil {
		u.log.Warnf("Failed to accept friend request: %+v", err)
		return err
	}

	if _, _, err := u.contactRepo.GetOrCreate(tx, userID, requesterID, true); err != nil {
		u.log.Warnf("Failed to mirror friendship: %+v", err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionFriendAccept, "contact", fmt.Sprintf("%d", pending.ID), nil, pending); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return tx.Commit().Error
}

func (u *contactUsecase) RejectFriendRequest(ctx context.Context, userID, requesterID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	pending, err := u.contactRepo.FindEdge(db, requesterID, userID, false)
	if err != nil {
		u.log.Warnf("Failed to find friend request: %+v", err)
		return err
	}
	if pending == nil {
		return ErrRequestNotFound
	}

	if err := u.contactRepo.Delete(db, pending); err != nil {
		u.log.Warnf("Failed to reject friend request: %+v", err)
		return err
	}
	return nil
}

// RemoveFriend deletes both direction edges.
func (u *contactUsecase) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	forward, err := u.contactRepo.FindEdge(tx, userID, friendID, true)
	if err != nil {
		u.log.Warnf("Failed to find friendship: %+v", err)
		return err
	}
	if forward == nil {
		return ErrNotFriends
	}

	if err := u.contactRepo.Delete(tx, forward); err != nil {
		u.log.Warnf("Failed to remove friendship: %+v", err)
		return err
	}

	reverse, err := u.contactRepo.FindEdge(tx, friendID, userID, true)
	if err != nil {
		u.log.Warnf("Failed to find mirrored friendship: %+v", err)
		return err
	}
	if reverse != nil {
		if err := u.contactRepo.Delete(tx, reverse); err != nil {
			u.log.Warnf("Failed to remove mirrored friendship: %+v", err)
			return err
		}
	}

	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionFriendRemove, "contact", fmt.Sprintf("%d", forward.ID), forward); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return tx.Commit().Error
}

func (u *contactUsecase) ListFriends(ctx context.Context, userID uuid.UUID) ([]dto.ContactResponse, error) {
	contacts, err := u.contactRepo.FindFriends(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list friends: %+v", err)
		return nil, err
	}
	return converter.ContactsToResponses(contacts), nil
}

func (u *contactUsecase) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]dto.ContactResponse, error) {
	contacts, err := u.contactRepo.FindPendingForUser(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list pending requests: %+v", err)
		return nil, err
	}
	return converter.ContactsToResponses(contacts), nil
}

// SendMessage stores a direct message. Friendship is not required:
// clients can message providers they have not befriended.
func (u *contactUsecase) SendMessage(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.DirectMessageResponse, error) {
	if senderID == req.ReceiverID {
		return nil, ErrSelfMessage
	}

	db := u.db.WithContext(ctx)

	receiver, err := u.accountRepo.FindByID(db, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrAccountNotFound
	}

	message := &entity.DirectMessage{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}

	if err := u.messageRepo.Create(db, message); err != nil {
		u.log.Warnf("Failed to send message: %+v", err)
		return nil, err
	}

	return converter.DirectMessageToResponse(message), nil
}

func (u *contactUsecase) GetConversation(ctx context.Context, userID, partnerID uuid.UUID) ([]dto.DirectMessageResponse, error) {
	messages, err := u.messageRepo.FindConversation(u.db.WithContext(ctx), userID, partnerID)
	if err != nil {
		u.log.Warnf("Failed to load conversation: %+v", err)
		return nil, err
	}
	return converter.DirectMessagesToResponses(messages), nil
}
