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
	ErrGroupNotFound      = errors.New("group not found")
	ErrNotGroupMember     = errors.New("account is not a group member")
	ErrNotGroupCreator    = errors.New("only the group creator can do this")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationResolved = errors.New("invitation has already been responded to")
	ErrInvitationNotYours = errors.New("invitation belongs to another account")
	ErrCreatorCannotLeave = errors.New("group creator cannot leave; delete the group instead")
)

type GroupUsecase interface {
	CreateGroup(ctx context.Context, creatorID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	GetGroup(ctx context.Context, userID uuid.UUID, groupID int) (*dto.GroupResponse, error)
	ListMyGroups(ctx context.Context, userID uuid.UUID) ([]dto.GroupResponse, error)
	DeleteGroup(ctx context.Context, userID uuid.UUID, groupID int) error
	LeaveGroup(ctx context.Context, userID uuid.UUID, groupID int) error
	InviteUsers(ctx context.Context, creatorID uuid.UUID, groupID int, req *dto.InviteToGroupRequest) ([]dto.InvitationResponse, error)
	RespondToInvitation(ctx context.Context, userID uuid.UUID, invitationID int, req *dto.RespondInvitationRequest) error
	ListMyInvitations(ctx context.Context, userID uuid.UUID) ([]dto.InvitationResponse, error)
	PostMessage(ctx context.Context, senderID uuid.UUID, groupID int, req *dto.PostGroupMessageRequest) (*dto.GroupMessageResponse, error)
	GetMessages(ctx context.Context, userID uuid.UUID, groupID int) ([]dto.GroupMessageResponse, error)
}

type groupUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	groupRepo      repository.GroupRepository
	messageRepo    repository.GroupMessageRepository
	invitationRepo repository.InvitationRepository
	accountRepo    repository.AccountRepository
	auditService   service.AuditService
}

func NewGroupUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	groupRepo repository.GroupRepository,
	messageRepo repository.GroupMessageRepository,
	invitationRepo repository.InvitationRepository,
	accountRepo repository.AccountRepository,
	auditService service.AuditService,
) GroupUsecase {
	return &groupUsecase{
		db:             db,
		log:            log,
		groupRepo:      groupRepo,
		messageRepo:    messageRepo,
		invitationRepo: invitationRepo,
		accountRepo:    accountRepo,
		auditService:   auditService,
	}
}

// CreateGroup creates the group with the creator as its first member.
func (u *groupUsecase) CreateGroup(ctx context.Context, creatorID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	creator, err := u.accountRepo.FindByID(tx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, ErrAccountNotFound
	}

	group := &entity.Group{
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: creatorID,
	}

	if err := u.groupRepo.Create(tx, group); err != nil {
		u.log.Warnf("Failed to create group: %+v", err)
		return nil, err
	}

	if err := u.groupRepo.AddMember(tx, group, creator); err != nil {
		u.log.Warnf("Failed to add creator as member: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &creatorID, entity.AuditActionGroupCreate, "group", fmt.Sprintf("%d", group.ID), group); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	group.Members = []entity.Account{*creator}
	return converter.GroupToResponse(group), nil
}

func (u *groupUsecase) GetGroup(ctx context.Context, userID uuid.UUID, groupID int) (*dto.GroupResponse, error) {
	db := u.db.WithContext(ctx)

	group, err := u.groupRepo.FindByID(db, groupID)
	if err != nil {
		u.log.Warnf("Failed to find group: %+v", err)
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	member, err := u.groupRepo.IsMember(db, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotGroupMember
	}

	return converter.GroupToResponse(group), nil
}

func (u *groupUsecase) ListMyGroups(ctx context.Context, userID uuid.UUID) ([]dto.GroupResponse, error) {
	groups, err := u.groupRepo.FindByMember(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list groups: %+v", err)
		return nil, err
	}
	return converter.GroupsToResponses(groups), nil
}

// DeleteGroup removes the group with its messages and invitations.
// Creator only.
func (u *groupUsecase) DeleteGroup(ctx context.Context, userID uuid.UUID, groupID int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	group, err := u.groupRepo.FindByID(tx, groupID)
	if err != nil {
		u.log.Warnf("Failed to find group: %+v", err)
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}
	if group.CreatedByID != userID {
		return ErrNotGroupCreator
	}

	if err := u.messageRepo.DeleteByGroupID(tx, groupID); err != nil {
		u.log.Warnf("Failed to delete group messages: %+v", err)
		return err
	}
	if err := u.invitationRepo.DeleteByGroupID(tx, groupID); err != nil {
		u.log.Warnf("Failed to delete group invitations: %+v", err)
		return err
	}
	if err := u.groupRepo.Delete(tx, group); err != nil {
		u.log.Warnf("Failed to delete group: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionGroupDelete, "group", fmt.Sprintf("%d", groupID), group); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return tx.Commit().Error
}

func (u *groupUsecase) LeaveGroup(ctx context.Context, userID uuid.UUID, groupID int) error {
	db := u.db.WithContext(ctx)

	group, err := u.groupRepo.FindByID(db, groupID)
	if err != nil {
		u.log.Warnf("Failed to find group: %+v", err)
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}
	if group.CreatedByID == userID {
		return ErrCreatorCannotLeave
	}

	member, err := u.groupRepo.IsMember(db, groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		// Quitting a group you are not in is a no-op.
		return nil
	}

	account, err := u.accountRepo.FindByID(db, userID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	if err := u.groupRepo.RemoveMember(db, group, account); err != nil {
		u.log.Warnf("Failed to leave group: %+v", err)
		return err
	}
	return nil
}

// InviteUsers creates pending invitations for the target accounts.
// Creator only. Targets who are already members are skipped, and an
// existing pending invitation is reused rather than duplicated.
func (u *groupUsecase) InviteUsers(ctx context.Context, creatorID uuid.UUID, groupID int, req *dto.InviteToGroupRequest) ([]dto.InvitationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	group, err := u.groupRepo.FindByID(tx, groupID)
	if err != nil {
		u.log.Warnf("Failed to find group: %+v", err)
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	if group.CreatedByID != creatorID {
		return nil, ErrNotGroupCreator
	}

	invitations := make([]entity.Invitation, 0, len(req.UserIDs))
	for _, userID := range req.UserIDs {
		invitee, err := u.accountRepo.FindByID(tx, userID)
		if err != nil {
			return nil, err
		}
		if invitee == nil {
			return nil, ErrAccountNotFound
		}

		member, err := u.groupRepo.IsMember(tx, groupID, userID)
		if err != nil {
			return nil, err
		}
		if member {
			continue
		}

		invitation, created, err := u.invitationRepo.GetOrCreate(tx, groupID, userID)
		if err != nil {
			u.log.Warnf("Failed to create invitation: %+v", err)
			return nil, err
		}

		if created {
			if err := u.auditService.LogCreate(ctx, tx, &creatorID, entity.AuditActionInvitationSend, "invitation", fmt.Sprintf("%d", invitation.ID), invitation); err != nil {
				u.log.Warnf("Failed to create audit log: %+v", err)
			}
		}

		invitation.Group = *group
		invitations = append(invitations, *invitation)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InvitationsToResponses(invitations), nil
}

// RespondToInvitation accepts or declines. Accepting joins the group;
// declining only flips the status, the row stays.
func (u *groupUsecase) RespondToInvitation(ctx context.Context, userID uuid.UUID, invitationID int, req *dto.RespondInvitationRequest) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invitation, err := u.invitationRepo.FindByID(tx, invitationID)
	if err != nil {
		u.log.Warnf("Failed to find invitation: %+v", err)
		return err
	}
	if invitation == nil {
		return ErrInvitationNotFound
	}
	if invitation.UserID != userID {
		return ErrInvitationNotYours
	}
	if !invitation.IsPending() {
		return ErrInvitationResolved
	}

	if req.Response == "accept" {
		invitation.Accept()

		group, err := u.groupRepo.FindByID(tx, invitation.GroupID)
		if err != nil {
			return err
		}
		if group == nil {
			return ErrGroupNotFound
		}

		account, err := u.accountRepo.FindByID(tx, userID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}

		if err := u.groupRepo.AddMember(tx, group, account); err != nil {
			u.log.Warnf("Failed to add member: %+v", err)
			return err
		}
	} else {
		invitation.Decline()
	}

	if err := u.invitationRepo.Update(tx, invitation); err != nil {
		u.log.Warnf("Failed to update invitation: %+v", err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionInvitationRespond, "invitation", fmt.Sprintf("%d", invitationID), entity.InvitationStatusPending, invitation.Status); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return tx.Commit().Error
}

func (u *groupUsecase) ListMyInvitations(ctx context.Context, userID uuid.UUID) ([]dto.InvitationResponse, error) {
	invitations, err := u.invitationRepo.FindPendingForUser(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list invitations: %+v", err)
		return nil, err
	}
	return converter.InvitationsToResponses(invitations), nil
}

func (u *groupUsecase) PostMessage(ctx context.Context, senderID uuid.UUID, groupID int, req *dto.PostGroupMessageRequest) (*dto.GroupMessageResponse, error) {
	db := u.db.WithContext(ctx)

	group, err := u.groupRepo.FindByID(db, groupID)
	if err != nil {
		u.log.Warnf("Failed to find group: %+v", err)
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	member, err := u.groupRepo.IsMember(db, groupID, senderID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotGroupMember
	}

	message := &entity.GroupMessage{
		GroupID:  groupID,
		SenderID: senderID,
		Content:  req.Content,
	}

	if err := u.messageRepo.Create(db, message); err != nil {
		u.log.Warnf("Failed to post message: %+v", err)
		return nil, err
	}

	return converter.GroupMessageToResponse(message), nil
}

func (u *groupUsecase) GetMessages(ctx context.Context, userID uuid.UUID, groupID int) ([]dto.GroupMessageResponse, error) {
	db := u.db.WithContext(ctx)

	member, err := u.groupRepo.IsMember(db, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotGroupMember
	}

	messages, err := u.messageRepo.FindByGroupID(db, groupID)
	if err != nil {
		u.log.Warnf("Failed to load group messages: %+v", err)
		return nil, err
	}
	return converter.GroupMessagesToResponses(messages), nil
}
