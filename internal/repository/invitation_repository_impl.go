package repository

import (
	"errors"

	"calmseek-backend/internal/domain/entity"
	domainRepo "calmseek-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invitationRepository struct{}

func NewInvitationRepository() domainRepo.InvitationRepository {
	return &invitationRepository{}
}

// GetOrCreate is keyed on (group, user, pending) so a declined
// invitation does not block a later re-invite.
func (r *invitationRepository) GetOrCreate(db *gorm.DB, groupID int, userID uuid.UUID) (*entity.Invitation, bool, error) {
	var invitation entity.Invitation
	err := db.Where("group_id = ? AND user_id = ? AND status = ?", groupID, userID, entity.InvitationStatusPending).
		First(&invitation).Error
	if err == nil {
		return &invitation, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	invitation = entity.Invitation{
		GroupID: groupID,
		UserID:  userID,
		Status:  entity.InvitationStatusPending,
	}
	if err := db.Create(&invitation).Error; err != nil {
		return nil, false, err
	}
	return &invitation, true, nil
}

func (r *invitationRepository) FindByID(db *gorm.DB, id int) (*entity.Invitation, error) {
	var invitation entity.Invitation
	err := db.Preload("Group").Where("id = ?", id).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindPendingForUser(db *gorm.DB, userID uuid.UUID) ([]entity.Invitation, error) {
	var invitations []entity.Invitation
	err := db.Preload("Group.CreatedBy").
		Where("user_id = ? AND status = ?", userID, entity.InvitationStatusPending).
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *invitationRepository) Update(db *gorm.DB, invitation *entity.Invitation) error {
	return db.Omit("Group", "User").Save(invitation).Error
}

func (r *invitationRepository) DeleteByGroupID(db *gorm.DB, groupID int) error {
	return db.Where("group_id = ?", groupID).Delete(&entity.Invitation{}).Error
}
