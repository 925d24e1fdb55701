package db

import (
	"github.com/pkg/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	GetProfileByUserID(userID uint) (*models.Profile, error)
	CreateProfile(profile *models.Profile) error
	UpdateProfile(profile *models.Profile) error
	IncrementProfileViews(userID uint) error
	GetOrganizationByUserID(userID uint) (*models.Organization, error)
	GetOrganizationByID(id uint) (*models.Organization, error)
	CreateOrganization(org *models.Organization) error
	UpdateOrganization(org *models.Organization) error
	GetTalentWithProfiles() ([]models.User, []models.Profile, error)
	SaveTalent(saved *models.SavedTalent) error
	UnsaveTalent(organizationUserID, talentUserID uint) error
	GetSavedTalent(organizationUserID uint) ([]models.SavedTalent, error)
	IsTalentSaved(organizationUserID, talentUserID uint) (bool, error)
}

type profileRepo struct {
	DB *gorm.DB
}

func NewProfileRepo(db *GormDB) ProfileRepository {
	return &profileRepo{db.DB}
}

func (p *profileRepo) GetProfileByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := p.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (p *profileRepo) CreateProfile(profile *models.Profile) error {
	if err := p.DB.Create(profile).Error; err != nil {
		return errors.Wrap(err, "unable to create profile")
	}
	return nil
}

func (p *profileRepo) UpdateProfile(profile *models.Profile) error {
	return p.DB.Save(profile).Error
}

func (p *profileRepo) IncrementProfileViews(userID uint) error {
	return p.DB.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		UpdateColumn("profile_views", gorm.Expr("profile_views + 1")).Error
}

func (p *profileRepo) GetOrganizationByUserID(userID uint) (*models.Organization, error) {
	var org models.Organization
	err := p.DB.Where("user_id = ?", userID).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (p *profileRepo) GetOrganizationByID(id uint) (*models.Organization, error) {
	var org models.Organization
	err := p.DB.First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (p *profileRepo) CreateOrganization(org *models.Organization) error {
	if err := p.DB.Create(org).Error; err != nil {
		return errors.Wrap(err, "unable to create organization")
	}
	return nil
}

func (p *profileRepo) UpdateOrganization(org *models.Organization) error {
	return p.DB.Save(org).Error
}

// GetTalentWithProfiles loads every talent account alongside its profile.
// Filtering happens in the service over this result set.
func (p *profileRepo) GetTalentWithProfiles() ([]models.User, []models.Profile, error) {
	var users []models.User
	err := p.DB.Where("user_type = ?", models.UserTypeTalent).Find(&users).Error
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to load talent accounts")
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var profiles []models.Profile
	if len(ids) > 0 {
		if err := p.DB.Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
			return nil, nil, errors.Wrap(err, "unable to load talent profiles")
		}
	}
	return users, profiles, nil
}

func (p *profileRepo) SaveTalent(saved *models.SavedTalent) error {
	if err := p.DB.Create(saved).Error; err != nil {
		return errors.Wrap(err, "unable to save talent")
	}
	return nil
}

func (p *profileRepo) UnsaveTalent(organizationUserID, talentUserID uint) error {
	return p.DB.
		Where("organization_user_id = ? AND talent_user_id = ?", organizationUserID, talentUserID).
		Delete(&models.SavedTalent{}).Error
}

func (p *profileRepo) GetSavedTalent(organizationUserID uint) ([]models.SavedTalent, error) {
	var saved []models.SavedTalent
	err := p.DB.Where("organization_user_id = ?", organizationUserID).Find(&saved).Error
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (p *profileRepo) IsTalentSaved(organizationUserID, talentUserID uint) (bool, error) {
	var count int64
	err := p.DB.Model(&models.SavedTalent{}).
		Where("organization_user_id = ? AND talent_user_id = ?", organizationUserID, talentUserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
