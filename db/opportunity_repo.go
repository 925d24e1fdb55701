package db

import (
	"github.com/pkg/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"gorm.io/gorm"
)

type OpportunityRepository interface {
	CreateOpportunity(opportunity *models.Opportunity) error
	GetOpportunities() ([]models.Opportunity, error)
	GetOpportunityByID(id uint) (*models.Opportunity, error)
	GetOpportunitiesByOrganization(organizationID uint) ([]models.Opportunity, error)
	UpdateOpportunity(opportunity *models.Opportunity) error
}

type opportunityRepo struct {
	DB *gorm.DB
}

func NewOpportunityRepo(db *GormDB) OpportunityRepository {
	return &opportunityRepo{db.DB}
}

func (o *opportunityRepo) CreateOpportunity(opportunity *models.Opportunity) error {
	if err := o.DB.Create(opportunity).Error; err != nil {
		return errors.Wrap(err, "unable to create opportunity")
	}
	return nil
}

func (o *opportunityRepo) GetOpportunities() ([]models.Opportunity, error) {
	var opportunities []models.Opportunity
	err := o.DB.Preload("Organization").
		Where("status = ?", models.OpportunityStatusActive).
		Order("created_at DESC").
		Find(&opportunities).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to load opportunities")
	}
	return opportunities, nil
}

func (o *opportunityRepo) GetOpportunityByID(id uint) (*models.Opportunity, error) {
	var opportunity models.Opportunity
	err := o.DB.Preload("Organization").First(&opportunity, id).Error
	if err != nil {
		return nil, err
	}
	return &opportunity, nil
}

func (o *opportunityRepo) GetOpportunitiesByOrganization(organizationID uint) ([]models.Opportunity, error) {
	var opportunities []models.Opportunity
	err := o.DB.Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&opportunities).Error
	if err != nil {
		return nil, err
	}
	return opportunities, nil
}

func (o *opportunityRepo) UpdateOpportunity(opportunity *models.Opportunity) error {
	return o.DB.Save(opportunity).Error
}
