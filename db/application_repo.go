package db

import (
	"github.com/pkg/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	CreateApplication(application *models.Application) error
	GetApplicationByID(id uint) (*models.Application, error)
	GetApplicationsByUser(userID uint) ([]models.Application, error)
	GetApplicationsByOpportunity(opportunityID uint) ([]models.Application, error)
	HasApplied(userID, opportunityID uint) (bool, error)
	UpdateApplicationStatus(id uint, status string) error
}

type applicationRepo struct {
	DB *gorm.DB
}

func NewApplicationRepo(db *GormDB) ApplicationRepository {
	return &applicationRepo{db.DB}
}

func (a *applicationRepo) CreateApplication(application *models.Application) error {
	if err := a.DB.Create(application).Error; err != nil {
		return errors.Wrap(err, "unable to create application")
	}
	return nil
}

func (a *applicationRepo) GetApplicationByID(id uint) (*models.Application, error) {
	var application models.Application
	err := a.DB.Preload("Opportunity").Preload("Opportunity.Organization").First(&application, id).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (a *applicationRepo) GetApplicationsByUser(userID uint) ([]models.Application, error) {
	var applications []models.Application
	err := a.DB.Preload("Opportunity").Preload("Opportunity.Organization").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (a *applicationRepo) GetApplicationsByOpportunity(opportunityID uint) ([]models.Application, error) {
	var applications []models.Application
	err := a.DB.Preload("User").
		Where("opportunity_id = ?", opportunityID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (a *applicationRepo) HasApplied(userID, opportunityID uint) (bool, error) {
	var count int64
	err := a.DB.Model(&models.Application{}).
		Where("user_id = ? AND opportunity_id = ?", userID, opportunityID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a *applicationRepo) UpdateApplicationStatus(id uint, status string) error {
	result := a.DB.Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
