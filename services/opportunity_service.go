package services

import (
	"log"
	"net/http"

	"github.com/pkg/errors"
	"github.com/talentbridgehq/talentbridge/db"
	apiError "github.com/talentbridgehq/talentbridge/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"gorm.io/gorm"
)

type OpportunityService interface {
	CreateOpportunity(userID uint, opportunity *models.Opportunity) (*models.Opportunity, *apiError.Error)
	GetOpportunities() ([]models.Opportunity, *apiError.Error)
	GetOpportunity(id uint) (*models.Opportunity, *apiError.Error)
	GetOwnOpportunities(userID uint) ([]models.Opportunity, *apiError.Error)
	UpdateOpportunity(userID, id uint, request *models.UpdateOpportunityRequest) (*models.Opportunity, *apiError.Error)
}

type opportunityService struct {
	opportunityRepo db.OpportunityRepository
	profileRepo     db.ProfileRepository
	authRepo        db.AuthRepository
}

func NewOpportunityService(opportunityRepo db.OpportunityRepository, profileRepo db.ProfileRepository, authRepo db.AuthRepository) OpportunityService {
	return &opportunityService{
		opportunityRepo: opportunityRepo,
		profileRepo:     profileRepo,
		authRepo:        authRepo,
	}
}

// CreateOpportunity posts a new opening under the caller's organization
// profile; only organization accounts may post.
func (s *opportunityService) CreateOpportunity(userID uint, opportunity *models.Opportunity) (*models.Opportunity, *apiError.Error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("CreateOpportunity user lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if user.UserType != models.UserTypeOrganization {
		return nil, apiError.New("organization account required", http.StatusForbidden)
	}

	org, err := s.profileRepo.GetOrganizationByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("organization profile required", http.StatusNotFound)
		}
		log.Printf("CreateOpportunity org lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := models.ValidateWhiteSpaces(opportunity); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	opportunity.OrganizationID = org.ID
	opportunity.Status = models.OpportunityStatusActive
	if err := s.opportunityRepo.CreateOpportunity(opportunity); err != nil {
		log.Printf("CreateOpportunity error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	opportunity.Organization = *org
	return opportunity, nil
}

func (s *opportunityService) GetOpportunities() ([]models.Opportunity, *apiError.Error) {
	opportunities, err := s.opportunityRepo.GetOpportunities()
	if err != nil {
		log.Printf("GetOpportunities error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return opportunities, nil
}

func (s *opportunityService) GetOpportunity(id uint) (*models.Opportunity, *apiError.Error) {
	opportunity, err := s.opportunityRepo.GetOpportunityByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("opportunity not found", http.StatusNotFound)
		}
		log.Printf("GetOpportunity error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return opportunity, nil
}

func (s *opportunityService) GetOwnOpportunities(userID uint) ([]models.Opportunity, *apiError.Error) {
	org, err := s.profileRepo.GetOrganizationByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("organization not found", http.StatusNotFound)
		}
		log.Printf("GetOwnOpportunities org lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	opportunities, err := s.opportunityRepo.GetOpportunitiesByOrganization(org.ID)
	if err != nil {
		log.Printf("GetOwnOpportunities error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return opportunities, nil
}

func (s *opportunityService) UpdateOpportunity(userID, id uint, request *models.UpdateOpportunityRequest) (*models.Opportunity, *apiError.Error) {
	opportunity, apiErr := s.GetOpportunity(id)
	if apiErr != nil {
		return nil, apiErr
	}

	org, err := s.profileRepo.GetOrganizationByUserID(userID)
	if err != nil || org.ID != opportunity.OrganizationID {
		return nil, apiError.New("opportunity belongs to another organization", http.StatusForbidden)
	}

	if request.Title != "" {
		opportunity.Title = request.Title
	}
	if request.Description != "" {
		opportunity.Description = request.Description
	}
	if request.Requirements != nil {
		opportunity.Requirements = request.Requirements
	}
	if request.Skills != nil {
		opportunity.Skills = request.Skills
	}
	if request.Type != "" {
		opportunity.Type = request.Type
	}
	if request.Location != "" {
		opportunity.Location = request.Location
	}
	if request.IsRemote != nil {
		opportunity.IsRemote = *request.IsRemote
	}
	if request.SalaryMin != nil {
		opportunity.SalaryMin = *request.SalaryMin
	}
	if request.SalaryMax != nil {
		opportunity.SalaryMax = *request.SalaryMax
	}
	if request.EquityMin != "" {
		opportunity.EquityMin = request.EquityMin
	}
	if request.EquityMax != "" {
		opportunity.EquityMax = request.EquityMax
	}
	if request.Status != "" {
		opportunity.Status = request.Status
	}

	if err := s.opportunityRepo.UpdateOpportunity(opportunity); err != nil {
		log.Printf("UpdateOpportunity error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return opportunity, nil
}
