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

type ApplicationService interface {
	Apply(userID uint, request *models.ApplyRequest) (*models.Application, *apiError.Error)
	GetOwnApplications(userID uint) ([]models.Application, *apiError.Error)
	GetApplicationsForOpportunity(userID, opportunityID uint) ([]models.Application, *apiError.Error)
	UpdateStatus(userID, applicationID uint, status string) *apiError.Error
}

type applicationService struct {
	applicationRepo db.ApplicationRepository
	opportunityRepo db.OpportunityRepository
	profileRepo     db.ProfileRepository
}

func NewApplicationService(applicationRepo db.ApplicationRepository, opportunityRepo db.OpportunityRepository, profileRepo db.ProfileRepository) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		opportunityRepo: opportunityRepo,
		profileRepo:     profileRepo,
	}
}

func (s *applicationService) Apply(userID uint, request *models.ApplyRequest) (*models.Application, *apiError.Error) {
	opportunity, err := s.opportunityRepo.GetOpportunityByID(request.OpportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("opportunity not found", http.StatusNotFound)
		}
		log.Printf("Apply opportunity lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if opportunity.Status != models.OpportunityStatusActive {
		return nil, apiError.New("opportunity is not accepting applications", http.StatusBadRequest)
	}

	applied, err := s.applicationRepo.HasApplied(userID, request.OpportunityID)
	if err != nil {
		log.Printf("Apply duplicate check error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if applied {
		return nil, apiError.New("already applied to this opportunity", http.StatusConflict)
	}

	application := &models.Application{
		OpportunityID: request.OpportunityID,
		UserID:        userID,
		CoverLetter:   request.CoverLetter,
		Status:        models.ApplicationStatusPending,
	}
	if err := s.applicationRepo.CreateApplication(application); err != nil {
		log.Printf("Apply create error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}
	application.Opportunity = *opportunity
	return application, nil
}

func (s *applicationService) GetOwnApplications(userID uint) ([]models.Application, *apiError.Error) {
	applications, err := s.applicationRepo.GetApplicationsByUser(userID)
	if err != nil {
		log.Printf("GetOwnApplications error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return applications, nil
}

// GetApplicationsForOpportunity lists submissions against one of the caller's
// own postings.
func (s *applicationService) GetApplicationsForOpportunity(userID, opportunityID uint) ([]models.Application, *apiError.Error) {
	opportunity, err := s.opportunityRepo.GetOpportunityByID(opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("opportunity not found", http.StatusNotFound)
		}
		log.Printf("GetApplicationsForOpportunity lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	org, err := s.profileRepo.GetOrganizationByUserID(userID)
	if err != nil || org.ID != opportunity.OrganizationID {
		return nil, apiError.New("opportunity belongs to another organization", http.StatusForbidden)
	}

	applications, err := s.applicationRepo.GetApplicationsByOpportunity(opportunityID)
	if err != nil {
		log.Printf("GetApplicationsForOpportunity error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return applications, nil
}

func (s *applicationService) UpdateStatus(userID, applicationID uint, status string) *apiError.Error {
	application, err := s.applicationRepo.GetApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("application not found", http.StatusNotFound)
		}
		log.Printf("UpdateStatus lookup error: %v", err)
		return apiError.ErrInternalServerError
	}

	org, err := s.profileRepo.GetOrganizationByUserID(userID)
	if err != nil || org.ID != application.Opportunity.OrganizationID {
		return apiError.New("application belongs to another organization", http.StatusForbidden)
	}

	if err := s.applicationRepo.UpdateApplicationStatus(applicationID, status); err != nil {
		log.Printf("UpdateStatus error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
