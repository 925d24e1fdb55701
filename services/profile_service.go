package services

import (
	"log"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/talentbridgehq/talentbridge/db"
	apiError "github.com/talentbridgehq/talentbridge/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(userID uint) (*models.Profile, *apiError.Error)
	UpsertProfile(userID uint, profile *models.Profile) (*models.Profile, *apiError.Error)
	GetOrganization(userID uint) (*models.Organization, *apiError.Error)
	UpsertOrganization(userID uint, org *models.Organization) (*models.Organization, *apiError.Error)
	ListTalent(viewerID uint, filters *models.TalentFilters) ([]models.TalentListing, *apiError.Error)
	GetTalent(talentUserID uint, viewerID uint) (*models.TalentListing, *apiError.Error)
	SaveTalent(organizationUserID, talentUserID uint, notes string) *apiError.Error
	UnsaveTalent(organizationUserID, talentUserID uint) *apiError.Error
	ListSavedTalent(organizationUserID uint) ([]models.TalentListing, *apiError.Error)
}

type profileService struct {
	profileRepo db.ProfileRepository
	authRepo    db.AuthRepository
}

func NewProfileService(profileRepo db.ProfileRepository, authRepo db.AuthRepository) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		authRepo:    authRepo,
	}
}

func (s *profileService) GetProfile(userID uint) (*models.Profile, *apiError.Error) {
	profile, err := s.profileRepo.GetProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("profile not found", http.StatusNotFound)
		}
		log.Printf("GetProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profile, nil
}

func (s *profileService) UpsertProfile(userID uint, profile *models.Profile) (*models.Profile, *apiError.Error) {
	if err := models.ValidateWhiteSpaces(profile); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	existing, err := s.profileRepo.GetProfileByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("UpsertProfile lookup error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		profile.UserID = userID
		if err := s.profileRepo.CreateProfile(profile); err != nil {
			log.Printf("UpsertProfile create error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		return profile, nil
	}

	profile.ID = existing.ID
	profile.UserID = userID
	profile.CreatedAt = existing.CreatedAt
	profile.ProfileViews = existing.ProfileViews
	if err := s.profileRepo.UpdateProfile(profile); err != nil {
		log.Printf("UpsertProfile update error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profile, nil
}

func (s *profileService) GetOrganization(userID uint) (*models.Organization, *apiError.Error) {
	org, err := s.profileRepo.GetOrganizationByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("organization not found", http.StatusNotFound)
		}
		log.Printf("GetOrganization error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return org, nil
}

func (s *profileService) UpsertOrganization(userID uint, org *models.Organization) (*models.Organization, *apiError.Error) {
	if apiErr := s.requireOrganizationAccount(userID); apiErr != nil {
		return nil, apiErr
	}
	if err := models.ValidateWhiteSpaces(org); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	existing, err := s.profileRepo.GetOrganizationByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("UpsertOrganization lookup error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		org.UserID = userID
		if err := s.profileRepo.CreateOrganization(org); err != nil {
			log.Printf("UpsertOrganization create error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		return org, nil
	}

	org.ID = existing.ID
	org.UserID = userID
	org.CreatedAt = existing.CreatedAt
	if err := s.profileRepo.UpdateOrganization(org); err != nil {
		log.Printf("UpsertOrganization update error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return org, nil
}

// ListTalent returns public talent profiles matching the filters. Matching is
// a linear pass over the loaded rows; the directory is small enough that the
// database only narrows by account type.
func (s *profileService) ListTalent(viewerID uint, filters *models.TalentFilters) ([]models.TalentListing, *apiError.Error) {
	users, profiles, err := s.profileRepo.GetTalentWithProfiles()
	if err != nil {
		log.Printf("ListTalent load error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	profileByUser := make(map[uint]models.Profile, len(profiles))
	for _, p := range profiles {
		profileByUser[p.UserID] = p
	}

	listings := make([]models.TalentListing, 0, len(users))
	for _, u := range users {
		profile, ok := profileByUser[u.ID]
		if !ok || !profile.IsPublic {
			continue
		}
		listing := models.TalentListing{
			UserResponse: u.Response(),
			Profile:      profile,
		}
		if !matchesFilters(&listing, filters) {
			continue
		}
		if viewerID != 0 {
			saved, err := s.profileRepo.IsTalentSaved(viewerID, u.ID)
			if err == nil {
				listing.IsSaved = saved
			}
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func matchesFilters(listing *models.TalentListing, filters *models.TalentFilters) bool {
	if filters == nil {
		return true
	}
	p := listing.Profile

	if filters.ExperienceLevel != "" && filters.ExperienceLevel != "any" && p.ExperienceLevel != filters.ExperienceLevel {
		return false
	}
	if filters.WorkStatus != "" && filters.WorkStatus != "any" && p.WorkStatus != filters.WorkStatus {
		return false
	}
	if filters.EquityInterest != "" && filters.EquityInterest != "any" {
		want := filters.EquityInterest == "true"
		if p.EquityInterest != want {
			return false
		}
	}
	if filters.Location != "" && !containsFold(p.Location, filters.Location) {
		return false
	}
	if filters.Skills != "" && !anySkillMatches(p.Skills, filters.Skills) {
		return false
	}
	if filters.AvailableFor != "" && filters.AvailableFor != "any" && !containsString(p.AvailableFor, filters.AvailableFor) {
		return false
	}
	if filters.Search != "" {
		term := filters.Search
		if !containsFold(listing.FirstName, term) &&
			!containsFold(listing.LastName, term) &&
			!containsFold(p.Title, term) &&
			!containsFold(p.Bio, term) &&
			!containsFold(p.Location, term) &&
			!anySkillMatches(p.Skills, term) {
			return false
		}
	}
	return true
}

// requireOrganizationAccount rejects organization-side writes from talent
// accounts.
func (s *profileService) requireOrganizationAccount(userID uint) *apiError.Error {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		log.Printf("account type check error: %v", err)
		return apiError.ErrInternalServerError
	}
	if user.UserType != models.UserTypeOrganization {
		return apiError.New("organization account required", http.StatusForbidden)
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anySkillMatches(skills []string, term string) bool {
	for _, skill := range skills {
		if containsFold(skill, term) {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// GetTalent fetches one public talent listing and counts the view.
func (s *profileService) GetTalent(talentUserID uint, viewerID uint) (*models.TalentListing, *apiError.Error) {
	user, err := s.authRepo.FindUserByID(talentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("talent not found", http.StatusNotFound)
		}
		log.Printf("GetTalent user lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if user.UserType != models.UserTypeTalent {
		return nil, apiError.New("talent not found", http.StatusNotFound)
	}

	profile, err := s.profileRepo.GetProfileByUserID(talentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("talent not found", http.StatusNotFound)
		}
		log.Printf("GetTalent profile lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	listing := &models.TalentListing{
		UserResponse: user.Response(),
		Profile:      *profile,
	}
	if viewerID != 0 && viewerID != talentUserID {
		saved, err := s.profileRepo.IsTalentSaved(viewerID, talentUserID)
		if err == nil {
			listing.IsSaved = saved
		}
		if err := s.profileRepo.IncrementProfileViews(talentUserID); err != nil {
			log.Printf("GetTalent view count error: %v", err)
		}
	}
	return listing, nil
}

func (s *profileService) SaveTalent(organizationUserID, talentUserID uint, notes string) *apiError.Error {
	if apiErr := s.requireOrganizationAccount(organizationUserID); apiErr != nil {
		return apiErr
	}
	if _, err := s.authRepo.FindUserByID(talentUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("talent not found", http.StatusNotFound)
		}
		log.Printf("SaveTalent lookup error: %v", err)
		return apiError.ErrInternalServerError
	}

	saved := &models.SavedTalent{
		OrganizationUserID: organizationUserID,
		TalentUserID:       talentUserID,
		Notes:              notes,
	}
	if err := s.profileRepo.SaveTalent(saved); err != nil {
		return apiError.GetUniqueContraintError(err)
	}
	return nil
}

func (s *profileService) UnsaveTalent(organizationUserID, talentUserID uint) *apiError.Error {
	if err := s.profileRepo.UnsaveTalent(organizationUserID, talentUserID); err != nil {
		log.Printf("UnsaveTalent error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *profileService) ListSavedTalent(organizationUserID uint) ([]models.TalentListing, *apiError.Error) {
	saved, err := s.profileRepo.GetSavedTalent(organizationUserID)
	if err != nil {
		log.Printf("ListSavedTalent error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	listings := make([]models.TalentListing, 0, len(saved))
	for _, st := range saved {
		user, err := s.authRepo.FindUserByID(st.TalentUserID)
		if err != nil {
			continue
		}
		profile, err := s.profileRepo.GetProfileByUserID(st.TalentUserID)
		if err != nil {
			continue
		}
		listings = append(listings, models.TalentListing{
			UserResponse: user.Response(),
			Profile:      *profile,
			IsSaved:      true,
		})
	}
	return listings, nil
}
