package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentbridgehq/talentbridge/models"
	"gorm.io/gorm"
)

type fakeOpportunityRepo struct {
	opportunities map[uint]*models.Opportunity
	nextID        uint
}

func newFakeOpportunityRepo() *fakeOpportunityRepo {
	return &fakeOpportunityRepo{opportunities: make(map[uint]*models.Opportunity)}
}

func (f *fakeOpportunityRepo) CreateOpportunity(opportunity *models.Opportunity) error {
	f.nextID++
	opportunity.ID = f.nextID
	f.opportunities[opportunity.ID] = opportunity
	return nil
}

func (f *fakeOpportunityRepo) GetOpportunities() ([]models.Opportunity, error) {
	var out []models.Opportunity
	for _, o := range f.opportunities {
		if o.Status == models.OpportunityStatusActive {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOpportunityRepo) GetOpportunityByID(id uint) (*models.Opportunity, error) {
	o, ok := f.opportunities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOpportunityRepo) GetOpportunitiesByOrganization(organizationID uint) ([]models.Opportunity, error) {
	var out []models.Opportunity
	for _, o := range f.opportunities {
		if o.OrganizationID == organizationID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOpportunityRepo) UpdateOpportunity(opportunity *models.Opportunity) error {
	f.opportunities[opportunity.ID] = opportunity
	return nil
}

type fakeApplicationRepo struct {
	applications map[uint]*models.Application
	nextID       uint
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[uint]*models.Application)}
}

func (f *fakeApplicationRepo) CreateApplication(application *models.Application) error {
	f.nextID++
	application.ID = f.nextID
	f.applications[application.ID] = application
	return nil
}

func (f *fakeApplicationRepo) GetApplicationByID(id uint) (*models.Application, error) {
	a, ok := f.applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeApplicationRepo) GetApplicationsByUser(userID uint) ([]models.Application, error) {
	var out []models.Application
	for _, a := range f.applications {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) GetApplicationsByOpportunity(opportunityID uint) ([]models.Application, error) {
	var out []models.Application
	for _, a := range f.applications {
		if a.OpportunityID == opportunityID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) HasApplied(userID, opportunityID uint) (bool, error) {
	for _, a := range f.applications {
		if a.UserID == userID && a.OpportunityID == opportunityID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) UpdateApplicationStatus(id uint, status string) error {
	a, ok := f.applications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

// hiringFixtures sets up an organization account (user 10, org id 100) with
// one active posting and a talent account (user 1).
func hiringFixtures() (*fakeApplicationRepo, *fakeOpportunityRepo, *fakeProfileRepo, *fakeAuthRepo, *models.Opportunity) {
	profileRepo := newFakeProfileRepo()
	org := &models.Organization{UserID: 10, CompanyName: "Acme"}
	org.ID = 100
	profileRepo.orgs[10] = org

	orgUser := talentUser(10, "Acme", models.UserTypeOrganization)
	talent := talentUser(1, "Ada", models.UserTypeTalent)
	authRepo := &fakeAuthRepo{users: map[uint]*models.User{10: &orgUser, 1: &talent}}

	opportunityRepo := newFakeOpportunityRepo()
	opportunity := &models.Opportunity{
		OrganizationID: 100,
		Title:          "Founding Engineer",
		Description:    "Build the backend.",
		Type:           "full-time",
		Status:         models.OpportunityStatusActive,
	}
	_ = opportunityRepo.CreateOpportunity(opportunity)

	return newFakeApplicationRepo(), opportunityRepo, profileRepo, authRepo, opportunity
}

func TestApply(t *testing.T) {
	applicationRepo, opportunityRepo, profileRepo, _, opportunity := hiringFixtures()
	svc := NewApplicationService(applicationRepo, opportunityRepo, profileRepo)

	application, apiErr := svc.Apply(1, &models.ApplyRequest{OpportunityID: opportunity.ID, CoverLetter: "hi"})
	require.Nil(t, apiErr)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
	assert.Equal(t, opportunity.ID, application.OpportunityID)
}

func TestApply_DuplicateRejected(t *testing.T) {
	applicationRepo, opportunityRepo, profileRepo, _, opportunity := hiringFixtures()
	svc := NewApplicationService(applicationRepo, opportunityRepo, profileRepo)

	_, apiErr := svc.Apply(1, &models.ApplyRequest{OpportunityID: opportunity.ID})
	require.Nil(t, apiErr)

	_, apiErr = svc.Apply(1, &models.ApplyRequest{OpportunityID: opportunity.ID})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}

func TestApply_InactiveOpportunityRejected(t *testing.T) {
	applicationRepo, opportunityRepo, profileRepo, _, opportunity := hiringFixtures()
	opportunity.Status = models.OpportunityStatusClosed
	svc := NewApplicationService(applicationRepo, opportunityRepo, profileRepo)

	_, apiErr := svc.Apply(1, &models.ApplyRequest{OpportunityID: opportunity.ID})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestApply_UnknownOpportunity(t *testing.T) {
	applicationRepo, opportunityRepo, profileRepo, _, _ := hiringFixtures()
	svc := NewApplicationService(applicationRepo, opportunityRepo, profileRepo)

	_, apiErr := svc.Apply(1, &models.ApplyRequest{OpportunityID: 999})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestGetApplicationsForOpportunity_OwnershipEnforced(t *testing.T) {
	applicationRepo, opportunityRepo, profileRepo, _, opportunity := hiringFixtures()
	svc := NewApplicationService(applicationRepo, opportunityRepo, profileRepo)

	_, apiErr := svc.Apply(1, &models.ApplyRequest{OpportunityID: opportunity.ID})
	require.Nil(t, apiErr)

	applications, apiErr := svc.GetApplicationsForOpportunity(10, opportunity.ID)
	require.Nil(t, apiErr)
	assert.Len(t, applications, 1)

	// a different organization owner gets forbidden
	otherOrg := &models.Organization{UserID: 11, CompanyName: "Rival"}
	otherOrg.ID = 200
	profileRepo.orgs[11] = otherOrg

	_, apiErr = svc.GetApplicationsForOpportunity(11, opportunity.ID)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestUpdateStatus(t *testing.T) {
	applicationRepo, opportunityRepo, profileRepo, _, opportunity := hiringFixtures()
	svc := NewApplicationService(applicationRepo, opportunityRepo, profileRepo)

	application, apiErr := svc.Apply(1, &models.ApplyRequest{OpportunityID: opportunity.ID})
	require.Nil(t, apiErr)

	require.Nil(t, svc.UpdateStatus(10, application.ID, models.ApplicationStatusAccepted))
	stored, err := applicationRepo.GetApplicationByID(application.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, stored.Status)

	apiErr = svc.UpdateStatus(99, application.ID, models.ApplicationStatusRejected)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestCreateOpportunity_RequiresOrganizationProfile(t *testing.T) {
	_, opportunityRepo, profileRepo, authRepo, _ := hiringFixtures()
	delete(profileRepo.orgs, 10)
	svc := NewOpportunityService(opportunityRepo, profileRepo, authRepo)

	_, apiErr := svc.CreateOpportunity(10, &models.Opportunity{Title: "Role", Description: "d", Type: "contract"})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestCreateOpportunity_TalentAccountForbidden(t *testing.T) {
	_, opportunityRepo, profileRepo, authRepo, _ := hiringFixtures()
	svc := NewOpportunityService(opportunityRepo, profileRepo, authRepo)

	_, apiErr := svc.CreateOpportunity(1, &models.Opportunity{Title: "Role", Description: "d", Type: "contract"})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestCreateOpportunity_ForcesActiveStatus(t *testing.T) {
	_, opportunityRepo, profileRepo, authRepo, _ := hiringFixtures()
	svc := NewOpportunityService(opportunityRepo, profileRepo, authRepo)

	created, apiErr := svc.CreateOpportunity(10, &models.Opportunity{
		Title:       "Platform Engineer",
		Description: "Own infrastructure.",
		Type:        "full-time",
		Status:      models.OpportunityStatusClosed,
	})
	require.Nil(t, apiErr)
	assert.Equal(t, models.OpportunityStatusActive, created.Status)
	assert.Equal(t, uint(100), created.OrganizationID)
}

func TestUpdateOpportunity_PatchesFields(t *testing.T) {
	_, opportunityRepo, profileRepo, authRepo, opportunity := hiringFixtures()
	svc := NewOpportunityService(opportunityRepo, profileRepo, authRepo)

	remote := true
	updated, apiErr := svc.UpdateOpportunity(10, opportunity.ID, &models.UpdateOpportunityRequest{
		Title:    "Founding Engineer (Go)",
		IsRemote: &remote,
		Status:   models.OpportunityStatusPaused,
	})
	require.Nil(t, apiErr)
	assert.Equal(t, "Founding Engineer (Go)", updated.Title)
	assert.True(t, updated.IsRemote)
	assert.Equal(t, models.OpportunityStatusPaused, updated.Status)
	assert.Equal(t, "Build the backend.", updated.Description)
}

func TestUpdateOpportunity_OwnershipEnforced(t *testing.T) {
	_, opportunityRepo, profileRepo, authRepo, opportunity := hiringFixtures()
	svc := NewOpportunityService(opportunityRepo, profileRepo, authRepo)

	_, apiErr := svc.UpdateOpportunity(99, opportunity.ID, &models.UpdateOpportunityRequest{Title: "Hijacked"})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}
