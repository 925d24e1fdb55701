package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentbridgehq/talentbridge/models"
	"gorm.io/gorm"
)

// fakeProfileRepo holds talent fixtures and records saved-talent pairs.
type fakeProfileRepo struct {
	users      []models.User
	profiles   []models.Profile
	orgs       map[uint]*models.Organization
	saved      map[[2]uint]models.SavedTalent
	viewCounts map[uint]int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		orgs:       make(map[uint]*models.Organization),
		saved:      make(map[[2]uint]models.SavedTalent),
		viewCounts: make(map[uint]int),
	}
}

func (f *fakeProfileRepo) GetProfileByUserID(userID uint) (*models.Profile, error) {
	for i := range f.profiles {
		if f.profiles[i].UserID == userID {
			return &f.profiles[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) CreateProfile(profile *models.Profile) error {
	f.profiles = append(f.profiles, *profile)
	return nil
}

func (f *fakeProfileRepo) UpdateProfile(profile *models.Profile) error {
	for i := range f.profiles {
		if f.profiles[i].UserID == profile.UserID {
			f.profiles[i] = *profile
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) IncrementProfileViews(userID uint) error {
	f.viewCounts[userID]++
	return nil
}

func (f *fakeProfileRepo) GetOrganizationByUserID(userID uint) (*models.Organization, error) {
	org, ok := f.orgs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return org, nil
}

func (f *fakeProfileRepo) GetOrganizationByID(id uint) (*models.Organization, error) {
	for _, org := range f.orgs {
		if org.ID == id {
			return org, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) CreateOrganization(org *models.Organization) error {
	f.orgs[org.UserID] = org
	return nil
}

func (f *fakeProfileRepo) UpdateOrganization(org *models.Organization) error {
	f.orgs[org.UserID] = org
	return nil
}

func (f *fakeProfileRepo) GetTalentWithProfiles() ([]models.User, []models.Profile, error) {
	return f.users, f.profiles, nil
}

func (f *fakeProfileRepo) SaveTalent(saved *models.SavedTalent) error {
	key := [2]uint{saved.OrganizationUserID, saved.TalentUserID}
	if _, ok := f.saved[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.saved[key] = *saved
	return nil
}

func (f *fakeProfileRepo) UnsaveTalent(organizationUserID, talentUserID uint) error {
	delete(f.saved, [2]uint{organizationUserID, talentUserID})
	return nil
}

func (f *fakeProfileRepo) GetSavedTalent(organizationUserID uint) ([]models.SavedTalent, error) {
	var out []models.SavedTalent
	for key, saved := range f.saved {
		if key[0] == organizationUserID {
			out = append(out, saved)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) IsTalentSaved(organizationUserID, talentUserID uint) (bool, error) {
	_, ok := f.saved[[2]uint{organizationUserID, talentUserID}]
	return ok, nil
}

func talentUser(id uint, firstName, userType string) models.User {
	user := models.User{FirstName: firstName, Email: firstName + "@example.com", UserType: userType}
	user.ID = id
	return user
}

func directoryFixtures() (*fakeProfileRepo, *fakeAuthRepo) {
	repo := newFakeProfileRepo()

	ada := talentUser(1, "Ada", models.UserTypeTalent)
	grace := talentUser(2, "Grace", models.UserTypeTalent)
	hidden := talentUser(3, "Hidden", models.UserTypeTalent)
	repo.users = []models.User{ada, grace, hidden}

	adaProfile := models.Profile{
		UserID:          1,
		Title:           "Backend Engineer",
		Skills:          []string{"Go", "Postgres"},
		ExperienceLevel: "senior",
		Location:        "Lagos, Nigeria",
		WorkStatus:      "open",
		EquityInterest:  true,
		AvailableFor:    []string{"full-time"},
		IsPublic:        true,
	}
	graceProfile := models.Profile{
		UserID:          2,
		Title:           "Product Designer",
		Skills:          []string{"Figma"},
		ExperienceLevel: "mid",
		Location:        "Berlin, Germany",
		WorkStatus:      "open",
		EquityInterest:  false,
		AvailableFor:    []string{"contract"},
		IsPublic:        true,
	}
	hiddenProfile := models.Profile{UserID: 3, Title: "Ghost", IsPublic: false}
	repo.profiles = []models.Profile{adaProfile, graceProfile, hiddenProfile}

	acme := talentUser(10, "Acme", models.UserTypeOrganization)
	auth := &fakeAuthRepo{users: map[uint]*models.User{1: &ada, 2: &grace, 3: &hidden, 10: &acme}}
	return repo, auth
}

func TestListTalent_PublicOnly(t *testing.T) {
	repo, auth := directoryFixtures()
	svc := NewProfileService(repo, auth)

	listings, apiErr := svc.ListTalent(10, nil)
	require.Nil(t, apiErr)
	require.Len(t, listings, 2)
	for _, listing := range listings {
		assert.NotEqual(t, uint(3), listing.ID)
	}
}

func TestListTalent_Filters(t *testing.T) {
	repo, auth := directoryFixtures()
	svc := NewProfileService(repo, auth)

	cases := []struct {
		name    string
		filters models.TalentFilters
		wantIDs []uint
	}{
		{"by skill", models.TalentFilters{Skills: "go"}, []uint{1}},
		{"by experience level", models.TalentFilters{ExperienceLevel: "mid"}, []uint{2}},
		{"experience level any", models.TalentFilters{ExperienceLevel: "any"}, []uint{1, 2}},
		{"by location substring", models.TalentFilters{Location: "lagos"}, []uint{1}},
		{"by equity interest", models.TalentFilters{EquityInterest: "true"}, []uint{1}},
		{"by availability", models.TalentFilters{AvailableFor: "contract"}, []uint{2}},
		{"by search over title", models.TalentFilters{Search: "designer"}, []uint{2}},
		{"no match", models.TalentFilters{Skills: "cobol"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			listings, apiErr := svc.ListTalent(10, &tc.filters)
			require.Nil(t, apiErr)
			var gotIDs []uint
			for _, listing := range listings {
				gotIDs = append(gotIDs, listing.ID)
			}
			assert.ElementsMatch(t, tc.wantIDs, gotIDs)
		})
	}
}

func TestListTalent_MarksSaved(t *testing.T) {
	repo, auth := directoryFixtures()
	require.NoError(t, repo.SaveTalent(&models.SavedTalent{OrganizationUserID: 10, TalentUserID: 1}))
	svc := NewProfileService(repo, auth)

	listings, apiErr := svc.ListTalent(10, nil)
	require.Nil(t, apiErr)
	for _, listing := range listings {
		assert.Equal(t, listing.ID == 1, listing.IsSaved)
	}
}

func TestGetTalent_CountsViewForOthersOnly(t *testing.T) {
	repo, auth := directoryFixtures()
	svc := NewProfileService(repo, auth)

	_, apiErr := svc.GetTalent(1, 10)
	require.Nil(t, apiErr)
	assert.Equal(t, 1, repo.viewCounts[1])

	// looking at your own profile is not a view
	_, apiErr = svc.GetTalent(1, 1)
	require.Nil(t, apiErr)
	assert.Equal(t, 1, repo.viewCounts[1])
}

func TestGetTalent_NonTalentIsNotFound(t *testing.T) {
	repo, _ := directoryFixtures()
	orgUser := talentUser(5, "Org", models.UserTypeOrganization)
	auth := &fakeAuthRepo{users: map[uint]*models.User{5: &orgUser}}
	svc := NewProfileService(repo, auth)

	_, apiErr := svc.GetTalent(5, 10)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestUpsertProfile_CreateThenUpdate(t *testing.T) {
	repo, auth := directoryFixtures()
	svc := NewProfileService(repo, auth)

	created, apiErr := svc.UpsertProfile(20, &models.Profile{Title: "New Talent", IsPublic: true})
	require.Nil(t, apiErr)
	assert.Equal(t, uint(20), created.UserID)

	repo.viewCounts[20] = 0
	stored, err := repo.GetProfileByUserID(20)
	require.NoError(t, err)
	stored.ProfileViews = 7
	require.NoError(t, repo.UpdateProfile(stored))

	updated, apiErr := svc.UpsertProfile(20, &models.Profile{Title: "Renamed", IsPublic: true})
	require.Nil(t, apiErr)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 7, updated.ProfileViews)
}

func TestSaveTalent_TalentAccountForbidden(t *testing.T) {
	repo, auth := directoryFixtures()
	svc := NewProfileService(repo, auth)

	apiErr := svc.SaveTalent(1, 2, "")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Empty(t, repo.saved)
}

func TestUpsertOrganization_TalentAccountForbidden(t *testing.T) {
	repo, auth := directoryFixtures()
	svc := NewProfileService(repo, auth)

	_, apiErr := svc.UpsertOrganization(1, &models.Organization{CompanyName: "Sneaky Inc"})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Empty(t, repo.orgs)
}

func TestUpsertOrganization_CreateAndUpdate(t *testing.T) {
	repo, auth := directoryFixtures()
	svc := NewProfileService(repo, auth)

	created, apiErr := svc.UpsertOrganization(10, &models.Organization{CompanyName: "Acme"})
	require.Nil(t, apiErr)
	assert.Equal(t, uint(10), created.UserID)

	updated, apiErr := svc.UpsertOrganization(10, &models.Organization{CompanyName: "Acme Labs"})
	require.Nil(t, apiErr)
	assert.Equal(t, "Acme Labs", updated.CompanyName)
}

func TestSaveTalent(t *testing.T) {
	repo, auth := directoryFixtures()
	svc := NewProfileService(repo, auth)

	require.Nil(t, svc.SaveTalent(10, 1, "strong Go background"))

	saved, apiErr := svc.ListSavedTalent(10)
	require.Nil(t, apiErr)
	require.Len(t, saved, 1)
	assert.Equal(t, uint(1), saved[0].ID)

	require.Nil(t, svc.UnsaveTalent(10, 1))
	saved, apiErr = svc.ListSavedTalent(10)
	require.Nil(t, apiErr)
	assert.Empty(t, saved)
}
