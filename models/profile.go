package models

// Profile carries the talent-side details shown in the directory.
type Profile struct {
	Model
	UserID            uint     `gorm:"not null;uniqueIndex" json:"user_id"`
	User              User     `gorm:"foreignKey:UserID" json:"-"`
	Title             string   `json:"title" conform:"trim"`
	Bio               string   `json:"bio"`
	Skills            []string `gorm:"serializer:json" json:"skills"`
	Experience        string   `json:"experience"`
	ExperienceLevel   string   `json:"experience_level"`
	Location          string   `json:"location" conform:"trim"`
	LinkedinURL       string   `json:"linkedin_url"`
	GithubURL         string   `json:"github_url"`
	PortfolioURL      string   `json:"portfolio_url"`
	SalaryExpectation string   `json:"salary_expectation"`
	WorkStatus        string   `json:"work_status"`
	EquityInterest    bool     `gorm:"default:true" json:"equity_interest"`
	AvailableFor      []string `gorm:"serializer:json" json:"available_for"`
	IsPublic          bool     `gorm:"default:true" json:"is_public"`
	ProfileViews      int      `gorm:"default:0" json:"profile_views"`
}

// TalentFilters are the directory search parameters. Matching beyond the
// indexed user_type column happens in memory over the query result.
type TalentFilters struct {
	Search          string `form:"search"`
	Location        string `form:"location"`
	Skills          string `form:"skills"`
	ExperienceLevel string `form:"experience_level"`
	WorkStatus      string `form:"work_status"`
	AvailableFor    string `form:"available_for"`
	EquityInterest  string `form:"equity_interest"`
}

// TalentListing is a directory entry: the account plus its profile.
type TalentListing struct {
	UserResponse
	Profile Profile `json:"profile"`
	IsSaved bool    `json:"is_saved"`
}

// SavedTalent records an organization bookmarking a talent profile.
type SavedTalent struct {
	Model
	OrganizationUserID uint   `gorm:"not null;index:idx_saved_talent_pair,unique" json:"organization_user_id"`
	TalentUserID       uint   `gorm:"not null;index:idx_saved_talent_pair,unique" json:"talent_user_id"`
	Notes              string `json:"notes"`
}

type SaveTalentRequest struct {
	Notes string `json:"notes"`
}
