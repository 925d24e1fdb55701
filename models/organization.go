package models

// Organization is the company profile behind an organization account.
type Organization struct {
	Model
	UserID      uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID" json:"-"`
	CompanyName string `gorm:"not null" json:"company_name" binding:"required" conform:"trim"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	Size        string `json:"size"`
	Location    string `json:"location" conform:"trim"`
	FoundedYear int    `json:"founded_year"`
	LogoURL     string `json:"logo_url"`
}

// InvitationRequest invites a teammate into an organization by email.
type InvitationRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Role    string `json:"role"`
	Message string `json:"message"`
}
