package models

const (
	OpportunityStatusActive = "active"
	OpportunityStatusPaused = "paused"
	OpportunityStatusClosed = "closed"
)

// Opportunity is an equity-bearing job posting.
type Opportunity struct {
	Model
	OrganizationID uint         `gorm:"not null;index" json:"organization_id"`
	Organization   Organization `gorm:"foreignKey:OrganizationID" json:"organization"`
	Title          string       `gorm:"not null" json:"title" binding:"required" conform:"trim"`
	Description    string       `gorm:"not null" json:"description" binding:"required"`
	Requirements   []string     `gorm:"serializer:json" json:"requirements"`
	Skills         []string     `gorm:"serializer:json" json:"skills"`
	Type           string       `gorm:"not null" json:"type" binding:"required,oneof=full-time part-time contract co-founder"`
	Location       string       `json:"location"`
	IsRemote       bool         `gorm:"default:false" json:"is_remote"`
	SalaryMin      int          `json:"salary_min"`
	SalaryMax      int          `json:"salary_max"`
	EquityMin      string       `json:"equity_min"`
	EquityMax      string       `json:"equity_max"`
	Status         string       `gorm:"default:active" json:"status"`
}

type UpdateOpportunityRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Skills       []string `json:"skills"`
	Type         string   `json:"type" binding:"omitempty,oneof=full-time part-time contract co-founder"`
	Location     string   `json:"location"`
	IsRemote     *bool    `json:"is_remote"`
	SalaryMin    *int     `json:"salary_min"`
	SalaryMax    *int     `json:"salary_max"`
	EquityMin    string   `json:"equity_min"`
	EquityMax    string   `json:"equity_max"`
	Status       string   `json:"status" binding:"omitempty,oneof=active paused closed"`
}
