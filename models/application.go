package models

const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusReviewing = "reviewing"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
)

// Application is a talent's submission against an opportunity.
type Application struct {
	Model
	OpportunityID uint        `gorm:"not null;index:idx_applications_pair,unique" json:"opportunity_id"`
	Opportunity   Opportunity `gorm:"foreignKey:OpportunityID" json:"opportunity"`
	UserID        uint        `gorm:"not null;index:idx_applications_pair,unique" json:"user_id"`
	User          User        `gorm:"foreignKey:UserID" json:"user"`
	CoverLetter   string      `json:"cover_letter"`
	Status        string      `gorm:"default:pending" json:"status"`
}

type ApplyRequest struct {
	OpportunityID uint   `json:"opportunity_id" binding:"required"`
	CoverLetter   string `json:"cover_letter"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending reviewing accepted rejected"`
}
