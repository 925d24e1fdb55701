package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/talentbridgehq/talentbridge/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"github.com/talentbridgehq/talentbridge/server/response"
)

func (s *Server) handleGetOwnProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		profile, apiErr := s.ProfileService.GetProfile(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "profile retrieved", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleUpsertProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var profile models.Profile
		if err := decode(c, &profile); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		saved, apiErr := s.ProfileService.UpsertProfile(userID, &profile)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "profile saved", http.StatusOK, saved, nil)
	}
}

func (s *Server) handleGetOwnOrganization() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		org, apiErr := s.ProfileService.GetOrganization(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "organization retrieved", http.StatusOK, org, nil)
	}
}

func (s *Server) handleUpsertOrganization() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var org models.Organization
		if err := decode(c, &org); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		saved, apiErr := s.ProfileService.UpsertOrganization(userID, &org)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "organization saved", http.StatusOK, saved, nil)
	}
}

// handleSendInvitation emails a teammate invitation on behalf of the caller's
// organization. The caller must have an organization profile so the email can
// name the company.
func (s *Server) handleSendInvitation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var request models.InvitationRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		org, apiErr := s.ProfileService.GetOrganization(userID)
		if apiErr != nil {
			response.JSON(c, "organization profile required", apiErr.Status, nil, apiErr)
			return
		}

		if err := s.Mail.SendInvitationEmail(request.Email, org.CompanyName, request.Role, request.Message); err != nil {
			log.Printf("invitation email error: %v", err)
			response.JSON(c, "failed to send invitation", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "invitation sent", http.StatusOK, gin.H{"email": request.Email}, nil)
	}
}

func (s *Server) handleListTalent() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var filters models.TalentFilters
		if err := c.ShouldBindQuery(&filters); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		listings, apiErr := s.ProfileService.ListTalent(userID, &filters)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "talent retrieved", http.StatusOK, listings, nil)
	}
}

func (s *Server) handleGetTalent() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		talentUserID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		listing, apiErr := s.ProfileService.GetTalent(uint(talentUserID), userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "talent retrieved", http.StatusOK, listing, nil)
	}
}

func (s *Server) handleSaveTalent() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		talentUserID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		var request models.SaveTalentRequest
		if c.Request.ContentLength > 0 {
			if err := decode(c, &request); err != nil {
				response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
				return
			}
		}

		if apiErr := s.ProfileService.SaveTalent(userID, uint(talentUserID), request.Notes); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "talent saved", http.StatusCreated, nil, nil)
	}
}

func (s *Server) handleUnsaveTalent() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		talentUserID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		if apiErr := s.ProfileService.UnsaveTalent(userID, uint(talentUserID)); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "talent unsaved", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleListSavedTalent() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		listings, apiErr := s.ProfileService.ListSavedTalent(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "saved talent retrieved", http.StatusOK, listings, nil)
	}
}
