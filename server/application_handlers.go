package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/talentbridgehq/talentbridge/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"github.com/talentbridgehq/talentbridge/server/response"
)

func (s *Server) handleApply() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var request models.ApplyRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		application, apiErr := s.ApplicationService.Apply(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "application submitted", http.StatusCreated, application, nil)
	}
}

func (s *Server) handleGetOwnApplications() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		applications, apiErr := s.ApplicationService.GetOwnApplications(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "applications retrieved", http.StatusOK, applications, nil)
	}
}

// handleGetApplicationsForOpportunity lists applicants for one of the
// caller's own postings.
func (s *Server) handleGetApplicationsForOpportunity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		opportunityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid opportunity id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		applications, apiErr := s.ApplicationService.GetApplicationsForOpportunity(userID, uint(opportunityID))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "applications retrieved", http.StatusOK, applications, nil)
	}
}

func (s *Server) handleUpdateApplicationStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		applicationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid application id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		var request models.ApplicationStatusRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		if apiErr := s.ApplicationService.UpdateStatus(userID, uint(applicationID), request.Status); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "application status updated", http.StatusOK, gin.H{"status": request.Status}, nil)
	}
}
