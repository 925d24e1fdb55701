package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/talentbridgehq/talentbridge/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"github.com/talentbridgehq/talentbridge/server/response"
)

func (s *Server) handleCreateOpportunity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var opportunity models.Opportunity
		if err := decode(c, &opportunity); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		created, apiErr := s.OpportunityService.CreateOpportunity(userID, &opportunity)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "opportunity created", http.StatusCreated, created, nil)
	}
}

// handleGetOpportunities lists active opportunities. Public, no auth needed.
func (s *Server) handleGetOpportunities() gin.HandlerFunc {
	return func(c *gin.Context) {
		opportunities, apiErr := s.OpportunityService.GetOpportunities()
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "opportunities retrieved", http.StatusOK, opportunities, nil)
	}
}

func (s *Server) handleGetOpportunity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid opportunity id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		opportunity, apiErr := s.OpportunityService.GetOpportunity(uint(id))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "opportunity retrieved", http.StatusOK, opportunity, nil)
	}
}

func (s *Server) handleGetOwnOpportunities() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		opportunities, apiErr := s.OpportunityService.GetOwnOpportunities(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "opportunities retrieved", http.StatusOK, opportunities, nil)
	}
}

func (s *Server) handleUpdateOpportunity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid opportunity id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		var request models.UpdateOpportunityRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		updated, apiErr := s.OpportunityService.UpdateOpportunity(userID, uint(id), &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "opportunity updated", http.StatusOK, updated, nil)
	}
}
