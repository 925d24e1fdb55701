package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 3,
	})
	limitRate := limitRateForPasswordReset(store)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.GET("/google/login", s.HandleGoogleLogin())
	apirouter.GET("/auth/google/callback", s.HandleGoogleCallback())
	apirouter.GET("/fb/auth", s.handleFBLogin())
	apirouter.GET("/fb/callback", s.handleFBCallback())
	apirouter.POST("/password/forgot", limitRate, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())

	apirouter.GET("/opportunities", s.handleGetOpportunities())
	apirouter.GET("/opportunities/:id", s.handleGetOpportunity())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.POST("/auth/user-type", s.handleSetUserType())
	authorized.PUT("/me/image", s.handleUpdateUserImage())

	authorized.GET("/profile", s.handleGetOwnProfile())
	authorized.POST("/profile", s.handleUpsertProfile())
	authorized.GET("/organization", s.handleGetOwnOrganization())
	authorized.POST("/organization", s.handleUpsertOrganization())
	authorized.POST("/invitations", s.handleSendInvitation())

	authorized.GET("/talent", s.handleListTalent())
	authorized.GET("/talent/:userID", s.handleGetTalent())
	authorized.POST("/talent/:userID/save", s.handleSaveTalent())
	authorized.DELETE("/talent/:userID/save", s.handleUnsaveTalent())
	authorized.GET("/my/saved-talent", s.handleListSavedTalent())

	authorized.POST("/opportunities", s.handleCreateOpportunity())
	authorized.PATCH("/opportunities/:id", s.handleUpdateOpportunity())
	authorized.GET("/my/opportunities", s.handleGetOwnOpportunities())

	authorized.POST("/applications", s.handleApply())
	authorized.GET("/applications", s.handleGetOwnApplications())
	authorized.GET("/opportunities/:id/applications", s.handleGetApplicationsForOpportunity())
	authorized.PATCH("/applications/:id/status", s.handleUpdateApplicationStatus())

	authorized.POST("/messages", s.handleSendMessage())
	authorized.GET("/conversations", s.handleGetConversations())
	authorized.GET("/messages/:userID", s.handleGetThread())
	authorized.PUT("/messages/:userID/read", s.handleMarkThreadRead())
	authorized.GET("/attachments/download", s.handleDownloadAttachment())
}
