package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talentbridgehq/talentbridge/config"
	"github.com/talentbridgehq/talentbridge/db"
	"github.com/talentbridgehq/talentbridge/mailingservices"
	"github.com/talentbridgehq/talentbridge/services"
)

type Server struct {
	Config                *config.Config
	Mail                  *mailingservices.Mailgun
	AuthRepository        db.AuthRepository
	AuthService           services.AuthService
	MessageRepository     db.MessageRepository
	MessageService        services.MessageService
	MediaService          services.MediaService
	ProfileService        services.ProfileService
	OpportunityService    services.OpportunityService
	ApplicationService    services.ApplicationService
	DB                    db.GormDB
}

func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("Server started on :%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
