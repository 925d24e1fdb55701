package main

import (
	"log"

	"github.com/talentbridgehq/talentbridge/config"
	"github.com/talentbridgehq/talentbridge/db"
	"github.com/talentbridgehq/talentbridge/mailingservices"
	"github.com/talentbridgehq/talentbridge/server"
	"github.com/talentbridgehq/talentbridge/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init()

	gormDB := db.GetDB(conf)

	authRepo := db.NewAuthRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)
	profileRepo := db.NewProfileRepo(gormDB)
	opportunityRepo := db.NewOpportunityRepo(gormDB)
	applicationRepo := db.NewApplicationRepo(gormDB)
	mediaRepo, err := db.NewMediaRepo(conf)
	if err != nil {
		log.Fatalf("error initializing media storage: %v", err)
	}

	authService := services.NewAuthService(authRepo, mailgunClient, conf)
	mediaService := services.NewMediaService(mediaRepo, conf)
	messageService := services.NewMessageService(messageRepo, authRepo, mediaService)
	profileService := services.NewProfileService(profileRepo, authRepo)
	opportunityService := services.NewOpportunityService(opportunityRepo, profileRepo, authRepo)
	applicationService := services.NewApplicationService(applicationRepo, opportunityRepo, profileRepo)

	s := &server.Server{
		Config:             conf,
		Mail:               mailgunClient,
		AuthRepository:     authRepo,
		AuthService:        authService,
		MessageRepository:  messageRepo,
		MessageService:     messageService,
		MediaService:       mediaService,
		ProfileService:     profileService,
		OpportunityService: opportunityService,
		ApplicationService: applicationService,
		DB:                 *gormDB,
	}

	s.Start()
}
