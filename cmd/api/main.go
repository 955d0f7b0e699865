package main

import (
	"context"
	"time"

	"alerta360-backend/config"
	"alerta360-backend/internal/handler"
	"alerta360-backend/internal/notify"
	"alerta360-backend/internal/redisclient"
	"alerta360-backend/internal/relay"
	"alerta360-backend/internal/repository"
	"alerta360-backend/internal/server"
	"alerta360-backend/internal/services"
	"alerta360-backend/internal/storage"
	"alerta360-backend/pkg/database"
	"alerta360-backend/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.New(cfg.AppMode)
	defer log.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		return
	}
	if err := database.Migrate(db); err != nil {
		log.Errorf("Failed to apply migrations: %v", err)
		return
	}
	if err := database.ApplyRawMigrations(db, "migrations"); err != nil {
		log.Errorf("Failed to apply raw migrations: %v", err)
		return
	}

	redisClient, err := redisclient.NewClient(redisclient.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Errorf("Failed to connect to redis: %v", err)
		return
	}
	defer redisClient.Close()

	dispatcher := notify.NewDispatcher(notify.NewRedisProvider(redisClient), log)
	dispatcher.Start()
	defer dispatcher.Stop()

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)

	userService := services.NewUserService(userRepo)
	chatService := services.NewChatService(chatRepo)
	messageService := services.NewMessageService(messageRepo, chatRepo, userRepo, log)
	incidentService := services.NewIncidentService(incidentRepo, dispatcher)

	chatRelay := relay.New(messageService, userService, cfg.RecentMessageLimit, log)
	messageService.SetBroadcaster(chatRelay)

	// Evidence uploads are optional; the API runs without a bucket.
	var s3Client *storage.Client
	if cfg.S3Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3Client, err = storage.NewClient(ctx, storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PresignTTL: 15 * time.Minute,
		})
		cancel()
		if err != nil {
			log.Errorf("Failed to initialize s3 client: %v", err)
			return
		}
	} else {
		log.Warnf("S3_BUCKET not set, evidence uploads disabled")
	}

	srv := server.New(cfg, db, log)
	srv.SetupRoutes(&server.Handlers{
		Users:         handler.NewUserHandler(userService),
		Chats:         handler.NewChatHandler(chatService),
		Messages:      handler.NewMessageHandler(messageService),
		Incidents:     handler.NewIncidentHandler(incidentService),
		Notifications: handler.NewNotificationHandler(dispatcher),
		Uploads:       handler.NewUploadHandler(s3Client, incidentService),
		Relay:         relay.NewHandler(chatRelay, log),
	})

	if err := srv.Start(); err != nil {
		log.Errorf("Server exited with error: %v", err)
	}
}
