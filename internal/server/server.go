package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alerta360-backend/config"
	"alerta360-backend/internal/handler"
	"alerta360-backend/internal/middleware"
	"alerta360-backend/internal/relay"
	"alerta360-backend/internal/transport/httpdto"
	"alerta360-backend/pkg/logger"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
	db         *gorm.DB
}

var (
	ReleaseMode = "release"
	TestMode    = "test"
)

type Handlers struct {
	Users         *handler.UserHandler
	Chats         *handler.ChatHandler
	Messages      *handler.MessageHandler
	Incidents     *handler.IncidentHandler
	Notifications *handler.NotificationHandler
	Uploads       *handler.UploadHandler
	Relay         *relay.Handler
}

func New(cfg *config.Config, db *gorm.DB, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
		db:     db,
	}
}

func (s *Server) SetupRoutes(h *Handlers) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))

	s.engine.GET("/health", func(c *gin.Context) {
		sqlDB, err := s.db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
			return
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	// Socket endpoint used by the mobile app for the chat relay.
	s.engine.GET("/ws", h.Relay.Connect)

	api := s.engine.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", h.Users.Create)
			users.GET("", h.Users.List)
			users.GET("/:id", h.Users.Get)
			users.PUT("/:id", h.Users.Update)
		}

		chats := api.Group("/chats")
		{
			chats.POST("/private", h.Chats.CreatePrivateChat)
			chats.GET("/private/user/:userId", h.Chats.ListPrivateChats)
			chats.GET("/private/:ownerId/:friendId", h.Chats.GetPrivateChatForPair)
			chats.POST("/district", h.Chats.CreateDistrictChat)
			chats.GET("/district", h.Chats.ListDistrictChats)
			chats.GET("/district/:districtName", h.Chats.GetDistrictChat)
			chats.PUT("/district/:id", h.Chats.UpdateDistrictChat)
			chats.GET("/:id", h.Chats.Get)
		}

		messages := api.Group("/messages")
		{
			messages.POST("", h.Messages.Create)
			messages.GET("/chat/:chatId", h.Messages.History)
		}

		incidents := api.Group("/incidents")
		{
			incidents.POST("", h.Incidents.Create)
			incidents.GET("", h.Incidents.List)
			incidents.GET("/:id", h.Incidents.Get)
			incidents.GET("/user/:userId", h.Incidents.ListByUser)
			incidents.PUT("/:id", h.Incidents.Update)
			incidents.DELETE("/:id", h.Incidents.Delete)
			incidents.POST("/:id/evidence", h.Uploads.PresignEvidence)
		}

		notifications := api.Group("/notifications")
		{
			notifications.POST("/test", h.Notifications.SendTest)
			notifications.GET("/topics", h.Notifications.Topics)
		}
	}
}

func (s *Server) Start() error {
	go func() {
		s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Errorf("Error in starting the server: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	s.logger.Infof("Server is running on :%s", s.config.AppPort)

	<-quit

	s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		return err
	}

	s.logger.Infof("Server stopped gracefully")
	return nil
}
