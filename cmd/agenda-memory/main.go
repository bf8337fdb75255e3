package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agenda/agenda-service/handlers"
	"github.com/agenda/agenda-service/internal/agenda/handler"
	"github.com/agenda/agenda-service/internal/agenda/service"
	"github.com/agenda/agenda-service/internal/phone"
	"github.com/agenda/agenda-service/pkg/logger"
	"github.com/agenda/agenda-service/pkg/middleware"
)

// agenda-memory serves the agenda API from in-memory repositories, for local
// development without a MongoDB instance. Data is lost on exit.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	port := os.Getenv("AGENDA_MEMORY_PORT")
	if port == "" {
		port = "3001"
	}
	if os.Getenv("API_KEY") == "" {
		logger.Warn("API_KEY not set: GET /contacts will fail once contacts exist")
	}

	svc := service.NewMemoryService(phone.NewClient(os.Getenv("PHONE_API_URL"), os.Getenv("API_KEY"), 10*time.Second))

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	handlers.RegisterHealth(r, time.Now(), nil)
	handlers.RegisterSwagger(r)
	handler.RegisterRoutes(r, svc)

	logger.Infof("agenda-memory listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
