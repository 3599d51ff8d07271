package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"syncBoard/configs"
	"syncBoard/internal/handlers"
	"syncBoard/internal/hub"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	httpServer *HttpServer
	once       sync.Once
)

type HttpServer struct {
	ctx           context.Context
	config        *configs.Config
	router        *gin.Engine
	hub           *hub.BoardHub
	restHandler   *handlers.RestHandler
	socketHandler *handlers.SocketBoardHandler
}

func NewHttpServer(
	ctx context.Context,
	config *configs.Config,
	boardHub *hub.BoardHub,
	restHandler *handlers.RestHandler,
	socketHandler *handlers.SocketBoardHandler,
) *HttpServer {
	once.Do(func() {
		httpServer = &HttpServer{
			ctx:           ctx,
			config:        config,
			hub:           boardHub,
			restHandler:   restHandler,
			socketHandler: socketHandler,
		}
	})
	return httpServer
}

func (hs *HttpServer) Run() {
	hs.initializeGin()
	hs.setupRestfulRoutes()
	hs.setupWebSocketRoutes()

	server := hs.startServer()

	// Wait for interrupt signal to gracefully shut down the server
	hs.waitForShutdown(server)
}

func (hs *HttpServer) initializeGin() {
	hs.router = gin.Default()
}

func (hs *HttpServer) setupRestfulRoutes() {
	api := hs.router.Group("/api")
	api.POST("/register", hs.restHandler.Register)
	api.POST("/login", hs.restHandler.Login)
	api.POST("/logout", hs.restHandler.Logout)

	authorized := api.Group("/")
	authorized.Use(hs.restHandler.MustAuthenticateMiddleware())
	authorized.GET("/profile", hs.restHandler.GetProfile)
	authorized.GET("/users/search", hs.restHandler.SearchUsers)
	authorized.POST("/boards", hs.restHandler.CreateBoard)
	authorized.GET("/boards", hs.restHandler.GetUserBoards)
	authorized.GET("/boards/search", hs.restHandler.SearchBoards)
	authorized.GET("/boards/:id", hs.restHandler.GetBoard)
	authorized.DELETE("/boards/:id", hs.restHandler.DeleteBoard)
	authorized.POST("/boards/:id/collaborators", hs.restHandler.AddCollaborator)
	authorized.DELETE("/boards/:id/collaborators/:userId", hs.restHandler.RemoveCollaborator)
	authorized.PUT("/boards/:id/security", hs.restHandler.UpdateSecurity)
	authorized.PUT("/boards/:id/thumbnail", hs.restHandler.UploadBoardThumbnail)
	authorized.GET("/boards/:id/changes", hs.restHandler.GetBoardChanges)

	hs.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (hs *HttpServer) setupWebSocketRoutes() {
	hs.router.GET("/ws/board", hs.socketHandler.HandleSocketBoardRoute)
}

func (hs *HttpServer) startServer() *http.Server {
	port := hs.config.Viper.GetInt("server.port")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: hs.router,
	}

	go func() {
		log.Printf("HTTP server started on :%d", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	return server
}

func (hs *HttpServer) waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := server.Shutdown(hs.ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close all WebSocket connections
	hs.hub.CloseAll()

	log.Println("Server exiting")
}
