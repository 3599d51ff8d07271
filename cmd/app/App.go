package app

import (
	"context"
	"sync"

	"syncBoard/configs"
	"syncBoard/internal/handlers"
	"syncBoard/internal/hub"
	"syncBoard/internal/repositories"
	"syncBoard/internal/servers/database"
	httpserver "syncBoard/internal/servers/http"
	"syncBoard/internal/services"

	"github.com/redis/go-redis/v9"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	redis   *redis.Client
	ctx     context.Context
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	app.ctx = context.Background()
	app.initializeConfigs()
	app.initializeRedis()

	db := database.GetDB(app.configs)
	authRepo := repositories.NewAuthenticationRepository(db)
	authService := services.NewAuthenticationService(authRepo, app.configs)
	boardRepo := repositories.NewBoardRepository(db)
	changeRepo := repositories.NewChangeRepository(db)
	boardService := services.NewBoardService(boardRepo, changeRepo)
	syncService := services.NewSyncService(boardRepo, changeRepo)

	minioService := services.NewMinioService(app.configs)
	fileManagerService := services.NewFileManagerService(minioService)

	restHandler := handlers.NewRestHandler(
		authService,
		boardService,
		fileManagerService,
	)

	boardHub := hub.NewBoardHub()
	socketBoardHandler := handlers.NewSocketBoardHandler(
		app.redis,
		app.ctx,
		boardHub,
		boardService,
		syncService,
		authService,
	)

	httpserver.NewHttpServer(
		app.ctx,
		app.configs,
		boardHub,
		restHandler,
		socketBoardHandler,
	).Run()
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr: app.configs.Viper.GetString("redis.address"),
	})
}

func (app *App) initializeConfigs() {
	app.configs = configs.GetConfig()
}
