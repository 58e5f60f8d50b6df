// Package main is the entry point of the application
package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cvasile/chess-arena/internal/auth"
	"github.com/cvasile/chess-arena/pkg/config"
	"github.com/cvasile/chess-arena/pkg/events"
	"github.com/cvasile/chess-arena/pkg/game"
	"github.com/cvasile/chess-arena/pkg/matchmaking"
	"github.com/cvasile/chess-arena/pkg/registry"
	"github.com/cvasile/chess-arena/pkg/server"
)

// application encapsulates global dependencies
type application struct {
	Auth      *auth.APIKeyAuth
	Logger    *zap.Logger
	Config    *config.Config
	Publisher *events.Publisher
	Hub       *server.Hub
	Players   *registry.Registry
	Queue     *matchmaking.Queue
	Directory *game.Directory
	Upgrader  websocket.Upgrader
	Server    *http.Server

	StartTime time.Time
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	port := flag.String("port", "8080", "server port")
	flag.Parse()

	logger := initLogger(*debug)
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}

	cfg := &config.Config{
		Debug:         *debug,
		Port:          *port,
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
		APIKeys:       splitKeys(os.Getenv("API_KEYS")),
	}

	publisher := events.NewPublisher()

	players := registry.NewRegistry(logger)
	queue := matchmaking.NewQueue(logger)
	rooms := server.NewRoomBroadcaster(logger)
	directory := game.NewDirectory(game.BoundsValidator{}, rooms, publisher, logger)

	hub := server.NewHub(players, queue, directory, rooms, publisher, logger)

	app := &application{
		Auth:      auth.NewAPIKeyAuth(cfg.APIKeys),
		Logger:    logger,
		Config:    cfg,
		Publisher: publisher,
		Hub:       hub,
		Players:   players,
		Queue:     queue,
		Directory: directory,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// An unset origin allows all, matching the public default.
				return cfg.AllowedOrigin == "" ||
					cfg.AllowedOrigin == r.Header.Get("Origin")
			},
		},
		StartTime: time.Now(),
	}

	// Mirror every lifecycle event into the log.
	publisher.SubscribeAll(func(event events.Event) {
		logger.Debug("event",
			zap.String("type", string(event.Type)),
			zap.String("session_id", event.SessionID))
	})

	go app.Hub.Run()

	if err := app.serve(); err != nil {
		logger.Fatal("error serving", zap.Error(err))
	}
}

func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	keys := strings.Split(raw, ",")
	for i, key := range keys {
		keys[i] = strings.TrimSpace(key)
	}
	return keys
}

func initLogger(debug bool) *zap.Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	return logger
}

// Shutdown cleans up resources
func (app *application) Shutdown() {
	if app.Hub != nil {
		app.Hub.Shutdown()
	}

	app.Logger.Info("All components shut down successfully")
}
