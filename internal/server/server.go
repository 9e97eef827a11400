package server

import (
	"context"
	"log/slog"
	"os"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/surrealdb/surrealdb.go"

	"linguachat/internal/analytics"
	"linguachat/internal/config"
	"linguachat/internal/database"
	"linguachat/internal/handlers"
	"linguachat/internal/logging"
	"linguachat/internal/presence"
	"linguachat/internal/pubsub"
	"linguachat/internal/relay"
	"linguachat/internal/translate"
	ws "linguachat/internal/websocket"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	DB  *surrealdb.DB
	Cfg *config.Config

	bus              *pubsub.WatermillBridge
	directory        *presence.Directory
	bridge           *ws.Bridge
	messageHandler   *handlers.MessageHandler
	analyticsHandler *handlers.AnalyticsHandler
}

// New creates a new Server instance with all dependencies wired.
func New() *Server {
	logging.New() // Initialize the structured logger
	cfg := config.New()

	db, err := database.NewDB(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// The in-process bus decouples the persist path from live delivery:
	// the relay publishes delivery events, the websocket bridge consumes
	// them and pushes to whoever is online.
	bus := pubsub.NewWatermillBridge()
	directory := presence.NewDirectory()
	bridge := ws.NewBridge(directory, bus)

	users := database.NewSurrealUserDirectory(db)
	messages := database.NewSurrealMessageStore(db)
	translator := translate.NewMyMemoryClient(cfg.TranslatorURL, cfg.TranslatorTimeout)

	messageRelay := relay.New(users, messages, translator, bus)
	aggregator := analytics.New(messages, users)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Validator = handlers.NewValidator()

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	return &Server{
		E:                e,
		DB:               db,
		Cfg:              cfg,
		bus:              bus,
		directory:        directory,
		bridge:           bridge,
		messageHandler:   handlers.NewMessageHandler(messageRelay),
		analyticsHandler: handlers.NewAnalyticsHandler(aggregator),
	}
}

// Directory is a getter for the server's presence directory, useful for testing.
func (s *Server) Directory() *presence.Directory {
	return s.directory
}
