package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/api"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/constants"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/logging"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/service"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/session"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logging.Info("no .env file found, reading environment variables directly", nil)
	}

	// Load the game configuration file (required). Path may be provided
	// via CONFIG_PATH or defaults to ./quebrada_config.json in the current
	// working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./quebrada_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	dbPath := os.Getenv(constants.EnvDatabasePath)
	if dbPath == "" {
		dbPath = "./data/quebrada.db"
	}
	repo := createRepositoryOrExit(dbPath, cfg.NPCs)

	hub := ws.NewHub()
	manager := session.NewManager(session.ManagerOptions{
		CardPool:     cfg.Cards,
		MatchTimeout: cfg.MatchTimeout,
		Queue:        session.QueueOptions{MatchingDelay: cfg.MatchingDelay},
	}, nil, hub, service.MatchRecorder{Repo: repo})
	hub.Bind(manager)
	defer manager.DisposeAll()

	sched := startReaper(manager)
	defer func() { _ = sched.Shutdown() }()

	handler := api.NewGameHandler(repo, manager, cfg.Cards)
	authHandler := api.NewAuthHandler(repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteHealth, func(c *gin.Context) { c.JSON(200, gin.H{constants.JSONKeyStatus: "ok"}) })
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteCards, handler.ListCards)
		apiRoutes.GET(constants.RouteNPCs, handler.ListNPCs)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteQueueStatus, handler.GetQueueStatus)
		apiRoutes.GET(constants.RouteMatchByID, handler.GetMatch)
		apiRoutes.POST(constants.RouteDeckShuffle, handler.ShuffleDeck)

		// The websocket endpoint accepts guests; authenticated sessions
		// carry their identity through.
		apiRoutes.GET(constants.RouteWS, api.AuthOptional(), hub.Handler())

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())
		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerProfile)
		protected.GET(constants.RouteMatchHistory, handler.GetMatchHistory)
		protected.POST(constants.RouteMatches, handler.CreateMatch)
		protected.POST(constants.RouteNPCChallenge, handler.ChallengeNPC)
		protected.GET(constants.RouteAuthMe, authHandler.Me)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
	router.POST(constants.RouteAuthGuest, authHandler.GuestLogin)
	router.POST(constants.RouteAuthLogout, authHandler.Logout)

	addr := cfg.ServerAddress
	if env := os.Getenv(constants.EnvServerAddr); env != "" {
		addr = env
	}
	logging.Info("server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("failed to start server", err, nil)
	}
}
