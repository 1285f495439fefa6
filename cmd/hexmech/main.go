package main

import (
	"os"

	"github.com/hexmech/hexmech/internal/api"
	"github.com/hexmech/hexmech/internal/constants"
	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	// OPENAI_API_KEY is intentionally not required: without it the AI
	// commander falls back to pure heuristics.
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./hexmech_config.json"
	}
	cfg := loadConfigOrExit(configPath)
	applyPromptTemplate(cfg)

	// Allow the DB path to be configured via HEXMECH_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDatabasePath)
	if dbPath == "" {
		dbPath = "./data/hexmech.db"
	}
	repo := createRepositoryOrExit(dbPath)

	roller := dice.NewTimeSource()
	handler := api.NewBattleHandler(repo, cfg, roller)
	authHandler := api.NewAuthHandler(repo)

	startTimeoutScanner(repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteTemplates, handler.ListTemplates)
		apiRoutes.GET(constants.RouteAbilities, handler.ListAbilities)
		apiRoutes.GET(constants.RouteMaps, handler.ListMaps)
		apiRoutes.GET(constants.RoutePublicBattles, handler.ListPublicBattles)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RouteCommanderStats, handler.GetCommanderStats)
		protected.POST(constants.RouteCommanderProfile, handler.UpdateCommanderProfile)
		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.POST(constants.RouteBattlesJoin, handler.JoinBattle)
		protected.GET(constants.RouteBattleByID, handler.GetBattle)
		protected.GET(constants.RouteBattleLog, handler.GetBattleLog)
		protected.POST(constants.RouteBattleDeploy, handler.Deploy)
		protected.POST(constants.RouteBattleEnd, handler.EndBattle)
		protected.POST(constants.RouteBattleLeave, handler.LeaveBattle)
		protected.POST(constants.RouteBattleCommand, handler.SubmitCommand)
		protected.POST(constants.RouteBattleAITurn, handler.AITurn)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
	router.POST(constants.RouteAuthLogout, authHandler.Logout)
	router.GET(constants.RouteHealth, func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
