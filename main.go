package main

import (
	"github.com/hanjiho/tripmate/config"
	"github.com/hanjiho/tripmate/models"
	"github.com/hanjiho/tripmate/routes"
	"github.com/hanjiho/tripmate/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.Member{},
		&models.Feed{},
		&models.Tag{},
		&models.Follow{},
		&models.Recruitment{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
