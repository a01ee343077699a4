package main

import (
	"time"

	"github.com/smartstudy/planner/config"
	"github.com/smartstudy/planner/models"
	"github.com/smartstudy/planner/routes"
	"github.com/smartstudy/planner/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Task{}, &models.LoginRecord{})

	r := routes.SetupRouter(db)

	// Background due-date reminder mails (best-effort)
	utils.StartDueTaskReminder(30 * time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
