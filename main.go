package main

import (
	"github.com/avelkov/bloghub/config"
	"github.com/avelkov/bloghub/models"
	"github.com/avelkov/bloghub/routes"
	"github.com/avelkov/bloghub/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Blog{}, &models.Comment{}, &models.Like{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
