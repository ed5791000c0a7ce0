package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/nitchakan-dev/filevault/config"
	"github.com/nitchakan-dev/filevault/http/controller"
	routes "github.com/nitchakan-dev/filevault/http/route"
	infraPkg "github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/provider"
	"github.com/nitchakan-dev/filevault/repository"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)
	prov := provider.NewProvider(cfg.EnvConfig, infra, repo)

	ctrl := controller.NewController(cfg, infra, repo, prov)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on", cfg.EnvConfig.ListenAddr)
	if err := router.Run(cfg.EnvConfig.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
