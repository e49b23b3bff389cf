package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/imgdose/imgdose-api/config"
	"github.com/imgdose/imgdose-api/entity"
	"github.com/imgdose/imgdose-api/http/controller"
	routes "github.com/imgdose/imgdose-api/http/route"
	infraPkg "github.com/imgdose/imgdose-api/infra"
	"github.com/imgdose/imgdose-api/repository"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)

	if err := infra.Postgres.DB.AutoMigrate(&entity.Image{}, &entity.AuditEvent{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := infra.Minio.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("Failed to prepare bucket: %v", err)
	}

	repo := repository.InitRepository(infra)
	ctrl := controller.NewController(cfg, infra, repo)
	router := routes.SetupRouter(ctrl)

	addr := ":" + cfg.EnvConfig.Server.Port
	log.Println("HTTP Server started on " + addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
