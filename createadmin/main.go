package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/nitchakan-dev/filevault/config"
	"github.com/nitchakan-dev/filevault/entity"
	infraPkg "github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/repository"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the superadmin account. Run once before first start.
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD are required")
	}

	cfg := config.NewConfig()
	postgres := infraPkg.InitPostgresClient(cfg.EnvConfig)
	userRepo := repository.NewUserRepository(postgres.DB)

	if existing, err := userRepo.FindByUsername(username); err == nil {
		log.Printf("User '%s' already exists (%s), nothing to do", existing.Username, existing.ID)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         entity.RoleSuperadmin,
	}
	if err := userRepo.Create(user); err != nil {
		log.Fatalf("Failed to create superadmin: %v", err)
	}

	log.Printf("Created superadmin '%s' (%s)", user.Username, user.ID)
}
