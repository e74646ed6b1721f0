package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/shsyteam/shsy-staking-backend/internal/config"
	mongorepo "github.com/shsyteam/shsy-staking-backend/internal/repositories/mongodb"
	"github.com/shsyteam/shsy-staking-backend/internal/services"
	"github.com/shsyteam/shsy-staking-backend/pkg/mongodb"
)

// Seeds an admin user so the admin settings endpoints can be used.
//
//	go run ./cmd/scripts -email admin@example.com -password secret
func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	role := flag.String("role", "admin", "admin role")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB.Database)
	adminUserRepo := mongorepo.NewAdminUserRepository(db)
	authService := services.NewAuthService(adminUserRepo, cfg)

	admin, err := authService.CreateAdmin(context.Background(), *email, *password, *role)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Created admin user %s (%s)", admin.Email, admin.ID.Hex())
}
