package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/qs3c/mood_chat_server/config"
	"github.com/qs3c/mood_chat_server/internal/database"
	"github.com/qs3c/mood_chat_server/internal/model/dto"
	"github.com/qs3c/mood_chat_server/internal/repository"
	"github.com/qs3c/mood_chat_server/internal/service"
)

var (
	username = flag.String("username", "testuser", "Demo user name")
	email    = flag.String("email", "test@example.com", "Demo user email")
	password = flag.String("password", "test12345", "Demo user password")
	premium  = flag.Bool("premium", false, "Mark the demo user as premium")
)

func main() {
	flag.Parse()

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// 连接数据库并建表
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo)

	var userID int64
	resp, err := userService.CreateUser(ctx, &dto.CreateUserRequest{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	switch {
	case err == nil:
		userID = resp.UserID
		log.Printf("Demo user created: id=%d email=%s", userID, *email)
	case errors.Is(err, service.ErrUsernameExists), errors.Is(err, service.ErrEmailExists):
		existing, lookupErr := userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(*email)))
		if lookupErr != nil {
			log.Fatalf("Demo user conflicts with another account: %v", err)
		}
		userID = existing.ID
		log.Printf("Demo user already exists: id=%d email=%s", userID, *email)
	default:
		log.Fatalf("Failed to create demo user: %v", err)
	}

	if err := userRepo.SetPremium(ctx, userID, *premium); err != nil {
		log.Fatalf("Failed to update premium flag: %v", err)
	}
	log.Printf("Premium: %v", *premium)
}
