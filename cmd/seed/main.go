package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/savethegov/govbudget/internal/adapter/persistence"
	"github.com/savethegov/govbudget/internal/config"
	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
	"github.com/savethegov/govbudget/internal/service/logger"
	"github.com/savethegov/govbudget/internal/service/password"
	"github.com/savethegov/govbudget/internal/service/token"
	"github.com/savethegov/govbudget/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	var (
		budgetRepo ports.BudgetRepository
		userRepo   ports.UserRepository
	)

	switch cfg.Store.Driver {
	case "postgres":
		db, err := persistence.OpenPostgres(cfg.GetDatabaseURL())
		if err != nil {
			log.Fatalf("failed to connect db: %v", err)
		}
		defer db.Close()
		budgetRepo = persistence.NewPostgresBudgetRepository(db)
		userRepo = persistence.NewPostgresUserRepository(db)
	default:
		budgetRepo = persistence.NewJSONBudgetRepository(cfg.Store.DataDir)
		userRepo = persistence.NewJSONUserRepository(cfg.Store.DataDir)
	}

	ctx := context.Background()
	passwords := password.NewBcryptPasswordService(cfg.Security.BcryptCost)
	tokens := token.NewJWTService(cfg.Security.JWTSecret, cfg.Security.JWTExpiration)
	auth := usecase.NewAuthUseCase(userRepo, passwords, tokens, logger.NewNoop())

	pmPassword := getenvDefault("SEED_PM_PASSWORD", "ChangeMe1!")
	if _, err := auth.RegisterAuthority(ctx, "pm", "Prime Minister", pmPassword); err != nil {
		log.Fatalf("failed to seed authority: %v", err)
	}
	fmt.Printf("Seeded authority: username=pm password=%s\n", pmPassword)

	members := []struct {
		username string
		fullName string
		domain   domain.Domain
	}{
		{"minister_finance", "Minister of Finance", domain.DomainFinance},
		{"minister_defense", "Minister of Defense", domain.DomainDefense},
		{"minister_education", "Minister of Education", domain.DomainEducation},
	}
	for _, m := range members {
		if _, err := auth.Register(ctx, m.username, m.fullName, "ChangeMe1!", domain.RoleMember, m.domain); err != nil {
			log.Printf("skip member %s: %v", m.username, err)
			continue
		}
		fmt.Printf("Seeded member: username=%s domain=%s\n", m.username, m.domain)
	}

	if _, err := auth.Register(ctx, "citizen", "Jane Citizen", "ChangeMe1!", domain.RoleCitizen, ""); err != nil {
		log.Printf("skip citizen: %v", err)
	} else {
		fmt.Println("Seeded citizen: username=citizen")
	}

	year := 2025
	items := []*domain.BudgetItem{
		domain.NewBudgetItem(1, year, "Income Tax", 50000, true, []domain.Domain{domain.DomainFinance}),
		domain.NewBudgetItem(2, year, "Defense", 20000, false, []domain.Domain{domain.DomainDefense}),
		domain.NewBudgetItem(3, year, "Education", 15000, false, []domain.Domain{domain.DomainEducation}),
		domain.NewBudgetItem(4, year, "Health", 12000, false, []domain.Domain{domain.DomainHealth}),
	}
	for _, item := range items {
		if err := budgetRepo.Save(ctx, item); err != nil {
			log.Fatalf("failed to seed budget item %d: %v", item.ID, err)
		}
		fmt.Printf("Seeded budget item: %d %s %.2f\n", item.ID, item.Name, item.Value)
	}
}

func getenvDefault(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
