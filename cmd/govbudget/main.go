package main

import (
	"context"
	"flag"
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
	"github.com/savethegov/govbudget/pkg/apperr"
)

type app struct {
	auth    *usecase.AuthUseCase
	budget  *usecase.BudgetUseCase
	changes *usecase.ChangeRequestUseCase
	closeDB func()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	a, err := buildApp(cfg)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer a.closeDB()

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		appErr := apperr.MapError(err)
		fmt.Fprintf(os.Stderr, "%s: %s\n", appErr.Code, appErr.Message)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: govbudget <command> [flags]

commands:
  items    list budget items and the net result
  list     list change requests
  log      list the audit log of applied changes
  submit   submit a change request (-user -password -item -year -value)
  resolve  approve or reject a change request (-user -password -id -decision)
  login    verify credentials and print a session token (-user -password)`)
}

func buildApp(cfg *config.Config) (*app, error) {
	lg := logger.NewStructuredLogger(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "govbudget",
	})

	var (
		changeRepo ports.ChangeRequestRepository
		budgetRepo ports.BudgetRepository
		logRepo    ports.ChangeLogRepository
		userRepo   ports.UserRepository
		approvals  ports.ApprovalStore
		closeDB    = func() {}
	)

	switch cfg.Store.Driver {
	case "postgres":
		db, err := persistence.OpenPostgres(cfg.GetDatabaseURL())
		if err != nil {
			return nil, err
		}
		closeDB = func() { db.Close() }
		changeRepo = persistence.NewPostgresChangeRequestRepository(db)
		budgetRepo = persistence.NewPostgresBudgetRepository(db)
		logRepo = persistence.NewPostgresChangeLogRepository(db)
		userRepo = persistence.NewPostgresUserRepository(db)
		approvals = persistence.NewPostgresApprovalStore(db)
	default:
		changes := persistence.NewJSONChangeRequestRepository(cfg.Store.DataDir)
		budget := persistence.NewJSONBudgetRepository(cfg.Store.DataDir)
		changeLog := persistence.NewJSONChangeLogRepository(cfg.Store.DataDir)
		changeRepo = changes
		budgetRepo = budget
		logRepo = changeLog
		userRepo = persistence.NewJSONUserRepository(cfg.Store.DataDir)
		approvals = persistence.NewJSONApprovalStore(changes, budget, changeLog)
	}

	ctx := context.Background()

	// the allocator resumes past the highest stored change id
	maxID, err := changeRepo.MaxID(ctx)
	if err != nil {
		closeDB()
		return nil, err
	}
	ids := domain.NewIDAllocator(maxID)

	if err := reinstallAuthority(ctx, userRepo); err != nil {
		closeDB()
		return nil, err
	}

	validator := usecase.NewChangeValidator(cfg.Validation.ItemChangeLimit, cfg.Validation.BalanceChangeLimit)
	passwords := password.NewBcryptPasswordService(cfg.Security.BcryptCost)
	tokens := token.NewJWTService(cfg.Security.JWTSecret, cfg.Security.JWTExpiration)

	return &app{
		auth:    usecase.NewAuthUseCase(userRepo, passwords, tokens, lg),
		budget:  usecase.NewBudgetUseCase(budgetRepo, validator, lg),
		changes: usecase.NewChangeRequestUseCase(changeRepo, budgetRepo, logRepo, approvals, validator, ids, lg),
		closeDB: closeDB,
	}, nil
}

// reinstallAuthority restores the approving authority slot from the stored
// authority user, if one exists
func reinstallAuthority(ctx context.Context, users ports.UserRepository) error {
	actors, err := users.Load(ctx)
	if err != nil {
		return err
	}
	for _, actor := range actors {
		if actor.Role == domain.RoleAuthority {
			_, err := domain.InitAuthority(actor.ID, actor.Username, actor.FullName)
			return err
		}
	}
	return nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "items":
		return a.runItems(ctx)
	case "list":
		return a.runList(ctx)
	case "log":
		return a.runLog(ctx)
	case "submit":
		return a.runSubmit(ctx, args)
	case "resolve":
		return a.runResolve(ctx, args)
	case "login":
		return a.runLogin(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (a *app) runItems(ctx context.Context) error {
	items, err := a.budget.ListItems(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		kind := "expense"
		if item.IsRevenue {
			kind = "revenue"
		}
		fmt.Printf("%4d  %-30s %12.2f  %s  %d\n", item.ID, item.Name, item.Value, kind, item.Year)
	}
	net, err := a.budget.NetResult(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("net result: %.2f\n", net)
	return nil
}

func (a *app) runList(ctx context.Context) error {
	changes, err := a.changes.ListChangeRequests(ctx)
	if err != nil {
		return err
	}
	for _, c := range changes {
		fmt.Printf("%4d  %-30s %12.2f -> %-12.2f %-8s by %s\n",
			c.ID, c.ItemName, c.OldValue, c.NewValue, c.Status, c.RequesterName)
	}
	return nil
}

func (a *app) runLog(ctx context.Context) error {
	entries, err := a.changes.ListChangeLog(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%4d  item %d  %12.2f -> %-12.2f at %s by %s\n",
			e.ID, e.ItemID, e.OldValue, e.NewValue, e.Timestamp.Format("2006-01-02 15:04:05"), e.ActorName)
	}
	return nil
}

func (a *app) runSubmit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	user := fs.String("user", "", "username")
	pass := fs.String("password", "", "password")
	itemID := fs.Int("item", 0, "budget item id")
	year := fs.Int("year", 0, "fiscal year")
	value := fs.Float64("value", 0, "proposed value")
	if err := fs.Parse(args); err != nil {
		return err
	}

	actor, _, err := a.auth.Login(ctx, *user, *pass)
	if err != nil {
		return err
	}

	change, err := a.changes.SubmitChangeRequest(ctx, actor, *itemID, *year, *value)
	if err != nil {
		return err
	}
	fmt.Printf("submitted change %d: %s %.2f -> %.2f\n", change.ID, change.ItemName, change.OldValue, change.NewValue)
	return nil
}

func (a *app) runResolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	user := fs.String("user", "", "username")
	pass := fs.String("password", "", "password")
	id := fs.Int("id", 0, "change request id")
	decision := fs.String("decision", "", "APPROVE or REJECT")
	if err := fs.Parse(args); err != nil {
		return err
	}

	actor, _, err := a.auth.Login(ctx, *user, *pass)
	if err != nil {
		return err
	}

	resolved, err := a.changes.ResolveChangeRequest(ctx, actor, *id, domain.Decision(*decision))
	if err != nil {
		return err
	}
	fmt.Printf("change %d is now %s\n", resolved.ID, resolved.Status)
	return nil
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("user", "", "username")
	pass := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	actor, sessionToken, err := a.auth.Login(ctx, *user, *pass)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", actor.FullName, actor.Role)
	fmt.Println(sessionToken)
	return nil
}
