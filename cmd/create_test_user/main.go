package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"task_tracker/internal/db"
	"task_tracker/internal/logger"
	"task_tracker/internal/repository"
	"task_tracker/internal/service"

	"github.com/joho/godotenv"
)

// Seeds a user with a handful of tasks and prints a bearer token for it.
func main() {
	email := flag.String("email", "tester@example.com", "user email")
	password := flag.String("password", "secret123", "user password")
	name := flag.String("name", "Tester", "display name")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal("JWT_SECRET not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	tokens := service.NewJWTManager(secret, 0)
	audit := service.NewAuditService(repository.NewAuditRepository(pool))
	auth := service.NewAuthService(repository.NewUserRepository(pool), service.NewPasswordHasher(service.DefaultBcryptCost), tokens, audit)
	taskSvc := service.NewTaskService(repository.NewTaskRepository(pool), audit, nil, nil)

	session, err := auth.Signup(ctx, *email, *password, *name, service.RequestInfo{})
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		session, err = auth.Signin(ctx, *email, *password, service.RequestInfo{})
		if err != nil {
			logger.Fatal("user exists but signin failed", "email", *email, "error", err)
		}
		logger.Info("user already exists", "id", session.User.ID)
	case err != nil:
		logger.Fatal("signup failed", "error", err)
	default:
		logger.Info("user created", "id", session.User.ID)
		seedTasks(ctx, taskSvc, session.User.ID)
	}

	fmt.Println(session.AccessToken)
}

func seedTasks(ctx context.Context, svc *service.TaskService, owner string) {
	work, home := "work", "home"
	due := "2030-01-15"
	seeds := []service.CreateTaskInput{
		{Title: "Write quarterly report", Priority: "High", Category: &work, DueDate: &due, Tags: []string{"q1"}},
		{Title: "Review pull requests", Priority: "Medium", Category: &work},
		{Title: "Buy groceries", Priority: "Low", Category: &home, Tags: []string{"errand"}},
	}
	for _, in := range seeds {
		t, err := svc.Create(ctx, owner, in)
		if err != nil {
			logger.Fatal("seed task", "title", in.Title, "error", err)
		}
		logger.Info("task created", "id", t.ID, "title", t.Title)
	}
}
