package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"

	taskdomain "github.com/example/task-management/domain/task"
	memberdomain "github.com/example/task-management/domain/teammember"
	"github.com/example/task-management/modules/api"
	"github.com/example/task-management/modules/cache"
	"github.com/example/task-management/modules/store"
	"github.com/example/task-management/modules/task"
	"github.com/example/task-management/modules/teammember"
)

const shutdownTimeout = 30 * time.Second

const cacheTTL = 5 * time.Minute

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "tasks.db"
	}

	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	taskRepo := taskdomain.NewRepository(db)
	memberRepo := memberdomain.NewRepository(db)

	// The cache is optional: without REDIS_ADDR every read goes to the store.
	var responseCache *cache.Cache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		responseCache = cache.New(client, "taskmgmt:", cacheTTL)
		app.Register(cache.NewModule(client, responseCache))
	}

	taskService := task.NewService(taskRepo, memberRepo, responseCache)
	memberService := teammember.NewService(memberRepo, taskRepo, responseCache)

	app.Register(store.NewModule(db, dbPath))
	app.Register(task.NewModule(taskService))
	app.Register(teammember.NewModule(memberService))
	app.Register(api.NewModule(taskService, memberService))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	log.Println("Task management service started")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}
