package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/devwithkudzie/task-management/config"
	"github.com/devwithkudzie/task-management/modules/activity"
	"github.com/devwithkudzie/task-management/modules/api"
	"github.com/devwithkudzie/task-management/modules/task"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Management API ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	logger := app.Logger()

	// Independent modules first, then modules with dependencies.
	app.Register(activity.NewModule(logger))  // consumes task events
	app.Register(task.NewModule(cfg, logger)) // owns the store, emits events
	app.Register(api.NewModule(cfg, logger))  // HTTP adapter, depends on task

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

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

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("  Environment: %s", cfg.Env)
	log.Printf("  Database:    %s", cfg.DBDriver)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.Port)
	log.Println("  GET    /api/tasks            - List all tasks, newest first")
	log.Println("  POST   /api/tasks            - Create a task")
	log.Println("  GET    /api/tasks/:id        - Get a task by ID")
	log.Println("  PUT    /api/tasks/:id        - Update a task")
	log.Println("  DELETE /api/tasks/:id        - Delete a task")
	log.Println("  PUT    /api/tasks/:id/toggle - Toggle pending/completed")
	log.Println("  GET    /health               - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
