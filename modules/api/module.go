// Package api is the HTTP boundary: routing, request parsing, and response
// formatting on top of the task and team member lifecycle services.
package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/task-management/modules/task"
	"github.com/example/task-management/modules/teammember"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app      *fiber.App
	handlers *Handlers
	addr     string
}

var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates the API module on top of the two service ports. The
// listen address comes from HTTP_ADDR, defaulting to :3000.
func NewModule(tasks task.TaskPort, members teammember.TeamMemberPort) *APIModule {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	return &APIModule{
		handlers: NewHandlers(tasks, members),
		addr:     addr,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies pins the start order behind the lifecycle service modules.
func (m *APIModule) Dependencies() []string {
	return []string{"task", "teammember"}
}

// SetDependencyServiceContainer is required by DependentModule; the API
// drives the services through their ports, the dependency exists for start
// ordering.
func (m *APIModule) SetDependencyServiceContainer(_ string, _ mono.ServiceContainer) {}

// Health reports whether the HTTP server is up.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{Healthy: false, Message: "HTTP server not started"}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"addr": m.addr},
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.handlers == nil {
		return fmt.Errorf("handlers not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(m.addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.addr)
	return nil
}

// Stop shuts the HTTP server down gracefully.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.ShutdownWithContext(ctx)
}

func (m *APIModule) setupRoutes() {
	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	apiGroup := m.app.Group("/api")

	tasks := apiGroup.Group("/tasks")
	tasks.Get("/", m.handlers.GetTasks)
	tasks.Get("/overdue", m.handlers.GetOverdueTasks)
	tasks.Get("/search", m.handlers.SearchTasks)
	tasks.Get("/:id", m.handlers.GetTaskByID)
	tasks.Post("/", m.handlers.CreateTask)
	tasks.Put("/:id", m.handlers.UpdateTask)
	tasks.Delete("/:id", m.handlers.DeleteTask)
	tasks.Patch("/:taskId/assign/:teamMemberId", m.handlers.AssignTask)
	tasks.Patch("/:id/status", m.handlers.UpdateTaskStatus)
	tasks.Patch("/:id/priority", m.handlers.UpdateTaskPriority)

	members := apiGroup.Group("/team-members")
	members.Get("/", m.handlers.GetTeamMembers)
	members.Get("/active", m.handlers.GetActiveTeamMembers)
	members.Get("/search", m.handlers.SearchTeamMembers)
	members.Get("/:id", m.handlers.GetTeamMemberByID)
	members.Get("/:id/detail", m.handlers.GetTeamMemberDetail)
	members.Post("/", m.handlers.CreateTeamMember)
	members.Put("/:id", m.handlers.UpdateTeamMember)
	members.Patch("/:id/deactivate", m.handlers.DeactivateTeamMember)
	members.Delete("/:id", m.handlers.DeleteTeamMember)
}
