package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	taskdomain "github.com/example/task-management/domain/task"
	memberdomain "github.com/example/task-management/domain/teammember"
	"github.com/example/task-management/modules/task"
	"github.com/example/task-management/modules/teammember"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&memberdomain.TeamMember{}, &taskdomain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	taskRepo := taskdomain.NewRepository(db)
	memberRepo := memberdomain.NewRepository(db)

	m := &APIModule{
		app:      fiber.New(fiber.Config{DisableStartupMessage: true}),
		handlers: NewHandlers(task.NewService(taskRepo, memberRepo, nil), teammember.NewService(memberRepo, taskRepo, nil)),
	}
	m.setupRoutes()
	return m.app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()

	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func createTaskViaAPI(t *testing.T, app *fiber.App, title string) task.TaskResponse {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/tasks/", map[string]any{"title": title})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create task status = %d, want 201", resp.StatusCode)
	}
	var created task.TaskResponse
	decodeBody(t, resp, &created)
	return created
}

func createMemberViaAPI(t *testing.T, app *fiber.App, name, email string) teammember.TeamMemberResponse {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/team-members/", map[string]any{"name": name, "email": email})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create member status = %d, want 201", resp.StatusCode)
	}
	var created teammember.TeamMemberResponse
	decodeBody(t, resp, &created)
	return created
}

func TestHealthEndpoint(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestCreateTaskEndpoint(t *testing.T) {
	t.Run("created with defaults", func(t *testing.T) {
		app := setupApp(t)

		created := createTaskViaAPI(t, app, "Write report")
		if created.Status != "Todo" {
			t.Errorf("Status = %q, want Todo", created.Status)
		}
		if created.Priority != "Medium" {
			t.Errorf("Priority = %q, want Medium", created.Priority)
		}
		if created.ID == "" {
			t.Error("expected generated id")
		}
	})

	t.Run("validation failure returns field map", func(t *testing.T) {
		app := setupApp(t)

		resp := doJSON(t, app, http.MethodPost, "/api/tasks/", map[string]any{"title": ""})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}

		var body ErrorResponse
		decodeBody(t, resp, &body)
		if body.Message != "Task validation failed." {
			t.Errorf("Message = %q", body.Message)
		}
		if messages, ok := body.Errors["Title"]; !ok || len(messages) == 0 {
			t.Errorf("expected Title errors, got %v", body.Errors)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		app := setupApp(t)

		req := httptest.NewRequest(http.MethodPost, "/api/tasks/", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestGetTaskEndpoint(t *testing.T) {
	app := setupApp(t)

	t.Run("found", func(t *testing.T) {
		created := createTaskViaAPI(t, app, "Lookup me")

		resp := doJSON(t, app, http.MethodGet, "/api/tasks/"+created.ID, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var fetched task.TaskResponse
		decodeBody(t, resp, &fetched)
		if fetched.Title != "Lookup me" {
			t.Errorf("Title = %q", fetched.Title)
		}
	})

	t.Run("missing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tasks/missing", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
		var body ErrorResponse
		decodeBody(t, resp, &body)
		if body.Message == "" {
			t.Error("expected error message")
		}
	})
}

func TestListTasksEndpoint(t *testing.T) {
	app := setupApp(t)
	for i := 0; i < 12; i++ {
		createTaskViaAPI(t, app, fmt.Sprintf("task %d", i))
	}

	t.Run("paginated by default", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tasks/", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var page task.PaginatedTasksResponse
		decodeBody(t, resp, &page)
		if page.TotalCount != 12 {
			t.Errorf("TotalCount = %d, want 12", page.TotalCount)
		}
		if len(page.Items) != 10 {
			t.Errorf("got %d items, want 10", len(page.Items))
		}
		if page.TotalPages != 2 {
			t.Errorf("TotalPages = %d, want 2", page.TotalPages)
		}
	})

	t.Run("plain list when pagination disabled", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tasks/?pageSize=0", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var tasks []task.TaskResponse
		decodeBody(t, resp, &tasks)
		if len(tasks) != 12 {
			t.Errorf("got %d tasks, want 12", len(tasks))
		}
	})

	t.Run("non-numeric page parameters", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tasks/?pageNumber=abc", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		var body ErrorResponse
		decodeBody(t, resp, &body)
		if body.Message != "Invalid pageNumber parameter." {
			t.Errorf("Message = %q", body.Message)
		}

		resp = doJSON(t, app, http.MethodGet, "/api/tasks/?pageSize=ten", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		decodeBody(t, resp, &body)
		if body.Message != "Invalid pageSize parameter." {
			t.Errorf("Message = %q", body.Message)
		}
	})

	t.Run("non-numeric status parameter", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tasks/?status=abc", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		var body ErrorResponse
		decodeBody(t, resp, &body)
		if body.Message != "Invalid status parameter." {
			t.Errorf("Message = %q", body.Message)
		}
	})

	t.Run("out-of-range status filter", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tasks/?status=42&pageSize=0", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		var body ErrorResponse
		decodeBody(t, resp, &body)
		if body.Message != "Invalid task status." {
			t.Errorf("Message = %q", body.Message)
		}
	})
}

func TestSearchTasksEndpoint(t *testing.T) {
	app := setupApp(t)
	createTaskViaAPI(t, app, "Deploy API gateway")

	t.Run("matches", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tasks/search?searchTerm=gateway", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var tasks []task.TaskResponse
		decodeBody(t, resp, &tasks)
		if len(tasks) != 1 {
			t.Errorf("got %d tasks, want 1", len(tasks))
		}
	})

	t.Run("empty term rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tasks/search", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestTaskTransitionEndpoints(t *testing.T) {
	app := setupApp(t)

	t.Run("status update stamps completion", func(t *testing.T) {
		created := createTaskViaAPI(t, app, "Finish")

		resp := doJSON(t, app, http.MethodPatch, "/api/tasks/"+created.ID+"/status", StatusUpdateRequest{Status: 3})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var updated task.TaskResponse
		decodeBody(t, resp, &updated)
		if updated.Status != "Completed" {
			t.Errorf("Status = %q, want Completed", updated.Status)
		}
		if updated.CompletedAt == nil {
			t.Error("expected CompletedAt to be set")
		}
	})

	t.Run("priority update", func(t *testing.T) {
		created := createTaskViaAPI(t, app, "Bump")

		resp := doJSON(t, app, http.MethodPatch, "/api/tasks/"+created.ID+"/priority", PriorityUpdateRequest{Priority: 3})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var updated task.TaskResponse
		decodeBody(t, resp, &updated)
		if updated.Priority != "Critical" {
			t.Errorf("Priority = %q, want Critical", updated.Priority)
		}
	})

	t.Run("invalid status value", func(t *testing.T) {
		created := createTaskViaAPI(t, app, "Finish")

		resp := doJSON(t, app, http.MethodPatch, "/api/tasks/"+created.ID+"/status", StatusUpdateRequest{Status: 42})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestAssignTaskEndpoint(t *testing.T) {
	app := setupApp(t)

	t.Run("assigns to active member", func(t *testing.T) {
		created := createTaskViaAPI(t, app, "Hand off")
		member := createMemberViaAPI(t, app, "Ada", "ada@example.com")

		resp := doJSON(t, app, http.MethodPatch, "/api/tasks/"+created.ID+"/assign/"+member.ID, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var updated task.TaskResponse
		decodeBody(t, resp, &updated)
		if updated.AssignedTo == nil || updated.AssignedTo.ID != member.ID {
			t.Errorf("AssignedTo = %+v, want member %s", updated.AssignedTo, member.ID)
		}
	})

	t.Run("rejects inactive member", func(t *testing.T) {
		created := createTaskViaAPI(t, app, "Hand off again")
		member := createMemberViaAPI(t, app, "Bob", "bob@example.com")

		if resp := doJSON(t, app, http.MethodPatch, "/api/team-members/"+member.ID+"/deactivate", nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("deactivate status = %d, want 200", resp.StatusCode)
		}

		resp := doJSON(t, app, http.MethodPatch, "/api/tasks/"+created.ID+"/assign/"+member.ID, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		var body ErrorResponse
		decodeBody(t, resp, &body)
		if body.Message != "Cannot assign task to an inactive team member." {
			t.Errorf("Message = %q", body.Message)
		}
	})
}

func TestDeleteTaskEndpoint(t *testing.T) {
	app := setupApp(t)
	created := createTaskViaAPI(t, app, "Doomed")

	resp := doJSON(t, app, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestTeamMemberEndpoints(t *testing.T) {
	t.Run("duplicate email rejected", func(t *testing.T) {
		app := setupApp(t)
		createMemberViaAPI(t, app, "Ada", "ada@example.com")

		resp := doJSON(t, app, http.MethodPost, "/api/team-members/", map[string]any{
			"name":  "Imposter",
			"email": "ada@example.com",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		var body ErrorResponse
		decodeBody(t, resp, &body)
		if body.Message != "A team member with this email already exists." {
			t.Errorf("Message = %q", body.Message)
		}
	})

	t.Run("detail includes open task count", func(t *testing.T) {
		app := setupApp(t)
		member := createMemberViaAPI(t, app, "Ada", "ada@example.com")
		created := createTaskViaAPI(t, app, "Open work")
		if resp := doJSON(t, app, http.MethodPatch, "/api/tasks/"+created.ID+"/assign/"+member.ID, nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("assign status = %d, want 200", resp.StatusCode)
		}

		resp := doJSON(t, app, http.MethodGet, "/api/team-members/"+member.ID+"/detail", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var detail teammember.TeamMemberDetailResponse
		decodeBody(t, resp, &detail)
		if detail.TaskCount != 1 {
			t.Errorf("TaskCount = %d, want 1", detail.TaskCount)
		}
	})

	t.Run("delete blocked by open tasks", func(t *testing.T) {
		app := setupApp(t)
		member := createMemberViaAPI(t, app, "Ada", "ada@example.com")
		created := createTaskViaAPI(t, app, "Open work")
		if resp := doJSON(t, app, http.MethodPatch, "/api/tasks/"+created.ID+"/assign/"+member.ID, nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("assign status = %d, want 200", resp.StatusCode)
		}

		resp := doJSON(t, app, http.MethodDelete, "/api/team-members/"+member.ID, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}

		resp = doJSON(t, app, http.MethodGet, "/api/team-members/"+member.ID, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("member should survive blocked delete, status = %d", resp.StatusCode)
		}
	})

	t.Run("active listing excludes deactivated", func(t *testing.T) {
		app := setupApp(t)
		createMemberViaAPI(t, app, "Ada", "ada@example.com")
		bob := createMemberViaAPI(t, app, "Bob", "bob@example.com")
		if resp := doJSON(t, app, http.MethodPatch, "/api/team-members/"+bob.ID+"/deactivate", nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("deactivate status = %d, want 200", resp.StatusCode)
		}

		resp := doJSON(t, app, http.MethodGet, "/api/team-members/active", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var members []teammember.TeamMemberResponse
		decodeBody(t, resp, &members)
		if len(members) != 1 || members[0].Name != "Ada" {
			t.Errorf("expected only Ada, got %d members", len(members))
		}
	})
}
