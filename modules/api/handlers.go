package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/task-management/modules/task"
	"github.com/example/task-management/modules/teammember"
)

// Handlers contains the HTTP handlers for the API. They parse requests,
// drive the lifecycle services through their ports, and format responses;
// every business rule lives behind the ports.
type Handlers struct {
	tasks   task.TaskPort
	members teammember.TeamMemberPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(tasks task.TaskPort, members teammember.TeamMemberPort) *Handlers {
	return &Handlers{tasks: tasks, members: members}
}

// GetTasks handles GET /api/tasks. With positive pageNumber and pageSize
// (the defaults) it returns a paginated envelope; passing 0 for either
// returns the plain filtered list.
func (h *Handlers) GetTasks(c *fiber.Ctx) error {
	filter, err := parseTaskFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	}

	pageNumber, err := parsePageParam(c, "pageNumber", 1)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	}
	pageSize, err := parsePageParam(c, "pageSize", 10)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	}

	if pageNumber > 0 && pageSize > 0 {
		page, err := h.tasks.PaginateTasks(c.UserContext(), task.PaginateTasksRequest{
			PageNumber:         pageNumber,
			PageSize:           pageSize,
			FilterTasksRequest: filter,
		})
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(page)
	}

	tasks, err := h.tasks.ListTasks(c.UserContext(), filter)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(tasks)
}

// GetOverdueTasks handles GET /api/tasks/overdue.
func (h *Handlers) GetOverdueTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListOverdueTasks(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(tasks)
}

// SearchTasks handles GET /api/tasks/search?searchTerm=.
func (h *Handlers) SearchTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.SearchTasks(c.UserContext(), c.Query("searchTerm"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(tasks)
}

// GetTaskByID handles GET /api/tasks/:id.
func (h *Handlers) GetTaskByID(c *fiber.Ctx) error {
	t, err := h.tasks.GetTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(t)
}

// CreateTask handles POST /api/tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req task.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body."})
	}

	t, err := h.tasks.CreateTask(c.UserContext(), &req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// UpdateTask handles PUT /api/tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var req task.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body."})
	}

	t, err := h.tasks.UpdateTask(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(t)
}

// DeleteTask handles DELETE /api/tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	if err := h.tasks.DeleteTask(c.UserContext(), c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignTask handles PATCH /api/tasks/:taskId/assign/:teamMemberId.
func (h *Handlers) AssignTask(c *fiber.Ctx) error {
	t, err := h.tasks.AssignTask(c.UserContext(), c.Params("taskId"), c.Params("teamMemberId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(t)
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status.
func (h *Handlers) UpdateTaskStatus(c *fiber.Ctx) error {
	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body."})
	}

	t, err := h.tasks.UpdateTaskStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(t)
}

// UpdateTaskPriority handles PATCH /api/tasks/:id/priority.
func (h *Handlers) UpdateTaskPriority(c *fiber.Ctx) error {
	var req PriorityUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body."})
	}

	t, err := h.tasks.UpdateTaskPriority(c.UserContext(), c.Params("id"), req.Priority)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(t)
}

// GetTeamMembers handles GET /api/team-members.
func (h *Handlers) GetTeamMembers(c *fiber.Ctx) error {
	members, err := h.members.ListTeamMembers(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(members)
}

// GetActiveTeamMembers handles GET /api/team-members/active.
func (h *Handlers) GetActiveTeamMembers(c *fiber.Ctx) error {
	members, err := h.members.ListActiveTeamMembers(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(members)
}

// SearchTeamMembers handles GET /api/team-members/search?searchTerm=.
func (h *Handlers) SearchTeamMembers(c *fiber.Ctx) error {
	members, err := h.members.SearchTeamMembers(c.UserContext(), c.Query("searchTerm"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(members)
}

// GetTeamMemberByID handles GET /api/team-members/:id.
func (h *Handlers) GetTeamMemberByID(c *fiber.Ctx) error {
	member, err := h.members.GetTeamMember(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(member)
}

// GetTeamMemberDetail handles GET /api/team-members/:id/detail.
func (h *Handlers) GetTeamMemberDetail(c *fiber.Ctx) error {
	detail, err := h.members.GetTeamMemberDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(detail)
}

// CreateTeamMember handles POST /api/team-members.
func (h *Handlers) CreateTeamMember(c *fiber.Ctx) error {
	var req teammember.CreateTeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body."})
	}

	member, err := h.members.CreateTeamMember(c.UserContext(), &req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// UpdateTeamMember handles PUT /api/team-members/:id.
func (h *Handlers) UpdateTeamMember(c *fiber.Ctx) error {
	var req teammember.UpdateTeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body."})
	}

	member, err := h.members.UpdateTeamMember(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(member)
}

// DeactivateTeamMember handles PATCH /api/team-members/:id/deactivate.
func (h *Handlers) DeactivateTeamMember(c *fiber.Ctx) error {
	member, err := h.members.DeactivateTeamMember(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(member)
}

// DeleteTeamMember handles DELETE /api/team-members/:id.
func (h *Handlers) DeleteTeamMember(c *fiber.Ctx) error {
	if err := h.members.DeleteTeamMember(c.UserContext(), c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parsePageParam reads an optional integer query parameter, rejecting
// non-numeric values rather than coercing them to the default.
func parsePageParam(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("Invalid " + name + " parameter.")
	}
	return value, nil
}

// parseTaskFilter reads the optional status, priority, and assigneeId
// query parameters. Range validation happens in the task service.
func parseTaskFilter(c *fiber.Ctx) (task.FilterTasksRequest, error) {
	var filter task.FilterTasksRequest

	if raw := c.Query("status"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("Invalid status parameter.")
		}
		filter.Status = &value
	}

	if raw := c.Query("priority"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("Invalid priority parameter.")
		}
		filter.Priority = &value
	}

	if raw := c.Query("assigneeId"); raw != "" {
		filter.AssigneeID = &raw
	}

	return filter, nil
}
