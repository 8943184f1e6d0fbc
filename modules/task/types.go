package task

import (
	"context"
	"time"
)

// CreateTaskRequest is the request for creating a task. Priority defaults
// to Medium and DueDate to creation time + 7 days when omitted.
type CreateTaskRequest struct {
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Priority     *int       `json:"priority,omitempty"`
	AssignedToID *string    `json:"assigned_to_id,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest is a partial update: only present fields are applied.
type UpdateTaskRequest struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Status       *int       `json:"status,omitempty"`
	Priority     *int       `json:"priority,omitempty"`
	AssignedToID *string    `json:"assigned_to_id,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
}

// FilterTasksRequest is a conjunction of optional equality predicates.
// A nil field applies no constraint.
type FilterTasksRequest struct {
	Status     *int    `json:"status,omitempty"`
	Priority   *int    `json:"priority,omitempty"`
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// PaginateTasksRequest applies the same filter as FilterTasksRequest and
// selects one page of the ordered result.
type PaginateTasksRequest struct {
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	FilterTasksRequest
}

// GetTaskRequest is the request for fetching a task by id.
type GetTaskRequest struct {
	ID string `json:"id"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID string `json:"id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// SearchTasksRequest is the request for searching tasks by text.
type SearchTasksRequest struct {
	SearchTerm string `json:"search_term"`
}

// AssignTaskRequest is the request for assigning a task to a team member.
type AssignTaskRequest struct {
	TaskID       string `json:"task_id"`
	TeamMemberID string `json:"team_member_id"`
}

// UpdateTaskStatusRequest is the request for a status-only transition.
type UpdateTaskStatusRequest struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
}

// UpdateTaskPriorityRequest is the request for a priority-only transition.
type UpdateTaskPriorityRequest struct {
	ID       string `json:"id"`
	Priority int    `json:"priority"`
}

// UpdateTaskServiceRequest wraps a partial update with its target id for
// the request-reply surface.
type UpdateTaskServiceRequest struct {
	ID string `json:"id"`
	UpdateTaskRequest
}

// AssigneeResponse is the member summary embedded in a task response.
type AssigneeResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     *string `json:"role,omitempty"`
	IsActive bool    `json:"is_active"`
}

// TaskResponse is the response for a single task. Status and Priority
// carry the enum names rather than their raw integer values.
type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	AssignedTo  *AssigneeResponse `json:"assigned_to,omitempty"`
	DueDate     time.Time         `json:"due_date"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}

// ListTasksResponse is the response for any task listing.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// PaginatedTasksResponse is one page of a filtered task listing. TotalCount
// is the full matching count, independent of the page slice.
type PaginatedTasksResponse struct {
	Items      []TaskResponse `json:"items"`
	TotalCount int            `json:"total_count"`
	PageNumber int            `json:"page_number"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// TaskPort is the contract the HTTP layer uses to drive the task
// lifecycle service.
type TaskPort interface {
	GetTask(ctx context.Context, id string) (*TaskResponse, error)
	ListTasks(ctx context.Context, filter FilterTasksRequest) ([]TaskResponse, error)
	PaginateTasks(ctx context.Context, req PaginateTasksRequest) (*PaginatedTasksResponse, error)
	SearchTasks(ctx context.Context, term string) ([]TaskResponse, error)
	ListOverdueTasks(ctx context.Context) ([]TaskResponse, error)
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	UpdateTask(ctx context.Context, id string, req *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, id string) error
	AssignTask(ctx context.Context, taskID, teamMemberID string) (*TaskResponse, error)
	UpdateTaskStatus(ctx context.Context, id string, status int) (*TaskResponse, error)
	UpdateTaskPriority(ctx context.Context, id string, priority int) (*TaskResponse, error)
}
