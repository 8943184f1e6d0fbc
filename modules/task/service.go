package task

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/example/task-management/apperr"
	"github.com/example/task-management/domain/audit"
	domain "github.com/example/task-management/domain/task"
	"github.com/example/task-management/domain/teammember"
	"github.com/example/task-management/modules/cache"
)

const dueDateDefault = 7 * 24 * time.Hour

// Service orchestrates the task lifecycle: CRUD, transitions, assignment,
// filtering, and pagination. It reads the team member store directly for
// assignment checks; there is no indirection layer between the two
// lifecycle services.
type Service struct {
	tasks   *domain.Repository
	members *teammember.Repository
	cache   *cache.Cache
}

var _ TaskPort = (*Service)(nil)

// NewService creates a task lifecycle service. cache may be nil, in which
// case every read goes to the store.
func NewService(tasks *domain.Repository, members *teammember.Repository, c *cache.Cache) *Service {
	return &Service{tasks: tasks, members: members, cache: c}
}

// GetTask returns a task by id.
func (s *Service) GetTask(ctx context.Context, id string) (*TaskResponse, error) {
	if cached, ok := s.cacheGet(ctx, taskCacheKey(id)); ok {
		return cached, nil
	}

	t, err := s.tasks.FindByID(id)
	if err != nil {
		return nil, s.mapTaskErr(err, id)
	}

	resp := toTaskResponse(t)
	s.cacheSet(ctx, taskCacheKey(id), resp)
	return resp, nil
}

// ListTasks returns tasks matching all provided predicates, AND-combined,
// in listing order. An assignee predicate must reference an existing
// team member.
func (s *Service) ListTasks(_ context.Context, filter FilterTasksRequest) ([]TaskResponse, error) {
	status, priority, err := validateFilter(filter)
	if err != nil {
		return nil, err
	}

	if filter.AssigneeID != nil {
		if _, err := s.members.FindByID(*filter.AssigneeID); err != nil {
			return nil, s.mapMemberErr(err, *filter.AssigneeID)
		}
	}

	tasks, err := s.tasks.Filter(status, priority, filter.AssigneeID)
	if err != nil {
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

// PaginateTasks returns one page of the filtered listing plus the total
// matching count.
func (s *Service) PaginateTasks(_ context.Context, req PaginateTasksRequest) (*PaginatedTasksResponse, error) {
	if req.PageNumber < 1 || req.PageSize < 1 || req.PageSize > 100 {
		return nil, apperr.NewValidation("Invalid pagination parameters.")
	}

	status, priority, err := validateFilter(req.FilterTasksRequest)
	if err != nil {
		return nil, err
	}

	tasks, total, err := s.tasks.Paginate(req.PageNumber, req.PageSize, status, priority, req.AssigneeID)
	if err != nil {
		return nil, err
	}

	return &PaginatedTasksResponse{
		Items:      toTaskResponses(tasks),
		TotalCount: int(total),
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
		TotalPages: (int(total) + req.PageSize - 1) / req.PageSize,
	}, nil
}

// SearchTasks returns tasks whose title or description contains the term,
// case-insensitively.
func (s *Service) SearchTasks(_ context.Context, term string) ([]TaskResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperr.NewValidation("Search term cannot be empty.")
	}

	tasks, err := s.tasks.Search(term)
	if err != nil {
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

// ListOverdueTasks returns non-completed tasks whose due date has passed.
func (s *Service) ListOverdueTasks(_ context.Context) ([]TaskResponse, error) {
	tasks, err := s.tasks.FindOverdue(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

// CreateTask validates the request and persists a new task. A supplied
// assignee must reference an existing team member.
func (s *Service) CreateTask(_ context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	priority := domain.PriorityMedium
	if req.Priority != nil {
		priority = domain.Priority(*req.Priority)
	}

	if err := domain.ValidateCreate(req.Title, priority); err != nil {
		return nil, err
	}

	var assignee *teammember.TeamMember
	if req.AssignedToID != nil {
		member, err := s.members.FindByID(*req.AssignedToID)
		if err != nil {
			return nil, s.mapMemberErr(err, *req.AssignedToID)
		}
		assignee = member
	}

	now := time.Now().UTC()
	dueDate := now.Add(dueDateDefault)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	t := &domain.Task{
		ID:           uuid.New().String(),
		Fields:       audit.Fields{CreatedAt: now, UpdatedAt: now},
		Title:        req.Title,
		Description:  req.Description,
		Status:       domain.StatusTodo,
		Priority:     priority,
		AssignedToID: req.AssignedToID,
		DueDate:      dueDate,
	}

	if err := s.tasks.Create(t); err != nil {
		return nil, err
	}

	t.AssignedTo = assignee
	return toTaskResponse(t), nil
}

// UpdateTask applies the present fields of a partial update. No field is
// persisted when any field fails validation.
func (s *Service) UpdateTask(ctx context.Context, id string, req *UpdateTaskRequest) (*TaskResponse, error) {
	t, err := s.tasks.FindByID(id)
	if err != nil {
		return nil, s.mapTaskErr(err, id)
	}

	now := time.Now().UTC()

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		if utf8.RuneCountInString(*req.Title) > domain.MaxTitleLength {
			return nil, apperr.NewValidation("Title cannot exceed 200 characters.")
		}
		t.Title = *req.Title
	}

	if req.Description != nil {
		if utf8.RuneCountInString(*req.Description) > domain.MaxDescriptionLength {
			return nil, apperr.NewValidation("Description cannot exceed 2000 characters.")
		}
		t.Description = req.Description
	}

	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.IsValid() {
			return nil, apperr.NewValidation("Invalid task status.")
		}
		t.Status = status
		if status == domain.StatusCompleted && t.CompletedAt == nil {
			t.CompletedAt = &now
		}
	}

	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		if !priority.IsValid() {
			return nil, apperr.NewValidation("Invalid task priority.")
		}
		t.Priority = priority
	}

	if req.AssignedToID != nil {
		if _, err := s.members.FindByID(*req.AssignedToID); err != nil {
			return nil, s.mapMemberErr(err, *req.AssignedToID)
		}
		t.AssignedToID = req.AssignedToID
	}

	if req.DueDate != nil {
		t.DueDate = *req.DueDate
	}

	t.UpdatedAt = now
	if err := s.tasks.Update(t); err != nil {
		return nil, err
	}

	s.cacheDelete(ctx, taskCacheKey(id))
	return s.reload(id)
}

// DeleteTask removes a task unconditionally once it resolves.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.tasks.Delete(id); err != nil {
		return s.mapTaskErr(err, id)
	}
	s.cacheDelete(ctx, taskCacheKey(id))
	return nil
}

// AssignTask assigns a task to an active team member.
func (s *Service) AssignTask(ctx context.Context, taskID, teamMemberID string) (*TaskResponse, error) {
	t, err := s.tasks.FindByID(taskID)
	if err != nil {
		return nil, s.mapTaskErr(err, taskID)
	}

	member, err := s.members.FindByID(teamMemberID)
	if err != nil {
		return nil, s.mapMemberErr(err, teamMemberID)
	}

	if !member.IsActive {
		return nil, apperr.NewInvalidOperation("Cannot assign task to an inactive team member.")
	}

	t.AssignedToID = &member.ID
	t.AssignedTo = member
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(t); err != nil {
		return nil, err
	}

	s.cacheDelete(ctx, taskCacheKey(taskID))
	return toTaskResponse(t), nil
}

// UpdateTaskStatus transitions a task's status. Any transition is allowed;
// the first entry into Completed stamps CompletedAt, and a later regression
// never clears it.
func (s *Service) UpdateTaskStatus(ctx context.Context, id string, statusValue int) (*TaskResponse, error) {
	status := domain.Status(statusValue)
	if !status.IsValid() {
		return nil, apperr.NewValidation("Invalid task status.")
	}

	t, err := s.tasks.FindByID(id)
	if err != nil {
		return nil, s.mapTaskErr(err, id)
	}

	now := time.Now().UTC()
	t.Status = status
	if status == domain.StatusCompleted && t.CompletedAt == nil {
		t.CompletedAt = &now
	}
	t.UpdatedAt = now

	if err := s.tasks.Update(t); err != nil {
		return nil, err
	}

	s.cacheDelete(ctx, taskCacheKey(id))
	return toTaskResponse(t), nil
}

// UpdateTaskPriority changes a task's priority.
func (s *Service) UpdateTaskPriority(ctx context.Context, id string, priorityValue int) (*TaskResponse, error) {
	priority := domain.Priority(priorityValue)
	if !priority.IsValid() {
		return nil, apperr.NewValidation("Invalid task priority.")
	}

	t, err := s.tasks.FindByID(id)
	if err != nil {
		return nil, s.mapTaskErr(err, id)
	}

	t.Priority = priority
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(t); err != nil {
		return nil, err
	}

	s.cacheDelete(ctx, taskCacheKey(id))
	return toTaskResponse(t), nil
}

func (s *Service) reload(id string) (*TaskResponse, error) {
	t, err := s.tasks.FindByID(id)
	if err != nil {
		return nil, s.mapTaskErr(err, id)
	}
	return toTaskResponse(t), nil
}

func (s *Service) mapTaskErr(err error, id string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperr.NewNotFound("Task", id)
	}
	return err
}

func (s *Service) mapMemberErr(err error, id string) error {
	if errors.Is(err, teammember.ErrNotFound) {
		return apperr.NewNotFound("TeamMember", id)
	}
	return err
}

func validateFilter(filter FilterTasksRequest) (*domain.Status, *domain.Priority, error) {
	var status *domain.Status
	if filter.Status != nil {
		s := domain.Status(*filter.Status)
		if !s.IsValid() {
			return nil, nil, apperr.NewValidation("Invalid task status.")
		}
		status = &s
	}

	var priority *domain.Priority
	if filter.Priority != nil {
		p := domain.Priority(*filter.Priority)
		if !p.IsValid() {
			return nil, nil, apperr.NewValidation("Invalid task priority.")
		}
		priority = &p
	}

	return status, priority, nil
}

func taskCacheKey(id string) string {
	return "task:" + id
}

func (s *Service) cacheGet(ctx context.Context, key string) (*TaskResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	var resp TaskResponse
	hit, err := s.cache.Get(ctx, key, &resp)
	if err != nil {
		log.Printf("[task] Warning: cache read failed for %s: %v", key, err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	return &resp, true
}

func (s *Service) cacheSet(ctx context.Context, key string, value *TaskResponse) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("[task] Warning: cache write failed for %s: %v", key, err)
	}
}

func (s *Service) cacheDelete(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("[task] Warning: cache invalidation failed for %s: %v", key, err)
	}
}

func toTaskResponse(t *domain.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		Priority:    t.Priority.String(),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CompletedAt: t.CompletedAt,
	}
	if t.AssignedTo != nil {
		resp.AssignedTo = &AssigneeResponse{
			ID:       t.AssignedTo.ID,
			Name:     t.AssignedTo.Name,
			Email:    t.AssignedTo.Email,
			Role:     t.AssignedTo.Role,
			IsActive: t.AssignedTo.IsActive,
		}
	}
	return resp
}

func toTaskResponses(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, *toTaskResponse(t))
	}
	return responses
}
