package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskModule exposes the task lifecycle service as mono request-reply
// services under services.task.*. The HTTP api module drives the same
// service directly through TaskPort.
type TaskModule struct {
	svc *Service
}

var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.DependentModule = (*TaskModule)(nil)

// NewModule creates a task module around its lifecycle service.
func NewModule(svc *Service) *TaskModule {
	return &TaskModule{svc: svc}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Dependencies pins the start order behind the store module.
func (m *TaskModule) Dependencies() []string {
	return []string{"store"}
}

// SetDependencyServiceContainer is required by DependentModule; the store
// module exposes no services, the dependency exists for start ordering.
func (m *TaskModule) SetDependencyServiceContainer(_ string, _ mono.ServiceContainer) {}

// RegisterServices registers the request-reply services.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "paginate", json.Unmarshal, json.Marshal, m.paginateTasks,
	); err != nil {
		return fmt.Errorf("failed to register paginate service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "search", json.Unmarshal, json.Marshal, m.searchTasks,
	); err != nil {
		return fmt.Errorf("failed to register search service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "overdue", json.Unmarshal, json.Marshal, m.overdueTasks,
	); err != nil {
		return fmt.Errorf("failed to register overdue service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "assign", json.Unmarshal, json.Marshal, m.assignTask,
	); err != nil {
		return fmt.Errorf("failed to register assign service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "status", json.Unmarshal, json.Marshal, m.updateTaskStatus,
	); err != nil {
		return fmt.Errorf("failed to register status service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "priority", json.Unmarshal, json.Marshal, m.updateTaskPriority,
	); err != nil {
		return fmt.Errorf("failed to register priority service: %w", err)
	}

	log.Printf("[task] Registered services: services.task.{get,list,paginate,search,overdue,create,update,delete,assign,status,priority}")
	return nil
}

// Start validates the module wiring.
func (m *TaskModule) Start(_ context.Context) error {
	if m.svc == nil {
		return fmt.Errorf("task service not set")
	}
	log.Println("[task] Module started")
	return nil
}

// Stop is a no-op; the store module owns the connection.
func (m *TaskModule) Stop(_ context.Context) error {
	log.Println("[task] Module stopped")
	return nil
}

func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.svc.GetTask(ctx, req.ID)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}

func (m *TaskModule) listTasks(ctx context.Context, req FilterTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.svc.ListTasks(ctx, req)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

func (m *TaskModule) paginateTasks(ctx context.Context, req PaginateTasksRequest, _ *mono.Msg) (PaginatedTasksResponse, error) {
	resp, err := m.svc.PaginateTasks(ctx, req)
	if err != nil {
		return PaginatedTasksResponse{}, err
	}
	return *resp, nil
}

func (m *TaskModule) searchTasks(ctx context.Context, req SearchTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.svc.SearchTasks(ctx, req.SearchTerm)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

func (m *TaskModule) overdueTasks(ctx context.Context, _ struct{}, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.svc.ListOverdueTasks(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.svc.CreateTask(ctx, &req)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}

func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskServiceRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.svc.UpdateTask(ctx, req.ID, &req.UpdateTaskRequest)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}

func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.svc.DeleteTask(ctx, req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

func (m *TaskModule) assignTask(ctx context.Context, req AssignTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.svc.AssignTask(ctx, req.TaskID, req.TeamMemberID)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}

func (m *TaskModule) updateTaskStatus(ctx context.Context, req UpdateTaskStatusRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.svc.UpdateTaskStatus(ctx, req.ID, req.Status)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}

func (m *TaskModule) updateTaskPriority(ctx context.Context, req UpdateTaskPriorityRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.svc.UpdateTaskPriority(ctx, req.ID, req.Priority)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}
