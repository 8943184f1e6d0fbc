package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a task is not found.
var ErrNotFound = errors.New("task not found")

// listOrder is the ordering contract for every task listing: priority
// descending (Critical first), then due date ascending, with creation time
// as the stable tie-break.
const listOrder = "priority DESC, due_date ASC, created_at ASC"

// Repository provides access to task storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task.
func (r *Repository) Create(task *Task) error {
	if err := r.db.Omit(clause.Associations).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by id with its assignee preloaded.
func (r *Repository) FindByID(id string) (*Task, error) {
	var task Task
	if err := r.db.Preload("AssignedTo").First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindAll retrieves all tasks in listing order.
func (r *Repository) FindAll() ([]*Task, error) {
	var tasks []*Task
	if err := r.db.Preload("AssignedTo").Order(listOrder).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindByStatus retrieves tasks with the given status.
func (r *Repository) FindByStatus(status Status) ([]*Task, error) {
	var tasks []*Task
	err := r.db.Preload("AssignedTo").
		Where("status = ?", status).
		Order(listOrder).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks by status: %w", err)
	}
	return tasks, nil
}

// FindByPriority retrieves tasks with the given priority.
func (r *Repository) FindByPriority(priority Priority) ([]*Task, error) {
	var tasks []*Task
	err := r.db.Preload("AssignedTo").
		Where("priority = ?", priority).
		Order(listOrder).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks by priority: %w", err)
	}
	return tasks, nil
}

// FindByAssignee retrieves tasks assigned to the given team member.
func (r *Repository) FindByAssignee(assigneeID string) ([]*Task, error) {
	var tasks []*Task
	err := r.db.Preload("AssignedTo").
		Where("assigned_to_id = ?", assigneeID).
		Order(listOrder).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks by assignee: %w", err)
	}
	return tasks, nil
}

// FindOverdue retrieves non-completed tasks whose due date has passed.
func (r *Repository) FindOverdue(now time.Time) ([]*Task, error) {
	var tasks []*Task
	err := r.db.Preload("AssignedTo").
		Where("due_date < ? AND status <> ?", now, StatusCompleted).
		Order(listOrder).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find overdue tasks: %w", err)
	}
	return tasks, nil
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search retrieves tasks whose title or description contains the term as a
// literal substring, case-insensitively. A null description never matches.
func (r *Repository) Search(term string) ([]*Task, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	var tasks []*Task
	err := r.db.Preload("AssignedTo").
		Where("LOWER(title) LIKE ? ESCAPE '\\' OR (description IS NOT NULL AND LOWER(description) LIKE ? ESCAPE '\\')",
			pattern, pattern).
		Order(listOrder).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// Filter retrieves tasks matching all provided predicates, AND-combined.
// A nil predicate applies no constraint.
func (r *Repository) Filter(status *Status, priority *Priority, assigneeID *string) ([]*Task, error) {
	query := r.filterQuery(status, priority, assigneeID)

	var tasks []*Task
	if err := query.Preload("AssignedTo").Order(listOrder).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to filter tasks: %w", err)
	}
	return tasks, nil
}

// Paginate applies the same filter and ordering as Filter and returns the
// requested page slice together with the total matching count.
func (r *Repository) Paginate(pageNumber, pageSize int, status *Status, priority *Priority, assigneeID *string) ([]*Task, int64, error) {
	query := r.filterQuery(status, priority, assigneeID)

	var total int64
	if err := query.Model(&Task{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	var tasks []*Task
	err := query.Preload("AssignedTo").
		Order(listOrder).
		Offset((pageNumber - 1) * pageSize).
		Limit(pageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to paginate tasks: %w", err)
	}
	return tasks, total, nil
}

// CountIncompleteByAssignee counts tasks assigned to the member that are
// not Completed. Feeds the detail view, the deactivation cascade check,
// and the member deletion guard.
func (r *Repository) CountIncompleteByAssignee(assigneeID string) (int64, error) {
	var count int64
	err := r.db.Model(&Task{}).
		Where("assigned_to_id = ? AND status <> ?", assigneeID, StatusCompleted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count incomplete tasks: %w", err)
	}
	return count, nil
}

// Update persists all fields of an existing task, including cleared ones
// such as a nulled assignee. The preloaded assignee itself is never
// written back.
func (r *Repository) Update(task *Task) error {
	if err := r.db.Omit(clause.Associations).Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete removes a task by id.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) filterQuery(status *Status, priority *Priority, assigneeID *string) *gorm.DB {
	query := r.db.Session(&gorm.Session{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if priority != nil {
		query = query.Where("priority = ?", *priority)
	}
	if assigneeID != nil {
		query = query.Where("assigned_to_id = ?", *assigneeID)
	}
	return query
}
