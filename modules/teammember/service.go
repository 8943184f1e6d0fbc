package teammember

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
	taskdomain "github.com/example/task-management/domain/task"
	domain "github.com/example/task-management/domain/teammember"
	"github.com/example/task-management/modules/cache"
)

// Service orchestrates the team member lifecycle: CRUD, activation state,
// and the cascading effects on tasks when a member is deactivated or
// deleted. It reads and writes the task store directly for those cascades.
type Service struct {
	members *domain.Repository
	tasks   *taskdomain.Repository
	cache   *cache.Cache
}

var _ TeamMemberPort = (*Service)(nil)

// NewService creates a team member lifecycle service. cache may be nil.
func NewService(members *domain.Repository, tasks *taskdomain.Repository, c *cache.Cache) *Service {
	return &Service{members: members, tasks: tasks, cache: c}
}

// GetTeamMember returns a team member by id.
func (s *Service) GetTeamMember(ctx context.Context, id string) (*TeamMemberResponse, error) {
	if cached, ok := s.cacheGet(ctx, memberCacheKey(id)); ok {
		return cached, nil
	}

	member, err := s.members.FindByID(id)
	if err != nil {
		return nil, s.mapMemberErr(err, id)
	}

	resp := toTeamMemberResponse(member)
	s.cacheSet(ctx, memberCacheKey(id), resp)
	return resp, nil
}

// GetTeamMemberDetail returns a team member together with the number of
// currently assigned, not-yet-completed tasks.
func (s *Service) GetTeamMemberDetail(_ context.Context, id string) (*TeamMemberDetailResponse, error) {
	member, err := s.members.FindByID(id)
	if err != nil {
		return nil, s.mapMemberErr(err, id)
	}

	count, err := s.tasks.CountIncompleteByAssignee(id)
	if err != nil {
		return nil, err
	}

	return &TeamMemberDetailResponse{
		TeamMemberResponse: *toTeamMemberResponse(member),
		TaskCount:          int(count),
	}, nil
}

// ListTeamMembers returns all team members ordered by name.
func (s *Service) ListTeamMembers(_ context.Context) ([]TeamMemberResponse, error) {
	members, err := s.members.FindAll()
	if err != nil {
		return nil, err
	}
	return toTeamMemberResponses(members), nil
}

// ListActiveTeamMembers returns the members with IsActive set.
func (s *Service) ListActiveTeamMembers(_ context.Context) ([]TeamMemberResponse, error) {
	members, err := s.members.FindActive()
	if err != nil {
		return nil, err
	}
	return toTeamMemberResponses(members), nil
}

// SearchTeamMembers returns members whose name, email, or role contains
// the term, case-insensitively.
func (s *Service) SearchTeamMembers(_ context.Context, term string) ([]TeamMemberResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperr.NewValidation("Search term cannot be empty.")
	}

	members, err := s.members.Search(term)
	if err != nil {
		return nil, err
	}
	return toTeamMemberResponses(members), nil
}

// CreateTeamMember validates the request and persists a new active member.
// The email must not already be in use (case-sensitive comparison).
func (s *Service) CreateTeamMember(_ context.Context, req *CreateTeamMemberRequest) (*TeamMemberResponse, error) {
	if err := domain.ValidateCreate(req.Name, req.Email); err != nil {
		return nil, err
	}
	if req.Role != nil && utf8.RuneCountInString(*req.Role) > domain.MaxRoleLength {
		return nil, apperr.NewValidation("Role cannot exceed 100 characters.")
	}

	if err := s.checkEmailFree(req.Email, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	member := &domain.TeamMember{
		ID:       uuid.New().String(),
		Fields:   audit.Fields{CreatedAt: now, UpdatedAt: now},
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: true,
	}

	if err := s.members.Create(member); err != nil {
		return nil, err
	}
	return toTeamMemberResponse(member), nil
}

// UpdateTeamMember applies the present fields of a partial update. A direct
// IsActive toggle here does not unassign any tasks; only
// DeactivateTeamMember cascades.
func (s *Service) UpdateTeamMember(ctx context.Context, id string, req *UpdateTeamMemberRequest) (*TeamMemberResponse, error) {
	member, err := s.members.FindByID(id)
	if err != nil {
		return nil, s.mapMemberErr(err, id)
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		if utf8.RuneCountInString(*req.Name) > domain.MaxNameLength {
			return nil, apperr.NewValidation("Name cannot exceed 100 characters.")
		}
		member.Name = *req.Name
	}

	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		if utf8.RuneCountInString(*req.Email) > domain.MaxEmailLength {
			return nil, apperr.NewValidation("Email cannot exceed 255 characters.")
		}
		if !domain.IsValidEmail(*req.Email) {
			return nil, apperr.NewValidation("Email format is invalid.")
		}
		if err := s.checkEmailFree(*req.Email, id); err != nil {
			return nil, err
		}
		member.Email = *req.Email
	}

	if req.Role != nil {
		if utf8.RuneCountInString(*req.Role) > domain.MaxRoleLength {
			return nil, apperr.NewValidation("Role cannot exceed 100 characters.")
		}
		member.Role = req.Role
	}

	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	member.UpdatedAt = time.Now().UTC()
	if err := s.members.Update(member); err != nil {
		return nil, err
	}

	s.invalidateMember(ctx, id)
	return toTeamMemberResponse(member), nil
}

// DeactivateTeamMember unassigns every non-completed task currently
// assigned to the member, then marks the member inactive. This is the only
// bulk-unassignment path in the system.
func (s *Service) DeactivateTeamMember(ctx context.Context, id string) (*TeamMemberResponse, error) {
	member, err := s.members.FindByID(id)
	if err != nil {
		return nil, s.mapMemberErr(err, id)
	}

	assigned, err := s.tasks.FindByAssignee(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, t := range assigned {
		if t.Status == taskdomain.StatusCompleted {
			continue
		}
		t.AssignedToID = nil
		t.AssignedTo = nil
		t.UpdatedAt = now
		if err := s.tasks.Update(t); err != nil {
			return nil, err
		}
		s.cacheDelete(ctx, "task:"+t.ID)
	}

	member.IsActive = false
	member.UpdatedAt = now
	if err := s.members.Update(member); err != nil {
		return nil, err
	}

	s.invalidateMember(ctx, id)
	return toTeamMemberResponse(member), nil
}

// DeleteTeamMember removes a member. The deletion is blocked while any
// assigned task is not yet completed; completed tasks keep their history
// but lose the assignee reference, never leaving it dangling.
func (s *Service) DeleteTeamMember(ctx context.Context, id string) error {
	if _, err := s.members.FindByID(id); err != nil {
		return s.mapMemberErr(err, id)
	}

	incomplete, err := s.tasks.CountIncompleteByAssignee(id)
	if err != nil {
		return err
	}
	if incomplete > 0 {
		return apperr.NewInvalidOperation("Cannot delete a team member with active assigned tasks. Reassign or complete the tasks first.")
	}

	assigned, err := s.tasks.FindByAssignee(id)
	if err != nil {
		return err
	}
	for _, t := range assigned {
		t.AssignedToID = nil
		t.AssignedTo = nil
		if err := s.tasks.Update(t); err != nil {
			return err
		}
		s.cacheDelete(ctx, "task:"+t.ID)
	}

	if err := s.members.Delete(id); err != nil {
		return s.mapMemberErr(err, id)
	}

	s.invalidateMember(ctx, id)
	return nil
}

// checkEmailFree fails when the email belongs to a member other than
// excludeID.
func (s *Service) checkEmailFree(email, excludeID string) error {
	existing, err := s.members.FindByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperr.NewValidation("A team member with this email already exists.")
	}
	return nil
}

func (s *Service) mapMemberErr(err error, id string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperr.NewNotFound("TeamMember", id)
	}
	return err
}

func memberCacheKey(id string) string {
	return "member:" + id
}

func (s *Service) cacheGet(ctx context.Context, key string) (*TeamMemberResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	var resp TeamMemberResponse
	hit, err := s.cache.Get(ctx, key, &resp)
	if err != nil {
		log.Printf("[teammember] Warning: cache read failed for %s: %v", key, err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	return &resp, true
}

func (s *Service) cacheSet(ctx context.Context, key string, value *TeamMemberResponse) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("[teammember] Warning: cache write failed for %s: %v", key, err)
	}
}

func (s *Service) cacheDelete(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("[teammember] Warning: cache invalidation failed for %s: %v", key, err)
	}
}

// invalidateMember drops the member's own cache entry and every cached
// task response, since task responses embed a copy of the assignee.
func (s *Service) invalidateMember(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	s.cacheDelete(ctx, memberCacheKey(id))
	if err := s.cache.DeletePattern(ctx, "task:*"); err != nil {
		log.Printf("[teammember] Warning: cache invalidation failed for task entries: %v", err)
	}
}

func toTeamMemberResponse(member *domain.TeamMember) *TeamMemberResponse {
	return &TeamMemberResponse{
		ID:       member.ID,
		Name:     member.Name,
		Email:    member.Email,
		Role:     member.Role,
		IsActive: member.IsActive,
	}
}

func toTeamMemberResponses(members []*domain.TeamMember) []TeamMemberResponse {
	responses := make([]TeamMemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, *toTeamMemberResponse(member))
	}
	return responses
}
