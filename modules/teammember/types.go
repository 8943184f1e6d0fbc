package teammember

import "context"

// CreateTeamMemberRequest is the request for creating a team member.
type CreateTeamMemberRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Role  *string `json:"role,omitempty"`
}

// UpdateTeamMemberRequest is a partial update: only present fields are
// applied. Toggling IsActive here does not run the deactivation cascade.
type UpdateTeamMemberRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// GetTeamMemberRequest is the request for fetching a team member by id.
type GetTeamMemberRequest struct {
	ID string `json:"id"`
}

// SearchTeamMembersRequest is the request for searching team members.
type SearchTeamMembersRequest struct {
	SearchTerm string `json:"search_term"`
}

// UpdateTeamMemberServiceRequest wraps a partial update with its target id
// for the request-reply surface.
type UpdateTeamMemberServiceRequest struct {
	ID string `json:"id"`
	UpdateTeamMemberRequest
}

// DeleteTeamMemberRequest is the request for deleting a team member.
type DeleteTeamMemberRequest struct {
	ID string `json:"id"`
}

// DeleteTeamMemberResponse is the response after deleting a team member.
type DeleteTeamMemberResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// TeamMemberResponse is the response for a single team member.
type TeamMemberResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     *string `json:"role,omitempty"`
	IsActive bool    `json:"is_active"`
}

// TeamMemberDetailResponse adds the number of currently assigned,
// not-yet-completed tasks.
type TeamMemberDetailResponse struct {
	TeamMemberResponse
	TaskCount int `json:"task_count"`
}

// ListTeamMembersResponse is the response for any team member listing.
type ListTeamMembersResponse struct {
	Members []TeamMemberResponse `json:"members"`
	Total   int                  `json:"total"`
}

// TeamMemberPort is the contract the HTTP layer uses to drive the team
// member lifecycle service.
type TeamMemberPort interface {
	GetTeamMember(ctx context.Context, id string) (*TeamMemberResponse, error)
	GetTeamMemberDetail(ctx context.Context, id string) (*TeamMemberDetailResponse, error)
	ListTeamMembers(ctx context.Context) ([]TeamMemberResponse, error)
	ListActiveTeamMembers(ctx context.Context) ([]TeamMemberResponse, error)
	SearchTeamMembers(ctx context.Context, term string) ([]TeamMemberResponse, error)
	CreateTeamMember(ctx context.Context, req *CreateTeamMemberRequest) (*TeamMemberResponse, error)
	UpdateTeamMember(ctx context.Context, id string, req *UpdateTeamMemberRequest) (*TeamMemberResponse, error)
	DeactivateTeamMember(ctx context.Context, id string) (*TeamMemberResponse, error)
	DeleteTeamMember(ctx context.Context, id string) error
}
