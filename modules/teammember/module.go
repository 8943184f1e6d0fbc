package teammember

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TeamMemberModule exposes the team member lifecycle service as mono
// request-reply services under services.teammember.*.
type TeamMemberModule struct {
	svc *Service
}

var _ mono.Module = (*TeamMemberModule)(nil)
var _ mono.ServiceProviderModule = (*TeamMemberModule)(nil)
var _ mono.DependentModule = (*TeamMemberModule)(nil)

// NewModule creates a team member module around its lifecycle service.
func NewModule(svc *Service) *TeamMemberModule {
	return &TeamMemberModule{svc: svc}
}

// Name returns the module name.
func (m *TeamMemberModule) Name() string {
	return "teammember"
}

// Dependencies pins the start order behind the store module.
func (m *TeamMemberModule) Dependencies() []string {
	return []string{"store"}
}

// SetDependencyServiceContainer is required by DependentModule; the store
// module exposes no services, the dependency exists for start ordering.
func (m *TeamMemberModule) SetDependencyServiceContainer(_ string, _ mono.ServiceContainer) {}

// RegisterServices registers the request-reply services.
func (m *TeamMemberModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getTeamMember,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "detail", json.Unmarshal, json.Marshal, m.getTeamMemberDetail,
	); err != nil {
		return fmt.Errorf("failed to register detail service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listTeamMembers,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "active", json.Unmarshal, json.Marshal, m.listActiveTeamMembers,
	); err != nil {
		return fmt.Errorf("failed to register active service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "search", json.Unmarshal, json.Marshal, m.searchTeamMembers,
	); err != nil {
		return fmt.Errorf("failed to register search service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createTeamMember,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateTeamMember,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "deactivate", json.Unmarshal, json.Marshal, m.deactivateTeamMember,
	); err != nil {
		return fmt.Errorf("failed to register deactivate service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteTeamMember,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	log.Printf("[teammember] Registered services: services.teammember.{get,detail,list,active,search,create,update,deactivate,delete}")
	return nil
}

// Start validates the module wiring.
func (m *TeamMemberModule) Start(_ context.Context) error {
	if m.svc == nil {
		return fmt.Errorf("team member service not set")
	}
	log.Println("[teammember] Module started")
	return nil
}

// Stop is a no-op; the store module owns the connection.
func (m *TeamMemberModule) Stop(_ context.Context) error {
	log.Println("[teammember] Module stopped")
	return nil
}

func (m *TeamMemberModule) getTeamMember(ctx context.Context, req GetTeamMemberRequest, _ *mono.Msg) (TeamMemberResponse, error) {
	resp, err := m.svc.GetTeamMember(ctx, req.ID)
	if err != nil {
		return TeamMemberResponse{}, err
	}
	return *resp, nil
}

func (m *TeamMemberModule) getTeamMemberDetail(ctx context.Context, req GetTeamMemberRequest, _ *mono.Msg) (TeamMemberDetailResponse, error) {
	resp, err := m.svc.GetTeamMemberDetail(ctx, req.ID)
	if err != nil {
		return TeamMemberDetailResponse{}, err
	}
	return *resp, nil
}

func (m *TeamMemberModule) listTeamMembers(ctx context.Context, _ struct{}, _ *mono.Msg) (ListTeamMembersResponse, error) {
	members, err := m.svc.ListTeamMembers(ctx)
	if err != nil {
		return ListTeamMembersResponse{}, err
	}
	return ListTeamMembersResponse{Members: members, Total: len(members)}, nil
}

func (m *TeamMemberModule) listActiveTeamMembers(ctx context.Context, _ struct{}, _ *mono.Msg) (ListTeamMembersResponse, error) {
	members, err := m.svc.ListActiveTeamMembers(ctx)
	if err != nil {
		return ListTeamMembersResponse{}, err
	}
	return ListTeamMembersResponse{Members: members, Total: len(members)}, nil
}

func (m *TeamMemberModule) searchTeamMembers(ctx context.Context, req SearchTeamMembersRequest, _ *mono.Msg) (ListTeamMembersResponse, error) {
	members, err := m.svc.SearchTeamMembers(ctx, req.SearchTerm)
	if err != nil {
		return ListTeamMembersResponse{}, err
	}
	return ListTeamMembersResponse{Members: members, Total: len(members)}, nil
}

func (m *TeamMemberModule) createTeamMember(ctx context.Context, req CreateTeamMemberRequest, _ *mono.Msg) (TeamMemberResponse, error) {
	resp, err := m.svc.CreateTeamMember(ctx, &req)
	if err != nil {
		return TeamMemberResponse{}, err
	}
	return *resp, nil
}

func (m *TeamMemberModule) updateTeamMember(ctx context.Context, req UpdateTeamMemberServiceRequest, _ *mono.Msg) (TeamMemberResponse, error) {
	resp, err := m.svc.UpdateTeamMember(ctx, req.ID, &req.UpdateTeamMemberRequest)
	if err != nil {
		return TeamMemberResponse{}, err
	}
	return *resp, nil
}

func (m *TeamMemberModule) deactivateTeamMember(ctx context.Context, req GetTeamMemberRequest, _ *mono.Msg) (TeamMemberResponse, error) {
	resp, err := m.svc.DeactivateTeamMember(ctx, req.ID)
	if err != nil {
		return TeamMemberResponse{}, err
	}
	return *resp, nil
}

func (m *TeamMemberModule) deleteTeamMember(ctx context.Context, req DeleteTeamMemberRequest, _ *mono.Msg) (DeleteTeamMemberResponse, error) {
	if err := m.svc.DeleteTeamMember(ctx, req.ID); err != nil {
		return DeleteTeamMemberResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTeamMemberResponse{Deleted: true, ID: req.ID}, nil
}
