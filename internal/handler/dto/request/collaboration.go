package request

import (
	"time"

	"rsv-catalog/internal/usecase/analytics"
	"rsv-catalog/internal/usecase/collaboration"
)

type TokenRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type CreateUserRequest struct {
	Name       string             `json:"name" binding:"required,max=120"`
	Email      string             `json:"email" binding:"required,email"`
	Avatar     string             `json:"avatar"`
	Role       collaboration.Role `json:"role" binding:"omitempty,oneof=admin editor viewer"`
	Department string             `json:"department"`
}

func (r *CreateUserRequest) ToDomain() collaboration.NewUser {
	role := r.Role
	if role == "" {
		role = collaboration.RoleViewer
	}
	return collaboration.NewUser{
		Name:       r.Name,
		Email:      r.Email,
		Avatar:     r.Avatar,
		Role:       role,
		Department: r.Department,
	}
}

type WorkspaceRequest struct {
	Name        string                          `json:"name" binding:"required,max=120"`
	Description string                          `json:"description"`
	Settings    collaboration.WorkspaceSettings `json:"settings"`
}

type AddMemberRequest struct {
	UserID      string                          `json:"userId" binding:"required"`
	Role        collaboration.MemberRole        `json:"role" binding:"omitempty,oneof=owner admin member guest"`
	Permissions *collaboration.SharePermissions `json:"permissions"`
}

func (r *AddMemberRequest) MemberRole() collaboration.MemberRole {
	if r.Role == "" {
		return collaboration.MemberMember
	}
	return r.Role
}

func (r *AddMemberRequest) SharePermissions() collaboration.SharePermissions {
	if r.Permissions == nil {
		return collaboration.DefaultSharePermissions()
	}
	return *r.Permissions
}

type LimitQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

type ReportRequest struct {
	Type        analytics.ReportType `json:"type" binding:"required,oneof=template user performance business"`
	Start       time.Time            `json:"start" binding:"required"`
	End         time.Time            `json:"end" binding:"required,gtfield=Start"`
	TemplateIDs []string             `json:"templateIds"`
}

func (r *ReportRequest) ToDomain(actor string) analytics.ReportRequest {
	return analytics.ReportRequest{
		Type:        r.Type,
		Period:      analytics.Period{Start: r.Start, End: r.End},
		TemplateIDs: r.TemplateIDs,
		Actor:       actor,
	}
}

type CleanupRequest struct {
	Keep int `json:"keep" binding:"omitempty,min=1"`
}
