package types

import (
	"time"

	"github.com/softdesk-dev/softdesk/internal/models"
)

// Response DTOs. Nested author/project/issue fields are read-only expansions
// of the referenced entity; they are never writable through the parent.

type UserResponse struct {
	ID              uint      `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Age             *int      `json:"age"`
	CanBeContacted  bool      `json:"can_be_contacted"`
	CanDataBeShared bool      `json:"can_data_be_shared"`
	CreatedTime     time.Time `json:"created_time"`
	UpdatedTime     time.Time `json:"updated_time"`
}

type ProjectResponse struct {
	ID                uint         `json:"id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Type              string       `json:"type"`
	Author            UserResponse `json:"author"`
	ContributorsCount int64        `json:"contributors_count"`
	CreatedTime       time.Time    `json:"created_time"`
	UpdatedTime       time.Time    `json:"updated_time"`
}

type ContributorResponse struct {
	ID          uint         `json:"id"`
	User        UserResponse `json:"user"`
	ProjectID   uint         `json:"project_id"`
	CreatedTime time.Time    `json:"created_time"`
}

type IssueResponse struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Priority      string          `json:"priority"`
	Status        string          `json:"status"`
	Tag           string          `json:"tag"`
	Project       ProjectResponse `json:"project"`
	Author        UserResponse    `json:"author"`
	AssignedTo    *UserResponse   `json:"assigned_to"`
	CommentsCount int64           `json:"comments_count"`
	CreatedTime   time.Time       `json:"created_time"`
	UpdatedTime   time.Time       `json:"updated_time"`
}

type CommentResponse struct {
	UUID        string       `json:"uuid"`
	Description string       `json:"description"`
	IssueID     uint         `json:"issue"`
	Author      UserResponse `json:"author"`
	CreatedTime time.Time    `json:"created_time"`
	UpdatedTime time.Time    `json:"updated_time"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Age:             u.Age,
		CanBeContacted:  u.CanBeContacted,
		CanDataBeShared: u.CanDataBeShared,
		CreatedTime:     u.CreatedAt,
		UpdatedTime:     u.UpdatedAt,
	}
}

func NewProjectResponse(p models.Project, contributorsCount int64) ProjectResponse {
	return ProjectResponse{
		ID:                p.ID,
		Title:             p.Title,
		Description:       p.Description,
		Type:              p.Type,
		Author:            NewUserResponse(p.Author),
		ContributorsCount: contributorsCount,
		CreatedTime:       p.CreatedAt,
		UpdatedTime:       p.UpdatedAt,
	}
}

func NewContributorResponse(c models.Contributor) ContributorResponse {
	return ContributorResponse{
		ID:          c.ID,
		User:        NewUserResponse(c.User),
		ProjectID:   c.ProjectID,
		CreatedTime: c.CreatedAt,
	}
}

func NewIssueResponse(i models.Issue, contributorsCount, commentsCount int64) IssueResponse {
	resp := IssueResponse{
		ID:            i.ID,
		Title:         i.Title,
		Description:   i.Description,
		Priority:      i.Priority,
		Status:        i.Status,
		Tag:           i.Tag,
		Project:       NewProjectResponse(i.Project, contributorsCount),
		Author:        NewUserResponse(i.Author),
		CommentsCount: commentsCount,
		CreatedTime:   i.CreatedAt,
		UpdatedTime:   i.UpdatedAt,
	}

	if i.AssignedTo != nil {
		assignee := NewUserResponse(*i.AssignedTo)
		resp.AssignedTo = &assignee
	}

	return resp
}

func NewCommentResponse(c models.Comment) CommentResponse {
	return CommentResponse{
		UUID:        c.UUID,
		Description: c.Description,
		IssueID:     c.IssueID,
		Author:      NewUserResponse(c.Author),
		CreatedTime: c.CreatedAt,
		UpdatedTime: c.UpdatedAt,
	}
}
