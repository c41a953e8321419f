package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/softdesk-dev/softdesk/db"
	"github.com/softdesk-dev/softdesk/internal/authz"
	"github.com/softdesk-dev/softdesk/internal/models"
	"github.com/softdesk-dev/softdesk/internal/store"
	"github.com/softdesk-dev/softdesk/internal/types"
	"github.com/softdesk-dev/softdesk/internal/utils"
)

type CreateIssueRequest struct {
	Title        string `json:"title" binding:"required,max=128"`
	Description  string `json:"description" binding:"required"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	Tag          string `json:"tag" binding:"required"`
	Project      uint   `json:"project" binding:"required"`
	AssignedToID *uint  `json:"assigned_to_id"`
}

type UpdateIssueRequest struct {
	Title        string `json:"title" binding:"required,max=128"`
	Description  string `json:"description" binding:"required"`
	Priority     string `json:"priority" binding:"required"`
	Status       string `json:"status" binding:"required"`
	Tag          string `json:"tag" binding:"required"`
	AssignedToID *uint  `json:"assigned_to_id"`
}

type PatchIssueRequest struct {
	Title        *string `json:"title" binding:"omitempty,max=128"`
	Description  *string `json:"description"`
	Priority     *string `json:"priority"`
	Status       *string `json:"status"`
	Tag          *string `json:"tag"`
	AssignedToID *uint   `json:"assigned_to_id"`
}

// CreateIssue creates an issue inside one of the caller's projects. The
// caller becomes the author; an assignee, when given, must be an existing
// user already contributing to the project.
func CreateIssue(ctx *gin.Context) {
	var body CreateIssueRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Priority == "" {
		body.Priority = types.PriorityMedium
	}

	if body.Status == "" {
		body.Status = types.StatusToDo
	}

	if !validateIssueEnums(ctx, body.Priority, body.Status, body.Tag) {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if _, err := store.NewProjectStore(db.DB).FindByID(body.Project); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	contributors := store.NewContributorStore(db.DB)

	isContributor, err := contributors.Exists(userID, body.Project)

	if err != nil {
		log.Printf("Failed to resolve membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	if !isContributor {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You must be a contributor of the project to create issues"})
		return
	}

	if !validateAssignee(ctx, body.AssignedToID, body.Project) {
		return
	}

	issue := models.Issue{
		Title:        body.Title,
		Description:  body.Description,
		Priority:     body.Priority,
		Status:       body.Status,
		Tag:          body.Tag,
		ProjectID:    body.Project,
		AuthorID:     userID,
		AssignedToID: body.AssignedToID,
	}

	issues := store.NewIssueStore(db.DB)

	if err := issues.Create(&issue); err != nil {
		log.Printf("Failed to create issue: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	respondIssue(ctx, issues, issue.ID, http.StatusCreated)
}

// ListIssues returns the issues of every project the caller contributes to.
func ListIssues(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	issues, err := store.NewIssueStore(db.DB).ListForUser(userID)

	if err != nil {
		log.Printf("Failed to list issues: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	response := make([]types.IssueResponse, 0, len(issues))

	for _, issue := range issues {
		item, err := issueResponse(issue)

		if err != nil {
			log.Printf("Failed to build issue response: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
			return
		}

		response = append(response, item)
	}

	ctx.JSON(http.StatusOK, response)
}

func GetIssue(ctx *gin.Context) {
	issue, ok := checkIssue(ctx, authz.ActionRetrieve)

	if !ok {
		return
	}

	response, err := issueResponse(issue)

	if err != nil {
		log.Printf("Failed to build issue response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateIssue(ctx *gin.Context) {
	issue, ok := checkIssue(ctx, authz.ActionUpdate)

	if !ok {
		return
	}

	var body UpdateIssueRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !validateIssueEnums(ctx, body.Priority, body.Status, body.Tag) {
		return
	}

	if !validateAssignee(ctx, body.AssignedToID, issue.ProjectID) {
		return
	}

	issue.Title = body.Title
	issue.Description = body.Description
	issue.Priority = body.Priority
	issue.Status = body.Status
	issue.Tag = body.Tag
	issue.AssignedToID = body.AssignedToID

	saveIssue(ctx, &issue)
}

func PatchIssue(ctx *gin.Context) {
	issue, ok := checkIssue(ctx, authz.ActionUpdate)

	if !ok {
		return
	}

	var body PatchIssueRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Priority != nil && !types.ValidPriority(*body.Priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	if body.Status != nil && !types.ValidStatus(*body.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if body.Tag != nil && !types.ValidTag(*body.Tag) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag"})
		return
	}

	if body.AssignedToID != nil && !validateAssignee(ctx, body.AssignedToID, issue.ProjectID) {
		return
	}

	if body.Title != nil {
		issue.Title = *body.Title
	}

	if body.Description != nil {
		issue.Description = *body.Description
	}

	if body.Priority != nil {
		issue.Priority = *body.Priority
	}

	if body.Status != nil {
		issue.Status = *body.Status
	}

	if body.Tag != nil {
		issue.Tag = *body.Tag
	}

	if body.AssignedToID != nil {
		issue.AssignedToID = body.AssignedToID
	}

	saveIssue(ctx, &issue)
}

func DeleteIssue(ctx *gin.Context) {
	issue, ok := checkIssue(ctx, authz.ActionDelete)

	if !ok {
		return
	}

	if err := store.NewIssueStore(db.DB).Delete(issue.ID); err != nil {
		log.Printf("Failed to delete issue: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListIssueComments is the read-only sub-listing behind the issue's read
// policy.
func ListIssueComments(ctx *gin.Context) {
	issue, ok := checkIssue(ctx, authz.ActionRetrieve)

	if !ok {
		return
	}

	comments, err := store.NewCommentStore(db.DB).ListForIssue(issue.ID)

	if err != nil {
		log.Printf("Failed to list comments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	response := make([]types.CommentResponse, 0, len(comments))

	for _, comment := range comments {
		response = append(response, types.NewCommentResponse(comment))
	}

	ctx.JSON(http.StatusOK, response)
}

func checkIssue(ctx *gin.Context, action authz.Action) (models.Issue, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.Issue{}, false
	}

	issueID, err := utils.GetIDParam(ctx, "issue_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Issue{}, false
	}

	issue, err := store.NewIssueStore(db.DB).FindByID(issueID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			log.Printf("Failed to fetch issue: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return models.Issue{}, false
	}

	membership, err := store.NewContributorStore(db.DB).MembershipFor(userID, issue.AuthorID, issue)

	if err != nil {
		log.Printf("Failed to resolve membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return models.Issue{}, false
	}

	if !authorize(ctx, authz.ForIssue(membership, action), "Issue") {
		return models.Issue{}, false
	}

	return issue, true
}

func validateIssueEnums(ctx *gin.Context, priority, status, tag string) bool {
	if !types.ValidPriority(priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return false
	}

	if !types.ValidStatus(status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return false
	}

	if !types.ValidTag(tag) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag"})
		return false
	}

	return true
}

// validateAssignee enforces the assignment invariant: the assignee must
// exist and already contribute to the project. The two failures are
// reported distinctly.
func validateAssignee(ctx *gin.Context, assigneeID *uint, projectID uint) bool {
	if assigneeID == nil {
		return true
	}

	if _, err := store.NewUserStore(db.DB).FindByID(*assigneeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user not found"})
		} else {
			log.Printf("Failed to fetch assigned user: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return false
	}

	isContributor, err := store.NewContributorStore(db.DB).Exists(*assigneeID, projectID)

	if err != nil {
		log.Printf("Failed to resolve membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return false
	}

	if !isContributor {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user must be a contributor of the project"})
		return false
	}

	return true
}

func saveIssue(ctx *gin.Context, issue *models.Issue) {
	issues := store.NewIssueStore(db.DB)

	if err := issues.Save(issue); err != nil {
		log.Printf("Failed to update issue: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	respondIssue(ctx, issues, issue.ID, http.StatusOK)
}

func respondIssue(ctx *gin.Context, issues store.IssueStore, issueID uint, status int) {
	issue, err := issues.FindByID(issueID)

	if err != nil {
		log.Printf("Failed to fetch issue: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	response, err := issueResponse(issue)

	if err != nil {
		log.Printf("Failed to build issue response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	ctx.JSON(status, response)
}
