package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/softdesk-dev/softdesk/db"
	"github.com/softdesk-dev/softdesk/internal/authz"
	"github.com/softdesk-dev/softdesk/internal/models"
	"github.com/softdesk-dev/softdesk/internal/store"
	"github.com/softdesk-dev/softdesk/internal/types"
)

// authorize writes the response for a Deny or Hide decision and reports
// whether the caller may proceed.
func authorize(ctx *gin.Context, decision authz.Decision, resource string) bool {
	switch decision {
	case authz.Allow:
		return true
	case authz.Deny:
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
	default:
		ctx.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	}

	return false
}

func projectResponse(project models.Project) (types.ProjectResponse, error) {
	count, err := store.NewContributorStore(db.DB).CountForProject(project.ID)

	if err != nil {
		return types.ProjectResponse{}, err
	}

	return types.NewProjectResponse(project, count), nil
}

func issueResponse(issue models.Issue) (types.IssueResponse, error) {
	contributorsCount, err := store.NewContributorStore(db.DB).CountForProject(issue.ProjectID)

	if err != nil {
		return types.IssueResponse{}, err
	}

	commentsCount, err := store.NewCommentStore(db.DB).CountForIssue(issue.ID)

	if err != nil {
		return types.IssueResponse{}, err
	}

	return types.NewIssueResponse(issue, contributorsCount, commentsCount), nil
}
