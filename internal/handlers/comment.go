package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/softdesk-dev/softdesk/db"
	"github.com/softdesk-dev/softdesk/internal/authz"
	"github.com/softdesk-dev/softdesk/internal/models"
	"github.com/softdesk-dev/softdesk/internal/store"
	"github.com/softdesk-dev/softdesk/internal/types"
	"github.com/softdesk-dev/softdesk/internal/utils"
)

type CreateCommentRequest struct {
	Description string `json:"description" binding:"required"`
	Issue       uint   `json:"issue" binding:"required"`
}

type UpdateCommentRequest struct {
	Description string `json:"description" binding:"required"`
}

// CreateComment adds a comment to an issue of one of the caller's projects.
func CreateComment(ctx *gin.Context) {
	var body CreateCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	issue, err := store.NewIssueStore(db.DB).FindByID(body.Issue)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Issue not found"})
		} else {
			log.Printf("Failed to fetch issue: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	isContributor, err := store.NewContributorStore(db.DB).Exists(userID, issue.ProjectID)

	if err != nil {
		log.Printf("Failed to resolve membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	if !isContributor {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You must be a contributor of the project to comment"})
		return
	}

	comment := models.Comment{
		Description: body.Description,
		IssueID:     issue.ID,
		AuthorID:    userID,
	}

	comments := store.NewCommentStore(db.DB)

	if err := comments.Create(&comment); err != nil {
		log.Printf("Failed to create comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	created, err := comments.FindByUUID(comment.UUID)

	if err != nil {
		log.Printf("Failed to fetch created comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comment"})
		return
	}

	ctx.JSON(http.StatusCreated, types.NewCommentResponse(created))
}

// ListComments returns the comments of every issue in the caller's projects.
func ListComments(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	comments, err := store.NewCommentStore(db.DB).ListForUser(userID)

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

func GetComment(ctx *gin.Context) {
	comment, ok := checkComment(ctx, authz.ActionRetrieve)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, types.NewCommentResponse(comment))
}

func UpdateComment(ctx *gin.Context) {
	comment, ok := checkComment(ctx, authz.ActionUpdate)

	if !ok {
		return
	}

	var body UpdateCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment.Description = body.Description

	if err := store.NewCommentStore(db.DB).Save(&comment); err != nil {
		log.Printf("Failed to update comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	ctx.JSON(http.StatusOK, types.NewCommentResponse(comment))
}

func DeleteComment(ctx *gin.Context) {
	comment, ok := checkComment(ctx, authz.ActionDelete)

	if !ok {
		return
	}

	if err := store.NewCommentStore(db.DB).Delete(comment.ID); err != nil {
		log.Printf("Failed to delete comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// checkComment resolves the comment addressed by its public UUID and
// consults the comment policy. A malformed identifier is a validation
// failure, distinct from an unknown one.
func checkComment(ctx *gin.Context, action authz.Action) (models.Comment, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.Comment{}, false
	}

	raw := ctx.Param("comment_uuid")

	if _, err := uuid.Parse(raw); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "'" + raw + "' is not a valid UUID"})
		return models.Comment{}, false
	}

	comment, err := store.NewCommentStore(db.DB).FindByUUID(raw)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else {
			log.Printf("Failed to fetch comment: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comment"})
		}
		return models.Comment{}, false
	}

	membership, err := store.NewContributorStore(db.DB).MembershipFor(userID, comment.AuthorID, comment)

	if err != nil {
		log.Printf("Failed to resolve membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comment"})
		return models.Comment{}, false
	}

	if !authorize(ctx, authz.ForComment(membership, action), "Comment") {
		return models.Comment{}, false
	}

	return comment, true
}
