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

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=128"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required"`
}

type UpdateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=128"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required"`
}

type PatchProjectRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=128"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
}

type AddContributorRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// CreateProject persists the project and enrolls the caller as author and
// contributor in one transaction.
func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidProjectType(body.Type) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project type"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project := models.Project{
		Title:       body.Title,
		Description: body.Description,
		Type:        body.Type,
		AuthorID:    userID,
	}

	projects := store.NewProjectStore(db.DB)

	if err := projects.CreateWithAuthor(&project); err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	created, err := projects.FindByID(project.ID)

	if err != nil {
		log.Printf("Failed to fetch created project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	response, err := projectResponse(created)

	if err != nil {
		log.Printf("Failed to build project response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// ListProjects returns the projects the caller contributes to.
func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projects, err := store.NewProjectStore(db.DB).ListForUser(userID)

	if err != nil {
		log.Printf("Failed to list projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))

	for _, project := range projects {
		item, err := projectResponse(project)

		if err != nil {
			log.Printf("Failed to build project response: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
			return
		}

		response = append(response, item)
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	project, ok := checkProject(ctx, authz.ActionRetrieve)

	if !ok {
		return
	}

	response, err := projectResponse(project)

	if err != nil {
		log.Printf("Failed to build project response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateProject(ctx *gin.Context) {
	project, ok := checkProject(ctx, authz.ActionUpdate)

	if !ok {
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidProjectType(body.Type) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project type"})
		return
	}

	project.Title = body.Title
	project.Description = body.Description
	project.Type = body.Type

	saveProject(ctx, &project)
}

func PatchProject(ctx *gin.Context) {
	project, ok := checkProject(ctx, authz.ActionUpdate)

	if !ok {
		return
	}

	var body PatchProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Type != nil && !types.ValidProjectType(*body.Type) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project type"})
		return
	}

	if body.Title != nil {
		project.Title = *body.Title
	}

	if body.Description != nil {
		project.Description = *body.Description
	}

	if body.Type != nil {
		project.Type = *body.Type
	}

	saveProject(ctx, &project)
}

func DeleteProject(ctx *gin.Context) {
	project, ok := checkProject(ctx, authz.ActionDelete)

	if !ok {
		return
	}

	if err := store.NewProjectStore(db.DB).Delete(project.ID); err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListContributors is the read-only sub-listing behind the project's read
// policy.
func ListContributors(ctx *gin.Context) {
	project, ok := checkProject(ctx, authz.ActionRetrieve)

	if !ok {
		return
	}

	contributors, err := store.NewContributorStore(db.DB).ListForProject(project.ID)

	if err != nil {
		log.Printf("Failed to list contributors: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contributors"})
		return
	}

	response := make([]types.ContributorResponse, 0, len(contributors))

	for _, contributor := range contributors {
		response = append(response, types.NewContributorResponse(contributor))
	}

	ctx.JSON(http.StatusOK, response)
}

// AddContributor enrolls another user into the project. Author only; an
// unknown user and an already enrolled one are distinct failures.
func AddContributor(ctx *gin.Context) {
	project, ok := checkProject(ctx, authz.ActionCreate)

	if !ok {
		return
	}

	var body AddContributorRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	contributor, err := store.NewContributorStore(db.DB).Add(body.UserID, project.ID)

	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		case errors.Is(err, store.ErrDuplicateContributor):
			ctx.JSON(http.StatusConflict, gin.H{"error": "This contributor already exists for this project"})
		default:
			log.Printf("Failed to add contributor: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add contributor"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, types.NewContributorResponse(contributor))
}

// checkProject resolves the target project and consults the project policy
// for the given action. On failure the response has already been written.
func checkProject(ctx *gin.Context, action authz.Action) (models.Project, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.Project{}, false
	}

	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Project{}, false
	}

	project, err := store.NewProjectStore(db.DB).FindByID(projectID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return models.Project{}, false
	}

	membership, err := store.NewContributorStore(db.DB).MembershipFor(userID, project.AuthorID, project)

	if err != nil {
		log.Printf("Failed to resolve membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return models.Project{}, false
	}

	if !authorize(ctx, authz.ForProject(membership, action), "Project") {
		return models.Project{}, false
	}

	return project, true
}

func saveProject(ctx *gin.Context, project *models.Project) {
	if err := store.NewProjectStore(db.DB).Save(project); err != nil {
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	response, err := projectResponse(*project)

	if err != nil {
		log.Printf("Failed to build project response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
