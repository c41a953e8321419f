package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/softdesk-dev/softdesk/db"
	"github.com/softdesk-dev/softdesk/internal/auth"
	"github.com/softdesk-dev/softdesk/internal/authz"
	"github.com/softdesk-dev/softdesk/internal/models"
	"github.com/softdesk-dev/softdesk/internal/store"
	"github.com/softdesk-dev/softdesk/internal/types"
	"github.com/softdesk-dev/softdesk/internal/utils"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	Age             *int   `json:"age" binding:"required"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
}

type UpdateUserRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Age             *int   `json:"age" binding:"required"`
	CanBeContacted  *bool  `json:"can_be_contacted" binding:"required"`
	CanDataBeShared *bool  `json:"can_data_be_shared" binding:"required"`
}

type PatchUserRequest struct {
	Username        *string `json:"username"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Age             *int    `json:"age"`
	CanBeContacted  *bool   `json:"can_be_contacted"`
	CanDataBeShared *bool   `json:"can_data_be_shared"`
}

// CreateUser handles public self-registration with the RGPD consent fields.
func CreateUser(ctx *gin.Context) {
	var body CreateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Password != body.PasswordConfirm {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	if *body.Age < models.MinimumAge {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnderage.Error()})
		return
	}

	body.Username = strings.TrimSpace(body.Username)
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	if body.Username == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username cannot be empty"})
		return
	}

	users := store.NewUserStore(db.DB)

	if _, err := users.FindByUsername(body.Username); err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := auth.HashPassword(body.Password)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newUser := models.User{
		Username:        body.Username,
		Email:           body.Email,
		PasswordHash:    passwordHash,
		Age:             body.Age,
		CanBeContacted:  body.CanBeContacted,
		CanDataBeShared: body.CanDataBeShared,
	}

	if err := users.Create(&newUser); err != nil {
		if errors.Is(err, models.ErrUnderage) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, types.NewUserResponse(newUser))
}

func ListUsers(ctx *gin.Context) {
	users, err := store.NewUserStore(db.DB).List()

	if err != nil {
		log.Printf("Failed to list users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetUser(ctx *gin.Context) {
	user, ok := findUser(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

func UpdateUser(ctx *gin.Context) {
	currentUserID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, ok := findUser(ctx)

	if !ok {
		return
	}

	if !authorize(ctx, authz.ForUser(user.ID == currentUserID, authz.ActionUpdate), "User") {
		return
	}

	var body UpdateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user.Username = strings.TrimSpace(body.Username)
	user.Email = strings.ToLower(strings.TrimSpace(body.Email))
	user.Age = body.Age
	user.CanBeContacted = *body.CanBeContacted
	user.CanDataBeShared = *body.CanDataBeShared

	saveUser(ctx, &user)
}

func PatchUser(ctx *gin.Context) {
	currentUserID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, ok := findUser(ctx)

	if !ok {
		return
	}

	if !authorize(ctx, authz.ForUser(user.ID == currentUserID, authz.ActionUpdate), "User") {
		return
	}

	patchUser(ctx, &user)
}

// Profile serves the RGPD profile view: readable by any authenticated
// caller, writable only by the account owner.
func Profile(ctx *gin.Context) {
	user, ok := findUser(ctx)

	if !ok {
		return
	}

	if ctx.Request.Method == http.MethodGet {
		ctx.JSON(http.StatusOK, types.NewUserResponse(user))
		return
	}

	currentUserID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !authorize(ctx, authz.ForUser(user.ID == currentUserID, authz.ActionUpdate), "User") {
		return
	}

	patchUser(ctx, &user)
}

// DeleteUser implements the right to be forgotten. Only the account owner
// may delete the account; the deletion cascades to everything authored or
// contributed, and clears assignments instead of deleting assigned issues.
func DeleteUser(ctx *gin.Context) {
	currentUserID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, ok := findUser(ctx)

	if !ok {
		return
	}

	if !authorize(ctx, authz.ForUser(user.ID == currentUserID, authz.ActionDelete), "User") {
		return
	}

	if err := store.NewUserStore(db.DB).Delete(user.ID); err != nil {
		log.Printf("Failed to delete user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func findUser(ctx *gin.Context) (models.User, bool) {
	userID, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.User{}, false
	}

	user, err := store.NewUserStore(db.DB).FindByID(userID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			log.Printf("Failed to fetch user: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return models.User{}, false
	}

	return user, true
}

func patchUser(ctx *gin.Context, user *models.User) {
	var body PatchUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Username != nil {
		user.Username = strings.TrimSpace(*body.Username)
	}

	if body.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*body.Email))
	}

	if body.Age != nil {
		user.Age = body.Age
	}

	if body.CanBeContacted != nil {
		user.CanBeContacted = *body.CanBeContacted
	}

	if body.CanDataBeShared != nil {
		user.CanDataBeShared = *body.CanDataBeShared
	}

	saveUser(ctx, user)
}

func saveUser(ctx *gin.Context, user *models.User) {
	if user.Username == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username cannot be empty"})
		return
	}

	users := store.NewUserStore(db.DB)

	if existing, err := users.FindByUsername(user.Username); err == nil && existing.ID != user.ID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("Database error when checking existing username: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := users.Save(user); err != nil {
		if errors.Is(err, models.ErrUnderage) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		log.Printf("Failed to update user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(*user))
}
