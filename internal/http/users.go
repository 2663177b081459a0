package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// Users defines user management operations exposed over HTTP.
type Users interface {
	GetUser(ctx context.Context, id uint) (*entities.User, error)
	GetAll(ctx context.Context) ([]entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	SaveUser(ctx context.Context, id uint, user *entities.User) (*entities.User, error)
	DeleteUser(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

type UsersController struct {
	users Users
}

func NewUsersController(users Users) *UsersController {
	return &UsersController{users: users}
}

// GetAllUsers handles GET /users
func (uc *UsersController) GetAllUsers(c *gin.Context) {
	users, err := uc.users.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id
func (uc *UsersController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := uc.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /users
func (uc *UsersController) CreateUser(c *gin.Context) {
	var user entities.User
	if err := c.ShouldBindJSON(&user); err != nil {
		respondBadRequest(c, "invalid user: "+err.Error())
		return
	}

	created, err := uc.users.CreateUser(c.Request.Context(), &user)
	if err != nil {
		respondServiceError(c, err, "create user")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// SaveUser replaces an existing user.
// PUT /users/:id
func (uc *UsersController) SaveUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var user entities.User
	if err := c.ShouldBindJSON(&user); err != nil {
		respondBadRequest(c, "invalid user: "+err.Error())
		return
	}

	saved, err := uc.users.SaveUser(c.Request.Context(), id, &user)
	if err != nil {
		respondServiceError(c, err, "save user")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteUser handles DELETE /users/:id
func (uc *UsersController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := uc.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAllUsers handles DELETE /users
func (uc *UsersController) DeleteAllUsers(c *gin.Context) {
	if err := uc.users.DeleteAll(c.Request.Context()); err != nil {
		respondServiceError(c, err, "delete all users")
		return
	}
	c.Status(http.StatusNoContent)
}
