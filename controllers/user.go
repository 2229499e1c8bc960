package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp-backend/models"
	"travelapp-backend/policy"
	"travelapp-backend/services"
	"travelapp-backend/utils"
)

type UserInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	IsStaff   *bool   `json:"is_staff"`
	IsActive  *bool   `json:"is_active"`
}

// UserController is the administrators' user management.
type UserController struct {
	Users    *services.UserService
	PageSize int
}

func (uc *UserController) List(c *gin.Context) {
	opts, ok := listOptions(c, uc.PageSize)
	if !ok {
		return
	}
	result, err := uc.Users.List(c.Request.Context(), utils.CurrentCaller(c), opts)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	respondPage(c, opts, result, identity[models.User])
}

func (uc *UserController) Create(c *gin.Context) {
	caller := utils.CurrentCaller(c)
	if err := policy.Authorize(caller, policy.OpCreate, policy.EntityUser, nil); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	var input UserInput
	if !bindJSON(c, &input) {
		return
	}
	if input.Username == nil {
		utils.RespondWithAppError(c, requiredField("username"))
		return
	}
	if input.Password == nil {
		utils.RespondWithAppError(c, requiredField("password"))
		return
	}

	user, err := uc.Users.Create(c.Request.Context(), caller, services.CreateUserInput{
		Username:  *input.Username,
		Email:     deref(input.Email),
		Password:  *input.Password,
		FirstName: deref(input.FirstName),
		LastName:  deref(input.LastName),
		Phone:     deref(input.Phone),
		IsStaff:   input.IsStaff != nil && *input.IsStaff,
		IsActive:  input.IsActive,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (uc *UserController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := uc.Users.Get(c.Request.Context(), utils.CurrentCaller(c), id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input UserInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := uc.Users.Update(c.Request.Context(), utils.CurrentCaller(c), id, services.UserPatch{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		IsStaff:   input.IsStaff,
		IsActive:  input.IsActive,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	deleted, err := uc.Users.Delete(c.Request.Context(), utils.CurrentCaller(c), id)
	respondDeleted(c, deleted, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
