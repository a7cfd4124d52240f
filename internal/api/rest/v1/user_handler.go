package v1

import (
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// UserHandler defines the interface for account administration
type UserHandler interface {
	List(ctx *gin.Context)
	Update(ctx *gin.Context)
}

type userHandler struct {
	userService users.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService users.UserService) UserHandler {
	return &userHandler{userService: userService}
}

// List handles the GET request listing accounts
// @Summary List accounts
// @Tags User
// @Produce json
// @Param role query string false "Role"
// @Param status query string false "Account status"
// @Param search query string false "Matches email or name"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {object} UserListResponse
// @Failure 403 {object} ErrorResponse
// @Router /users [get]
func (handler *userHandler) List(ctx *gin.Context) {
	query := users.NewUserQuery()

	if role := ctx.Query("role"); len(role) > 0 {
		query.Role = users.Role(role)
	}
	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = users.Status(status)
	}
	query.Search = ctx.Query("search")
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}
	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}

	accounts, total, err := handler.userService.List(ctx.Request.Context(), currentPrincipal(ctx), query)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []UserResponse{}
	for _, account := range accounts {
		listResponse = append(listResponse, newUserResponse(account))
	}
	ctx.JSON(http.StatusOK, UserListResponse{Users: listResponse, Total: total})
}

// Update handles the PATCH request changing the role or status of an account
// @Summary Change role or status
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param requestBody body UpdateUserRequest true "Changes"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [patch]
func (handler *userHandler) Update(ctx *gin.Context) {
	var request UpdateUserRequest
	if !bindRequest(ctx, &request) {
		return
	}

	var role *users.Role
	if request.Role != nil {
		r := users.Role(*request.Role)
		role = &r
	}
	var status *users.Status
	if request.Status != nil {
		s := users.Status(*request.Status)
		status = &s
	}

	user, err := handler.userService.UpdateRoleStatus(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), role, status)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newUserResponse(user))
}
