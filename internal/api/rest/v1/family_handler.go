package v1

import (
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/families"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

const defaultActivityLimit = 50

// FamilyHandler defines the interface for family workspaces
type FamilyHandler interface {
	Create(ctx *gin.Context)
	ListMine(ctx *gin.Context)
	AddMember(ctx *gin.Context)
	ListMembers(ctx *gin.Context)
	ListActivity(ctx *gin.Context)
}

type familyHandler struct {
	familyService families.FamilyService
}

// NewFamilyHandler creates a new FamilyHandler
func NewFamilyHandler(familyService families.FamilyService) FamilyHandler {
	return &familyHandler{familyService: familyService}
}

func (handler *familyHandler) Create(ctx *gin.Context) {
	var request CreateFamilyRequest
	if !bindRequest(ctx, &request) {
		return
	}

	family, err := handler.familyService.Create(ctx.Request.Context(), currentPrincipal(ctx), request.Name)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newFamilyResponse(family))
}

func (handler *familyHandler) ListMine(ctx *gin.Context) {
	list, err := handler.familyService.ListMine(ctx.Request.Context(), currentPrincipal(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []FamilyResponse{}
	for _, family := range list {
		listResponse = append(listResponse, newFamilyResponse(family))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *familyHandler) AddMember(ctx *gin.Context) {
	var request AddMemberRequest
	if !bindRequest(ctx, &request) {
		return
	}

	member, err := handler.familyService.AddMember(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), request.UserID, families.MemberRole(request.Role))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newMemberResponse(member))
}

func (handler *familyHandler) ListMembers(ctx *gin.Context) {
	members, err := handler.familyService.ListMembers(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []MemberResponse{}
	for _, member := range members {
		listResponse = append(listResponse, newMemberResponse(member))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *familyHandler) ListActivity(ctx *gin.Context) {
	limit := strutil.ConvertToIntDefault(ctx.Query("limit"), defaultActivityLimit)

	activity, err := handler.familyService.ListActivity(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), limit)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []ActivityResponse{}
	for _, entry := range activity {
		listResponse = append(listResponse, newActivityResponse(entry))
	}
	ctx.JSON(http.StatusOK, listResponse)
}
