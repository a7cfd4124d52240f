package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type validatable interface {
	Validate() error
}

// bindRequest decodes the JSON body into request and validates it,
// writing a 400 and returning false on failure
func bindRequest(ctx *gin.Context, request validatable) bool {
	if err := ctx.ShouldBindJSON(request); err != nil {
		abortBadRequest(ctx, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return validateRequest(ctx, request)
}

// bindOptionalRequest is bindRequest for endpoints whose body may be omitted
func bindOptionalRequest(ctx *gin.Context, request validatable) bool {
	if ctx.Request.ContentLength == 0 {
		return validateRequest(ctx, request)
	}
	return bindRequest(ctx, request)
}

func validateRequest(ctx *gin.Context, request validatable) bool {
	if err := request.Validate(); err != nil {
		abortBadRequest(ctx, err.Error())
		return false
	}
	return true
}
