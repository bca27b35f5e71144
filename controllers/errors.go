package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelkov/bloghub/services"
	"github.com/avelkov/bloghub/utils"
)

// serviceError maps service-layer sentinel errors onto HTTP status
// codes and the uniform JSON envelope. Anything unrecognized is logged
// and surfaced as a 500 without leaking internals.
func serviceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40400, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40300, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(ctx, http.StatusUnauthorized, 40110, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		utils.Error(ctx, http.StatusConflict, 40910, err.Error())
	case errors.Is(err, services.ErrAlreadyLiked):
		utils.Error(ctx, http.StatusConflict, 40920, err.Error())
	case errors.Is(err, services.ErrNotLiked):
		utils.Error(ctx, http.StatusConflict, 40921, err.Error())
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorw("unexpected service error",
				"path", ctx.Request.URL.Path,
				"err", err,
			)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}
