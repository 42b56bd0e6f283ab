package httpapi

import (
	"errors"

	"github.com/kataras/iris/v12"
	"github.com/wisteria0793/scorpion/internal/domain"
)

func writeError(ctx iris.Context, err error) {
	var validationErr *domain.ValidationError
	var syncErr *domain.SyncError

	switch {
	case errors.As(err, &validationErr):
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": validationErr.Reason})
	case errors.Is(err, domain.ErrPropertyNotFound):
		ctx.StopWithJSON(iris.StatusNotFound, iris.Map{"error": "property not found"})
	case errors.As(err, &syncErr):
		ctx.StopWithJSON(iris.StatusBadGateway, iris.Map{"error": syncErr.Error()})
	default:
		ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"error": "internal error"})
	}
}
