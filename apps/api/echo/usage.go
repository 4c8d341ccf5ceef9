package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/heliumhq/dashboard-api/core/activity"
)

type usageApi struct {
	svc        *activity.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerUsageAPI(g *echo.Group, svc *activity.Service, validate *validator.Validate, translator ut.Translator) {
	api := usageApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	g.POST("/usage/aggregated", api.aggregated)
}

// aggregated serves the per-user usage report: paged, searchable and
// filterable by activity bucket.
func (api *usageApi) aggregated(ctx echo.Context) error {
	var data activity.OverviewQuery
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to OverviewQuery")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	overview, err := api.svc.Overview(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "building usage overview")
	}
	if overview.Rows == nil {
		overview.Rows = []activity.UserRow{}
	}
	return ctx.JSON(http.StatusOK, overview)
}
