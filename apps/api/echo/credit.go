package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/heliumhq/dashboard-api/core"
	"github.com/heliumhq/dashboard-api/core/credit"
)

type creditApi struct {
	svc        *credit.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerCreditAPI(g *echo.Group, svc *credit.Service, validate *validator.Validate, translator ut.Translator) {
	api := creditApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	cg := g.Group("/credits")
	cg.GET("/balances", api.queryBalances)
	cg.GET("/purchases", api.queryPurchases)
	cg.POST("/assign", api.assign)
}

func (api *creditApi) queryBalances(ctx echo.Context) error {
	userID := core.CleanString(ctx.QueryParam("user_id"))

	balances, err := api.svc.QueryBalances(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "querying balances")
	}
	if balances == nil {
		balances = []credit.Balance{}
	}
	return ctx.JSON(http.StatusOK, balances)
}

func (api *creditApi) queryPurchases(ctx echo.Context) error {
	status := core.CleanString(ctx.QueryParam("status"), true /* lower */)

	purchases, err := api.svc.QueryPurchases(ctx.Request().Context(), status)
	if err != nil {
		return errors.Wrap(err, "querying purchases")
	}
	if purchases == nil {
		purchases = []credit.Purchase{}
	}
	return ctx.JSON(http.StatusOK, purchases)
}

func (api *creditApi) assign(ctx echo.Context) error {
	var data credit.AssignCredits
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignCredits")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	bal, err := api.svc.Assign(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "assigning credits")
	}
	return ctx.JSON(http.StatusOK, AssignCreditsResponse{
		Success: true,
		Message: "credits assigned",
		Balance: bal,
	})
}

type AssignCreditsResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Balance credit.Balance `json:"balance"`
}
