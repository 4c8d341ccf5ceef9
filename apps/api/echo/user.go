package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/heliumhq/dashboard-api/core/bulkops"
	"github.com/heliumhq/dashboard-api/core/profile"
)

type userApi struct {
	svc        *profile.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerUserAPI(g *echo.Group, svc *profile.Service, validate *validator.Validate, translator ut.Translator) {
	api := userApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	ug := g.Group("/users")
	ug.GET("", api.query)
	ug.POST("", api.create)
	ug.GET("/export", api.export)
	ug.POST("/bulk-delete", api.destroyMultiple)
	ug.POST("/fetch-emails", api.fetchEmails)
	ug.DELETE("/:id", api.destroy)
}

// Handlers

func (api *userApi) query(ctx echo.Context) error {
	profiles, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	return ctx.JSON(http.StatusOK, profiles)
}

func (api *userApi) create(ctx echo.Context) error {
	var data profile.NewProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProfile")
	}
	if err := data.Validate(api.validate, api.translator, api.svc); err != nil {
		return err
	}

	p, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *userApi) destroy(ctx echo.Context) error {
	err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == profile.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting user")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *userApi) destroyMultiple(ctx echo.Context) error {
	var data BulkTargetsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkTargetsRequest")
	}

	summary, err := api.svc.BulkDelete(ctx.Request().Context(), data.UserIDs)
	if err != nil {
		return errors.Wrap(err, "bulk-deleting users")
	}
	return ctx.JSON(http.StatusOK, newBulkOpResponse("deleted", summary))
}

func (api *userApi) fetchEmails(ctx echo.Context) error {
	var data BulkTargetsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkTargetsRequest")
	}

	contacts, err := api.svc.Contacts(ctx.Request().Context(), data.UserIDs)
	if err != nil {
		return errors.Wrap(err, "fetching emails")
	}
	if contacts == nil {
		contacts = []profile.Contact{}
	}
	return ctx.JSON(http.StatusOK, contacts)
}

func (api *userApi) export(ctx echo.Context) error {
	profiles, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="users.csv"`)
	return ctx.Blob(http.StatusOK, "text/csv", []byte(profile.CSV(profiles)))
}

// Shared request/response shapes

type (
	// BulkTargetsRequest carries the user IDs a bulk action applies to.
	BulkTargetsRequest struct {
		UserIDs []string `json:"user_ids"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	// BulkOpResponse reports the settled outcome of a bulk action.
	BulkOpResponse struct {
		Success      bool     `json:"success"`
		Message      string   `json:"message"`
		SuccessCount int      `json:"success_count"`
		FailureCount int      `json:"failure_count"`
		Errors       []string `json:"errors,omitempty"`
	}
)

func newBulkOpResponse(action string, summary bulkops.Summary) BulkOpResponse {
	return BulkOpResponse{
		Success:      !summary.TotalFailure(),
		Message:      fmt.Sprintf("%s %d, failed %d", action, summary.SuccessCount, summary.FailureCount),
		SuccessCount: summary.SuccessCount,
		FailureCount: summary.FailureCount,
		Errors:       summary.Errors,
	}
}
