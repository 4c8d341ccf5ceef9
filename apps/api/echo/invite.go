package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/heliumhq/dashboard-api/core/invite"
)

type inviteApi struct {
	svc        *invite.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerInviteAPI(g *echo.Group, svc *invite.Service, validate *validator.Validate, translator ut.Translator) {
	api := inviteApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	ig := g.Group("/invite-codes")
	ig.GET("", api.query)
	ig.POST("", api.generate)
	ig.POST("/bulk-delete", api.destroyMultiple)
	ig.POST("/archive-used", api.archiveUsed)
	ig.DELETE("/:id", api.destroy)
	ig.POST("/:id/archive", api.archive)
	ig.POST("/:id/unarchive", api.unarchive)
}

func (api *inviteApi) query(ctx echo.Context) error {
	codes, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying invite codes")
	}
	if codes == nil {
		codes = []invite.Code{}
	}
	return ctx.JSON(http.StatusOK, codes)
}

func (api *inviteApi) generate(ctx echo.Context) error {
	var data invite.GenerateCodes
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateCodes")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	codes, err := api.svc.Generate(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "generating invite codes")
	}
	return ctx.JSON(http.StatusCreated, codes)
}

func (api *inviteApi) destroy(ctx echo.Context) error {
	err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == invite.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting invite code")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *inviteApi) destroyMultiple(ctx echo.Context) error {
	var data BulkCodesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkCodesRequest")
	}

	summary, err := api.svc.BulkDelete(ctx.Request().Context(), data.IDs)
	if err != nil {
		return errors.Wrap(err, "bulk-deleting invite codes")
	}
	return ctx.JSON(http.StatusOK, newBulkOpResponse("deleted", summary))
}

func (api *inviteApi) archive(ctx echo.Context) error {
	return api.setArchived(ctx, true)
}

func (api *inviteApi) unarchive(ctx echo.Context) error {
	return api.setArchived(ctx, false)
}

func (api *inviteApi) setArchived(ctx echo.Context, archived bool) error {
	err := api.svc.Archive(ctx.Request().Context(), ctx.Param("id"))
	if !archived {
		err = api.svc.Unarchive(ctx.Request().Context(), ctx.Param("id"))
	}
	if err != nil {
		if errors.Cause(err) == invite.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "archiving invite code")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "invite code updated"})
}

func (api *inviteApi) archiveUsed(ctx echo.Context) error {
	n, err := api.svc.ArchiveUsed(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "archiving used invite codes")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: fmt.Sprintf("archived %d used invite codes", n)})
}

type BulkCodesRequest struct {
	IDs []string `json:"ids"`
}
