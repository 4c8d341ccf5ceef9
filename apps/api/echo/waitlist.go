package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/heliumhq/dashboard-api/core/waitlist"
)

type waitlistApi struct {
	svc *waitlist.Service
}

func registerWaitlistAPI(g *echo.Group, svc *waitlist.Service) {
	api := waitlistApi{svc: svc}

	wg := g.Group("/waitlist")
	wg.GET("", api.query)
	wg.POST("/archive", api.archive)
}

func (api *waitlistApi) query(ctx echo.Context) error {
	entries, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying waitlist")
	}
	if entries == nil {
		entries = []waitlist.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

// archive archives the given entries; with no IDs every notified entry is
// archived.
func (api *waitlistApi) archive(ctx echo.Context) error {
	var data ArchiveWaitlistRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ArchiveWaitlistRequest")
	}

	n, err := api.svc.Archive(ctx.Request().Context(), data.IDs)
	if err != nil {
		return errors.Wrap(err, "archiving waitlist entries")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: fmt.Sprintf("archived %d waitlist entries", n)})
}

type ArchiveWaitlistRequest struct {
	IDs []string `json:"ids"`
}
