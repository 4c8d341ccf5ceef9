package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/heliumhq/dashboard-api/core"
	"github.com/heliumhq/dashboard-api/core/campaign"
)

type emailApi struct {
	svc        *campaign.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerEmailAPI(g *echo.Group, svc *campaign.Service, validate *validator.Validate, translator ut.Translator) {
	api := emailApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	eg := g.Group("/emails")
	eg.POST("/bulk", api.sendBulk)
	eg.POST("/individual", api.sendIndividual)
}

func (api *emailApi) sendBulk(ctx echo.Context) error {
	var data BulkEmailRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkEmailRequest")
	}
	if err := data.Content.Validate(api.validate, api.translator); err != nil {
		return err
	}

	summary, err := api.svc.SendBulk(ctx.Request().Context(), data.Content, data.UserIDs)
	if err != nil {
		return errors.Wrap(err, "sending bulk email")
	}
	return ctx.JSON(http.StatusOK, newBulkOpResponse("sent", summary))
}

func (api *emailApi) sendIndividual(ctx echo.Context) error {
	var data IndividualEmailRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IndividualEmailRequest")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	if err := api.svc.SendIndividual(ctx.Request().Context(), data.Email, data.Content); err != nil {
		return errors.Wrap(err, "sending email")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "email sent to " + data.Email})
}

type (
	BulkEmailRequest struct {
		campaign.Content
		UserIDs []string `json:"user_ids"`
	}

	IndividualEmailRequest struct {
		campaign.Content
		Email string `json:"email" validate:"required,email"`
	}
)

func (r *IndividualEmailRequest) Validate(validate *validator.Validate, translator ut.Translator) error {
	r.Email = core.CleanString(r.Email, true /* lower */)
	if err := r.Content.Validate(validate, translator); err != nil {
		return err
	}
	return validate.Var(r.Email, "required,email")
}
