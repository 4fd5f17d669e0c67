package publicapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"worklog-backend/controllers"
	reporthandler "worklog-backend/lib/report"
	"worklog-backend/middleware"
	"worklog-backend/models"
	apimodels "worklog-backend/models/api"
	reportapimodels "worklog-backend/models/api/report"
)

type publicApprovalApiController struct {
	controllers.BaseAPIController
	handler reporthandler.Provider
}

func InitPublicApprovalApiRouters(app *fiber.App, handler reporthandler.Provider) {
	controller := publicApprovalApiController{handler: handler}
	app.Route("approval", func(router fiber.Router) {
		router.Route(":token", func(tokenRoute fiber.Router) {
			tokenRoute.Get("", controller.getReport)
			tokenRoute.Post("", controller.decide)
		})
	})
}

// @Summary Просмотр отчета по ссылке
// @Tags Публичное согласование
// @Description Просмотр отчета внешним получателем по токену из письма
// @Param   token          		path    string  true    "access token"
// @Success 200 {object} apimodels.Response{data=reportapimodels.PublicReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/approval/{token} [get]
func (c *publicApprovalApiController) getReport(ctx *fiber.Ctx) error {
	token, err := c.GetIDByKey(ctx, "token")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := c.handler.ResolveByToken(middleware.GetPublicActor(ctx), token)
	if err != nil {
		return c.sendPublicError(ctx, err, "Ошибка получения отчета по токену")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Решение по отчету
// @Tags Публичное согласование
// @Description Решение внешнего получателя: zatwierdź / odrzuć / skomentuj
// @Param   token          		path    string  true    "access token"
// @Param	body body	 reportapimodels.PublicDecisionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/approval/{token} [post]
func (c *publicApprovalApiController) decide(ctx *fiber.Ctx) error {
	token, err := c.GetIDByKey(ctx, "token")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload reportapimodels.PublicDecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := middleware.GetPublicActor(ctx)
	actor.Name = payload.DecidedBy
	if err = c.handler.DecideByToken(actor, token, payload); err != nil {
		return c.sendPublicError(ctx, err, "Ошибка сохранения решения по отчету")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// sendPublicError отвечает внешнему получателю по-польски и без деталей,
// токен и внутренние ошибки наружу не раскрываются.
func (c *publicApprovalApiController) sendPublicError(ctx *fiber.Ctx, err error, hMsg string) error {
	cause := errors.Cause(err)
	switch {
	case errors.Is(cause, models.ErrReportNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("Nie znaleziono raportu"))
	case errors.Is(cause, models.ErrAlreadyDecided), errors.Is(cause, models.ErrInvalidTransition):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("Raport nie może już zostać zmieniony"))
	}
	c.GetLogger(ctx).WithError(err).Error(hMsg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("Wystąpił błąd, spróbuj ponownie później"))
}
