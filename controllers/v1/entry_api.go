package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"worklog-backend/controllers"
	entryhandler "worklog-backend/lib/entry"
	reporthandler "worklog-backend/lib/report"
	apimodels "worklog-backend/models/api"
	entryapimodels "worklog-backend/models/api/entry"
)

type entryApiController struct {
	controllers.BaseAPIController
	handler       entryhandler.Provider
	reportHandler reporthandler.Provider
}

func InitEntryApiRouters(app *fiber.App, handler entryhandler.Provider, reportHandler reporthandler.Provider) {
	controller := entryApiController{handler: handler, reportHandler: reportHandler}
	app.Route("entries", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("eligible", controller.listEligible)
	})
}

// @Summary Добавление записи о времени
// @Tags Записи о времени
// @Description Добавление записи о рабочем времени сотрудника
// @Param   Authorization		header	string	true	"Authorization token"
// @Param	body body	 entryapimodels.EntryCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/entries [post]
func (c *entryApiController) create(ctx *fiber.Ctx) error {
	var payload entryapimodels.EntryCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := c.handler.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления записи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Свободные записи
// @Tags Записи о времени
// @Description Записи дополнительных часов проекта, не включенные ни в один отчет
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   project_id  		query   string  true    "project ID"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.EligibleEntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/entries/eligible [get]
func (c *entryApiController) listEligible(ctx *fiber.Ctx) error {
	projectID := ctx.Query("project_id")
	if projectID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан проект"))
	}
	result, err := c.reportHandler.ListEligibleEntries(projectID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка записей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
