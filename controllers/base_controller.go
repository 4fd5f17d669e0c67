package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"worklog-backend/models"
	apimodels "worklog-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("не указан идентификатор (%s)", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path()).
		WithField("ip", ctx.IP())
}

// SendError возвращает ошибки бизнес-логики как 400/404 с исходным текстом,
// остальное скрывается за общим сообщением.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, hMsg string) error {
	cause := errors.Cause(err)
	switch {
	case errors.Is(cause, models.ErrReportNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(cause.Error()))
	case errors.Is(cause, models.ErrNoEligibleItems),
		errors.Is(cause, models.ErrInvalidTransition),
		errors.Is(cause, models.ErrAlreadyDecided):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(cause.Error()))
	}
	logger.WithError(err).Error(hMsg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(hMsg))
}
