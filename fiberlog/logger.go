package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const logMessage = "запрос api"

// New возвращает middleware, которое логирует каждый запрос одной записью
// с полями из cfg.Tags. Уровень записи зависит от кода ответа.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	d := new(data)
	d.pid = os.Getpid()
	ftm := getFuncTagMap(cfg, d)
	return func(c *fiber.Ctx) error {
		d.start = time.Now()
		err := c.Next()
		d.end = time.Now()
		// preflight-запросы не логируем
		if c.Method() == fiber.MethodOptions {
			return err
		}
		fields := collectFields(ftm, c, d)
		entry := log.WithFields(fields)
		if cfg.Logger != nil {
			entry = cfg.Logger.WithFields(fields)
		}
		switch {
		case c.Response().StatusCode() >= 500:
			entry.Error(logMessage)
		case c.Response().StatusCode() >= 300:
			entry.Warn(logMessage)
		default:
			entry.Info(logMessage)
		}
		return err
	}
}

// collectFields вычисляет значения тегов, пустые строки опускаются
func collectFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields, len(ftm))
	for k, ft := range ftm {
		value := ft(c, d)
		if s, ok := value.(string); ok {
			if s != "" {
				f[k] = s
			}
			continue
		}
		f[k] = value
	}
	return f
}
