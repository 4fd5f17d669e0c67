package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"worklog-backend/config"
	"worklog-backend/models"
)

func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
	})
}

func GetUserID(ctx *fiber.Ctx) string {
	return getClaim(ctx, "sub")
}

func GetUserName(ctx *fiber.Ctx) string {
	return getClaim(ctx, "name")
}

// GetAdminActor собирает данные действующего администратора для журнала действий.
func GetAdminActor(ctx *fiber.Ctx) models.ActorMeta {
	return models.AdminActor(GetUserID(ctx), GetUserName(ctx), ctx.IP(), string(ctx.Request().Header.UserAgent()))
}

// GetPublicActor - аноним по публичной ссылке, известны только адрес и браузер.
func GetPublicActor(ctx *fiber.Ctx) models.ActorMeta {
	return models.PublicActor("", ctx.IP(), string(ctx.Request().Header.UserAgent()))
}

func getClaim(ctx *fiber.Ctx, key string) string {
	user, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	value, _ := claims[key].(string)
	return value
}
