package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"clothesmanager/internal/config"
	"clothesmanager/internal/domain/model"
	"clothesmanager/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const CtxActorKey = "actor" // usecase.Actor

// bearerAuth用のJWT検証ミドルウェア。
// claimsからActorを組み立ててcontextに入れる。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
			}

			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
			}

			userID, err := parseInt64(claims["sub"])
			if err != nil || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
			}

			username, _ := claims["username"].(string)
			if username == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
			}

			role, _ := claims["role"].(string)
			if !model.Role(role).IsValid() {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
			}

			actor := usecase.Actor{
				UserID:   userID,
				Username: username,
				Role:     model.Role(role),
			}

			// store_idはSUPER_ADMINだと無いことがある
			if raw, exists := claims["store_id"]; exists && raw != nil {
				storeID, err := parseInt64(raw)
				if err == nil && storeID > 0 {
					actor.StoreID = &storeID
				}
			}

			c.Set(CtxActorKey, actor)
			return next(c)
		}
	}
}

// contextからActorを取り出す。handlerが使う。
func ActorFromContext(c echo.Context) (usecase.Actor, bool) {
	actor, ok := c.Get(CtxActorKey).(usecase.Actor)
	return actor, ok
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func parseInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case int64:
		return t, nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid number")
	}
}
