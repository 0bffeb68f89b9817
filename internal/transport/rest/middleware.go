package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tutorhub/internal/domain"
)

const (
	authorizationHeader = "Authorization"
	requestIDHeader     = "X-Request-Id"
	actorCtx            = "actor"
	requestIDCtx        = "request_id"
)

func (h *Handler) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(requestIDCtx, id)
		c.Writer.Header().Set(requestIDHeader, id)

		c.Next()
	}
}

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()

		logger := h.logger.With(
			zap.String("request_id", c.GetString(requestIDCtx)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
		)

		if status >= 500 {
			logger.Error("server error")
		} else if status >= 400 {
			logger.Warn("client error")
		} else {
			logger.Info("request processed")
		}
	}
}

func (h *Handler) errorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, err := range c.Errors {
			h.logger.Error("request error", zap.String("request_id", c.GetString(requestIDCtx)), zap.Error(err))
		}
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Content-Length, Accept-Encoding, Origin, Accept, X-Request-Id")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Request-Id, Retry-After")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		origin := c.Request.Header.Get("Origin")
		if origin != "" && c.Request.Header.Get(authorizationHeader) != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if header == "" {
			errorResponse(c, http.StatusUnauthorized, "пустой заголовок авторизации")
			return
		}

		headerParts := strings.Split(header, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" || headerParts[1] == "" {
			errorResponse(c, http.StatusUnauthorized, "неверный формат заголовка авторизации")
			return
		}

		actor, err := h.services.Auth.ParseToken(c.Request.Context(), headerParts[1])
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, "недействительный токен")
			return
		}

		c.Set(actorCtx, actor)

		c.Next()
	}
}

// roleMiddleware пропускает только пользователей с одной из перечисленных ролей.
func (h *Handler) roleMiddleware(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := getActor(c)
		if err != nil {
			unauthorizedResponse(c)
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		forbiddenResponse(c)
	}
}

// rateLimitMiddleware считает запросы пользователя в Redis. При недоступности Redis
// запрос пропускается, если включен RATE_LIMIT_FAIL_OPEN.
func (h *Handler) rateLimitMiddleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.limiter == nil {
			c.Next()
			return
		}

		actor, err := getActor(c)
		if err != nil {
			unauthorizedResponse(c)
			return
		}

		key := scope + ":" + strconv.FormatInt(actor.UserID, 10)
		allowed, err := h.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			if h.config != nil && !h.config.RateLimit.FailOpen {
				h.logger.Error("ошибка проверки лимита запросов", zap.String("key", key), zap.Error(err))
				errorResponse(c, http.StatusServiceUnavailable, "сервис временно недоступен")
				return
			}
			h.logger.Warn("лимит запросов не проверен, запрос пропущен", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			if h.config != nil {
				c.Header("Retry-After", strconv.Itoa(int(h.config.RateLimit.Window.Seconds())))
			}
			errorResponse(c, http.StatusTooManyRequests, "слишком много запросов, попробуйте позже")
			return
		}

		c.Next()
	}
}

func getActor(c *gin.Context) (domain.Actor, error) {
	value, exists := c.Get(actorCtx)
	if !exists {
		return domain.Actor{}, errors.New("пользователь не авторизован")
	}

	actor, ok := value.(domain.Actor)
	if !ok {
		return domain.Actor{}, errors.New("некорректные данные пользователя")
	}

	return actor, nil
}
