package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tutorhub/config"
	"tutorhub/internal/domain"
	"tutorhub/internal/service"
)

// RateLimiter ограничивает частоту запросов по ключу клиента.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ReadinessCheck проверяет доступность внешней зависимости для /readyz.
type ReadinessCheck func(ctx context.Context) error

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
	limiter  RateLimiter
	checks   map[string]ReadinessCheck
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config, limiter RateLimiter, checks map[string]ReadinessCheck) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
		limiter:  limiter,
		checks:   checks,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.requestIDMiddleware())

	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/healthz", h.healthz)
	router.GET("/readyz", h.readyz)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	api := router.Group("/api/v1")
	{
		tutors := api.Group("/tutors")
		{
			tutors.POST("/me/availability", h.authMiddleware(), h.roleMiddleware(domain.UserRoleTutor), h.expandAvailability)

			tutors.GET("/:id", h.getTutor)
			tutors.GET("/:id/courses", h.listTutorCourses)
			tutors.GET("/:id/schedule", h.listSchedule)
			tutors.GET("/:id/open-slots", h.listOpenSlots)
			tutors.GET("/:id/conflicts", h.checkConflict)
		}

		entries := api.Group("/schedule-entries")
		entries.Use(h.authMiddleware(), h.roleMiddleware(domain.UserRoleTutor))
		{
			entries.PATCH("/:id/cancel", h.cancelScheduleEntry)
			entries.DELETE("/:id", h.deleteScheduleEntry)
		}

		bookings := api.Group("/bookings")
		bookings.Use(h.authMiddleware())
		{
			bookings.POST("", h.roleMiddleware(domain.UserRoleStudent), h.rateLimitMiddleware("bookings"), h.createBooking)
			bookings.GET("", h.listBookings)
			bookings.GET("/:id", h.getBooking)
			bookings.PATCH("/:id/status", h.updateBookingStatus)
		}

		sessions := api.Group("/sessions")
		sessions.Use(h.authMiddleware())
		{
			sessions.PATCH("/:id/status", h.updateSessionStatus)
			sessions.PUT("/:id/note", h.putSessionNote)
		}

		admin := api.Group("/admin")
		admin.Use(h.authMiddleware(), h.roleMiddleware(domain.UserRoleAdmin))
		{
			admin.POST("/bookings/:id/sync-status", h.syncBookingStatus)
		}
	}
}

// @Summary Проверка живости
// @Tags Служебные
// @Produce json
// @Success 200 {object} messageResponseType
// @Router /healthz [get]
func (h *Handler) healthz(c *gin.Context) {
	messageResponse(c, http.StatusOK, "ok")
}

// @Summary Проверка готовности
// @Description Проверяет доступность Postgres и Redis
// @Tags Служебные
// @Produce json
// @Success 200 {object} successResponseBody
// @Failure 503 {object} successResponseBody
// @Router /readyz [get]
func (h *Handler) readyz(c *gin.Context) {
	statuses := make(map[string]string, len(h.checks))
	ready := true

	for name, check := range h.checks {
		if err := check(c.Request.Context()); err != nil {
			h.logger.Warn("зависимость недоступна", zap.String("dependency", name), zap.Error(err))
			statuses[name] = err.Error()
			ready = false
			continue
		}
		statuses[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, successResponseBody{Status: "error", Data: statuses})
		return
	}
	successResponse(c, http.StatusOK, statuses)
}
