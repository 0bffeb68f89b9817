package rest

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/domain"
)

// idParam читает положительный идентификатор из пути; при ошибке ответ уже отправлен.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequestResponse(c, "неверный формат ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) dateQuery(c *gin.Context, name string) (*domain.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		h.handleError(c, err)
		return nil, false
	}
	return &d, true
}

func (h *Handler) requiredDateQuery(c *gin.Context, name string) (domain.Date, bool) {
	d, ok := h.dateQuery(c, name)
	if !ok {
		return domain.Date{}, false
	}
	if d == nil {
		badRequestResponse(c, "параметр "+name+" обязателен")
		return domain.Date{}, false
	}
	return *d, true
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil || v < 0 {
		return def
	}
	return v
}
