package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/domain"
)

// @Summary Забронировать занятия
// @Description Создает заявку с одним или несколькими занятиями. Пересечение хотя бы одного занятия отклоняет всю заявку.
// @Tags Бронирования
// @Accept json
// @Produce json
// @Param input body domain.CreateBookingDTO true "Данные заявки"
// @Success 201 {object} domain.BookingRequest
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Репетитор или курс не найден"
// @Failure 409 {object} conflictResponseBody "Время занято"
// @Failure 429 {object} errorResponseBody "Слишком много запросов"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateBookingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	booking, err := h.services.Booking.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	createdResponse(c, booking)
}

// @Summary Список заявок
// @Description Студент видит свои заявки, репетитор адресованные ему
// @Tags Бронирования
// @Produce json
// @Param status query string false "Статус заявки"
// @Param from query string false "Занятия не раньше даты YYYY-MM-DD"
// @Param to query string false "Занятия не позже даты YYYY-MM-DD"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /bookings [get]
func (h *Handler) listBookings(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	filter := domain.BookingFilter{
		Limit:  intQuery(c, "limit", domain.DefaultBookingPageSize),
		Offset: intQuery(c, "offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.BookingStatus(raw)
		filter.Status = &status
	}

	var ok bool
	if filter.From, ok = h.dateQuery(c, "from"); !ok {
		return
	}
	if filter.To, ok = h.dateQuery(c, "to"); !ok {
		return
	}

	// Сервис применяет те же границы; номер страницы считается по ним же.
	filter.Normalize()

	bookings, total, err := h.services.Booking.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if bookings == nil {
		bookings = []domain.BookingRequest{}
	}
	paginatedSuccessResponse(c, bookings, total, filter.Page(), filter.Limit)
}

// @Summary Заявка по ID
// @Tags Бронирования
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} domain.BookingRequest
// @Failure 403 {object} errorResponseBody "Пользователь не участник заявки"
// @Failure 404 {object} errorResponseBody "Заявка не найдена"
// @Security ApiKeyAuth
// @Router /bookings/{id} [get]
func (h *Handler) getBooking(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.services.Booking.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	successResponse(c, http.StatusOK, booking)
}

// @Summary Сменить статус заявки
// @Description Новый статус заявки выставляется всем ее занятиям (rejected становится cancelled)
// @Tags Бронирования
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Param input body domain.UpdateBookingStatusDTO true "Новый статус"
// @Success 200 {object} domain.BookingRequest
// @Failure 400 {object} errorResponseBody "Недопустимый переход"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Заявка не найдена"
// @Security ApiKeyAuth
// @Router /bookings/{id}/status [patch]
func (h *Handler) updateBookingStatus(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateBookingStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	booking, err := h.services.Booking.SetBookingStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	successResponse(c, http.StatusOK, booking)
}

// @Summary Пересчитать статус заявки
// @Description Повторно выводит статус заявки из статусов занятий
// @Tags Администрирование
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorResponseBody "Заявка не найдена"
// @Security ApiKeyAuth
// @Router /admin/bookings/{id}/sync-status [post]
func (h *Handler) syncBookingStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	status, err := h.services.Booking.SyncBookingStatus(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	successResponse(c, http.StatusOK, gin.H{"status": status})
}
