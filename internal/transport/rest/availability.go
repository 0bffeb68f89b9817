package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/domain"
)

// @Summary Опубликовать доступность
// @Description Сохраняет разовое или повторяющееся правило и разворачивает его в записи расписания. Конфликтующие даты повторяющегося правила пропускаются.
// @Tags Расписание
// @Accept json
// @Produce json
// @Param input body domain.CreateAvailabilityDTO true "Правило доступности"
// @Success 201 {object} domain.ExpansionResult
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} conflictResponseBody "Разовое правило пересекается с расписанием"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /tutors/me/availability [post]
func (h *Handler) expandAvailability(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateAvailabilityDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	result, err := h.services.Availability.ExpandAvailability(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	createdResponse(c, result)
}

// @Summary Расписание репетитора
// @Tags Расписание
// @Produce json
// @Param id path int true "ID репетитора"
// @Param from query string false "Начальная дата YYYY-MM-DD"
// @Param to query string false "Конечная дата YYYY-MM-DD"
// @Param status query string false "available, booked или cancelled"
// @Success 200 {array} domain.ScheduleEntry
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Репетитор не найден"
// @Router /tutors/{id}/schedule [get]
func (h *Handler) listSchedule(c *gin.Context) {
	tutorID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var filter domain.ScheduleFilter
	if filter.From, ok = h.dateQuery(c, "from"); !ok {
		return
	}
	if filter.To, ok = h.dateQuery(c, "to"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.EntryStatus(raw)
		switch status {
		case domain.EntryStatusAvailable, domain.EntryStatusBooked, domain.EntryStatusCancelled:
			filter.Status = &status
		default:
			badRequestResponse(c, "неизвестный статус записи расписания")
			return
		}
	}

	entries, err := h.services.Availability.ListSchedule(c.Request.Context(), tutorID, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	successResponse(c, http.StatusOK, entries)
}

// @Summary Свободные слоты
// @Description Доступные записи расписания, не занятые активными занятиями
// @Tags Расписание
// @Produce json
// @Param id path int true "ID репетитора"
// @Param from query string true "Начальная дата YYYY-MM-DD"
// @Param to query string true "Конечная дата YYYY-MM-DD"
// @Success 200 {array} domain.ScheduleEntry
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Репетитор не найден"
// @Router /tutors/{id}/open-slots [get]
func (h *Handler) listOpenSlots(c *gin.Context) {
	tutorID, ok := idParam(c, "id")
	if !ok {
		return
	}
	from, ok := h.requiredDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.requiredDateQuery(c, "to")
	if !ok {
		return
	}

	entries, err := h.services.Availability.ListOpenSlots(c.Request.Context(), tutorID, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}

	successResponse(c, http.StatusOK, entries)
}

type conflictCheckResponse struct {
	Conflict bool            `json:"conflict"`
	Slot     domain.TimeSlot `json:"slot"`
}

// @Summary Проверить пересечение
// @Description Проверяет, пересекается ли слот с активными занятиями (source=bookings) или записями расписания (source=schedule)
// @Tags Расписание
// @Produce json
// @Param id path int true "ID репетитора"
// @Param date query string true "Дата YYYY-MM-DD"
// @Param start_time query string true "Начало HH:MM"
// @Param end_time query string true "Окончание HH:MM"
// @Param source query string false "bookings (по умолчанию) или schedule"
// @Success 200 {object} conflictCheckResponse
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Router /tutors/{id}/conflicts [get]
func (h *Handler) checkConflict(c *gin.Context) {
	tutorID, ok := idParam(c, "id")
	if !ok {
		return
	}

	slot, err := domain.ParseTimeSlot(c.Query("date"), c.Query("start_time"), c.Query("end_time"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	source := domain.ConflictSource(c.DefaultQuery("source", string(domain.ConflictSourceBookings)))

	conflict, err := h.services.Conflict.HasConflict(c.Request.Context(), source, tutorID, slot)
	if err != nil {
		h.handleError(c, err)
		return
	}

	successResponse(c, http.StatusOK, conflictCheckResponse{Conflict: conflict, Slot: slot})
}

// @Summary Отменить запись расписания
// @Tags Расписание
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.ScheduleEntry
// @Failure 400 {object} errorResponseBody "Запись забронирована"
// @Failure 403 {object} errorResponseBody "Запись принадлежит другому репетитору"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /schedule-entries/{id}/cancel [patch]
func (h *Handler) cancelScheduleEntry(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.services.Availability.CancelEntry(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	successResponse(c, http.StatusOK, entry)
}

// @Summary Удалить запись расписания
// @Tags Расписание
// @Param id path int true "ID записи"
// @Success 204
// @Failure 400 {object} errorResponseBody "Запись забронирована"
// @Failure 403 {object} errorResponseBody "Запись принадлежит другому репетитору"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /schedule-entries/{id} [delete]
func (h *Handler) deleteScheduleEntry(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Availability.DeleteEntry(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}

	noContentResponse(c)
}
