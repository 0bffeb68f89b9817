package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/domain"
)

// @Summary Сменить статус занятия
// @Description После смены статус заявки выводится из статусов всех ее занятий
// @Tags Занятия
// @Accept json
// @Produce json
// @Param id path int true "ID занятия"
// @Param input body domain.UpdateSessionStatusDTO true "Новый статус"
// @Success 200 {object} domain.BookingSession
// @Failure 400 {object} errorResponseBody "Недопустимый переход"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Занятие не найдено"
// @Security ApiKeyAuth
// @Router /sessions/{id}/status [patch]
func (h *Handler) updateSessionStatus(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateSessionStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	session, err := h.services.Booking.SetSessionStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	successResponse(c, http.StatusOK, session)
}

// @Summary Заметка к занятию
// @Description Репетитор пишет заметки, студент оставляет оценку 1..5 и отзыв после завершения занятия
// @Tags Занятия
// @Accept json
// @Produce json
// @Param id path int true "ID занятия"
// @Param input body domain.SessionNoteDTO true "Поля заметки"
// @Success 200 {object} domain.SessionNote
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Занятие не найдено"
// @Security ApiKeyAuth
// @Router /sessions/{id}/note [put]
func (h *Handler) putSessionNote(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req domain.SessionNoteDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	note, err := h.services.SessionNote.AddSessionNote(c.Request.Context(), actor, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	successResponse(c, http.StatusOK, note)
}
