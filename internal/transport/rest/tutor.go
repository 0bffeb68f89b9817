package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Профиль репетитора
// @Tags Репетиторы
// @Produce json
// @Param id path int true "ID репетитора"
// @Success 200 {object} domain.TutorProfile
// @Failure 404 {object} errorResponseBody "Репетитор не найден"
// @Router /tutors/{id} [get]
func (h *Handler) getTutor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	tutor, err := h.services.Tutor.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	successResponse(c, http.StatusOK, tutor)
}

// @Summary Курсы репетитора
// @Tags Репетиторы
// @Produce json
// @Param id path int true "ID репетитора"
// @Success 200 {array} domain.Course
// @Failure 404 {object} errorResponseBody "Репетитор не найден"
// @Router /tutors/{id}/courses [get]
func (h *Handler) listTutorCourses(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	courses, err := h.services.Course.ListByTutor(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	successResponse(c, http.StatusOK, courses)
}
