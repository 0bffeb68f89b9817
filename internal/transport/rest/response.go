package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutorhub/internal/domain"
)

type errorResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type conflictResponseBody struct {
	errorResponseBody
	Conflicts []domain.SlotConflict `json:"conflicts"`
}

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type messageResponseType struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type paginatedResponse struct {
	Data       interface{} `json:"data"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

func messageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, messageResponseType{
		Status:  "success",
		Message: message,
	})
}

func paginatedSuccessResponse(c *gin.Context, data interface{}, totalCount, page, pageSize int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = totalCount / pageSize
		if totalCount%pageSize > 0 {
			totalPages++
		}
	}

	c.JSON(http.StatusOK, paginatedResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func noContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, "требуется авторизация")
}

func forbiddenResponse(c *gin.Context, message ...string) {
	msg := "доступ запрещен"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	errorResponse(c, http.StatusForbidden, msg)
}

func internalServerErrorResponse(c *gin.Context) {
	errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleError переводит доменную ошибку в HTTP-ответ; внутренние ошибки наружу не раскрываются.
func (h *Handler) handleError(c *gin.Context, err error) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		c.AbortWithStatusJSON(http.StatusConflict, conflictResponseBody{
			errorResponseBody: errorResponseBody{
				Status:  "error",
				Message: conflictErr.Message,
				Code:    http.StatusConflict,
				Reason:  domain.CodeSlotConflict,
			},
			Conflicts: conflictErr.Conflicts,
		})
		return
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		status := statusForKind(domainErr.Kind)
		c.AbortWithStatusJSON(status, errorResponseBody{
			Status:  "error",
			Message: domainErr.Message,
			Code:    status,
			Reason:  domainErr.Code,
		})
		return
	}

	h.logger.Error("внутренняя ошибка обработки запроса",
		zap.String("request_id", c.GetString(requestIDCtx)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	internalServerErrorResponse(c)
}

// bindError отвечает на ошибку разбора тела запроса. Ошибки формата даты и времени
// приходят из UnmarshalJSON доменных типов и сохраняют свой код.
func (h *Handler) bindError(c *gin.Context, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		h.handleError(c, domainErr)
		return
	}

	h.logger.Warn("неверный формат данных", zap.Error(err))
	badRequestResponse(c, "неверный формат данных")
}
