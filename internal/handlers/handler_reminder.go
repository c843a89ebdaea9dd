package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/apperrors"
	portssvc "github.com/BalansDev/branch_accounting_app/internal/core/ports/services"
	"github.com/BalansDev/branch_accounting_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reminderHandler handles HTTP requests for payment reminders.
type reminderHandler struct {
	reminderService portssvc.ReminderSvcFacade
}

// registerReminderRoutes registers routes related to reminders.
func registerReminderRoutes(rg *gin.RouterGroup, reminderService portssvc.ReminderSvcFacade) {
	h := &reminderHandler{reminderService: reminderService}

	reminders := rg.Group("/reminders")
	{
		reminders.POST("", h.createReminder)
		reminders.GET("", h.listReminders)
		reminders.GET("/due", h.listDueReminders)
		reminders.PUT("/:id", h.updateReminder)
		reminders.DELETE("/:id", h.deleteReminder)
	}
}

// createReminder godoc
// @Summary Create a reminder
// @Tags reminders
// @Accept json
// @Produce json
// @Param reminder body dto.CreateReminderRequest true "Reminder details"
// @Success 201 {object} dto.ReminderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders [post]
func (h *reminderHandler) createReminder(c *gin.Context) {
	var req dto.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	reminder, err := h.reminderService.CreateReminder(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create reminder"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToReminderResponse(reminder))
}

// listReminders godoc
// @Summary List reminders
// @Tags reminders
// @Produce json
// @Success 200 {array} dto.ReminderResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders [get]
func (h *reminderHandler) listReminders(c *gin.Context) {
	reminders, err := h.reminderService.ListReminders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list reminders"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListReminderResponse(reminders))
}

// listDueReminders godoc
// @Summary List reminders due on a day
// @Description Lists the active reminders due on the given day (default today).
// @Tags reminders
// @Produce json
// @Param on query string false "Day to check (YYYY-MM-DD, default today)"
// @Success 200 {array} dto.ReminderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders/due [get]
func (h *reminderHandler) listDueReminders(c *gin.Context) {
	on := time.Now()
	if onParam := c.Query("on"); onParam != "" {
		parsed, err := time.Parse("2006-01-02", onParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'on' date, expected YYYY-MM-DD"})
			return
		}
		on = parsed
	}

	reminders, err := h.reminderService.ListDueReminders(c.Request.Context(), on)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list due reminders"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListReminderResponse(reminders))
}

// updateReminder godoc
// @Summary Update a reminder
// @Tags reminders
// @Accept json
// @Produce json
// @Param id path int true "Reminder ID"
// @Param reminder body dto.UpdateReminderRequest true "Fields to update"
// @Success 200 {object} dto.ReminderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders/{id} [put]
func (h *reminderHandler) updateReminder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	reminder, err := h.reminderService.UpdateReminder(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update reminder"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReminderResponse(reminder))
}

// deleteReminder godoc
// @Summary Delete a reminder
// @Tags reminders
// @Produce json
// @Param id path int true "Reminder ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders/{id} [delete]
func (h *reminderHandler) deleteReminder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.reminderService.DeleteReminder(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete reminder"})
		return
	}

	c.Status(http.StatusNoContent)
}
