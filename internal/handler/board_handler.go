package handler

import (
	"errors"
	"net/http"

	"messageboard/backend/internal/database"
	"messageboard/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SubmitForm is the form posted from the submit page.
type SubmitForm struct {
	User    string `form:"user" binding:"required"`
	Message string `form:"message" binding:"required"`
}

// submitPage is the data rendered into submit.html.
type submitPage struct {
	Title        string
	Name         string
	Message      string
	Error        bool
	ErrorMessage string
}

// viewPage is the data rendered into view.html.
type viewPage struct {
	Title        string
	Messages     []models.Message
	Error        bool
	ErrorMessage string
}

// ShowSubmitForm renders the empty submission form.
func (h *MessageHandler) ShowSubmitForm(c *gin.Context) {
	c.HTML(http.StatusOK, "submit.html", submitPage{Title: "Submit"})
}

// SubmitMessage stores the posted message and renders the form again,
// either as a confirmation or with the error flag set.
func (h *MessageHandler) SubmitMessage(c *gin.Context) {
	var form SubmitForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "submit.html", submitPage{
			Title:        "Submit",
			Error:        true,
			ErrorMessage: errMissingFieldText,
		})
		return
	}

	msg, err := h.store.Append(c.Request.Context(), form.User, form.Message)
	if err != nil {
		status, text := h.describe(c, err)
		c.HTML(status, "submit.html", submitPage{
			Title:        "Submit",
			Error:        true,
			ErrorMessage: text,
		})
		return
	}

	h.publish(msg)
	c.HTML(http.StatusOK, "submit.html", submitPage{
		Title:   "Submit",
		Name:    msg.Username,
		Message: msg.Body,
	})
}

// ViewMessages renders a random sample of stored messages.
func (h *MessageHandler) ViewMessages(c *gin.Context) {
	msgs, err := h.store.Sample(c.Request.Context(), SampleSize)
	if err != nil {
		status, text := h.describe(c, err)
		// An empty board is a normal page, not a missing one.
		if errors.Is(err, database.ErrNoMessages) {
			status = http.StatusOK
		}
		c.HTML(status, "view.html", viewPage{
			Title:        "Messages",
			Error:        true,
			ErrorMessage: text,
		})
		return
	}

	c.HTML(http.StatusOK, "view.html", viewPage{Title: "Messages", Messages: msgs})
}
