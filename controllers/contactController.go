package controllers

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/davidkiarie/trendora-api/utils"
	"github.com/gin-gonic/gin"
)

var (
	contactNameRegex  = regexp.MustCompile(`^[A-Za-z\s]{3,20}$`)
	contactEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	contactPhoneRegex = regexp.MustCompile(`^\d{10}$`)
)

// sendContactMail is swapped out in tests.
var sendContactMail = utils.SendTextEmail

// SubmitContactForm validates a contact submission field by field, first
// failure wins, then forwards it to the shop inbox over SMTP.
func SubmitContactForm(ctx *gin.Context) {
	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	message := strings.TrimSpace(input.Message)

	if !contactNameRegex.MatchString(name) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name must be 3-20 letters."})
		return
	}
	if !contactEmailRegex.MatchString(email) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address."})
		return
	}
	if !contactPhoneRegex.MatchString(phone) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Phone must be exactly 10 digits."})
		return
	}
	if utf8.RuneCountInString(message) < 10 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Message must be at least 10 characters."})
		return
	}

	subject := "Contact form: " + name
	body := fmt.Sprintf("New contact form submission\n\nName: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s\n",
		name, email, phone, message)

	to := os.Getenv("CONTACT_EMAIL")
	if to == "" {
		to = os.Getenv("FROM_EMAIL")
	}

	if err := sendContactMail(to, subject, body); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send email.",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": "Message sent"})
}
