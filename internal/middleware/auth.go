package middleware

import (
	"strings"

	"vokabel/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// AuthorizedKey is the context key holding the learner's authorization flag
const AuthorizedKey = "authorized"

const passwordPrompt = "🔒 This bot is private. Send the password to continue."

// AuthMiddleware creates authentication middleware. Locked learners may only
// use /start and send plain text, which the text handler treats as a
// password attempt. Every other command, callback or document is refused.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil {
				return nil
			}
			userID := c.Sender().ID

			// Ensure learner exists
			if err := authService.EnsureLearnerExists(userID); err != nil {
				logger.Error("Failed to ensure learner exists in middleware", zap.Error(err))
				return c.Send("Something went wrong. Please try again later.")
			}

			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send("Something went wrong. Please try again later.")
			}
			c.Set(AuthorizedKey, authorized)

			if authorized || c.Text() == "/start" || isPlainText(c) {
				return next(c)
			}

			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: passwordPrompt, ShowAlert: true})
			}
			return c.Send(passwordPrompt)
		}
	}
}

// PasswordPrompt returns the text shown to locked learners
func PasswordPrompt() string {
	return passwordPrompt
}

// IsAuthorized reads the flag stored by AuthMiddleware
func IsAuthorized(c tele.Context) bool {
	authorized, _ := c.Get(AuthorizedKey).(bool)
	return authorized
}

// isPlainText reports a non-command text message
func isPlainText(c tele.Context) bool {
	msg := c.Message()
	return c.Callback() == nil &&
		msg != nil &&
		msg.Document == nil &&
		msg.Text != "" &&
		!strings.HasPrefix(msg.Text, "/")
}
