package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Message was already edited by another callback
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// show edits the callback message in place, or sends a new one for commands
func (h *Handler) show(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// notify answers a callback with a toast, or sends a plain message for commands
func notify(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	key := callback.Unique
	if key == "" {
		key = data
	}

	switch key {
	case "words":
		return h.handleWords(c)
	case "sentences":
		return h.handleSentences(c)
	case "random_word", "more":
		return h.handleRandomWord(c)
	case "clear":
		return h.handleClear(c)
	case "back":
		return h.handleStart(c)
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, wordsPagePrefix):
		return h.handleWordsPage(c, data)
	case strings.HasPrefix(data, sentencesPagePrefix):
		return h.handleSentencesPage(c, data)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleWords shows the first page of extracted words
func (h *Handler) handleWords(c tele.Context) error {
	return h.showWords(c, 1)
}

func (h *Handler) handleWordsPage(c tele.Context, data string) error {
	page, err := parsePage(data, wordsPagePrefix)
	if err != nil {
		h.logger.Warn("Bad words page callback", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showWords(c, page)
}

func (h *Handler) showWords(c tele.Context, page int) error {
	userID := c.Sender().ID

	words, totalPages := h.studyService.WordsPage(userID, page, wordsPageSize)
	if len(words) == 0 {
		return notify(c, "No words yet. Send me a PDF or some German text first.")
	}
	page = min(page, totalPages)

	return h.show(c, formatWordsPage(words, page, totalPages), pageMarkup(wordsPagePrefix, page, totalPages))
}

// handleSentences shows the first page of extracted sentences
func (h *Handler) handleSentences(c tele.Context) error {
	return h.showSentences(c, 1)
}

func (h *Handler) handleSentencesPage(c tele.Context, data string) error {
	page, err := parsePage(data, sentencesPagePrefix)
	if err != nil {
		h.logger.Warn("Bad sentences page callback", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showSentences(c, page)
}

func (h *Handler) showSentences(c tele.Context, page int) error {
	userID := c.Sender().ID

	sentences, totalPages := h.studyService.SentencesPage(userID, page, sentencesPageSize)
	if len(sentences) == 0 {
		return notify(c, "No sentences yet. Send me a PDF or some German text first.")
	}
	page = min(page, totalPages)

	return h.show(c, formatSentencesPage(sentences, page, totalPages), pageMarkup(sentencesPagePrefix, page, totalPages))
}

// handleRandomWord shows a random stored word
func (h *Handler) handleRandomWord(c tele.Context) error {
	word := h.studyService.RandomWord(c.Sender().ID)
	if word == nil {
		return notify(c, "No words yet. Send me a PDF or some German text first.")
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnMore),
		markup.Row(btnBack),
	)
	return h.show(c, formatWord(*word), markup)
}

// handleClear removes all stored words, sentences and source text
func (h *Handler) handleClear(c tele.Context) error {
	userID := c.Sender().ID
	h.studyService.Clear(userID)

	return h.show(c, "🗑 Cleared.\n\n"+mainMenuText, mainMenuMarkup())
}
