package handler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"vokabel/internal/domain"
	"vokabel/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText unlocks locked learners and treats longer messages from
// authorized ones as study material
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	if !middleware.IsAuthorized(c) {
		ok, err := h.authService.Unlock(userID, text)
		if err != nil {
			h.logger.Error("Failed to authorize learner", zap.Error(err))
			return c.Send("Something went wrong. Please try again later.")
		}
		if !ok {
			return c.Send("❌ Wrong password")
		}

		h.logger.Info("Learner authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send("✅ Access granted!\n\n"+mainMenuText, mainMenuMarkup())
	}

	if utf8.RuneCountInString(text) < minTextLength {
		return c.Send(fmt.Sprintf("Send a PDF or at least %d characters of German text.", minTextLength))
	}

	return h.process(c, userID, "text", func(ctx context.Context) (*domain.Summary, error) {
		return h.studyService.ProcessText(ctx, userID, text), nil
	})
}

// handleDocument downloads a PDF and runs it through the pipeline
func (h *Handler) handleDocument(c tele.Context) error {
	userID := c.Sender().ID
	doc := c.Message().Document
	if doc == nil {
		return nil
	}

	if !isPDF(doc.FileName, doc.MIME) {
		return c.Send("Only PDF documents are supported.")
	}
	if doc.FileSize > maxDocumentSize {
		return c.Send("This file is too large. The limit is 20 MB.")
	}

	return h.process(c, userID, doc.FileName, func(ctx context.Context) (*domain.Summary, error) {
		reader, err := h.bot.File(&doc.File)
		if err != nil {
			return nil, fmt.Errorf("failed to download document: %w", err)
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}

		return h.studyService.ProcessDocument(ctx, userID, data)
	})
}

// process runs one extraction pass per user at a time and reports the summary
func (h *Handler) process(
	c tele.Context,
	userID int64,
	source string,
	run func(ctx context.Context) (*domain.Summary, error),
) error {
	if !h.beginProcessing(userID, source) {
		return c.Send("⏳ Still working on your previous text, please wait.")
	}
	defer h.ResetState(userID)

	if err := c.Send("⏳ Extracting words and sentences, this can take a minute..."); err != nil {
		h.logger.Warn("Failed to send progress message", zap.Error(err))
	}
	_ = c.Notify(tele.Typing)

	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	summary, err := run(ctx)
	if err != nil {
		h.logger.Error("Failed to process study material",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("source", source),
		)
		return c.Send("❌ Could not read this document. Make sure it is a valid PDF with a text layer.")
	}

	if summary.Words == 0 && summary.Sentences == 0 {
		return c.Send("No German words or sentences found. Scanned PDFs without a text layer are not supported.", mainMenuMarkup())
	}

	return c.Send(formatSummary(summary, source), mainMenuMarkup())
}

func isPDF(fileName, mime string) bool {
	return mime == "application/pdf" || strings.HasSuffix(strings.ToLower(fileName), ".pdf")
}
