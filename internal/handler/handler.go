package handler

import (
	"sync"
	"time"

	"vokabel/internal/domain"
	"vokabel/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	wordsPageSize     = 10
	sentencesPageSize = 5

	// minTextLength is the shortest text message processed as study material
	minTextLength = 20
	// maxDocumentSize is the Bot API download limit
	maxDocumentSize = 20 << 20
	// processTimeout bounds one extraction pass including all translations
	processTimeout = 5 * time.Minute
	// maxMessageLength stays under Telegram's 4096 character limit
	maxMessageLength = 4000
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	authService  *service.AuthService
	studyService *service.StudyService
	logger       *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	studyService *service.StudyService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		authService:  authService,
		studyService: studyService,
		logger:       logger,
		states:       make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/words", h.handleWords)
	h.bot.Handle("/sentences", h.handleSentences)
	h.bot.Handle("/random", h.handleRandomWord)
	h.bot.Handle("/clear", h.handleClear)

	// Study material
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnDocument, h.handleDocument)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnWords, h.handleWords)
	h.bot.Handle(&btnSentences, h.handleSentences)
	h.bot.Handle(&btnRandomWord, h.handleRandomWord)
	h.bot.Handle(&btnMore, h.handleRandomWord)
	h.bot.Handle(&btnClear, h.handleClear)
	h.bot.Handle(&btnBack, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// resetIdle returns the user to idle unless a pass is running
func (h *Handler) resetIdle(userID int64) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()

	if state, ok := h.states[userID]; ok && state.State == domain.StateProcessing {
		return
	}
	h.states[userID] = &domain.StateData{State: domain.StateIdle}
}

// beginProcessing moves the user into the processing state. It reports false
// when a previous pass is still running.
func (h *Handler) beginProcessing(userID int64, source string) bool {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()

	if state, ok := h.states[userID]; ok && state.State == domain.StateProcessing {
		return false
	}
	h.states[userID] = &domain.StateData{
		State:     domain.StateProcessing,
		Source:    source,
		StartedAt: time.Now(),
	}
	return true
}

// Inline keyboard buttons
var (
	btnWords = tele.Btn{
		Unique: "words",
		Text:   "📚 Words",
	}
	btnSentences = tele.Btn{
		Unique: "sentences",
		Text:   "📖 Sentences",
	}
	btnRandomWord = tele.Btn{
		Unique: "random_word",
		Text:   "🎲 Random word",
	}
	btnMore = tele.Btn{
		Unique: "more",
		Text:   "🔄 Another",
	}
	btnClear = tele.Btn{
		Unique: "clear",
		Text:   "🗑 Clear",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnWords, btnSentences),
		menu.Row(btnRandomWord),
		menu.Row(btnClear),
	)
	return menu
}
