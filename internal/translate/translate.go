// Package translate provides best-effort German to English translation over
// an ordered list of external providers.
package translate

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Provider is a single external translation service.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text string) (string, error)
}

// Client tries providers in order and never fails.
type Client struct {
	providers []Provider
	limiters  []*rate.Limiter
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit limits every provider to rps requests per second.
// Zero or negative rps means unlimited.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiters = nil
			return
		}
		c.limiters = make([]*rate.Limiter, len(c.providers))
		for i := range c.providers {
			c.limiters[i] = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewClient creates a client consulting providers in the given order.
func NewClient(logger *zap.Logger, providers []Provider, opts ...Option) *Client {
	c := &Client{
		providers: providers,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TranslateSentence returns the translation of text, or text itself when no
// provider produced a usable result.
func (c *Client) TranslateSentence(ctx context.Context, text string) string {
	if translation, ok := c.lookup(ctx, text); ok {
		return translation
	}
	return text
}

// TranslateWord returns the translation of word, or Fallback(word) when no
// provider produced a usable result.
func (c *Client) TranslateWord(ctx context.Context, word string) string {
	if translation, ok := c.lookup(ctx, word); ok {
		return translation
	}
	return Fallback(word)
}

func (c *Client) lookup(ctx context.Context, text string) (string, bool) {
	for i, p := range c.providers {
		if c.limiters != nil {
			if err := c.limiters[i].Wait(ctx); err != nil {
				c.logger.Warn("Translation provider skipped",
					zap.String("provider", p.Name()),
					zap.Error(err),
				)
				continue
			}
		}

		translation, err := p.Translate(ctx, text)
		if err != nil {
			c.logger.Warn("Translation provider failed",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			continue
		}

		if translation != "" && translation != text {
			return translation, true
		}
	}
	return "", false
}

// Fallback upper-cases the first character of word and lower-cases the rest.
func Fallback(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}
