// Package suggest fills authoring fields with canned text. Nothing is
// generated: each call picks one template from a fixed pool at random and
// interpolates the course title, after an artificial delay.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var ErrUnknownField = errors.New("no suggestions for this field")

const fallbackTitle = "this topic"

type Provider interface {
	Suggest(ctx context.Context, field Field, title string) (string, error)
}

type randomProvider struct {
	mu    sync.Mutex
	rng   *rand.Rand
	delay time.Duration
}

// NewRandomProvider seeds from the clock when seed is 0.
func NewRandomProvider(seed int64, delay time.Duration) Provider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randomProvider{rng: rand.New(rand.NewSource(seed)), delay: delay}
}

func (p *randomProvider) Suggest(ctx context.Context, field Field, title string) (string, error) {
	templates, ok := pools[field]
	if !ok {
		return "", ErrUnknownField
	}

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	p.mu.Lock()
	pick := templates[p.rng.Intn(len(templates))]
	p.mu.Unlock()

	return render(pick, title), nil
}

func render(template, title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = fallbackTitle
	}
	return fmt.Sprintf(template, title)
}
