// Package quiz implements the trivia engine. It is event-driven: the round
// only moves when an answer comes in, graded against a deck embedded at
// build time. Wrong answers advance the round too; the session ends when
// the dealt questions run out.
package quiz

import (
	_ "embed"
	"fmt"
	"math/rand"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/core"
	"github.com/chorequest/minigames/internal/registry"
	"github.com/chorequest/minigames/internal/session"
)

//go:embed questions.yaml
var deckYAML []byte

// Question is one entry of the embedded deck.
type Question struct {
	Prompt  string   `yaml:"prompt"`
	Choices []string `yaml:"choices"`
	Answer  int      `yaml:"answer"`
}

var deck = mustLoadDeck(deckYAML)

func mustLoadDeck(raw []byte) []Question {
	var doc struct {
		Questions []Question `yaml:"questions"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		panic(fmt.Sprintf("quiz: embedded deck: %v", err))
	}
	if len(doc.Questions) == 0 {
		panic("quiz: embedded deck is empty")
	}
	for i, q := range doc.Questions {
		if len(q.Choices) < 2 || q.Answer < 0 || q.Answer >= len(q.Choices) {
			panic(fmt.Sprintf("quiz: embedded deck: question %d is malformed", i))
		}
	}
	return doc.Questions
}

// Engine holds the trivia payload.
type Engine struct {
	cfg   config.QuizConfig
	level config.Level

	order   []int // deck indices dealt for this round, in play order
	index   int   // next unanswered question
	correct int
}

// View is the read-only projection payload. Prompt and Choices are empty
// once the round is over; Number is the 1-based position of the current
// question.
type View struct {
	Prompt   string
	Choices  []string
	Number   int
	Total    int
	Answered int
	Correct  int
}

func init() {
	registry.Register("quiz", func(cfg config.Config) session.Engine {
		return New(cfg.Quiz)
	})
}

// New creates a quiz engine with the given tuning.
func New(cfg config.QuizConfig) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) ID() string    { return "quiz" }
func (e *Engine) Title() string { return "Quiz" }

// TickInterval is zero: the round only changes on input.
func (e *Engine) TickInterval(config.Level) time.Duration { return 0 }

// Reset deals a fresh shuffled cut of the deck for the difficulty.
func (e *Engine) Reset(level config.Level, rng *rand.Rand) {
	e.level = level
	n := e.cfg.Questions.For(level)
	if n > len(deck) {
		n = len(deck)
	}
	e.order = core.Perm(rng, len(deck))[:n]
	e.index = 0
	e.correct = 0
}

// Advance is never called: the engine is event-driven.
func (e *Engine) Advance(*session.Ctx) {}

// Apply grades the picked choice against the current question. Right or
// wrong the round moves on, so every in-range answer qualifies and starts
// the stopwatch; only picks outside the choice list are rejected. A round
// passes when at least half the answers were right.
func (e *Engine) Apply(ctx *session.Ctx, in session.Input) bool {
	pick, ok := in.(session.PickInput)
	if !ok {
		return false
	}
	if e.index >= len(e.order) {
		return false
	}
	q := deck[e.order[e.index]]
	if pick.Index < 0 || pick.Index >= len(q.Choices) {
		return false
	}

	if pick.Index == q.Answer {
		e.correct++
		ctx.AddScore(e.cfg.PointsPerCorrect.For(e.level))
	}
	e.index++
	if e.index == len(e.order) {
		if 2*e.correct >= len(e.order) {
			ctx.End(session.OutcomeWin)
		} else {
			ctx.End(session.OutcomeLoss)
		}
	}
	return true
}

// Moves counts answered questions.
func (e *Engine) Moves() int { return e.index }

// View returns a copy safe to hand across goroutines.
func (e *Engine) View() any {
	v := View{
		Total:    len(e.order),
		Answered: e.index,
		Correct:  e.correct,
	}
	if e.index < len(e.order) {
		q := deck[e.order[e.index]]
		v.Prompt = q.Prompt
		v.Choices = append([]string(nil), q.Choices...)
		v.Number = e.index + 1
	}
	return v
}
