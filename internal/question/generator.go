// Package question produces interview questions per category, combining a
// generative backend with an offline template bank fallback.
package question

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/types"
)

// Inputs carries the session context a generator draws on when building
// category-specific questions.
type Inputs struct {
	Profile     *types.NormalizedProfile
	Requirement *types.NormalizedRequirement
	Report      *types.MatchReport
	Retrieved   []types.RetrievedDocument
}

// Draft is a backend-produced question payload before it is assigned an
// identity and timestamp.
type Draft struct {
	Text      string
	FollowUps []string
	Rubric    string
	SkillTag  string
}

// Backend produces question drafts from a generative model. Implementations
// may fail; the generator falls back to templates when they do.
type Backend interface {
	GenerateQuestions(ctx context.Context, category types.Category, inputs Inputs, previous []string, count int) ([]Draft, error)
}

// Generator builds questions for a single session. It tracks emitted question
// texts so the same question is not asked twice, and samples the template
// bank without replacement until a category's bank is exhausted.
//
// The random source is injected so template sampling is reproducible.
type Generator struct {
	backend Backend
	rng     *rand.Rand
	logger  *zap.Logger
	now     func() time.Time

	mu   sync.Mutex
	seen map[string]bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator. backend may be nil, in which case every question
// comes from the template bank. rng must not be shared with other consumers.
func New(backend Backend, rng *rand.Rand, logger *zap.Logger, opts ...Option) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		backend: backend,
		rng:     rng,
		logger:  logger,
		now:     time.Now,
		seen:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces count questions for the category. It never fails: backend
// errors and malformed responses degrade to the template bank, tagged with
// their source so callers can tell the two apart.
func (g *Generator) Generate(ctx context.Context, category types.Category, inputs Inputs, count int) []types.Question {
	if count < 1 {
		return nil
	}

	var questions []types.Question
	if g.backend != nil {
		drafts, err := g.backend.GenerateQuestions(ctx, category, inputs, g.previousTexts(), count)
		if err != nil {
			g.logger.Warn("question generation failed, using template bank",
				zap.String("category", string(category)),
				zap.Error(err))
		} else {
			questions = g.adoptDrafts(category, drafts, count)
		}
	}

	if missing := count - len(questions); missing > 0 {
		questions = append(questions, g.sampleTemplates(category, missing)...)
	}
	return questions
}

// adoptDrafts converts backend drafts into questions, skipping blanks and
// texts already asked in this session.
func (g *Generator) adoptDrafts(category types.Category, drafts []Draft, count int) []types.Question {
	g.mu.Lock()
	defer g.mu.Unlock()

	var questions []types.Question
	for _, d := range drafts {
		if len(questions) == count {
			break
		}
		text := strings.TrimSpace(d.Text)
		if text == "" || g.seen[normalizeText(text)] {
			continue
		}
		g.seen[normalizeText(text)] = true
		questions = append(questions, types.Question{
			ID:        uuid.NewString(),
			Category:  category,
			Text:      text,
			FollowUps: d.FollowUps,
			Rubric:    d.Rubric,
			SkillTag:  d.SkillTag,
			Source:    types.SourceGenerated,
			AskedAt:   g.now(),
		})
	}
	return questions
}

// sampleTemplates draws count questions from the category's bank. Unseen
// entries are preferred; once the bank is exhausted it samples with
// replacement so long sessions still get questions.
func (g *Generator) sampleTemplates(category types.Category, count int) []types.Question {
	bank := templateBanks[category]
	if len(bank) == 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var unseen []bankEntry
	for _, e := range bank {
		if !g.seen[normalizeText(e.Text)] {
			unseen = append(unseen, e)
		}
	}
	g.rng.Shuffle(len(unseen), func(i, j int) {
		unseen[i], unseen[j] = unseen[j], unseen[i]
	})

	questions := make([]types.Question, 0, count)
	for i := 0; i < count; i++ {
		var e bankEntry
		if i < len(unseen) {
			e = unseen[i]
		} else {
			e = bank[g.rng.Intn(len(bank))]
		}
		g.seen[normalizeText(e.Text)] = true
		questions = append(questions, types.Question{
			ID:        uuid.NewString(),
			Category:  category,
			Text:      e.Text,
			FollowUps: e.FollowUps,
			Rubric:    e.Rubric,
			SkillTag:  e.SkillTag,
			Source:    types.SourceTemplate,
			AskedAt:   g.now(),
		})
	}
	return questions
}

// previousTexts snapshots this session's already-emitted question texts.
func (g *Generator) previousTexts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	texts := make([]string, 0, len(g.seen))
	for t := range g.seen {
		texts = append(texts, t)
	}
	return texts
}

func normalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
