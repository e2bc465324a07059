package classifier

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
)

// DefaultThreshold is the minimum score a category must reach before it is
// preferred over the fallback.
const DefaultThreshold = 0.25

// Scoring weights. Pattern hits are worth more than keyword hits; multiple
// hits of either kind earn a small capped bonus.
const (
	patternWeight     = 0.7
	keywordWeight     = 0.3
	multiPatternBonus = 0.1
	multiKeywordBonus = 0.05
)

// Result is the outcome of classifying a single ticket.
type Result struct {
	Category        Category
	Confidence      float64
	MatchedPatterns []string
	Text            string
}

// Classifier assigns a category to free-form ticket text.
type Classifier interface {
	Classify(ctx context.Context, ticket string) (Result, error)
}

// preppedCategory carries a category together with its compiled patterns and
// lowercased keywords so Classify does no per-call compilation.
type preppedCategory struct {
	category Category
	patterns []*regexp.Regexp
	keywords []string
}

func prepCategory(c Category) (preppedCategory, error) {
	if err := c.Validate(); err != nil {
		return preppedCategory{}, err
	}
	p := preppedCategory{category: c}
	p.patterns = make([]*regexp.Regexp, len(c.Patterns))
	for i, src := range c.Patterns {
		re, err := regexp.Compile("(?i)" + src)
		if err != nil {
			// Validate compiles the same source, so this is unreachable.
			return preppedCategory{}, fmt.Errorf("%w: category %q: pattern %q: %v", ErrInvalidCategory, c.Name, src, err)
		}
		p.patterns[i] = re
	}
	p.keywords = make([]string, len(c.Keywords))
	for i, kw := range c.Keywords {
		p.keywords[i] = strings.ToLower(kw)
	}
	return p, nil
}

// PatternClassifier scores ticket text against an ordered category table
// using keyword and regex matching. It performs no I/O and is safe for
// concurrent use; mutation happens only through AddCategory, RemoveCategory
// and SetThreshold.
type PatternClassifier struct {
	mu        sync.RWMutex
	threshold float64
	prepped   []preppedCategory
}

// NewPatternClassifier builds a classifier over the given table, or over
// DefaultCategories when categories is nil. Every entry is validated and its
// patterns compiled up front.
func NewPatternClassifier(categories []Category) (*PatternClassifier, error) {
	if categories == nil {
		categories = DefaultCategories()
	}
	if len(categories) == 0 {
		return nil, ErrEmptyTable
	}
	c := &PatternClassifier{threshold: DefaultThreshold}
	for _, cat := range categories {
		if err := c.append(cat); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetThreshold overrides the fallback threshold. Values outside [0,1] are
// rejected.
func (c *PatternClassifier) SetThreshold(t float64) error {
	if t < 0 || t > 1 {
		return fmt.Errorf("threshold must be in [0,1], got %v", t)
	}
	c.mu.Lock()
	c.threshold = t
	c.mu.Unlock()
	return nil
}

// Threshold returns the active fallback threshold.
func (c *PatternClassifier) Threshold() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.threshold
}

// AddCategory validates and appends a custom category to the table.
func (c *PatternClassifier) AddCategory(cat Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.append(cat)
}

func (c *PatternClassifier) append(cat Category) error {
	for _, existing := range c.prepped {
		if existing.category.Name == cat.Name {
			return fmt.Errorf("%w: %q", ErrDuplicateCategory, cat.Name)
		}
	}
	p, err := prepCategory(cat)
	if err != nil {
		return err
	}
	c.prepped = append(c.prepped, p)
	return nil
}

// RemoveCategory drops the named category from the table. Unknown names are
// a no-op.
func (c *PatternClassifier) RemoveCategory(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.prepped[:0]
	for _, p := range c.prepped {
		if p.category.Name != name {
			kept = append(kept, p)
		}
	}
	c.prepped = kept
}

// Categories returns a copy of the active table in order.
func (c *PatternClassifier) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Category, len(c.prepped))
	for i, p := range c.prepped {
		out[i] = p.category
	}
	return out
}

// Classify scores the ticket against every category and returns the best
// match. The highest score wins; ties resolve to the earlier table entry.
// When the best score is below the threshold the fallback category is
// returned instead, keeping the raw score as confidence. The error is always
// nil; it exists to satisfy the Classifier interface.
func (c *PatternClassifier) Classify(_ context.Context, ticket string) (Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	text := strings.ToLower(ticket)

	var (
		best      preppedCategory
		bestScore = -1.0
		bestHits  []string
	)
	for _, p := range c.prepped {
		score, hits := scoreCategory(text, p)
		if score > bestScore {
			best, bestScore, bestHits = p, score, hits
		}
	}
	if bestScore < 0 {
		bestScore = 0
	}

	if bestScore < c.threshold && best.category.Name != FallbackName {
		if fb, ok := c.fallback(); ok {
			return Result{Category: fb, Confidence: bestScore, Text: ticket}, nil
		}
	}
	return Result{
		Category:        best.category,
		Confidence:      bestScore,
		MatchedPatterns: bestHits,
		Text:            ticket,
	}, nil
}

// ClassifyBatch classifies tickets sequentially, in input order.
func (c *PatternClassifier) ClassifyBatch(ctx context.Context, tickets []string) ([]Result, error) {
	results := make([]Result, len(tickets))
	for i, t := range tickets {
		r, err := c.Classify(ctx, t)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

func (c *PatternClassifier) fallback() (Category, bool) {
	for _, p := range c.prepped {
		if p.category.Name == FallbackName {
			return p.category, true
		}
	}
	return Category{}, false
}

// scoreCategory computes the weighted match score for one category against
// lowercased ticket text, returning the score and the pattern sources that
// hit. The fallback category never scores.
func scoreCategory(text string, p preppedCategory) (float64, []string) {
	if p.category.Name == FallbackName {
		return 0, nil
	}

	var hits []string
	for i, re := range p.patterns {
		if re.MatchString(text) {
			hits = append(hits, p.category.Patterns[i])
		}
	}

	keywordHits := 0
	for _, kw := range p.keywords {
		if strings.Contains(text, kw) {
			keywordHits++
		}
	}

	var score float64
	if n := len(p.patterns); n > 0 {
		score += float64(len(hits)) / float64(n) * patternWeight
	}
	if n := len(p.keywords); n > 0 {
		score += float64(keywordHits) / float64(n) * keywordWeight
	}
	if len(hits) >= 2 {
		score = math.Min(score+multiPatternBonus, 1.0)
	}
	if keywordHits >= 3 {
		score = math.Min(score+multiKeywordBonus, 1.0)
	}
	return score, hits
}
