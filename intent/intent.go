// Package intent turns a free text need into a skill and a time window.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/neighbourmatch-api/consts"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "intent")
}

var (
	ErrNoIntentFound = fmt.Errorf("no intent object in the reply")

	jsonObject = regexp.MustCompile(`(?s)\{.*\}`)
)

// Intent is the outcome of an extraction. Empty fields mean nothing was recognized.
type Intent struct {
	Skill      string `json:"skill"`
	TimeWindow string `json:"time"`
}

// Backend is one strategy of the extraction chain. A nil intent or an error
// passes the text on to the next backend.
type Backend interface {
	Name() string
	Extract(ctx context.Context, text string) (*Intent, error)
}

// Extractor tries its backends in order and always ends with the keyword parser
type Extractor struct {
	backends []Backend
	scope    tally.Scope
}

func NewExtractor(scope tally.Scope, backends ...Backend) *Extractor {
	return &Extractor{
		backends: backends,
		scope:    scope.SubScope("intent"),
	}
}

// Extract never fails; a text nothing understands gives an empty intent
func (e *Extractor) Extract(ctx context.Context, text string) Intent {
	for _, b := range e.backends {
		result, err := b.Extract(ctx, text)
		if err != nil {
			log.WithField("backend", b.Name()).WithError(err).Warn("backend unavailable, falling back")
			e.scope.Tagged(map[string]string{"backend": b.Name()}).Counter("failure").Inc(1)
			continue
		}
		if result == nil {
			continue
		}

		log.WithFields(logrus.Fields{
			"backend": b.Name(),
			"skill":   result.Skill,
			"time":    result.TimeWindow,
		}).Debug("intent extracted")
		e.scope.Tagged(map[string]string{"backend": b.Name()}).Counter("success").Inc(1)
		return *result
	}

	e.scope.Tagged(map[string]string{"backend": "keyword"}).Counter("success").Inc(1)
	return KeywordParse(text)
}

type rawIntent struct {
	Skill *string `json:"skill"`
	Time  *string `json:"time"`
}

// parseReply reads the first JSON object of a language model reply and
// keeps only canonical values
func parseReply(reply string) (*Intent, error) {
	obj := jsonObject.FindString(reply)
	if obj == "" {
		return nil, ErrNoIntentFound
	}

	var raw rawIntent
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return nil, err
	}

	var i Intent
	if raw.Skill != nil {
		i.Skill, _ = consts.CanonicalSkill(*raw.Skill)
	}
	if raw.Time != nil {
		i.TimeWindow, _ = consts.CanonicalTimeWindow(*raw.Time)
	}

	return &i, nil
}

// configuredKey filters out empty keys and the placeholders of sample env files
func configuredKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && !(strings.HasPrefix(key, "your_") && strings.HasSuffix(key, "_here"))
}

const systemPrompt = `You extract skill and time from community service requests.
Skills: Plumbing, Tutor, Cooking, Cleaning, Electrician, Painting, Driving, Carpentry, Gardening, Mechanic.
Times: Morning, Evening, Weekend.
Always respond ONLY with JSON: {"skill": "...", "time": "..."} and use null if not found.`

const userPromptTemplate = `You are a helper that parses service requests from apartment/community residents.

From this message: %q

Extract:
1. skill - one of: Plumbing, Tutor, Cooking, Cleaning, Electrician, Painting, Driving, Carpentry, Gardening, Mechanic, or null
2. time - one of: Morning, Evening, Weekend, or null

Respond ONLY in this JSON format, nothing else:
{"skill": "...", "time": "..."}`
