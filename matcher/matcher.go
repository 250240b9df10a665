// Package matcher ranks the neighbours able to help with a need.
package matcher

import (
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/neighbourmatch-api/apperror"
	"github.com/bitmark-inc/neighbourmatch-api/geo"
	"github.com/bitmark-inc/neighbourmatch-api/schema"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "matcher")
}

var (
	ErrSkillRequired = apperror.Validation("skill_not_recognized")
)

const (
	PrioritySameBlock     = 1
	PrioritySameApartment = 2
	PriorityElsewhere     = 3
)

// Directory looks up the users offering a skill
type Directory interface {
	FindUsersBySkill(skill, excludeUserID string) ([]schema.User, error)
}

// BusyIndex lists the workers engaged in an accepted or active request
type BusyIndex interface {
	BusyWorkerIDs() ([]string, error)
}

type MatchResult struct {
	User     schema.PublicProfile `json:"user"`
	Distance *float64             `json:"distance"`
	Priority int                  `json:"priority"`

	distance float64
	located  bool
}

type Matcher struct {
	directory Directory
	busy      BusyIndex
	scope     tally.Scope
}

func New(directory Directory, busy BusyIndex, scope tally.Scope) *Matcher {
	return &Matcher{
		directory: directory,
		busy:      busy,
		scope:     scope.SubScope("match"),
	}
}

// FindCandidates returns the eligible helpers of a requester ordered by
// community closeness first and distance second. An empty list is a valid outcome.
func (m *Matcher) FindCandidates(requester *schema.User, skill, timeWindow string) ([]MatchResult, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, ErrSkillRequired
	}

	var users []schema.User
	var busyIDs []string

	var g errgroup.Group
	g.Go(func() error {
		var err error
		users, err = m.directory.FindUsersBySkill(skill, requester.ID)
		return err
	})
	g.Go(func() error {
		var err error
		busyIDs, err = m.busy.BusyWorkerIDs()
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("load candidates")
		return nil, apperror.Upstream(err)
	}

	candidates := filterBySkill(users, requester.ID, skill)
	candidates = filterByTime(candidates, timeWindow)

	busy := make(map[string]struct{}, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = struct{}{}
	}

	results := make([]MatchResult, 0, len(candidates))
	for _, c := range candidates {
		if _, engaged := busy[c.ID]; engaged {
			continue
		}
		results = append(results, rank(requester, c))
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.located != b.located {
			return a.located
		}
		return a.distance < b.distance
	})

	if len(results) == 0 {
		m.scope.Counter("empty").Inc(1)
	} else {
		m.scope.Counter("found").Inc(1)
	}

	return results, nil
}

func filterBySkill(users []schema.User, requesterID, skill string) []schema.User {
	candidates := make([]schema.User, 0, len(users))
	for _, u := range users {
		if u.ID == requesterID {
			continue
		}
		if containsFold(u.SkillsOffered, skill) {
			candidates = append(candidates, u)
		}
	}
	return candidates
}

// filterByTime narrows candidates to a time window. Users without any
// availability recorded are always available. The narrowing is dropped
// when nobody is left.
func filterByTime(candidates []schema.User, timeWindow string) []schema.User {
	if timeWindow == "" {
		return candidates
	}

	narrowed := make([]schema.User, 0, len(candidates))
	for _, u := range candidates {
		if len(u.Availability) == 0 || containsFold(u.Availability, timeWindow) {
			narrowed = append(narrowed, u)
		}
	}

	if len(narrowed) == 0 {
		return candidates
	}
	return narrowed
}

func rank(requester *schema.User, candidate schema.User) MatchResult {
	r := MatchResult{
		User:     candidate.PublicProfile(),
		Priority: priority(requester, candidate),
	}

	if requester.Location != nil && candidate.Location != nil {
		d := geo.DistanceKM(*requester.Location, *candidate.Location)
		rounded := math.Round(d*1000) / 1000
		r.Distance = &rounded
		r.distance = d
		r.located = true
	}

	return r
}

func priority(requester *schema.User, candidate schema.User) int {
	if !sameText(requester.ApartmentName, candidate.ApartmentName) {
		return PriorityElsewhere
	}
	if sameText(requester.Block, candidate.Block) {
		return PrioritySameBlock
	}
	return PrioritySameApartment
}

// sameText compares two non-empty values case-insensitively
func sameText(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && b != "" && strings.EqualFold(a, b)
}

func containsFold(values []string, v string) bool {
	for _, s := range values {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}
