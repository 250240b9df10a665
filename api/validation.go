package api

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bitmark-inc/neighbourmatch-api/consts"
)

var registerOnce sync.Once

// registerValidators adds the `skill` and `timewindow` binding tags
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		if err := v.RegisterValidation("skill", func(fl validator.FieldLevel) bool {
			_, ok := consts.CanonicalSkill(fl.Field().String())
			return ok
		}); err != nil {
			log.WithError(err).Panic("register skill validator")
		}

		if err := v.RegisterValidation("timewindow", func(fl validator.FieldLevel) bool {
			_, ok := consts.CanonicalTimeWindow(fl.Field().String())
			return ok
		}); err != nil {
			log.WithError(err).Panic("register time window validator")
		}
	})
}

func canonicalSkills(skills []string) []string {
	if skills == nil {
		return nil
	}
	result := make([]string, 0, len(skills))
	seen := map[string]bool{}
	for _, s := range skills {
		if c, ok := consts.CanonicalSkill(s); ok && !seen[c] {
			seen[c] = true
			result = append(result, c)
		}
	}
	return result
}

func canonicalTimeWindows(windows []string) []string {
	if windows == nil {
		return nil
	}
	result := make([]string, 0, len(windows))
	seen := map[string]bool{}
	for _, w := range windows {
		if c, ok := consts.CanonicalTimeWindow(w); ok && !seen[c] {
			seen[c] = true
			result = append(result, c)
		}
	}
	return result
}
