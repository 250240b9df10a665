package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	errNotThere := NotFound("request_not_found")

	assert.Equal(t, KindNotFound, KindOf(errNotThere))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("answer: %w", errNotThere)))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestUpstreamUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream(cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Equal(t, "upstream_unavailable", ReasonOf(err))
	assert.Equal(t, "upstream_unavailable: upstream_unavailable: connection refused", err.Error())
}

func TestSentinelIdentity(t *testing.T) {
	errA := StateConflict("worker_busy")
	errB := StateConflict("worker_busy")

	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", errA), errA))
	assert.False(t, errors.Is(errA, errB))
}
