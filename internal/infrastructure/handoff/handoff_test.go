package handoff

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type stubTarget struct {
	err   error
	calls int
}

func (s *stubTarget) Handoff(context.Context, *domain.Order) error {
	s.calls++
	return s.err
}

func TestFanout_MirrorFailureIsIgnored(t *testing.T) {
	primary := &stubTarget{}
	mirror := &stubTarget{err: errors.New("broker down")}
	other := &stubTarget{}

	f := NewFanout(logger.NewNop(), primary, mirror, other)
	err := f.Handoff(context.Background(), &domain.Order{ID: "o-1"})

	assert.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, mirror.calls)
	assert.Equal(t, 1, other.calls)
}

func TestFanout_PrimaryFailureStops(t *testing.T) {
	cause := errors.New("link rejected")
	primary := &stubTarget{err: cause}
	mirror := &stubTarget{}

	err := NewFanout(logger.NewNop(), primary, mirror).Handoff(context.Background(), &domain.Order{ID: "o-1"})

	assert.ErrorIs(t, err, cause)
	assert.Zero(t, mirror.calls)
}

func TestLinkTarget_NeverFails(t *testing.T) {
	target := NewLinkTarget(logger.NewNop())
	assert.NoError(t, target.Handoff(context.Background(), &domain.Order{ID: "o-1", Link: "https://wa.me/?text=hi"}))
}
