package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type backoffSuite struct {
	suite.Suite
}

func TestBackoffSuite(t *testing.T) {
	suite.Run(t, new(backoffSuite))
}

func (s *backoffSuite) TestExponentialCapped() {
	b := NewExponential(time.Millisecond, 5*time.Millisecond)
	waits := []time.Duration{}
	for i := 0; i < 5; i++ {
		waits = append(waits, b.Next())
		s.Require().NoError(b.Backoff(context.Background()))
	}
	s.Equal([]time.Duration{
		time.Millisecond,
		2 * time.Millisecond,
		4 * time.Millisecond,
		5 * time.Millisecond,
		5 * time.Millisecond,
	}, waits)
	s.Equal(5, b.Retries())

	b.Reset()
	s.Equal(time.Millisecond, b.Next())
}

func (s *backoffSuite) TestLinear() {
	b := NewLinear(time.Millisecond, 0)
	s.Equal(time.Millisecond, b.Next())
	s.Require().NoError(b.Backoff(context.Background()))
	s.Equal(2*time.Millisecond, b.Next())
}

func (s *backoffSuite) TestCanceled() {
	b := NewExponential(time.Hour, 0, WithJitter(0.5))
	c, cancel := context.WithCancel(context.Background())
	cancel()
	s.Equal(context.Canceled, b.Backoff(c))
	s.Equal(0, b.Retries())
}

func (s *backoffSuite) TestRetry() {
	errDial := errors.New("dial")
	calls := 0
	err := Retry(context.Background(), NewLinear(time.Millisecond, 0), 3, func(int) error {
		calls++
		if calls < 3 {
			return errDial
		}
		return nil
	})
	s.NoError(err)
	s.Equal(3, calls)

	calls = 0
	err = Retry(context.Background(), NewLinear(time.Millisecond, 0), 2, func(int) error {
		calls++
		return errDial
	})
	s.Equal(errDial, err)
	s.Equal(2, calls)
}
