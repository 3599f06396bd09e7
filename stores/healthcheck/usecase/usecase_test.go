package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain/healthcheck/mocks"
)

type healthCheckSuite struct {
	suite.Suite
}

func (s *healthCheckSuite) TestCheck() {
	c := ctx.Background()
	repo := mocks.NewRepo(s.T())
	repo.On("PingDB", c).Return(nil).Once()
	repo.On("PingCache", c).Return(nil).Once()

	s.NoError(New(repo).Check(c))
}

func (s *healthCheckSuite) TestDBDown() {
	c := ctx.Background()
	repo := mocks.NewRepo(s.T())
	repo.On("PingDB", c).Return(errors.New("no reachable servers")).Once()

	s.EqualError(New(repo).Check(c), "no reachable servers")
}

func TestHealthCheckSuite(t *testing.T) {
	suite.Run(t, new(healthCheckSuite))
}
