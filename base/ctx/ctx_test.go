package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/marketengine/base/log"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestWithValue() {
	bg := Background()
	ctx := WithValue(bg, "foo", "bar")
	ts.Equal("bar", ctx.Value("foo"))
}

func (ts *testsuite) TestWithValues() {
	bg := Background()
	ctx := WithValues(bg, map[string]interface{}{
		"a": "b",
		"c": "d",
	})
	ts.Equal("b", ctx.Value("a"))
	ts.Equal("d", ctx.Value("c"))
}

func (ts *testsuite) TestFromKeepsCtx() {
	c := WithValue(Background(), "itemId", "item-1")
	ts.Equal("item-1", From(c).Value("itemId"))
	ts.Nil(From(context.Background()).Value("itemId"))
}

func (ts *testsuite) TestWithLogFields() {
	c := WithLogFields(Background(), log.Fields{"itemId": "item-1"})
	ts.Nil(c.Value("itemId"))
}

func (ts *testsuite) TestTimeout() {
	bg := Background()
	ctx, cancel := WithTimeout(bg, 10*time.Millisecond)
	defer cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		ts.Fail("timeout not fired")
	}
	ts.Equal(context.DeadlineExceeded, ctx.Err())
}

func (ts *testsuite) TestDetach() {
	parent, cancel := WithCancel(WithValue(Background(), "a", "b"))
	cancel()
	ts.Error(parent.Err())

	d := Detach(parent)
	ts.NoError(d.Err())
	ts.Nil(d.Done())
	ts.Equal("b", d.Value("a"))

	// a child of a detached ctx can still be cancelled on its own
	child, cancelChild := WithTimeout(d, time.Millisecond)
	defer cancelChild()
	<-child.Done()
	ts.Equal(context.DeadlineExceeded, child.Err())
}
