package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/service/cache/provider/primitive"
)

var mockCtx = ctx.Background()

type cacheSuite struct {
	suite.Suite
	im Service
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(cacheSuite))
}

func (s *cacheSuite) SetupTest() {
	s.im = New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "test",
		Cache: primitive.NewPrimitive("test", 1),
	})
}

type payload struct {
	Owner string `json:"owner"`
}

func (s *cacheSuite) TestGetMiss() {
	var out payload
	s.Equal(ErrNotFound, s.im.Get(mockCtx, "missing", &out))
}

func (s *cacheSuite) TestSetThenGet() {
	s.NoError(s.im.Set(mockCtx, "k", &payload{Owner: "0xabc"}))

	var out payload
	s.NoError(s.im.Get(mockCtx, "k", &out))
	s.Equal("0xabc", out.Owner)
}

func (s *cacheSuite) TestGetByFunc() {
	calls := 0
	getter := func() (interface{}, error) {
		calls++
		return &payload{Owner: "0xdef"}, nil
	}

	var out payload
	s.NoError(s.im.GetByFunc(mockCtx, "g", &out, getter))
	s.Equal("0xdef", out.Owner)
	s.Equal(1, calls)

	// second call hits the cache
	var out2 payload
	s.NoError(s.im.GetByFunc(mockCtx, "g", &out2, getter))
	s.Equal("0xdef", out2.Owner)
	s.Equal(1, calls)
}

func (s *cacheSuite) TestDel() {
	s.NoError(s.im.Set(mockCtx, "d", &payload{Owner: "0x1"}))
	s.NoError(s.im.Del(mockCtx, "d"))

	var out payload
	s.Equal(ErrNotFound, s.im.Get(mockCtx, "d", &out))
}
