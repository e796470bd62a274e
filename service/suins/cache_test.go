package suins

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/domain"
	suinsdomain "github.com/x-xyz/suinsapi/domain/suins"
	"github.com/x-xyz/suinsapi/domain/suins/mocks"
	"github.com/x-xyz/suinsapi/service/cache"
	"github.com/x-xyz/suinsapi/service/cache/provider/primitive"
)

// mockedClient adds the fullnode-only methods to the mocked lookups.
type mockedClient struct {
	*mocks.Client
}

func (mockedClient) GetChainIdentifier(ctx.Ctx) (string, error) { return "", nil }
func (mockedClient) Close()                                     {}

type cacheSuite struct {
	suite.Suite
	client *mocks.Client
	im     Client
}

func (s *cacheSuite) SetupTest() {
	s.client = &mocks.Client{}
	s.im = NewCachedClient(mockedClient{s.client}, cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "suinsClient",
		Cache: primitive.NewPrimitive("test", 1),
	}))
}

func (s *cacheSuite) TearDownTest() {
	s.client.AssertExpectations(s.T())
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(cacheSuite))
}

func (s *cacheSuite) TestResolveNameServiceAddressCached() {
	addr := domain.Address("0xabc")
	s.client.On("ResolveNameServiceAddress", mock.Anything, "alice.sui").Return(&addr, nil).Once()

	for i := 0; i < 2; i++ {
		res, err := s.im.ResolveNameServiceAddress(mockCtx, "alice.sui")
		s.NoError(err)
		s.Require().NotNil(res)
		s.Equal(addr, *res)
	}
}

func (s *cacheSuite) TestUnregisteredNameCached() {
	s.client.On("ResolveNameServiceAddress", mock.Anything, "nobody.sui").Return(nil, nil).Once()

	for i := 0; i < 2; i++ {
		res, err := s.im.ResolveNameServiceAddress(mockCtx, "nobody.sui")
		s.NoError(err)
		s.Nil(res)
	}
}

func (s *cacheSuite) TestErrorsNotCached() {
	cause := errors.New("rpc down")
	s.client.On("ResolveNameServiceAddress", mock.Anything, "bad.sui").Return(nil, cause).Twice()

	for i := 0; i < 2; i++ {
		_, err := s.im.ResolveNameServiceAddress(mockCtx, "bad.sui")
		s.Equal(cause, err)
	}
}

func (s *cacheSuite) TestResolveNameServiceNamesCached() {
	page := &suinsdomain.NamesPage{Data: []string{"alice.sui"}}
	s.client.On("ResolveNameServiceNames", mock.Anything, domain.Address("0xabc"), (*string)(nil), 1).Return(page, nil).Once()

	for i := 0; i < 2; i++ {
		res, err := s.im.ResolveNameServiceNames(mockCtx, "0xabc", nil, 1)
		s.NoError(err)
		s.Equal("alice.sui", *res.First())
	}
}

func (s *cacheSuite) TestPurge() {
	addr := domain.Address("0xabc")
	s.client.On("ResolveNameServiceAddress", mock.Anything, "alice.sui").Return(&addr, nil).Twice()
	page := &suinsdomain.NamesPage{Data: []string{"alice.sui"}}
	s.client.On("ResolveNameServiceNames", mock.Anything, addr, (*string)(nil), 1).Return(page, nil).Twice()

	purger, ok := s.im.(suinsdomain.Purger)
	s.Require().True(ok)

	_, err := s.im.ResolveNameServiceAddress(mockCtx, "alice.sui")
	s.NoError(err)
	s.NoError(purger.PurgeAddress(mockCtx, "alice.sui"))
	_, err = s.im.ResolveNameServiceAddress(mockCtx, "alice.sui")
	s.NoError(err)

	_, err = s.im.ResolveNameServiceNames(mockCtx, addr, nil, 1)
	s.NoError(err)
	s.NoError(purger.PurgeNames(mockCtx, addr))
	_, err = s.im.ResolveNameServiceNames(mockCtx, addr, nil, 1)
	s.NoError(err)
}
