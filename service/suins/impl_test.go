package suins

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/domain"
)

var (
	mockCtx = ctx.Background()
)

// fullnode serves the suix namespace.
type fullnode struct {
	addresses map[string]string
	names     map[string][]string
	limits    []int
}

func (f *fullnode) ResolveNameServiceAddress(name string) (*string, error) {
	if name == "broken.sui" {
		return nil, errors.New("internal error")
	}
	addr, ok := f.addresses[name]
	if !ok {
		return nil, nil
	}
	return &addr, nil
}

type namesPage struct {
	Data        []string `json:"data"`
	NextCursor  *string  `json:"nextCursor"`
	HasNextPage bool     `json:"hasNextPage"`
}

func (f *fullnode) ResolveNameServiceNames(address string, cursor *string, limit int) (*namesPage, error) {
	f.limits = append(f.limits, limit)
	names := f.names[address]
	if limit > 0 && len(names) > limit {
		next := names[limit]
		return &namesPage{Data: names[:limit], NextCursor: &next, HasNextPage: true}, nil
	}
	return &namesPage{Data: names}, nil
}

type chainInfo struct{}

func (chainInfo) GetChainIdentifier() string {
	return "35834a8a"
}

type clientSuite struct {
	suite.Suite
	node   *fullnode
	server *httptest.Server
	im     Client
}

func (s *clientSuite) SetupTest() {
	s.node = &fullnode{
		addresses: map[string]string{"alice.sui": "0xabc"},
		names: map[string][]string{
			"0xabc": {"alice.sui", "alias.sui"},
		},
	}
	srv := rpc.NewServer()
	s.Require().NoError(srv.RegisterName("suix", s.node))
	s.Require().NoError(srv.RegisterName("sui", chainInfo{}))
	s.server = httptest.NewServer(srv)

	im, err := NewClient(&ClientCfg{RpcUrl: s.server.URL})
	s.Require().NoError(err)
	s.im = im
}

func (s *clientSuite) TearDownTest() {
	s.im.Close()
	s.server.Close()
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(clientSuite))
}

func (s *clientSuite) TestResolveNameServiceAddress() {
	addr, err := s.im.ResolveNameServiceAddress(mockCtx, "alice.sui")
	s.NoError(err)
	s.Require().NotNil(addr)
	s.Equal(domain.Address("0xabc"), *addr)

	addr, err = s.im.ResolveNameServiceAddress(mockCtx, "nobody.sui")
	s.NoError(err)
	s.Nil(addr)
}

func (s *clientSuite) TestResolveNameServiceAddressFailed() {
	_, err := s.im.ResolveNameServiceAddress(mockCtx, "broken.sui")
	s.Error(err)
	s.True(strings.HasPrefix(err.Error(), methodResolveNameServiceAddress))

	var rpcErr rpc.Error
	s.True(errors.As(err, &rpcErr))
}

func (s *clientSuite) TestResolveNameServiceNames() {
	page, err := s.im.ResolveNameServiceNames(mockCtx, "0xabc", nil, 1)
	s.NoError(err)
	s.Equal([]string{"alice.sui"}, page.Data)
	s.True(page.HasNextPage)
	s.Equal("alice.sui", *page.First())
	s.Equal([]int{1}, s.node.limits)

	page, err = s.im.ResolveNameServiceNames(mockCtx, "0xdef", nil, 1)
	s.NoError(err)
	s.Equal([]string{}, page.Data)
	s.Nil(page.First())
}

func (s *clientSuite) TestGetChainIdentifier() {
	id, err := s.im.GetChainIdentifier(mockCtx)
	s.NoError(err)
	s.Equal("35834a8a", id)
}

func (s *clientSuite) TestUnreachable() {
	s.server.Close()
	_, err := s.im.GetChainIdentifier(mockCtx)
	s.Error(err)
}
