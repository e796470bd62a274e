package suins

import (
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/xerrors"

	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/base/log"
	"github.com/x-xyz/suinsapi/base/metrics"
	"github.com/x-xyz/suinsapi/domain"
	suinsdomain "github.com/x-xyz/suinsapi/domain/suins"
)

const defaultTimeout = 10 * time.Second

type impl struct {
	rpc *rpc.Client
	met metrics.Service
}

func NewClient(cfg *ClientCfg) (Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client, err := rpc.DialHTTPWithClient(cfg.RpcUrl, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, xerrors.Errorf("failed to dial sui rpc %s: %w", cfg.RpcUrl, err)
	}
	return &impl{
		rpc: client,
		met: metrics.New("suirpc"),
	}, nil
}

func (im *impl) call(c ctx.Ctx, result interface{}, method string, args ...interface{}) error {
	defer im.met.BumpTime("call.latency", "method", method).End()
	if err := im.rpc.CallContext(c, result, method, args...); err != nil {
		im.met.BumpSum("call.err", 1, "method", method)
		c.WithFields(log.Fields{
			"err":    err,
			"method": method,
		}).Error("failed to rpc.CallContext")
		return xerrors.Errorf("%s: %w", method, err)
	}
	return nil
}

func (im *impl) ResolveNameServiceAddress(c ctx.Ctx, name string) (*domain.Address, error) {
	var res *string
	if err := im.call(c, &res, methodResolveNameServiceAddress, name); err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	addr := domain.Address(*res)
	return &addr, nil
}

func (im *impl) ResolveNameServiceNames(c ctx.Ctx, address domain.Address, cursor *string, limit int) (*suinsdomain.NamesPage, error) {
	res := &suinsdomain.NamesPage{}
	if err := im.call(c, res, methodResolveNameServiceNames, address, cursor, limit); err != nil {
		return nil, err
	}
	if res.Data == nil {
		res.Data = []string{}
	}
	return res, nil
}

func (im *impl) GetChainIdentifier(c ctx.Ctx) (string, error) {
	var res string
	if err := im.call(c, &res, methodGetChainIdentifier); err != nil {
		return "", err
	}
	return res, nil
}

func (im *impl) Close() {
	im.rpc.Close()
}
