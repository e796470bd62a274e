package suins

import (
	"time"

	"github.com/x-xyz/suinsapi/base/ctx"
	suinsdomain "github.com/x-xyz/suinsapi/domain/suins"
)

const (
	methodResolveNameServiceAddress = "suix_resolveNameServiceAddress"
	methodResolveNameServiceNames   = "suix_resolveNameServiceNames"
	methodGetChainIdentifier        = "sui_getChainIdentifier"
)

// Client talks to a sui fullnode over JSON-RPC.
type Client interface {
	suinsdomain.Client
	GetChainIdentifier(c ctx.Ctx) (string, error)
	Close()
}

type ClientCfg struct {
	// RpcUrl example: https://fullnode.mainnet.sui.io:443
	RpcUrl  string
	Timeout time.Duration
}
