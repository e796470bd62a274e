package healthcheck

import (
	"github.com/x-xyz/suinsapi/base/ctx"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	// Check returns the status of every dependency and the first failure.
	Check(c ctx.Ctx) (map[string]string, error)
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingRedis(c ctx.Ctx) error
	// PingChain returns the chain identifier of the fullnode
	PingChain(c ctx.Ctx) (string, error)
}

// ChainPinger is the part of the sui client the health check needs.
type ChainPinger interface {
	GetChainIdentifier(c ctx.Ctx) (string, error)
}
