package usecase

import (
	"github.com/x-xyz/suinsapi/base/ctx"
	hcdomain "github.com/x-xyz/suinsapi/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(c ctx.Ctx) (map[string]string, error) {
	status := map[string]string{}
	var firstErr error

	if err := im.repo.PingRedis(c); err != nil {
		status["redis"] = err.Error()
		firstErr = err
	} else {
		status["redis"] = "ok"
	}

	if id, err := im.repo.PingChain(c); err != nil {
		status["sui"] = err.Error()
		if firstErr == nil {
			firstErr = err
		}
	} else {
		status["sui"] = "ok"
		status["chainIdentifier"] = id
	}

	return status, firstErr
}
