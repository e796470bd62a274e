package usecase

import (
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/base/log"
	"github.com/x-xyz/suinsapi/domain"
	"github.com/x-xyz/suinsapi/domain/suins"
	"github.com/x-xyz/suinsapi/service/featureflag"
	"github.com/x-xyz/suinsapi/service/query"
)

const (
	batchWorkers = 10
	// MaxBatchSize bounds ResolveNames
	MaxBatchSize = 50
)

type SuinsUseCaseCfg struct {
	Client  suins.Client
	Flags   featureflag.Evaluator
	Queries query.Client
}

type impl struct {
	client  suins.Client
	flags   featureflag.Evaluator
	queries query.Client
}

func New(cfg *SuinsUseCaseCfg) suins.Usecase {
	return &impl{
		client:  cfg.Client,
		flags:   cfg.Flags,
		queries: cfg.Queries,
	}
}

func (im *impl) IsEnabled() bool {
	return im.flags.IsOn(suins.FeatureFlag)
}

// policy of both lookups: a result stays until invalidated and a failure is
// final.
var lookupOptions = query.Options{
	RefetchOnFocus: false,
	Retry:          0,
}

func (im *impl) ResolveAddress(c ctx.Ctx, name string) query.Observer {
	return im.queries.Observe(c, query.Config{
		Key: query.NewKey(suins.QueryTagResolveAddress, name),
		Enabled: func() bool {
			return suins.ShouldResolve(name, im.IsEnabled())
		},
		Fetch: func(qc ctx.Ctx) (interface{}, error) {
			return im.client.ResolveNameServiceAddress(qc, name)
		},
		Options:  lookupOptions,
		Triggers: []query.Trigger{im.flagTrigger},
	})
}

func (im *impl) ResolveName(c ctx.Ctx, address domain.Address) query.Observer {
	return im.queries.Observe(c, query.Config{
		Key: query.NewKey(suins.QueryTagResolveName, string(address)),
		Enabled: func() bool {
			return suins.ShouldResolve(string(address), im.IsEnabled())
		},
		Fetch: func(qc ctx.Ctx) (interface{}, error) {
			page, err := im.client.ResolveNameServiceNames(qc, address, nil, suins.DefaultNameLimit)
			if err != nil {
				return nil, err
			}
			return page.First(), nil
		},
		Options:  lookupOptions,
		Triggers: []query.Trigger{im.flagTrigger},
	})
}

// flagTrigger re-evaluates an observer whenever the flag flips.
func (im *impl) flagTrigger(notify func()) func() {
	return im.flags.Subscribe(suins.FeatureFlag, func(bool) {
		notify()
	})
}

// ResolveNames waits for the default name of every address. Addresses whose
// lookup failed or did not finish before c is done are left out.
func (im *impl) ResolveNames(c ctx.Ctx, addresses []domain.Address) (map[domain.Address]*string, error) {
	if !im.IsEnabled() {
		return nil, domain.ErrFeatureDisabled
	}
	if len(addresses) > MaxBatchSize {
		return nil, domain.ErrTooManyItems
	}

	uniq := make([]domain.Address, 0, len(addresses))
	seen := make(map[domain.Address]bool, len(addresses))
	for _, a := range addresses {
		if a.IsEmpty() || seen[a] {
			continue
		}
		seen[a] = true
		uniq = append(uniq, a)
	}

	type result struct {
		address domain.Address
		name    *string
	}

	res := make(map[domain.Address]*string, len(uniq))
	if len(uniq) == 0 {
		return res, nil
	}

	b := goroutines.NewBatch(batchWorkers, goroutines.WithBatchSize(len(uniq)))
	defer b.Close()
	for i := range uniq {
		address := uniq[i]
		b.Queue(func() (interface{}, error) {
			o := im.ResolveName(c, address)
			defer o.Close()

			st, err := o.Wait(c)
			if err != nil {
				return nil, err
			}
			if st.Status == query.StatusError {
				return nil, st.Err
			}
			name, _ := st.Data.(*string)
			return &result{address, name}, nil
		})
	}
	b.QueueComplete()

	var lastErr error
	for ret := range b.Results() {
		if err := ret.Error(); err != nil {
			lastErr = err
			continue
		}
		r := ret.Value().(*result)
		res[r.address] = r.name
	}

	if len(res) == 0 && lastErr != nil {
		c.WithFields(log.Fields{
			"err":   lastErr,
			"count": len(uniq),
		}).Warn("every name lookup failed")
		return nil, lastErr
	}
	return res, nil
}

func (im *impl) Invalidate(c ctx.Ctx, tag string, input string) error {
	if input == "" {
		return domain.ErrBadParamInput
	}

	var err error
	purger, canPurge := im.client.(suins.Purger)
	switch tag {
	case suins.QueryTagResolveAddress:
		if canPurge {
			err = purger.PurgeAddress(c, input)
		}
	case suins.QueryTagResolveName:
		if canPurge {
			err = purger.PurgeNames(c, domain.Address(input))
		}
	default:
		return domain.ErrBadParamInput
	}
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"tag":   tag,
			"input": input,
		}).Error("failed to purge client cache")
		return err
	}

	im.queries.Invalidate(c, query.NewKey(tag, input))
	return nil
}
