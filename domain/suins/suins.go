package suins

import (
	"strings"

	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/domain"
	"github.com/x-xyz/suinsapi/service/query"
)

// FeatureFlag gates every SuiNS lookup.
const FeatureFlag = "suins"

const (
	// QueryTagResolveAddress keys name -> address lookups
	QueryTagResolveAddress = "resolve-suins-address"
	// QueryTagResolveName keys address -> name lookups
	QueryTagResolveName = "resolve-suins-name"
)

// DefaultNameLimit is the page size of reverse lookups. Only the default name
// is wanted, which the fullnode returns first.
const DefaultNameLimit = 1

// Domains should align with whatever names we want to be able to resolve.
var Domains = []string{".sui"}

// IsSuiNSName reports whether name ends with one of Domains.
func IsSuiNSName(name string) bool {
	for _, d := range Domains {
		if strings.HasSuffix(name, d) {
			return true
		}
	}
	return false
}

// ShouldResolve is the enabled predicate of both lookups.
func ShouldResolve(input string, flagOn bool) bool {
	return input != "" && flagOn
}

// NamesPage is one page of names owned by an address.
type NamesPage struct {
	Data        []string `json:"data"`
	NextCursor  *string  `json:"nextCursor"`
	HasNextPage bool     `json:"hasNextPage"`
}

// First returns the first name of the page, nil if there is none.
func (p *NamesPage) First() *string {
	if p == nil || len(p.Data) == 0 {
		return nil
	}
	name := p.Data[0]
	return &name
}

// Client is the subset of the sui fullnode api used for name service lookups.
type Client interface {
	// ResolveNameServiceAddress returns nil when the name is not registered.
	ResolveNameServiceAddress(c ctx.Ctx, name string) (*domain.Address, error)
	ResolveNameServiceNames(c ctx.Ctx, address domain.Address, cursor *string, limit int) (*NamesPage, error)
}

// Purger is implemented by clients that keep their own cache of lookups.
type Purger interface {
	PurgeAddress(c ctx.Ctx, name string) error
	PurgeNames(c ctx.Ctx, address domain.Address) error
}

type Usecase interface {
	IsEnabled() bool
	// ResolveAddress observes the name -> address lookup. Data is a
	// *domain.Address, nil when not found.
	ResolveAddress(c ctx.Ctx, name string) query.Observer
	// ResolveName observes the address -> default name lookup. Data is a
	// *string, nil when the address has no name.
	ResolveName(c ctx.Ctx, address domain.Address) query.Observer
	// ResolveNames waits for the default names of many addresses.
	ResolveNames(c ctx.Ctx, addresses []domain.Address) (map[domain.Address]*string, error)
	// Invalidate drops the cached lookup so the next observer refetches.
	Invalidate(c ctx.Ctx, tag string, input string) error
}
