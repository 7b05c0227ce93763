package pools

import (
	"github.com/ethereum/go-ethereum/common"
	cmap "github.com/orcaman/concurrent-map/v2"

	"poolwatch/types"
)

// Registry is the shared pool lookup table. It is bulk-populated once at
// startup and only read afterwards, so lookups from concurrent tasks do
// not contend on a single lock.
type Registry struct {
	pools cmap.ConcurrentMap[string, types.Pool]
}

func NewRegistry() *Registry {
	return &Registry{pools: cmap.New[types.Pool]()}
}

func (r *Registry) Insert(p types.Pool) {
	r.pools.Set(p.Address.Hex(), p)
}

// Lookup returns the pool at addr. The returned Pool is a copy owned by
// the caller; nothing in it points back into the shared map.
func (r *Registry) Lookup(addr common.Address) (types.Pool, bool) {
	return r.pools.Get(addr.Hex())
}

// FilterByToken returns every pool holding token on either side of its
// pair, in no particular order.
func (r *Registry) FilterByToken(token common.Address) []types.Pool {
	var res []types.Pool
	for item := range r.pools.IterBuffered() {
		if item.Val.HasToken(token) {
			res = append(res, item.Val)
		}
	}
	return res
}

func (r *Registry) Len() int {
	return r.pools.Count()
}
