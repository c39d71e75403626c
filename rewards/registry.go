package rewards

import (
	"maps"
	"slices"
)

// Registry holds the named pools and the bucket template of each stream. It is built once, validated,
// and read-only afterwards, so it can be shared by every engine in the process.
type Registry struct {
	pools     map[string]Pool
	templates map[Stream][]string
}

// NewRegistry copies and validates pools and templates. Every problem found is reported in one ConfigError.
func NewRegistry(pools map[string]Pool, templates map[Stream][]string) (*Registry, error) {
	r := &Registry{
		pools:     make(map[string]Pool, len(pools)),
		templates: make(map[Stream][]string, len(templates)),
	}
	var errs problems

	for _, name := range slices.Sorted(maps.Keys(pools)) {
		pool := pools[name]
		if len(pool) == 0 {
			errs.add("pool %q has no entries", name)
			continue
		}
		for i, e := range pool {
			if e.Weight < 0 {
				errs.add("pool %q entry %d (%s) has negative weight %d", name, i, e.Reward, e.Weight)
			}
			if e.Reward == "" {
				errs.add("pool %q entry %d has an empty reward", name, i)
			}
		}
		if weightOverflows(pool) {
			errs.add("pool %q total weight overflows int64", name)
		} else if pool.TotalWeight() <= 0 {
			errs.add("pool %q has zero total weight", name)
		}
		r.pools[name] = slices.Clone(pool)
	}

	for _, s := range Streams {
		tmpl := templates[s]
		if len(tmpl) == 0 {
			errs.add("template %s is empty", s)
			continue
		}
		for i, name := range tmpl {
			if _, ok := pools[name]; !ok {
				errs.add("template %s position %d references unknown pool %q", s, i, name)
			}
		}
		r.templates[s] = slices.Clone(tmpl)
	}

	if err := errs.err(); err != nil {
		return nil, err
	}
	return r, nil
}

// Pool returns the entries registered under name. An unknown name is a configuration bug.
func (r *Registry) Pool(name string) (Pool, error) {
	p, ok := r.pools[name]
	if !ok {
		return nil, configErrorf("unknown pool %q", name)
	}
	return slices.Clone(p), nil
}

// Template returns the ordered pool names drawn during one cycle of the stream.
func (r *Registry) Template(s Stream) ([]string, error) {
	t, ok := r.templates[s]
	if !ok {
		return nil, configErrorf("no template for %s", s)
	}
	return slices.Clone(t), nil
}

// PoolNames lists registered pools in sorted order.
func (r *Registry) PoolNames() []string {
	return slices.Sorted(maps.Keys(r.pools))
}

// Outcomes lists every token the stream can produce, in order of first appearance in its template.
func (r *Registry) Outcomes(s Stream) []Token {
	var out []Token
	seen := make(map[Token]bool)
	for _, name := range r.templates[s] {
		for _, e := range r.pools[name] {
			if e.Weight <= 0 || seen[e.Reward] {
				continue
			}
			seen[e.Reward] = true
			out = append(out, e.Reward)
		}
	}
	return out
}

func weightOverflows(pool Pool) bool {
	var total int64
	for _, e := range pool {
		if e.Weight <= 0 {
			continue
		}
		if total+e.Weight < total {
			return true
		}
		total += e.Weight
	}
	return false
}
