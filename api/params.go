package apiclient

import (
	"fmt"
	"net/url"
	"sort"
)

// Params holds list filters and paging options. Empty and nil values are
// dropped from the query string: sending `status=` would over-constrain the
// server query instead of meaning "any status".
type Params map[string]interface{}

func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		val := p[k]
		if val == nil {
			continue
		}
		if s, ok := val.(string); ok {
			if s == "" {
				continue
			}
			v.Add(k, s)
			continue
		}
		v.Add(k, fmt.Sprint(val))
	}
	return v
}

// Clone returns an independent copy so a screen can snapshot the filters
// active at submit time.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	cp := make(Params, len(p))
	for k, v := range p {
		cp[k] = v
	}
	return cp
}
