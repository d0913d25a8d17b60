package geo

import "context"

// StaticResolver always returns the same location. Test double.
type StaticResolver struct {
	Loc Location
}

func (r StaticResolver) Lookup(context.Context, string) Location {
	return r.Loc
}
