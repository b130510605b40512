package rocketchat

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// PasswordAliasExempt is the only endpoint that receives the "password"
// field under its own name. Every other POST endpoint gets it as "pass".
const PasswordAliasExempt = "users.create"

// Params is the flat parameter mapping sent to an endpoint, either as a query
// string or as a request body.
type Params map[string]any

// Normalize merges a bundle of extra options into the primary parameters.
// Keys from extra are hoisted to the top level; primary keys win on collision.
// Neither input is modified and a nil extra is treated as empty.
func Normalize(primary, extra Params) Params {
	merged := make(Params, len(primary)+len(extra))

	for key, value := range extra {
		merged[key] = value
	}

	for key, value := range primary {
		merged[key] = value
	}

	return merged
}

// With returns p overlaid on extra, see Normalize.
func (p Params) With(extra Params) Params {
	return Normalize(p, extra)
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	return Normalize(p, nil)
}

// Pop removes key from p and returns its value.
func (p Params) Pop(key string) (any, bool) {
	value, ok := p[key]
	if ok {
		delete(p, key)
	}

	return value, ok
}

// AliasPassword renames the "password" field to "pass" unless endpoint is
// PasswordAliasExempt. It returns a new mapping; p is left untouched.
func AliasPassword(endpoint string, p Params) Params {
	if endpoint == PasswordAliasExempt {
		return p
	}

	password, ok := p["password"]
	if !ok {
		return p
	}

	aliased := p.Clone()
	delete(aliased, "password")
	aliased["pass"] = password

	return aliased
}

// ParamsFrom converts a typed options struct into Params using its
// mapstructure tags. A nil opts yields empty Params.
func ParamsFrom(opts any) (Params, error) {
	params := Params{}
	if opts == nil {
		return params, nil
	}

	var raw map[string]any

	err := mapstructure.Decode(opts, &raw)
	if err != nil {
		return nil, fmt.Errorf("converting options to params: %w", err)
	}

	for key, value := range raw {
		params[key] = value
	}

	return params, nil
}
