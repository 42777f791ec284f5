package tactic

import (
	"github.com/mitchellh/mapstructure"
)

// Params is the untyped option bag handed to With. Each configurable tactic
// documents its recognized keys on its options struct; unrecognized keys are
// rejected at construction time.
type Params map[string]any

// decodeParams fills a tactic's typed options struct from a parameter bag.
// Unused keys and type mismatches become ConfigErrors.
func decodeParams(tactic string, params Params, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return &ConfigError{Tactic: tactic, Detail: err.Error()}
	}
	if err := decoder.Decode(map[string]any(params)); err != nil {
		return &ConfigError{Tactic: tactic, Detail: err.Error()}
	}
	return nil
}
