package effectmodel

import "errors"

type EffectEnum string

const (
	EffectLog   EffectEnum = "cacher_ive_go_effect_enum_log"
	EffectMemo  EffectEnum = "cacher_ive_go_effect_enum_memo"
	EffectTable EffectEnum = "cacher_ive_go_effect_enum_table"
)

// Named derives a distinct enum for one named instance of an effect,
// so several handlers of the same kind can live in one context tree.
func (e EffectEnum) Named(name string) EffectEnum {
	if name == "" {
		return e
	}
	return e + "/" + EffectEnum(name)
}

var (
	ErrNoEffectHandler = errors.New("no effect handler registered for this effect")
	ErrHandlerClosed   = errors.New("effect handler closed before resuming")
)

type EffectScopeConfig struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

func NewEffectScopeConfig(bufferSize int, numWorkers int) EffectScopeConfig {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return EffectScopeConfig{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

type Partitionable interface {
	PartitionKey() string
}
