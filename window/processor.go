package window

import (
	"streamagg/agg"
	"streamagg/config"
	"streamagg/partition"
	"streamagg/value"
)

// Policy selects how a processor windows its stream.
type Policy uint8

const (
	PolicySliding Policy = iota
	PolicyBatch
)

// Processor wires a named aggregator to a window policy and a
// partition arena: lookup through the extension registry, init-time
// validation, then per-event dispatch keyed by the group-by tuple.
type Processor struct {
	exec    agg.Executor
	arena   *partition.Store
	sliding *Length
	batch   *LengthBatch
}

func NewProcessor(aggregator string, policy Policy, length int,
	args []agg.Argument, cfg config.Reader, qctx *agg.QueryContext) (*Processor, error) {

	exec, err := agg.Lookup(aggregator)
	if err != nil {
		return nil, err
	}

	mode := agg.ProcessingModeSlide
	if policy == PolicyBatch {
		mode = agg.ProcessingModeBatch
	}
	factory, err := exec.Init(&agg.InitParams{
		Arguments:                  args,
		Mode:                       mode,
		OutputExpectsExpiredEvents: policy == PolicySliding,
		Config:                     cfg,
		Query:                      qctx,
	})
	if err != nil {
		return nil, err
	}

	p := &Processor{
		exec:  exec,
		arena: partition.NewStore(factory),
	}
	if policy == PolicyBatch {
		p.batch, err = NewLengthBatch(length, exec, p.arena)
	} else {
		p.sliding, err = NewLength(length, exec, p.arena)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Process routes one event to its partition's window. For sliding
// windows emitted is always true; for batch windows it is true only
// when the event completed a batch.
func (p *Processor) Process(groupBy []value.Value, v value.Value) (out value.Value, emitted bool, err error) {
	key := partition.KeyOf(groupBy...)
	if p.batch != nil {
		return p.batch.Append(key, v)
	}
	out, err = p.sliding.Append(key, v)
	return out, err == nil, err
}

func (p *Processor) ReturnType() value.Type {
	return p.exec.ReturnType()
}

// Arena exposes the partition store for checkpointing and eviction.
func (p *Processor) Arena() *partition.Store {
	return p.arena
}
