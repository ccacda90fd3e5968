package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/domain/interfaces"
	"github.com/secmon-lab/optsync/pkg/domain/model"
)

// Operation names recorded in the call log. They mirror the remote API ops.
const (
	OpList       = "list"
	OpAdd        = "addOption"
	OpSetEnabled = "updateEnabled"
	OpReposition = "movePositions"
)

// Call is one recorded invocation of the field
type Call struct {
	Op        string
	Value     string
	Position  string
	OptionID  model.OptionID
	Enabled   bool
	Positions model.PositionMap
}

// IsMutation reports whether the call changes remote state
func (c Call) IsMutation() bool {
	return c.Op != OpList
}

// Field is an in-memory single-select field that behaves like the remote
// context-manager endpoint. Options are never removed.
type Field struct {
	mu      sync.RWMutex
	options []*model.Option
	nextID  int
	calls   []Call
	failers map[string]failer
}

type failer struct {
	after int
	err   error
}

var _ interfaces.FieldOptionClient = &Field{}

// New creates a field pre-populated with options. Options without an ID get
// a generated numeric one.
func New(options ...*model.Option) *Field {
	f := &Field{
		nextID:  10000,
		failers: make(map[string]failer),
	}
	for _, opt := range options {
		copied := *opt
		if copied.ID == "" {
			copied.ID = f.newID()
		}
		f.options = append(f.options, &copied)
	}
	return f
}

// FailAfter makes the field return err for op once it has succeeded n times
func (f *Field) FailAfter(op string, n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failers[op] = failer{after: n, err: err}
}

// Calls returns a copy of the call log
func (f *Field) Calls() []Call {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Call(nil), f.calls...)
}

// Mutations returns recorded calls that change remote state
func (f *Field) Mutations() []Call {
	var calls []Call
	for _, c := range f.Calls() {
		if c.IsMutation() {
			calls = append(calls, c)
		}
	}
	return calls
}

// ResetCalls clears the call log without touching options
func (f *Field) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Snapshot returns a copy of the current options in display order
func (f *Field) Snapshot() model.Options {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.copyOptions()
}

func (f *Field) ListOptions(ctx context.Context) (model.Options, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record(Call{Op: OpList}); err != nil {
		return nil, err
	}
	return f.copyOptions(), nil
}

func (f *Field) AddOption(ctx context.Context, value string, position string) (model.Options, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record(Call{Op: OpAdd, Value: value, Position: position}); err != nil {
		return nil, err
	}
	if value == "" {
		return nil, goerr.Wrap(ErrInvalidRequest, "option value is required")
	}

	idx, err := strconv.Atoi(position)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidRequest, "position must be numeric", goerr.V("position", position))
	}
	idx = max(0, min(idx, len(f.options)))

	opt := &model.Option{ID: f.newID(), Value: value}
	f.options = append(f.options, nil)
	copy(f.options[idx+1:], f.options[idx:])
	f.options[idx] = opt

	return f.copyOptions(), nil
}

func (f *Field) SetEnabled(ctx context.Context, id model.OptionID, enabled bool) (model.Options, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record(Call{Op: OpSetEnabled, OptionID: id, Enabled: enabled}); err != nil {
		return nil, err
	}

	opt := f.find(id)
	if opt == nil {
		return nil, goerr.Wrap(ErrNotFound, "option not found", goerr.V("option_id", id))
	}
	opt.Disabled = !enabled

	return f.copyOptions(), nil
}

func (f *Field) Reposition(ctx context.Context, positions model.PositionMap) (model.Options, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record(Call{Op: OpReposition, Positions: copyPositions(positions)}); err != nil {
		return nil, err
	}

	rank := make(map[model.OptionID]int, len(positions))
	for id, pos := range positions {
		if f.find(id) == nil {
			return nil, goerr.Wrap(ErrNotFound, "option not found", goerr.V("option_id", id))
		}
		n, err := strconv.Atoi(pos)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidRequest, "position must be numeric",
				goerr.V("option_id", id), goerr.V("position", pos))
		}
		rank[id] = n
	}

	// Unmapped options keep their relative order after the mapped ones.
	sort.SliceStable(f.options, func(i, j int) bool {
		ri, iok := rank[f.options[i].ID]
		rj, jok := rank[f.options[j].ID]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		default:
			return false
		}
	})

	return f.copyOptions(), nil
}

func (f *Field) record(c Call) error {
	count := 0
	for _, prev := range f.calls {
		if prev.Op == c.Op {
			count++
		}
	}
	if fl, ok := f.failers[c.Op]; ok && count >= fl.after {
		return goerr.Wrap(fl.err, "injected failure", goerr.V("op", c.Op))
	}
	f.calls = append(f.calls, c)
	return nil
}

func (f *Field) find(id model.OptionID) *model.Option {
	for _, opt := range f.options {
		if opt.ID == id {
			return opt
		}
	}
	return nil
}

func (f *Field) newID() model.OptionID {
	f.nextID++
	return model.OptionID(strconv.Itoa(f.nextID))
}

func (f *Field) copyOptions() model.Options {
	copied := make(model.Options, 0, len(f.options))
	for _, opt := range f.options {
		c := *opt
		copied = append(copied, &c)
	}
	return copied
}

func copyPositions(positions model.PositionMap) model.PositionMap {
	copied := make(model.PositionMap, len(positions))
	for id, pos := range positions {
		copied[id] = pos
	}
	return copied
}
