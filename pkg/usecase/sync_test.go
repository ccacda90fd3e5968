package usecase_test

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/optsync/pkg/domain/model"
	"github.com/secmon-lab/optsync/pkg/repository/memory"
	"github.com/secmon-lab/optsync/pkg/usecase"
)

func newExampleField() *memory.Field {
	return memory.New(
		&model.Option{ID: "1", Value: "A"},
		&model.Option{ID: "2", Value: "B"},
		&model.Option{ID: "3", Value: "Other"},
	)
}

func enabledSet(opts model.Options) []string {
	values := opts.EnabledValues()
	slices.Sort(values)
	return values
}

func TestSync_Example(t *testing.T) {
	ctx := context.Background()
	field := newExampleField()
	uc := usecase.New(field, usecase.WithFieldID("customfield_10100"))

	report, err := uc.Sync.Sync(ctx, usecase.SyncInput{
		Desired:    []string{"B", "C"},
		StaticTail: []string{"Other"},
	})
	gt.NoError(t, err).Required()

	gt.Value(t, report.FieldID).Equal("customfield_10100")
	gt.Value(t, report.Plan.Disable).Equal([]string{"A"})
	gt.Value(t, report.Plan.Add).Equal([]string{"C"})
	gt.Value(t, report.Plan.Enable).Equal([]string{"Other", "B", "C"})
	gt.Value(t, report.Order).Equal([]string{"B", "C", "Other"})

	c := field.Snapshot().Find("C")
	gt.Value(t, c).NotNil()
	gt.Value(t, report.Positions).Equal(model.PositionMap{
		"2":  "1",
		c.ID: "2",
		"3":  "3",
	})

	a := field.Snapshot().Find("A")
	gt.Bool(t, a.Disabled).True()
	gt.Value(t, enabledSet(field.Snapshot())).Equal([]string{"B", "C", "Other"})
}

func TestSync_PhaseOrder(t *testing.T) {
	ctx := context.Background()
	field := newExampleField()
	uc := usecase.New(field)

	_, err := uc.Sync.Sync(ctx, usecase.SyncInput{
		Desired:    []string{"B", "C", "D"},
		StaticTail: []string{"Other"},
	})
	gt.NoError(t, err).Required()

	var ops []string
	for _, call := range field.Calls() {
		switch {
		case call.Op == memory.OpSetEnabled && !call.Enabled:
			ops = append(ops, "disable:"+string(call.OptionID))
		case call.Op == memory.OpSetEnabled:
			ops = append(ops, "enable:"+string(call.OptionID))
		case call.Op == memory.OpAdd:
			ops = append(ops, "add:"+call.Value+"@"+call.Position)
		default:
			ops = append(ops, call.Op)
		}
	}

	c := field.Snapshot().Find("C").ID
	d := field.Snapshot().Find("D").ID
	gt.Value(t, ops).Equal([]string{
		memory.OpList,
		"disable:1",
		"add:C@0",
		"add:D@1",
		memory.OpList,
		"enable:3",
		"enable:2",
		"enable:" + string(c),
		"enable:" + string(d),
		memory.OpList,
		memory.OpReposition,
	})
}

func TestSync_NoDesiredOptions(t *testing.T) {
	tests := []struct {
		name    string
		desired []string
	}{
		{name: "empty input", desired: nil},
		{name: "blank lines only", desired: []string{"", "  "}},
		{name: "static values only", desired: []string{"Other"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := newExampleField()
			uc := usecase.New(field)

			report, err := uc.Sync.Sync(context.Background(), usecase.SyncInput{
				Desired:    tt.desired,
				StaticTail: []string{"Other"},
			})
			gt.Value(t, report).Nil()
			gt.Bool(t, errors.Is(err, usecase.ErrNoDesiredOptions)).True()
			gt.Array(t, field.Calls()).Length(0)
		})
	}
}

func TestSync_Idempotent(t *testing.T) {
	ctx := context.Background()
	field := newExampleField()
	uc := usecase.New(field)
	input := usecase.SyncInput{
		Desired:    []string{"Delta", "B", "Charlie"},
		StaticTail: []string{"Other"},
	}

	first, err := uc.Sync.Sync(ctx, input)
	gt.NoError(t, err).Required()
	afterFirst := field.Snapshot()
	field.ResetCalls()

	second, err := uc.Sync.Sync(ctx, input)
	gt.NoError(t, err).Required()

	gt.Value(t, field.Snapshot()).Equal(afterFirst)
	gt.Array(t, second.Plan.Add).Length(0)
	gt.Value(t, second.Plan.Disable).Equal([]string{"A"})
	gt.Value(t, second.Positions).Equal(first.Positions)

	for _, call := range field.Mutations() {
		gt.Bool(t, call.Op == memory.OpAdd).False()
		if call.Op == memory.OpReposition {
			gt.Value(t, call.Positions).Equal(first.Positions)
		}
	}
}

func TestSync_ConvergenceAndNonDestruction(t *testing.T) {
	tests := []struct {
		name    string
		initial []*model.Option
		desired []string
		static  []string
	}{
		{
			name:    "empty remote field",
			desired: []string{"b", "a"},
			static:  []string{"Other"},
		},
		{
			name: "re-enable previously disabled",
			initial: []*model.Option{
				{ID: "1", Value: "a", Disabled: true},
				{ID: "2", Value: "Other", Disabled: true},
				{ID: "3", Value: "z"},
			},
			desired: []string{"a"},
			static:  []string{"Other"},
		},
		{
			name: "multiple static values",
			initial: []*model.Option{
				{ID: "1", Value: "N/A"},
				{ID: "2", Value: "x"},
			},
			desired: []string{"y", "x"},
			static:  []string{"Other", "N/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			field := memory.New(tt.initial...)
			before := field.Snapshot()

			report, err := usecase.New(field).Sync.Sync(ctx, usecase.SyncInput{
				Desired:    tt.desired,
				StaticTail: tt.static,
			})
			gt.NoError(t, err).Required()

			after := field.Snapshot()
			want, _ := usecase.MergeDesired(tt.static, tt.desired)
			slices.Sort(want)
			gt.Value(t, enabledSet(after)).Equal(want)

			for _, opt := range before {
				found := false
				for _, cur := range after {
					if cur.ID == opt.ID {
						found = true
						gt.Value(t, cur.Value).Equal(opt.Value)
					}
				}
				gt.Bool(t, found).True()
			}

			gt.Bool(t, report.Positions.Contiguous()).True()
			assertOrdering(t, after, report.Positions, tt.static)
		})
	}
}

func assertOrdering(t *testing.T, options model.Options, positions model.PositionMap, static []string) {
	t.Helper()

	byID := make(map[model.OptionID]*model.Option)
	for _, opt := range options {
		byID[opt.ID] = opt
	}

	var prev string
	staticIdx := 0
	for _, id := range positions.Ordered() {
		value := byID[id].Value
		if slices.Contains(static, value) {
			gt.Value(t, value).Equal(static[staticIdx])
			staticIdx++
			continue
		}
		gt.Number(t, staticIdx).Equal(0)
		gt.Bool(t, prev < value).True()
		prev = value
	}
	gt.Number(t, staticIdx).Equal(len(static))
}

func TestSync_DryRun(t *testing.T) {
	ctx := context.Background()
	field := newExampleField()
	before := field.Snapshot()

	report, err := usecase.New(field).Sync.Sync(ctx, usecase.SyncInput{
		Desired:    []string{"B", "C", "D"},
		StaticTail: []string{"Other"},
		DryRun:     true,
	})
	gt.NoError(t, err).Required()

	gt.Bool(t, report.DryRun).True()
	gt.Value(t, report.Plan.Disable).Equal([]string{"A"})
	gt.Value(t, report.Plan.Add).Equal([]string{"C", "D"})
	gt.Array(t, field.Mutations()).Length(0)
	gt.Number(t, len(field.Calls())).Equal(3)
	gt.Value(t, field.Snapshot()).Equal(before)
}

func TestSync_PartialFailureThenRerunConverges(t *testing.T) {
	ctx := context.Background()
	field := newExampleField()
	injected := errors.New("500 internal server error")
	field.FailAfter(memory.OpAdd, 1, injected)

	input := usecase.SyncInput{
		Desired:    []string{"E", "D", "C"},
		StaticTail: []string{"Other"},
	}

	_, err := usecase.New(field).Sync.Sync(ctx, input)
	gt.Bool(t, errors.Is(err, injected)).True()

	// First add survived, no rollback
	gt.Value(t, field.Snapshot().Find("C")).NotNil()
	gt.Value(t, field.Snapshot().Find("D")).Nil()
	gt.Bool(t, field.Snapshot().Find("A").Disabled).True()

	field.FailAfter(memory.OpAdd, 1000, injected)
	report, err := usecase.New(field).Sync.Sync(ctx, input)
	gt.NoError(t, err).Required()

	gt.Value(t, report.Plan.Add).Equal([]string{"D", "E"})
	gt.Value(t, enabledSet(field.Snapshot())).Equal([]string{"C", "D", "E", "Other"})
	gt.Value(t, report.Order).Equal([]string{"C", "D", "E", "Other"})
}

func TestSync_ReorderFailureAborts(t *testing.T) {
	ctx := context.Background()
	field := newExampleField()
	injected := errors.New("403 forbidden")
	field.FailAfter(memory.OpReposition, 0, injected)

	report, err := usecase.New(field).Sync.Sync(ctx, usecase.SyncInput{
		Desired:    []string{"B"},
		StaticTail: []string{"Other"},
	})
	gt.Value(t, report).Nil()
	gt.Bool(t, errors.Is(err, injected)).True()
}

// lookupMissClient drops a value from every listing to simulate an add that
// the remote side accepted but never exposes
type lookupMissClient struct {
	*memory.Field
	hidden string
}

func (c *lookupMissClient) ListOptions(ctx context.Context) (model.Options, error) {
	opts, err := c.Field.ListOptions(ctx)
	if err != nil {
		return nil, err
	}
	var visible model.Options
	for _, opt := range opts {
		if opt.Value != c.hidden {
			visible = append(visible, opt)
		}
	}
	return visible, nil
}

func TestSync_LookupMissIsHardFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("desired value", func(t *testing.T) {
		field := newExampleField()
		client := &lookupMissClient{Field: field, hidden: "C"}

		_, err := usecase.New(client).Sync.Sync(ctx, usecase.SyncInput{
			Desired:    []string{"B", "C"},
			StaticTail: []string{"Other"},
		})
		gt.Bool(t, errors.Is(err, usecase.ErrOptionNotFound)).True()

		// nothing was enabled because resolution happens before the first enable call
		for _, call := range field.Mutations() {
			if call.Op == memory.OpSetEnabled {
				gt.Bool(t, call.Enabled).False()
			}
		}
	})

	t.Run("static value hidden from listings", func(t *testing.T) {
		field := newExampleField()
		client := &lookupMissClient{Field: field, hidden: "Other"}

		_, err := usecase.New(client).Sync.Sync(ctx, usecase.SyncInput{
			Desired:    []string{"B"},
			StaticTail: []string{"Other"},
		})
		gt.Bool(t, errors.Is(err, usecase.ErrOptionNotFound)).True()
	})
}

type recordingNotifier struct {
	reports []*model.SyncReport
	err     error
}

func (n *recordingNotifier) NotifySync(ctx context.Context, report *model.SyncReport) error {
	n.reports = append(n.reports, report)
	return n.err
}

func TestSync_Notifier(t *testing.T) {
	ctx := context.Background()
	input := usecase.SyncInput{
		Desired:    []string{"B"},
		StaticTail: []string{"Other"},
	}

	t.Run("receives report", func(t *testing.T) {
		notifier := &recordingNotifier{}
		report, err := usecase.New(newExampleField(), usecase.WithNotifier(notifier)).Sync.Sync(ctx, input)
		gt.NoError(t, err).Required()
		gt.Array(t, notifier.reports).Length(1)
		gt.Value(t, notifier.reports[0]).Equal(report)
	})

	t.Run("notification failure does not fail the run", func(t *testing.T) {
		notifier := &recordingNotifier{err: errors.New("channel_not_found")}
		_, err := usecase.New(newExampleField(), usecase.WithNotifier(notifier)).Sync.Sync(ctx, input)
		gt.NoError(t, err)
	})
}

func TestListOptions(t *testing.T) {
	opts, err := usecase.New(newExampleField()).ListOptions(context.Background())
	gt.NoError(t, err).Required()
	gt.Value(t, opts.Values()).Equal([]string{"A", "B", "Other"})
}

func TestDryRunClient(t *testing.T) {
	ctx := context.Background()
	field := newExampleField()
	client := usecase.NewDryRunClient(field)

	opts, err := client.ListOptions(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, opts).Length(3)

	added, err := client.AddOption(ctx, "Z", "0")
	gt.NoError(t, err).Required()
	gt.Array(t, added).Length(0)

	_, err = client.SetEnabled(ctx, "1", false)
	gt.NoError(t, err).Required()
	_, err = client.Reposition(ctx, model.PositionMap{"1": strconv.Itoa(1)})
	gt.NoError(t, err).Required()

	gt.Array(t, field.Mutations()).Length(0)
	gt.Array(t, field.Calls()).Length(1)
}
