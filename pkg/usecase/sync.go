package usecase

import (
	"context"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/domain/interfaces"
	"github.com/secmon-lab/optsync/pkg/domain/model"
	"github.com/secmon-lab/optsync/pkg/utils/logging"
)

// DefaultStaticTail is appended to the ordering when no static options are configured
var DefaultStaticTail = []string{"Other"}

// SyncUseCase reconciles the options of one remote single-select field
// against a desired list
type SyncUseCase struct {
	client   interfaces.FieldOptionClient
	notifier interfaces.SyncNotifier
	fieldID  string
}

// NewSyncUseCase creates a new SyncUseCase instance. notifier may be nil.
func NewSyncUseCase(client interfaces.FieldOptionClient, notifier interfaces.SyncNotifier, fieldID string) *SyncUseCase {
	return &SyncUseCase{
		client:   client,
		notifier: notifier,
		fieldID:  fieldID,
	}
}

// SyncInput represents input for one reconciliation run
type SyncInput struct {
	// Desired holds externally supplied values in input order
	Desired []string
	// StaticTail holds values that are always enabled and pinned last
	StaticTail []string
	// DryRun computes and logs the plan without mutating calls
	DryRun bool
}

// Sync brings the remote field in line with the desired list: options absent
// from the list are disabled, missing ones are added, every desired option is
// enabled and the whole field is reordered alphabetically with the static
// tail last. Re-running with the same input converges to the same state.
func (uc *SyncUseCase) Sync(ctx context.Context, input SyncInput) (*model.SyncReport, error) {
	staticTail := NormalizeStaticTail(input.StaticTail)
	desired, externalCount := MergeDesired(staticTail, input.Desired)
	if externalCount == 0 {
		return nil, goerr.Wrap(ErrNoDesiredOptions, "desired list has no values beyond static options",
			goerr.V("static_options", staticTail))
	}

	report := &model.SyncReport{
		RunID:   model.NewRunID(),
		FieldID: uc.fieldID,
		DryRun:  input.DryRun,
	}
	logger := logging.From(ctx).With("run_id", report.RunID, "dry_run", input.DryRun)
	ctx = logging.With(ctx, logger)

	client := uc.client
	if input.DryRun {
		client = newDryRunClient(client)
	}

	current, err := client.ListOptions(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list current options")
	}
	snapshot := model.NewSnapshot(current)
	logger.Debug("Current remote options", "options", current.Values())

	toDisable, toAdd := PlanDiff(snapshot.Values(), desired)
	report.Plan = model.Plan{
		Disable: toDisable,
		Add:     toAdd,
		Enable:  desired,
	}
	logger.Info("Existing options", "options", snapshot.Values())
	logger.Info("Desired options", "options", desired)
	logger.Info("Removals", "options", toDisable)
	logger.Info("Additions", "options", toAdd)

	if err := uc.apply(ctx, client, snapshot, &report.Plan, input.DryRun); err != nil {
		return nil, err
	}

	positions, order, err := uc.reorder(ctx, client, staticTail, input.DryRun)
	if err != nil {
		return nil, err
	}
	report.Positions = positions
	report.Order = order

	if uc.notifier != nil {
		if err := uc.notifier.NotifySync(ctx, report); err != nil {
			logger.Warn("Failed to notify sync result", "error", err)
		}
	}

	logger.Info("Success")
	return report, nil
}

// apply runs disable, add and enable in that order, each phase completing
// before the next starts
func (uc *SyncUseCase) apply(ctx context.Context, client interfaces.FieldOptionClient, snapshot *model.Snapshot, plan *model.Plan, dryRun bool) error {
	logger := logging.From(ctx)

	for _, value := range plan.Disable {
		opt, ok := snapshot.Lookup(value)
		if !ok {
			logger.Warn("Option to disable not found in snapshot, skipping", ValueKey, value)
			continue
		}
		logger.Info("Disabling option", ValueKey, value, OptionIDKey, opt.ID)
		if _, err := client.SetEnabled(ctx, opt.ID, false); err != nil {
			return goerr.Wrap(err, "failed to disable option", goerr.V(ValueKey, value), goerr.V(OptionIDKey, opt.ID))
		}
	}

	// The add-time position is provisional; reorder overwrites it.
	for idx, value := range plan.Add {
		position := strconv.Itoa(idx)
		logger.Info("Adding option", ValueKey, value, "position", position)
		if _, err := client.AddOption(ctx, value, position); err != nil {
			return goerr.Wrap(err, "failed to add option", goerr.V(ValueKey, value), goerr.V("position", position))
		}
	}

	// Newly added options only get identifiers remotely, so resolve against a fresh list.
	if len(plan.Add) > 0 {
		options, err := client.ListOptions(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to refresh options after add")
		}
		snapshot = model.NewSnapshot(options)
	}

	pending := toSet(plan.Add)
	var targets []*model.Option
	for _, value := range plan.Enable {
		opt, ok := snapshot.Lookup(value)
		if !ok {
			if _, isPending := pending[value]; dryRun && isPending {
				logger.Info("Option pending creation, skipping enable", ValueKey, value)
				continue
			}
			return goerr.Wrap(ErrOptionNotFound, "cannot resolve option to enable", goerr.V(ValueKey, value))
		}
		targets = append(targets, opt)
	}

	for _, opt := range targets {
		logger.Info("Enabling option", ValueKey, opt.Value, OptionIDKey, opt.ID)
		if _, err := client.SetEnabled(ctx, opt.ID, true); err != nil {
			return goerr.Wrap(err, "failed to enable option", goerr.V(ValueKey, opt.Value), goerr.V(OptionIDKey, opt.ID))
		}
	}

	return nil
}

// reorder re-fetches the field and pushes the complete position mapping
func (uc *SyncUseCase) reorder(ctx context.Context, client interfaces.FieldOptionClient, staticTail []string, dryRun bool) (model.PositionMap, []string, error) {
	logger := logging.From(ctx)

	options, err := client.ListOptions(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to refresh options before reorder")
	}

	positions, order, missing := BuildPositions(model.NewSnapshot(options), staticTail)
	if len(missing) > 0 {
		if !dryRun {
			return nil, nil, goerr.Wrap(ErrOptionNotFound, "cannot resolve static option", goerr.V("values", missing))
		}
		logger.Warn("Static options not present yet, leaving them out of the order", "values", missing)
	}

	logger.Info("Sorted option list", "options", order)
	logger.Debug("Reordering positions", "positions", positions)
	if _, err := client.Reposition(ctx, positions); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to reposition options")
	}

	return positions, order, nil
}
