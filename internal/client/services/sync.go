package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/api"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/repositories/syncconfig"
)

// ManualSync runs one full sync pass: pull and apply remote changes, then
// push pending local ones. The sync cursor advances to the pass start time
// only after both halves succeed, so anything that raced in during the pass
// is pulled again next time (applying twice is harmless).
//
// Returns ErrNotLoggedIn without touching the network when no session
// exists, and ErrSyncInProgress when another pass is already running.
func (o *Orchestrator) ManualSync(ctx context.Context) error {
	loggedIn, err := o.config.IsLoggedIn(ctx)
	if err != nil {
		return fmt.Errorf("failed to read login state: %w", err)
	}
	if !loggedIn {
		return ErrNotLoggedIn
	}

	if !o.isSyncing.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer o.isSyncing.Store(false)

	o.notifier.StatusChanged(true)
	defer o.notifier.StatusChanged(false)

	start := o.now().UnixMilli()
	o.log.Info(ctx, "sync pass started", "start", start)

	pulled, err := o.pullChanges(ctx)
	if err != nil {
		return o.failPass(ctx, fmt.Errorf("pull failed: %w", err))
	}

	conflicts, err := o.pushChanges(ctx)
	if err != nil {
		return o.failPass(ctx, fmt.Errorf("push failed: %w", err))
	}

	if err := o.config.Set(ctx, syncconfig.KeyLastSyncTimestamp, strconv.FormatInt(start, 10)); err != nil {
		return o.failPass(ctx, fmt.Errorf("failed to advance sync cursor: %w", err))
	}

	o.resetBackoff()
	o.setLastErr(nil)
	o.notifier.Completed(CompletedEvent{Conflicts: conflicts, Timestamp: start})
	o.log.Info(ctx, "sync pass completed",
		"pulled", len(pulled), "conflicts", len(conflicts))
	return nil
}

// failPass records a failed pass: widen the retry interval, remember the
// error for Status, and tell the notifier how much is still waiting.
func (o *Orchestrator) failPass(ctx context.Context, err error) error {
	o.widenBackoff()
	o.setLastErr(err)

	pending, countErr := o.journal.CountPending(ctx)
	if countErr != nil {
		o.log.Warn(ctx, "failed to count pending changes", "error", countErr)
	}
	o.notifier.Failed(FailedEvent{Err: err, Pending: pending})
	o.log.Error(ctx, "sync pass failed", "error", err)
	return err
}

// pullChanges fetches everything other devices wrote since the cursor and
// applies it locally. The cursor itself is advanced by ManualSync, not
// here.
func (o *Orchestrator) pullChanges(ctx context.Context) ([]models.ChangeRecord, error) {
	sess, err := o.session(ctx)
	if err != nil {
		return nil, err
	}

	since, err := o.cursor(ctx)
	if err != nil {
		return nil, err
	}

	var changes []models.ChangeRecord
	err = o.withAuthRetry(ctx, func(token string) error {
		var callErr error
		changes, callErr = o.client.PullChanges(ctx, sess.serverURL, token, since, sess.deviceID)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	o.applyRemoteChanges(ctx, changes)
	return changes, nil
}

// pushChanges uploads pending journal entries and marks them synced. An
// empty journal succeeds without a network call. Conflicts the server
// reports are returned as data: the server already picked the winners, the
// client only relays the news.
func (o *Orchestrator) pushChanges(ctx context.Context) ([]models.SyncConflict, error) {
	pending, err := o.journal.Pending(ctx, pushBatchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending changes: %w", err)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	sess, err := o.session(ctx)
	if err != nil {
		return nil, err
	}

	var conflicts []models.SyncConflict
	err = o.withAuthRetry(ctx, func(token string) error {
		var callErr error
		conflicts, callErr = o.client.PushChanges(ctx, sess.serverURL, token, pending, sess.deviceID)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	if err := o.journal.MarkSynced(ctx, pending); err != nil {
		return nil, fmt.Errorf("failed to mark pushed changes: %w", err)
	}

	if len(conflicts) > 0 {
		o.log.Warn(ctx, "server resolved conflicts against local changes", "count", len(conflicts))
	}
	return conflicts, nil
}

// withAuthRetry runs call with the stored access token. When the server
// answers 403 it refreshes the token once and reruns the call once; a
// failed refresh surfaces as ErrAuthExpired. All other errors pass through
// untouched.
func (o *Orchestrator) withAuthRetry(ctx context.Context, call func(token string) error) error {
	token, err := o.config.Get(ctx, syncconfig.KeyJWTToken)
	if err != nil {
		return fmt.Errorf("failed to read access token: %w", err)
	}
	if token == "" {
		return fmt.Errorf("%w: missing access token", ErrNotConfigured)
	}

	err = call(token)
	if !errors.Is(err, api.ErrForbidden) {
		return err
	}

	o.log.Info(ctx, "access token rejected, refreshing")
	if !o.refreshToken(ctx) {
		return ErrAuthExpired
	}

	token, err = o.config.Get(ctx, syncconfig.KeyJWTToken)
	if err != nil {
		return fmt.Errorf("failed to read refreshed token: %w", err)
	}
	return call(token)
}

// applyRemoteChanges replays a batch of remote changes against local
// storage. Failures are per-change: one bad record is logged and skipped,
// the rest of the batch still applies.
func (o *Orchestrator) applyRemoteChanges(ctx context.Context, changes []models.ChangeRecord) {
	for _, rec := range changes {
		if err := o.applyChange(ctx, rec); err != nil {
			o.log.Error(ctx, "failed to apply remote change",
				"entity_type", rec.EntityType,
				"entity_id", rec.EntityID,
				"operation", rec.Operation,
				"error", err)
		}
	}
}

func (o *Orchestrator) applyChange(ctx context.Context, rec models.ChangeRecord) error {
	if rec.EntityType != models.EntityTypeNote {
		o.log.Warn(ctx, "skipping change for unknown entity type", "entity_type", rec.EntityType)
		return nil
	}

	switch rec.Operation {
	case models.OperationDelete:
		return o.notes.Remove(ctx, rec.EntityID)
	case models.OperationCreate, models.OperationUpdate:
		var snap models.NoteSnapshot
		if err := json.Unmarshal(rec.Data, &snap); err != nil {
			return fmt.Errorf("failed to decode note snapshot: %w", err)
		}
		if snap.ID == "" {
			snap.ID = rec.EntityID
		}
		return o.notes.Upsert(ctx, snap)
	default:
		return fmt.Errorf("unknown operation %q", rec.Operation)
	}
}
