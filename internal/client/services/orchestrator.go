// Package services contains the sync engine of the notesync client. This
// file defines the Orchestrator: construction, status reporting, device
// identity, and the shared session plumbing used by the auth and sync
// operations in the sibling files.
package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/api"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/repositories/journal"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/repositories/notes"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/repositories/syncconfig"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/logging"
)

const (
	// DefaultBaseInterval is the delay between periodic sync passes while
	// the server is healthy.
	DefaultBaseInterval = 30 * time.Second

	// DefaultMaxInterval caps the exponential backoff after repeated
	// failures.
	DefaultMaxInterval = 10 * time.Minute

	// pushBatchLimit bounds how many journal entries one pass uploads.
	// Anything beyond it waits for the next pass.
	pushBatchLimit = 1000
)

// Orchestrator coordinates the full sync lifecycle for one device: auth
// (login, logout, token refresh), pull/push passes against the server, and
// the periodic background loop. One instance serves the whole application.
type Orchestrator struct {
	config   syncconfig.Repository
	journal  journal.Repository
	notes    notes.Repository
	client   api.Client
	notifier Notifier
	log      logging.Logger

	baseInterval time.Duration
	maxInterval  time.Duration

	// isSyncing guards against overlapping passes. A pass that loses the
	// CAS is dropped, not queued.
	isSyncing atomic.Bool

	mu       sync.Mutex
	interval time.Duration
	lastErr  error

	loopMu     sync.Mutex
	loopCancel context.CancelFunc
	loopDone   chan struct{}

	now func() time.Time
}

// OrchestratorParams collects the collaborators for NewOrchestrator.
// Notifier defaults to NopNotifier; the intervals default to
// DefaultBaseInterval and DefaultMaxInterval.
type OrchestratorParams struct {
	Config   syncconfig.Repository
	Journal  journal.Repository
	Notes    notes.Repository
	Client   api.Client
	Notifier Notifier
	Logger   logging.Logger

	BaseInterval time.Duration
	MaxInterval  time.Duration
}

// NewOrchestrator constructs an Orchestrator. The periodic loop is not
// started; call StartLoop (or Login, which starts it on success).
func NewOrchestrator(p OrchestratorParams) *Orchestrator {
	if p.Notifier == nil {
		p.Notifier = NopNotifier{}
	}
	if p.BaseInterval <= 0 {
		p.BaseInterval = DefaultBaseInterval
	}
	if p.MaxInterval <= 0 {
		p.MaxInterval = DefaultMaxInterval
	}

	return &Orchestrator{
		config:       p.Config,
		journal:      p.Journal,
		notes:        p.Notes,
		client:       p.Client,
		notifier:     p.Notifier,
		log:          p.Logger,
		baseInterval: p.BaseInterval,
		maxInterval:  p.MaxInterval,
		interval:     p.BaseInterval,
		now:          time.Now,
	}
}

// Status reports the current engine state for UIs and the status command.
func (o *Orchestrator) Status(ctx context.Context) (models.SyncStatus, error) {
	var status models.SyncStatus

	loggedIn, err := o.config.IsLoggedIn(ctx)
	if err != nil {
		return status, fmt.Errorf("failed to read login state: %w", err)
	}
	status.IsLoggedIn = loggedIn
	status.IsSyncing = o.isSyncing.Load()

	cursor, err := o.cursor(ctx)
	if err != nil {
		return status, err
	}
	if cursor > 0 {
		status.LastSync = &cursor
	}

	pending, err := o.journal.CountPending(ctx)
	if err != nil {
		return status, fmt.Errorf("failed to count pending changes: %w", err)
	}
	status.PendingChanges = pending

	o.mu.Lock()
	if o.lastErr != nil {
		status.Error = o.lastErr.Error()
	}
	o.mu.Unlock()

	return status, nil
}

// EnsureDeviceID returns this device's stable identifier, generating and
// persisting a new uuid on first use.
func (o *Orchestrator) EnsureDeviceID(ctx context.Context) (string, error) {
	id, err := o.config.Get(ctx, syncconfig.KeyDeviceID)
	if err != nil {
		return "", fmt.Errorf("failed to read device id: %w", err)
	}
	if id != "" {
		return id, nil
	}

	id = uuid.NewString()
	if err := o.config.Set(ctx, syncconfig.KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("failed to store device id: %w", err)
	}
	o.log.Info(ctx, "generated device id", "device_id", id)
	return id, nil
}

// cursor returns the last successful pass start in unix milliseconds, or 0
// when no pass has completed yet. A malformed stored value also reads as 0:
// re-pulling from the beginning is safe because applying changes is
// idempotent, while refusing to sync would not heal on its own.
func (o *Orchestrator) cursor(ctx context.Context) (int64, error) {
	raw, err := o.config.Get(ctx, syncconfig.KeyLastSyncTimestamp)
	if err != nil {
		return 0, fmt.Errorf("failed to read sync cursor: %w", err)
	}
	if raw == "" {
		return 0, nil
	}

	cursor, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		o.log.Warn(ctx, "ignoring malformed sync cursor", "value", raw)
		return 0, nil
	}
	return cursor, nil
}

// session is the config subset every server call needs.
type session struct {
	serverURL string
	deviceID  string
}

func (o *Orchestrator) session(ctx context.Context) (session, error) {
	serverURL, err := o.config.Get(ctx, syncconfig.KeyServerURL)
	if err != nil {
		return session{}, fmt.Errorf("failed to read server url: %w", err)
	}
	if serverURL == "" {
		return session{}, fmt.Errorf("%w: missing server url", ErrNotConfigured)
	}

	deviceID, err := o.config.Get(ctx, syncconfig.KeyDeviceID)
	if err != nil {
		return session{}, fmt.Errorf("failed to read device id: %w", err)
	}
	if deviceID == "" {
		return session{}, fmt.Errorf("%w: missing device id", ErrNotConfigured)
	}

	return session{serverURL: serverURL, deviceID: deviceID}, nil
}

func (o *Orchestrator) setLastErr(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastErr = err
}
