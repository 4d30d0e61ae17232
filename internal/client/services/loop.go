package services

import (
	"context"
	"time"
)

// StartLoop launches the periodic sync goroutine. The first pass fires
// after one interval, then each subsequent pass is scheduled with whatever
// interval the previous outcome left behind (base after success, doubled up
// to the cap after failures). Starting an already running loop is a no-op.
//
// The loop lives until StopLoop is called or ctx is cancelled.
func (o *Orchestrator) StartLoop(ctx context.Context) {
	o.loopMu.Lock()
	defer o.loopMu.Unlock()

	if o.loopCancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	o.loopCancel = cancel
	o.loopDone = done

	go o.runLoop(loopCtx, done)
	o.log.Info(ctx, "periodic sync started", "interval", o.currentInterval())
}

// StopLoop cancels the loop goroutine and waits for it to exit. Safe to
// call when no loop is running.
func (o *Orchestrator) StopLoop() {
	o.loopMu.Lock()
	cancel, done := o.loopCancel, o.loopDone
	o.loopCancel, o.loopDone = nil, nil
	o.loopMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (o *Orchestrator) runLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	// a Timer instead of a Ticker because the interval changes with backoff
	timer := time.NewTimer(o.currentInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			o.runScheduledPass(ctx)
			timer.Reset(o.currentInterval())
		}
	}
}

// runScheduledPass shields the loop goroutine: a failed or panicking pass
// is logged and the loop keeps its schedule.
func (o *Orchestrator) runScheduledPass(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error(ctx, "sync pass panicked", "panic", r)
		}
	}()

	if err := o.ManualSync(ctx); err != nil {
		o.log.Warn(ctx, "scheduled sync pass failed", "error", err)
	}
}

func (o *Orchestrator) currentInterval() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.interval
}

func (o *Orchestrator) resetBackoff() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.interval = o.baseInterval
}

func (o *Orchestrator) widenBackoff() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.interval *= 2
	if o.interval > o.maxInterval {
		o.interval = o.maxInterval
	}
}
