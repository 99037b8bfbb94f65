/*
 * MIT License
 *
 * Copyright (c) 2022-2026 GoAkt Team
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package actor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/tochemey/miniakt/log"
)

// scheduler delivers messages to actors in the future. It wraps a quartz
// scheduler; each scheduled send becomes a function job keyed by a fresh
// uuid.
type scheduler struct {
	mu              sync.Mutex
	quartzScheduler quartz.Scheduler
	started         *atomic.Bool
	logger          log.Logger
	stopTimeout     time.Duration
}

// newScheduler creates an instance of scheduler
func newScheduler(logger log.Logger, stopTimeout time.Duration) *scheduler {
	// quartz own logging is off; scheduling failures surface through the
	// returned errors
	quartzScheduler, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	return &scheduler{
		quartzScheduler: quartzScheduler,
		started:         atomic.NewBool(false),
		logger:          logger,
		stopTimeout:     stopTimeout,
	}
}

// Start starts the scheduler
func (x *scheduler) Start(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.quartzScheduler.Start(ctx)
	x.started.Store(x.quartzScheduler.IsStarted())
	x.logger.Debug("messages scheduler started")
}

// Stop stops the scheduler and waits for in-flight jobs up to the stop
// timeout
func (x *scheduler) Stop(ctx context.Context) {
	if !x.started.Load() {
		return
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	_ = x.quartzScheduler.Clear()
	x.quartzScheduler.Stop()
	x.started.Store(x.quartzScheduler.IsStarted())

	ctx, cancel := context.WithTimeout(ctx, x.stopTimeout)
	defer cancel()
	x.quartzScheduler.Wait(ctx)
	x.logger.Debug("messages scheduler stopped")
}

// ScheduleOnce schedules the one-time delivery of the given message to the
// given actor after the given delay.
func (x *scheduler) ScheduleOnce(message any, pid *PID, delay time.Duration, opts ...SenderOption) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if !x.started.Load() {
		return ErrSchedulerNotStarted
	}
	detail := quartz.NewJobDetail(x.sendJob(message, pid, opts...), quartz.NewJobKey(newJobKey()))
	return x.quartzScheduler.ScheduleJob(detail, quartz.NewRunOnceTrigger(delay))
}

// Schedule schedules the repeated delivery of the given message to the given
// actor at the given interval.
func (x *scheduler) Schedule(message any, pid *PID, interval time.Duration, opts ...SenderOption) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if !x.started.Load() {
		return ErrSchedulerNotStarted
	}
	detail := quartz.NewJobDetail(x.sendJob(message, pid, opts...), quartz.NewJobKey(newJobKey()))
	return x.quartzScheduler.ScheduleJob(detail, quartz.NewSimpleTrigger(interval))
}

// ScheduleWithCron schedules the delivery of the given message to the given
// actor following the given cron expression, evaluated in the local time
// zone.
func (x *scheduler) ScheduleWithCron(message any, pid *PID, cronExpression string, opts ...SenderOption) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if !x.started.Load() {
		return ErrSchedulerNotStarted
	}
	trigger, err := quartz.NewCronTriggerWithLoc(cronExpression, time.Now().Location())
	if err != nil {
		x.logger.Error(fmt.Errorf("failed to schedule message: %w", err))
		return err
	}
	detail := quartz.NewJobDetail(x.sendJob(message, pid, opts...), quartz.NewJobKey(newJobKey()))
	return x.quartzScheduler.ScheduleJob(detail, trigger)
}

// sendJob builds the quartz job performing the deferred send
func (x *scheduler) sendJob(message any, pid *PID, opts ...SenderOption) *job.FunctionJob[bool] {
	senderConfig := newSenderConfig(opts...)
	sender := senderConfig.Sender()
	return job.NewFunctionJob[bool](
		func(ctx context.Context) (bool, error) {
			err := tell(ctx, sender, pid, message)
			return err == nil, err
		},
	)
}

// newJobKey returns a unique job key
func newJobKey() string {
	return uuid.NewString()
}

// senderConfig carries the sender identity of a scheduled send
type senderConfig struct {
	sender *PID
}

// newSenderConfig creates an instance of senderConfig
func newSenderConfig(opts ...SenderOption) *senderConfig {
	config := &senderConfig{sender: NoSender}
	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// Sender returns the configured sender
func (s *senderConfig) Sender() *PID {
	return s.sender
}

// SenderOption is the interface that applies an option to a scheduled send.
type SenderOption interface {
	// Apply sets the Option value of a config.
	Apply(config *senderConfig)
}

var _ SenderOption = senderOption(nil)

// senderOption implements the SenderOption interface.
type senderOption func(config *senderConfig)

// Apply applies the option to the sender config
func (f senderOption) Apply(config *senderConfig) {
	f(config)
}

// WithSender sets the sender of a scheduled message. The receiving actor
// sees it as the message sender; replies go back to it. Defaults to
// NoSender.
func WithSender(sender *PID) SenderOption {
	return senderOption(func(config *senderConfig) {
		config.sender = sender
	})
}
