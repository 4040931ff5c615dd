package commands

import (
	"context"
	"crypto/rand"
	"log/slog"
	"sync"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/payment"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/metrics"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	settleTimeout   = 5 * time.Second
	staleBatchSize  = 100
	reasonTimeout   = "gateway timeout"
	reasonGateway   = "gateway error"
	reasonStale     = "gateway did not respond"
	reasonCancelled = "booking cancelled"
)

var (
	ErrRefundForbidden   = errs.Mark(errs.New("only admins can issue refunds"), errs.ErrUnauthorized)
	ErrCoordinatorClosed = errs.New("payment coordinator is shut down")
)

// PaymentCommands is the part of the coordinator exposed over HTTP.
type PaymentCommands interface {
	Refund(ctx context.Context, actor user.Actor, paymentID uuid.UUID, amount int64, reason string) (*queries.PaymentView, error)
	HandleGatewayResult(ctx context.Context, paymentID uuid.UUID, res shared.ChargeResult) (*payment.Payment, error)
}

var _ PaymentCommands = (*PaymentCoordinator)(nil)

// ChargeOutcome is the final state a charge task observed.
type ChargeOutcome struct {
	Status        payment.Status
	TransactionID string
	Err           error
}

// ChargeTask tracks one in-flight gateway charge.
type ChargeTask struct {
	PaymentID uuid.UUID

	cancel  context.CancelFunc
	done    chan struct{}
	outcome ChargeOutcome
}

func (t *ChargeTask) Done() <-chan struct{} {
	return t.done
}

// Outcome is only meaningful once Done is closed.
func (t *ChargeTask) Outcome() ChargeOutcome {
	<-t.done
	return t.outcome
}

func (t *ChargeTask) Wait(ctx context.Context) (ChargeOutcome, error) {
	select {
	case <-ctx.Done():
		return ChargeOutcome{}, ctx.Err()
	case <-t.done:
		return t.outcome, nil
	}
}

// PaymentCoordinator owns the payment state machine and the gateway calls behind it.
type PaymentCoordinator struct {
	uow        shared.UnitOfWork
	gateway    shared.PaymentGateway
	clock      clock.Clock
	metrics    *metrics.Metrics
	logger     *slog.Logger
	timeout    time.Duration
	method     string
	stuckAfter time.Duration

	mu      sync.Mutex
	tasks   map[uuid.UUID]*ChargeTask
	wg      sync.WaitGroup
	baseCtx context.Context
	stop    context.CancelFunc
	closed  bool
}

func NewPaymentCoordinator(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	cfg config.Config,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) *PaymentCoordinator {
	baseCtx, stop := context.WithCancel(context.Background())
	return &PaymentCoordinator{
		uow:        uow,
		gateway:    gateway,
		clock:      clk,
		metrics:    m,
		logger:     logger,
		timeout:    cfg.Payment.GatewayTimeout,
		method:     cfg.Payment.Method,
		stuckAfter: cfg.Payment.StuckAfter,
		tasks:      make(map[uuid.UUID]*ChargeTask),
		baseCtx:    baseCtx,
		stop:       stop,
	}
}

// ChargesFromPrice splits a booking price into the payment breakdown.
func ChargesFromPrice(p booking.PriceSnapshot) payment.Charges {
	return payment.Charges{
		Base:        p.Subtotal,
		ServiceFee:  p.ServiceFee,
		CleaningFee: p.CleaningFee,
		Taxes:       p.Taxes,
	}
}

// CreatePendingPayment runs inside the confirming transaction.
func (c *PaymentCoordinator) CreatePendingPayment(ctx context.Context, tx shared.Tx, b *booking.Booking) (*payment.Payment, error) {
	charges := ChargesFromPrice(b.Price())
	p, err := payment.NewPayment(payment.NewParams{
		BookingID:  b.ID(),
		UserID:     b.GuestID(),
		PropertyID: b.PropertyID(),
		Amount:     charges.Total(),
		Currency:   b.Price().Currency,
		Method:     c.method,
		Charges:    charges,
		CreatedAt:  c.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := tx.Payments().Create(ctx, tx.DB(), p); err != nil {
		return nil, err
	}
	c.metrics.PaymentOutcomes.WithLabelValues(payment.StatusPending.String()).Inc()
	return p, nil
}

// Dispatch starts charging a committed payment. A payment already being
// charged returns its running task.
func (c *PaymentCoordinator) Dispatch(p *payment.Payment) *ChargeTask {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.tasks[p.ID()]; ok {
		return t
	}

	ctx, cancel := context.WithCancel(c.baseCtx)
	task := &ChargeTask{PaymentID: p.ID(), cancel: cancel, done: make(chan struct{})}
	if c.closed {
		cancel()
		task.outcome = ChargeOutcome{Status: p.Status(), Err: ErrCoordinatorClosed}
		close(task.done)
		return task
	}
	c.tasks[p.ID()] = task

	req := shared.ChargeRequest{
		PaymentID: p.ID(),
		Amount:    p.Amount(),
		Currency:  p.Currency(),
		Method:    p.Method(),
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.forget(task)
		task.outcome = c.run(ctx, req)
		cancel()
		close(task.done)
	}()
	return task
}

// Task returns the running task for a payment, if any.
func (c *PaymentCoordinator) Task(paymentID uuid.UUID) *ChargeTask {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks[paymentID]
}

// Abort cancels an in-flight charge. The payment row is left to the caller.
func (c *PaymentCoordinator) Abort(paymentID uuid.UUID) {
	c.mu.Lock()
	t, ok := c.tasks[paymentID]
	c.mu.Unlock()
	if ok {
		t.cancel()
	}
}

// Shutdown cancels every in-flight charge and waits for the tasks to settle.
func (c *PaymentCoordinator) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.stop()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *PaymentCoordinator) forget(task *ChargeTask) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tasks[task.PaymentID] == task {
		delete(c.tasks, task.PaymentID)
	}
}

type chargeReply struct {
	result shared.ChargeResult
	err    error
}

func (c *PaymentCoordinator) run(ctx context.Context, req shared.ChargeRequest) ChargeOutcome {
	logger := c.logger.With("payment_id", req.PaymentID)

	p, err := c.markProcessing(ctx, req.PaymentID)
	if err != nil {
		logger.Warn("failed to start payment processing", "error", err)
		return ChargeOutcome{Err: err}
	}
	if p.Status() != payment.StatusProcessing {
		// settled elsewhere, e.g. by a webhook that arrived first
		return outcomeOf(p, nil)
	}

	gctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	replies := make(chan chargeReply, 1)
	started := time.Now()
	go func() {
		res, err := c.gateway.Charge(gctx, req)
		replies <- chargeReply{result: res, err: err}
	}()

	var (
		reply    chargeReply
		answered bool
	)
	select {
	case reply = <-replies:
		answered = true
		c.metrics.GatewayLatency.Observe(time.Since(started).Seconds())
	case <-gctx.Done():
	}

	// the request context may be gone; settling must still reach the store
	sctx, scancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer scancel()

	switch {
	case ctx.Err() != nil && (!answered || reply.err != nil):
		logger.Info("payment charge cancelled")
		return ChargeOutcome{Status: payment.StatusProcessing, Err: ctx.Err()}
	case !answered || errs.Is(reply.err, context.DeadlineExceeded):
		logger.Warn("payment gateway timed out", "timeout", c.timeout)
		p, err = c.MarkFailed(sctx, req.PaymentID, reasonTimeout)
	case reply.err != nil:
		logger.Error("payment gateway failed", "error", reply.err)
		p, err = c.MarkFailed(sctx, req.PaymentID, reasonGateway)
	default:
		p, err = c.HandleGatewayResult(sctx, req.PaymentID, reply.result)
	}
	if err != nil {
		logger.Warn("failed to settle payment", "error", err)
	}
	return outcomeOf(p, err)
}

func outcomeOf(p *payment.Payment, err error) ChargeOutcome {
	out := ChargeOutcome{Err: err}
	if p != nil {
		out.Status = p.Status()
		if id := p.TransactionID(); id != nil {
			out.TransactionID = *id
		}
	}
	return out
}

func (c *PaymentCoordinator) markProcessing(ctx context.Context, paymentID uuid.UUID) (*payment.Payment, error) {
	var p *payment.Payment
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := loadPayment(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		p = found
		if p.Status() != payment.StatusPending {
			return nil
		}
		if err := p.StartProcessing(c.clock.Now()); err != nil {
			return err
		}
		return tx.Payments().Update(ctx, tx.DB(), p)
	})
	if err != nil {
		return nil, err
	}
	if p.Status() == payment.StatusProcessing {
		c.metrics.PaymentOutcomes.WithLabelValues(payment.StatusProcessing.String()).Inc()
	}
	return p, nil
}

// HandleGatewayResult applies a gateway answer. Delivering the same answer
// twice leaves the payment unchanged.
func (c *PaymentCoordinator) HandleGatewayResult(ctx context.Context, paymentID uuid.UUID, res shared.ChargeResult) (*payment.Payment, error) {
	if res.Approved {
		paidAt := res.ProcessedAt
		if paidAt.IsZero() {
			paidAt = c.clock.Now()
		}
		return c.MarkCompleted(ctx, paymentID, res.TransactionID, paidAt)
	}
	reason := res.FailureReason
	if reason == "" {
		reason = "declined"
	}
	return c.MarkFailed(ctx, paymentID, reason)
}

// MarkCompleted captures the payment and marks the booking paid. An empty
// transaction id reuses the assigned one or mints a new one.
func (c *PaymentCoordinator) MarkCompleted(ctx context.Context, paymentID uuid.UUID, transactionID string, paidAt time.Time) (*payment.Payment, error) {
	var (
		p       *payment.Payment
		changed bool
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := loadPayment(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		p = found

		txID := transactionID
		if txID == "" {
			if existing := p.TransactionID(); existing != nil {
				txID = *existing
			} else {
				txID, err = payment.NewTransactionID(paidAt, rand.Reader)
				if err != nil {
					return err
				}
			}
		}

		changed, err = p.Complete(txID, paidAt)
		if err != nil || !changed {
			return err
		}
		if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
			return err
		}

		b, err := loadBooking(ctx, tx, p.BookingID())
		if err != nil {
			return err
		}
		if err := b.MarkPaid(paidAt); err != nil {
			return err
		}
		return tx.Bookings().Update(ctx, tx.DB(), b)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		c.metrics.PaymentOutcomes.WithLabelValues(payment.StatusCompleted.String()).Inc()
		c.logger.Info("payment completed", "payment_id", paymentID, "booking_id", p.BookingID())
	}
	return p, nil
}

func (c *PaymentCoordinator) MarkFailed(ctx context.Context, paymentID uuid.UUID, reason string) (*payment.Payment, error) {
	var (
		p       *payment.Payment
		changed bool
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := loadPayment(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		p = found
		now := c.clock.Now()

		changed, err = p.Fail(reason, now)
		if err != nil || !changed {
			return err
		}
		if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
			return err
		}
		return c.syncBookingPaymentState(ctx, tx, p.BookingID(), booking.PaymentFailed, now)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		c.metrics.PaymentOutcomes.WithLabelValues(payment.StatusFailed.String()).Inc()
		c.logger.Warn("payment failed", "payment_id", paymentID, "reason", reason)
	}
	return p, nil
}

// Refund is the admin surface; cancellation refunds go through refundInTx.
func (c *PaymentCoordinator) Refund(ctx context.Context, actor user.Actor, paymentID uuid.UUID, amount int64, reason string) (*queries.PaymentView, error) {
	if !actor.IsAdmin() {
		return nil, ErrRefundForbidden
	}

	var view *queries.PaymentView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := loadPayment(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		now := c.clock.Now()
		if err := c.refundInTx(ctx, tx, p, amount, reason, now); err != nil {
			return err
		}

		b, err := loadBooking(ctx, tx, p.BookingID())
		if err != nil {
			return err
		}
		if err := b.SetPaymentState(booking.PaymentRefunded, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return err
		}
		view = queries.PaymentViewFromDomain(p, b.HostID())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *PaymentCoordinator) refundInTx(ctx context.Context, tx shared.Tx, p *payment.Payment, amount int64, reason string, now time.Time) error {
	if err := p.Refund(amount, reason, now); err != nil {
		return err
	}
	if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
		return err
	}
	c.metrics.PaymentOutcomes.WithLabelValues(payment.StatusRefunded.String()).Inc()
	return enqueueNotification(ctx, tx, TopicRefundRequested, map[string]any{
		"payment_id": p.ID(),
		"booking_id": p.BookingID(),
		"amount":     amount,
		"currency":   p.Currency(),
		"reason":     reason,
	}, now)
}

// voidInTx cancels a payment that was never captured.
func (c *PaymentCoordinator) voidInTx(ctx context.Context, tx shared.Tx, p *payment.Payment, now time.Time) (bool, error) {
	changed, err := p.Cancel(reasonCancelled, now)
	if err != nil || !changed {
		return false, err
	}
	if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
		return false, err
	}
	c.metrics.PaymentOutcomes.WithLabelValues(payment.StatusCancelled.String()).Inc()
	return true, nil
}

// FailStale fails payments stuck in pending or processing with no live task.
func (c *PaymentCoordinator) FailStale(ctx context.Context) (int, error) {
	failed := 0
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		failed = 0
		now := c.clock.Now()
		stale, err := tx.Payments().ListStale(ctx, tx.DB(), now.Add(-c.stuckAfter), staleBatchSize)
		if err != nil {
			return err
		}
		for _, p := range stale {
			if c.Task(p.ID()) != nil {
				continue
			}
			changed, err := p.Fail(reasonStale, now)
			if err != nil {
				return err
			}
			if !changed {
				continue
			}
			if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
				return err
			}
			if err := c.syncBookingPaymentState(ctx, tx, p.BookingID(), booking.PaymentFailed, now); err != nil {
				return err
			}
			failed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if failed > 0 {
		c.metrics.PaymentOutcomes.WithLabelValues(payment.StatusFailed.String()).Add(float64(failed))
		c.logger.Warn("failed stale payments", "count", failed)
	}
	return failed, nil
}

func (c *PaymentCoordinator) syncBookingPaymentState(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, state booking.PaymentState, now time.Time) error {
	b, err := loadBooking(ctx, tx, bookingID)
	if err != nil {
		return err
	}
	if err := b.SetPaymentState(state, now); err != nil {
		return err
	}
	return tx.Bookings().Update(ctx, tx.DB(), b)
}

func loadPayment(ctx context.Context, tx shared.Tx, id uuid.UUID) (*payment.Payment, error) {
	p, err := tx.Payments().FindByIDForUpdate(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return p, nil
}

func loadBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByIDForUpdate(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}
