//go:build unit || e2e

// Package memuow is an in-memory shared.UnitOfWork. Transactions are
// serialized and work on a copy of the store that is swapped in on commit,
// so a failed transaction leaves no trace.
package memuow

import (
	"context"
	"sort"
	"sync"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/otp"
	"rental-booking/internal/domain/payment"
	"rental-booking/internal/infra"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const day = 24 * time.Hour

type NotificationJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type state struct {
	properties    map[uuid.UUID]shared.PropertySnapshot
	bookings      map[uuid.UUID]*booking.Booking
	challenges    map[uuid.UUID]*otp.Challenge
	payments      map[uuid.UUID]*payment.Payment
	idempotency   map[idemKey]shared.IdempotencyRecord
	notifications []NotificationJob
}

func newState() *state {
	return &state{
		properties:  make(map[uuid.UUID]shared.PropertySnapshot),
		bookings:    make(map[uuid.UUID]*booking.Booking),
		challenges:  make(map[uuid.UUID]*otp.Challenge),
		payments:    make(map[uuid.UUID]*payment.Payment),
		idempotency: make(map[idemKey]shared.IdempotencyRecord),
	}
}

// clone copies the maps. Entities are stored as private copies and never
// mutated in place, so sharing the pointers is safe.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.properties {
		c.properties[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.challenges {
		c.challenges[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	c.notifications = append([]NotificationJob(nil), s.notifications...)
	return c
}

type UnitOfWork struct {
	mu    sync.RWMutex
	state *state

	// FailNext makes the next Within return this error without running fn.
	FailNext error
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

func New() *UnitOfWork {
	return &UnitOfWork{state: newState()}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if u.FailNext != nil {
		err := u.FailNext
		u.FailNext = nil
		return err
	}

	work := u.state.clone()
	if err := fn(ctx, &memTx{s: work}); err != nil {
		return err
	}
	u.state = work
	return nil
}

func (u *UnitOfWork) CommandReads() shared.CommandReads {
	return &lockedReads{u: u}
}

// Seeding and inspection helpers for tests.

func (u *UnitOfWork) AddProperty(p shared.PropertySnapshot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.properties[p.ID] = p
}

func (u *UnitOfWork) PutBooking(b *booking.Booking) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.bookings[b.ID()] = cloneBooking(b)
}

func (u *UnitOfWork) PutPayment(p *payment.Payment) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.payments[p.ID()] = clonePayment(p)
}

func (u *UnitOfWork) PutChallenge(c *otp.Challenge) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.challenges[c.ID()] = cloneChallenge(c)
}

func (u *UnitOfWork) Booking(id uuid.UUID) (*booking.Booking, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	b, ok := u.state.bookings[id]
	if !ok {
		return nil, false
	}
	return cloneBooking(b), true
}

func (u *UnitOfWork) Bookings() []*booking.Booking {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]*booking.Booking, 0, len(u.state.bookings))
	for _, b := range u.state.bookings {
		out = append(out, cloneBooking(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out
}

func (u *UnitOfWork) Payment(id uuid.UUID) (*payment.Payment, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	p, ok := u.state.payments[id]
	if !ok {
		return nil, false
	}
	return clonePayment(p), true
}

func (u *UnitOfWork) Challenge(id uuid.UUID) (*otp.Challenge, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	c, ok := u.state.challenges[id]
	if !ok {
		return nil, false
	}
	return cloneChallenge(c), true
}

func (u *UnitOfWork) ChallengesFor(bookingID uuid.UUID) []*otp.Challenge {
	u.mu.RLock()
	defer u.mu.RUnlock()
	var out []*otp.Challenge
	for _, c := range u.state.challenges {
		if c.BookingID() == bookingID {
			out = append(out, cloneChallenge(c))
		}
	}
	return out
}

func (u *UnitOfWork) Notifications() []NotificationJob {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return append([]NotificationJob(nil), u.state.notifications...)
}

func (u *UnitOfWork) Topics() []string {
	jobs := u.Notifications()
	topics := make([]string, len(jobs))
	for i, j := range jobs {
		topics[i] = j.Topic
	}
	return topics
}

type lockedReads struct {
	u *UnitOfWork
}

func (r *lockedReads) reads() *memReads {
	return &memReads{s: r.u.state}
}

func (r *lockedReads) PropertyByID(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	r.u.mu.RLock()
	defer r.u.mu.RUnlock()
	return r.reads().PropertyByID(ctx, id)
}

func (r *lockedReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r.u.mu.RLock()
	defer r.u.mu.RUnlock()
	return r.reads().IdempotencyByKey(ctx, key, userID)
}

func (r *lockedReads) CountOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) (int64, error) {
	r.u.mu.RLock()
	defer r.u.mu.RUnlock()
	return r.reads().CountOverlapping(ctx, propertyID, checkIn, checkOut, exclude)
}

func (r *lockedReads) BookedNights(ctx context.Context, propertyID uuid.UUID, from, to time.Time, exclude *uuid.UUID) (int64, error) {
	r.u.mu.RLock()
	defer r.u.mu.RUnlock()
	return r.reads().BookedNights(ctx, propertyID, from, to, exclude)
}

type memTx struct {
	s *state
}

func (t *memTx) Bookings() shared.BookingRepository           { return &bookingRepo{s: t.s} }
func (t *memTx) Challenges() shared.ChallengeRepository       { return &challengeRepo{s: t.s} }
func (t *memTx) Payments() shared.PaymentRepository           { return &paymentRepo{s: t.s} }
func (t *memTx) Notifications() shared.NotificationRepository { return &notificationRepo{s: t.s} }
func (t *memTx) Idempotency() shared.IdempotencyRepository    { return &idempotencyRepo{s: t.s} }
func (t *memTx) Reads() shared.CommandReads                   { return &memReads{s: t.s} }
func (t *memTx) DB() sqlc.DBTX                                { return nil }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type memReads struct {
	s *state
}

func (r *memReads) PropertyByID(_ context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	p, ok := r.s.properties[id]
	if !ok {
		return nil, notFound("property not found")
	}
	p.Amenities = append([]string(nil), p.Amenities...)
	return &p, nil
}

func (r *memReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.s.idempotency[idemKey{key, userID}]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	return &rec, nil
}

func (r *memReads) CountOverlapping(_ context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.s.bookings {
		if b.PropertyID() != propertyID || !b.Status().Holding() {
			continue
		}
		if exclude != nil && b.ID() == *exclude {
			continue
		}
		if b.Stay().CheckIn().Before(checkOut) && b.Stay().CheckOut().After(checkIn) {
			n++
		}
	}
	return n, nil
}

func (r *memReads) BookedNights(_ context.Context, propertyID uuid.UUID, from, to time.Time, exclude *uuid.UUID) (int64, error) {
	var nights int64
	for _, b := range r.s.bookings {
		if b.PropertyID() != propertyID || !b.Status().Holding() {
			continue
		}
		if exclude != nil && b.ID() == *exclude {
			continue
		}
		start, end := b.Stay().CheckIn(), b.Stay().CheckOut()
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		if start.Before(end) {
			nights += int64(end.Sub(start) / day)
		}
	}
	return nights, nil
}

type bookingRepo struct {
	s *state
}

func (r *bookingRepo) LockProperty(context.Context, sqlc.DBTX, uuid.UUID) error {
	return nil
}

// Create enforces the same overlap exclusion as the database constraint.
func (r *bookingRepo) Create(ctx context.Context, _ sqlc.DBTX, b *booking.Booking) error {
	if err := r.checkOverlap(ctx, b); err != nil {
		return err
	}
	r.s.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *bookingRepo) Update(ctx context.Context, _ sqlc.DBTX, b *booking.Booking) error {
	if _, ok := r.s.bookings[b.ID()]; !ok {
		return notFound("booking not found")
	}
	if err := r.checkOverlap(ctx, b); err != nil {
		return err
	}
	r.s.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *bookingRepo) checkOverlap(ctx context.Context, b *booking.Booking) error {
	if !b.Status().Holding() {
		return nil
	}
	id := b.ID()
	n, _ := (&memReads{s: r.s}).CountOverlapping(ctx, b.PropertyID(), b.Stay().CheckIn(), b.Stay().CheckOut(), &id)
	if n > 0 {
		return infra.WrapRepoErr("booking overlaps an existing stay", nil, infra.KindConflict)
	}
	return nil
}

func (r *bookingRepo) FindByIDForUpdate(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return cloneBooking(b), nil
}

func (r *bookingRepo) ListFinished(_ context.Context, _ sqlc.DBTX, now time.Time, limit int32) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.s.bookings {
		if b.Status() == booking.StatusConfirmed && !b.Stay().CheckOut().After(now) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stay().CheckOut().Before(out[j].Stay().CheckOut()) })
	if len(out) > int(limit) {
		out = out[:limit]
	}
	return out, nil
}

type challengeRepo struct {
	s *state
}

func (r *challengeRepo) Create(_ context.Context, _ sqlc.DBTX, c *otp.Challenge) error {
	r.s.challenges[c.ID()] = cloneChallenge(c)
	return nil
}

func (r *challengeRepo) Update(_ context.Context, _ sqlc.DBTX, c *otp.Challenge) error {
	if _, ok := r.s.challenges[c.ID()]; !ok {
		return notFound("otp challenge not found")
	}
	r.s.challenges[c.ID()] = cloneChallenge(c)
	return nil
}

func (r *challengeRepo) DeleteUnverified(_ context.Context, _ sqlc.DBTX, bookingID uuid.UUID) (int64, error) {
	var n int64
	for id, c := range r.s.challenges {
		if c.BookingID() == bookingID && !c.Verified() {
			delete(r.s.challenges, id)
			n++
		}
	}
	return n, nil
}

func (r *challengeRepo) FindUnverifiedForUpdate(_ context.Context, _ sqlc.DBTX, bookingID uuid.UUID) (*otp.Challenge, error) {
	for _, c := range r.s.challenges {
		if c.BookingID() == bookingID && !c.Verified() {
			return cloneChallenge(c), nil
		}
	}
	return nil, notFound("otp challenge not found")
}

func (r *challengeRepo) FindByIDForUpdate(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*otp.Challenge, error) {
	c, ok := r.s.challenges[id]
	if !ok {
		return nil, notFound("otp challenge not found")
	}
	return cloneChallenge(c), nil
}

func (r *challengeRepo) DeleteExpired(_ context.Context, _ sqlc.DBTX, before time.Time) (int64, error) {
	var n int64
	for id, c := range r.s.challenges {
		if c.ExpiresAt().Before(before) {
			delete(r.s.challenges, id)
			n++
		}
	}
	return n, nil
}

type paymentRepo struct {
	s *state
}

func (r *paymentRepo) Create(_ context.Context, _ sqlc.DBTX, p *payment.Payment) error {
	r.s.payments[p.ID()] = clonePayment(p)
	return nil
}

func (r *paymentRepo) Update(_ context.Context, _ sqlc.DBTX, p *payment.Payment) error {
	if _, ok := r.s.payments[p.ID()]; !ok {
		return notFound("payment not found")
	}
	r.s.payments[p.ID()] = clonePayment(p)
	return nil
}

func (r *paymentRepo) FindByIDForUpdate(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*payment.Payment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return nil, notFound("payment not found")
	}
	return clonePayment(p), nil
}

func (r *paymentRepo) ListStale(_ context.Context, _ sqlc.DBTX, updatedBefore time.Time, limit int32) ([]*payment.Payment, error) {
	var out []*payment.Payment
	for _, p := range r.s.payments {
		st := p.Status()
		if (st == payment.StatusPending || st == payment.StatusProcessing) && p.UpdatedAt().Before(updatedBefore) {
			out = append(out, clonePayment(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt().Before(out[j].UpdatedAt()) })
	if len(out) > int(limit) {
		out = out[:limit]
	}
	return out, nil
}

type notificationRepo struct {
	s *state
}

func (r *notificationRepo) CreateJob(_ context.Context, _ sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	r.s.notifications = append(r.s.notifications, NotificationJob{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

type idempotencyRepo struct {
	s *state
}

func (r *idempotencyRepo) TryInsert(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey{key, userID}
	if _, ok := r.s.idempotency[k]; ok {
		return false, nil
	}
	r.s.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *idempotencyRepo) UpdateStatusCompleted(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, resultBookingID uuid.UUID) error {
	k := idemKey{key, userID}
	rec, ok := r.s.idempotency[k]
	if !ok {
		return notFound("idempotency key not found")
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultBookingID = &resultBookingID
	r.s.idempotency[k] = rec
	return nil
}

func (r *idempotencyRepo) ClaimExpired(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, requestHash string, now, expiresAt time.Time) (int64, error) {
	k := idemKey{key, userID}
	rec, ok := r.s.idempotency[k]
	if !ok || rec.ExpiresAt.After(now) {
		return 0, nil
	}
	rec.Status = shared.IdempotencyStatusProcessing
	rec.RequestHash = requestHash
	rec.ResultBookingID = nil
	rec.ExpiresAt = expiresAt
	r.s.idempotency[k] = rec
	return 1, nil
}

func (r *idempotencyRepo) DeleteExpired(_ context.Context, _ sqlc.DBTX, now time.Time) (int64, error) {
	var n int64
	for k, rec := range r.s.idempotency {
		if !rec.ExpiresAt.After(now) {
			delete(r.s.idempotency, k)
			n++
		}
	}
	return n, nil
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	var cancellation *booking.Cancellation
	if c := b.Cancellation(); c != nil {
		cc := *c
		cancellation = &cc
	}
	return booking.ReconstructBooking(
		b.ID(), b.PropertyID(), b.GuestID(), b.HostID(),
		b.Stay(),
		b.Guests(),
		b.Price(),
		b.Status(),
		b.Payment(),
		cancellation,
		append([]booking.Modification(nil), b.Modifications()...),
		b.CreatedAt(), b.UpdatedAt(),
	)
}

func cloneChallenge(c *otp.Challenge) *otp.Challenge {
	return otp.ReconstructChallenge(
		c.ID(), c.BookingID(), c.UserID(),
		c.CodeHash(),
		c.Purpose(),
		c.Verified(),
		c.Attempts(), c.MaxAttempts(),
		c.ExpiresAt(), c.CreatedAt(),
		c.VerifiedAt(), c.ConsumedAt(),
	)
}

func clonePayment(p *payment.Payment) *payment.Payment {
	return payment.ReconstructPayment(
		p.ID(), p.BookingID(), p.UserID(), p.PropertyID(),
		p.Amount(),
		p.Currency(), p.Method(),
		p.Status(),
		p.TransactionID(),
		p.Charges(),
		p.RefundAmount(),
		p.RefundReason(), p.FailureReason(),
		p.PaidAt(), p.RefundedAt(),
		p.CreatedAt(), p.UpdatedAt(),
	)
}
