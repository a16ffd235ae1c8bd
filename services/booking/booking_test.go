package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bookingRepo "glowbook/database/repository/booking"
	couponRepo "glowbook/database/repository/coupon"
	"glowbook/models"
	"glowbook/services/cart"
	"glowbook/services/kvstore"
	"glowbook/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memBookingRepo is an in-memory BookingRepository keyed by booking code.
type memBookingRepo struct {
	mu        sync.Mutex
	byCode    map[string]models.Booking
	createErr error
	updateErr error
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{byCode: make(map[string]models.Booking)}
}

func (r *memBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mirror the unique payment_id index.
	for _, existing := range r.byCode {
		if b.PaymentID != "" && existing.PaymentID == b.PaymentID {
			return errors.New("duplicate payment_id")
		}
	}
	r.byCode[b.BookingCode] = *b
	return nil
}

func (r *memBookingRepo) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byCode[code]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	out := b
	return &out, nil
}

func (r *memBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.byCode {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByStaff(ctx context.Context, staffID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.byCode {
		if b.StaffID == staffID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byCode[b.BookingCode]; !ok {
		return bookingRepo.ErrNotFound
	}
	r.byCode[b.BookingCode] = *b
	return nil
}

type fakeGateway struct {
	verifyErr error
	verified  int
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*models.PaymentOrder, error) {
	return &models.PaymentOrder{ID: "order_1", Amount: amount, Currency: currency}, nil
}

func (g *fakeGateway) VerifySignature(conf models.PaymentConfirmation) error {
	g.verified++
	return g.verifyErr
}

type fakeReminder struct {
	scheduled   []string
	cancelled   []string
	scheduleErr error
}

func (f *fakeReminder) Schedule(b models.Booking) error {
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.scheduled = append(f.scheduled, b.BookingCode)
	return nil
}

func (f *fakeReminder) Cancel(code string) error {
	f.cancelled = append(f.cancelled, code)
	return nil
}

type recordingCouponRepo struct {
	redeemed []string
	markErr  error
}

func (r *recordingCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return nil, couponRepo.ErrNotFound
}

func (r *recordingCouponRepo) HasRedeemed(ctx context.Context, userID, code string) (bool, error) {
	return false, nil
}

func (r *recordingCouponRepo) MarkRedeemed(ctx context.Context, userID, code string) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.redeemed = append(r.redeemed, userID+":"+code)
	return nil
}

// failingCart fails reconciliation while delegating everything else.
type failingCart struct {
	cart.CartService
	removeBookedErr error
}

func (f *failingCart) RemoveBooked(ctx context.Context, userID, staffID string, booked []models.CartLineItem) error {
	if f.removeBookedErr != nil {
		return f.removeBookedErr
	}
	return f.CartService.RemoveBooked(ctx, userID, staffID, booked)
}

type fixture struct {
	svc      *DefaultBookingService
	repo     *memBookingRepo
	cart     cart.CartService
	coupons  *recordingCouponRepo
	gateway  *fakeGateway
	reminder *fakeReminder
	drafts   *DraftStore
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kvstore.NewMemoryStore()
	f := &fixture{
		repo:     newMemBookingRepo(),
		cart:     cart.NewDefaultCartService(store, zap.NewNop()),
		coupons:  &recordingCouponRepo{},
		gateway:  &fakeGateway{},
		reminder: &fakeReminder{},
		drafts:   NewDraftStore(store),
		now:      time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	f.svc = &DefaultBookingService{
		Repo:     f.repo,
		Cart:     f.cart,
		Coupons:  f.coupons,
		Drafts:   f.drafts,
		Gateway:  f.gateway,
		Notices:  NewNoticeTracker(store),
		Reminder: f.reminder,
		Logger:   zap.NewNop(),
		Now:      func() time.Time { return f.now },
		Location: time.UTC,
	}
	return f
}

func testDraft() models.BookingDraft {
	return models.BookingDraft{
		UserID:  "u1",
		StaffID: "st1",
		Services: []models.CartLineItem{
			{ID: "s1", Name: "Haircut", Price: 700, Quantity: 1, StaffID: "st1", Kind: models.LineItemService},
		},
		Packages: []models.CartLineItem{
			{ID: "p1", Name: "Bridal", Price: 400, Quantity: 1, StaffID: "st1", Kind: models.LineItemPackage},
		},
		ServiceLocation: "12 Rose St",
		Date:            "2024-06-10",
		Time:            "10:00:00",
		CouponCode:      "SAVE100",
		CouponDiscount:  100,
		PaymentOrderID:  "order_1",
		PaymentAmount:   998,
	}
}

func confirmation() models.PaymentConfirmation {
	return models.PaymentConfirmation{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "sig",
	}
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := testDraft()

	// Seed the cart with the draft lines plus an unrelated staff member.
	for _, it := range draft.Lines() {
		require.NoError(t, f.cart.Add(ctx, "u1", it))
	}
	require.NoError(t, f.cart.Add(ctx, "u1", models.CartLineItem{ID: "s9", Quantity: 1, StaffID: "st2"}))
	require.NoError(t, f.drafts.Save(ctx, draft))

	b, err := f.svc.Create(ctx, draft, confirmation())
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, models.StatusUpcoming, b.Status)
	assert.True(t, b.ReminderEnabled)
	assert.NotEmpty(t, b.BookingCode)
	assert.Equal(t, "pay_1", b.PaymentID)
	// 1100 - 100 - 50 = 950; fee round(47.5) = 48; total 998.
	assert.Equal(t, 998.0, b.TotalPrice)

	stored, err := f.repo.GetByCode(ctx, b.BookingCode)
	require.NoError(t, err)
	assert.Equal(t, b.BookingCode, stored.BookingCode)

	// Reconciliation removed the booked lines but kept the other staff's.
	items, err := f.cart.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "s9", items[0].ID)

	_, err = f.drafts.Get(ctx, "u1", "st1")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	assert.Equal(t, []string{b.BookingCode}, f.reminder.scheduled)
	assert.Equal(t, []string{"u1:SAVE100"}, f.coupons.redeemed)
}

func TestCreateBookingFailedVerificationLeavesEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := testDraft()

	for _, it := range draft.Lines() {
		require.NoError(t, f.cart.Add(ctx, "u1", it))
	}
	require.NoError(t, f.drafts.Save(ctx, draft))
	f.gateway.verifyErr = payment.ErrVerificationFailed

	_, err := f.svc.Create(ctx, draft, confirmation())
	require.Error(t, err)
	var le *LifecycleError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "paymentVerificationFailed", le.Code)

	// Nothing was persisted and nothing was reconciled.
	assert.Empty(t, f.repo.byCode)
	items, err := f.cart.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	_, err = f.drafts.Get(ctx, "u1", "st1")
	assert.NoError(t, err)
	assert.Empty(t, f.reminder.scheduled)
	assert.Empty(t, f.coupons.redeemed)
}

func TestCreateBookingSurvivesReconciliationFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := testDraft()

	f.svc.Cart = &failingCart{CartService: f.cart, removeBookedErr: errors.New("redis down")}
	f.coupons.markErr = errors.New("mongo down")
	f.reminder.scheduleErr = errors.New("queue down")

	b, err := f.svc.Create(ctx, draft, confirmation())
	require.NoError(t, err)
	require.NotNil(t, b)

	stored, err := f.repo.GetByCode(ctx, b.BookingCode)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpcoming, stored.Status)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.BookingDraft)
	}{
		{"missing user", func(d *models.BookingDraft) { d.UserID = "" }},
		{"missing staff", func(d *models.BookingDraft) { d.StaffID = "" }},
		{"no lines", func(d *models.BookingDraft) { d.Services = nil; d.Packages = nil }},
		{"bad date", func(d *models.BookingDraft) { d.Date = "10-06-2024" }},
		{"bad time", func(d *models.BookingDraft) { d.Time = "10 AM" }},
		{"missing location", func(d *models.BookingDraft) { d.ServiceLocation = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := testDraft()
			tc.mutate(&draft)
			_, err := f.svc.Create(ctx, draft, confirmation())
			var le *LifecycleError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, "validation", le.Code)
		})
	}
	// Validation rejects before the gateway is ever consulted.
	assert.Zero(t, f.gateway.verified)
}

func TestCreateBookingRequiresIssuedOrder(t *testing.T) {
	f := newFixture(t)
	draft := testDraft()
	draft.PaymentOrderID = ""
	draft.PaymentAmount = 0

	_, err := f.svc.Create(context.Background(), draft, confirmation())
	var le *LifecycleError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "paymentVerificationFailed", le.Code)
	assert.Zero(t, f.gateway.verified)
	assert.Empty(t, f.repo.byCode)
}

func TestCreateBookingRejectsForeignOrder(t *testing.T) {
	f := newFixture(t)
	draft := testDraft()

	conf := confirmation()
	conf.OrderID = "order_from_someone_else"

	_, err := f.svc.Create(context.Background(), draft, conf)
	var le *LifecycleError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "paymentVerificationFailed", le.Code)
	assert.Zero(t, f.gateway.verified)
	assert.Empty(t, f.repo.byCode)
}

func TestCreateBookingRejectsAmountDrift(t *testing.T) {
	f := newFixture(t)
	draft := testDraft()
	// The draft was edited after the order was issued, so the quote no
	// longer matches the amount the order was created over.
	draft.Services = append(draft.Services, models.CartLineItem{
		ID: "s2", Name: "Beard Trim", Price: 300, Quantity: 1, StaffID: "st1", Kind: models.LineItemService,
	})

	_, err := f.svc.Create(context.Background(), draft, confirmation())
	var le *LifecycleError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "paymentVerificationFailed", le.Code)
	assert.Zero(t, f.gateway.verified)
	assert.Empty(t, f.repo.byCode)
}

func TestCreateBookingRejectsReusedPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, testDraft(), confirmation())
	require.NoError(t, err)

	// Same captured payment presented against a fresh draft.
	second := testDraft()
	second.StaffID = "st2"
	for i := range second.Services {
		second.Services[i].StaffID = "st2"
	}
	for i := range second.Packages {
		second.Packages[i].StaffID = "st2"
	}

	_, err = f.svc.Create(ctx, second, confirmation())
	require.Error(t, err)

	require.Len(t, f.repo.byCode, 1)
	stored, err := f.repo.GetByCode(ctx, first.BookingCode)
	require.NoError(t, err)
	assert.Equal(t, "st1", stored.StaffID)
}

func (f *fixture) seedBooking(t *testing.T, b models.Booking) models.Booking {
	t.Helper()
	if b.BookingCode == "" {
		b.BookingCode = "GB-TEST000001"
	}
	if b.Status == "" {
		b.Status = models.StatusUpcoming
	}
	require.NoError(t, f.repo.Create(context.Background(), &b))
	return b
}

func TestCancelBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBooking(t, models.Booking{
		UserID: "u1", StaffID: "st1",
		Date: "2024-06-10", Time: "10:00:00",
		RescheduleStatus: models.ReschedulePending,
		RescheduleDate:   "2024-06-12",
		RescheduleTime:   "11:00:00",
		ReminderEnabled:  true,
	})

	got, err := f.svc.Cancel(ctx, b.BookingCode, "plans changed")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, got.Status)
	assert.Equal(t, "plans changed", got.CancelReason)
	assert.Empty(t, got.RescheduleDate)
	assert.Empty(t, got.RescheduleTime)
	assert.Equal(t, []string{b.BookingCode}, f.reminder.cancelled)

	// Terminal: no further transitions.
	_, err = f.svc.Complete(ctx, b.BookingCode)
	assert.Error(t, err)
	_, err = f.svc.Cancel(ctx, b.BookingCode, "again")
	assert.Error(t, err)
}

func TestCancelWithEmptyReason(t *testing.T) {
	f := newFixture(t)
	b := f.seedBooking(t, models.Booking{UserID: "u1", Date: "2024-06-10", Time: "10:00:00"})

	got, err := f.svc.Cancel(context.Background(), b.BookingCode, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
	assert.Empty(t, got.CancelReason)
}

func TestRequestRescheduleInsideWindow(t *testing.T) {
	f := newFixture(t)
	// Appointment 3 hours from now.
	b := f.seedBooking(t, models.Booking{UserID: "u1", Date: "2024-06-01", Time: "12:00:00"})

	_, err := f.svc.RequestReschedule(context.Background(), b.BookingCode, "2024-06-05", "10:00:00", "conflict")
	require.Error(t, err)
	var le *LifecycleError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "rescheduleWindowClosed", le.Code)

	// State untouched.
	stored, err := f.repo.GetByCode(context.Background(), b.BookingCode)
	require.NoError(t, err)
	assert.Equal(t, models.RescheduleNone, stored.RescheduleStatus)
}

func TestRescheduleFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBooking(t, models.Booking{
		UserID: "u1", Date: "2024-06-10", Time: "10:00:00", ReminderEnabled: true,
	})

	got, err := f.svc.RequestReschedule(ctx, b.BookingCode, "2024-06-12", "11:00:00", "conflict")
	require.NoError(t, err)
	assert.Equal(t, models.ReschedulePending, got.RescheduleStatus)
	assert.Equal(t, "2024-06-12", got.RescheduleDate)
	assert.Equal(t, "11:00:00", got.RescheduleTime)
	// The original schedule stands until a decision.
	assert.Equal(t, "2024-06-10", got.Date)

	// A second request while one is pending is refused.
	_, err = f.svc.RequestReschedule(ctx, b.BookingCode, "2024-06-13", "11:00:00", "")
	require.Error(t, err)

	got, err = f.svc.ApproveReschedule(ctx, b.BookingCode)
	require.NoError(t, err)
	assert.Equal(t, models.RescheduleApproved, got.RescheduleStatus)
	assert.Equal(t, "2024-06-12", got.Date)
	assert.Equal(t, "11:00:00", got.Time)
	assert.Empty(t, got.RescheduleDate)
	// Reminder moved to the new schedule.
	assert.Equal(t, []string{b.BookingCode}, f.reminder.cancelled)
	assert.Equal(t, []string{b.BookingCode}, f.reminder.scheduled)
}

func TestRejectRescheduleKeepsSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBooking(t, models.Booking{UserID: "u1", Date: "2024-06-10", Time: "10:00:00"})

	_, err := f.svc.RequestReschedule(ctx, b.BookingCode, "2024-06-12", "11:00:00", "")
	require.NoError(t, err)

	got, err := f.svc.RejectReschedule(ctx, b.BookingCode)
	require.NoError(t, err)
	assert.Equal(t, models.RescheduleRejected, got.RescheduleStatus)
	assert.Equal(t, "2024-06-10", got.Date)
	assert.Equal(t, "10:00:00", got.Time)
}

func TestCancelRescheduleClearsRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBooking(t, models.Booking{UserID: "u1", Date: "2024-06-10", Time: "10:00:00"})

	_, err := f.svc.RequestReschedule(ctx, b.BookingCode, "2024-06-12", "11:00:00", "")
	require.NoError(t, err)

	got, err := f.svc.CancelReschedule(ctx, b.BookingCode)
	require.NoError(t, err)
	assert.Equal(t, models.RescheduleNone, got.RescheduleStatus)
	assert.Empty(t, got.RescheduleDate)
	assert.Equal(t, "2024-06-10", got.Date)

	// Withdrawing twice fails, there is nothing pending anymore.
	_, err = f.svc.CancelReschedule(ctx, b.BookingCode)
	assert.Error(t, err)
}

func TestToggleReminderRollsBackOnSchedulerFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBooking(t, models.Booking{
		UserID: "u1", Date: "2024-06-10", Time: "10:00:00", ReminderEnabled: false,
	})

	f.reminder.scheduleErr = errors.New("queue down")
	_, err := f.svc.ToggleReminder(ctx, b.BookingCode, true)
	require.Error(t, err)

	stored, err := f.repo.GetByCode(ctx, b.BookingCode)
	require.NoError(t, err)
	assert.False(t, stored.ReminderEnabled)
}

func TestToggleReminder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBooking(t, models.Booking{
		UserID: "u1", Date: "2024-06-10", Time: "10:00:00", ReminderEnabled: true,
	})

	got, err := f.svc.ToggleReminder(ctx, b.BookingCode, false)
	require.NoError(t, err)
	assert.False(t, got.ReminderEnabled)
	assert.Equal(t, []string{b.BookingCode}, f.reminder.cancelled)

	got, err = f.svc.ToggleReminder(ctx, b.BookingCode, true)
	require.NoError(t, err)
	assert.True(t, got.ReminderEnabled)
	assert.Equal(t, []string{b.BookingCode}, f.reminder.scheduled)
}

func TestToggleReminderRejectsNonUpcoming(t *testing.T) {
	f := newFixture(t)
	b := f.seedBooking(t, models.Booking{
		UserID: "u1", Date: "2024-06-10", Time: "10:00:00", Status: models.StatusCompleted,
	})

	_, err := f.svc.ToggleReminder(context.Background(), b.BookingCode, true)
	assert.Error(t, err)
}

func TestListForUserEmitsNoticeExactlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBooking(t, models.Booking{UserID: "u1", Date: "2024-06-10", Time: "10:00:00"})

	// First fetch records the baseline state.
	_, notices, err := f.svc.ListForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, notices)

	_, err = f.svc.RequestReschedule(ctx, b.BookingCode, "2024-06-12", "11:00:00", "")
	require.NoError(t, err)
	_, notices, err = f.svc.ListForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, notices, "filing a request is not a decision")

	_, err = f.svc.ApproveReschedule(ctx, b.BookingCode)
	require.NoError(t, err)

	_, notices, err = f.svc.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, b.BookingCode, notices[0].BookingCode)
	assert.Equal(t, models.RescheduleApproved, notices[0].Status)

	// Refetching does not repeat the notice.
	for i := 0; i < 3; i++ {
		_, notices, err = f.svc.ListForUser(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, notices)
	}
}
