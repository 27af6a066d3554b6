//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"qr-coupon-server/internal/domain/bottle"
	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/domain/consumer"
	"qr-coupon-server/internal/domain/coupon"
	"qr-coupon-server/internal/infra/otp"
	"qr-coupon-server/internal/pkg/clock"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/testutil/builder"
	"qr-coupon-server/internal/testutil/memuow"
	"qr-coupon-server/internal/usecase/commands"
	"qr-coupon-server/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const validOTP = "123456"

type fakeOTP struct {
	mu    sync.Mutex
	code  string
	err   error
	sent  []string
	calls int
}

func (f *fakeOTP) Send(_ context.Context, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phone)
	return nil
}

func (f *fakeOTP) Validate(_ context.Context, _ string, code string) (otp.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return otp.Result{}, f.err
	}
	if code != f.code {
		return otp.Result{Message: otp.MsgInvalid}, nil
	}
	return otp.Result{Valid: true}, nil
}

// seqGenerator hands out fixed codes first, then random ones
type seqGenerator struct {
	mu       sync.Mutex
	codes    []coupon.Code
	fallback coupon.Generator
	calls    int
}

func (g *seqGenerator) Generate() (coupon.Code, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if len(g.codes) > 0 {
		c := g.codes[0]
		g.codes = g.codes[1:]
		return c, nil
	}
	if g.fallback == nil {
		return "", errs.New("generator exhausted")
	}
	return g.fallback.Generate()
}

// constGenerator always returns the same code
type constGenerator struct{ code coupon.Code }

func (g constGenerator) Generate() (coupon.Code, error) { return g.code, nil }

func assertErrIs(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	assert.Truef(t, errs.Is(err, target), "expected %v, got %v", target, err)
}

type RedemptionTestSuite struct {
	suite.Suite
	store    *memuow.Store
	otp      *fakeOTP
	gen      *seqGenerator
	clock    *clock.MockClock
	uc       commands.RedemptionCommands
	campaign *campaign.Campaign
	ctx      context.Context
}

func (s *RedemptionTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memuow.New()
	s.otp = &fakeOTP{code: validOTP}
	random, err := coupon.NewRandomGenerator("AQUA")
	s.Require().NoError(err)
	s.gen = &seqGenerator{fallback: random}
	s.clock = clock.NewMockClock(builder.BaseTime)

	s.campaign = builder.NewCampaignBuilder().BuildDomain()
	s.store.AddCampaign(s.campaign)

	s.uc = commands.NewRedemptionUseCase(s.store, s.otp, s.gen, s.clock, config.NewTestConfig())
}

func (s *RedemptionTestSuite) redeem(phone, token string) (*commands.RedeemResult, error) {
	return s.uc.Redeem(s.ctx, commands.RedeemInput{Phone: phone, OTP: validOTP, QRToken: token})
}

func (s *RedemptionTestSuite) TestRedeem_IssuesCouponForFreshBottle() {
	b := s.store.AddBottle(s.campaign.ID(), "tok-fresh")

	res, err := s.uc.Redeem(s.ctx, commands.RedeemInput{
		Phone:   "98765 43210",
		OTP:     validOTP,
		QRToken: "  tok-fresh ",
		Name:    "Asha",
	})
	s.Require().NoError(err)

	s.Equal(b.ID, res.BottleID)
	s.Equal(s.campaign.ID(), res.CampaignID)
	s.Equal(builder.BaseTime, res.GeneratedAt)
	s.Equal("percentage", res.CouponType)
	s.True(res.CouponMinValue.Equal(s.campaign.Offer().MinValue()))
	s.True(res.CouponMaxValue.Equal(s.campaign.Offer().MaxValue()))
	_, err = coupon.ParseCode(res.CouponCode)
	s.NoError(err)

	stored := s.store.Bottle(b.ID)
	s.Equal(bottle.StatusUsed, stored.Status)
	s.Require().NotNil(stored.ScannedAt)
	s.Equal(builder.BaseTime, *stored.ScannedAt)

	userID, ok := s.store.UserID("+919876543210")
	s.Require().True(ok)
	issued := s.store.Coupon(res.CouponID)
	s.Require().NotNil(issued)
	s.Equal(userID, issued.UserID())
	s.Equal(coupon.StatusActive, issued.Status())
}

func (s *RedemptionTestSuite) TestRedeem_SamePhoneSecondBottleSameCampaign() {
	first := s.store.AddBottle(s.campaign.ID(), "tok-1")
	second := s.store.AddBottle(s.campaign.ID(), "tok-2")

	_, err := s.redeem("+919876543210", first.Token)
	s.Require().NoError(err)

	_, err = s.redeem("09876543210", second.Token)
	assertErrIs(s.T(), err, commands.ErrAlreadyRedeemedForCampaign)
	s.Equal(bottle.StatusUnused, s.store.Bottle(second.ID).Status)
	s.Len(s.store.CouponsForCampaign(s.campaign.ID()), 1)
	s.Equal(1, s.store.UserCount())
}

func (s *RedemptionTestSuite) TestRedeem_SamePhoneDifferentCampaigns() {
	other := builder.NewCampaignBuilder().BuildDomain()
	s.store.AddCampaign(other)
	b1 := s.store.AddBottle(s.campaign.ID(), "tok-a")
	b2 := s.store.AddBottle(other.ID(), "tok-b")

	_, err := s.redeem("+919876543210", b1.Token)
	s.Require().NoError(err)
	_, err = s.redeem("+919876543210", b2.Token)
	s.Require().NoError(err)

	s.Equal(1, s.store.UserCount())
}

func (s *RedemptionTestSuite) TestRedeem_CampaignPausedAfterLookup() {
	b := s.store.AddBottle(s.campaign.ID(), "tok-pause")
	paused := builder.NewCampaignBuilder().With(func(cb *builder.CampaignBuilder) {
		cb.ID = s.campaign.ID()
		cb.ClientID = s.campaign.ClientID()
	}).WithStatus(campaign.StatusPaused).BuildDomain()

	// the admin pause commits after the unlocked status check but before the claim transaction
	s.store.BeforeTx = func(st *memuow.Store) {
		st.BeforeTx = nil
		st.AddCampaign(paused)
	}

	_, err := s.redeem("+919876543210", b.Token)
	assertErrIs(s.T(), err, commands.ErrCampaignInactive)
	s.Equal(bottle.StatusUnused, s.store.Bottle(b.ID).Status)
	s.Empty(s.store.CouponsForCampaign(s.campaign.ID()))
	s.Equal(0, s.store.UserCount())
}

func (s *RedemptionTestSuite) TestRedeem_CampaignDeletedAfterLookup() {
	b := s.store.AddBottle(s.campaign.ID(), "tok-gone")
	s.store.BeforeTx = func(st *memuow.Store) {
		st.BeforeTx = nil
		err := st.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Campaigns().Delete(ctx, s.campaign.ID())
			return err
		})
		s.Require().NoError(err)
	}

	_, err := s.redeem("+919876543210", b.Token)
	assertErrIs(s.T(), err, commands.ErrBottleNotFound)
}

func (s *RedemptionTestSuite) TestRedeem_UsedBottleRejectedForAnotherUser() {
	b := s.store.AddBottle(s.campaign.ID(), "tok-shared")

	_, err := s.redeem("+919876543210", b.Token)
	s.Require().NoError(err)

	_, err = s.redeem("+919812345678", b.Token)
	assertErrIs(s.T(), err, commands.ErrAlreadyUsed)
	s.Len(s.store.CouponsForCampaign(s.campaign.ID()), 1)
}

func (s *RedemptionTestSuite) TestRedeem_CampaignPolicy() {
	past := builder.BaseTime.AddDate(0, -2, 0)
	ended := builder.BaseTime.AddDate(0, 0, -1)
	future := builder.BaseTime.AddDate(0, 0, 3)
	futureEnd := builder.BaseTime.AddDate(0, 1, 0)

	tests := []struct {
		name    string
		builder *builder.CampaignBuilder
		wantErr error
	}{
		{
			name:    "期限切れ",
			builder: builder.NewCampaignBuilder().WithDates(&past, &ended),
			wantErr: commands.ErrCampaignExpired,
		},
		{
			name:    "一時停止中",
			builder: builder.NewCampaignBuilder().WithStatus(campaign.StatusPaused),
			wantErr: commands.ErrCampaignInactive,
		},
		{
			name:    "下書き",
			builder: builder.NewCampaignBuilder().WithStatus(campaign.StatusDraft),
			wantErr: commands.ErrCampaignInactive,
		},
		{
			name:    "終了済み",
			builder: builder.NewCampaignBuilder().WithStatus(campaign.StatusCompleted),
			wantErr: commands.ErrCampaignInactive,
		},
		{
			name:    "開始前",
			builder: builder.NewCampaignBuilder().WithDates(&future, &futureEnd),
			wantErr: commands.ErrCampaignInactive,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			c := tt.builder.BuildDomain()
			s.store.AddCampaign(c)
			b := s.store.AddBottle(c.ID(), "tok-"+c.ID().String())

			_, err := s.redeem("+919876543210", b.Token)

			assertErrIs(s.T(), err, tt.wantErr)
			s.Equal(bottle.StatusUnused, s.store.Bottle(b.ID).Status)
			s.Empty(s.store.CouponsForCampaign(c.ID()))
		})
	}
}

func (s *RedemptionTestSuite) TestRedeem_RejectsBeforeTouchingState() {
	b := s.store.AddBottle(s.campaign.ID(), "tok-guard")

	s.Run("不正なOTPはサービスのメッセージを返す", func() {
		_, err := s.uc.Redeem(s.ctx, commands.RedeemInput{Phone: "+919876543210", OTP: "000000", QRToken: b.Token})
		assertErrIs(s.T(), err, commands.ErrInvalidOTP)
		s.Equal(otp.MsgInvalid, err.Error())
	})

	s.Run("OTPストア障害はシステムエラー", func() {
		s.otp.err = errs.New("redis down")
		defer func() { s.otp.err = nil }()

		_, err := s.redeem("+919876543210", b.Token)
		assertErrIs(s.T(), err, commands.ErrSystem)
	})

	s.Run("不正な電話番号", func() {
		_, err := s.redeem("12ab", b.Token)
		assertErrIs(s.T(), err, commands.ErrInvalidPhone)
	})

	s.Run("OTP未入力", func() {
		_, err := s.uc.Redeem(s.ctx, commands.RedeemInput{Phone: "+919876543210", QRToken: b.Token})
		assertErrIs(s.T(), err, commands.ErrInvalidRequest)
	})

	s.Run("トークン未入力", func() {
		_, err := s.redeem("+919876543210", "   ")
		assertErrIs(s.T(), err, commands.ErrInvalidRequest)
	})

	s.Run("存在しないトークン", func() {
		_, err := s.redeem("+919876543210", "tok-unknown")
		assertErrIs(s.T(), err, commands.ErrBottleNotFound)
	})

	s.Equal(bottle.StatusUnused, s.store.Bottle(b.ID).Status)
	s.Equal(0, s.store.UserCount())
	s.Equal(0, s.store.Commits())
}

func (s *RedemptionTestSuite) TestRedeem_RetriesOnCodeCollision() {
	existingBottle := s.store.AddBottleWithStatus(s.campaign.ID(), "tok-old", bottle.StatusUsed)
	taken := coupon.Code("AQUA-AAAAAA")
	s.store.AddCoupon(coupon.Issue(taken, existingBottle.ID, s.campaign.ID(), uuid.New(), builder.BaseTime))
	s.gen.codes = []coupon.Code{taken, taken, "AQUA-BBBBBB"}
	b := s.store.AddBottle(s.campaign.ID(), "tok-new")

	res, err := s.redeem("+919876543210", b.Token)
	s.Require().NoError(err)

	s.Equal("AQUA-BBBBBB", res.CouponCode)
	s.Equal(3, s.gen.calls)
}

func (s *RedemptionTestSuite) TestRedeem_CodeSpaceExhaustedRollsBackClaim() {
	existingBottle := s.store.AddBottleWithStatus(s.campaign.ID(), "tok-old", bottle.StatusUsed)
	taken := coupon.Code("AQUA-AAAAAA")
	s.store.AddCoupon(coupon.Issue(taken, existingBottle.ID, s.campaign.ID(), uuid.New(), builder.BaseTime))
	s.uc = commands.NewRedemptionUseCase(s.store, s.otp, constGenerator{code: taken}, s.clock, config.NewTestConfig())
	b := s.store.AddBottle(s.campaign.ID(), "tok-new")

	_, err := s.redeem("+919876543210", b.Token)

	assertErrIs(s.T(), err, commands.ErrSystem)
	s.Equal(bottle.StatusUnused, s.store.Bottle(b.ID).Status)
	_, created := s.store.UserID("+919876543210")
	s.False(created)
}

func (s *RedemptionTestSuite) TestRedeem_InsertFailureRollsBackClaim() {
	b := s.store.AddBottle(s.campaign.ID(), "tok-fail")
	s.store.FailCouponInsert = errs.New("connection reset")

	_, err := s.redeem("+919876543210", b.Token)

	assertErrIs(s.T(), err, commands.ErrSystem)
	stored := s.store.Bottle(b.ID)
	s.Equal(bottle.StatusUnused, stored.Status)
	s.Nil(stored.ScannedAt)
	s.Empty(s.store.CouponsForCampaign(s.campaign.ID()))
	s.Equal(1, s.store.Rollbacks())
}

func (s *RedemptionTestSuite) TestRedeem_UniqueConstraintIsAuthoritative() {
	phone, err := consumer.NewPhone("+919876543210", "91")
	s.Require().NoError(err)
	userID := s.store.AddUser(phone, "Asha")
	claimed := s.store.AddBottleWithStatus(s.campaign.ID(), "tok-claimed", bottle.StatusUsed)
	s.store.AddCoupon(coupon.Issue("AQUA-ZZZZZZ", claimed.ID, s.campaign.ID(), userID, builder.BaseTime))
	s.store.SkipAdvisoryCheck = true
	b := s.store.AddBottle(s.campaign.ID(), "tok-second")

	_, err = s.redeem(phone.String(), b.Token)

	assertErrIs(s.T(), err, commands.ErrAlreadyRedeemedForCampaign)
	s.Equal(bottle.StatusUnused, s.store.Bottle(b.ID).Status)
}

func (s *RedemptionTestSuite) TestRedeem_ConcurrentScansOfOneBottle() {
	b := s.store.AddBottle(s.campaign.ID(), "tok-race")
	phones := []string{
		"+919800000001", "+919800000002", "+919800000003", "+919800000004", "+919800000005",
		"+919800000006", "+919800000007", "+919800000008", "+919800000009", "+919800000010",
	}

	errsCh := make(chan error, len(phones))
	var wg sync.WaitGroup
	for _, p := range phones {
		wg.Add(1)
		go func(phone string) {
			defer wg.Done()
			_, err := s.redeem(phone, b.Token)
			errsCh <- err
		}(p)
	}
	wg.Wait()
	close(errsCh)

	successes := 0
	for err := range errsCh {
		if err == nil {
			successes++
			continue
		}
		s.Truef(errs.Is(err, commands.ErrAlreadyUsed), "unexpected error: %v", err)
	}
	s.Equal(1, successes)
	s.Len(s.store.CouponsForCampaign(s.campaign.ID()), 1)
}

func (s *RedemptionTestSuite) TestRedeem_ConcurrentScansBySameUser() {
	const bottles = 8
	tokens := make([]string, 0, bottles)
	for i := range bottles {
		tokens = append(tokens, s.store.AddBottle(s.campaign.ID(), "tok-user-"+string(rune('a'+i))).Token)
	}

	errsCh := make(chan error, bottles)
	var wg sync.WaitGroup
	for _, tok := range tokens {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			_, err := s.redeem("+919876543210", token)
			errsCh <- err
		}(tok)
	}
	wg.Wait()
	close(errsCh)

	successes := 0
	for err := range errsCh {
		if err == nil {
			successes++
			continue
		}
		s.Truef(errs.Is(err, commands.ErrAlreadyRedeemedForCampaign), "unexpected error: %v", err)
	}
	s.Equal(1, successes)

	used := 0
	for _, b := range s.store.BottlesForCampaign(s.campaign.ID()) {
		if b.IsUsed() {
			used++
		}
	}
	s.Equal(1, used)
}

func (s *RedemptionTestSuite) issueCoupon(c *campaign.Campaign, code coupon.Code) *coupon.Coupon {
	b := s.store.AddBottleWithStatus(c.ID(), "tok-"+code.String(), bottle.StatusUsed)
	cp := coupon.Issue(code, b.ID, c.ID(), uuid.New(), builder.BaseTime.Add(-time.Hour))
	s.store.AddCoupon(cp)
	return cp
}

func (s *RedemptionTestSuite) TestMarkRedeemed_SingleUse() {
	cp := s.issueCoupon(s.campaign, "AQUA-K7P2QX")
	s.clock.Add(2 * time.Hour)

	res, err := s.uc.MarkRedeemed(s.ctx, " aqua-k7p2qx ")
	s.Require().NoError(err)
	s.Equal(cp.ID(), res.CouponID)
	s.Equal(builder.BaseTime.Add(2*time.Hour), res.RedeemedAt)

	stored := s.store.Coupon(cp.ID())
	s.Equal(coupon.StatusRedeemed, stored.Status())
	s.Require().NotNil(stored.RedeemedAt())
	s.Equal(1, s.store.RedemptionCount())

	_, err = s.uc.MarkRedeemed(s.ctx, "AQUA-K7P2QX")
	assertErrIs(s.T(), err, commands.ErrAlreadyRedeemed)
	s.Equal(1, s.store.RedemptionCount())
}

func (s *RedemptionTestSuite) TestMarkRedeemed_Rejections() {
	past := builder.BaseTime.AddDate(0, -2, 0)
	ended := builder.BaseTime.AddDate(0, 0, -1)
	expired := builder.NewCampaignBuilder().WithDates(&past, &ended).BuildDomain()
	paused := builder.NewCampaignBuilder().WithStatus(campaign.StatusPaused).BuildDomain()
	s.store.AddCampaign(expired)
	s.store.AddCampaign(paused)
	s.issueCoupon(expired, "AQUA-EXP001")
	s.issueCoupon(paused, "AQUA-PAU001")

	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{name: "未知のコード", code: "AQUA-NOPE00", wantErr: commands.ErrInvalidCode},
		{name: "形式不正", code: "not a code", wantErr: commands.ErrInvalidCode},
		{name: "空文字", code: "", wantErr: commands.ErrInvalidCode},
		{name: "期限切れキャンペーン", code: "AQUA-EXP001", wantErr: commands.ErrCampaignExpired},
		{name: "停止中キャンペーン", code: "AQUA-PAU001", wantErr: commands.ErrCampaignInactive},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.uc.MarkRedeemed(s.ctx, tt.code)
			assertErrIs(s.T(), err, tt.wantErr)
		})
	}
	s.Equal(0, s.store.RedemptionCount())
}

func (s *RedemptionTestSuite) TestMarkRedeemed_AuditFailureDoesNotFailCall() {
	cp := s.issueCoupon(s.campaign, "AQUA-AUD001")
	s.store.FailRedemptionRecord = errs.New("disk full")

	_, err := s.uc.MarkRedeemed(s.ctx, cp.Code().String())
	s.Require().NoError(err)

	s.Equal(coupon.StatusRedeemed, s.store.Coupon(cp.ID()).Status())
	s.Equal(0, s.store.RedemptionCount())
}

func (s *RedemptionTestSuite) TestMarkRedeemed_ExistingAuditRowDoesNotUndoRedemption() {
	cp := s.issueCoupon(s.campaign, "AQUA-AUD002")
	s.store.AddRedemption(cp.ID(), builder.BaseTime.Add(-time.Minute))

	res, err := s.uc.MarkRedeemed(s.ctx, cp.Code().String())
	s.Require().NoError(err)
	s.Equal(cp.ID(), res.CouponID)

	s.Equal(coupon.StatusRedeemed, s.store.Coupon(cp.ID()).Status())
	s.Equal(1, s.store.RedemptionCount())
	s.Equal(1, s.store.Rollbacks())

	_, err = s.uc.MarkRedeemed(s.ctx, cp.Code().String())
	assertErrIs(s.T(), err, commands.ErrAlreadyRedeemed)
}

func (s *RedemptionTestSuite) TestMarkRedeemed_ConcurrentRedemptions() {
	cp := s.issueCoupon(s.campaign, "AQUA-RACE01")

	const workers = 10
	errsCh := make(chan error, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.uc.MarkRedeemed(s.ctx, cp.Code().String())
			errsCh <- err
		}()
	}
	wg.Wait()
	close(errsCh)

	successes := 0
	for err := range errsCh {
		if err == nil {
			successes++
			continue
		}
		s.Truef(errs.Is(err, commands.ErrAlreadyRedeemed), "unexpected error: %v", err)
	}
	s.Equal(1, successes)
	s.Equal(1, s.store.RedemptionCount())
}

func TestRedemptionTestSuite(t *testing.T) {
	suite.Run(t, new(RedemptionTestSuite))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", err: nil, want: "success"},
		{name: "already used", err: commands.ErrAlreadyUsed, want: "already_used"},
		{name: "marked otp", err: errs.Mark(errs.New("Invalid OTP"), commands.ErrInvalidOTP), want: "invalid_otp"},
		{name: "wrapped system", err: errs.System(errs.New("boom"), "ctx"), want: "system_error"},
		{name: "expired", err: campaign.ErrCampaignExpired, want: "campaign_expired"},
		{name: "unknown", err: errs.New("something else"), want: "system_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commands.Outcome(tt.err))
		})
	}
}
