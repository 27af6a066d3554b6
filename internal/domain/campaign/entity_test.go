//go:build unit

package campaign_test

import (
	"testing"
	"time"

	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/testutil/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(campaign.Campaign{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.CampaignBuilder)
	errIs  error
}

func ptr(t time.Time) *time.Time { return &t }

func TestCampaign_New(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		actual, err := builder.NewCampaignBuilder().BuildNew()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, campaign.StatusDraft, actual.Status())
		assert.False(t, actual.IsActive())
		assert.Equal(t, "Summer Hydration", actual.Name())
		assert.Equal(t, builder.BaseTime, actual.CreatedAt())
		assert.Zero(t, actual.ScanCount())
	})

	t.Run("入力検証", func(t *testing.T) {
		runNewCases(t, []testCase{
			{
				name:   "名前空NG",
				mutate: func(b *builder.CampaignBuilder) { b.Name = "   " },
				errIs:  campaign.ErrInvalidName,
			},
			{
				name:   "日付なしの下書きOK",
				mutate: func(b *builder.CampaignBuilder) { b.WithDates(nil, nil) },
			},
			{
				name: "終了日が開始日以前NG",
				mutate: func(b *builder.CampaignBuilder) {
					b.WithDates(ptr(builder.BaseTime), ptr(builder.BaseTime))
				},
				errIs: campaign.ErrInvalidDateRange,
			},
			{
				name:   "不明なクーポン種別NG",
				mutate: func(b *builder.CampaignBuilder) { b.CouponType = "bogo" },
				errIs:  campaign.ErrInvalidCouponType,
			},
			{
				name: "割引率100超NG",
				mutate: func(b *builder.CampaignBuilder) {
					b.MaxValue = decimal.NewFromInt(150)
				},
				errIs: campaign.ErrInvalidCouponRange,
			},
			{
				name: "最小値が最大値超NG",
				mutate: func(b *builder.CampaignBuilder) {
					b.MinValue = decimal.NewFromInt(30)
				},
				errIs: campaign.ErrInvalidCouponRange,
			},
			{
				name: "定額クーポンは100超OK",
				mutate: func(b *builder.CampaignBuilder) {
					b.CouponType = "fixed"
					b.MaxValue = decimal.NewFromInt(250)
				},
			},
		})
	})
}

func TestCampaign_TransitionTo(t *testing.T) {
	now := builder.BaseTime

	t.Run("許可された遷移", func(t *testing.T) {
		cases := []struct {
			from campaign.Status
			to   campaign.Status
		}{
			{campaign.StatusDraft, campaign.StatusActive},
			{campaign.StatusActive, campaign.StatusPaused},
			{campaign.StatusActive, campaign.StatusCompleted},
			{campaign.StatusPaused, campaign.StatusActive},
			{campaign.StatusPaused, campaign.StatusCompleted},
		}
		for _, tc := range cases {
			t.Run(string(tc.from)+"→"+string(tc.to), func(t *testing.T) {
				c := builder.NewCampaignBuilder().WithStatus(tc.from).BuildDomain()

				changed, err := c.TransitionTo(tc.to, now)
				require.NoError(t, err)
				assert.True(t, changed)
				assert.Equal(t, tc.to, c.Status())
				assert.Equal(t, tc.to == campaign.StatusActive, c.IsActive())
				assert.Equal(t, now, c.UpdatedAt())
			})
		}
	})

	t.Run("禁止された遷移", func(t *testing.T) {
		cases := []struct {
			from campaign.Status
			to   campaign.Status
		}{
			{campaign.StatusDraft, campaign.StatusPaused},
			{campaign.StatusDraft, campaign.StatusCompleted},
			{campaign.StatusCompleted, campaign.StatusActive},
			{campaign.StatusCompleted, campaign.StatusDraft},
			{campaign.StatusActive, campaign.StatusDraft},
		}
		for _, tc := range cases {
			t.Run(string(tc.from)+"→"+string(tc.to), func(t *testing.T) {
				c := builder.NewCampaignBuilder().WithStatus(tc.from).BuildDomain()

				changed, err := c.TransitionTo(tc.to, now)
				require.ErrorIs(t, err, campaign.ErrInvalidTransition)
				assert.False(t, changed)
				assert.Equal(t, tc.from, c.Status())
			})
		}
	})

	t.Run("同一ステータスは変更なしで成功", func(t *testing.T) {
		for _, s := range []campaign.Status{
			campaign.StatusDraft, campaign.StatusActive, campaign.StatusPaused, campaign.StatusCompleted,
		} {
			t.Run(string(s), func(t *testing.T) {
				c := builder.NewCampaignBuilder().WithStatus(s).BuildDomain()
				before := c.UpdatedAt()

				changed, err := c.TransitionTo(s, now)
				require.NoError(t, err)
				assert.False(t, changed)
				assert.Equal(t, before, c.UpdatedAt())
			})
		}
	})

	t.Run("不明なステータスNG", func(t *testing.T) {
		c := builder.NewCampaignBuilder().WithStatus(campaign.StatusDraft).BuildDomain()

		_, err := c.TransitionTo(campaign.Status("archived"), now)
		require.ErrorIs(t, err, campaign.ErrInvalidStatus)
	})

	t.Run("有効化の期間検証", func(t *testing.T) {
		cases := []struct {
			name       string
			start, end *time.Time
			errIs      error
		}{
			{name: "日付なしNG", errIs: campaign.ErrMissingDates},
			{name: "終了日なしNG", start: ptr(now), errIs: campaign.ErrMissingDates},
			{
				name:  "終了日が開始日以前NG",
				start: ptr(now.Add(time.Hour)), end: ptr(now.Add(time.Hour)),
				errIs: campaign.ErrInvalidDateRange,
			},
			{
				name:  "終了日が過去NG",
				start: ptr(now.AddDate(0, -1, 0)), end: ptr(now.Add(-time.Minute)),
				errIs: campaign.ErrCampaignExpired,
			},
			{
				name:  "開始前でも有効化OK",
				start: ptr(now.AddDate(0, 0, 1)), end: ptr(now.AddDate(0, 0, 5)),
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				c := builder.NewCampaignBuilder().
					WithStatus(campaign.StatusDraft).
					WithDates(tc.start, tc.end).
					BuildDomain()

				changed, err := c.TransitionTo(campaign.StatusActive, now)
				if tc.errIs != nil {
					require.ErrorIs(t, err, tc.errIs)
					assert.False(t, changed)
					assert.Equal(t, campaign.StatusDraft, c.Status())
					assert.False(t, c.IsActive())
					return
				}
				require.NoError(t, err)
				assert.True(t, c.IsActive())
			})
		}
	})
}

func TestCampaign_AcceptsRedemptions(t *testing.T) {
	now := builder.BaseTime

	cases := []struct {
		name   string
		mutate func(*builder.CampaignBuilder)
		errIs  error
	}{
		{name: "有効期間内OK", mutate: func(b *builder.CampaignBuilder) {}},
		{
			name:   "下書きNG",
			mutate: func(b *builder.CampaignBuilder) { b.WithStatus(campaign.StatusDraft) },
			errIs:  campaign.ErrCampaignInactive,
		},
		{
			name:   "一時停止NG",
			mutate: func(b *builder.CampaignBuilder) { b.WithStatus(campaign.StatusPaused) },
			errIs:  campaign.ErrCampaignInactive,
		},
		{
			name:   "完了NG",
			mutate: func(b *builder.CampaignBuilder) { b.WithStatus(campaign.StatusCompleted) },
			errIs:  campaign.ErrCampaignInactive,
		},
		{
			name: "終了日経過NG",
			mutate: func(b *builder.CampaignBuilder) {
				b.WithDates(ptr(now.AddDate(0, -1, 0)), ptr(now.Add(-time.Second)))
			},
			errIs: campaign.ErrCampaignExpired,
		},
		{
			name: "開始前NG",
			mutate: func(b *builder.CampaignBuilder) {
				b.WithDates(ptr(now.Add(time.Hour)), ptr(now.AddDate(0, 1, 0)))
			},
			errIs: campaign.ErrCampaignInactive,
		},
		{
			name: "終了時刻ちょうどOK",
			mutate: func(b *builder.CampaignBuilder) {
				b.WithDates(ptr(now.AddDate(0, -1, 0)), ptr(now))
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := builder.NewCampaignBuilder().With(tc.mutate).BuildDomain()

			err := c.AcceptsRedemptions(now)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCampaign_AcceptsInStoreRedemption(t *testing.T) {
	now := builder.BaseTime

	t.Run("有効中OK", func(t *testing.T) {
		c := builder.NewCampaignBuilder().BuildDomain()
		require.NoError(t, c.AcceptsInStoreRedemption(now))
	})

	t.Run("一時停止NG", func(t *testing.T) {
		c := builder.NewCampaignBuilder().WithStatus(campaign.StatusPaused).BuildDomain()
		require.ErrorIs(t, c.AcceptsInStoreRedemption(now), campaign.ErrCampaignInactive)
	})

	t.Run("終了日経過NG", func(t *testing.T) {
		c := builder.NewCampaignBuilder().
			WithDates(ptr(now.AddDate(0, -1, 0)), ptr(now.Add(-time.Minute))).
			BuildDomain()
		require.ErrorIs(t, c.AcceptsInStoreRedemption(now), campaign.ErrCampaignExpired)
	})
}

func TestCampaign_UpdateDetails(t *testing.T) {
	now := builder.BaseTime

	t.Run("詳細を更新", func(t *testing.T) {
		b := builder.NewCampaignBuilder().WithStatus(campaign.StatusPaused)
		c := b.BuildDomain()

		b.Name = "  Monsoon Refill  "
		d, err := b.Details()
		require.NoError(t, err)

		require.NoError(t, c.UpdateDetails(d, now))
		assert.Equal(t, "Monsoon Refill", c.Name())
		assert.Equal(t, campaign.StatusPaused, c.Status())
		assert.Equal(t, now, c.UpdatedAt())
	})

	t.Run("完了済みは更新不可", func(t *testing.T) {
		b := builder.NewCampaignBuilder().WithStatus(campaign.StatusCompleted)
		c := b.BuildDomain()
		d, err := b.Details()
		require.NoError(t, err)

		require.ErrorIs(t, c.UpdateDetails(d, now), campaign.ErrCampaignCompleted)
	})

	t.Run("有効中は過去の終了日に変更不可", func(t *testing.T) {
		b := builder.NewCampaignBuilder()
		c := b.BuildDomain()
		b.WithDates(ptr(now.AddDate(0, -2, 0)), ptr(now.AddDate(0, -1, 0)))
		d, err := b.Details()
		require.NoError(t, err)

		require.ErrorIs(t, c.UpdateDetails(d, now), campaign.ErrCampaignExpired)
		assert.Equal(t, "Summer Hydration", c.Name())
	})
}

func TestParseStatus(t *testing.T) {
	s, err := campaign.ParseStatus(" Active ")
	require.NoError(t, err)
	assert.Equal(t, campaign.StatusActive, s)

	_, err = campaign.ParseStatus("archived")
	require.ErrorIs(t, err, campaign.ErrInvalidStatus)
}

func runNewCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewCampaignBuilder().With(c.mutate).BuildNew()

			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)

			expected := builder.NewCampaignBuilder().With(c.mutate).BuildDomain()
			if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
				t.Errorf("Campaign mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, expected.EndDate(), actual.EndDate())
		})
	}
}
