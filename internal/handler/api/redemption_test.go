//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/handler/api"
	resdto "qr-coupon-server/internal/handler/dto/response"
	"qr-coupon-server/internal/infra/otp"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/testutil"
	"qr-coupon-server/internal/testutil/httptest"
	commandsmock "qr-coupon-server/internal/testutil/mock/commands"
	"qr-coupon-server/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedemptionHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockCtrl       *gomock.Controller
	mockRedemption *commandsmock.MockRedemptionCommands
	mockBottles    *commandsmock.MockBottleCommands
	handler        *api.RedemptionHandler
}

func (s *RedemptionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockRedemption = commandsmock.NewMockRedemptionCommands(s.mockCtrl)
	s.mockBottles = commandsmock.NewMockBottleCommands(s.mockCtrl)
	s.handler = api.NewRedemptionHandler(s.mockRedemption, s.mockBottles)

	s.router.POST("/api/redeem", s.handler.Redeem)
	s.router.POST("/api/bottles/check", s.handler.CheckBottle)
	s.router.POST("/api/coupons/mark-redeemed", s.handler.MarkRedeemed)
}

func (s *RedemptionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRedemptionHandlerSuite(t *testing.T) {
	suite.Run(t, new(RedemptionHandlerTestSuite))
}

type testCaseRedemption struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestRedeem
// ================================================================================

func (s *RedemptionHandlerTestSuite) TestRedeem() {
	url := "/api/redeem"

	reqBody := map[string]any{
		"phone":    "9876543210",
		"otp":      "123456",
		"qr_token": "tok_aBcDeFgHiJkLmNoPqRsTu",
		"name":     "Asha",
	}
	result := &commands.RedeemResult{
		CouponID:       uuid.New(),
		CouponCode:     "AQUA-7KQ2-M9XD",
		CampaignID:     uuid.New(),
		CampaignName:   "Summer Hydration",
		BottleID:       uuid.New(),
		GeneratedAt:    time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		CouponType:     "percentage",
		CouponMinValue: decimal.NewFromInt(5),
		CouponMaxValue: decimal.NewFromInt(20),
	}

	s.Run("success: returns the issued coupon", func() {
		s.mockRedemption.EXPECT().Redeem(gomock.Any(), commands.RedeemInput{
			Phone:   "9876543210",
			OTP:     "123456",
			QRToken: "tok_aBcDeFgHiJkLmNoPqRsTu",
			Name:    "Asha",
		}).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.RedeemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Success)
		s.Equal(result.CouponCode, body.CouponCode)
		s.Equal(result.CouponID, body.CouponID)
		s.Equal(result.BottleID, body.BottleID)
		s.Equal("Summer Hydration", body.CampaignName)
		s.True(result.CouponMaxValue.Equal(body.CouponMaxValue))
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		cases := []testCaseRedemption{
			{name: "missing phone", mutate: testutil.Field("phone", nil), expectCode: http.StatusBadRequest},
			{name: "missing otp", mutate: testutil.Field("otp", nil), expectCode: http.StatusBadRequest},
			{name: "missing qr_token", mutate: testutil.Field("qr_token", nil), expectCode: http.StatusBadRequest},
			{name: "empty otp", mutate: testutil.Field("otp", ""), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorCode(s.T(), rec, tc.expectCode, "invalid_request")
			})
		}
	})

	s.Run("error: 400 Bad Request on malformed JSON", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, `{"phone":`, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
			expectedMsg    string
		}{
			{"invalid phone", commands.ErrInvalidPhone, http.StatusBadRequest, "invalid_phone", "Invalid phone number"},
			{"otp rejected keeps the message", errs.Mark(errs.New(otp.MsgInvalid), commands.ErrInvalidOTP), http.StatusBadRequest, "invalid_otp", otp.MsgInvalid},
			{"otp expired keeps the message", errs.Mark(errs.New(otp.MsgExpired), commands.ErrInvalidOTP), http.StatusBadRequest, "invalid_otp", otp.MsgExpired},
			{"unknown bottle", commands.ErrBottleNotFound, http.StatusNotFound, "bottle_not_found", "QR code not found"},
			{"bottle already used", commands.ErrAlreadyUsed, http.StatusConflict, "already_used", "already been used"},
			{"already claimed for campaign", commands.ErrAlreadyRedeemedForCampaign, http.StatusConflict, "already_redeemed_for_campaign", "already claimed"},
			{"campaign expired", commands.ErrCampaignExpired, http.StatusBadRequest, "campaign_expired", "Campaign has expired"},
			{"campaign inactive", commands.ErrCampaignInactive, http.StatusBadRequest, "campaign_inactive", "Campaign is not active"},
			{"system error", errs.System(errors.New("connection reset"), "redemption transaction failed"), http.StatusInternalServerError, "system_error", "Internal server error"},
			{"unclassified error", errors.New("boom"), http.StatusInternalServerError, "system_error", "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockRedemption.EXPECT().Redeem(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				body := httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.Equal(tc.expectedCode, body.Code)
			})
		}
	})

	s.Run("error: internal details are not leaked", func() {
		s.mockRedemption.EXPECT().Redeem(gomock.Any(), gomock.Any()).
			Return(nil, errs.System(errors.New("pq: password authentication failed"), "x")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.NotContains(rec.Body.String(), "password")
	})
}

// ================================================================================
// TestCheckBottle
// ================================================================================

func (s *RedemptionHandlerTestSuite) TestCheckBottle() {
	url := "/api/bottles/check"
	reqBody := map[string]any{"qr_token": "tok_aBcDeFgHiJkLmNoPqRsTu"}

	s.Run("success: returns bottle and offer", func() {
		result := &commands.BottleCheckResult{
			BottleID:       uuid.New(),
			CampaignID:     uuid.New(),
			Status:         "unused",
			CampaignName:   "Summer Hydration",
			CouponType:     "fixed",
			CouponMinValue: decimal.NewFromInt(10),
			CouponMaxValue: decimal.NewFromInt(50),
		}
		s.mockBottles.EXPECT().Check(gomock.Any(), "tok_aBcDeFgHiJkLmNoPqRsTu").
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BottleCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.Bottle)
		s.Equal(result.BottleID, body.Bottle.BottleID)
		s.Equal("unused", body.Bottle.Status)
		s.Equal("fixed", body.Bottle.CouponType)
	})

	s.Run("error: used bottle answers with the exact contract body", func() {
		s.mockBottles.EXPECT().Check(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrAlreadyUsed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		s.Equal(http.StatusBadRequest, rec.Code)
		s.JSONEq(`{"error":"Coupon redeemed from this QR","code":"already_used"}`, rec.Body.String())
	})

	s.Run("error: unknown token is 404", func() {
		s.mockBottles.EXPECT().Check(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrBottleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "bottle_not_found")
	})

	s.Run("error: campaign not accepting scans", func() {
		s.mockBottles.EXPECT().Check(gomock.Any(), gomock.Any()).
			Return(nil, campaign.ErrCampaignInactive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "campaign_inactive")
	})

	s.Run("error: 400 Bad Request without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})
}

// ================================================================================
// TestMarkRedeemed
// ================================================================================

func (s *RedemptionHandlerTestSuite) TestMarkRedeemed() {
	url := "/api/coupons/mark-redeemed"
	reqBody := map[string]any{"code": "AQUA-7KQ2-M9XD"}

	s.Run("success: returns the redeemed coupon", func() {
		result := &commands.MarkRedeemedResult{
			CouponID:   uuid.New(),
			CouponCode: "AQUA-7KQ2-M9XD",
			CampaignID: uuid.New(),
			RedeemedAt: time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC),
		}
		s.mockRedemption.EXPECT().MarkRedeemed(gomock.Any(), "AQUA-7KQ2-M9XD").
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.MarkRedeemedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Success)
		s.Equal(result.CouponID, body.CouponID)
		s.True(result.RedeemedAt.Equal(body.RedeemedAt))
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{"unknown code", commands.ErrInvalidCode, http.StatusNotFound, "invalid_code"},
			{"second redemption", commands.ErrAlreadyRedeemed, http.StatusConflict, "already_redeemed"},
			{"campaign expired", commands.ErrCampaignExpired, http.StatusBadRequest, "campaign_expired"},
			{"campaign paused", commands.ErrCampaignInactive, http.StatusBadRequest, "campaign_inactive"},
			{"system error", errs.System(errors.New("timeout"), "failed"), http.StatusInternalServerError, "system_error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockRedemption.EXPECT().MarkRedeemed(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})

	s.Run("error: 400 Bad Request without code", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": ""}, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})
}
