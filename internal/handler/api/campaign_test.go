//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"qr-coupon-server/internal/domain/auth"
	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/handler/api"
	resdto "qr-coupon-server/internal/handler/dto/response"
	"qr-coupon-server/internal/handler/middleware"
	"qr-coupon-server/internal/testutil"
	"qr-coupon-server/internal/testutil/builder"
	"qr-coupon-server/internal/testutil/httptest"
	commandsmock "qr-coupon-server/internal/testutil/mock/commands"
	queriesmock "qr-coupon-server/internal/testutil/mock/queries"
	"qr-coupon-server/internal/usecase/commands"
	"qr-coupon-server/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CampaignHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCampaignCommands
	mockQueries  *queriesmock.MockCampaignQueries
	mockCoupons  *queriesmock.MockCouponQueries
	handler      *api.CampaignHandler
	viewer       *auth.Principal
}

// fakeAuth stands in for RequireAuth: any bearer token resolves to s.viewer
func (s *CampaignHandlerTestSuite) fakeAuth(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": "unauthorized"})
		return
	}
	middleware.SetPrincipal(c, s.viewer)
	c.Next()
}

func (s *CampaignHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCampaignCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCampaignQueries(s.mockCtrl)
	s.mockCoupons = queriesmock.NewMockCouponQueries(s.mockCtrl)
	s.handler = api.NewCampaignHandler(s.mockCommands, s.mockQueries, s.mockCoupons)
	s.viewer = &auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin}

	admin := s.router.Group("/api/admin", s.fakeAuth)
	admin.POST("/campaigns", s.handler.Create)
	admin.GET("/campaigns", s.handler.List)
	admin.GET("/campaigns/:id", s.handler.Get)
	admin.PUT("/campaigns/:id", s.handler.Update)
	admin.DELETE("/campaigns/:id", s.handler.Delete)
	admin.POST("/campaigns/:id/status", s.handler.ChangeStatus)
	admin.GET("/campaigns/:id/coupons", s.handler.ListCoupons)

	// no auth in front: exercises the handler's own principal check
	s.router.GET("/unguarded/campaigns", s.handler.List)
}

func (s *CampaignHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCampaignHandlerSuite(t *testing.T) {
	suite.Run(t, new(CampaignHandlerTestSuite))
}

type testCaseCampaign struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *CampaignHandlerTestSuite) TestCreate() {
	url := "/api/admin/campaigns"

	b := builder.NewCampaignBuilder().WithStatus(campaign.StatusDraft)
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()

	s.Run("success: returns 201 Created with the stored campaign", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateCampaignInput) (uuid.UUID, error) {
				s.Equal(b.Name, in.Name)
				s.Equal("percentage", in.CouponType)
				s.True(b.MaxValue.Equal(in.CouponMaxValue))
				s.Require().NotNil(in.StartDate)
				return view.ID, nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.viewer, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.CampaignResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("draft", body.Status)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": url + "/" + view.ID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseCampaign{
			{name: "missing field: name", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
			{name: "name too long (201 chars)", mutate: testutil.Field("name", strings.Repeat("a", 201)), expectCode: http.StatusBadRequest},
			{name: "missing field: coupon_type", mutate: testutil.Field("coupon_type", nil), expectCode: http.StatusBadRequest},
			{name: "unknown coupon_type", mutate: testutil.Field("coupon_type", "bogo"), expectCode: http.StatusBadRequest},
			{name: "malformed client_id", mutate: testutil.Field("client_id", "not-a-uuid"), expectCode: http.StatusBadRequest},
			{name: "malformed start_date", mutate: testutil.Field("start_date", "10/03/2026"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectCode, "invalid_request")
			})
		}
	})

	s.Run("error: domain validation surfaces its message", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, campaign.ErrInvalidCouponRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, campaign.ErrInvalidCouponRange.Error())
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *CampaignHandlerTestSuite) TestGet() {
	view := builder.NewCampaignBuilder().BuildView()
	url := "/api/admin/campaigns/" + view.ID.String()

	s.Run("success: returns 200 OK with CampaignResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.viewer, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.CampaignResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(view.Name, body.Name)
		s.Equal("active", body.Status)
		s.True(body.IsActive)
		s.True(view.CouponMinValue.Equal(body.CouponMinValue))
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/campaigns/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: maps query errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queriesError   error
			expectedStatus int
			expectedCode   string
		}{
			{"campaign not found", queries.ErrCampaignNotFound, http.StatusNotFound, "campaign_not_found"},
			{"access denied", queries.ErrCampaignAccess, http.StatusForbidden, "forbidden"},
			{"internal server error", errors.New("database error"), http.StatusInternalServerError, "system_error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).
					Return(nil, tc.queriesError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *CampaignHandlerTestSuite) TestList() {
	views := []*queries.CampaignView{
		builder.NewCampaignBuilder().BuildView(),
		builder.NewCampaignBuilder().WithStatus(campaign.StatusPaused).BuildView(),
	}

	s.Run("success: forwards filters and wraps the list", func() {
		clientID := uuid.New()
		status := "active"
		expected := queries.CampaignFilter{ClientID: &clientID, Status: &status, Limit: 5, Offset: 10}
		s.mockQueries.EXPECT().List(gomock.Any(), s.viewer, expected).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/admin/campaigns?status=active&limit=5&offset=10&client_id="+clientID.String(), nil, "bearer-token")

		var body map[string][]resdto.CampaignResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body["campaigns"], 2)
		s.Equal("paused", body["campaigns"][1].Status)
	})

	s.Run("success: empty result is an empty array", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.viewer, queries.CampaignFilter{}).
			Return([]*queries.CampaignView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/campaigns", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"campaigns":[]}`, rec.Body.String())
	})

	s.Run("error: 400 Bad Request for malformed client_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/campaigns?client_id=abc", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})

	s.Run("error: 400 Bad Request for unknown status", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, campaign.ErrInvalidStatus).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/campaigns?status=archived", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_status")
	})

	s.Run("error: 401 when no principal reached the handler", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/unguarded/campaigns", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, "unauthorized")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *CampaignHandlerTestSuite) TestUpdate() {
	view := builder.NewCampaignBuilder().BuildView()
	url := "/api/admin/campaigns/" + view.ID.String()

	s.Run("success: partial update returns the fresh view", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, in commands.UpdateCampaignInput) error {
				s.Require().NotNil(in.Name)
				s.Equal("Winter Refill", *in.Name)
				s.Nil(in.CouponType)
				s.Nil(in.EndDate)
				return nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.viewer, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"name": "Winter Refill"}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resdto.CampaignResponse{})
	})

	s.Run("error: 400 Bad Request on unknown coupon_type", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"coupon_type": "cashback"}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{"campaign not found", commands.ErrCampaignNotFound, http.StatusNotFound, "campaign_not_found"},
			{"completed campaign", campaign.ErrCampaignCompleted, http.StatusConflict, "campaign_completed"},
			{"end before start", campaign.ErrInvalidDateRange, http.StatusBadRequest, "invalid_date_range"},
			{"active campaign moved into the past", campaign.ErrCampaignExpired, http.StatusBadRequest, "campaign_expired"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, gomock.Any()).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"name": "x"}, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}

// ================================================================================
// TestChangeStatus
// ================================================================================

func (s *CampaignHandlerTestSuite) TestChangeStatus() {
	id := uuid.New()
	url := "/api/admin/campaigns/" + id.String() + "/status"

	s.Run("success: transition applied", func() {
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), id, "active").
			Return(&commands.ChangeStatusResult{Status: campaign.StatusActive, Changed: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"status": "active"}, "bearer-token")

		var body resdto.CampaignStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(id, body.ID)
		s.Equal("active", body.Status)
		s.True(body.Changed)
	})

	s.Run("success: same status is a no-op", func() {
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), id, "paused").
			Return(&commands.ChangeStatusResult{Status: campaign.StatusPaused, Changed: false}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"status": "paused"}, "bearer-token")

		var body resdto.CampaignStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Changed)
	})

	s.Run("error: 400 Bad Request without status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{"illegal transition", campaign.ErrInvalidTransition, http.StatusBadRequest, "invalid_transition"},
			{"activation without dates", campaign.ErrMissingDates, http.StatusBadRequest, "missing_dates"},
			{"activation after end date", campaign.ErrCampaignExpired, http.StatusBadRequest, "campaign_expired"},
			{"unknown status", campaign.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
			{"lost the race", commands.ErrStatusConflict, http.StatusConflict, "status_conflict"},
			{"campaign not found", commands.ErrCampaignNotFound, http.StatusNotFound, "campaign_not_found"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), id, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"status": "active"}, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *CampaignHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/api/admin/campaigns/" + id.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for missing campaign", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(commands.ErrCampaignNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "campaign_not_found")
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/admin/campaigns/123", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

// ================================================================================
// TestListCoupons
// ================================================================================

func (s *CampaignHandlerTestSuite) TestListCoupons() {
	id := uuid.New()
	url := "/api/admin/campaigns/" + id.String() + "/coupons"

	s.Run("success: masked phones are passed through", func() {
		items := []*queries.CouponListItem{
			{ID: uuid.New(), Code: "AQUA-7KQ2-M9XD", Status: "issued", UserPhone: "*********3210", GeneratedAt: builder.BaseTime},
		}
		s.mockCoupons.EXPECT().ListByCampaign(gomock.Any(), s.viewer, id, 50, 0).Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=50", nil, "bearer-token")

		var body map[string][]resdto.CouponListItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body["coupons"], 1)
		s.Equal("*********3210", body["coupons"][0].UserPhone)
		s.Equal("AQUA-7KQ2-M9XD", body["coupons"][0].Code)
	})

	s.Run("error: campaign not found", func() {
		s.mockCoupons.EXPECT().ListByCampaign(gomock.Any(), s.viewer, id, 0, 0).
			Return(nil, queries.ErrCampaignNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "campaign_not_found")
	})

	s.Run("error: non numeric limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=ten", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})
}
