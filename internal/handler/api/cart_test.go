//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"cart-engine/internal/domain/cart"
	"cart-engine/internal/handler/api"
	resdto "cart-engine/internal/handler/dto/response"
	"cart-engine/tests/common/builder"
	"cart-engine/tests/common/httptest"
	"cart-engine/tests/common/testutil"
	commandsmock "cart-engine/tests/mock/commands"
	queriesmock "cart-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCartCommands
	mockQueries  *queriesmock.MockCartQueries
	handler      *api.CartHandler
	sessionID    uuid.UUID
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	s.handler = api.NewCartHandler(s.mockCommands, s.mockQueries)
	s.sessionID = uuid.New()

	// Stub session middleware: every request runs as a known guest session
	sessionMiddleware := func(c *gin.Context) {
		c.Set("cart_session_id", s.sessionID)
		c.Next()
	}

	// Setup routes
	s.router.GET("/api/cart", sessionMiddleware, s.handler.Get)
	s.router.DELETE("/api/cart", sessionMiddleware, s.handler.Clear)
	s.router.POST("/api/cart/items", sessionMiddleware, s.handler.AddItem)
	s.router.PATCH("/api/cart/items/:id", sessionMiddleware, s.handler.UpdateQuantity)
	s.router.DELETE("/api/cart/items/:id", sessionMiddleware, s.handler.RemoveItem)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

type testCaseCart struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestGet
// ================================================================================

func (s *CartHandlerTestSuite) TestGet() {
	url := "/api/cart"

	returnView := builder.BuildCartView(
		builder.NewCartItemBuilder().WithQuantity(2).BuildItemView(),
		builder.NewCartItemBuilder().WithProductID("prod-002").WithName("USB Hub").WithUnitPrice(450000).BuildItemView(),
	)

	s.Run("success: returns 200 OK with CartResponse", func() {
		s.mockQueries.EXPECT().GetCart(gomock.Any(), s.sessionID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 2)
		s.Equal(returnView.Total, response.Total)
		s.Equal(returnView.Count, response.Count)
		s.Equal("prod-001", response.Items[0].ProductID)
		s.Equal(int64(240000), response.Items[0].Subtotal)
	})

	s.Run("success: empty cart returns empty items with zero totals", func() {
		s.mockQueries.EXPECT().GetCart(gomock.Any(), s.sessionID).
			Return(builder.BuildCartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.Items)
		s.Zero(response.Total)
		s.Zero(response.Count)
	})

	s.Run("error: 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().GetCart(gomock.Any(), s.sessionID).
			Return(nil, errors.New("redis down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to load cart")
	})

	s.Run("error: 500 when session middleware did not run", func() {
		bareRouter := gin.New()
		bareRouter.GET("/api/cart", s.handler.Get)

		rec := httptest.PerformRequest(s.T(), bareRouter, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Session missing")
	})
}

// ================================================================================
// TestAddItem
// ================================================================================

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/api/cart/items"

	reqBody := builder.NewCartItemBuilder().BuildAddItemRequestDTO()
	expectedResult := builder.NewCartItemBuilder().BuildAddItemResult(false)

	validationCases := []testCaseCart{
		{name: "missing field: product_id (required)", mutate: testutil.Field("product_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: name (required)", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
		{name: "negative unit_price", mutate: testutil.Field("unit_price", -1), expectCode: http.StatusBadRequest},
		{name: "negative previous_price", mutate: testutil.Field("previous_price", -100), expectCode: http.StatusBadRequest},
		{name: "negative quantity", mutate: testutil.Field("quantity", -1), expectCode: http.StatusBadRequest},
		// An omitted or zero quantity means "one", handled in the usecase.
		{name: "zero quantity defaults to one", mutate: testutil.Field("quantity", 0), expectCode: http.StatusOK},
		{name: "omitted quantity defaults to one", mutate: testutil.Field("quantity", nil), expectCode: http.StatusOK},
	}

	s.Run("success: returns 200 OK with AddItemResponse", func() {
		s.mockCommands.EXPECT().AddItem(gomock.Any(), s.sessionID, reqBody.ToCommand()).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var response resdto.AddItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("prod-001", response.Item.ProductID)
		s.False(response.Merged)
		s.Equal(expectedResult.Total, response.Total)
	})

	s.Run("success: merged flag is passed through", func() {
		mergedResult := builder.NewCartItemBuilder().WithQuantity(3).BuildAddItemResult(true)
		s.mockCommands.EXPECT().AddItem(gomock.Any(), s.sessionID, gomock.Any()).
			Return(mergedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var response resdto.AddItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Merged)
		s.Equal(3, response.Item.Quantity)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validationCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				if tc.expectCode == http.StatusOK {
					s.mockCommands.EXPECT().AddItem(gomock.Any(), s.sessionID, gomock.Any()).
						Return(expectedResult, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
				if tc.expectCode == http.StatusOK {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				}
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "item validation error",
				commandsError:  cart.ErrInvalidQuantity,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid item",
			},
			{
				name:           "store error",
				commandsError:  errors.New("redis down"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Failed to add item",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().AddItem(gomock.Any(), s.sessionID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestUpdateQuantity
// ================================================================================

func (s *CartHandlerTestSuite) TestUpdateQuantity() {
	url := "/api/cart/items/prod-001"

	returnView := builder.BuildCartView(
		builder.NewCartItemBuilder().WithQuantity(5).BuildItemView(),
	)

	s.Run("success: returns 200 OK with updated cart", func() {
		s.mockCommands.EXPECT().UpdateQuantity(gomock.Any(), s.sessionID, "prod-001", 5).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetCart(gomock.Any(), s.sessionID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"quantity": 5})

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(5, response.Count)
	})

	s.Run("success: zero quantity is a valid removal request", func() {
		s.mockCommands.EXPECT().UpdateQuantity(gomock.Any(), s.sessionID, "prod-001", 0).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetCart(gomock.Any(), s.sessionID).
			Return(builder.BuildCartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"quantity": 0})

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.Items)
	})

	s.Run("error: 400 Bad Request when quantity is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 500 Internal Server Error on command error", func() {
		s.mockCommands.EXPECT().UpdateQuantity(gomock.Any(), s.sessionID, "prod-001", 5).
			Return(errors.New("redis down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"quantity": 5})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to update quantity")
	})
}

// ================================================================================
// TestRemoveItem
// ================================================================================

func (s *CartHandlerTestSuite) TestRemoveItem() {
	url := "/api/cart/items/prod-001"

	s.Run("success: returns 200 OK with remaining cart", func() {
		s.mockCommands.EXPECT().RemoveItem(gomock.Any(), s.sessionID, "prod-001").
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetCart(gomock.Any(), s.sessionID).
			Return(builder.BuildCartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.Items)
	})

	s.Run("error: 500 Internal Server Error on command error", func() {
		s.mockCommands.EXPECT().RemoveItem(gomock.Any(), s.sessionID, "prod-001").
			Return(errors.New("redis down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to remove item")
	})
}

// ================================================================================
// TestClear
// ================================================================================

func (s *CartHandlerTestSuite) TestClear() {
	url := "/api/cart"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().ClearCart(gomock.Any(), s.sessionID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 500 Internal Server Error on command error", func() {
		s.mockCommands.EXPECT().ClearCart(gomock.Any(), s.sessionID).
			Return(errors.New("redis down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to clear cart")
	})
}
