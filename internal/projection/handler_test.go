package projection

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/voltline/renewable-ts/internal/core/timeseries"
	storagemocks "github.com/voltline/renewable-ts/internal/mocks/storage"
)

func serve(t *testing.T, svc *Service, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	svc.RegisterRoutes(r)

	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestService_HandleQuery_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
		configure      func(store *storagemocks.QueryStore)
	}{
		{
			name:           "malformed json returns 400",
			body:           `{"aggregation_kind":`,
			expectedStatus: http.StatusBadRequest,
			configure:      func(_ *storagemocks.QueryStore) {},
		},
		{
			name:           "unknown kind returns 400",
			body:           `{"aggregation_kind":"Weekly"}`,
			expectedStatus: http.StatusBadRequest,
			configure:      func(_ *storagemocks.QueryStore) {},
		},
		{
			name:           "missing kind returns 400",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			configure:      func(_ *storagemocks.QueryStore) {},
		},
		{
			name:           "store error returns generic 500",
			body:           `{"aggregation_kind":"Hourly"}`,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error_type":"internal_error","message":"Internal Error"}`,
			configure: func(store *storagemocks.QueryStore) {
				store.EXPECT().
					AggregateWithHistory(mock.Anything, mock.Anything).
					Return(nil, errors.New("pq: relation \"ts_store\" does not exist")).
					Once()
			},
		},
		{
			name:           "success",
			body:           `{"aggregation_kind":"Yearly","datetime_filter":{"from_date":"2024-01-01T00:00:00Z"}}`,
			expectedStatus: http.StatusOK,
			expectedBody: `{"executed_at":"2025-03-01T12:00:00Z","records":[
				{"datetime":"2024-01-01T00:00:00Z","total_amount":"117600"}
			]}`,
			configure: func(store *storagemocks.QueryStore) {
				store.EXPECT().
					AggregateWithHistory(mock.Anything, mock.Anything).
					Return([]timeseries.Bucket{{
						Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
						Total: decimal.NewNullDecimal(decimal.NewFromInt(117600)),
					}}, nil).
					Once()
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := storagemocks.NewQueryStore(t)
			tc.configure(store)

			resp := serve(t, newTestService(store), http.MethodPost, "/timeseries/v1/query", tc.body)
			if resp.Code != tc.expectedStatus {
				t.Logf("unexpected response body: %s", resp.Body.String())
			}
			require.Equal(t, tc.expectedStatus, resp.Code)
			if tc.expectedBody != "" {
				require.JSONEq(t, tc.expectedBody, resp.Body.String())
			}
		})
	}
}

func TestService_HandleHistory(t *testing.T) {
	store := storagemocks.NewQueryStore(t)
	store.EXPECT().
		ListHistory(mock.Anything, DefaultHistoryLimit).
		Return([]timeseries.HistoryEntry{{ID: 1, ExecutedAt: now, Kind: timeseries.Hourly}}, nil).
		Once()

	resp := serve(t, newTestService(store), http.MethodGet, "/timeseries/v1/query/history", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `[{"id":1,"executed_at":"2025-03-01T12:00:00Z","from_date":null,"to_date":null,"aggregation":"Hourly"}]`, resp.Body.String())
}

func TestService_HandleHistory_EmptyIsArray(t *testing.T) {
	store := storagemocks.NewQueryStore(t)
	store.EXPECT().ListHistory(mock.Anything, DefaultHistoryLimit).Return(nil, nil).Once()

	resp := serve(t, newTestService(store), http.MethodGet, "/timeseries/v1/query/history", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `[]`, resp.Body.String())
}

func TestService_HandleHistory_StoreError(t *testing.T) {
	store := storagemocks.NewQueryStore(t)
	store.EXPECT().ListHistory(mock.Anything, DefaultHistoryLimit).Return(nil, errors.New("boom")).Once()

	resp := serve(t, newTestService(store), http.MethodGet, "/timeseries/v1/query/history", "")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	require.JSONEq(t, `{"error_type":"internal_error","message":"Internal Error"}`, resp.Body.String())
}
