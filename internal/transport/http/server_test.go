package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/curvelabs/launchpool/internal/amm"
	"github.com/curvelabs/launchpool/internal/config"
	"github.com/curvelabs/launchpool/internal/pool"
	"github.com/curvelabs/launchpool/internal/service/mock"
)

const (
	poolParam   = "0x1234567890123456789012345678901234567890"
	quoteTarget = "/quote?pool=" + poolParam + "&direction=base_for_quote&amount=1000"
)

func testConfig() config.Config {
	return config.Config{
		GraceTimeout:      5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		RequestTimeout:    5 * time.Second,
	}
}

func doRequest(t *testing.T, s *Server, method, target string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	resp := w.Result()
	t.Cleanup(func() { require.NoError(t, resp.Body.Close()) })

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestPingHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := NewServer(mock.NewMockService(ctrl), zap.NewNop(), testConfig())

	resp, body := doRequest(t, server, http.MethodGet, "/ping")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "pong", body)
}

func TestQuoteHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	server := NewServer(mockService, zap.NewNop(), testConfig())

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().
			Quote(gomock.Any(), gomock.Any()).
			Return(uint64(996_006), nil)

		resp, body := doRequest(t, server, http.MethodGet, quoteTarget)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		require.Equal(t, "996006", body)
	})

	t.Run("validation error - missing params", func(t *testing.T) {
		resp, _ := doRequest(t, server, http.MethodGet, "/quote?pool="+poolParam)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("validation error - bad address", func(t *testing.T) {
		resp, _ := doRequest(t, server, http.MethodGet, "/quote?pool=invalid&direction=base_for_quote&amount=1000")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("validation error - bad amount", func(t *testing.T) {
		resp, _ := doRequest(t, server, http.MethodGet, "/quote?pool="+poolParam+"&direction=base_for_quote&amount=-1000")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	testServiceError := func(t *testing.T, serviceError error, expectedStatusCode int) {
		mockService.EXPECT().
			Quote(gomock.Any(), gomock.Any()).
			Return(uint64(0), serviceError)

		resp, _ := doRequest(t, server, http.MethodGet, quoteTarget)
		require.Equal(t, expectedStatusCode, resp.StatusCode)
	}

	t.Run("service error - invalid amount", func(t *testing.T) {
		testServiceError(t, amm.ErrInvalidAmount, http.StatusBadRequest)
	})

	t.Run("service error - insufficient liquidity", func(t *testing.T) {
		testServiceError(t, amm.ErrInsufficientLiquidity, http.StatusBadRequest)
	})

	t.Run("service error - pool not initialized", func(t *testing.T) {
		testServiceError(t, amm.ErrNotInitialized, http.StatusNotFound)
	})

	t.Run("service error - unknown error", func(t *testing.T) {
		testServiceError(t, errors.New("unknown error"), http.StatusInternalServerError)
	})

	t.Run("wrong http method", func(t *testing.T) {
		resp, _ := doRequest(t, server, http.MethodPost, quoteTarget)
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestPoolHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	server := NewServer(mockService, zap.NewNop(), testConfig())

	t.Run("success", func(t *testing.T) {
		snap := pool.Snapshot{
			QuoteAsset:     common.HexToAddress(poolParam),
			BaseReserve:    1_000_000,
			QuoteReserve:   1_000_000_000,
			ShareSupply:    31_622_776,
			FeeNumerator:   3,
			FeeDenominator: 1000,
			HasShares:      true,
		}
		mockService.EXPECT().
			Pool(gomock.Any(), common.HexToAddress(poolParam)).
			Return(snap, nil)

		resp, body := doRequest(t, server, http.MethodGet, "/pool?pool="+poolParam)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var got pool.Snapshot
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		require.Equal(t, snap, got)
	})

	t.Run("unknown pool", func(t *testing.T) {
		mockService.EXPECT().
			Pool(gomock.Any(), gomock.Any()).
			Return(pool.Snapshot{}, amm.ErrNotInitialized)

		resp, _ := doRequest(t, server, http.MethodGet, "/pool?pool="+poolParam)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing param", func(t *testing.T) {
		resp, _ := doRequest(t, server, http.MethodGet, "/pool")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("wrong http method", func(t *testing.T) {
		resp, _ := doRequest(t, server, http.MethodPost, "/pool?pool="+poolParam)
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestLogMiddleware(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	core, logs := observer.New(zap.InfoLevel)
	server := NewServer(mock.NewMockService(ctrl), zap.New(core), testConfig())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()

	handler := server.logMiddleware(server.mux)
	handler.ServeHTTP(w, req)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	require.Equal(t, "/ping", entries[0].ContextMap()["url"])
}

func TestServer_ListenAndServe(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := NewServer(mock.NewMockService(ctrl), zap.NewNop(), testConfig())

	const addr = "localhost:0"

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.ListenAndServe(addr)
	}()

	time.Sleep(100 * time.Millisecond)

	err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
	require.NoError(t, err)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}
