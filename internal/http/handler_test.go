package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/shopfloor/shopfloor/internal/config"
	"github.com/shopfloor/shopfloor/internal/usecase/mocks"
)

var anyCtx = mock.Anything

// testRouter is a fully wired router backed by use case mocks.
type testRouter struct {
	handler       http.Handler
	sites         *mocks.MockSiteUseCase
	machines      *mocks.MockMachineUseCase
	maintenances  *mocks.MockMaintenanceUseCase
	notifications *mocks.MockNotificationUseCase
	kpis          *mocks.MockKPIUseCase
}

func newTestRouter(t *testing.T, cfg *config.Config) *testRouter {
	t.Helper()

	r := &testRouter{
		sites:         mocks.NewMockSiteUseCase(),
		machines:      mocks.NewMockMachineUseCase(),
		maintenances:  mocks.NewMockMaintenanceUseCase(),
		notifications: &mocks.MockNotificationUseCase{},
		kpis:          &mocks.MockKPIUseCase{},
	}

	logger := discardLogger()
	server := createTestServer()
	server.SetupRouter(cfg, Handlers{
		Sites:         NewSiteHandler(r.sites, logger),
		Machines:      NewMachineHandler(r.machines, logger),
		Maintenances:  NewMaintenanceHandler(r.maintenances, logger),
		Notifications: NewNotificationHandler(r.notifications, logger),
		KPIs:          NewKPIHandler(r.kpis, logger),
	}, nil)
	r.handler = server.GetHandler()

	t.Cleanup(func() {
		_ = server.Shutdown(context.Background())
		r.sites.AssertExpectations(t)
		r.machines.AssertExpectations(t)
		r.maintenances.AssertExpectations(t)
		r.notifications.AssertExpectations(t)
		r.kpis.AssertExpectations(t)
	})

	return r
}

// do serves one request. A []byte body is sent as is; any other non-nil body is
// encoded as JSON.
func (r *testRouter) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		encoded, _ := json.Marshal(b)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.handler.ServeHTTP(w, req)
	return w
}
