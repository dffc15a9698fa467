package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestDispatcher() *Dispatcher {
	d := NewDispatcher(zap.NewNop())
	d.register("echoTenant", []argSpec{
		{name: "tenantId", kind: argID},
		{name: "note", kind: argString, optional: true},
	}, func(c *gin.Context, in args) (any, error) {
		out := map[string]any{"tenant_id": in.ID(0).String()}
		if in.Has(1) {
			out["note"] = in.Str(1)
		}
		return out, nil
	})
	return d
}

func callDispatch(t *testing.T, d *Dispatcher, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/call", d.Handle)

	req := httptest.NewRequest(http.MethodPost, "/call", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestDispatchUnknownOperation(t *testing.T) {
	d := newTestDispatcher()
	rec := callDispatch(t, d, `{"funcName": "noSuchThing", "params": []}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown_operation") {
		t.Fatalf("expected unknown_operation code, got %s", rec.Body.String())
	}
}

func TestDispatchArityTooFew(t *testing.T) {
	d := newTestDispatcher()
	rec := callDispatch(t, d, `{"funcName": "echoTenant", "params": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_params") {
		t.Fatalf("expected invalid_params code, got %s", rec.Body.String())
	}
}

func TestDispatchArityTooMany(t *testing.T) {
	d := newTestDispatcher()
	rec := callDispatch(t, d, `{"funcName": "echoTenant", "params": ["1", "a", "b"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDispatchWrongParamType(t *testing.T) {
	d := newTestDispatcher()
	rec := callDispatch(t, d, `{"funcName": "echoTenant", "params": [{"nested": true}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tenantId") {
		t.Fatalf("expected the offending param to be named, got %s", rec.Body.String())
	}
}

func TestDispatchAcceptsNumericAndStringIDs(t *testing.T) {
	d := newTestDispatcher()
	for _, body := range []string{
		`{"funcName": "echoTenant", "params": [42]}`,
		`{"funcName": "echoTenant", "params": ["42"]}`,
	} {
		rec := callDispatch(t, d, body)
		if rec.Code != http.StatusOK {
			t.Fatalf("body %s: expected 200, got %d: %s", body, rec.Code, rec.Body.String())
		}
		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				TenantID string `json:"tenant_id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !resp.Success || resp.Data.TenantID != "42" {
			t.Fatalf("unexpected response %s", rec.Body.String())
		}
	}
}

func TestDispatchOptionalTrailingParam(t *testing.T) {
	d := newTestDispatcher()
	rec := callDispatch(t, d, `{"funcName": "echoTenant", "params": ["7", "hello"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "hello") {
		t.Fatalf("expected the optional note echoed back, got %s", rec.Body.String())
	}
}

func TestDispatchMalformedBody(t *testing.T) {
	d := newTestDispatcher()
	rec := callDispatch(t, d, `{"funcName": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCoerceDateParam(t *testing.T) {
	spec := argSpec{name: "startDate", kind: argDate}
	value, err := coerceValue(spec, "2024-08-03")
	if err != nil {
		t.Fatalf("coerce date: %v", err)
	}
	date, ok := value.(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", value)
	}
	if got := date.Format("2006-01-02"); got != "2024-08-03" {
		t.Fatalf("expected 2024-08-03, got %s", got)
	}

	if _, err := coerceValue(spec, "03/08/2024"); err == nil {
		t.Fatalf("expected rejection of non ISO date")
	}
}

func TestCoerceMoneyRejectsFractions(t *testing.T) {
	spec := argSpec{name: "amount", kind: argMoney}
	if _, err := coerceValue(spec, 10.5); err == nil {
		t.Fatalf("expected rejection of fractional amount")
	}
	value, err := coerceValue(spec, float64(400))
	if err != nil {
		t.Fatalf("coerce amount: %v", err)
	}
	if value.(int64) != 400 {
		t.Fatalf("expected 400, got %v", value)
	}
}
