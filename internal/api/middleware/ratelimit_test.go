package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestLoginRateLimit_NilCounterFailsOpen(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"phone":"0555123456","password":"secret1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := LoginRateLimit(nil, 5, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Fatal("expected request to proceed without a counter")
	}
}

func TestPeekPhone_RestoresBody(t *testing.T) {
	e := echo.New()
	payload := `{"phone":"0555123456","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if phone := peekPhone(c); phone != "0555123456" {
		t.Fatalf("expected phone 0555123456, got %q", phone)
	}

	// The handler's bind must still see the full body.
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != payload {
		t.Fatalf("body not restored: %q", string(body))
	}
}

func TestPeekPhone_NonJSONBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if phone := peekPhone(c); phone != "" {
		t.Fatalf("expected empty phone for non-JSON body, got %q", phone)
	}
}
