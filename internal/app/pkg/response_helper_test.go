package pkg

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	appError "github.com/stocklens/warehouse-core/internal/app/errors"
	"github.com/stocklens/warehouse-core/internal/app/models"
)

func TestErrorResponseCarriesCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", appError.NewNotFoundError("Audit not found"), 404, "NOT_FOUND"},
		{"empty scope", appError.NewEmptyScopeError("No products matched"), 422, "EMPTY_SCOPE"},
		{"conflict", appError.NewConflictError("Illegal transition"), 409, "CONFLICT"},
		{"plain error falls back", io.ErrUnexpectedEOF, 500, "STORAGE_FAILURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/fail", func(c *fiber.Ctx) error {
				return ErrorResponse(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			var payload models.WebResponse[any]
			if err := json.Unmarshal(body, &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if payload.Success {
				t.Fatal("error payload must not be marked success")
			}
			if payload.Code != tt.wantCode {
				t.Fatalf("expected code %s, got %q", tt.wantCode, payload.Code)
			}
		})
	}
}

func TestSuccessResponseOmitsCode(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return SuccessResponse(c, "warehouse-core")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var payload models.WebResponse[string]
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.Success || payload.Data != "warehouse-core" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Code != "" {
		t.Fatalf("success payload must carry no error code, got %q", payload.Code)
	}
}
