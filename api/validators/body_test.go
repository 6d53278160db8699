package validators

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	pkgerrors "github.com/sanda94/super-admin-backend/pkg/errors"
)

type demoBody struct {
	Command  string `json:"command" validate:"required,oneof=approve reject"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"command":"approve","quantity":3}`))

	var body demoBody
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Command != "approve" || body.Quantity != 3 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"command":"approve","quantity":1,"extra":true}`))

	var body demoBody
	err := DecodeJSONBody(req, &body)
	if err == nil {
		t.Fatal("expected unknown field error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldMessages(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"command":"undo","quantity":0}`))

	var body demoBody
	err := DecodeJSONBody(req, &body)
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["command"] != "must be one of approve reject" {
		t.Fatalf("unexpected command message %q", details["command"])
	}
	if _, found := details["quantity"]; !found {
		t.Fatal("expected quantity message")
	}
}

func TestParseQueryInt(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{name: "default", query: "", want: 20},
		{name: "explicit", query: "limit=5", want: 5},
		{name: "clamped low", query: "limit=0", wantErr: true},
		{name: "clamped high", query: "limit=500", wantErr: true},
		{name: "garbage", query: "limit=abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			req.URL.RawQuery = url.Values{}.Encode()
			if tt.query != "" {
				req.URL.RawQuery = tt.query
			}

			got, err := ParseQueryInt(req, "limit", 20, 1, 100)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d got %d", tt.want, got)
			}
		})
	}
}
