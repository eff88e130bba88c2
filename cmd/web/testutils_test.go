package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Segren/registration/internal/jsonlog"
	"github.com/Segren/registration/internal/metrics"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	templateCache, err := newTemplateCache()
	require.NoError(t, err)

	var cfg config
	cfg.env = "testing"
	cfg.csrf.authKey = bytes.Repeat([]byte("k"), 32)

	return &application{
		config:        cfg,
		logger:        jsonlog.New(io.Discard, jsonlog.LevelInfo),
		templateCache: templateCache,
		metrics:       metrics.New(),
		clock:         func() time.Time { return testNow },
	}
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func invalidValues() url.Values {
	return url.Values{
		"idNumber":    {"12345"},
		"firstName":   {"Al"},
		"lastName":    {"Doe"},
		"dateOfBirth": {"2099-01-01"},
		"email":       {"abc"},
	}
}

func validValues() url.Values {
	return url.Values{
		"idNumber":    {"123456789"},
		"firstName":   {"Al"},
		"lastName":    {"Doe"},
		"dateOfBirth": {"1990-01-01"},
		"email":       {"a@b.com"},
	}
}
