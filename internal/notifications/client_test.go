package notifications

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifyImportSummary(t *testing.T) {
	var gotPath, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "imports", true)
	client.NotifyImportSummary(context.Background(), "Leads", 2, 1, 3)

	assert.Equal(t, "/imports", gotPath)
	assert.Contains(t, gotBody, `"Leads"`)
	assert.Contains(t, gotBody, "2 imported")
	assert.Contains(t, gotBody, "1 failed")
	assert.Contains(t, gotBody, "3 skipped")
}

func TestNotifyImportSummaryDisabled(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "imports", false)
	client.NotifyImportSummary(context.Background(), "Leads", 1, 0, 0)

	assert.False(t, called)
}

func TestNotifyImportSummarySwallowsServerErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "imports", true)
	// must not panic or propagate
	client.NotifyImportSummary(context.Background(), "Leads", 1, 0, 0)
}
