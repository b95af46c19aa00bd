package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chartload/pkg/chart"
	"github.com/goliatone/go-chartload/pkg/testsupport"
)

func TestFetch_SendsHeaders(t *testing.T) {
	srv := testsupport.NewChartServer(t, http.StatusOK, `{"successful": true}`)
	f := New(chart.NewFetcherOptions(
		chart.WithHeader("Authorization", "Bearer token"),
		chart.WithHeader("Content-Type", "text/plain"),
	))

	ctx := chart.WithRequestID(context.Background(), "req-1")
	if _, err := f.Fetch(ctx, chart.Request{URL: srv.URL + "/savings", Params: "pn=true"}); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected one request, got %d", len(reqs))
	}
	got := map[string]string{
		"Content-Type":     reqs[0].Header.Get("Content-Type"),
		"Accept":           reqs[0].Header.Get("Accept"),
		"X-Requested-With": reqs[0].Header.Get("X-Requested-With"),
		"X-Request-ID":     reqs[0].Header.Get(HeaderRequestID),
		"Authorization":    reqs[0].Header.Get("Authorization"),
	}
	want := map[string]string{
		"Content-Type":     "application/json;charset=UTF-8",
		"Accept":           "application/json",
		"X-Requested-With": "XMLHttpRequest",
		"X-Request-ID":     "req-1",
		"Authorization":    "Bearer token",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("headers mismatch (-want +got):\n%s", diff)
	}
	if reqs[0].URL.RequestURI() != "/savings?pn=true" {
		t.Fatalf("unexpected uri %q", reqs[0].URL.RequestURI())
	}
}

func TestFetch_GeneratesRequestID(t *testing.T) {
	srv := testsupport.NewChartServer(t, http.StatusOK, `{}`)
	f := New(chart.NewFetcherOptions())

	if _, err := f.Fetch(context.Background(), chart.Request{URL: srv.URL}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if id := srv.Requests()[0].Header.Get(HeaderRequestID); len(id) != 36 {
		t.Fatalf("expected uuid request id, got %q", id)
	}
}

func TestFetch_CustomReviverAndNumbers(t *testing.T) {
	srv := testsupport.NewChartServer(t, http.StatusOK, `{"successful": true, "when": "date-2020-5-10", "y": 7}`)
	f := New(chart.NewFetcherOptions(
		chart.WithReviver(func(_ string, value any) any { return value }),
		chart.WithNumbers(),
	))

	payload, err := f.Fetch(context.Background(), chart.Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := chart.Payload{"successful": true, "when": "date-2020-5-10", "y": json.Number("7")}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestFetch_ErrorKinds(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "status", status: http.StatusForbidden, body: `{"successful": true}`, want: chart.ErrStatus},
		{name: "empty", status: http.StatusOK, body: "", want: chart.ErrEmptyBody},
		{name: "decode", status: http.StatusOK, body: `<html>`, want: chart.ErrDecode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := testsupport.NewChartServer(t, tc.status, tc.body)
			_, err := New(chart.NewFetcherOptions()).Fetch(context.Background(), chart.Request{URL: srv.URL})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := New(chart.NewFetcherOptions()).Fetch(context.Background(), chart.Request{URL: "://bad"})
	if !errors.Is(err, chart.ErrRequest) {
		t.Fatalf("expected request error, got %v", err)
	}
}

func TestNew_ClonesClientWithTimeout(t *testing.T) {
	client := &http.Client{}
	f := New(chart.FetcherOptions{HTTPClient: client, RequestTimeout: 5})
	if f.http == client {
		t.Fatalf("expected client to be cloned")
	}
	if f.http.Timeout != 5 {
		t.Fatalf("expected timeout to be applied to clone, got %v", f.http.Timeout)
	}
	if client.Timeout != 0 {
		t.Fatalf("caller client must not be mutated")
	}
}
