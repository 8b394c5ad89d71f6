package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunCommand_OutWritesVersionRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	in := strings.NewReader(`{"source":{"uri":"` + srv.URL + `"},"version":{}}`)
	var out bytes.Buffer
	if err := runCommand(context.Background(), "out", t.TempDir(), in, &out); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.String() != "{\"version\":{}}\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunCommand_OutFailsOnRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(404)
	}))
	defer srv.Close()

	in := strings.NewReader(`{"source":{"uri":"` + srv.URL + `"}}`)
	var out bytes.Buffer
	if err := runCommand(context.Background(), "out", t.TempDir(), in, &out); err == nil {
		t.Fatalf("expected error for rejected status")
	}
	if out.Len() != 0 {
		t.Fatalf("no partial output may be emitted on failure, got %q", out.String())
	}
}

func TestRunCommand_CheckEmitsEmptyList(t *testing.T) {
	in := strings.NewReader(`{"source":{"uri":"http://example.com"}}`)
	var out bytes.Buffer
	if err := runCommand(context.Background(), "check", t.TempDir(), in, &out); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.String() != "[]\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
