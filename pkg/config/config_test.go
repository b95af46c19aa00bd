package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-chartload/pkg/config"
)

const sample = `
timeout: 10s
renderer: canvasjs
messages:
  failure: "No se pudo cargar."
theme:
  name: light
  variant: default
  tokens:
    chart-theme: light2
  css_vars:
    --chart-bg: "#fff"
  assets: /static/vendor/
charts:
  - name: savings
    title: Ahorros
    url: http://localhost:8080/secure/charts/savings
    params: pn=true&pr=true
    container: savingsChart
  - name: expenses
    url: http://localhost:8080/secure/charts/expenses
`

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Timeout != 10*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Timeout)
	}
	if cfg.Renderer != "canvasjs" {
		t.Fatalf("unexpected renderer %q", cfg.Renderer)
	}
	if cfg.Messages.Failure != "No se pudo cargar." {
		t.Fatalf("unexpected messages %+v", cfg.Messages)
	}

	want := []config.Chart{
		{Name: "savings", Title: "Ahorros", URL: "http://localhost:8080/secure/charts/savings", Params: "pn=true&pr=true", Container: "savingsChart"},
		{Name: "expenses", URL: "http://localhost:8080/secure/charts/expenses", Container: config.DefaultContainer},
	}
	if diff := cmp.Diff(want, cfg.Charts); diff != "" {
		t.Fatalf("charts mismatch (-want +got):\n%s", diff)
	}

	ch, ok := cfg.Chart("expenses")
	if !ok || ch.Container != config.DefaultContainer {
		t.Fatalf("lookup failed: %+v %v", ch, ok)
	}
	if _, ok := cfg.Chart("missing"); ok {
		t.Fatalf("unexpected chart")
	}
	if diff := cmp.Diff([]string{"expenses", "savings"}, cfg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestThemeConfig(t *testing.T) {
	cfg, err := config.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tc := cfg.ThemeConfig()
	if tc == nil {
		t.Fatalf("expected theme config")
	}
	if tc.Theme != "light" || tc.Variant != "default" || tc.Tokens["chart-theme"] != "light2" || tc.CSSVars["--chart-bg"] != "#fff" {
		t.Fatalf("unexpected theme config %+v", tc)
	}
	if got := tc.AssetURL("canvasjs.min.js"); got != "/static/vendor/canvasjs.min.js" {
		t.Fatalf("unexpected asset url %q", got)
	}

	empty, err := config.Parse([]byte("charts: []"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if empty.ThemeConfig() != nil {
		t.Fatalf("expected nil theme config")
	}
	if empty.Timeout != config.DefaultTimeout {
		t.Fatalf("expected default timeout, got %v", empty.Timeout)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"bad timeout":      "timeout: soon",
		"negative timeout": "timeout: -1s",
		"missing name":     "charts: [{url: http://x}]",
		"missing url":      "charts: [{name: a}]",
		"duplicate":        "charts: [{name: a, url: http://x}, {name: a, url: http://y}]",
		"not yaml":         "charts: [",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Parse([]byte(input)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParse_AcceptsJSON(t *testing.T) {
	cfg, err := config.Parse([]byte(`{"charts": [{"name": "lifia", "url": "http://x/lifia"}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.Charts) != 1 || cfg.Charts[0].Name != "lifia" {
		t.Fatalf("unexpected charts %+v", cfg.Charts)
	}
}

func TestLoad_FromDiskAndFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "charts.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fromDisk, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	fromFS, err := config.LoadFS(fstest.MapFS{"charts.yaml": {Data: []byte(sample)}}, "charts.yaml")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if diff := cmp.Diff(fromDisk.Charts, fromFS.Charts, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("charts mismatch (-want +got):\n%s", diff)
	}

	if _, err := config.Load(filepath.Join(dir, "missing.yaml")); err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected read error naming the file, got %v", err)
	}
}
