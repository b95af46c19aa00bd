package canvasjs_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-chartload/pkg/chart"
	"github.com/goliatone/go-chartload/pkg/render"
	"github.com/goliatone/go-chartload/pkg/renderers/canvasjs"
	"github.com/goliatone/go-chartload/pkg/testsupport"
)

func savingsPayload() chart.Payload {
	return chart.Payload{
		"successful": true,
		"title":      map[string]any{"text": "Savings"},
		"data": []any{
			map[string]any{
				"type": "line",
				"dataPoints": []any{
					map[string]any{"x": chart.Date{Year: 2020, Month: 5, Day: 28}, "y": 1200.5},
				},
			},
		},
	}
}

func TestRenderer_FragmentOutput(t *testing.T) {
	renderer, err := canvasjs.New(canvasjs.WithFragment())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	var buf bytes.Buffer
	err = renderer.Render(context.Background(), render.Container{ID: "chartContainer", Writer: &buf}, savingsPayload())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `<div id="chartContainer" class="chartload-chart" style="height: 370px; width: 100%;"></div>
<script>
new CanvasJS.Chart("chartContainer", {"data":[{"dataPoints":[{"x":new Date(2020, 5, 28),"y":1200.5}],"type":"line"}],"successful":true,"title":{"text":"Savings"}}).render();
</script>
`
	if diff := testsupport.CompareGolden(want, buf.String()); diff != "" {
		t.Fatalf("fragment mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_PageAppliesTheme(t *testing.T) {
	renderer, err := canvasjs.New(canvasjs.WithTheme(&theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		Tokens:  map[string]string{canvasjs.ThemeToken: "dark2"},
		CSSVars: map[string]string{"--chart-bg": "#101010"},
		AssetURL: func(key string) string {
			return "/themes/acme/" + key
		},
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	payload := savingsPayload()
	var buf bytes.Buffer
	if err := renderer.Render(context.Background(), render.Container{ID: "c1", Writer: &buf}, payload); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, fragment := range []string{
		"<!DOCTYPE html>",
		"<title>Savings</title>",
		`<script src="/themes/acme/canvasjs.min.js"></script>`,
		`data-theme="acme"`,
		`data-theme-variant="dark"`,
		`style="height: 370px; width: 100%; --chart-bg: #101010;"`,
		`"theme":"dark2"`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, out)
		}
	}
	if _, ok := payload["theme"]; ok {
		t.Fatalf("renderer must not mutate the payload")
	}
}

func TestRenderer_PayloadThemeWins(t *testing.T) {
	renderer, err := canvasjs.New(
		canvasjs.WithFragment(),
		canvasjs.WithTheme(&theme.RendererConfig{Tokens: map[string]string{canvasjs.ThemeToken: "dark2"}}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	payload := savingsPayload()
	payload["theme"] = "light1"
	var buf bytes.Buffer
	if err := renderer.Render(context.Background(), render.Container{ID: "c1", Writer: &buf}, payload); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), `"theme":"light1"`) || strings.Contains(buf.String(), "dark2") {
		t.Fatalf("expected payload theme to be kept:\n%s", buf.String())
	}
}

func TestRenderer_SanitizesTitleAndScriptBreakout(t *testing.T) {
	renderer, err := canvasjs.New(canvasjs.WithScriptURL("/static/canvasjs.js"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	payload := chart.Payload{
		"successful": true,
		"title":      map[string]any{"text": "<b>Gastos</b></script>"},
	}
	var buf bytes.Buffer
	if err := renderer.Render(context.Background(), render.Container{ID: "c1", Writer: &buf}, payload); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<title>Gastos</title>") {
		t.Fatalf("expected sanitized title:\n%s", out)
	}
	if strings.Count(out, "</script>") != 2 {
		t.Fatalf("payload strings must not close the script element:\n%s", out)
	}
	if !strings.Contains(out, `<script src="/static/canvasjs.js"></script>`) {
		t.Fatalf("expected explicit script url:\n%s", out)
	}
}

func TestRenderer_InvalidContainer(t *testing.T) {
	renderer, err := canvasjs.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	err = renderer.Render(context.Background(), render.Container{ID: "c1"}, savingsPayload())
	if !errors.Is(err, chart.ErrInvalidContainer) {
		t.Fatalf("expected ErrInvalidContainer, got %v", err)
	}
	err = renderer.Render(context.Background(), render.Container{Writer: &bytes.Buffer{}}, savingsPayload())
	if !errors.Is(err, chart.ErrInvalidContainer) {
		t.Fatalf("expected ErrInvalidContainer, got %v", err)
	}
}

func TestLiteral_EncodesNestedDatesAndNumbers(t *testing.T) {
	got, err := canvasjs.Literal(chart.Payload{
		"a": []any{chart.Date{Year: 1999, Month: 0, Day: 1}, nil, "x"},
		"b": map[string]any{"n": 3.0},
	})
	if err != nil {
		t.Fatalf("literal: %v", err)
	}
	want := `{"a":[new Date(1999, 0, 1),null,"x"],"b":{"n":3}}`
	if got != want {
		t.Fatalf("literal mismatch\nwant: %s\n got: %s", want, got)
	}
}
