package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	zoneSchema  = "../../pkg/testsupport/fixtures/zone.schema.json"
	openAPISpec = "../../pkg/testsupport/fixtures/controller.openapi.yaml"
)

// runCommand executes the root command with args and returns stdout,
// stderr and the command error. Flag variables are reset first since cobra
// keeps them between executions.
func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	configPath, logLevel, uiSchema, formID, format = "", "", "", "", ""
	renderValues, renderOutput, renderRenderer, renderEndpoint = "", "", "", ""
	decodeData = ""
	promptValues, promptOutput, promptFormat = "", "", "json"
	lintJSON = false
	serveListen = ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	values := filepath.Join(dir, "values.json")
	if err := os.WriteFile(values, []byte(`{"heatDelay": 125, "setPoint": -32768}`), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCommand(t, "", "render", zoneSchema, "--values", values, "--endpoint", "/zones/1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, stdout, []string{
		`action="/zones/1"`,
		`name="root.heatDelay.hours" value="2"`,
		`name="root.heatDelay.minutes" value="5"`,
		`name="root.setPoint.disabled"`,
	})

	output := filepath.Join(dir, "zone.html")
	if _, _, err := runCommand(t, "", "render", openAPISpec, "--form", "updateZone", "-o", output); err != nil {
		t.Fatalf("render openapi: %v", err)
	}
	html, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, string(html), []string{`action="/controllers/zone"`})
}

func TestRenderCommandWithOverlay(t *testing.T) {
	dir := t.TempDir()
	overlay := "forms:\n  zone-controller:\n    fields:\n      setPoint:\n        label: Target temperature\n        unit: \"°C\"\n"
	if err := os.WriteFile(filepath.Join(dir, "zone.yaml"), []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCommand(t, "", "render", zoneSchema, "--ui-schema", dir)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, stdout, []string{"Target temperature"})
}

func TestDecodeCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "", "decode", zoneSchema,
		"-d", "root.heatDelay.hours=1&root.heatDelay.minutes=30&root.alarmMask=low&root.alarmMask=sensor")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertContains(t, stdout, []string{`"heatDelay": 90`, `"alarmMask": 5`})

	stdout, _, err = runCommand(t, "root.heatDelay.hours=1&root.setPoint=200", "decode", zoneSchema)
	if err == nil {
		t.Fatalf("expected invalid submission error")
	}
	assertContains(t, stdout, []string{`"root.setPoint": [`, "must be at most 12000"})
}

func TestLintCommand(t *testing.T) {
	if _, stderr, err := runCommand(t, "", "lint", zoneSchema, openAPISpec); err != nil {
		t.Fatalf("lint: %v\n%s", err, stderr)
	}

	broken := filepath.Join(t.TempDir(), "broken.schema.json")
	doc := `{"type":"object","properties":{"mask":{"type":"integer","format":"ssiSelectBit"},"sp":{"type":"integer","format":"ssiSetPoint","impliedDecimalPoints":-1}}}`
	if err := os.WriteFile(broken, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	_, stderr, err := runCommand(t, "", "lint", broken)
	if err == nil {
		t.Fatalf("expected lint failure")
	}
	assertContains(t, stderr, []string{broken + ": ", "root.mask", "root.sp"})

	stdout, _, err := runCommand(t, "", "lint", "--json", broken)
	if err == nil {
		t.Fatalf("expected lint failure")
	}
	assertContains(t, stdout, []string{`"valid": false`, `"issues": [`})
}

func TestServeRequiresForms(t *testing.T) {
	if _, _, err := runCommand(t, "", "serve"); err == nil || !strings.Contains(err.Error(), "no forms configured") {
		t.Fatalf("expected missing forms error, got %v", err)
	}
}

func TestConfigErrors(t *testing.T) {
	if _, _, err := runCommand(t, "", "render", zoneSchema, "--log-level", "loud"); err == nil {
		t.Fatalf("expected log level error")
	}

	path := filepath.Join(t.TempDir(), "ssiform.yaml")
	if err := os.WriteFile(path, []byte("forms: [{id: a}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCommand(t, "", "render", zoneSchema, "--config", path); err == nil {
		t.Fatalf("expected config validation error")
	}
}
