package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hammad983ae/sustaino-sub002/internal/assessment"
	"github.com/hammad983ae/sustaino-sub002/internal/config"
	"github.com/hammad983ae/sustaino-sub002/internal/server"
	"github.com/hammad983ae/sustaino-sub002/pkg/mathutil"
	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
	"gopkg.in/yaml.v3"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    config.LoggingConfig
		override  string
		wantError bool
	}{
		{"Defaults", config.LoggingConfig{}, "", false},
		{"Console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"Override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"Invalid level", config.LoggingConfig{Level: "verbose"}, "", true},
		{"Invalid format", config.LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantError {
				if err == nil {
					t.Error("initializeLogger() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() error = %v", err)
			}
			if logger == nil {
				t.Fatal("initializeLogger() returned nil logger")
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sustaino.log")
	logger, err := initializeLogger(config.LoggingConfig{Level: "info", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("initializeLogger() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("expected log entry in file, got %q", data)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReconcileCommand(t *testing.T) {
	out, err := execute(t, "reconcile",
		"--primary-method", "income",
		"--property-type", "commercial",
		"--land-value", "2000000",
		"--building-value", "1500000",
		"--depreciation", "200000",
		"--adjustments", "50000",
		"--net-income", "500000",
		"--cap-rate", "8",
		"--market-evidence", "3000000",
		"--output-format", "json",
		"--log-level", "error",
	)
	if err != nil {
		t.Fatalf("reconcile error = %v", err)
	}

	var report assessment.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("failed to decode output %q: %v", out, err)
	}
	if len(report.Valuations) != 1 {
		t.Fatalf("expected 1 valuation, got %d", len(report.Valuations))
	}
	if got := report.Valuations[0].Result.WeightedValue; !mathutil.WithinTolerance(got, 5625000, 0.01) {
		t.Errorf("weightedValue = %v, expected 5625000", got)
	}
}

func TestReconcileCommandRejectsBadInput(t *testing.T) {
	if _, err := execute(t, "reconcile", "--primary-method", "guess", "--log-level", "error"); err == nil {
		t.Error("expected error for unknown method")
	}
	if _, err := execute(t, "reconcile", "--output-format", "xml", "--log-level", "error"); err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestProposeCommand(t *testing.T) {
	out, err := execute(t, "propose",
		"--land-area", "20000",
		"--zoning", "R4",
		"--state", "NSW",
		"--log-level", "error",
	)
	if err != nil {
		t.Fatalf("propose error = %v", err)
	}
	for _, want := range []string{"Units: 210", "HDA support: yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = execute(t, "propose",
		"--land-area", "20000",
		"--zoning", "R4",
		"--state", "NSW",
		"--type", "commercial",
		"--output-format", "json",
		"--log-level", "error",
	)
	if err != nil {
		t.Fatalf("propose error = %v", err)
	}
	var report assessment.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if p := report.Sites[0].Proposal; p == nil || p.DevelopmentType != zoning.Commercial || p.ProposedGFA != 79000 {
		t.Errorf("unexpected proposal: %+v", p)
	}

	if _, err := execute(t, "propose", "--land-area", "100", "--type", "industrial", "--log-level", "error"); err == nil {
		t.Error("expected error for unknown development type")
	}
}

func TestTablesCommand(t *testing.T) {
	out, err := execute(t, "tables")
	if err != nil {
		t.Fatalf("tables error = %v", err)
	}

	docs := strings.SplitN(out, "\n---\n", 2)
	if len(docs) != 2 {
		t.Fatalf("expected zoning and weights documents, got:\n%s", out)
	}

	// The zoning document must be loadable as a tables file.
	tables, err := zoning.ParseTables(strings.NewReader(docs[0]))
	if err != nil {
		t.Fatalf("zoning document is not a valid tables file: %v", err)
	}
	if tables.Classify("NSW", "R4") != zoning.ResidentialHigh {
		t.Error("expected built-in NSW classification in output")
	}

	var weights struct {
		Weights map[string]struct {
			Income float64 `yaml:"income"`
		} `yaml:"weights"`
	}
	if err := yaml.Unmarshal([]byte(docs[1]), &weights); err != nil {
		t.Fatalf("failed to parse weights document: %v", err)
	}
	if weights.Weights["commercial"].Income != 0.6 || weights.Weights["default"].Income != 0.5 {
		t.Errorf("unexpected weights: %+v", weights.Weights)
	}

	if _, err := execute(t, "tables", "--tables", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing tables file")
	}
}

func TestApplyUploadSize(t *testing.T) {
	cfg, err := server.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	defaultSize := cfg.UploadSizeBytes()

	if err := applyUploadSize(cfg, ""); err != nil {
		t.Fatalf("applyUploadSize() error = %v", err)
	}
	if cfg.UploadSizeBytes() != defaultSize {
		t.Errorf("empty flag changed upload size to %d", cfg.UploadSizeBytes())
	}

	if err := applyUploadSize(cfg, "512KB"); err != nil {
		t.Fatalf("applyUploadSize() error = %v", err)
	}
	if cfg.UploadSizeBytes() != 512*1024 {
		t.Errorf("UploadSizeBytes() = %d, expected %d", cfg.UploadSizeBytes(), 512*1024)
	}

	if err := applyUploadSize(cfg, "lots"); err == nil {
		t.Error("expected error for invalid size")
	}
	if cfg.UploadSizeBytes() != 512*1024 {
		t.Errorf("invalid flag changed upload size to %d", cfg.UploadSizeBytes())
	}
}

func TestAssessCommand(t *testing.T) {
	dir := t.TempDir()
	job := `
logging:
  level: error
  format: console
output:
  format: csv
valuations:
  - name: Office
    primaryMethod: income
    propertyType: commercial
    netIncome: 500000
    capitalisationRate: 8
sites:
  - name: Church Street
    landArea: 20000
    currentZoning: R4
    state: NSW
`
	path := filepath.Join(dir, "job.yaml")
	if err := os.WriteFile(path, []byte(job), 0o600); err != nil {
		t.Fatalf("failed to write job: %v", err)
	}

	out, err := execute(t, "assess", "--config", path)
	if err != nil {
		t.Fatalf("assess error = %v", err)
	}
	if !strings.Contains(out, "Office") || !strings.Contains(out, "Church Street") {
		t.Errorf("expected CSV rows for both items, got:\n%s", out)
	}

	if _, err := execute(t, "assess", "--config", filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing job file")
	}
}
