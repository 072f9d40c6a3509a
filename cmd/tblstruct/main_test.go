package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
)

var fixture = filepath.Join("..", "..", "pkg", "tblstruct", "testdata", "invoice.json")

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunJSONToStdout(t *testing.T) {
	stdout, stderr, err := execute(t, fixture)
	if err != nil {
		t.Fatalf("Execute failed: %v\n%s", err, stderr)
	}

	var set models.TableSet
	if err := json.Unmarshal([]byte(stdout), &set); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if set.Source != "invoice.json" || len(set.TableIDs) != 1 {
		t.Errorf("Unexpected table set %+v", set)
	}
	if !strings.Contains(stderr, "Reconstructed 1 tables") {
		t.Errorf("Expected progress log, got:\n%s", stderr)
	}
}

func TestRunOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tables.xlsx")
	if _, stderr, err := execute(t, fixture, "--format", "xlsx", "-o", out); err != nil {
		t.Fatalf("Execute failed: %v\n%s", err, stderr)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Table 1")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 || rows[2][1] != "Total" {
		t.Errorf("Unexpected rows %q", rows)
	}
}

func TestRunTablesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tables")
	stdout, stderr, err := execute(t, fixture, "--format", "csv", "--tables-dir", dir, "--no-headers")
	if err != nil {
		t.Fatalf("Execute failed: %v\n%s", err, stderr)
	}
	if stdout != "" {
		t.Errorf("Expected no stdout output with --tables-dir, got %q", stdout)
	}

	data, err := os.ReadFile(filepath.Join(dir, "table_01_table-1.csv"))
	if err != nil {
		t.Fatalf("Expected per-table file: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Invalid CSV: %v", err)
	}
	if len(records) != 3 || records[0][0] != "Item" {
		t.Errorf("Expected header row kept in body, got %q", records)
	}
}

func TestRunConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "tblstruct.toml")
	content := "[output]\nformat = \"text\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	stdout, stderr, err := execute(t, fixture, "--config", cfgPath)
	if err != nil {
		t.Fatalf("Execute failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "table-1 (2x3)") || !strings.Contains(stdout, "Widget") {
		t.Errorf("Expected text preview, got:\n%s", stdout)
	}

	// Flags win over the configuration file.
	stdout, _, err = execute(t, fixture, "--config", cfgPath, "--format", "csv")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "Column #0: Item,") {
		t.Errorf("Expected CSV output, got:\n%s", stdout)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"missing.json"}, "file not found"},
		{"invalid format", []string{fixture, "--format", "pdf"}, "invalid format"},
		{"no args", nil, "requires at least 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestTableFileName(t *testing.T) {
	tests := []struct {
		i        int
		id       string
		expected string
	}{
		{0, "4f2a", "table_01_4f2a"},
		{11, "a/b:c", "table_12_a_b_c"},
	}
	for _, tt := range tests {
		if got := tableFileName(tt.i, tt.id); got != tt.expected {
			t.Errorf("tableFileName(%d, %q) = %q, expected %q", tt.i, tt.id, got, tt.expected)
		}
	}
}
