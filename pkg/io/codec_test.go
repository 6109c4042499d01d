package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/diagram/healthcare"
	apperrors "github.com/matzehuels/archdiagram/pkg/errors"
	"github.com/matzehuels/archdiagram/pkg/render"
)

func TestRoundTrip(t *testing.T) {
	want, err := healthcare.Architecture()
	if err != nil {
		t.Fatal(err)
	}

	for _, format := range []string{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(want, &buf, format); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			got, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if got.NodeCount() != want.NodeCount() || got.EdgeCount() != want.EdgeCount() {
				t.Errorf("counts = %d/%d, want %d/%d",
					got.NodeCount(), got.EdgeCount(), want.NodeCount(), want.EdgeCount())
			}
			if render.ToDOT(got) != render.ToDOT(want) {
				t.Error("DOT output changed after round trip")
			}
			if got.OutputPath() != want.OutputPath() {
				t.Errorf("OutputPath() = %q, want %q", got.OutputPath(), want.OutputPath())
			}
		})
	}
}

func TestReadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		code   apperrors.Code
	}{
		{
			name:   "unknown target",
			format: FormatJSON,
			input:  `{"title":"t","nodes":[{"id":"a","label":"A"}],"edges":[{"from":"a","to":"b"}]}`,
			code:   apperrors.ErrCodeInvalidDiagram,
		},
		{
			name:   "missing title",
			format: FormatJSON,
			input:  `{"nodes":[],"edges":[]}`,
			code:   apperrors.ErrCodeInvalidDiagram,
		},
		{
			name:   "unknown json field",
			format: FormatJSON,
			input:  `{"title":"t","nodes":[],"edges":[],"layout":"x"}`,
			code:   apperrors.ErrCodeInvalidInput,
		},
		{
			name:   "unknown yaml field",
			format: FormatYAML,
			input:  "title: t\nnodes: []\nedges: []\ncolour: red\n",
			code:   apperrors.ErrCodeInvalidInput,
		},
		{
			name:   "unknown toml key",
			format: FormatTOML,
			input:  "title = \"t\"\ncolour = \"red\"\n",
			code:   apperrors.ErrCodeInvalidInput,
		},
		{
			name:   "undeclared cluster",
			format: FormatYAML,
			input:  "title: t\nnodes:\n  - id: a\n    label: A\n    cluster: missing\nedges: []\n",
			code:   apperrors.ErrCodeInvalidDiagram,
		},
		{
			name:   "attribute name breaking out of the attr list",
			format: FormatYAML,
			input:  "title: t\ngraph_attr:\n  'bgcolor=\"red\"]; ghost [label=\"injected\"]; graph [x': \"1\"\nnodes:\n  - id: a\n    label: A\nedges: []\n",
			code:   apperrors.ErrCodeInvalidDiagram,
		},
		{
			name:   "bad direction",
			format: FormatTOML,
			input:  "title = \"t\"\ndirection = \"XY\"\n",
			code:   apperrors.ErrCodeInvalidDiagram,
		},
		{
			name:   "unsupported format",
			format: "xml",
			input:  "<diagram/>",
			code:   apperrors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperrors.Is(err, tt.code) {
				t.Errorf("code = %q, want %q (err: %v)", apperrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"arch.json", FormatJSON, false},
		{"arch.YAML", FormatYAML, false},
		{"dir/arch.yml", FormatYAML, false},
		{"arch.toml", FormatTOML, false},
		{"arch.png", "", true},
		{"arch", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestExportImport(t *testing.T) {
	b := diagram.NewBuilder("Orders", diagram.Options{Direction: diagram.TopToBottom})
	b.Cluster("svc", "Services", func() {
		b.Node("api", "API", diagram.CategoryNetwork, "aws.APIGateway")
		b.Node("fn", "Handler", diagram.CategoryCompute, "aws.Lambda")
	})
	b.Node("db", "Orders\nTable", diagram.CategoryDatabase, "aws.Dynamodb")
	b.Chain("api", "fn", "db")
	want, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	for _, name := range []string{"orders.json", "orders.yaml", "orders.toml"} {
		path := filepath.Join(dir, name)
		if err := Export(want, path, ""); err != nil {
			t.Fatalf("Export(%s) error = %v", name, err)
		}
		got, err := Import(path)
		if err != nil {
			t.Fatalf("Import(%s) error = %v", name, err)
		}
		if render.ToDOT(got) != render.ToDOT(want) {
			t.Errorf("%s: DOT output changed after round trip", name)
		}
		n, ok := got.Node("db")
		if !ok || n.Label != "Orders\nTable" {
			t.Errorf("%s: db label = %q", name, n.Label)
		}
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "absent.json"))
	if !apperrors.Is(err, apperrors.ErrCodeInvalidPath) {
		t.Errorf("Import() error = %v, want INVALID_PATH", err)
	}
}

func TestExportUnknownExtension(t *testing.T) {
	d := diagram.New("x", diagram.Options{})
	path := filepath.Join(t.TempDir(), "x.xml")
	if err := Export(d, path, ""); !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("Export() error = %v, want INVALID_FORMAT", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Export created a file for an unknown extension")
	}
}

func TestExportExplicitFormat(t *testing.T) {
	d := diagram.New("x", diagram.Options{})
	_ = d.AddNode(diagram.Node{ID: "a", Label: "A"})

	path := filepath.Join(t.TempDir(), "x.txt")
	if err := Export(d, path, FormatTOML); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := ReadTOML(f); err != nil {
		t.Errorf("exported file is not TOML: %v", err)
	}
}

func TestExportLeavesNothingOnFailure(t *testing.T) {
	d := diagram.New("x", diagram.Options{})
	dir := t.TempDir()
	path := filepath.Join(dir, "x.json")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Export(d, path, "xml"); !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Fatalf("Export() error = %v, want INVALID_FORMAT", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "previous" {
		t.Errorf("existing file changed to %q", data)
	}
	if err := Export(d, filepath.Join(dir, "missing", "x.json"), ""); !apperrors.Is(err, apperrors.ErrCodeOutputDir) {
		t.Errorf("Export() into missing dir error = %v, want OUTPUT_DIR_MISSING", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir entries = %v, want only x.json", entries)
	}
}
