package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/archdiagram/pkg/diagram"
)

func sampleDiagram(t *testing.T) *diagram.Diagram {
	t.Helper()
	b := diagram.NewBuilder("Sample Stack", diagram.Options{
		GraphAttr: diagram.Attrs{"bgcolor": "white", "pad": "0.5"},
	})
	b.Node("user", "End\nUser", diagram.CategoryClient, "onprem.client.User")
	b.Cluster("app", "App Layer", func() {
		b.Node("fn", "Handler", diagram.CategoryCompute, "aws.compute.Lambda")
	})
	b.Node("db", `Orders "DB"`, diagram.CategoryDatabase, "aws.database.RDS")
	b.Connect("user", "fn")
	b.ConnectLabeled("fn", "db", "Write Orders")
	d, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return d
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleDiagram(t))

	for _, want := range []string{
		`digraph "Sample Stack" {`,
		`"user" [`,
		`"fn" [`,
		`"user" -> "fn";`,
		`"fn" -> "db" [xlabel="Write Orders"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\n%s", want, dot)
		}
	}
}

func TestToDOT_GraphAttributes(t *testing.T) {
	dot := ToDOT(sampleDiagram(t))
	graphLine := lineWithPrefix(dot, "  graph [")

	for _, want := range []string{
		`rankdir="LR"`,
		`label="Sample Stack"`,
		`bgcolor="white"`,
		`pad="0.5"`,
		`splines="ortho"`,
		`fontsize="15"`,
	} {
		if !strings.Contains(graphLine, want) {
			t.Errorf("graph attributes missing %s: %s", want, graphLine)
		}
	}
	if strings.Contains(graphLine, `pad="2.0"`) {
		t.Error("diagram override should replace default pad")
	}
}

func TestToDOT_Cluster(t *testing.T) {
	dot := ToDOT(sampleDiagram(t))

	start := strings.Index(dot, `subgraph "cluster_app" {`)
	if start < 0 {
		t.Fatalf("ToDOT() missing cluster subgraph:\n%s", dot)
	}
	block := dot[start:]
	block = block[:strings.Index(block, "  }\n")]
	if !strings.Contains(block, `label="App Layer"`) {
		t.Error("cluster missing label")
	}
	if !strings.Contains(block, `"fn" [`) {
		t.Error("cluster missing member node")
	}
	if strings.Contains(block, `"db" [`) {
		t.Error("top-level node rendered inside cluster")
	}
}

func TestToDOT_Escaping(t *testing.T) {
	dot := ToDOT(sampleDiagram(t))
	if !strings.Contains(dot, `label="End\nUser"`) {
		t.Error("newline in label should become \\n")
	}
	if !strings.Contains(dot, `label="Orders \"DB\""`) {
		t.Error("quotes in label should be escaped")
	}
}

func TestToDOT_CategoryStyles(t *testing.T) {
	dot := ToDOT(sampleDiagram(t))

	db := lineWithPrefix(dot, `  "db" [`)
	if !strings.Contains(db, `shape="cylinder"`) {
		t.Errorf("database node should be a cylinder: %s", db)
	}
	if !strings.Contains(db, `tooltip="aws.database.RDS"`) {
		t.Errorf("service should be the tooltip: %s", db)
	}
	fn := lineWithPrefix(dot, `    "fn" [`)
	if !strings.Contains(fn, `fillcolor="`+categoryStyles[diagram.CategoryCompute].fill+`"`) {
		t.Errorf("compute node fill missing: %s", fn)
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	first := ToDOT(sampleDiagram(t))
	for i := 0; i < 5; i++ {
		if got := ToDOT(sampleDiagram(t)); got != first {
			t.Fatal("ToDOT() output differs between calls")
		}
	}
}

func TestToDOT_DeclarationOrder(t *testing.T) {
	dot := ToDOT(sampleDiagram(t))
	user := strings.Index(dot, `"user" [`)
	cluster := strings.Index(dot, `subgraph "cluster_app"`)
	db := strings.Index(dot, `"db" [`)
	if !(user < cluster && cluster < db) {
		t.Errorf("expected user < cluster < db, got %d %d %d", user, cluster, db)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{"a\nb", `"a\nb"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFmtAttrsSorted(t *testing.T) {
	got := fmtAttrs(diagram.Attrs{"b": "2", "a": "1", "c": "3"})
	want := `a="1", b="2", c="3"`
	if got != want {
		t.Errorf("fmtAttrs() = %s, want %s", got, want)
	}
}

func lineWithPrefix(s, prefix string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	return ""
}
