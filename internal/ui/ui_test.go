package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestBarPlain(t *testing.T) {
	theme := Theme{NoColor: true, NoEmoji: true}
	if got := theme.Bar(0.5, 10); got != "#####     " {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := theme.Bar(0.01, 10); !strings.HasPrefix(got, "#") {
		t.Fatalf("non-zero ratio should draw at least one cell: %q", got)
	}
	if got := theme.Bar(2, 4); got != "####" {
		t.Fatalf("ratio should clamp to 1: %q", got)
	}
}

func TestTagPlain(t *testing.T) {
	theme := Theme{NoColor: true}
	if got := theme.Tag("moved"); got != "[moved]" {
		t.Fatalf("got %q", got)
	}
}

func TestEmoji(t *testing.T) {
	if got := (Theme{}).Emoji("📦 "); got != "📦 " {
		t.Fatalf("got %q", got)
	}
	if got := (Theme{NoEmoji: true}).Emoji("📦 "); got != "" {
		t.Fatalf("emoji should be dropped, got %q", got)
	}
}

func TestThemeForBufferDisablesColor(t *testing.T) {
	if !ThemeFor(&bytes.Buffer{}, false, false).NoColor {
		t.Fatalf("non-terminal writers should not get color")
	}
}

func TestHumanBytes(t *testing.T) {
	if got := HumanBytes(0); got != "0 B" {
		t.Fatalf("got %q", got)
	}
	if got := HumanBytes(1536); got != "1.5 KiB" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"Category", "Files"}, [][]string{{"Imagenes", "2"}, {"Otros"}}, []ColumnAlignment{AlignLeft, AlignRight})
	for _, want := range []string{"Category", "Imagenes", "Otros", "2"} {
		if !strings.Contains(strings.ToLower(out), strings.ToLower(want)) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if RenderTable(nil, nil, nil) != "" {
		t.Fatalf("no headers should render nothing")
	}
}
