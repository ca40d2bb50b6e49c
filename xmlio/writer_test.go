package xmlio

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestWriter_Basic(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	w.StartElement("height")
	w.StartElement("value")
	w.WriteDouble("m", 1.8)
	w.EndElement()
	w.EndElement()

	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	want := "<height><value><m>1.8</m></value></height>"
	if string(out) != want {
		t.Errorf("output = %s; want %s", out, want)
	}
}

func TestWriter_Attrs(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	w.StartElement("value")
	w.WriteStringAttrs("display", "75", Attr{"units", "kg"}, Attr{"text", `a "quote"`})
	w.EndElement()

	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	want := `<value><display units="kg" text="a &#34;quote&#34;">75</display></value>`
	if string(out) != want {
		t.Errorf("output = %s; want %s", out, want)
	}
}

func TestWriter_Escaping(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	w.WriteString("note", "a < b & c")
	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if string(out) != "<note>a &lt; b &amp; c</note>" {
		t.Errorf("output = %s", out)
	}
}

func TestWriter_OptionalOmission(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	s := "present"
	w.StartElement("x")
	w.WriteOptString("a", &s)
	w.WriteOptString("b", nil)
	w.WriteOptDouble("c", nil)
	w.WriteOptInt("d", nil)
	w.WriteOptBool("e", nil)
	w.WriteOptDecimal("f", nil)
	w.EndElement()

	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if string(out) != "<x><a>present</a></x>" {
		t.Errorf("nil optionals leaked into output: %s", out)
	}
}

func TestWriter_Scalars(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	w.StartElement("x")
	w.WriteInt("i", -3)
	w.WriteBool("b", true)
	w.WriteDecimal("d", decimal.RequireFromString("0.10"))
	w.EndElement()

	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	want := "<x><i>-3</i><b>true</b><d>0.1</d></x>"
	if string(out) != want {
		t.Errorf("output = %s; want %s", out, want)
	}
}

func TestWriter_Unbalanced(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	w.StartElement("open")
	if _, err := w.Bytes(); err == nil {
		t.Error("Bytes with open element should error")
	}

	w2 := NewWriter()
	defer w2.Close()
	w2.EndElement()
	if _, err := w2.Bytes(); err == nil {
		t.Error("EndElement without StartElement should error")
	}
}

func TestWriter_Indent(t *testing.T) {
	w := NewIndentWriter()
	defer w.Close()

	w.StartElement("a")
	w.StartElement("b")
	w.WriteString("c", "x")
	w.EndElement()
	w.EndElement()

	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "\n  <b>") || !strings.Contains(got, "\n    <c>x</c>") {
		t.Errorf("indented output wrong:\n%s", got)
	}
	// Leaf elements keep text inline
	if strings.Contains(got, "<c>\n") {
		t.Errorf("leaf element split across lines:\n%s", got)
	}
}

func TestRoundTrip_WriterNavigator(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	w.StartElement("outer")
	w.WriteString("s", "hello & goodbye")
	w.StartElementAttrs("inner", Attr{"k", "v"})
	w.WriteDouble("value", 98.6)
	w.EndElement()
	w.EndElement()

	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	root, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s, _ := root.String("s"); s != "hello & goodbye" {
		t.Errorf("s = %q", s)
	}
	inner := root.SelectSingle("inner")
	if inner == nil || inner.Attr("k") != "v" {
		t.Fatal("inner element or attribute lost")
	}
	if v, _ := inner.Double("value"); v != 98.6 {
		t.Errorf("value = %v; want 98.6", v)
	}
}

func TestFormatDouble(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.8, "1.8"},
		{75, "75"},
		{0.125, "0.125"},
		{98.6, "98.6"},
	}
	for _, tt := range tests {
		if got := FormatDouble(tt.in); got != tt.want {
			t.Errorf("FormatDouble(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
