package xmlio

import (
	"errors"
	"testing"
)

const sampleDoc = `<height>
  <when>
    <date><y>2005</y><m>1</m><d>1</d></date>
  </when>
  <value>
    <m>1.8</m>
    <display units="m" text="180 cm">1.8</display>
  </value>
  <note>first &amp; second</note>
</height>`

func TestParse_Basic(t *testing.T) {
	root, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Name() != "height" {
		t.Errorf("root name = %q; want height", root.Name())
	}

	val := root.SelectSingle("value")
	if val == nil {
		t.Fatal("SelectSingle(value) = nil")
	}
	m, err := val.Double("m")
	if err != nil {
		t.Fatalf("Double(m): %v", err)
	}
	if m != 1.8 {
		t.Errorf("m = %v; want 1.8", m)
	}

	disp := val.SelectSingle("display")
	if disp == nil {
		t.Fatal("SelectSingle(display) = nil")
	}
	if got := disp.Attr("units"); got != "m" {
		t.Errorf("Attr(units) = %q; want m", got)
	}
	if got := disp.Attr("text"); got != "180 cm" {
		t.Errorf("Attr(text) = %q; want 180 cm", got)
	}
	if disp.Attr("missing") != "" {
		t.Error("Attr(missing) should be empty")
	}
}

func TestParse_EntityDecoding(t *testing.T) {
	root, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	note, err := root.String("note")
	if err != nil {
		t.Fatalf("String(note): %v", err)
	}
	if note != "first & second" {
		t.Errorf("note = %q; want %q", note, "first & second")
	}
}

func TestParse_NoRoot(t *testing.T) {
	_, err := Parse([]byte("   "))
	if !errors.Is(err, ErrNoRoot) {
		t.Errorf("err = %v; want ErrNoRoot", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("<a><b></a>")); err == nil {
		t.Error("expected error for mismatched elements")
	}
	if _, err := Parse([]byte("<a></a><b></b>")); err == nil {
		t.Error("expected error for multiple roots")
	}
}

func TestOptionalReaders(t *testing.T) {
	root, err := Parse([]byte(`<x><s> padded </s><d>2.5</d><i>7</i><b>true</b><dec>0.1</dec></x>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if s := root.OptString("s"); s == nil || *s != "padded" {
		t.Errorf("OptString(s) = %v; want padded", s)
	}
	if s := root.OptString("absent"); s != nil {
		t.Errorf("OptString(absent) = %q; want nil", *s)
	}

	d, err := root.OptDouble("d")
	if err != nil || d == nil || *d != 2.5 {
		t.Errorf("OptDouble(d) = %v, %v; want 2.5", d, err)
	}
	if d, err := root.OptDouble("absent"); err != nil || d != nil {
		t.Errorf("OptDouble(absent) = %v, %v; want nil, nil", d, err)
	}

	i, err := root.OptInt("i")
	if err != nil || i == nil || *i != 7 {
		t.Errorf("OptInt(i) = %v, %v; want 7", i, err)
	}
	b, err := root.OptBool("b")
	if err != nil || b == nil || !*b {
		t.Errorf("OptBool(b) = %v, %v; want true", b, err)
	}
	dec, err := root.OptDecimal("dec")
	if err != nil || dec == nil || dec.String() != "0.1" {
		t.Errorf("OptDecimal(dec) = %v, %v; want 0.1", dec, err)
	}
}

func TestOptionalReaders_Malformed(t *testing.T) {
	root, err := Parse([]byte(`<x><d>abc</d></x>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := root.OptDouble("d"); err == nil {
		t.Error("OptDouble on non-numeric content should error")
	}
	if _, err := root.OptInt("d"); err == nil {
		t.Error("OptInt on non-numeric content should error")
	}
	if _, err := root.OptBool("d"); err == nil {
		t.Error("OptBool on non-bool content should error")
	}
}

func TestSelect_Multiple(t *testing.T) {
	root, err := Parse([]byte(`<g><r>1</r><other/><r>2</r></g>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rs := root.Select("r")
	if len(rs) != 2 {
		t.Fatalf("Select(r) returned %d nodes; want 2", len(rs))
	}
	if rs[0].Text() != "1" || rs[1].Text() != "2" {
		t.Errorf("Select(r) order wrong: %q, %q", rs[0].Text(), rs[1].Text())
	}
}

func TestWalk(t *testing.T) {
	root, err := Parse([]byte(`<a><b><c>x</c></b><d/></a>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var paths []string
	err = root.Walk(func(path string, n *Navigator) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{"a", "a/b", "a/b/c", "a/d"}
	if len(paths) != len(want) {
		t.Fatalf("Walk visited %v; want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path[%d] = %q; want %q", i, paths[i], want[i])
		}
	}
}

func TestWalk_Stop(t *testing.T) {
	root, _ := Parse([]byte(`<a><b/><c/></a>`))
	stop := errors.New("stop")
	count := 0
	err := root.Walk(func(path string, n *Navigator) error {
		count++
		if path == "a/b" {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("Walk err = %v; want stop", err)
	}
	if count != 2 {
		t.Errorf("visited %d nodes before stop; want 2", count)
	}
}
