package engine_test

import (
	"bytes"
	"context"
	"strconv"
	"testing"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/engine"
	"github.com/gohealth/itemtypes/types"
	"github.com/gohealth/itemtypes/vocab"
)

func newCodec(t *testing.T, opts ...itemtypes.Option) *engine.Codec {
	t.Helper()
	c, err := engine.New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestDecodeBareElement(t *testing.T) {
	c := newCodec(t)

	h, err := types.NewHeight(1.8)
	if err != nil {
		t.Fatal(err)
	}
	data, err := c.Encode(h)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	value, result := c.Decode(context.Background(), data)
	defer result.Release()

	if !result.Valid {
		t.Fatalf("Decode issues: %v", result.Issues)
	}
	if result.TypeName != "height" {
		t.Errorf("TypeName = %q, want %q", result.TypeName, "height")
	}
	if result.TypeID != h.TypeID() {
		t.Errorf("TypeID = %v, want %v", result.TypeID, h.TypeID())
	}
	got, ok := value.(*types.Height)
	if !ok {
		t.Fatalf("decoded %T, want *types.Height", value)
	}
	if got.Value.Value() != 1.8 {
		t.Errorf("Value = %v, want 1.8", got.Value.Value())
	}
}

func TestDecodeThingEnvelope(t *testing.T) {
	c := newCodec(t)

	bp, err := types.NewBloodPressure(120, 80)
	if err != nil {
		t.Fatal(err)
	}
	data, err := c.EncodeThing(bp)
	if err != nil {
		t.Fatalf("EncodeThing: %v", err)
	}

	value, result := c.Decode(context.Background(), data)
	defer result.Release()

	if !result.Valid {
		t.Fatalf("Decode issues: %v", result.Issues)
	}
	if result.TypeName != "blood-pressure" {
		t.Errorf("TypeName = %q, want %q", result.TypeName, "blood-pressure")
	}
	got, ok := value.(*types.BloodPressure)
	if !ok {
		t.Fatalf("decoded %T, want *types.BloodPressure", value)
	}
	if got.Systolic() != 120 || got.Diastolic() != 80 {
		t.Errorf("got %d/%d, want 120/80", got.Systolic(), got.Diastolic())
	}
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		data string
		code itemtypes.IssueCode
	}{
		{"malformed xml", "<height><value>", itemtypes.IssueStructure},
		{"empty input", "", itemtypes.IssueStructure},
		{"unknown root", "<no-such-type><value>1</value></no-such-type>", itemtypes.IssueUnknownType},
		{"unknown type id", "<thing><thing-id>00000000-0000-0000-0000-000000000001</thing-id><type-id>00000000-0000-0000-0000-0000000000aa</type-id><data-xml><x/></data-xml></thing>", itemtypes.IssueUnknownType},
		{"missing required", "<height><when><date><y>2025</y><m>4</m><d>12</d></date><time><h>8</h><m>30</m></time></when></height>", itemtypes.IssueRequired},
		{"out of range", "<emotion><when><date><y>2025</y><m>4</m><d>12</d></date><time><h>8</h><m>30</m></time></when><mood>9</mood></emotion>", itemtypes.IssueValue},
	}

	c := newCodec(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, result := c.Decode(context.Background(), []byte(tt.data))
			defer result.Release()

			if value != nil {
				t.Fatalf("decoded %T, want nil", value)
			}
			if result.Valid {
				t.Fatal("result is valid, want invalid")
			}
			errs := result.Errors()
			if len(errs) == 0 {
				t.Fatal("no error issues recorded")
			}
			if errs[0].Code != tt.code {
				t.Errorf("issue code = %q, want %q", errs[0].Code, tt.code)
			}
		})
	}
}

func conditionXML(code string) []byte {
	return []byte("<condition><name><text>Asthma</text>" +
		"<code><value>" + code + "</value><type>conditions</type></code>" +
		"</name></condition>")
}

func conditionVocab(t *testing.T) *vocab.Memory {
	t.Helper()
	m := vocab.NewMemory()
	err := m.Load(vocab.Key{Family: "wc", Name: "conditions"}, []vocab.Entry{
		{Code: "J45", DisplayText: "Asthma"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestVocabularyWarnings(t *testing.T) {
	c := newCodec(t)
	c.UseVocabulary(conditionVocab(t))

	t.Run("known code", func(t *testing.T) {
		_, result := c.Decode(context.Background(), conditionXML("J45"))
		defer result.Release()
		if !result.Valid || result.IssueCount() != 0 {
			t.Fatalf("issues for known code: %v", result.Issues)
		}
	})

	t.Run("unknown code warns", func(t *testing.T) {
		value, result := c.Decode(context.Background(), conditionXML("XX"))
		defer result.Release()
		if value == nil {
			t.Fatal("decode failed, want value with warning")
		}
		if !result.Valid {
			t.Fatalf("unknown code produced errors: %v", result.Issues)
		}
		warns := result.Warnings()
		if len(warns) != 1 || warns[0].Code != itemtypes.IssueVocabulary {
			t.Fatalf("warnings = %v, want one vocabulary warning", warns)
		}
	})
}

func TestVocabularyStrict(t *testing.T) {
	c := newCodec(t, itemtypes.WithStrictVocabulary(true))
	c.UseVocabulary(conditionVocab(t))

	value, result := c.Decode(context.Background(), conditionXML("XX"))
	defer result.Release()

	if value != nil {
		t.Fatalf("decoded %T, want nil in strict mode", value)
	}
	errs := result.Errors()
	if len(errs) != 1 || errs[0].Code != itemtypes.IssueVocabulary {
		t.Fatalf("errors = %v, want one vocabulary error", errs)
	}
}

func TestRoundtrip(t *testing.T) {
	c := newCodec(t)

	in := []byte("<blood-pressure><when><date><y>2025</y><m>4</m><d>12</d></date><time><h>8</h><m>30</m></time></when><systolic>120</systolic><diastolic>80</diastolic></blood-pressure>")

	out, result, err := c.Roundtrip(context.Background(), in)
	defer result.Release()
	if err != nil {
		t.Fatalf("Roundtrip: %v", err)
	}
	if !result.Valid {
		t.Fatalf("Roundtrip issues: %v", result.Issues)
	}
	if !bytes.Equal(out, in) {
		t.Errorf("output differs:\n got %s\nwant %s", out, in)
	}
}

func TestEncodeIndent(t *testing.T) {
	c := newCodec(t, itemtypes.WithIndent(true))

	h, err := types.NewHeight(1.8)
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.Encode(h)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte("\n")) {
		t.Errorf("indented output has no newlines: %q", out)
	}
}

func TestEncodeUnsetRequired(t *testing.T) {
	c := newCodec(t)

	if _, err := c.Encode(&types.Height{}); err == nil {
		t.Fatal("Encode succeeded with unset required fields")
	}
	if _, err := c.Encode(nil); err == nil {
		t.Fatal("Encode succeeded with nil data")
	}
}

func TestMaxErrors(t *testing.T) {
	c := newCodec(t, itemtypes.WithMaxErrors(1), itemtypes.WithStrictVocabulary(true))

	m := vocab.NewMemory()
	c.UseVocabulary(m)

	// Two unknown codes, but the cap keeps the second one out.
	data := []byte("<condition><name><text>Asthma</text>" +
		"<code><value>a</value><type>v1</type></code>" +
		"<code><value>b</value><type>v2</type></code>" +
		"</name></condition>")

	_, result := c.Decode(context.Background(), data)
	defer result.Release()

	if got := result.ErrorCount(); got != 1 {
		t.Errorf("ErrorCount = %d, want 1", got)
	}
}

func TestValidateBatch(t *testing.T) {
	c := newCodec(t, itemtypes.WithWorkerCount(3))

	payloads := make([][]byte, 20)
	for i := range payloads {
		if i%3 == 0 {
			payloads[i] = []byte("<height><value>")
		} else {
			payloads[i] = []byte("<condition><name><text>c</text></name></condition>")
		}
	}

	results := c.ValidateBatch(context.Background(), payloads)
	if len(results) != len(payloads) {
		t.Fatalf("got %d results, want %d", len(results), len(payloads))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("result %d is nil", i)
		}
		if r.JobID != strconv.Itoa(i) {
			t.Errorf("result %d JobID = %q", i, r.JobID)
		}
		wantValid := i%3 != 0
		if r.Valid != wantValid {
			t.Errorf("result %d Valid = %v, want %v: %v", i, r.Valid, wantValid, r.Issues)
		}
		r.Release()
	}

	snap := c.Metrics().Snapshot()
	if snap.DecodesTotal != uint64(len(payloads)) {
		t.Errorf("DecodesTotal = %d, want %d", snap.DecodesTotal, len(payloads))
	}
}
