package types

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/gohealth/itemtypes/blob"
)

func TestExerciseSamplesBlobStorage(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	thingID := uuid.New()

	es, err := NewExerciseSamples(codableOf(t, "Heart rate"), codableOf(t, "bpm"), 2024, 5)
	if err != nil {
		t.Fatalf("NewExerciseSamples: %v", err)
	}

	samples := []float64{101, 104.5, 110, 108}
	if err := es.PutSamples(ctx, store, thingID, samples); err != nil {
		t.Fatalf("PutSamples: %v", err)
	}

	got, err := es.GetSamples(ctx, store, thingID)
	if err != nil {
		t.Fatalf("GetSamples: %v", err)
	}
	if !reflect.DeepEqual(samples, got) {
		t.Errorf("samples = %v, want %v", got, samples)
	}

	if err := es.AppendSamples(ctx, store, thingID, []float64{99}); err != nil {
		t.Fatalf("AppendSamples: %v", err)
	}
	got, err = es.GetSamples(ctx, store, thingID)
	if err != nil {
		t.Fatalf("GetSamples after append: %v", err)
	}
	if want := append(samples, 99); !reflect.DeepEqual(want, got) {
		t.Errorf("appended samples = %v, want %v", got, want)
	}
}

func TestAppendSamplesCreatesSeries(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	thingID := uuid.New()

	es, err := NewExerciseSamples(codableOf(t, "Cadence"), codableOf(t, "rpm"), 2024, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := es.AppendSamples(ctx, store, thingID, []float64{88, 90}); err != nil {
		t.Fatalf("AppendSamples on empty store: %v", err)
	}
	got, err := es.GetSamples(ctx, store, thingID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual([]float64{88, 90}, got) {
		t.Errorf("samples = %v, want [88 90]", got)
	}
}

func TestFileContent(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	thingID := uuid.New()

	f, err := NewFile("scan.pdf")
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	ct := codableOf(t, "application/pdf")
	f.ContentType = &ct

	content := []byte("%PDF-1.4 fake body")
	if err := f.SetContent(ctx, store, thingID, content); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if f.Size() != int64(len(content)) {
		t.Errorf("Size = %d, want %d", f.Size(), len(content))
	}

	got, err := f.Content(ctx, store, thingID)
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Content = %q, want %q", got, content)
	}

	if err := f.SetContent(ctx, store, thingID, nil); err == nil {
		t.Error("SetContent with empty content: expected error, got nil")
	}
}

func TestBlueButtonTextFileText(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	thingID := uuid.New()

	b := NewBlueButtonTextFile()
	text := "MEDICATIONS\nMetformin 500mg twice daily\n"
	if err := b.SetText(ctx, store, thingID, text); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	got, err := b.Text(ctx, store, thingID)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != text {
		t.Errorf("Text = %q, want %q", got, text)
	}
}
