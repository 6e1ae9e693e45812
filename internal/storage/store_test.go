package storage

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(1, 1, color.RGBA{0x90, 0xEE, 0x90, 255})
	return img
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Theme:      "classic",
		Seed:       42,
		Throughput: 100,
		Frames:     10,
		Width:      900,
		Height:     600,
		Points:     987,
		Generated:  1000,
		Metrics: map[string]float64{
			"coverage": 0.987,
		},
	}

	runID, err := st.Save(meta, testImage(900, 600))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.ID != runID {
		t.Errorf("expected id '%s', got '%s'", runID, loaded.ID)
	}

	if loaded.Theme != "classic" {
		t.Errorf("expected theme 'classic', got '%s'", loaded.Theme)
	}

	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}

	if loaded.Points != 987 || loaded.Generated != 1000 {
		t.Errorf("expected 987/1000 points, got %d/%d", loaded.Points, loaded.Generated)
	}

	if loaded.Metrics["coverage"] != 0.987 {
		t.Errorf("expected coverage 0.987, got %f", loaded.Metrics["coverage"])
	}

	img, err := st.LoadImage(runID)
	if err != nil {
		t.Fatalf("load image failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 900 || b.Dy() != 600 {
		t.Errorf("expected 900x600 image, got %dx%d", b.Dx(), b.Dy())
	}

	thumb, err := st.LoadThumbnail(runID)
	if err != nil {
		t.Fatalf("load thumbnail failed: %v", err)
	}
	if b := thumb.Bounds(); b.Dx() != ThumbSize || b.Dy() != 106 {
		t.Errorf("expected %dx106 thumbnail, got %dx%d", ThumbSize, b.Dx(), b.Dy())
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	clock := time.Unix(1700000000, 0)
	st.now = func() time.Time { return clock }

	first, err := st.Save(RunMetadata{Theme: "ocean"}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	clock = clock.Add(-time.Hour)
	second, err := st.Save(RunMetadata{Theme: "ocean"}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// A stray file and an unreadable run are skipped.
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "broken"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected runs sorted by timestamp, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreSameSecond(t *testing.T) {
	st := New(t.TempDir())
	clock := time.Unix(1700000000, 0)
	st.now = func() time.Time { return clock }

	a, err := st.Save(RunMetadata{Theme: "classic"}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	b, err := st.Save(RunMetadata{Theme: "classic"}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if a != "classic_1700000000" {
		t.Errorf("expected id classic_1700000000, got %s", a)
	}
	if b != "classic_1700000000_2" {
		t.Errorf("expected id classic_1700000000_2, got %s", b)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Theme: "autumn"}, testImage(20, 10))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "fern.png", "thumb.png"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadImage("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}

	runID, err := st.Save(RunMetadata{}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.LoadImage(runID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound for a run without image, got %v", err)
	}
}

func TestStorePathStaysInside(t *testing.T) {
	st := New("/data/runs")
	got := st.path("../../etc", "metadata.json")
	want := filepath.Join("/data/runs", "etc", "metadata.json")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestStoreSaveFailureRemovesRun(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	// png refuses to encode an empty image.
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := st.Save(RunMetadata{Theme: "classic"}, empty); err == nil {
		t.Fatal("expected save of empty image to fail")
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no run directories, found %d", len(entries))
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
