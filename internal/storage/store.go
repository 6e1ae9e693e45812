package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/fern/internal/raster"
)

const (
	metadataFile = "metadata.json"
	imageFile    = "fern.png"
	thumbFile    = "thumb.png"

	// ThumbSize bounds the longer side of saved thumbnails.
	ThumbSize = 160
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	logger  *log.Logger
	now     func() time.Time
}

type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func New(baseDir string, opts ...Option) *Store {
	s := &Store{
		baseDir: baseDir,
		logger:  log.New(io.Discard),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Theme      string             `json:"theme"`
	Seed       int64              `json:"seed"`
	Throughput int                `json:"throughput"`
	Frames     int                `json:"frames"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Points     int64              `json:"points"`
	Generated  int64              `json:"generated"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes meta and img as a new run and returns its id. ID and
// Timestamp in meta are assigned here.
func (s *Store) Save(meta RunMetadata, img image.Image) (string, error) {
	now := s.now()
	runID, runDir, err := s.newRunDir(meta.Theme, now)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	if err := writeRun(runDir, meta, img); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.logger.Warn("removing partial run", "dir", runDir, "err", rmErr)
		}
		return "", err
	}

	s.logger.Info("saved run", "id", runID, "points", meta.Points, "dir", runDir)
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, img image.Image) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	if img != nil {
		if err := raster.WritePNG(filepath.Join(runDir, imageFile), img); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
		if err := raster.WritePNG(filepath.Join(runDir, thumbFile), raster.Thumbnail(img, ThumbSize)); err != nil {
			return fmt.Errorf("write thumbnail: %w", err)
		}
	}
	return nil
}

// newRunDir creates a fresh directory named <prefix>_<unix>, adding a
// counter when runs land in the same second.
func (s *Store) newRunDir(prefix string, now time.Time) (string, string, error) {
	if prefix == "" {
		prefix = "fern"
	}
	if err := s.Init(); err != nil {
		return "", "", err
	}

	base := fmt.Sprintf("%s_%d", prefix, now.Unix())
	runID := base
	for n := 2; ; n++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
}

// List returns all readable runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Debug("skipping run", "dir", entry.Name(), "err", err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(s.path(runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadImage(runID string) (image.Image, error) {
	return s.loadPNG(runID, imageFile)
}

func (s *Store) LoadThumbnail(runID string) (image.Image, error) {
	return s.loadPNG(runID, thumbFile)
}

func (s *Store) loadPNG(runID, name string) (image.Image, error) {
	img, err := raster.ReadPNG(s.path(runID, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrRunNotFound, runID, name)
		}
		return nil, err
	}
	return img, nil
}

// path joins runID under the base dir, keeping it from escaping it.
func (s *Store) path(runID, name string) string {
	return filepath.Join(s.baseDir, filepath.Base(filepath.Clean("/"+runID)), name)
}
