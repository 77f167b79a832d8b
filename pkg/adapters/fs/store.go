package fs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/timeoverwrite/pkg/adapters/memory"
	"github.com/aretw0/timeoverwrite/pkg/core"
)

// DefaultPattern matches every fixture format known to DefaultSerializers.
const DefaultPattern = "**/*.{yaml,yml,json}"

// Config holds the configuration for the filesystem store.
type Config struct {
	Root   string // directory relative paths and patterns resolve against
	Logger *slog.Logger
	// ErrorHandler receives runtime watcher errors that would otherwise only be logged.
	ErrorHandler func(error)
}

// Store loads and saves annotated documents from fixture files.
type Store struct {
	Root        string
	config      Config
	mu          sync.RWMutex
	serializers map[string]Serializer

	watcherActive bool
	loaded        int
}

// NewStore creates a new filesystem-backed store.
func NewStore(config Config) *Store {
	if config.Root == "" {
		config.Root = "."
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		Root:        config.Root,
		config:      config,
		serializers: DefaultSerializers(),
	}
}

// RegisterSerializer adds or overrides the serializer of an extension.
func (s *Store) RegisterSerializer(ext string, serializer Serializer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	s.serializers[strings.ToLower(ext)] = serializer
}

func (s *Store) serializerFor(path string) (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	s.mu.RLock()
	defer s.mu.RUnlock()
	serializer, ok := s.serializers[ext]
	if !ok {
		return nil, fmt.Errorf("no serializer for extension %q", ext)
	}
	return serializer, nil
}

func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.Root, path)
}

// Load reads the fixture at path into a document. Annotation regions are
// made absolute using the fixture offset.
func (s *Store) Load(path string) (*memory.Document, error) {
	serializer, err := s.serializerFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	fixture, err := serializer.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := core.Region{fixture.Offset, fixture.Offset}
	annotations := make([]memory.Annotation, 0, len(fixture.Annotations))
	for _, a := range fixture.Annotations {
		a.Region = core.NormalizeLocation(a.Region, base)
		if !a.Region.Valid() {
			return nil, fmt.Errorf("%s: invalid region %v", path, a.Region)
		}
		annotations = append(annotations, a)
	}

	s.mu.Lock()
	s.loaded++
	s.mu.Unlock()

	s.config.Logger.Debug("loaded fixture", "path", path, "annotations", len(annotations))
	return memory.NewDocument(fixture.Text, annotations), nil
}

// Save writes doc to path atomically, with absolute regions. An existing
// fixture keeps its permissions.
func (s *Store) Save(path string, doc *memory.Document) error {
	serializer, err := s.serializerFor(path)
	if err != nil {
		return err
	}

	data, err := serializer.Serialize(Fixture{
		Text:        doc.Text(),
		Annotations: doc.Annotations(),
	})
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", path, err)
	}

	target := s.resolve(path)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return replaceFixture(target, data)
}

// Glob lists the fixtures under Root matching pattern, as slash separated
// relative paths in lexical order.
func (s *Store) Glob(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(s.Root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s: %w", pattern, err)
	}

	out := matches[:0]
	for _, m := range matches {
		if strings.HasPrefix(filepath.Base(m), TempFilePrefix) {
			continue
		}
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}
