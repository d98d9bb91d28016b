package manifest

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	gojson "github.com/goccy/go-json"

	"github.com/hupe1980/collections/blobstore"
)

const (
	ManifestFilePrefix = "MANIFEST-"
	ManifestFileSuffix = ".json"
	CurrentFileName    = "CURRENT"
	// CurrentVersion is the manifest format version.
	CurrentVersion = 1
)

// Manifest describes one checkpoint generation.
type Manifest struct {
	Version    int       `json:"version"`
	Generation uint64    `json:"generation"`
	CreatedAt  time.Time `json:"created_at"`
	// Codec names the codec every entry was encoded with.
	Codec   string  `json:"codec"`
	Entries []Entry `json:"entries"`
}

// Entry locates the stored contents of one participant.
type Entry struct {
	Name string `json:"name"`
	// Blob is relative to the store prefix.
	Blob string `json:"blob"`
	// Generation is the generation that wrote Blob.
	Generation  uint64 `json:"generation"`
	Size        int64  `json:"size"`
	RawSize     int64  `json:"raw_size"`
	CRC32C      uint32 `json:"crc32c"`
	Compression string `json:"compression"`
}

// New returns an empty manifest for generation.
func New(generation uint64, codec string) *Manifest {
	return &Manifest{
		Version:    CurrentVersion,
		Generation: generation,
		CreatedAt:  time.Now().UTC(),
		Codec:      codec,
	}
}

// Add records e, replacing an entry of the same name. Entries stay sorted
// by name.
func (m *Manifest) Add(e Entry) {
	i, found := slices.BinarySearchFunc(m.Entries, e.Name, func(x Entry, name string) int {
		return strings.Compare(x.Name, name)
	})
	if found {
		m.Entries[i] = e
		return
	}

	m.Entries = slices.Insert(m.Entries, i, e)
}

// Entry returns the entry recorded for name.
func (m *Manifest) Entry(name string) (Entry, bool) {
	i, found := slices.BinarySearchFunc(m.Entries, name, func(x Entry, name string) int {
		return strings.Compare(x.Name, name)
	})
	if !found {
		return Entry{}, false
	}

	return m.Entries[i], true
}

// Blobs returns the blob names the manifest references.
func (m *Manifest) Blobs() []string {
	out := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.Blob)
	}

	return out
}

// FileName returns the manifest blob name of generation.
func FileName(generation uint64) string {
	return fmt.Sprintf("%s%020d%s", ManifestFilePrefix, generation, ManifestFileSuffix)
}

// ParseFileName is the inverse of FileName.
func ParseFileName(name string) (uint64, bool) {
	s, ok := strings.CutPrefix(name, ManifestFilePrefix)
	if !ok {
		return 0, false
	}

	s, ok = strings.CutSuffix(s, ManifestFileSuffix)
	if !ok {
		return 0, false
	}

	gen, err := strconv.ParseUint(s, 10, 64)

	return gen, err == nil
}

// GenerationDir returns the directory holding blobs written by generation.
func GenerationDir(generation uint64) string {
	return fmt.Sprintf("%s%020d", GenerationDirPrefix, generation)
}

// GenerationDirPrefix starts every generation directory name.
const GenerationDirPrefix = "gen-"

// ParseGenerationDir returns the generation of a blob name relative to the
// store prefix, such as "gen-00000000000000000003/items".
func ParseGenerationDir(name string) (uint64, bool) {
	dir, _, _ := strings.Cut(name, "/")

	s, ok := strings.CutPrefix(dir, GenerationDirPrefix)
	if !ok {
		return 0, false
	}

	gen, err := strconv.ParseUint(s, 10, 64)

	return gen, err == nil
}

// Store loads and saves manifests in a blob store.
type Store struct {
	store  blobstore.BlobStore
	prefix string
	mu     sync.Mutex
}

// NewStore returns a manifest store that keeps every name below prefix.
func NewStore(store blobstore.BlobStore, prefix string) *Store {
	return &Store{store: store, prefix: strings.Trim(prefix, "/")}
}

// Path joins name onto the store prefix.
func (s *Store) Path(name string) string {
	if s.prefix == "" {
		return name
	}

	return path.Join(s.prefix, name)
}

// Load returns the manifest CURRENT points to.
func (s *Store) Load(ctx context.Context) (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := blobstore.ReadAll(ctx, s.store, s.Path(CurrentFileName))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, errors.WithStack(ErrNotFound)
		}

		return nil, errors.Wrap(err, "manifest: read CURRENT")
	}

	return s.read(ctx, strings.TrimSpace(string(current)))
}

// LoadVersion returns the manifest of generation.
func (s *Store) LoadVersion(ctx context.Context, generation uint64) (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read(ctx, FileName(generation))
}

func (s *Store) read(ctx context.Context, name string) (*Manifest, error) {
	data, err := blobstore.ReadAll(ctx, s.store, s.Path(name))
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: read %s", name)
	}

	m := &Manifest{}
	if err := gojson.Unmarshal(data, m); err != nil {
		return nil, errors.Wrapf(err, "manifest: decode %s", name)
	}

	if m.Version != CurrentVersion {
		return nil, errors.Wrapf(ErrIncompatibleVersion, "%s has version %d", name, m.Version)
	}

	return m, nil
}

// ListVersions returns the generations that have a manifest, ascending.
func (s *Store) ListVersions(ctx context.Context) ([]uint64, error) {
	names, err := s.store.List(ctx, s.Path(ManifestFilePrefix))
	if err != nil {
		return nil, errors.Wrap(err, "manifest: list")
	}

	var gens []uint64

	for _, name := range names {
		if gen, ok := ParseFileName(path.Base(name)); ok {
			gens = append(gens, gen)
		}
	}

	slices.Sort(gens)

	return gens, nil
}

// Save writes m and points CURRENT at it. A manifest of the same generation
// written by another process makes Save fail with blobstore.ErrConflict on
// stores that implement blobstore.ConditionalStore.
func (s *Store) Save(ctx context.Context, m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Version = CurrentVersion

	data, err := gojson.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "manifest: encode")
	}

	name := FileName(m.Generation)

	if cs, ok := s.store.(blobstore.ConditionalStore); ok {
		err = cs.PutIfNotExists(ctx, s.Path(name), data)
	} else {
		err = s.store.Put(ctx, s.Path(name), data)
	}

	if err != nil {
		return errors.Wrapf(err, "manifest: write %s", name)
	}

	if err := s.store.Put(ctx, s.Path(CurrentFileName), []byte(name)); err != nil {
		return errors.Wrap(err, "manifest: write CURRENT")
	}

	return nil
}

// DeleteVersion removes the manifest of generation. It does not touch the
// blobs the manifest references.
func (s *Store) DeleteVersion(ctx context.Context, generation uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Delete(ctx, s.Path(FileName(generation)))
}
