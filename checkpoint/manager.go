package checkpoint

import (
	"context"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/collections/blobstore"
	"github.com/hupe1980/collections/codec"
	"github.com/hupe1980/collections/internal/compress"
	"github.com/hupe1980/collections/internal/conv"
	"github.com/hupe1980/collections/internal/hash"
	"github.com/hupe1980/collections/internal/manifest"
	"github.com/hupe1980/collections/internal/resource"
	"github.com/hupe1980/collections/list"
	"github.com/hupe1980/collections/order"
	"github.com/hupe1980/collections/ordmap"
	"github.com/hupe1980/collections/ordset"
)

type registration struct {
	name string
	p    Participant
}

// Manager checkpoints a set of named participants into a blob store.
//
// A Manager is safe for concurrent use, but the participants are not:
// callers must not modify a container while Checkpoint or Restore runs.
type Manager struct {
	mu sync.Mutex

	store      blobstore.BlobStore
	manifests  *manifest.Store
	controller *resource.Controller
	opts       options

	// names maps a participant name to its id, the index into parts.
	names *ordmap.Map[string, uint32]
	parts *list.List[*registration]
	dirty *roaring.Bitmap

	last *manifest.Manifest
}

// New returns a manager writing to store.
func New(store blobstore.BlobStore, optFns ...Option) *Manager {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Manager{
		store:     store,
		manifests: manifest.NewStore(store, opts.prefix),
		controller: resource.NewController(resource.Config{
			MemoryLimitBytes:   opts.memoryLimit,
			MaxWorkers:         opts.workers,
			IOLimitBytesPerSec: opts.rateLimit,
		}),
		opts:  opts,
		names: ordmap.New[string, uint32](order.Natural[string]()),
		parts: list.New[*registration](),
		dirty: roaring.New(),
	}
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, "/\\")
}

// Register adds p under name. The participant starts dirty.
func (m *Manager) Register(name string, p Participant) error {
	if !validName(name) {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.names.Contains(name) {
		return errors.Wrapf(ErrDuplicateParticipant, "%q", name)
	}

	id, err := conv.IntToUint32(m.parts.Len())
	if err != nil {
		return err
	}

	m.parts.Add(&registration{name: name, p: p})
	m.names.Put(name, id)
	m.dirty.Add(id)

	return nil
}

// MustRegister is Register that panics on error.
func (m *Manager) MustRegister(name string, p Participant) {
	if err := m.Register(name, p); err != nil {
		panic(err)
	}
}

// Unregister removes name. The next checkpoint no longer records it.
func (m *Manager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.names.Delete(name)
	if !ok {
		return errors.Wrapf(ErrUnknownParticipant, "%q", name)
	}

	m.parts.Put(int(id), nil)
	m.dirty.Remove(id)

	return nil
}

// MarkDirty schedules the named participants for the next checkpoint.
func (m *Manager) MarkDirty(names ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range names {
		id, ok := m.names.Get(name)
		if !ok {
			return errors.Wrapf(ErrUnknownParticipant, "%q", name)
		}

		m.dirty.Add(id)
	}

	return nil
}

// MarkAllDirty schedules every participant for the next checkpoint.
func (m *Manager) MarkAllDirty() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.names.All() {
		m.dirty.Add(id)
	}
}

// Dirty returns the names of the participants the next checkpoint writes,
// sorted.
func (m *Manager) Dirty() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, m.dirty.GetCardinality())
	for name, id := range m.names.All() {
		if m.dirty.Contains(id) {
			out = append(out, name)
		}
	}

	return out
}

// Participants returns the registered names, sorted.
func (m *Manager) Participants() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Collect(m.names.Keys())
}

// Last returns the manifest of the latest checkpoint this manager wrote or
// restored, or nil.
func (m *Manager) Last() *manifest.Manifest {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.last
}

type saveJob struct {
	id    uint32
	name  string
	value any
	entry manifest.Entry
}

// Checkpoint writes the dirty participants as a new generation and commits
// a manifest that references them together with the unchanged blobs of the
// previous generation. Dirty marks are cleared only when the manifest was
// committed.
func (m *Manager) Checkpoint(ctx context.Context) (*manifest.Manifest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now()

	gen, err := m.nextGeneration(ctx)
	if err != nil {
		m.opts.metrics.RecordCheckpoint(0, 0, time.Since(start), err)
		return nil, err
	}

	next := manifest.New(gen, m.opts.codec.Name())

	var jobs []*saveJob

	reused := 0

	for name, id := range m.names.All() {
		if !m.dirty.Contains(id) && m.last != nil {
			if e, ok := m.last.Entry(name); ok {
				next.Add(e)
				reused++

				continue
			}
		}

		jobs = append(jobs, &saveJob{
			id:    id,
			name:  name,
			value: m.parts.At(int(id)).p.Snapshot(),
		})
	}

	err = m.saveAll(ctx, gen, jobs)
	if err == nil {
		for _, job := range jobs {
			next.Add(job.entry)
		}

		err = m.manifests.Save(ctx, next)
	}

	d := time.Since(start)
	m.opts.metrics.RecordCheckpoint(len(jobs), reused, d, err)
	m.opts.logger.LogCheckpoint(ctx, gen, len(jobs), reused, d, err)

	if err != nil {
		return nil, errors.Wrapf(err, "checkpoint: generation %d", gen)
	}

	m.last = next
	m.dirty.Clear()

	if m.opts.retain > 0 {
		// The checkpoint is committed; a failed prune is retried next time.
		_, _, _ = m.prune(ctx, m.opts.retain)
	}

	return next, nil
}

func (m *Manager) nextGeneration(ctx context.Context) (uint64, error) {
	gens, err := m.manifests.ListVersions(ctx)
	if err != nil {
		return 0, err
	}

	gen := uint64(1)
	if len(gens) > 0 {
		gen = gens[len(gens)-1] + 1
	}

	if m.last != nil && m.last.Generation >= gen {
		gen = m.last.Generation + 1
	}

	return gen, nil
}

func (m *Manager) saveAll(ctx context.Context, gen uint64, jobs []*saveJob) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.controller.Workers())

	for _, job := range jobs {
		g.Go(func() error {
			start := time.Now()

			err := m.save(gctx, gen, job)

			m.opts.metrics.RecordSave(job.name, int(job.entry.Size), time.Since(start), err)
			m.opts.logger.LogSave(gctx, job.name, int(job.entry.Size), int(job.entry.RawSize), err)

			if err != nil {
				return &ParticipantError{Name: job.name, Op: "save", Err: err}
			}

			return nil
		})
	}

	return g.Wait()
}

func (m *Manager) save(ctx context.Context, gen uint64, job *saveJob) error {
	raw, err := m.opts.codec.Marshal(job.value)
	if err != nil {
		return errors.Wrapf(err, "encode with %s", m.opts.codec.Name())
	}

	held := int64(len(raw))
	if err := m.controller.AcquireMemory(ctx, held); err != nil {
		return err
	}
	defer m.controller.ReleaseMemory(held)

	frame, err := compress.Encode(m.opts.compression, raw)
	if err != nil {
		return err
	}

	algo, _ := compress.FrameAlgorithm(frame)
	blob := path.Join(manifest.GenerationDir(gen), job.name)

	if err := m.controller.AcquireIO(ctx, len(frame)); err != nil {
		return err
	}

	if err := m.store.Put(ctx, m.manifests.Path(blob), frame); err != nil {
		return err
	}

	job.entry = manifest.Entry{
		Name:        job.name,
		Blob:        blob,
		Generation:  gen,
		Size:        int64(len(frame)),
		RawSize:     int64(len(raw)),
		CRC32C:      hash.CRC32C(frame),
		Compression: algo.String(),
	}

	return nil
}

// Restore rebuilds the registered participants from the latest committed
// checkpoint and returns its manifest. Every blob is read and verified
// before the first participant is touched. Participants the manifest does
// not mention keep their contents and stay dirty; manifest entries without
// a registered participant are ignored.
func (m *Manager) Restore(ctx context.Context) (*manifest.Manifest, error) {
	return m.restore(ctx, func() (*manifest.Manifest, error) { return m.manifests.Load(ctx) })
}

// RestoreGeneration is Restore for an older generation that has not been
// pruned.
func (m *Manager) RestoreGeneration(ctx context.Context, gen uint64) (*manifest.Manifest, error) {
	return m.restore(ctx, func() (*manifest.Manifest, error) { return m.manifests.LoadVersion(ctx, gen) })
}

type restoreJob struct {
	id    uint32
	entry manifest.Entry
	raw   []byte
}

func (m *Manager) restore(ctx context.Context, load func() (*manifest.Manifest, error)) (*manifest.Manifest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mf, err := load()
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) || errors.Is(err, blobstore.ErrNotFound) {
			return nil, errors.WithStack(ErrNoCheckpoint)
		}

		return nil, err
	}

	c, err := codec.Lookup(mf.Codec)
	if err != nil {
		return nil, err
	}

	log := m.opts.logger.WithGeneration(mf.Generation)

	var jobs []*restoreJob

	for _, e := range mf.Entries {
		id, ok := m.names.Get(e.Name)
		if !ok {
			log.WarnContext(ctx, "skipping unregistered participant", "participant", e.Name)
			continue
		}

		jobs = append(jobs, &restoreJob{id: id, entry: e})
	}

	if err := m.fetchAll(ctx, jobs); err != nil {
		return nil, err
	}

	for _, job := range jobs {
		start := time.Now()

		err := m.parts.At(int(job.id)).p.Restore(func(v any) error {
			return c.Unmarshal(job.raw, v)
		})

		m.opts.metrics.RecordRestore(job.entry.Name, int(job.entry.Size), time.Since(start), err)
		log.LogRestore(ctx, job.entry.Name, int(job.entry.Size), err)

		if err != nil {
			return nil, &ParticipantError{Name: job.entry.Name, Op: "restore", Err: err}
		}

		m.dirty.Remove(job.id)
	}

	m.last = mf

	return mf, nil
}

func (m *Manager) fetchAll(ctx context.Context, jobs []*restoreJob) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.controller.Workers())

	for _, job := range jobs {
		g.Go(func() error {
			raw, err := m.fetch(gctx, job.entry)
			if err != nil {
				return &ParticipantError{Name: job.entry.Name, Op: "read", Err: err}
			}

			job.raw = raw

			return nil
		})
	}

	return g.Wait()
}

func (m *Manager) fetch(ctx context.Context, e manifest.Entry) ([]byte, error) {
	size, err := conv.Int64ToInt(e.Size)
	if err != nil {
		return nil, errors.Wrapf(err, "size of %s", e.Blob)
	}

	if err := m.controller.AcquireIO(ctx, size); err != nil {
		return nil, err
	}

	frame, err := blobstore.ReadAll(ctx, m.store, m.manifests.Path(e.Blob))
	if err != nil {
		return nil, err
	}

	if err := hash.Verify(frame, e.CRC32C); err != nil {
		return nil, errors.Wrapf(ErrChecksumMismatch, "%s", e.Blob)
	}

	return compress.Decode(frame)
}

// Prune deletes all but the newest keep manifests and every blob that no
// remaining manifest references. Blobs of generations newer than the
// newest manifest belong to a checkpoint in progress and are left alone.
// It returns the number of manifests and blobs deleted.
func (m *Manager) Prune(ctx context.Context, keep int) (manifests, blobs int, err error) {
	if keep < 1 {
		return 0, 0, errors.Newf("checkpoint: prune must keep at least one generation, got %d", keep)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.prune(ctx, keep)
}

func (m *Manager) prune(ctx context.Context, keep int) (manifests, blobs int, err error) {
	defer func() { m.opts.logger.LogPrune(ctx, manifests, blobs, err) }()

	gens, err := m.manifests.ListVersions(ctx)
	if err != nil || len(gens) == 0 {
		return 0, 0, err
	}

	newest := gens[len(gens)-1]
	cut := max(len(gens)-keep, 0)

	live := ordset.New(order.Natural[string]())

	for _, gen := range gens[cut:] {
		mf, err := m.manifests.LoadVersion(ctx, gen)
		if err != nil {
			return manifests, blobs, err
		}

		for _, b := range mf.Blobs() {
			live.Add(m.manifests.Path(b))
		}
	}

	for _, gen := range gens[:cut] {
		if err := m.manifests.DeleteVersion(ctx, gen); err != nil {
			return manifests, blobs, err
		}

		manifests++
	}

	names, err := m.store.List(ctx, m.manifests.Path(manifest.GenerationDirPrefix))
	if err != nil {
		return manifests, blobs, err
	}

	for _, name := range names {
		rel := strings.TrimPrefix(strings.TrimPrefix(name, m.manifests.Path("")), "/")

		gen, ok := manifest.ParseGenerationDir(rel)
		if !ok || gen > newest || live.Contains(name) {
			continue
		}

		if err := m.store.Delete(ctx, name); err != nil {
			return manifests, blobs, err
		}

		blobs++
	}

	return manifests, blobs, nil
}
