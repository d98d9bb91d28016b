// Package checkpoint saves and restores the contents of containers through a
// blob store.
//
// Containers take part through a Participant, which hands out a copy of its
// logical contents and rebuilds itself from a decoded copy. Adapters exist
// for every container of this module:
//
//	items := list.New[string]()
//	index := ordmap.New[string, int](order.Natural[string]())
//
//	mgr := checkpoint.New(blobstore.NewLocalStore(dir),
//	    checkpoint.WithRetain(3),
//	)
//
//	mgr.MustRegister("items", checkpoint.List(items))
//	mgr.MustRegister("index", checkpoint.Map(index))
//
//	if _, err := mgr.Restore(ctx); err != nil && !errors.Is(err, checkpoint.ErrNoCheckpoint) { ... }
//	...
//	mgr.MarkDirty("index")
//	manifest, err := mgr.Checkpoint(ctx)
//
// Each call to Checkpoint starts a new generation. Only dirty participants
// are encoded and written; the manifest carries over the blobs of the
// others. Blobs are compressed and checksummed with CRC32C; Restore refuses
// a blob whose checksum does not match.
//
// Participants are read and rebuilt on the calling goroutine. Only encoding,
// compression and I/O run in parallel, so containers need no locking.
package checkpoint
