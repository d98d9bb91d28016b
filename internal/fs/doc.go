// Package fs abstracts the file operations behind blobstore.LocalStore so
// tests can inject failures.
//
// Production code uses [Default], which is [LocalFS]. Tests wrap it in a
// [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailOnSync: true})
//
// Operations take no context. Local file calls are not interruptible at the
// syscall level; callers check their context between calls.
package fs
