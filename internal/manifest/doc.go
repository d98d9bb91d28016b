// Package manifest persists checkpoint manifests.
//
// A manifest lists, for one checkpoint generation, the blob that holds each
// participant's encoded contents together with its size and CRC32C. Blobs
// that did not change are carried over from earlier generations, so a
// manifest may reference blobs written by several generations.
//
// Layout inside a blob store (all names below an optional prefix):
//
//	CURRENT                          name of the latest manifest
//	MANIFEST-00000000000000000007.json
//	gen-00000000000000000007/<participant>
//
// Save writes the manifest first, with PutIfNotExists when the store
// supports it, and then overwrites CURRENT. A crash between the two leaves
// the previous generation current.
package manifest
