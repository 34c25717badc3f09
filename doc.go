// Package notegate provides a lightweight HTTP gateway over an S3-compatible
// object store, exposing plain-text notes and JSON "canvas" documents.
//
// Notes are arbitrary UTF-8 blobs identified by a key within a single bucket.
// Canvases are notes with a naming convention (a fixed key suffix) and
// existence-check semantics: a canvas must not exist before create and must
// exist before update or delete.
//
// # Key Components
//
//   - Service: gateway operations (list/read/write notes, canvas CRUD)
//   - ObjectStore: interface over the bucket (see the storage package for
//     the aws-sdk-go-v2 implementation)
//   - CanvasContent: tagged JSON value (object, array, or string) accepted
//     at the API boundary and serialized deterministically before storage
//
// The http package implements the REST surface including bearer-token
// authentication and per-endpoint bandwidth accounting (see stats).
//
// # Example Usage
//
//	store, err := storage.NewClient(storage.Config{...})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	service := notegate.NewService(store)
//
//	// Write then read a note
//	err = service.WriteNote(ctx, "todo.txt", "buy milk")
//	note, err := service.ReadNote(ctx, "todo.txt")
//
// No locking or versioning is layered on top of the store: concurrent
// writers to the same key follow last-writer-wins, except canvas create
// which uses a conditional put when the backend supports it.
package notegate
