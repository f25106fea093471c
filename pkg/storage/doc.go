// Package storage reads and writes whole files on local disk or in an
// S3-compatible bucket.
//
//	store, err := storage.FromConfig(cfg.Storage)
//	if err != nil {
//		return err
//	}
//	if err := store.Put(ctx, "avatars/1.png", data); err != nil {
//		return err
//	}
//	data, err = store.Get(ctx, "avatars/1.png")
//
// Both backends report a missing file as [ErrNotFound].
package storage
