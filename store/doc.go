// Package store keeps tag documents in a bbolt database.
//
//	s, err := store.Open("worlds.db", store.WithCompression(compress.Zstd))
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	err = s.Put("level", root)
//	root, err = s.Get("level")
//
// Each document is encoded with the configured tag options and wrapped in
// the configured compression envelope before it is written.
package store
