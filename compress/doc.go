// Package compress provides the compression envelopes tag data is stored
// in: gzip (the customary one), zlib and zstd, all backed by
// github.com/klauspost/compress.
//
//	c, _ := compress.New(compress.Gzip, compress.WithLevel(9))
//	packed, err := c.Compress(data)
//
//	raw, format, err := compress.Decompress(packed) // format == compress.Gzip
//
// Decompressed output is capped at DefaultMaxSize unless WithMaxSize sets
// another limit.
package compress
