// Package nbt reads and writes NBT documents: a tag tree rooted at a named
// compound, usually wrapped in a gzip envelope.
//
// The module is organized into several packages:
//
//	nbt/          Documents and atomic file persistence
//	├── tag/       Tag model, binary codec, registry and typed accessors
//	├── wire/      Bounds-checked byte reader and writer
//	├── mutf8/     Modified UTF-8 text codec
//	├── compress/  gzip, zlib and zstd envelopes
//	├── store/     bbolt-backed document store
//	├── errors/    Structured error types
//	└── cmd/nbt/   Command line tool
//
// # Quick Start
//
// Build a tree, persist it, read it back:
//
//	list, _ := tag.NewList("ListTest", tag.NewString("", "Hi"), tag.NewString("", "Goodbye"))
//	doc := nbt.New(tag.NewCompound("out", list), compress.Gzip)
//
//	if err := doc.WriteFile("out.nbt", nbt.WithCompressOptions(compress.WithLevel(9))); err != nil {
//	    log.Fatal(err)
//	}
//
//	in, err := nbt.ReadFile("out.nbt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(tag.Dump(in.Root))
//
// ReadFile and ReadDocument detect the envelope from its magic bytes, so
// raw, gzip, zlib and zstd files are all read the same way.
package nbt
