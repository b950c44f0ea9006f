package store

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/wippyai/nbt/compress"
	"github.com/wippyai/nbt/errors"
	"github.com/wippyai/nbt/tag"
)

func openStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db")
	s, err := Open(path, append([]Option{WithTimeout(time.Second)}, opts...)...)
	assert.NilError(t, err)
	return s, path
}

func TestPutGet(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()

	root := tag.NewCompound("level",
		tag.NewString("name", "world"),
		tag.NewIntArray("spawn", []int32{0, 64, 0}),
	)
	assert.NilError(t, s.Put("level", root))

	got, err := s.Get("level")
	assert.NilError(t, err)
	assert.Check(t, tag.Equal(root, got), "stored:\n%s\nloaded:\n%s", tag.Dump(root), tag.Dump(got))

	name, err := tag.At(got).Key("name").Text()
	assert.NilError(t, err)
	assert.Check(t, is.Equal(name, "world"))
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()

	_, err := s.Get("nope")
	assert.Check(t, is.ErrorIs(err, errors.ErrNotFound))
	assert.Check(t, is.Equal(errors.KindOf(err), errors.KindNotFound))

	err = s.Delete("nope")
	assert.Check(t, is.ErrorIs(err, errors.ErrNotFound))
}

func TestKeysAndDelete(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()

	for _, k := range []string{"b", "a", "c"} {
		assert.NilError(t, s.Put(k, tag.NewCompound(k)))
	}

	keys, err := s.Keys()
	assert.NilError(t, err)
	assert.DeepEqual(t, keys, []string{"a", "b", "c"})

	assert.NilError(t, s.Delete("b"))
	keys, err = s.Keys()
	assert.NilError(t, err)
	assert.DeepEqual(t, keys, []string{"a", "c"})
}

func TestPutReplaces(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()

	assert.NilError(t, s.Put("k", tag.NewCompound("", tag.NewInt("v", 1))))
	assert.NilError(t, s.Put("k", tag.NewCompound("", tag.NewInt("v", 2))))

	got, err := s.Get("k")
	assert.NilError(t, err)
	v, err := tag.At(got).Key("v").Int32()
	assert.NilError(t, err)
	assert.Check(t, is.Equal(v, int32(2)))
}

func TestPutInvalid(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()

	assert.Check(t, is.ErrorContains(s.Put("", tag.NewCompound("")), "empty key"))
	assert.Check(t, s.Put("nil", nil) != nil)
}

func TestReopenWithOtherCompression(t *testing.T) {
	t.Parallel()

	s, path := openStore(t, WithCompression(compress.Zstd))
	root := tag.NewCompound("r", tag.NewLong("t", 42))
	assert.NilError(t, s.Put("r", root))
	assert.NilError(t, s.Close())

	s, err := Open(path, WithCompression(compress.Zlib, compress.WithLevel(9)))
	assert.NilError(t, err)
	defer s.Close()

	got, err := s.Get("r")
	assert.NilError(t, err)
	assert.Check(t, tag.Equal(root, got))
}

func TestReadOnly(t *testing.T) {
	t.Parallel()

	s, path := openStore(t)
	assert.NilError(t, s.Put("k", tag.NewCompound("k")))
	assert.NilError(t, s.Close())

	ro, err := Open(path, WithReadOnly())
	assert.NilError(t, err)
	defer ro.Close()

	_, err = ro.Get("k")
	assert.NilError(t, err)
	assert.Check(t, ro.Put("x", tag.NewCompound("x")) != nil)
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := string(rune('a' + i))
			if err := s.Put(key, tag.NewCompound(key, tag.NewInt("i", int32(i)))); err != nil {
				t.Error(err)
				return
			}
			if _, err := s.Get(key); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	keys, err := s.Keys()
	assert.NilError(t, err)
	assert.Check(t, is.Len(keys, 8))
}

func TestInvalidCompression(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "db"), WithCompression(compress.Gzip, compress.WithLevel(42)))
	assert.Check(t, err != nil)
}
