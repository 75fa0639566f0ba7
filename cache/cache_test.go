package cache

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/teatak/mmseg/dictionary"
	"github.com/teatak/mmseg/util"
)

func TestMain(m *testing.M) {
	util.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func sorted(words []string) []string {
	out := append([]string(nil), words...)
	sort.Strings(out)
	return out
}

func TestJSONStore(t *testing.T) {
	convey.Convey("JSON cache file", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "nested", "cedict_map.json")
		store := NewJSONStore(path)

		convey.Convey("a missing file is a miss", func() {
			words, ok, err := store.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeFalse)
			convey.So(words, convey.ShouldBeEmpty)
		})

		convey.Convey("saved words are loaded back", func() {
			convey.So(store.Save(ctx, []string{"你好", "中华人民"}), convey.ShouldBeNil)
			words, ok, err := store.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(sorted(words), convey.ShouldResemble, []string{"中华人民", "你好"})
		})

		convey.Convey("files with non-zero values are accepted", func() {
			convey.So(os.MkdirAll(filepath.Dir(path), 0o755), convey.ShouldBeNil)
			convey.So(os.WriteFile(path, []byte(`{"你好":0,"再见":7}`), 0o644), convey.ShouldBeNil)
			words, ok, err := store.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(sorted(words), convey.ShouldResemble, []string{"你好", "再见"})
		})

		convey.Convey("a corrupt file is an error", func() {
			convey.So(os.MkdirAll(filepath.Dir(path), 0o755), convey.ShouldBeNil)
			convey.So(os.WriteFile(path, []byte(`{"你好":`), 0o644), convey.ShouldBeNil)
			_, ok, err := store.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestBadgerStore(t *testing.T) {
	convey.Convey("Badger cache", t, func() {
		ctx := context.Background()
		store, err := OpenBadger("", BadgerOptions{InMemory: true})
		convey.So(err, convey.ShouldBeNil)
		defer store.Close()

		convey.Convey("an empty database is a miss", func() {
			_, ok, err := store.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("save replaces the previous word set", func() {
			convey.So(store.Save(ctx, []string{"南京", "南京市", "长江"}), convey.ShouldBeNil)
			convey.So(store.Save(ctx, []string{"长江大桥", "南京"}), convey.ShouldBeNil)

			words, ok, err := store.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(sorted(words), convey.ShouldResemble, []string{"南京", "长江大桥"})
		})

		convey.Convey("closed stores fail and close again cleanly", func() {
			convey.So(store.Close(), convey.ShouldBeNil)
			_, _, err := store.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(store.Close(), convey.ShouldBeNil)
		})
	})

	convey.Convey("A disk path is required unless in memory", t, func() {
		_, err := OpenBadger("", BadgerOptions{})
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestOpen(t *testing.T) {
	convey.Convey("Backends by name", t, func() {
		store, err := Open("json", filepath.Join(t.TempDir(), "c.json"))
		convey.So(err, convey.ShouldBeNil)
		convey.So(store, convey.ShouldHaveSameTypeAs, &JSONStore{})

		store, err = Open("none", "")
		convey.So(err, convey.ShouldBeNil)
		convey.So(store, convey.ShouldHaveSameTypeAs, Nop{})

		store, err = Open("badger", filepath.Join(t.TempDir(), "badger"))
		convey.So(err, convey.ShouldBeNil)
		convey.So(store.Close(), convey.ShouldBeNil)

		_, err = Open("redis", "")
		convey.So(errors.Is(err, ErrUnknownBackend), convey.ShouldBeTrue)
	})
}

func TestLoadOrBuild(t *testing.T) {
	convey.Convey("Load or build a dictionary", t, func() {
		ctx := context.Background()
		store := NewJSONStore(filepath.Join(t.TempDir(), "cedict_map.json"))

		builds := 0
		build := func() (*dictionary.Dictionary, error) {
			builds++
			return dictionary.New("你好", "中华人民"), nil
		}

		first, err := LoadOrBuild(ctx, store, build)
		convey.So(err, convey.ShouldBeNil)
		convey.So(builds, convey.ShouldEqual, 1)

		second, err := LoadOrBuild(ctx, store, build)
		convey.So(err, convey.ShouldBeNil)
		convey.So(builds, convey.ShouldEqual, 1)
		convey.So(second.Words(), convey.ShouldResemble, first.Words())

		convey.Convey("build errors are returned", func() {
			boom := errors.New("boom")
			_, err := LoadOrBuild(ctx, Nop{}, func() (*dictionary.Dictionary, error) {
				return nil, boom
			})
			convey.So(errors.Is(err, boom), convey.ShouldBeTrue)
		})

		convey.Convey("a cancelled context stops early", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := LoadOrBuild(cctx, store, build)
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})

		convey.Convey("a corrupt cache is rebuilt", func() {
			convey.So(os.WriteFile(store.Path(), []byte("not json"), 0o644), convey.ShouldBeNil)
			dict, err := LoadOrBuild(ctx, store, build)
			convey.So(err, convey.ShouldBeNil)
			convey.So(dict.Contains("你好"), convey.ShouldBeTrue)
			convey.So(builds, convey.ShouldEqual, 2)
		})
	})
}
