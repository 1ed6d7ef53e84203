package memory

import (
	"strconv"
	"sync"
	"testing"

	"github.com/yndnr/redikv/internal/command"
	"github.com/yndnr/redikv/internal/resp"
	"github.com/yndnr/redikv/pkg/cmap"
)

var _ command.Backend = (*Backend)(nil)

func TestBackend_SetGet(t *testing.T) {
	b := New()

	if _, ok := b.Get("missing"); ok {
		t.Fatal("Get(missing) found a value in an empty backend")
	}

	b.Set("k", resp.BulkString("v1"))
	b.Set("k", resp.BulkString("v2"))

	got, ok := b.Get("k")
	if !ok {
		t.Fatal("Get(k) not found after Set")
	}
	if !got.Equal(resp.BulkString("v2")) {
		t.Errorf("Get(k) = %v, want \"v2\"", got)
	}
}

func TestBackend_Hash(t *testing.T) {
	b := New()

	if _, ok := b.HGetAll("user:1"); ok {
		t.Fatal("HGetAll on a missing hash reported ok")
	}
	if _, ok := b.HGet("user:1", "name"); ok {
		t.Fatal("HGet on a missing hash reported ok")
	}

	b.HSet("user:1", "name", resp.BulkString("ada"))
	b.HSet("user:1", "lang", resp.BulkString("go"))
	b.HSet("user:1", "name", resp.BulkString("grace"))

	got, ok := b.HGet("user:1", "name")
	if !ok || !got.Equal(resp.BulkString("grace")) {
		t.Errorf("HGet(name) = (%v, %v), want (\"grace\", true)", got, ok)
	}
	if _, ok := b.HGet("user:1", "age"); ok {
		t.Error("HGet(age) found a field that was never set")
	}

	all, ok := b.HGetAll("user:1")
	if !ok {
		t.Fatal("HGetAll(user:1) not found")
	}
	want := map[string]resp.Frame{
		"name": resp.BulkString("grace"),
		"lang": resp.BulkString("go"),
	}
	if !resp.Map(all).Equal(resp.Map(want)) {
		t.Errorf("HGetAll = %v, want %v", all, want)
	}
}

func TestBackend_KeysAndHashesAreSeparate(t *testing.T) {
	b := New()
	b.Set("k", resp.BulkString("plain"))
	b.HSet("k", "f", resp.BulkString("field"))

	if v, _ := b.Get("k"); !v.Equal(resp.BulkString("plain")) {
		t.Errorf("Get(k) = %v after HSet on same key", v)
	}
	if v, _ := b.HGet("k", "f"); !v.Equal(resp.BulkString("field")) {
		t.Errorf("HGet(k, f) = %v", v)
	}
}

func TestBackend_HGetAllReturnsCopy(t *testing.T) {
	b := New()
	b.HSet("h", "a", resp.BulkString("1"))

	all, _ := b.HGetAll("h")
	all["b"] = resp.BulkString("2")
	delete(all, "a")

	if _, ok := b.HGet("h", "a"); !ok {
		t.Error("deleting from the HGetAll result removed the stored field")
	}
	if _, ok := b.HGet("h", "b"); ok {
		t.Error("writing to the HGetAll result added a stored field")
	}
}

func TestBackend_Options(t *testing.T) {
	b := New(WithShardCount(8), WithHashShardCount(3))
	if got := b.values.ShardCount(); got != 8 {
		t.Errorf("value shards = %d, want 8", got)
	}
	if b.hashShards != DefaultHashShardCount {
		t.Errorf("hash shards = %d, want default %d for invalid input", b.hashShards, DefaultHashShardCount)
	}
}

func TestBackend_Stats(t *testing.T) {
	b := New()
	b.Set("a", resp.BulkString("1"))
	b.Set("b", resp.BulkString("2"))
	b.HSet("h1", "f1", resp.BulkString("x"))
	b.HSet("h1", "f2", resp.BulkString("y"))
	b.HSet("h2", "f1", resp.BulkString("z"))

	got := b.Stats()
	if got.Keys != 2 || got.Hashes != 2 || got.Fields != 3 {
		t.Errorf("Stats() = %+v, want keys=2 hashes=2 fields=3", got)
	}
	if got.Shards != cmap.DefaultShardCount {
		t.Errorf("Shards = %d, want %d", got.Shards, cmap.DefaultShardCount)
	}
	if got.MaxShardKeys < 1 || got.MaxShardKeys > 2 {
		t.Errorf("MaxShardKeys = %d, want 1 or 2", got.MaxShardKeys)
	}
}

func TestBackend_StatsShardBalance(t *testing.T) {
	b := New(WithShardCount(4))
	for i := 0; i < 1000; i++ {
		b.Set("key:"+strconv.Itoa(i), resp.BulkString("v"))
	}

	got := b.Stats()
	if got.Shards != 4 || got.Keys != 1000 {
		t.Fatalf("Stats() = %+v, want 4 shards and 1000 keys", got)
	}
	if got.MaxShardKeys < 250 || got.MaxShardKeys >= 1000 {
		t.Errorf("MaxShardKeys = %d, want between 250 and 999", got.MaxShardKeys)
	}
}

func TestBackend_ConcurrentDisjointKeys(t *testing.T) {
	b := New()
	const workers = 32
	const perWorker = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := "k:" + strconv.Itoa(w) + ":" + strconv.Itoa(i)
				val := resp.BulkString(key)
				b.Set(key, val)
				got, ok := b.Get(key)
				if !ok || !got.Equal(val) {
					t.Errorf("Get(%s) = (%v, %v)", key, got, ok)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if got := b.Stats().Keys; got != workers*perWorker {
		t.Errorf("Keys = %d, want %d", got, workers*perWorker)
	}
}

func TestBackend_ConcurrentHSetSameKey(t *testing.T) {
	b := New()
	const workers = 16

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			b.HSet("shared", "f"+strconv.Itoa(w), resp.Integer(int64(w)))
		}(w)
	}
	wg.Wait()

	all, ok := b.HGetAll("shared")
	if !ok {
		t.Fatal("hash was not created")
	}
	if len(all) != workers {
		t.Errorf("len(HGetAll) = %d, want %d (fields lost on concurrent create)", len(all), workers)
	}
}
