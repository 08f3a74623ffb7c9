package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/credo-scan/credo/internal/model"
)

func TestFingerprint_Deterministic(t *testing.T) {
	opts := model.Options{UseLLM: true, ModelName: "gpt-4o-mini", PromptVersion: "v1"}

	a := Fingerprint("The quick brown fox.", opts)
	b := Fingerprint("The quick brown fox.", opts)
	if a != b {
		t.Errorf("Same input produced different fingerprints: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "credo:v1:") {
		t.Errorf("Expected credo:v1: prefix, got %s", a)
	}
}

func TestFingerprint_SensitiveToOptions(t *testing.T) {
	text := "The quick brown fox."
	base := Fingerprint(text, model.Options{ModelName: "gpt-4o-mini", PromptVersion: "v1"})

	if got := Fingerprint(text, model.Options{ModelName: "gpt-4o", PromptVersion: "v1"}); got == base {
		t.Error("Model name change did not change the fingerprint")
	}
	if got := Fingerprint(text, model.Options{ModelName: "gpt-4o-mini", PromptVersion: "v2"}); got == base {
		t.Error("Prompt version change did not change the fingerprint")
	}
	if got := Fingerprint("A different text.", model.Options{ModelName: "gpt-4o-mini", PromptVersion: "v1"}); got == base {
		t.Error("Text change did not change the fingerprint")
	}
}

func TestFingerprint_WhitespaceNormalized(t *testing.T) {
	opts := model.Options{ModelName: "gpt-4o-mini", PromptVersion: "v1"}

	a := Fingerprint("Two  spaces\nand a newline.", opts)
	b := Fingerprint("Two spaces and a newline.", opts)
	if a != b {
		t.Error("Expected whitespace-normalized texts to share a fingerprint")
	}
}

func sampleResult() model.LLMResult {
	return model.LLMResult{
		Verdict:    model.VerdictDisputed,
		Confidence: 0.7,
		Claims: []model.ClaimCheck{
			{Text: "The moon is cheese.", Verdict: model.VerdictDisputed, Note: "no source"},
		},
		Provenance: model.ProvenanceLive,
		Model:      "gpt-4o-mini",
	}
}

func TestResultStore_RoundTrip(t *testing.T) {
	store := NewResultStore(NewDiskCache(t.TempDir()))
	fp := Fingerprint("round trip", model.Options{ModelName: "gpt-4o-mini"})

	want := sampleResult()
	if err := store.Put(fp, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, found := store.Get(fp)
	if !found {
		t.Fatal("Expected cache hit after Put")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Round trip mismatch:\nput: %+v\ngot: %+v", want, got)
	}
}

func TestResultStore_MissOnUnknownKey(t *testing.T) {
	store := NewResultStore(NewDiskCache(t.TempDir()))
	if _, found := store.Get("credo:v1:deadbeef"); found {
		t.Error("Expected miss for unknown fingerprint")
	}
}

func TestResultStore_OverwriteSameFingerprint(t *testing.T) {
	store := NewResultStore(NewDiskCache(t.TempDir()))
	fp := Fingerprint("overwrite", model.Options{})

	first := sampleResult()
	if err := store.Put(fp, first); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	second := first
	second.Verdict = model.VerdictSupported
	second.Claims = nil
	if err := store.Put(fp, second); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, found := store.Get(fp)
	if !found {
		t.Fatal("Expected hit after overwrite")
	}
	if got.Verdict != model.VerdictSupported {
		t.Errorf("Expected overwritten verdict, got %s", got.Verdict)
	}
}

func TestResultStore_CorruptedEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	disk := NewDiskCache(dir)
	store := NewResultStore(disk)
	fp := Fingerprint("corrupt", model.Options{})

	if err := store.Put(fp, sampleResult()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Corrupt the file on disk.
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Expected one cache file, err=%v", err)
	}
	path := filepath.Join(dir, entries[0].Name())
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	if _, found := store.Get(fp); found {
		t.Error("Expected corrupted entry to read as a miss")
	}
}

func TestDiskCache_ConcurrentWritersNoTornRead(t *testing.T) {
	disk := NewDiskCache(t.TempDir())
	key := "credo:v1:concurrent"

	payloads := [][]byte{
		[]byte(strings.Repeat("a", 4096)),
		[]byte(strings.Repeat("b", 4096)),
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = disk.Set(key, payloads[i%2])
		}(i)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			if data, found := disk.Get(key); found {
				if string(data) != string(payloads[0]) && string(data) != string(payloads[1]) {
					t.Error("Observed torn cache entry")
					return
				}
			}
		}
	}()

	wg.Wait()
	<-done

	data, found := disk.Get(key)
	if !found {
		t.Fatal("Expected entry after concurrent writes")
	}
	if string(data) != string(payloads[0]) && string(data) != string(payloads[1]) {
		t.Error("Final entry is torn")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer directly, then read through a fresh layered
	// cache: the first Get must hit disk and promote to memory.
	seed := NewDiskCache(dir)
	if err := seed.Set("k", []byte("v")); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir)
	val, found := layered.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Expected disk hit through layered cache, found=%v val=%q", found, val)
	}

	// Remove the disk file; the promoted memory entry must still serve.
	if err := seed.Delete("k"); err != nil {
		t.Fatalf("delete disk entry: %v", err)
	}
	if val, found := layered.Get("k"); !found || string(val) != "v" {
		t.Error("Expected promoted memory entry after disk removal")
	}
}
