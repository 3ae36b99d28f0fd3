package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"seqfetch/internal/accession"
	"seqfetch/internal/logging"
)

type fakeToolkit struct {
	mu          sync.Mutex
	fetchErr    map[accession.Run]error
	decodeErr   map[accession.Run]error
	fetchCalls  map[accession.Run]int
	decodeCalls map[accession.Run]int

	onFetch    func(run accession.Run, outDir string)
	onDecode   func(run accession.Run, outDir string)
	stepDelay  time.Duration
	inFlight   atomic.Int32
	maxFlight  atomic.Int32
	panicFetch map[accession.Run]bool
}

func newFakeToolkit() *fakeToolkit {
	return &fakeToolkit{
		fetchErr:    map[accession.Run]error{},
		decodeErr:   map[accession.Run]error{},
		fetchCalls:  map[accession.Run]int{},
		decodeCalls: map[accession.Run]int{},
		panicFetch:  map[accession.Run]bool{},
	}
}

func (f *fakeToolkit) Fetch(ctx context.Context, run accession.Run, outDir string) error {
	cur := f.inFlight.Add(1)
	for {
		max := f.maxFlight.Load()
		if cur <= max || f.maxFlight.CompareAndSwap(max, cur) {
			break
		}
	}
	f.mu.Lock()
	f.fetchCalls[run]++
	f.mu.Unlock()
	if f.panicFetch[run] {
		panic("fetch blew up")
	}
	if f.stepDelay > 0 {
		time.Sleep(f.stepDelay)
	}
	if f.onFetch != nil {
		f.onFetch(run, outDir)
	}
	if err := f.fetchErr[run]; err != nil {
		f.inFlight.Add(-1)
		return err
	}
	return nil
}

func (f *fakeToolkit) Decode(ctx context.Context, run accession.Run, outDir string, split bool) error {
	defer f.inFlight.Add(-1)
	f.mu.Lock()
	f.decodeCalls[run]++
	f.mu.Unlock()
	if f.stepDelay > 0 {
		time.Sleep(f.stepDelay)
	}
	if f.onDecode != nil {
		f.onDecode(run, outDir)
	}
	return f.decodeErr[run]
}

func (f *fakeToolkit) decodeCount(run accession.Run) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.decodeCalls[run]
}

func newTestDownloader(t *testing.T, tk Toolkit, workers int) (*Downloader, string) {
	t.Helper()
	out := t.TempDir()
	d, err := New(Config{OutputDir: out, Workers: workers}, tk, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, out
}

func TestNewValidation(t *testing.T) {
	tk := newFakeToolkit()
	if _, err := New(Config{OutputDir: "", Workers: 2}, tk, nil); err == nil {
		t.Fatal("expected error for empty output dir")
	}
	for _, workers := range []int{0, 17, -3} {
		if _, err := New(Config{OutputDir: t.TempDir(), Workers: workers}, tk, nil); err == nil {
			t.Fatalf("expected error for workers=%d", workers)
		}
	}
	if _, err := New(Config{OutputDir: t.TempDir(), Workers: 1}, nil, nil); err == nil {
		t.Fatal("expected error for nil toolkit")
	}
}

func TestDownloadOneEntryPerDistinctRun(t *testing.T) {
	tk := newFakeToolkit()
	for _, workers := range []int{1, 4, 16} {
		d, _ := newTestDownloader(t, tk, workers)
		runs := []accession.Run{"SRR1", "SRR2", "SRR1", "SRR3", "SRR2"}
		results := d.Download(context.Background(), runs, false)
		if len(results) != 3 {
			t.Fatalf("workers=%d: expected 3 entries, got %v", workers, results)
		}
		for _, run := range []accession.Run{"SRR1", "SRR2", "SRR3"} {
			ok, present := results[run]
			if !present || !ok {
				t.Fatalf("workers=%d: expected %s succeeded, got %v", workers, run, results)
			}
		}
	}
}

func TestFetchFailureSkipsDecode(t *testing.T) {
	tk := newFakeToolkit()
	tk.fetchErr["SRR2"] = errors.New("network down")
	d, _ := newTestDownloader(t, tk, 2)

	results := d.Download(context.Background(), []accession.Run{"SRR1", "SRR2"}, false)
	if !results["SRR1"] || results["SRR2"] {
		t.Fatalf("unexpected outcomes %v", results)
	}
	if tk.decodeCount("SRR2") != 0 {
		t.Fatal("decode must never run after fetch exhaustion")
	}
}

func TestDecodeFailureYieldsFalse(t *testing.T) {
	tk := newFakeToolkit()
	tk.decodeErr["SRR1"] = errors.New("corrupt archive")
	d, _ := newTestDownloader(t, tk, 1)

	results := d.Download(context.Background(), []accession.Run{"SRR1"}, true)
	if results["SRR1"] {
		t.Fatal("fetch success alone must not yield a true outcome")
	}
}

func TestCleanupRemovesArtifact(t *testing.T) {
	tk := newFakeToolkit()
	tk.onFetch = func(run accession.Run, outDir string) {
		dir := filepath.Join(outDir, string(run))
		_ = os.MkdirAll(dir, 0o755)
		_ = os.WriteFile(filepath.Join(dir, string(run)+".sra"), []byte("sra"), 0o644)
	}
	tk.onDecode = func(run accession.Run, outDir string) {
		_ = os.WriteFile(filepath.Join(outDir, string(run)+".fastq"), []byte("@read"), 0o644)
	}
	d, out := newTestDownloader(t, tk, 1)

	results := d.Download(context.Background(), []accession.Run{"SRR5"}, false)
	if !results["SRR5"] {
		t.Fatalf("expected success, got %v", results)
	}
	if _, err := os.Stat(filepath.Join(out, "SRR5", "SRR5.sra")); !os.IsNotExist(err) {
		t.Fatal("intermediate artifact should be removed")
	}
	if _, err := os.Stat(filepath.Join(out, "SRR5")); !os.IsNotExist(err) {
		t.Fatal("empty run directory should be removed")
	}
	if _, err := os.Stat(filepath.Join(out, "SRR5.fastq")); err != nil {
		t.Fatalf("decoded output must survive cleanup: %v", err)
	}
}

func TestKeepSRASkipsCleanup(t *testing.T) {
	tk := newFakeToolkit()
	tk.onFetch = func(run accession.Run, outDir string) {
		dir := filepath.Join(outDir, string(run))
		_ = os.MkdirAll(dir, 0o755)
		_ = os.WriteFile(filepath.Join(dir, string(run)+".sra"), []byte("sra"), 0o644)
	}
	out := t.TempDir()
	d, err := New(Config{OutputDir: out, Workers: 1, KeepSRA: true}, tk, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	results := d.Download(context.Background(), []accession.Run{"SRR5"}, false)
	if !results["SRR5"] {
		t.Fatalf("expected success, got %v", results)
	}
	if _, err := os.Stat(filepath.Join(out, "SRR5", "SRR5.sra")); err != nil {
		t.Fatalf("archive should survive with KeepSRA: %v", err)
	}
}

func TestCleanupFailureDoesNotFlipOutcome(t *testing.T) {
	tk := newFakeToolkit()
	tk.onFetch = func(run accession.Run, outDir string) {
		// A directory where the artifact file is expected makes os.Remove
		// fail without aborting the pipeline.
		_ = os.MkdirAll(filepath.Join(outDir, string(run), string(run)+".sra", "nested"), 0o755)
	}
	d, _ := newTestDownloader(t, tk, 1)

	results := d.Download(context.Background(), []accession.Run{"SRR6"}, false)
	if !results["SRR6"] {
		t.Fatal("cleanup failure must not change a true outcome to false")
	}
}

func TestPipelinePanicIsAbsorbed(t *testing.T) {
	tk := newFakeToolkit()
	tk.panicFetch["SRR2"] = true
	d, _ := newTestDownloader(t, tk, 2)

	results := d.Download(context.Background(), []accession.Run{"SRR1", "SRR2", "SRR3"}, false)
	if len(results) != 3 {
		t.Fatalf("expected 3 entries, got %v", results)
	}
	if results["SRR2"] {
		t.Fatal("panicking pipeline must record a false outcome")
	}
	if !results["SRR1"] || !results["SRR3"] {
		t.Fatalf("sibling pipelines must be unaffected: %v", results)
	}
}

func TestConcurrencyBoundRespected(t *testing.T) {
	tk := newFakeToolkit()
	tk.stepDelay = 10 * time.Millisecond
	const workers = 3
	d, _ := newTestDownloader(t, tk, workers)

	runs := make([]accession.Run, 0, 12)
	for i := 1; i <= 12; i++ {
		runs = append(runs, accession.Run(fmt.Sprintf("SRR%d", i)))
	}

	results := d.Download(context.Background(), runs, false)
	if len(results) != len(runs) {
		t.Fatalf("expected %d entries, got %d", len(runs), len(results))
	}
	if max := tk.maxFlight.Load(); max > workers {
		t.Fatalf("observed %d concurrent pipelines with %d workers", max, workers)
	}
}

func TestCancellationReturnsPartialResults(t *testing.T) {
	tk := newFakeToolkit()
	tk.stepDelay = 50 * time.Millisecond
	d, _ := newTestDownloader(t, tk, 1)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	results := d.Download(ctx, []accession.Run{"SRR1", "SRR2", "SRR3"}, false)
	if len(results) == 0 {
		t.Fatal("in-flight work must complete and be reported")
	}
	if len(results) == 3 {
		t.Fatal("cancellation should stop submission of remaining work")
	}
	if !results["SRR1"] {
		t.Fatalf("first run should finish naturally, got %v", results)
	}
}

func TestInterruptedRunOmittedFromResults(t *testing.T) {
	tk := newFakeToolkit()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tk.fetchErr["SRR2"] = context.Canceled
	tk.fetchErr["SRR3"] = context.Canceled
	tk.onFetch = func(run accession.Run, _ string) {
		if run == "SRR2" {
			cancel()
		}
	}
	d, _ := newTestDownloader(t, tk, 1)

	results := d.Download(ctx, []accession.Run{"SRR1", "SRR2", "SRR3"}, false)
	if !results["SRR1"] {
		t.Fatalf("run finished before cancellation must be reported, got %v", results)
	}
	if _, present := results["SRR2"]; present {
		t.Fatalf("run stopped by cancellation must be omitted, not failed: %v", results)
	}
	if _, present := results["SRR3"]; present {
		t.Fatalf("run stopped by cancellation must be omitted, not failed: %v", results)
	}
}

func TestDownloadEmptyInput(t *testing.T) {
	d, _ := newTestDownloader(t, newFakeToolkit(), 4)
	results := d.Download(context.Background(), nil, false)
	if len(results) != 0 {
		t.Fatalf("expected empty map, got %v", results)
	}
}
