package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"mkvdefaulter/internal/logging"
	"mkvdefaulter/internal/mkvpropedit"
	"mkvdefaulter/internal/services"
	"mkvdefaulter/internal/tracks"
)

type fakeProber struct {
	inventories map[string]tracks.Inventory
	errs        map[string]error
}

func (f *fakeProber) Probe(ctx context.Context, path string) (tracks.Inventory, error) {
	if err, ok := f.errs[path]; ok {
		return tracks.Inventory{}, err
	}
	inv, ok := f.inventories[path]
	if !ok {
		return tracks.Inventory{}, services.Wrap(services.ErrProbe, "probe", "identify", "unknown fixture", nil)
	}
	inv.Path = path
	return inv, nil
}

type applyCall struct {
	path        string
	transitions []tracks.Transition
	dryRun      bool
}

type fakeApplier struct {
	mu    sync.Mutex
	calls []applyCall
	errs  map[string]error
}

func (f *fakeApplier) Apply(ctx context.Context, path string, transitions []tracks.Transition, dryRun bool) (mkvpropedit.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, applyCall{path: path, transitions: transitions, dryRun: dryRun})
	f.mu.Unlock()
	if err, ok := f.errs[path]; ok {
		return mkvpropedit.Result{}, err
	}
	return mkvpropedit.Result{DryRun: dryRun, Count: len(transitions), Changed: !dryRun}, nil
}

func (f *fakeApplier) mutatingCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if !c.dryRun {
			n++
		}
	}
	return n
}

func track(kind tracks.Kind, id int, lang string, def bool) tracks.Track {
	return tracks.Track{ID: id, Kind: kind, Language: lang, Default: def, Enabled: true}
}

func libraryFixture() (*fakeProber, []string) {
	needsChange := tracks.Inventory{Tracks: []tracks.Track{
		track(tracks.KindAudio, 0, "eng", true),
		track(tracks.KindAudio, 1, "jpn", false),
		track(tracks.KindSubtitles, 0, "eng", false),
	}}
	alreadyDone := tracks.Inventory{Tracks: []tracks.Track{
		track(tracks.KindAudio, 0, "jpn", true),
		track(tracks.KindSubtitles, 0, "eng", true),
	}}
	noJapanese := tracks.Inventory{Tracks: []tracks.Track{
		track(tracks.KindAudio, 0, "eng", true),
		track(tracks.KindSubtitles, 0, "eng", false),
	}}
	videoOnly := tracks.Inventory{}

	prober := &fakeProber{
		inventories: map[string]tracks.Inventory{
			"/lib/a.mkv": needsChange,
			"/lib/b.mkv": alreadyDone,
			"/lib/c.mkv": noJapanese,
			"/lib/d.mkv": needsChange,
			"/lib/e.mkv": videoOnly,
		},
		errs: map[string]error{
			"/lib/broken.mkv": services.Wrap(services.ErrProbe, "probe", "mkvmerge -J", "", errors.New("exit status 2")),
		},
	}
	paths := []string{"/lib/d.mkv", "/lib/c.mkv", "/lib/broken.mkv", "/lib/b.mkv", "/lib/a.mkv", "/lib/e.mkv", "/lib/clip.mp4"}
	return prober, paths
}

func TestRunClassifiesOutcomes(t *testing.T) {
	prober, paths := libraryFixture()
	applier := &fakeApplier{}
	var seen int
	p := &Processor{
		Prober:    prober,
		Applier:   applier,
		Selection: tracks.Selection{Audio: "jpn", Subtitle: "eng"},
		Method:    tracks.MethodStrict,
		Workers:   3,
		OnResult:  func(FileResult) { seen++ },
	}

	rep := p.Run(context.Background(), paths)

	if seen != len(paths) {
		t.Fatalf("OnResult called %d times, want %d", seen, len(paths))
	}
	want := map[string]Outcome{
		"/lib/a.mkv":      OutcomeChanged,
		"/lib/b.mkv":      OutcomeUnchanged,
		"/lib/broken.mkv": OutcomeError,
		"/lib/c.mkv":      OutcomeSkipped,
		"/lib/clip.mp4":   OutcomeInvalid,
		"/lib/d.mkv":      OutcomeChanged,
		"/lib/e.mkv":      OutcomeError,
	}
	if len(rep.Files) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(rep.Files))
	}
	for i, res := range rep.Files {
		if i > 0 && rep.Files[i-1].Path >= res.Path {
			t.Fatalf("results not sorted by path: %q before %q", rep.Files[i-1].Path, res.Path)
		}
		if res.Outcome != want[res.Path] {
			t.Fatalf("%s outcome = %s, want %s (reason %q)", res.Path, res.Outcome, want[res.Path], res.Reason)
		}
	}
	if !rep.HasErrors() {
		t.Fatalf("expected HasErrors")
	}
	if rep.Count(OutcomeChanged) != 2 || rep.Count(OutcomeError) != 2 {
		t.Fatalf("unexpected counts %v", rep.Counts)
	}
	if rep.Extensions[".mkv"] != 6 || rep.Extensions[".mp4"] != 1 {
		t.Fatalf("unexpected extension counts %v", rep.Extensions)
	}
	if got := len(rep.Problems()); got != 4 {
		t.Fatalf("expected 4 problem files, got %d", got)
	}
	if applier.mutatingCalls() != 2 {
		t.Fatalf("expected 2 applier calls, got %d", applier.mutatingCalls())
	}
}

func TestRunRecordsStages(t *testing.T) {
	prober, paths := libraryFixture()
	rep := (&Processor{
		Prober:    prober,
		Applier:   &fakeApplier{},
		Selection: tracks.Selection{Audio: "jpn", Subtitle: "eng"},
		Method:    tracks.MethodStrict,
	}).Run(context.Background(), paths)

	byPath := map[string]FileResult{}
	for _, res := range rep.Files {
		byPath[res.Path] = res
	}
	if res := byPath["/lib/broken.mkv"]; res.Stage != StageProbe || !errors.Is(res.Err, services.ErrProbe) {
		t.Fatalf("broken: stage=%q err=%v", res.Stage, res.Err)
	}
	if res := byPath["/lib/e.mkv"]; res.Stage != StageResolve || !errors.Is(res.Err, tracks.ErrEmptyInventory) {
		t.Fatalf("empty: stage=%q err=%v", res.Stage, res.Err)
	}
	if res := byPath["/lib/c.mkv"]; res.Reason != `audio language "jpn" (Japanese) not found` {
		t.Fatalf("skip reason = %q", res.Reason)
	}
	if res := byPath["/lib/clip.mp4"]; res.Stage != StageFilter {
		t.Fatalf("invalid stage = %q", res.Stage)
	}
}

func TestRunLogsTrackLabels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	prober, _ := libraryFixture()
	(&Processor{
		Prober:    prober,
		Applier:   &fakeApplier{},
		Selection: tracks.Selection{Audio: "jpn", Subtitle: "eng"},
		Method:    tracks.MethodStrict,
		Logger:    logger,
	}).Run(context.Background(), []string{"/lib/a.mkv"})

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("decode json line: %v", err)
		}
		if record["msg"] != "tracks probed" {
			continue
		}
		if want := "audio #0 | eng; audio #1 | jpn; subtitles #0 | eng"; record["tracks"] != want {
			t.Fatalf("tracks = %v, want %q", record["tracks"], want)
		}
		return
	}
	t.Fatalf("expected a track inventory record in %s", buf.String())
}

func TestRunDryRunMatchesRealRun(t *testing.T) {
	prober, paths := libraryFixture()
	sel := tracks.Selection{Audio: "jpn", Subtitle: "eng"}

	dryApplier := &fakeApplier{}
	dry := (&Processor{Prober: prober, Applier: dryApplier, Selection: sel, Method: tracks.MethodLazy, DryRun: true, Workers: 4}).Run(context.Background(), paths)
	if dryApplier.mutatingCalls() != 0 {
		t.Fatalf("dry run invoked the mutating path %d times", dryApplier.mutatingCalls())
	}
	if dry.Count(OutcomeChanged) != 0 {
		t.Fatalf("dry run reported real changes: %v", dry.Counts)
	}

	realApplier := &fakeApplier{}
	real := (&Processor{Prober: prober, Applier: realApplier, Selection: sel, Method: tracks.MethodLazy, Workers: 4}).Run(context.Background(), paths)
	if dry.Count(OutcomeWouldChange) != real.Count(OutcomeChanged) {
		t.Fatalf("would change %d != changed %d", dry.Count(OutcomeWouldChange), real.Count(OutcomeChanged))
	}
	if real.Count(OutcomeWouldChange) != 0 {
		t.Fatalf("real run reported would_change: %v", real.Counts)
	}
	if !dry.DryRun || real.DryRun {
		t.Fatalf("report dry-run flags wrong: dry=%v real=%v", dry.DryRun, real.DryRun)
	}
}

func TestRunApplyFailureDoesNotAbortBatch(t *testing.T) {
	prober, paths := libraryFixture()
	applier := &fakeApplier{errs: map[string]error{
		"/lib/a.mkv": services.Wrap(services.ErrApply, "apply", "mkvpropedit", "", errors.New("exit status 2")),
	}}
	rep := (&Processor{
		Prober:    prober,
		Applier:   applier,
		Selection: tracks.Selection{Audio: "jpn", Subtitle: "eng"},
		Method:    tracks.MethodStrict,
		Workers:   2,
	}).Run(context.Background(), paths)

	for _, res := range rep.Files {
		switch res.Path {
		case "/lib/a.mkv":
			if res.Outcome != OutcomeError || res.Stage != StageApply || !errors.Is(res.Err, services.ErrApply) {
				t.Fatalf("a.mkv: %+v", res)
			}
		case "/lib/d.mkv":
			if res.Outcome != OutcomeChanged {
				t.Fatalf("d.mkv should still change, got %s", res.Outcome)
			}
		}
	}
}

type blockingProber struct {
	started chan struct{}
	release chan struct{}
	inv     tracks.Inventory
	sawDone bool
	once    sync.Once
}

func (b *blockingProber) Probe(ctx context.Context, path string) (tracks.Inventory, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	if ctx.Err() != nil {
		b.sawDone = true
	}
	inv := b.inv
	inv.Path = path
	return inv, nil
}

func TestRunCancellationStopsScheduling(t *testing.T) {
	prober := &blockingProber{
		started: make(chan struct{}),
		release: make(chan struct{}),
		inv: tracks.Inventory{Tracks: []tracks.Track{
			track(tracks.KindAudio, 0, "eng", false),
		}},
	}
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = fmt.Sprintf("/lib/%02d.mkv", i)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan Report, 1)
	go func() {
		done <- (&Processor{
			Prober:    prober,
			Applier:   &fakeApplier{},
			Selection: tracks.Selection{Audio: "eng"},
			Workers:   1,
			Method:    tracks.MethodStrict,
		}).Run(ctx, paths)
	}()

	<-prober.started
	cancel()
	close(prober.release)
	rep := <-done

	if prober.sawDone {
		t.Fatalf("in-flight probe observed cancellation")
	}
	if rep.Files[0].Outcome != OutcomeChanged {
		t.Fatalf("in-flight file should finish, got %s", rep.Files[0].Outcome)
	}
	if rep.Count(OutcomeCancelled) < 3 {
		t.Fatalf("expected remaining files cancelled, got counts %v", rep.Counts)
	}
	if rep.Total() != len(paths) {
		t.Fatalf("expected one result per file, got %d", rep.Total())
	}
}

func TestRunEmptyInput(t *testing.T) {
	rep := (&Processor{Prober: &fakeProber{}, Applier: &fakeApplier{}, Selection: tracks.Selection{Audio: "eng"}}).Run(context.Background(), nil)
	if rep.Total() != 0 || rep.HasErrors() {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestIsMatroska(t *testing.T) {
	for path, want := range map[string]bool{
		"a.mkv": true, "b.MKA": true, "c.mks": true, "d.mk3d": true,
		"e.mp4": false, "f": false,
	} {
		if got := IsMatroska(path); got != want {
			t.Fatalf("IsMatroska(%q) = %v, want %v", path, got, want)
		}
	}
}
