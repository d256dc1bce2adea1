package stats

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	c "github.com/laiambryant/gotestutils/ctesting"

	"github.com/laiambryant/scoped-reader/reader"
	s "github.com/laiambryant/scoped-reader/structs"
)

type StatsSnapshot struct {
	Completed    int
	NotFound     int
	AccessDenied int
	IOFailure    int
}

func snapshot(rs *ReadStats) StatsSnapshot {
	completed, notFound, accessDenied, ioFailure := rs.Snapshot()
	return StatsSnapshot{
		Completed:    completed,
		NotFound:     notFound,
		AccessDenied: accessDenied,
		IOFailure:    ioFailure,
	}
}

func TestRecordFailure(t *testing.T) {
	test1 := c.NewCharacterizationTest(
		StatsSnapshot{NotFound: 1},
		nil,
		func() (StatsSnapshot, error) {
			rs := &ReadStats{}
			rs.RecordFailure(s.NotFound)
			return snapshot(rs), nil
		},
	)
	test2 := c.NewCharacterizationTest(
		StatsSnapshot{AccessDenied: 1},
		nil,
		func() (StatsSnapshot, error) {
			rs := &ReadStats{}
			rs.RecordFailure(s.AccessDenied)
			return snapshot(rs), nil
		},
	)
	test3 := c.NewCharacterizationTest(
		StatsSnapshot{IOFailure: 1},
		nil,
		func() (StatsSnapshot, error) {
			rs := &ReadStats{}
			rs.RecordFailure(s.IOFailure)
			return snapshot(rs), nil
		},
	)
	test4 := c.NewCharacterizationTest(
		StatsSnapshot{IOFailure: 1},
		nil,
		func() (StatsSnapshot, error) {
			rs := &ReadStats{}
			rs.RecordFailure(s.ErrorKind(42))
			return snapshot(rs), nil
		},
	)
	tests := []c.CharacterizationTest[StatsSnapshot]{test1, test2, test3, test4}
	c.VerifyCharacterizationTestsAndResults(t, tests, false)
}

func TestRecordOutcome(t *testing.T) {
	test := c.NewCharacterizationTest(
		StatsSnapshot{Completed: 2, NotFound: 1, IOFailure: 1},
		nil,
		func() (StatsSnapshot, error) {
			rs := &ReadStats{}
			rs.RecordOutcome(reader.ReadOutcome{FilePath: "a.txt", Content: "a"})
			rs.RecordOutcome(reader.ReadOutcome{FilePath: "a.txt", Content: "a"})
			rs.RecordOutcome(reader.ReadOutcome{FilePath: "b.txt", Err: &reader.FileError{Kind: s.NotFound, FilePath: "b.txt"}})
			rs.RecordOutcome(reader.ReadOutcome{FilePath: "", Err: &reader.FileError{Kind: s.IOFailure}})
			return snapshot(rs), nil
		},
	)
	tests := []c.CharacterizationTest[StatsSnapshot]{test}
	c.VerifyCharacterizationTestsAndResults(t, tests, false)
}

func TestTotalAndFailed(t *testing.T) {
	rs := &ReadStats{}
	rs.RecordCompleted()
	rs.RecordFailure(s.NotFound)
	rs.RecordFailure(s.AccessDenied)
	if rs.Total() != 3 {
		t.Errorf("Expected total 3, got %d", rs.Total())
	}
	if rs.Failed() != 2 {
		t.Errorf("Expected 2 failures, got %d", rs.Failed())
	}
}

func TestConcurrentRecord(t *testing.T) {
	iterations := 100
	test := c.NewCharacterizationTest(
		StatsSnapshot{Completed: iterations, NotFound: iterations, AccessDenied: iterations, IOFailure: iterations},
		nil,
		func() (StatsSnapshot, error) {
			rs := &ReadStats{}
			var wg sync.WaitGroup
			for i := 0; i < iterations; i++ {
				wg.Add(4)
				go func() {
					defer wg.Done()
					rs.RecordCompleted()
				}()
				go func() {
					defer wg.Done()
					rs.RecordFailure(s.NotFound)
				}()
				go func() {
					defer wg.Done()
					rs.RecordFailure(s.AccessDenied)
				}()
				go func() {
					defer wg.Done()
					rs.RecordFailure(s.IOFailure)
				}()
			}
			wg.Wait()
			return snapshot(rs), nil
		},
	)
	tests := []c.CharacterizationTest[StatsSnapshot]{test}
	c.VerifyCharacterizationTestsAndResults(t, tests, false)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))
	original := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(original)

	rs := &ReadStats{}
	rs.RecordCompleted()
	rs.RecordCompleted()
	rs.RecordFailure(s.NotFound)
	rs.PrintSummary()

	output := buf.String()
	for _, expected := range []string{"File Read Summary", "Completed", "NotFound", "completed=2", "failed=1"} {
		if !bytes.Contains([]byte(output), []byte(expected)) {
			t.Errorf("Expected output to contain %q, got:\n%s", expected, output)
		}
	}
	if bytes.Contains([]byte(output), []byte("AccessDenied")) {
		t.Errorf("Expected zero counters to be omitted, got:\n%s", output)
	}
}

func TestPrintSummaryWithZeroStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))
	original := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(original)

	rs := &ReadStats{}
	rs.PrintSummary()

	output := buf.String()
	if !bytes.Contains([]byte(output), []byte("Total")) {
		t.Errorf("Expected output to contain 'Total', got:\n%s", output)
	}
	if !bytes.Contains([]byte(output), []byte("completed=0")) {
		t.Errorf("Expected output to contain 'completed=0', got:\n%s", output)
	}
}
