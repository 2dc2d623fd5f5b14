package elm327

import (
	"context"
	"testing"
	"time"

	"github.com/obdkit/elm327/transport"
)

func TestParseAdapterLinesStripsPromptAndBlankLines(t *testing.T) {
	lines := parseAdapterLines([]byte("41 0C 0F A0\r\r>"))
	assertEqual(t, len(lines), 1)
	assertEqual(t, lines[0], "41 0C 0F A0")
}

func TestClassifyLinesNoData(t *testing.T) {
	lines, err := classifyLines([]string{"NO DATA"})
	assertSuccess(t, err)
	assertEqual(t, len(lines), 0)
}

func TestClassifyLinesSearching(t *testing.T) {
	lines, err := classifyLines([]string{"SEARCHING..."})
	assertSuccess(t, err)
	assertEqual(t, len(lines), 0)
}

func TestClassifyLinesInvalidResponse(t *testing.T) {
	_, err := classifyLines([]string{"?"})
	assert(t, err != nil, "expected an InvalidResponse error for a bare ?")

	_, err = classifyLines([]string{"UNABLE TO CONNECT"})
	assert(t, err != nil, "expected an InvalidResponse error for UNABLE TO CONNECT")
}

func TestClassifyLinesLinkError(t *testing.T) {
	_, err := classifyLines([]string{"STOPPED"})
	assert(t, err != nil, "expected a LinkError for STOPPED")

	_, err = classifyLines([]string{"CAN ERROR"})
	assert(t, err != nil, "expected a LinkError for CAN ERROR")
}

func TestClassifyLinesPassesThroughData(t *testing.T) {
	lines, err := classifyLines([]string{"41 0C 0F A0"})
	assertSuccess(t, err)
	assertEqual(t, len(lines), 1)
}

func TestLineSessionSendRoundTrip(t *testing.T) {
	mock := transport.NewMock()
	mock.Script("010C", "41 0C 0F A0")

	ctx := context.Background()
	if err := mock.Connect(ctx); err != nil {
		t.Fatalf("mock connect failed: %v", err)
	}

	cfg := DefaultConfig()
	session := NewLineSession(mock, cfg)

	lines, err := session.Send(ctx, "010C")
	assertSuccess(t, err)
	assertEqual(t, len(lines), 1)
	assertEqual(t, lines[0], "41 0C 0F A0")
}

func TestLineSessionSendAdapterBusy(t *testing.T) {
	mock := transport.NewMock()
	mock.Script("010C", "41 0C 0F A0")
	ctx := context.Background()
	mock.Connect(ctx)

	cfg := DefaultConfig()
	session := NewLineSession(mock, cfg)

	session.mu.Lock()
	_, err := session.Send(ctx, "010C")
	session.mu.Unlock()

	assert(t, err == ErrAdapterBusy, "expected ErrAdapterBusy while a command is already in flight")
}

func TestSleepOrCancelReturnsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepOrCancel(ctx, time.Second)
	assert(t, err != nil, "expected sleepOrCancel to return the context's error once cancelled")
}

func TestSleepOrCancelZeroDurationIsNoop(t *testing.T) {
	err := sleepOrCancel(context.Background(), 0)
	assertSuccess(t, err)
}
