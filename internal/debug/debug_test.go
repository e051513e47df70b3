package debug

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func saveAndRestoreState() func() {
	wasEnabled := Enabled()
	prevOutput := writer()
	return func() {
		SetEnabled(wasEnabled)
		SetOutput(prevOutput)
	}
}

func TestEnabled(t *testing.T) {
	defer saveAndRestoreState()()

	SetEnabled(false)
	assert.False(t, Enabled())

	SetEnabled(true)
	assert.True(t, Enabled())
}

func TestLog(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(true)

	Log("TEST", "hello %s", "world")

	output := buf.String()
	assert.Contains(t, output, "[DEBUG:TEST]")
	assert.Contains(t, output, "hello world")
}

func TestLogDisabled(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(false)

	Log("TEST", "should not appear")

	assert.Empty(t, buf.String())
}

func TestLogHelpers(t *testing.T) {
	defer saveAndRestoreState()()

	SetEnabled(true)

	tests := []struct {
		name    string
		logFunc func(string, ...interface{})
		prefix  string
	}{
		{"LogLayer0", LogLayer0, "[DEBUG:layer0]"},
		{"LogLayer1", LogLayer1, "[DEBUG:layer1]"},
		{"LogLayer2", LogLayer2, "[DEBUG:layer2]"},
		{"LogLayer3", LogLayer3, "[DEBUG:layer3]"},
		{"LogQuality", LogQuality, "[DEBUG:quality]"},
		{"LogOrchestrator", LogOrchestrator, "[DEBUG:orchestrator]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetOutput(&buf)

			tt.logFunc("block %d rejected", 42)

			output := buf.String()
			assert.Contains(t, output, tt.prefix)
			assert.Contains(t, output, "block 42 rejected")
		})
	}
}

func TestNoOutputWithNilWriter(t *testing.T) {
	defer saveAndRestoreState()()

	SetOutput(nil)
	SetEnabled(true)

	// Must not panic when no writer is configured.
	Log("TEST", "test %s", "message")
}

func TestConcurrentLogging(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			LogLayer0("message from goroutine %d", id)
			LogLayer2("message from goroutine %d", id)
		}(i)
	}
	wg.Wait()
}
