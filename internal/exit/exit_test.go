package exit

import (
	"bytes"
	"os"
	"testing"
)

func TestSuccess(t *testing.T) {
	message := "Operation completed successfully"
	result := Success(message)

	if result.ExitCode != 0 {
		t.Errorf("Success() ExitCode = %d, want 0", result.ExitCode)
	}

	if result.Message != message {
		t.Errorf("Success() Message = %q, want %q", result.Message, message)
	}

	if result.Output != os.Stdout {
		t.Error("Success() expected output to stdout")
	}
}

func TestError(t *testing.T) {
	message := "Operation failed"
	result := Error(message)

	if result.ExitCode != 1 {
		t.Errorf("Error() ExitCode = %d, want 1", result.ExitCode)
	}

	if result.Message != message {
		t.Errorf("Error() Message = %q, want %q", result.Message, message)
	}

	if result.Output != os.Stderr {
		t.Error("Error() expected output to stderr")
	}
}

func TestUsage(t *testing.T) {
	message := "run: --calls is required"
	result := Usage(message)

	if result.ExitCode != 2 {
		t.Errorf("Usage() ExitCode = %d, want 2", result.ExitCode)
	}

	if result.Message != message {
		t.Errorf("Usage() Message = %q, want %q", result.Message, message)
	}

	if result.Output != os.Stderr {
		t.Error("Usage() expected output to stderr")
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	result := &Result{
		Output:   &buf,
		ExitCode: 0,
		Message:  "test output",
	}

	result.Print()

	if buf.String() != "test output" {
		t.Errorf("Print() output = %q, want %q", buf.String(), "test output")
	}
}

func TestErrorf(t *testing.T) {
	result := Errorf("Operation failed: %s (code: %d)", "decode", 3)

	if result.ExitCode != 1 {
		t.Errorf("Errorf() ExitCode = %d, want 1", result.ExitCode)
	}

	expectedMessage := "Operation failed: decode (code: 3)"
	if result.Message != expectedMessage {
		t.Errorf("Errorf() Message = %q, want %q", result.Message, expectedMessage)
	}

	if result.Output != os.Stderr {
		t.Error("Errorf() expected output to stderr")
	}
}
