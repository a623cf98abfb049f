// Package testutil holds helpers shared by tests.
package testutil

import (
	"bytes"
	"os"
)

// CaptureStdout runs fn with os.Stdout redirected to a pipe and returns
// what fn printed. The pipe is drained concurrently so large output does
// not block fn.
func CaptureStdout(fn func()) string {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return ""
	}
	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	os.Stdout = w
	defer func() { os.Stdout = orig }()
	fn()
	_ = w.Close()
	return <-done
}
