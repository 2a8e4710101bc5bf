package main

import (
	"bytes"
	"testing"
)

func TestRun_PrintsSingleResultLine(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf); err != nil { t.Fatalf("run: %v", err) }
	if got := buf.String(); got != "RESULT:78498\n" { t.Fatalf("output=%q", got) }
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errString("closed") }

type errString string

func (e errString) Error() string { return string(e) }

func TestRun_WriteErrorPropagates(t *testing.T) {
	if err := run(errWriter{}); err == nil { t.Fatalf("expected write error") }
}
