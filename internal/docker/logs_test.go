package docker

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func frame(stream byte, payload string) []byte {
	header := make([]byte, 8)
	header[0] = stream
	binary.BigEndian.PutUint32(header[4:], uint32(len(payload)))
	return append(header, payload...)
}

func TestSplitLogs(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(frame(1, "header\n"))
	stream.Write(frame(2, "warning: slow\n"))
	stream.Write(frame(1, "poses_1.dat\n"))

	var stderr bytes.Buffer
	stdout, err := splitLogs(&stream, &stderr)
	if err != nil {
		t.Fatalf("splitLogs: %v", err)
	}
	if got := string(stdout); got != "header\nposes_1.dat\n" {
		t.Errorf("stdout: got %q", got)
	}
	if got := stderr.String(); got != "warning: slow\n" {
		t.Errorf("stderr: got %q", got)
	}
}

func TestSplitLogsTruncatedHeader(t *testing.T) {
	data := append(frame(1, "complete\n"), 1, 0, 0)
	var stderr bytes.Buffer
	stdout, err := splitLogs(bytes.NewReader(data), &stderr)
	if err != nil {
		t.Fatalf("splitLogs: %v", err)
	}
	if got := string(stdout); got != "complete\n" {
		t.Errorf("stdout: got %q", got)
	}
}

func TestSplitLogsUnknownStream(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := splitLogs(bytes.NewReader(frame(9, "x")), &stderr); err == nil {
		t.Error("expected error for unknown stream id")
	}
}

func TestSplitLogsEmpty(t *testing.T) {
	var stderr bytes.Buffer
	stdout, err := splitLogs(bytes.NewReader(nil), &stderr)
	if err != nil {
		t.Fatalf("splitLogs: %v", err)
	}
	if len(stdout) != 0 {
		t.Errorf("stdout: got %q", stdout)
	}
}
