package batch

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFileErrorClassification(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("wrapped: %w", &FileError{Kind: KindUnwritableTarget, Path: "/x.srt", Err: cause})

	if KindOf(err) != KindUnwritableTarget {
		t.Fatalf("KindOf = %q", KindOf(err))
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to unwrap")
	}
	if msg := err.Error(); !strings.Contains(msg, "/x.srt") || !strings.Contains(msg, "unable to write target") {
		t.Fatalf("unexpected message %q", msg)
	}
	if KindOf(cause) != "" {
		t.Fatal("plain errors carry no kind")
	}
}

func TestHintsCoverEveryKind(t *testing.T) {
	for _, kind := range []string{KindUnreadableSource, KindUnwritableBackup, KindUnwritableTarget} {
		if hintFor(kind) == "" {
			t.Fatalf("missing hint for %s", kind)
		}
		if describeKind(kind) == kind {
			t.Fatalf("missing description for %s", kind)
		}
	}
}
