package tts

import "testing"

func TestEndsWithTerminator(t *testing.T) {
	cases := map[string]bool{
		"Hello.":        true,
		"Hello!":        true,
		"Hello?":        true,
		"你好。":           true,
		"你好":            false,
		"Hello world":   false,
		"\"Hello.\"":    true,
		"":              false,
	}
	for in, want := range cases {
		if got := endsWithTerminator(in); got != want {
			t.Errorf("endsWithTerminator(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLastWhitespaceBoundary(t *testing.T) {
	if got := lastWhitespaceBoundary("hello world foo"); got != 11 {
		t.Fatalf("got %d, want 11", got)
	}
	if got := lastWhitespaceBoundary("nowhitespace"); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestExtractSegmentsCompleteSentenceReturnsNoRemainder(t *testing.T) {
	p := &StreamingPipe{opts: Options{Language: "en-us"}}

	segments, remainder := p.extractSegments("Hello there. How are you?")
	if len(segments) != 2 {
		t.Fatalf("segments = %v, want 2", segments)
	}
	if remainder != "" {
		t.Fatalf("remainder = %q, want empty", remainder)
	}
}

func TestExtractSegmentsIncompleteSentenceKeptAsRemainder(t *testing.T) {
	p := &StreamingPipe{opts: Options{Language: "en-us"}}

	segments, remainder := p.extractSegments("Hello there. How are you")
	if len(segments) != 1 || segments[0] != "Hello there." {
		t.Fatalf("segments = %v", segments)
	}
	if remainder != "How are you" {
		t.Fatalf("remainder = %q", remainder)
	}
}

func TestExtractSegmentsPhonemesModeNeverSplits(t *testing.T) {
	p := &StreamingPipe{opts: Options{PhonemesMode: true}}

	segments, remainder := p.extractSegments("hV0loU wr0ld")
	if segments != nil {
		t.Fatalf("segments = %v, want nil", segments)
	}
	if remainder != "hV0loU wr0ld" {
		t.Fatalf("remainder = %q", remainder)
	}
}

func TestExtractSegmentsLongRunOnTextWithNoTerminatorIsForceCut(t *testing.T) {
	p := &StreamingPipe{opts: Options{Language: "en-us"}}

	long := ""
	for len([]rune(long)) <= forceSegmentRunes {
		long += "word "
	}
	trimmedWant := long[:len(long)-1] // cut at the last whitespace (the trailing space)

	segments, remainder := p.extractSegments(long)
	if len(segments) != 1 || segments[0] != trimmedWant {
		t.Fatalf("segments = %v, want one forced segment %q", segments, trimmedWant)
	}
	if remainder != "" {
		t.Fatalf("remainder = %q, want empty", remainder)
	}
}

func TestLatchSessionWaitsForThresholdWhenAutoDetecting(t *testing.T) {
	p := &StreamingPipe{opts: Options{AutoDetect: true, Language: "en-us"}}

	p.latchSession("short")
	if p.languageDetected {
		t.Fatal("expected languageDetected to remain false below threshold")
	}

	long := "this is now long enough text to trigger auto detection of language"
	p.latchSession(long)
	if !p.languageDetected {
		t.Fatal("expected languageDetected to become true once threshold reached")
	}
}

func TestLatchSessionLatchesImmediatelyWithoutAutoDetect(t *testing.T) {
	p := &StreamingPipe{opts: Options{AutoDetect: false, Language: "es", Voice: "ef_dora"}}

	p.latchSession("hi")
	if !p.languageDetected {
		t.Fatal("expected immediate latch when auto-detect is off")
	}
	if p.sessionLanguage != "es" || p.sessionVoice != "ef_dora" {
		t.Fatalf("sessionLanguage=%q sessionVoice=%q", p.sessionLanguage, p.sessionVoice)
	}
}

func TestLatchSessionIsIdempotent(t *testing.T) {
	p := &StreamingPipe{opts: Options{Language: "en-us"}}
	p.latchSession("first")
	p.sessionLanguage = "overridden"
	p.latchSession("second call should not relatch")
	if p.sessionLanguage != "overridden" {
		t.Fatalf("sessionLanguage = %q, want unchanged", p.sessionLanguage)
	}
}
