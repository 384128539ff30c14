package tts

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/example/pockettts-kokoro/internal/audio"
	"github.com/example/pockettts-kokoro/internal/phonemize"
	"github.com/example/pockettts-kokoro/internal/text"
)

// detectThresholdRunes is the minimum buffered text length before the
// streaming pipe attempts language auto-detection.
const detectThresholdRunes = 60

// forceSegmentRunes bounds how long the buffer is allowed to grow with no
// extractable sentence before a forced segment is cut at a safe boundary.
const forceSegmentRunes = 200

// StreamingPipe incrementally converts lines of incoming text into audio,
// latching the detected (or configured) language and voice at the first
// complete segment and reusing that session language/voice for every
// subsequent segment. It feeds a bounded sample channel (skipped when nil,
// i.e. "silent" mode) and appends every segment's samples to a WAV sink that
// already carries a streaming header.
type StreamingPipe struct {
	service *Service
	opts    Options
	mono    bool

	wav     io.Writer
	audioTx chan<- []float32

	buffer strings.Builder

	languageDetected bool
	sessionLanguage  string
	sessionVoice     string
}

// NewStreamingPipe builds a pipe that writes synthesized audio to wav (which
// must already hold a streaming WAV header written via
// audio.WriteWAVHeaderStreaming) and, when audioTx is non-nil, also forwards
// each segment's raw samples on that channel.
func NewStreamingPipe(service *Service, opts Options, mono bool, wav io.Writer, audioTx chan<- []float32) *StreamingPipe {
	return &StreamingPipe{
		service: service,
		opts:    opts,
		mono:    mono,
		wav:     wav,
		audioTx: audioTx,
	}
}

// Feed appends one line of input to the internal buffer, extracting and
// synthesizing every complete sentence it now contains. Invalid UTF-8 is
// repaired with a lossy conversion before appending, mirroring the "on UTF-8
// error, do lossy conversion" step.
func (p *StreamingPipe) Feed(ctx context.Context, line string) error {
	if !utf8.ValidString(line) {
		line = strings.ToValidUTF8(line, "�")
	}

	p.buffer.WriteString(line)

	return p.drain(ctx, false)
}

// Flush synthesizes any remaining buffered text as one final segment. Call
// once at EOF.
func (p *StreamingPipe) Flush(ctx context.Context) error {
	return p.drain(ctx, true)
}

// drain extracts complete sentences (or, at EOF, whatever remains) from the
// buffer and synthesizes each in turn.
func (p *StreamingPipe) drain(ctx context.Context, eof bool) error {
	buffered := p.buffer.String()
	if strings.TrimSpace(buffered) == "" {
		p.buffer.Reset()
		return nil
	}

	p.latchSession(buffered)

	if eof {
		p.buffer.Reset()
		return p.synthesizeSegment(ctx, buffered)
	}

	segments, remainder := p.extractSegments(buffered)
	p.buffer.Reset()
	p.buffer.WriteString(remainder)

	for _, seg := range segments {
		if err := p.synthesizeSegment(ctx, seg); err != nil {
			return err
		}
	}

	return nil
}

// latchSession resolves session_language/session_style exactly once, at the
// first point the buffer is long enough for reliable detection (or
// immediately, if auto-detect is off).
func (p *StreamingPipe) latchSession(buffered string) {
	if p.languageDetected {
		return
	}

	if p.opts.AutoDetect && len([]rune(buffered)) < detectThresholdRunes {
		return
	}

	language := p.opts.Language
	if p.opts.AutoDetect {
		language = text.DetectLanguage(buffered)
	}

	code := phonemize.NormalizeLanguage(language)

	p.sessionLanguage = language
	p.sessionVoice = p.opts.Voice
	p.languageDetected = true

	_ = code // normalized form is recomputed per segment by SynthesizeCtx
}

// extractSegments pulls complete sentences out of buffered using the
// configured sentence splitter, returning them plus whatever trailing text
// lacks terminal punctuation (kept in the buffer for the next Feed). If the
// buffer has grown past forceSegmentRunes with nothing extractable (and the
// pipe is not in phonemes mode, where there is no punctuation to look for),
// a forced segment is cut at the last whitespace boundary instead.
func (p *StreamingPipe) extractSegments(buffered string) (segments []string, remainder string) {
	if p.opts.PhonemesMode {
		return nil, buffered
	}

	cjk := phonemize.IsChinese(phonemize.NormalizeLanguage(p.effectiveLanguage()))
	sentences := text.SplitSentences(buffered, cjk)

	if len(sentences) == 0 {
		if len([]rune(buffered)) > forceSegmentRunes {
			cut := lastWhitespaceBoundary(buffered)
			if cut > 0 {
				return []string{buffered[:cut]}, strings.TrimLeft(buffered[cut:], " \t")
			}
		}

		return nil, buffered
	}

	last := sentences[len(sentences)-1]
	if !endsWithTerminator(last) {
		if len(sentences) == 1 && len([]rune(buffered)) > forceSegmentRunes {
			if cut := lastWhitespaceBoundary(buffered); cut > 0 {
				return []string{buffered[:cut]}, strings.TrimLeft(buffered[cut:], " \t")
			}
		}
		return sentences[:len(sentences)-1], last
	}

	return sentences, ""
}

func (p *StreamingPipe) effectiveLanguage() string {
	if p.languageDetected {
		return p.sessionLanguage
	}

	return p.opts.Language
}

func (p *StreamingPipe) synthesizeSegment(ctx context.Context, segment string) error {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return nil
	}

	if !p.opts.PhonemesMode && !endsWithTerminator(segment) {
		segment += "."
	}

	segOpts := p.opts
	segOpts.AutoDetect = false
	segOpts.ForceStyle = true
	segOpts.Language = p.effectiveLanguage()
	segOpts.Voice = p.sessionVoice

	samples, err := p.service.SynthesizeCtx(ctx, segment, segOpts)
	if err != nil {
		return fmt.Errorf("synthesize segment: %w", err)
	}

	if _, err := audio.WriteFloat32Samples(p.wav, samples, p.mono); err != nil {
		return fmt.Errorf("write segment to wav sink: %w", err)
	}

	if p.audioTx != nil {
		select {
		case p.audioTx <- samples:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func endsWithTerminator(s string) bool {
	s = strings.TrimRight(s, "\"'»”)")
	if s == "" {
		return false
	}

	r := []rune(s)
	last := r[len(r)-1]

	switch last {
	case '.', '!', '?', '。', '！', '？':
		return true
	default:
		return false
	}
}

func lastWhitespaceBoundary(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ' ' || s[i] == '\t' || s[i] == '\n' {
			return i
		}
	}

	return -1
}
