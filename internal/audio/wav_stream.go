package audio

import (
	"encoding/binary"
	"io"
	"math"
)

// WriteWAVHeaderStreaming writes a 44-byte WAV header suitable for streaming
// where the total data length is not known in advance. Both the RIFF chunk
// size and the data sub-chunk size are set to 0xFFFFFFFF, which is the
// conventional marker for an unknown/streaming length.
//
// Format: 24 kHz, 32-bit IEEE float, channels as given (1 = mono, 2 =
// dual-mono, matching the mono synthesis option).
func WriteWAVHeaderStreaming(w io.Writer, channels int) (int, error) {
	const (
		bitsPerSample = ExpectedBitDepth
		sampleRate    = ExpectedSampleRate
	)
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	var hdr [44]byte
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], 0xFFFFFFFF)
	copy(hdr[8:12], "WAVE")
	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16)
	binary.LittleEndian.PutUint16(hdr[20:22], formatIEEEFloat)
	binary.LittleEndian.PutUint16(hdr[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(hdr[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(hdr[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(hdr[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(hdr[34:36], bitsPerSample)
	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], 0xFFFFFFFF)

	return w.Write(hdr[:])
}

// WriteFloat32Samples encodes float32 samples as little-endian IEEE-754
// float32 and writes them to w. When mono is false, each sample is
// duplicated across two channels before writing.
func WriteFloat32Samples(w io.Writer, samples []float32, mono bool) (int, error) {
	data := samples
	if !mono {
		data = make([]float32, len(samples)*2)
		for i, s := range samples {
			data[2*i] = s
			data[2*i+1] = s
		}
	}

	buf := make([]byte, len(data)*4)
	for i, s := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}

	return w.Write(buf)
}
