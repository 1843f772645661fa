package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/go-pose-interpolator/internal/rigfile"
)

// Output formats
const (
	formatCSV = "csv"
	formatWAV = "wav"
)

const (
	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavFormatPCM = 1
)

// bakeResult holds the weights of every pose at every swept frame.
type bakeResult struct {
	frames []float64
	poses  []string
	// weights[p][f] is the weight of pose p at frame f.
	weights [][]float64
}

// bake binds the rig, evaluates it at every sweep frame and unbinds it.
func bake(ctx context.Context, rig *rigfile.Rig) (res *bakeResult, err error) {
	ip := rig.Interpolator
	if err := ip.Bind(ctx); err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}
	defer func() {
		err = errors.Join(err, ip.Unbind(context.WithoutCancel(ctx)))
	}()

	frames := rig.Frames()
	poses := ip.Poses()
	res = &bakeResult{
		frames:  frames,
		poses:   make([]string, len(poses)),
		weights: make([][]float64, len(poses)),
	}
	for i, p := range poses {
		res.poses[i] = p.Name()
		res.weights[i] = make([]float64, len(frames))
	}

	for f, frame := range frames {
		weights, err := rig.Sample(ctx, frame)
		if err != nil {
			return nil, fmt.Errorf("frame %v: %w", frame, err)
		}
		for p, w := range weights {
			res.weights[p][f] = w.Value
		}
	}
	return res, nil
}

// resolveFormat returns the explicit format, or the one implied by the
// output extension.
func resolveFormat(explicit, outputPath string) (string, error) {
	f := strings.ToLower(explicit)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(outputPath)), ".")
	}
	switch f {
	case formatCSV, formatWAV:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want csv or wav)", f)
	}
}

func validateWAVParams(rate, bits int) error {
	if rate <= 0 {
		return fmt.Errorf("invalid sample rate %d", rate)
	}
	switch bits {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return nil
	default:
		return fmt.Errorf("unsupported bit depth %d", bits)
	}
}

// writeCSV writes one row per frame: the frame followed by each pose weight.
func writeCSV(w io.Writer, res *bakeResult) error {
	cw := csv.NewWriter(w)
	header := append([]string{"frame"}, res.poses...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(res.poses)+1)
	for f, frame := range res.frames {
		row[0] = strconv.FormatFloat(frame, 'f', -1, 64)
		for p := range res.poses {
			row[p+1] = strconv.FormatFloat(res.weights[p][f], 'f', 6, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeCSVFile(path string, res *bakeResult) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return writeCSV(f, res)
}

// writeWAVFile encodes the weights as PCM, one channel per pose and one
// sample per frame. Weights are clamped to [-1, 1].
func writeWAVFile(path string, res *bakeResult, sampleRate, bitDepth int) (err error) {
	if len(res.poses) == 0 {
		return errors.New("no poses to write")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, len(res.poses), wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(res.poses), SampleRate: sampleRate},
		Data:           interleave(res.weights, getMaxValue(bitDepth)),
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return enc.Close()
}

// interleave converts per-pose weights to interleaved int samples.
func interleave(channels [][]float64, maxVal float64) []int {
	if len(channels) == 0 {
		return nil
	}
	numChannels := len(channels)
	frames := len(channels[0])
	out := make([]int, frames*numChannels)
	for i := range frames {
		for ch := range numChannels {
			sample := max(-1.0, min(1.0, channels[ch][i]))
			out[i*numChannels+ch] = int(sample * maxVal)
		}
	}
	return out
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}
