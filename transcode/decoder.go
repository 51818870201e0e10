package transcode

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/RyanBlaney/sonido-frames/logging"
)

// MixChannels selects a mono downmix instead of a single channel
const MixChannels = -1

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64      `json:"-"` // Mono samples in [-1, 1)
	SampleRate int            `json:"sample_rate"`
	Channels   int            `json:"channels"` // Channels in the source
	Duration   time.Duration  `json:"duration"`
	Metadata   *AudioMetadata `json:"metadata,omitempty"`
}

// AudioMetadata holds properties read from the WAV header
type AudioMetadata struct {
	Source     string `json:"source,omitempty"`
	Format     string `json:"format"`
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
	BitDepth   int    `json:"bit_depth"`
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	Channel     int           `json:"channel"`      // Channel index to keep, or MixChannels
	MaxDuration time.Duration `json:"max_duration"` // 0 means no limit
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		Channel:     0, // first channel
		MaxDuration: 0,
	}
}

// Decoder turns PCM WAV files into normalized mono float samples
type Decoder struct {
	config *DecoderConfig
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config}
}

// DecodeWAV decodes a PCM WAV stream with the default configuration
func DecodeWAV(r io.ReadSeeker) (*AudioData, error) {
	return NewDecoder(nil).Decode(r)
}

// DecodeFile decodes a WAV file from disk
func (d *Decoder) DecodeFile(filename string) (*AudioData, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	data, err := d.decode(f, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return data, nil
}

// DecodeBytes decodes an in-memory WAV file
func (d *Decoder) DecodeBytes(data []byte) (*AudioData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty audio data")
	}
	return d.decode(bytes.NewReader(data), "")
}

// Decode decodes a WAV stream
func (d *Decoder) Decode(r io.ReadSeeker) (*AudioData, error) {
	return d.decode(r, "")
}

func (d *Decoder) decode(r io.ReadSeeker, source string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "Decode",
		"source":    source,
	})

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		err := fmt.Errorf("not a valid WAV file")
		if dec.Err() != nil {
			err = fmt.Errorf("not a valid WAV file: %w", dec.Err())
		}
		logger.Error(err, "Failed to read WAV header")
		return nil, err
	}

	// WAVE_FORMAT_PCM; float and compressed payloads are not handled
	if dec.WavAudioFormat != 1 {
		return nil, fmt.Errorf("unsupported WAV audio format %d, only integer PCM is supported", dec.WavAudioFormat)
	}

	metadata := &AudioMetadata{
		Source:     source,
		Format:     "wav",
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}

	logger.Debug("Audio metadata detected", logging.Fields{
		"input_sample_rate": metadata.SampleRate,
		"input_channels":    metadata.Channels,
		"input_bit_depth":   metadata.BitDepth,
	})

	if metadata.SampleRate <= 0 || metadata.Channels <= 0 {
		return nil, fmt.Errorf("invalid WAV header: %d Hz, %d channels", metadata.SampleRate, metadata.Channels)
	}
	if metadata.BitDepth < 8 || metadata.BitDepth > 32 {
		return nil, fmt.Errorf("unsupported bit depth: %d", metadata.BitDepth)
	}
	if d.config.Channel != MixChannels && (d.config.Channel < 0 || d.config.Channel >= metadata.Channels) {
		return nil, fmt.Errorf("channel %d not present in %d-channel audio", d.config.Channel, metadata.Channels)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		logger.Error(err, "Failed to read PCM data")
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	if metadata.Channels > 1 {
		logger.Warn("Multi-channel audio reduced to mono", logging.Fields{
			"channels": metadata.Channels,
			"channel":  d.config.Channel,
		})
	}

	pcm := d.toMono(buf, metadata)

	if d.config.MaxDuration > 0 {
		maxSamples := int(d.config.MaxDuration.Seconds() * float64(metadata.SampleRate))
		if len(pcm) > maxSamples {
			pcm = pcm[:maxSamples]
		}
	}

	duration := time.Duration(len(pcm)) * time.Second / time.Duration(metadata.SampleRate)

	logger.Debug("Audio decode complete", logging.Fields{
		"samples":     len(pcm),
		"duration_ms": duration.Milliseconds(),
	})

	return &AudioData{
		PCM:        pcm,
		SampleRate: metadata.SampleRate,
		Channels:   metadata.Channels,
		Duration:   duration,
		Metadata:   metadata,
	}, nil
}

// toMono converts interleaved integer samples to floats in [-1, 1)
func (d *Decoder) toMono(buf *audio.IntBuffer, metadata *AudioMetadata) []float64 {
	channels := metadata.Channels
	frames := len(buf.Data) / channels
	pcm := make([]float64, frames)

	scale := 1.0 / float64(int64(1)<<(metadata.BitDepth-1))
	// 8-bit WAV samples are unsigned
	offset := 0
	if metadata.BitDepth == 8 {
		offset = 128
	}

	for i := range frames {
		frame := buf.Data[i*channels : (i+1)*channels]
		if d.config.Channel == MixChannels {
			sum := 0.0
			for _, s := range frame {
				sum += float64(s - offset)
			}
			pcm[i] = sum / float64(channels) * scale
		} else {
			pcm[i] = float64(frame[d.config.Channel]-offset) * scale
		}
	}

	return pcm
}

// GetConfig returns the decoder configuration
func (d *Decoder) GetConfig() DecoderConfig {
	return *d.config
}
