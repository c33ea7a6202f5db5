package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"

	"github.com/Arionyxx/PupClips/internal/model"
)

// DefaultPosterTime is the default poster frame timestamp in seconds.
const DefaultPosterTime = 1.0

// Prober extracts video metadata and poster frames using the ffmpeg toolchain.
type Prober struct {
	FFprobePath string
	FFmpegPath  string
}

func NewProber() *Prober {
	return &Prober{FFprobePath: "ffprobe", FFmpegPath: "ffmpeg"}
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// Probe decodes just enough of the file to read its container metadata.
// declaredType and size come from the upload request, not the container.
func (p *Prober) Probe(ctx context.Context, filePath, declaredType string, size int64) (model.VideoMetadata, error) {
	cmd := exec.CommandContext(ctx, p.FFprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	out, err := cmd.Output()
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	var probed ffprobeOutput
	if err := json.Unmarshal(out, &probed); err != nil {
		return model.VideoMetadata{}, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	duration, err := strconv.ParseFloat(probed.Format.Duration, 64)
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("%w: no duration in container", ErrMetadata)
	}

	meta := model.VideoMetadata{
		Duration: duration,
		Size:     size,
		Type:     declaredType,
	}
	for _, s := range probed.Streams {
		if s.CodecType == "video" {
			meta.Width = s.Width
			meta.Height = s.Height
			break
		}
	}
	if meta.Width == 0 || meta.Height == 0 {
		return model.VideoMetadata{}, fmt.Errorf("%w: no video stream", ErrMetadata)
	}

	return meta, nil
}

// PosterFrame decodes the frame at the target timestamp and encodes it as a
// JPEG. The timestamp is clamped to half the clip's duration so short clips
// still yield a frame.
func (p *Prober) PosterFrame(ctx context.Context, filePath string, at, duration float64) ([]byte, error) {
	seek := math.Min(at, duration/2)

	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, p.FFmpegPath,
		"-v", "error",
		"-ss", strconv.FormatFloat(seek, 'f', 3, 64),
		"-i", filePath,
		"-frames:v", "1",
		"-c:v", "mjpeg",
		"-q:v", "2", // roughly 0.85 JPEG quality
		"-f", "image2",
		"pipe:1",
	)
	cmd.Stdout = &buf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPosterGeneration, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrPosterGeneration)
	}

	return buf.Bytes(), nil
}
