package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/scenecam/internal/application/system"
)

// Recorder captures the actions another source yields, frame by frame
type Recorder struct {
	source    system.ActionSource
	data      ReplayData
	recording bool
	frame     int
}

var _ system.ActionSource = (*Recorder)(nil)

// NewRecorder creates a recorder that passes source's actions through
func NewRecorder(source system.ActionSource, level string) *Recorder {
	return &Recorder{
		source: source,
		data: ReplayData{
			Version:   "1.0",
			Level:     level,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
		frame:     0,
	}
}

// Actions implements system.ActionSource, recording what the source yields
func (r *Recorder) Actions() system.ActionSet {
	set := r.source.Actions()
	r.RecordFrame(set)
	return set
}

// RecordFrame records a single frame's actions
func (r *Recorder) RecordFrame(set system.ActionSet) {
	if !r.recording {
		return
	}

	r.data.Frames = append(r.data.Frames, FrameInput{F: r.frame, A: uint32(set)})
	r.frame++
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return errors.New("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GetData returns the replay data (for testing)
func (r *Recorder) GetData() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
