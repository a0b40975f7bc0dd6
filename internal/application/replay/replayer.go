package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/scenecam/internal/application/system"
)

// Replayer plays recorded actions back, one frame per call
type Replayer struct {
	data  ReplayData
	frame int
}

var _ system.ActionSource = (*Replayer)(nil)

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Actions returns the recorded actions for the current frame and advances.
// Once the recording runs out no action is active.
func (r *Replayer) Actions() system.ActionSet {
	if r.frame >= len(r.data.Frames) {
		return 0
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	return system.ActionSet(fi.A)
}

// Done reports whether every recorded frame was played
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Level returns the level the recording started in
func (r *Replayer) Level() string {
	return r.data.Level
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing. Every frame carries
// actions; frames beyond len(actions) are idle.
func CreateTestReplayData(frames int, level string, actions ...system.ActionSet) ReplayData {
	data := ReplayData{
		Version:   "1.0",
		Level:     level,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i}
		if i < len(actions) {
			data.Frames[i].A = uint32(actions[i])
		}
	}

	return data
}
