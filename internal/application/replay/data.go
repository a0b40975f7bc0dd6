package replay

// FrameInput records the actions active in a single frame
type FrameInput struct {
	F int    `json:"f"`           // Frame number
	A uint32 `json:"a,omitempty"` // Action bitset
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Level     string       `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
