package models

type NodePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Workspace is the persisted editor state: what the user had typed, which
// view they were on and where they dragged the diagram nodes.
type Workspace struct {
	Query         string                  `json:"query"`
	ViewMode      string                  `json:"view_mode"`
	NodePositions map[string]NodePosition `json:"node_positions,omitempty"`
}
