// Package dto defines the wire representation of drawing snapshots.
package dto

import "chart_drawing/internal/feature/drawing/domain/entity"

// SnapshotPayload is the request and response body for snapshot endpoints.
type SnapshotPayload struct {
	Version int                  `json:"version"`
	Tools   []entity.DrawingTool `json:"tools"`
}

// FromEntity converts a domain snapshot to its wire form.
func FromEntity(snap entity.Snapshot) SnapshotPayload {
	tools := snap.Tools
	if tools == nil {
		tools = []entity.DrawingTool{}
	}
	return SnapshotPayload{Version: snap.Version, Tools: tools}
}

// ToEntity converts the wire form back to a domain snapshot.
func (p SnapshotPayload) ToEntity() entity.Snapshot {
	return entity.Snapshot{Version: p.Version, Tools: p.Tools}
}
