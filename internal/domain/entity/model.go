package entity

import "time"

type ModelInfo struct {
	Name       string
	Model      string
	ModifiedAt time.Time
	Size       int64
	Digest     string
	Details    map[string]any
}
