package model

import "time"

// TableArtifact records one persisted table for integrity checks.
type TableArtifact struct {
	Rows     int    `json:"rows"`
	JSONFile string `json:"json,omitempty"`
	CSVFile  string `json:"csv,omitempty"`
	JSONSHA1 string `json:"json_sha1,omitempty"`
	CSVSHA1  string `json:"csv_sha1,omitempty"`
}

// FileArtifact records one persisted non-table file (raw payload, event
// type dictionary).
type FileArtifact struct {
	File string `json:"file"`
	SHA1 string `json:"sha1"`
}

// Manifest describes one completed persistence run: per-table row counts
// and content hashes plus hashes of the raw extracted literals.
type Manifest struct {
	RunID                 string                   `json:"run_id"`
	MatchID               int                      `json:"match_id"`
	CreatedAt             time.Time                `json:"created_at"`
	OutputDir             string                   `json:"output_dir"`
	Tables                map[string]TableArtifact `json:"tables"`
	Payload               *FileArtifact            `json:"payload,omitempty"`
	EventTypes            *FileArtifact            `json:"event_types,omitempty"`
	ScoreTimelineSrc      *FileArtifact            `json:"score_timeline_src,omitempty"`
	FormationsTimelineSrc *FileArtifact            `json:"formations_timeline_src,omitempty"`
}
