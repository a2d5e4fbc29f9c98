package ingest

import "time"

// ImportedEvent is published after an import run finished, whatever the
// number of failed rows. Target names the imported dataset and Errors holds
// the rendered row errors in file order.
type ImportedEvent struct {
	Actor      string
	Target     string
	FileName   string
	FileType   string
	Inserted   int
	Updated    int
	Failed     int
	Errors     []string
	FinishedAt time.Time
}

func (e ImportedEvent) Succeeded() int {
	return e.Inserted + e.Updated
}

// ImportFailedEvent is published when a file was rejected before any row
// was processed.
type ImportFailedEvent struct {
	Actor    string
	Target   string
	FileName string
	FileType string
	Reason   string
	FailedAt time.Time
}
