package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/analysis"
)

type PersistBundle struct {
	SessionID   string    `json:"session_id"`
	InputDir    string    `json:"input_dir"`
	GeneratedAt time.Time `json:"generated_at"`
	Backend     string    `json:"backend"`

	Lines       int `json:"lines"`
	Sentences   int `json:"sentences"`
	SubjectOnly int `json:"subject_only"`
	Other       int `json:"other_services"`

	Roles        []analysis.RoleSummary           `json:"roles"`
	WordStats    []analysis.WordStat              `json:"word_stats"`
	Groups       []analysis.WordGroup             `json:"word_groups"`
	Distribution map[string]analysis.Distribution `json:"distribution"`
}

// mkSessionDir creates a fresh session_<timestamp>_<id> directory; it never
// reuses an existing one.
func mkSessionDir(outputsRoot string) (string, string, error) {
	if err := os.MkdirAll(outputsRoot, 0o755); err != nil {
		return "", "", err
	}
	ts := time.Now().Format("20060102-150405")
	sid := "session_" + ts + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	dir := filepath.Join(outputsRoot, sid)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", "", err
	}
	return sid, dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func persist(outputsRoot, inputDir string, res *Result) (sessionID, resultPath string, err error) {
	sid, outDir, err := mkSessionDir(outputsRoot)
	if err != nil {
		return "", "", err
	}

	path := filepath.Join(outDir, "result.json")
	bundle := PersistBundle{
		SessionID:   sid,
		InputDir:    inputDir,
		GeneratedAt: time.Now(),
		Backend:     res.Backend,
		Lines:       len(res.Lines),
		Sentences:   len(res.Sentences),
		SubjectOnly: len(res.SubjectOnly),
		Other:       len(res.Other),
		Roles:       res.Roles,
		WordStats:   res.WordStats,
		Groups:      res.Groups,
		Distribution: map[string]analysis.Distribution{
			"subject_only":   res.SubjectDist,
			"other_services": res.OtherDist,
		},
	}
	if err = writeJSON(path, bundle); err != nil {
		return "", "", err
	}
	return sid, path, nil
}
