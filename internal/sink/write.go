package sink

import (
	"crypto/sha1"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pitchside/matchcenter-cli/internal/model"
)

// WriteAll persists every table of a run under outRoot: for each non-empty
// table a <name>.json records array and a <name>.csv, the verbatim raw
// payload, the event-type dictionary when present, and a manifest.json with
// row counts and SHA-1 hashes of everything written.
func WriteAll(ts *model.TableSet, outRoot string) (*model.Manifest, error) {
	baseDir := filepath.Join(outRoot, MatchDir(ts))
	normDir := filepath.Join(baseDir, "normalized")
	csvDir := filepath.Join(baseDir, "csv")
	for _, d := range []string{normDir, csvDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, eris.Wrapf(err, "sink: create output dir %s", d)
		}
	}

	man := &model.Manifest{
		RunID:     uuid.NewString(),
		MatchID:   ts.MatchID,
		CreatedAt: time.Now().UTC(),
		OutputDir: baseDir,
		Tables:    make(map[string]model.TableArtifact, len(model.TableNames)),
	}

	for _, name := range model.TableNames {
		rows := ts.Rows(name)
		if len(rows) == 0 {
			man.Tables[name] = model.TableArtifact{Rows: 0}
			continue
		}
		jsonName, csvName := name+".json", name+".csv"
		jsonSHA, err := writeTableJSON(filepath.Join(normDir, jsonName), rows)
		if err != nil {
			return nil, eris.Wrapf(err, "sink: table %s", name)
		}
		csvSHA, err := writeTableCSV(filepath.Join(csvDir, csvName), rows)
		if err != nil {
			return nil, eris.Wrapf(err, "sink: table %s", name)
		}
		man.Tables[name] = model.TableArtifact{
			Rows:     len(rows),
			JSONFile: jsonName,
			CSVFile:  csvName,
			JSONSHA1: jsonSHA,
			CSVSHA1:  csvSHA,
		}
	}

	// The payload is written verbatim, not re-marshalled: its hash must
	// identify the exact extracted literal.
	sha, err := writeRaw(filepath.Join(normDir, "payload.json"), []byte(ts.RawPayload))
	if err != nil {
		return nil, eris.Wrap(err, "sink: payload")
	}
	man.Payload = &model.FileArtifact{File: "payload.json", SHA1: sha}

	if ts.RawEventTypes != "" {
		sha, err := writeRaw(filepath.Join(normDir, "event_types.json"), []byte(ts.RawEventTypes))
		if err != nil {
			return nil, eris.Wrap(err, "sink: event types")
		}
		man.EventTypes = &model.FileArtifact{File: "event_types.json", SHA1: sha}
	}

	// Embedded timeline arrays, when the page exposed them, are persisted
	// verbatim next to the other extracted literals. The "_src" suffix keeps
	// them apart from the reconstructed score_timeline table file.
	if ts.RawScoreTimeline != "" {
		sha, err := writeRaw(filepath.Join(normDir, "score_timeline_src.json"), []byte(ts.RawScoreTimeline))
		if err != nil {
			return nil, eris.Wrap(err, "sink: embedded score timeline")
		}
		man.ScoreTimelineSrc = &model.FileArtifact{File: "score_timeline_src.json", SHA1: sha}
	}
	if ts.RawFormationsTimeline != "" {
		sha, err := writeRaw(filepath.Join(normDir, "formations_timeline_src.json"), []byte(ts.RawFormationsTimeline))
		if err != nil {
			return nil, eris.Wrap(err, "sink: embedded formations timeline")
		}
		man.FormationsTimelineSrc = &model.FileArtifact{File: "formations_timeline_src.json", SHA1: sha}
	}

	data, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "sink: marshal manifest")
	}
	if err := os.WriteFile(filepath.Join(normDir, "manifest.json"), data, 0o644); err != nil {
		return nil, eris.Wrap(err, "sink: write manifest")
	}

	zap.L().Info("sink: run persisted",
		zap.Int("match_id", ts.MatchID),
		zap.String("dir", baseDir),
		zap.String("run_id", man.RunID),
	)
	return man, nil
}

func writeTableJSON(path string, rows []any) (string, error) {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "marshal rows")
	}
	return writeRaw(path, data)
}

func writeTableCSV(path string, rows []any) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrap(err, "create csv")
	}
	defer f.Close()

	h := sha1.New()
	w := csv.NewWriter(io.MultiWriter(f, h))
	if err := w.Write(headersOf(rows[0])); err != nil {
		return "", eris.Wrap(err, "write csv header")
	}
	for _, row := range rows {
		if err := w.Write(cellsOf(row)); err != nil {
			return "", eris.Wrap(err, "write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrap(err, "flush csv")
	}
	if err := f.Close(); err != nil {
		return "", eris.Wrap(err, "close csv")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func writeRaw(path string, data []byte) (string, error) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrapf(err, "write %s", filepath.Base(path))
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}
