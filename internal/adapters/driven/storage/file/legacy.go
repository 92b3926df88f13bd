package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// legacyFile is the pre-AXF on-disk schema: one JSON file per
// (user, textbook) pair with inline geometry arrays.
type legacyFile struct {
	UserID      string             `json:"userId"`
	TextbookID  string             `json:"textbookId"`
	Annotations []legacyAnnotation `json:"annotations"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type legacyAnnotation struct {
	ID          string            `json:"id"`
	PageIndex   int               `json:"pageIndex"`
	Fingerprint legacyFingerprint `json:"pageFingerprint"`
	Tool        string            `json:"tool"`
	ColorHex    string            `json:"colorHex"`
	LineWidth   float64           `json:"lineWidth"`
	Alpha       float64           `json:"alpha"`
	Points      [][2]float64      `json:"points"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type legacyFingerprint struct {
	MediaBoxX      float64 `json:"mediaBoxX"`
	MediaBoxY      float64 `json:"mediaBoxY"`
	MediaBoxWidth  float64 `json:"mediaBoxWidth"`
	MediaBoxHeight float64 `json:"mediaBoxHeight"`
	Rotation       int     `json:"rotation"`
}

// MigrateUser converts every legacy JSON file of the user that has no
// AXF counterpart, writes the AXF file, and renames the legacy file
// with a .bak suffix. Files that fail to parse are left untouched.
func (s *Store) MigrateUser(ctx context.Context, userID string) ([]domain.MigrationResult, error) {
	dir := s.userDir(userID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading user directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var results []domain.MigrationResult
	for _, name := range names {
		documentID := strings.TrimSuffix(name, ".json")
		if _, err := os.Stat(s.Path(userID, documentID)); err == nil {
			// Already migrated; the stale legacy file is kept as-is.
			logger.Debug("migration: %s already has an AXF file, skipping", documentID)
			continue
		}

		legacyPath := filepath.Join(dir, name)
		doc, err := s.readLegacy(legacyPath, userID, documentID)
		if err != nil {
			logger.Warn("migration: %s: %v", legacyPath, err)
			continue
		}

		if err := s.Save(ctx, doc); err != nil {
			return results, fmt.Errorf("writing migrated %s: %w", documentID, err)
		}

		backupPath := legacyPath + ".bak"
		if err := os.Rename(legacyPath, backupPath); err != nil {
			return results, fmt.Errorf("backing up %s: %w", legacyPath, err)
		}

		results = append(results, domain.MigrationResult{
			DocumentID: documentID,
			Strokes:    len(doc.Strokes),
			BackupPath: backupPath,
		})
	}
	return results, nil
}

// readLegacy parses one legacy JSON file into an annotation document.
func (s *Store) readLegacy(path, userID, documentID string) (*domain.AnnotationDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lf legacyFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing legacy JSON: %w", err)
	}

	doc := domain.NewAnnotationDocument(userID, documentID)
	doc.UpdatedAt = lf.UpdatedAt
	for _, a := range lf.Annotations {
		stroke, err := convertLegacy(a)
		if err != nil {
			logger.Warn("migration: annotation %s in %s: %v", a.ID, path, err)
			continue
		}
		doc.Strokes = append(doc.Strokes, stroke)
	}
	return doc, nil
}

func convertLegacy(a legacyAnnotation) (domain.Stroke, error) {
	if len(a.Points) < 2 {
		return domain.Stroke{}, fmt.Errorf("%w: %d points", domain.ErrDegenerateStroke, len(a.Points))
	}

	color, err := domain.ParseHexColor(a.ColorHex)
	if err != nil {
		color = domain.Black
	}

	tool := domain.ParseToolKind(a.Tool)
	opacity := a.Alpha
	if opacity <= 0 || opacity > 1 {
		opacity = domain.DefaultOpacity(tool)
	}
	width := a.LineWidth
	if width <= 0 {
		width = 2.0
	}

	points := make([]domain.Point, len(a.Points))
	for i, p := range a.Points {
		points[i] = domain.Point{X: p[0], Y: p[1]}
	}

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return domain.Stroke{
		ID:        a.ID,
		PageIndex: a.PageIndex,
		Fingerprint: domain.PageFingerprint{
			X:        a.Fingerprint.MediaBoxX,
			Y:        a.Fingerprint.MediaBoxY,
			Width:    a.Fingerprint.MediaBoxWidth,
			Height:   a.Fingerprint.MediaBoxHeight,
			Rotation: a.Fingerprint.Rotation,
		},
		Tool:      tool,
		Color:     color,
		Width:     width,
		Opacity:   opacity,
		Points:    points,
		Origin:    domain.OwnerTag,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}
