// Package seed loads article documents and concept tables from a directory
// into a store.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"ordbok-backend/application/ports"
	"ordbok-backend/domain/core/valueobjects"
)

// ConceptsFile is the file name of a dictionary's concept table
const ConceptsFile = "concepts.json"

// Writer receives seeded documents
type Writer interface {
	ports.EntryWriter
	PutConceptTable(ctx context.Context, dictionary valueobjects.Dictionary, document []byte) error
}

// Result counts what was loaded
type Result struct {
	Entries       int
	ConceptTables int
	Skipped       int
}

// LoadDirectory writes every document under dir into w. The layout is
//
//	<dir>/<dictionary>/<id>.json      article documents
//	<dir>/<dictionary>/concepts.json  concept table
//
// Directories that are not dictionary codes are ignored. The first
// document the store rejects stops the load.
func LoadDirectory(ctx context.Context, dir string, w Writer, logger *zap.Logger) (Result, error) {
	var result Result
	for _, dictionary := range valueobjects.AllDictionaries() {
		dictDir := filepath.Join(dir, dictionary.String())
		files, err := os.ReadDir(dictDir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to read seed directory %s: %w", dictDir, err)
		}

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
				continue
			}

			path := filepath.Join(dictDir, file.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return result, fmt.Errorf("failed to read %s: %w", path, err)
			}

			if file.Name() == ConceptsFile {
				if err := w.PutConceptTable(ctx, dictionary, data); err != nil {
					return result, err
				}
				result.ConceptTables++
				continue
			}

			id, err := strconv.Atoi(strings.TrimSuffix(file.Name(), ".json"))
			if err != nil || id <= 0 {
				logger.Warn("Skipping seed file without numeric id", zap.String("path", path))
				result.Skipped++
				continue
			}
			if err := w.PutEntry(ctx, valueobjects.MustEntryID(dictionary, id), data); err != nil {
				return result, err
			}
			result.Entries++
		}
	}

	logger.Info("Seeded store",
		zap.String("dir", dir),
		zap.Int("entries", result.Entries),
		zap.Int("conceptTables", result.ConceptTables),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}
