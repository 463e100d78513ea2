package taxonomy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// MinEntries файл с меньшим числом строк или записей считается битым
const MinEntries = 20

var linePattern = regexp.MustCompile(`^\s*(\S+)\s*:\s*(.+?)\s*$`)

// FileLoader читает таксономию из файла "<id> : A > B > C"
type FileLoader struct {
	path       string
	legacyPath string
	logger     interfaces.LoggerPort
}

// NewFileLoader создает новый экземпляр FileLoader
func NewFileLoader(path, legacyPath string, logger interfaces.LoggerPort) *FileLoader {
	return &FileLoader{
		path:       path,
		legacyPath: legacyPath,
		logger:     logger,
	}
}

// Load читает основной файл, затем устаревший путь, затем отдает встроенный список
func (l *FileLoader) Load() []models.TaxonomyEntry {
	for _, path := range []string{l.path, l.legacyPath} {
		if path == "" {
			continue
		}

		entries, err := readFile(path)
		if err != nil {
			l.logger.Warn("Файл таксономии не используется",
				interfaces.LogField{Key: "path", Value: path},
				interfaces.LogField{Key: "error", Value: err.Error()},
			)
			continue
		}

		l.logger.Info("Таксономия загружена из файла",
			interfaces.LogField{Key: "path", Value: path},
			interfaces.LogField{Key: "entries", Value: len(entries)},
		)
		return entries
	}

	l.logger.Warn("Используется встроенный список категорий",
		interfaces.LogField{Key: "entries", Value: len(fallback)},
	)
	return Fallback()
}

func readFile(path string) ([]models.TaxonomyEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, lines, err := Parse(f)
	if err != nil {
		return nil, err
	}
	if lines < MinEntries || len(entries) < MinEntries {
		return nil, fmt.Errorf("too short: %d lines, %d entries", lines, len(entries))
	}
	return entries, nil
}

// Parse разбирает строки "<id> : <путь>". Строки другого вида пропускаются.
// lines - число непустых строк.
func Parse(r io.Reader) (entries []models.TaxonomyEntry, lines int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines++

		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entries = append(entries, models.TaxonomyEntry{
			ID:       m[1],
			FullPath: normalizePath(m[2]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read taxonomy: %w", err)
	}
	return entries, lines, nil
}

// normalizePath приводит разделители к виду "A > B > C"
func normalizePath(path string) string {
	segments := strings.Split(path, ">")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	return strings.Join(segments, " > ")
}
