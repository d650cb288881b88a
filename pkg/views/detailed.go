package views

import (
	"encoding/json"
	"fmt"

	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
	"github.com/bitcoinsearch/bitdevs-radar/models"
)

// SaveDetailed serializes the full scan result as indented JSON. This is the
// canonical interchange artifact: the other views can be regenerated from it
// via --detailed-input.
func (g *Generator) SaveDetailed(result models.ScanResult, outputPath string) error {
	g.log.Info("saving detailed view", logger.String("path", outputPath))

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal detailed view: %w", err)
	}
	if err := g.store.SaveFile(outputPath, data); err != nil {
		return fmt.Errorf("failed to write detailed view: %w", err)
	}

	stats, err := g.store.GetFileStats(outputPath)
	if err != nil {
		return fmt.Errorf("failed to stat detailed view: %w", err)
	}
	g.log.Info("saved detailed view",
		logger.String("path", outputPath), logger.Int("size_bytes", int(stats.SizeBytes)))
	return nil
}

// LoadDetailed reads a previously saved detailed artifact back into a scan
// result.
func (g *Generator) LoadDetailed(inputPath string) (models.ScanResult, error) {
	data, err := g.store.ReadFile(inputPath)
	if err != nil {
		return models.ScanResult{}, fmt.Errorf("failed to load detailed view: %w", err)
	}

	var result models.ScanResult
	if err := json.Unmarshal(data, &result); err != nil {
		return models.ScanResult{}, fmt.Errorf("failed to parse detailed view %s: %w", inputPath, err)
	}
	return result, nil
}
