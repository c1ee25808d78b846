// Package corpus loads the guide records from files or Redis.
package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/record"
)

// LoadFile reads a YAML or JSON array of records from path.
func LoadFile(path string) (record.Corpus, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from config, not user input
	if err != nil {
		return record.Corpus{}, fmt.Errorf("read corpus file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON array of records and validates it.
func Parse(data []byte) (record.Corpus, error) {
	var dtos []recordDTO
	if err := yaml.Unmarshal(data, &dtos); err != nil {
		return record.Corpus{}, fmt.Errorf("%w: parse corpus: %w", domain.ErrInvalidRecord, err)
	}
	return toCorpus(dtos)
}
