package words

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// LoadCSV reads theme,word records from a file. Malformed records are
// skipped with a warning rather than failing the whole load.
func LoadCSV(filePath string) (map[string][]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open word list %s: %w", filePath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse word list %s: %w", filePath, err)
	}

	themes := make(map[string][]string)
	for _, record := range records {
		if len(record) < 2 || record[0] == "" || record[1] == "" {
			log.Warn().Strs("record", record).Msg("[words] skipping invalid csv record")
			continue
		}
		themes[record[0]] = append(themes[record[0]], record[1])
	}
	return themes, nil
}
