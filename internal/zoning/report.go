package zoning

import (
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
)

// WriteZoneStatsCSV writes the per-zone statistics as a CSV report, ordered by
// zone id.
func WriteZoneStatsCSV(zoneStats map[int]ZoneStat, path string) error {
	rows := make([]ZoneStat, 0, len(zoneStats))
	for _, stat := range zoneStats {
		rows = append(rows, stat)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ZoneID < rows[j].ZoneID })

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create zone report: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write zone report: %w", err)
	}
	return nil
}
