package ui

import (
	"fmt"
	"sync"

	"github.com/agrolens/agrolens-api-poc/internal/indices"
	"github.com/agrolens/agrolens-api-poc/internal/sentinel"
	"github.com/gammazero/workerpool"
	"github.com/schollz/progressbar/v3"
)

// AnalyzeFarm runs the pipeline for every field of a farm. Requests are
// independent, so they fan out over a worker pool; the pipeline itself stays
// synchronous per field.
func (u *UI) AnalyzeFarm() {
	farm := ReadString("Enter the farm name: ")
	date := ReadDate("Enter the date to be analyzed (YYYY-MM-DD): ")
	indexName := ChooseOption("Choose the vegetation index: ", indices.Names())

	fieldIDs, err := sentinel.ListFieldIDs(farm)
	if err != nil {
		PrintError(fmt.Sprintf("Error reading farm geojson: %s", err.Error()))
		return
	}
	if len(fieldIDs) == 0 {
		PrintError("No field ids found in the farm geojson file.")
		return
	}

	var (
		mu          sync.Mutex
		failures    []string
		progressBar = progressbar.Default(int64(len(fieldIDs)), "Analyzing fields")
	)

	wp := workerpool.New(4)
	for _, fieldID := range fieldIDs {
		id := fieldID
		wp.Submit(func() {
			_, err := u.analyzeField(farm, id, date, indexName)
			mu.Lock()
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %s", id, err.Error()))
			}
			progressBar.Add(1)
			mu.Unlock()
		})
	}
	wp.StopWait()

	if len(failures) > 0 {
		PrintError(fmt.Sprintf("%d of %d fields failed:", len(failures), len(fieldIDs)))
		for _, failure := range failures {
			fmt.Printf("%s- %s%s\n", ColorRed, failure, ColorReset)
		}
		return
	}
	PrintSuccess(fmt.Sprintf("Analyzed %d fields of farm %s", len(fieldIDs), farm))
}
