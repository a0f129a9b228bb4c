package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/agrolens/agrolens-api-poc/internal/properties"
	"github.com/agrolens/agrolens-api-poc/internal/sentinel"
)

// ListFarms prints the farms that have a boundary GeoJSON on disk.
func ListFarms() {
	files, err := os.ReadDir(properties.GeojsonsPath())
	if err != nil {
		PrintError(fmt.Sprintf("Error reading geojsons folder: %s", err.Error()))
		return
	}
	PrintWarning("To add a new farm, add its '.geojson' file at 'data/geojsons' folder.")

	PrintSuccess("Available farms:")
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".geojson") {
			fmt.Printf("%s- %s%s\n", ColorGreen, strings.TrimSuffix(file.Name(), ".geojson"), ColorReset)
		}
	}
}

// ListFields prints the field ids of one farm, prompting when none is given.
func ListFields(farm string) {
	if farm == "" {
		farm = ReadString("Enter the farm name: ")
	}

	ids, err := sentinel.ListFieldIDs(farm)
	if err != nil {
		PrintError(fmt.Sprintf("Error reading farm geojson: %s", err.Error()))
		return
	}
	if len(ids) == 0 {
		PrintError("No field ids found in the farm geojson file.")
		return
	}

	PrintSuccess("Available fields:")
	for _, id := range ids {
		fmt.Printf("%s- %s%s\n", ColorGreen, id, ColorReset)
	}
}
