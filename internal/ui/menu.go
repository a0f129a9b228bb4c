package ui

import (
	"fmt"
	"os"

	"github.com/agrolens/agrolens-api-poc/internal/analysis"
	"github.com/agrolens/agrolens-api-poc/internal/cache"
)

// UI drives the interactive CLI around one pipeline service instance.
type UI struct {
	service    *analysis.Service
	statsCache *cache.FileCache[analysis.FieldStats]
}

func New(service *analysis.Service) *UI {
	return &UI{
		service:    service,
		statsCache: cache.NewFileCache[analysis.FieldStats]("field_stats"),
	}
}

type menuOption struct {
	title   string
	handler func()
}

// Run displays the main menu and handles user input
func (u *UI) Run() {
	menuOptions := []menuOption{
		{"Analyze a field for a specific date", u.AnalyzeField},
		{"Create management zones for a field", u.CreateZones},
		{"Analyze every field of a farm", u.AnalyzeFarm},
		{"View the list of available farms", ListFarms},
		{"View the list of available farm fields", func() { ListFields("") }},
		{"Exit the application", func() { fmt.Println("Exiting..."); os.Exit(0) }},
	}

	for {
		fmt.Println("\033[34m===================\033[0m")
		for i, opt := range menuOptions {
			fmt.Printf("\033[34m%d. %s\033[0m\n", i+1, opt.title)
		}
		fmt.Println("\033[34mPlease enter your choice:\033[0m")

		var choice int
		_, err := fmt.Scan(&choice)
		if err != nil {
			fmt.Printf("\n\033[31mInvalid input. Please enter a number.\033[0m\n")
			fmt.Scanln() // Clear the buffer
			continue
		}

		if choice < 1 || choice > len(menuOptions) {
			fmt.Println("\033[31mInvalid choice. Please try again.\033[0m")
			continue
		}

		menuOptions[choice-1].handler()
	}
}
