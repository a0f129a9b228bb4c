package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a string from stdin with trimming
func ReadString(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	PrintInfo(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// ReadInt reads an integer from stdin, reprompting until valid
func ReadInt(prompt string) int {
	for {
		input := ReadString(prompt)
		value, err := strconv.Atoi(input)
		if err != nil {
			PrintError("Invalid input. Please enter a number.")
			continue
		}
		return value
	}
}

// ReadDate reads a YYYY-MM-DD date from stdin, reprompting until valid
func ReadDate(prompt string) time.Time {
	for {
		input := ReadString(prompt)
		date, err := time.Parse("2006-01-02", input)
		if err != nil {
			PrintError("Invalid date. Please use the YYYY-MM-DD format.")
			continue
		}
		return date
	}
}

// ChooseOption displays a numbered list and returns the selected entry
func ChooseOption(prompt string, options []string) string {
	for {
		fmt.Println()
		for i, option := range options {
			fmt.Printf("%s%d. %s%s\n", ColorGreen, i+1, option, ColorReset)
		}
		choice := ReadInt(prompt)
		if choice < 1 || choice > len(options) {
			PrintError("Invalid choice. Please try again.")
			continue
		}
		return options[choice-1]
	}
}
