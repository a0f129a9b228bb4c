package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/agrolens/agrolens-api-poc/internal/analysis"
	"github.com/agrolens/agrolens-api-poc/internal/notification"
	"github.com/agrolens/agrolens-api-poc/internal/properties"
	"github.com/agrolens/agrolens-api-poc/internal/ui"
	"github.com/agrolens/agrolens-api-poc/internal/zoning"
	"github.com/airbusgeo/godal"
	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func printBanner() {
	figure1 := figure.NewFigure("AgroLens", "isometric1", true)
	figure2 := figure.NewFigure("CLI", "isometric1", true)
	bannercolor.Cyan(figure1.String())
	bannercolor.Cyan(figure2.String())
	fmt.Println()
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_MODE") == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			pc, file, line, ok := runtime.Caller(3)
			var location string
			if ok {
				fn := runtime.FuncForPC(pc)
				location = fmt.Sprintf("%s:%d in %s", file, line, fn.Name())
			} else {
				location = "Unknown location"
			}

			fmt.Printf("\n\033[31mPANIC: %v\033[0m\n", r)
			fmt.Printf("\033[31mLocation: %s\033[0m\n", location)
			fmt.Printf("\033[31mExiting...\033[0m\n")

			stack := debug.Stack()
			errMessage := fmt.Sprintf("AgroLens CLI panic:\n\n%v\n\nLocation: %s\n\nStack trace:\n%s", r, location, stack)
			if err := notification.SendDiscordErrorNotification(errMessage); err != nil {
				fmt.Printf("\033[31mFailed to send notification: %s\033[0m\n", err.Error())
			}
			os.Exit(1)
		}
	}()

	err := godotenv.Load("../.env")
	if err != nil {
		err = godotenv.Load(".env")
		if err != nil {
			fmt.Println("\033[33mNo .env file found, relying on the environment.\033[0m")
		}
	}

	godal.RegisterInternalDrivers()

	logger, err := newLogger()
	if err != nil {
		fmt.Printf("\033[31mFailed to build logger: %s\033[0m\n", err.Error())
		os.Exit(1)
	}
	defer logger.Sync()

	exporter, err := zoning.NewGDALExporter(properties.ResultsPath())
	if err != nil {
		fmt.Printf("\033[31mFailed to initialize zone exporter: %s\033[0m\n", err.Error())
		os.Exit(1)
	}

	service := analysis.NewService(logger, exporter, properties.ResultsPath())

	printBanner()
	ui.New(service).Run()
}
