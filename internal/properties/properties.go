package properties

import (
	"os"
	"path/filepath"
)

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

// ResultsPath is where rasters, renders, exports and reports land. Defaults
// under RootPath when RESULTS_PATH is not set.
func ResultsPath() string {
	if path := os.Getenv("RESULTS_PATH"); path != "" {
		return path
	}
	return filepath.Join(RootPath(), "data", "results")
}

// GeojsonsPath holds one boundary file per farm, named <farm>.geojson.
func GeojsonsPath() string {
	return filepath.Join(RootPath(), "data", "geojsons")
}

// ImagesPath caches downloaded Sentinel-2 images per farm/field.
func ImagesPath() string {
	return filepath.Join(RootPath(), "data", "images")
}

func CopernicusClientID() string {
	return os.Getenv("COPERNICUS_CLIENT_ID")
}

func CopernicusClientSecret() string {
	return os.Getenv("COPERNICUS_CLIENT_SECRET")
}

func CopernicusTokenURL() string {
	return os.Getenv("COPERNICUS_TOKEN_URL")
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
