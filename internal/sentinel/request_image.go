package sentinel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agrolens/agrolens-api-poc/internal/properties"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/oauth2/clientcredentials"
)

const processURL = "https://sh.dataspace.copernicus.eu/api/v1/process"

func calculatePixels(distance float64, resolution float64) int {
	pixels := distance * (111_000.0 / resolution) // Rough conversion assuming degrees to meters
	if pixels < 1 {
		return 1
	}
	if pixels > 2500 {
		return 2500
	}
	return int(pixels)
}

// requestImage fetches a clipped multiband GeoTIFF for the boundary from the
// Sentinel Hub process API. The evalscript band order must match the bandBlue
// through bandSCL constants.
func requestImage(startDate, endDate time.Time, boundary orb.Polygon) ([]byte, error) {
	startDateStr := startDate.Format(time.RFC3339)
	endDateStr := endDate.Format(time.RFC3339)

	bbox := boundary.Bound()
	widthPixels := calculatePixels(bbox.Max.X()-bbox.Min.X(), 10)
	heightPixels := calculatePixels(bbox.Max.Y()-bbox.Min.Y(), 10)

	evalscript := `
    //VERSION=3
    function setup() {
      return {
        input: ["B02", "B03", "B04", "B08", "B11", "B12", "SCL"],
        output: {
          id: "default",
          bands: 7,
          sampleType: SampleType.FLOAT32,
        },
      }
    }

    function evaluatePixel(sample) {
      return [sample.B02, sample.B03, sample.B04, sample.B08, sample.B11, sample.B12, sample.SCL];
    }
  `

	geometryGeojson, err := geojson.NewGeometry(boundary).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to export boundary to GeoJSON: %w", err)
	}
	var geojsonMap map[string]interface{}
	if err := json.Unmarshal(geometryGeojson, &geojsonMap); err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}

	requestPayload := map[string]interface{}{
		"input": map[string]interface{}{
			"bounds": map[string]interface{}{
				"geometry": geojsonMap,
			},
			"data": []map[string]interface{}{
				{
					"dataFilter": map[string]interface{}{
						"timeRange": map[string]string{
							"from": startDateStr,
							"to":   endDateStr,
						},
					},
					"type": "sentinel-2-l2a",
				},
			},
		},
		"output": map[string]interface{}{
			"width":  widthPixels,
			"height": heightPixels,
			"responses": []map[string]interface{}{
				{
					"identifier": "default",
					"format": map[string]string{
						"type": "image/tiff",
					},
				},
			},
		},
		"evalscript": evalscript,
		"mosaicking": "mostRecent",
	}

	requestBody, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %v", err)
	}

	clientID := properties.CopernicusClientID()
	clientSecret := properties.CopernicusClientSecret()
	tokenURL := properties.CopernicusTokenURL()
	if clientID == "" || clientSecret == "" || tokenURL == "" {
		return nil, fmt.Errorf("missing required environment variables: COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET, or COPERNICUS_TOKEN_URL")
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := config.Client(context.Background())

	return postWithRetry(httpClient, processURL, requestBody, 10)
}

// postWithRetry posts the payload until the server answers 200, keeping the
// last failure text so the final error carries the server's diagnostics.
func postWithRetry(client *http.Client, url string, payload []byte, retries int) ([]byte, error) {
	var lastFailure string
	for attempt := 1; attempt <= retries; attempt++ {
		response, err := client.Post(url, "application/json", bytes.NewReader(payload))
		switch {
		case err != nil:
			lastFailure = err.Error()
		case response.StatusCode != http.StatusOK:
			body, _ := io.ReadAll(response.Body)
			response.Body.Close()
			lastFailure = fmt.Sprintf("status %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
		default:
			content, err := io.ReadAll(response.Body)
			response.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to read response body: %w", err)
			}
			return content, nil
		}

		fmt.Printf("Attempt %d failed: %s\n", attempt, lastFailure)
		if attempt < retries {
			time.Sleep(2 * time.Second)
		}
	}
	return nil, fmt.Errorf("failed to request image after %d attempts, last failure: %s", retries, lastFailure)
}

// GetImage returns the path of the acquisition GeoTIFF for a field and date,
// downloading and persisting it on first use.
func GetImage(farm, fieldID string, boundary orb.Polygon, date time.Time) (string, error) {
	imageDir := filepath.Join(properties.ImagesPath(), fmt.Sprintf("%s_%s", farm, fieldID))
	imagePath := filepath.Join(imageDir, date.Format("2006-01-02")+".tiff")

	if _, err := os.Stat(imagePath); err == nil {
		return imagePath, nil
	}

	content, err := requestImage(date.AddDate(0, 0, -5), date, boundary)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(imageDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(imagePath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return imagePath, nil
}
