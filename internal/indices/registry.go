package indices

// ColorStop is a colormap anchor: a normalized position in [0, 1] and the hex
// color at that position.
type ColorStop struct {
	Position float64
	Hex      string
}

// Info describes one vegetation index for reports and rendering.
type Info struct {
	Name        string
	Description string
	Formula     string
	Min         float64
	Max         float64
	Colormap    []ColorStop
}

var registry = map[string]Info{
	"NDVI": {
		Name:        "NDVI - Normalized Difference Vegetation Index",
		Description: "General vegetation health and density",
		Formula:     "(NIR - RED) / (NIR + RED)",
		Min:         -1, Max: 1,
		Colormap: []ColorStop{
			{0.0, "#8B4513"},
			{0.2, "#D2691E"},
			{0.3, "#FFD700"},
			{0.4, "#FFFF00"},
			{0.5, "#ADFF2F"},
			{0.6, "#7FFF00"},
			{0.7, "#00FF00"},
			{0.8, "#228B22"},
			{1.0, "#006400"},
		},
	},
	"EVI": {
		Name:        "EVI - Enhanced Vegetation Index",
		Description: "Vegetation index with improved sensitivity in dense canopy",
		Formula:     "2.5 * (NIR - RED) / (NIR + 6*RED - 7.5*BLUE + 1)",
		Min:         -1, Max: 1,
		Colormap: []ColorStop{
			{0.0, "#8B4513"},
			{0.2, "#FFD700"},
			{0.4, "#ADFF2F"},
			{0.6, "#00FF00"},
			{1.0, "#006400"},
		},
	},
	"PSRI": {
		Name:        "PSRI - Plant Senescence Reflectance Index",
		Description: "Plant senescence and stress",
		Formula:     "(RED - GREEN) / NIR",
		Min:         -0.2, Max: 0.8,
		Colormap: []ColorStop{
			{0.0, "#00FF00"},
			{0.5, "#FFFF00"},
			{1.0, "#FF0000"},
		},
	},
	"NBR": {
		Name:        "NBR - Normalized Burn Ratio",
		Description: "Burn severity and post-fire recovery",
		Formula:     "(NIR - SWIR2) / (NIR + SWIR2)",
		Min:         -1, Max: 1,
		Colormap: []ColorStop{
			{0.0, "#FF0000"},
			{0.3, "#FFFF00"},
			{0.5, "#00FF00"},
			{1.0, "#006400"},
		},
	},
	"NDSI": {
		Name:        "NDSI - Normalized Difference Snow Index",
		Description: "Snow and ice detection",
		Formula:     "(GREEN - SWIR1) / (GREEN + SWIR1)",
		Min:         -1, Max: 1,
		Colormap: []ColorStop{
			{0.0, "#8B4513"},
			{0.3, "#FFFFFF"},
			{1.0, "#E0F8FF"},
		},
	},
}

// Lookup returns the metadata for an index name, if known.
func Lookup(name string) (Info, bool) {
	info, ok := registry[name]
	return info, ok
}

// Names returns the supported index names in a fixed order.
func Names() []string {
	return []string{"NDVI", "EVI", "PSRI", "NBR", "NDSI"}
}
