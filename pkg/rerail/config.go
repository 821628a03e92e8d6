package rerail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// StrokeStyle selects a solid or dashed stroke.
type StrokeStyle int

const (
	StyleSolid StrokeStyle = iota
	StyleDashed
)

func (s StrokeStyle) String() string {
	switch s {
	case StyleSolid:
		return "solid"
	case StyleDashed:
		return "dashed"
	default:
		return fmt.Sprintf("StrokeStyle(%d)", int(s))
	}
}

// BorderStyle is the stroke used for border edges of one level.
type BorderStyle struct {
	Width int32       `json:"width" yaml:"width" toml:"width" validate:"gte=1"`
	Style StrokeStyle `json:"style" yaml:"style" toml:"style" validate:"gte=0,lte=1"`
}

// LODTable holds zoom thresholds: an entity is drawn while the zoom is at
// or below its threshold. Railway is indexed by railway level, Station by
// railway level then station level.
type LODTable struct {
	Railway [MaxRailwayLevel + 1]int32                        `json:"railway" yaml:"railway" toml:"railway" validate:"dive,gte=1"`
	Station [MaxRailwayLevel + 1][MaxStationLevel + 1]int32 `json:"station" yaml:"station" toml:"station" validate:"dive,dive,gte=1"`
}

// RailwayVisible reports whether a railway of the given level is drawn at
// zoom.
func (t LODTable) RailwayVisible(level int, zoom int32) bool {
	return zoom <= t.Railway[clampLevel(level, MaxRailwayLevel)]
}

// StationVisible reports whether a station of stationLevel on a railway of
// railwayLevel is drawn at zoom.
func (t LODTable) StationVisible(railwayLevel, stationLevel int, zoom int32) bool {
	return zoom <= t.Station[clampLevel(railwayLevel, MaxRailwayLevel)][clampLevel(stationLevel, MaxStationLevel)]
}

func clampLevel(l, hi int) int {
	return min(max(l, 0), hi)
}

// Config holds presentation parameters. It is not part of a saved map.
type Config struct {
	LOD LODTable `json:"lod" yaml:"lod" toml:"lod"`

	// StationTickLength is the length in world units of the tick drawn
	// across a railway at each station.
	StationTickLength int32 `json:"stationTickLength" yaml:"stationTickLength" toml:"stationTickLength" validate:"gte=0"`
	// LinkDistance is the screen distance in pixels within which
	// LinkToStation finds a station to join.
	LinkDistance int32 `json:"linkDistance" yaml:"linkDistance" toml:"linkDistance" validate:"gte=0"`

	RailwayWidth int32 `json:"railwayWidth" yaml:"railwayWidth" toml:"railwayWidth" validate:"gte=1"`
	StationColor Color `json:"stationColor" yaml:"stationColor" toml:"stationColor"`
	StationWidth int32 `json:"stationWidth" yaml:"stationWidth" toml:"stationWidth" validate:"gte=1"`
	BorderColor  Color `json:"borderColor" yaml:"borderColor" toml:"borderColor"`
	// BorderStyles is indexed by border level.
	BorderStyles [MaxBorderLevel + 1]BorderStyle `json:"borderStyles" yaml:"borderStyles" toml:"borderStyles" validate:"dive"`
}

// DefaultConfig returns the stock presentation config.
func DefaultConfig() Config {
	return Config{
		LOD: LODTable{
			Railway: [4]int32{100, 1000, 5000, 10000},
			Station: [4][4]int32{
				{20, 50, 100, 100},
				{50, 100, 500, 1000},
				{100, 500, 1000, 5000},
				{100, 1000, 5000, 10000},
			},
		},
		StationTickLength: 200,
		LinkDistance:      10,
		RailwayWidth:      1,
		StationColor:      Color{R: 148, G: 148, B: 148},
		StationWidth:      4,
		BorderColor:       Color{},
		BorderStyles: [3]BorderStyle{
			{Width: 1, Style: StyleDashed},
			{Width: 1, Style: StyleSolid},
			{Width: 2, Style: StyleSolid},
		},
	}
}

// Validate checks every field against its allowed range.
func (c Config) Validate() error {
	return validateInput("config", c)
}

// ConfigFormat names a config file encoding.
type ConfigFormat string

const (
	ConfigTOML ConfigFormat = "toml"
	ConfigYAML ConfigFormat = "yaml"
	ConfigJSON ConfigFormat = "json"
)

// ConfigFormatFromPath picks the encoding from a file extension.
func ConfigFormatFromPath(path string) (ConfigFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ConfigTOML, nil
	case ".yaml", ".yml":
		return ConfigYAML, nil
	case ".json":
		return ConfigJSON, nil
	default:
		return "", fmt.Errorf("config %s: unknown extension", path)
	}
}

// ParseConfig decodes a config file. Fields absent from data keep their
// DefaultConfig values.
func ParseConfig(data []byte, format ConfigFormat) (Config, error) {
	cfg := DefaultConfig()
	var err error
	switch format {
	case ConfigTOML:
		err = toml.Unmarshal(data, &cfg)
	case ConfigYAML:
		err = yaml.Unmarshal(data, &cfg)
	case ConfigJSON:
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return Config{}, fmt.Errorf("decoding %s config: %w", format, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes the config file at path.
func LoadConfig(path string) (Config, error) {
	format, err := ConfigFormatFromPath(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data, format)
}

var inputValidator = validator.New(validator.WithRequiredStructEnabled())

func validateInput(what string, v any) error {
	if err := inputValidator.Struct(v); err != nil {
		return &InputError{What: what, Err: err}
	}
	return nil
}
