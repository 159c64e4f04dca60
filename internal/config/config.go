package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Output       string `mapstructure:"output"`
	Width        int    `mapstructure:"width"`
	GlamourStyle string `mapstructure:"glamour_style"`
	JSONIndent   bool   `mapstructure:"json_indent"`
	Pager        bool   `mapstructure:"pager"`
	Resources    string `mapstructure:"resources"`
	ColorHeading string `mapstructure:"color_heading"`
	ColorCode    string `mapstructure:"color_code"`
	ColorQuote   string `mapstructure:"color_quote"`
	ColorLink    string `mapstructure:"color_link"`
	ColorRule    string `mapstructure:"color_rule"`
	ColorDim     string `mapstructure:"color_dim"`
}

// C is a snapshot of the configuration, filled by Init and kept in step
// by the setters. The getters read viper directly and also see
// environment and flag overrides made after Init.
var C Config

// Keys lists every configuration key in display order
var Keys = []string{
	"output", "width", "glamour_style", "json_indent", "pager", "resources",
	"color_heading", "color_code", "color_quote", "color_link", "color_rule", "color_dim",
}

// SetDefaults seeds viper with default values
func SetDefaults() {
	viper.SetDefault("output", "term")
	viper.SetDefault("width", 80)
	viper.SetDefault("glamour_style", "dark")
	viper.SetDefault("json_indent", true)
	viper.SetDefault("pager", false)
	viper.SetDefault("resources", "")
	viper.SetDefault("color_heading", "36") // Cyan
	viper.SetDefault("color_code", "32")    // Green
	viper.SetDefault("color_quote", "90")   // Gray
	viper.SetDefault("color_link", "34")    // Blue
	viper.SetDefault("color_rule", "240")
	viper.SetDefault("color_dim", "241")
}

// Init initializes configuration with viper
func Init() error {
	SetDefaults()

	viper.SetConfigName("tutormd")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "tutormd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("TUTORMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetOutput returns the output format
func GetOutput() string {
	return viper.GetString("output")
}

// GetWidth returns the wrap width, never below 20
func GetWidth() int {
	if w := viper.GetInt("width"); w >= 20 {
		return w
	}
	return 20
}

// GetGlamourStyle returns the glamour standard style name
func GetGlamourStyle() string {
	return viper.GetString("glamour_style")
}

// GetJSONIndent returns whether JSON output is indented
func GetJSONIndent() bool {
	return viper.GetBool("json_indent")
}

// GetPager returns whether to open the pager
func GetPager() bool {
	return viper.GetBool("pager")
}

// GetResources returns the default resource file with tilde expansion
func GetResources() string {
	return expandTilde(viper.GetString("resources"))
}

func GetColorHeading() string { return viper.GetString("color_heading") }
func GetColorCode() string    { return viper.GetString("color_code") }
func GetColorQuote() string   { return viper.GetString("color_quote") }
func GetColorLink() string    { return viper.GetString("color_link") }
func GetColorRule() string    { return viper.GetString("color_rule") }
func GetColorDim() string     { return viper.GetString("color_dim") }

// ConfigFile returns the config file in use, if any
func ConfigFile() string {
	return viper.ConfigFileUsed()
}

// Get returns the effective value of a key
func Get(key string) any {
	return viper.Get(key)
}

// SetOutput sets output format at runtime
func SetOutput(format string) {
	viper.Set("output", format)
	C.Output = format
}

// SetWidth sets wrap width at runtime
func SetWidth(width int) {
	viper.Set("width", width)
	C.Width = width
}

// SetPager enables the pager at runtime
func SetPager(enabled bool) {
	viper.Set("pager", enabled)
	C.Pager = enabled
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
