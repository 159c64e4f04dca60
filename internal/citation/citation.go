package citation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/gubarz/tutormd/internal/document"
)

// ErrNoTitle is returned for a resource record without a title
var ErrNoTitle = errors.New("resource has no title")

// Resource is an external reference shown after a message body
type Resource struct {
	Title string `mapstructure:"title" json:"title"`
	URL   string `mapstructure:"url" json:"url,omitempty"`
	Type  string `mapstructure:"type" json:"type,omitempty"`
}

// HasLink reports whether the resource carries a URL
func (r Resource) HasLink() bool {
	return strings.TrimSpace(r.URL) != ""
}

// Message is a parsed body plus its trailing resources
type Message struct {
	Body      document.Document `json:"body"`
	Resources []Resource        `json:"resources,omitempty"`
}

// Append attaches resources after the body. Records are kept as-is and in order.
func Append(body document.Document, resources []Resource) Message {
	msg := Message{Body: body}
	if len(resources) > 0 {
		msg.Resources = make([]Resource, len(resources))
		copy(msg.Resources, resources)
	}
	return msg
}

// Load reads resources from a yaml, json or toml file with a top-level
// "resources" list.
func Load(path string) ([]Resource, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading resources %s: %w", path, err)
	}

	var resources []Resource
	if err := v.UnmarshalKey("resources", &resources); err != nil {
		return nil, fmt.Errorf("decoding resources %s: %w", path, err)
	}

	for i, r := range resources {
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("resource %d in %s: %w", i, path, ErrNoTitle)
		}
	}
	return resources, nil
}
