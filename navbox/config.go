package navbox

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hesusruiz/vcutils/yaml"
)

// Config holds the settings of a processing run.
// They come from the YAML front matter of the page or from a configuration file,
// under the 'navbox' key.
type Config struct {
	Namespace string // namespace of the page being rendered
	BaseURL   string
	MediaURL  string
	CamelCase bool
	Template  string // HTML template file for whole pages
	CodeStyle string // chroma style for source previews
	Pages     string // directory with the pages for '!ns'
	DB        string // bbolt database with the pages for '!ns'
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		BaseURL:   defaultBaseURL,
		MediaURL:  defaultMediaURL,
		CodeStyle: "github",
	}
}

// ConfigFromYAML reads the settings under the 'navbox' key, using the defaults
// for those not specified.
func ConfigFromYAML(y *yaml.YAML) Config {
	return DefaultConfig().Merge(y)
}

// Merge returns c with the settings under the 'navbox' key of y replacing its values.
func (c Config) Merge(y *yaml.YAML) Config {
	if y == nil {
		return c
	}

	c.Namespace = y.String("navbox.namespace", c.Namespace)
	c.BaseURL = y.String("navbox.baseURL", c.BaseURL)
	c.MediaURL = y.String("navbox.mediaURL", c.MediaURL)
	c.CamelCase = y.String("navbox.camelCase", strconv.FormatBool(c.CamelCase)) == "true"
	c.Template = y.String("navbox.template", c.Template)
	c.CodeStyle = y.String("navbox.codeStyle", c.CodeStyle)
	c.Pages = y.String("navbox.pages", c.Pages)
	c.DB = y.String("navbox.db", c.DB)

	return c
}

// Links returns the link adapter configured by c.
func (c Config) Links() *WikiLinks {
	return &WikiLinks{
		BaseURL:   c.BaseURL,
		MediaURL:  c.MediaURL,
		CamelCase: c.CamelCase,
	}
}

// SplitFrontMatter separates the YAML metadata at the beginning of a page from the
// rest of the text. The metadata is delimited by lines starting with '---'.
// It returns the parsed metadata (nil if there is none), the rest of the text and
// the number of lines taken by the metadata.
func SplitFrontMatter(text string) (*yaml.YAML, string, int, error) {

	// We accept YAML data only at the beginning of the file
	if !strings.HasPrefix(text, "---") {
		return nil, text, 0, nil
	}

	// Lines keep their terminators, so that we know exactly where the body starts
	lines := strings.SplitAfter(text, "\n")
	consumed := len(lines[0])
	lineCount := 1

	// Build a string with all subsequent lines up to the next "---"
	var yamlString strings.Builder
	var endYamlFound bool

	for _, line := range lines[1:] {
		lineCount++
		consumed += len(line)

		if strings.HasPrefix(line, "---") {
			endYamlFound = true
			break
		}

		yamlString.WriteString(strings.TrimRight(line, "\r\n"))
		yamlString.WriteString("\n")
	}

	if !endYamlFound {
		return nil, text, 0, fmt.Errorf("end of file reached but no end of YAML section found")
	}

	config, err := yaml.ParseYaml(yamlString.String())
	if err != nil {
		return nil, text, 0, fmt.Errorf("malformed YAML metadata: %w", err)
	}

	return config, text[consumed:], lineCount, nil
}
