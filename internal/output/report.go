package output

import (
	"os"

	"github.com/propcomply/compliance-engine/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes the report in the requested format to dir and returns
// the written paths. "all" writes the verbose console, timeline CSV and HTML.
func GenerateReport(report *domain.ComplianceReport, format, dir string) ([]string, error) {
	if f := GetFormatterByName(format); f != nil {
		path, err := WriteFormatted(f, report, dir, ExtensionFor(f.Name()))
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
	if format == "all" {
		var paths []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVTimelineExporter{}, HTMLFormatter{}} {
			path, err := WriteFormatted(f, report, dir, ExtensionFor(f.Name()))
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}
	return nil, UnsupportedFormatError(format)
}

// SavePortfolio writes a portfolio as YAML so it can be loaded again.
func SavePortfolio(portfolio *domain.Portfolio, filename string) error {
	b, err := yaml.Marshal(portfolio)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
