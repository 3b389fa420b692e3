package document

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/microcosm-cc/bluemonday"
)

type extractFunc func(path string) (string, error)

var extractors = map[string]extractFunc{
	".pdf":  extractPDF,
	".txt":  extractPlain,
	".md":   extractPlain,
	".html": extractHTML,
	".htm":  extractHTML,
}

func extractPDF(path string) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var out strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		out.WriteString(content)
		out.WriteString("\n")
	}

	return out.String(), nil
}

func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var htmlPolicy = bluemonday.StrictPolicy()

func extractHTML(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	// Block elements would otherwise glue neighbouring words together.
	spaced := strings.NewReplacer("<", " <", ">", "> ").Replace(string(data))

	return html.UnescapeString(htmlPolicy.Sanitize(spaced)), nil
}
