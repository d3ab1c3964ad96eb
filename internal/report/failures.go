// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/snapdiff/snapdiff/internal/util"
)

// Failure is a screenshot taken when a test failed and the name of the JSON
// file holding that test's errors. Both are file names inside one folder.
type Failure struct {
	Img  string `json:"img"`
	JSON string `json:"json"`
}

// Title derives a heading from the image name: everything before the first
// dot, with dashes read as spaces.
func (f Failure) Title() string {
	name, _, _ := strings.Cut(f.Img, ".")
	return strings.ReplaceAll(name, "-", " ")
}

type failureView struct {
	Title  string
	Src    string
	Errors string
}

var failuresTmpl = template.Must(template.New("failures").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>A Listing of Test Failures for {{.Commit}}</title>
</head>
<body>
<h2>Failed Tests</h2>
{{- range .Failures}}
<h3>{{.Title}}</h3>
<img src="{{.Src}}" style="max-width: 98vw">
{{- if .Errors}}
<h3>Errors for: {{.Title}}</h3>
<pre style="max-height: 350px; overflow: scroll;">{{.Errors}}</pre>
{{- end}}
{{- end}}
</body>
</html>
`))

// CollectFailures pairs every PNG in dir with its sibling JSON name. The JSON
// file need not exist.
func CollectFailures(dir string) ([]Failure, error) {
	names, err := util.ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	failures := []Failure{}
	for _, n := range names {
		if !strings.HasSuffix(n, ".png") {
			continue
		}
		failures = append(failures, Failure{Img: n, JSON: strings.TrimSuffix(n, ".png") + ".json"})
	}
	return failures, nil
}

// WriteFailures writes dir/index.html listing failures as they will appear
// once dir is published under {baseURL}/{commit}, and returns that page's
// URL. Error files that exist are pretty printed below their image.
func WriteFailures(dir, commit, baseURL string, failures []Failure) (string, error) {
	root := strings.TrimSuffix(baseURL, "/") + "/" + commit

	views := make([]failureView, 0, len(failures))
	for _, f := range failures {
		views = append(views, failureView{
			Title:  f.Title(),
			Src:    root + "/" + f.Img,
			Errors: readErrors(filepath.Join(dir, f.JSON)),
		})
	}

	var buf bytes.Buffer
	err := failuresTmpl.Execute(&buf, struct {
		Commit   string
		Failures []failureView
	}{Commit: commit, Failures: views})
	if err != nil {
		return "", fmt.Errorf("render failure report: %w", err)
	}

	path := filepath.Join(dir, IndexFile)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Debugf("wrote failure report %s", path)

	return root + "/" + IndexFile, nil
}

// readErrors returns the file's JSON indented by two spaces, the raw text if
// it is not JSON, or "" if it cannot be read.
func readErrors(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(raw), "", "  "); err != nil {
		log.WithError(err).Warnf("%s is not JSON", path)
		return string(raw)
	}
	return out.String()
}
