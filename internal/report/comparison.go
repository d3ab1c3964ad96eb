// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"github.com/snapdiff/snapdiff/internal/differ"
)

// IndexFile is the name of every generated report page.
const IndexFile = "index.html"

type imageView struct {
	Title string
	Src   string
}

type sectionView struct {
	Name   string
	Images []imageView
}

var comparisonTmpl = template.Must(template.New("comparison").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Image comparison</title>
<style>
body{font-family:system-ui,sans-serif;margin:1rem}
img{max-width:98vw;border:1px solid #ddd}
</style>
</head>
<body>
{{- range .}}
<h2>{{.Name}}</h2>
{{- range .Images}}
<h3>{{.Title}}</h3>
<img src="{{.Src}}">
{{- end}}
{{- end}}
</body>
</html>
`))

// WriteComparison replaces dir with a report of result and returns the path
// of its index page. Images are referenced relative to the store, so dir is
// expected to sit next to the store's images directory.
func WriteComparison(dir string, result differ.Result) (string, error) {
	changed := sectionView{Name: "Changed Images"}
	for _, d := range result.ImageDiffs {
		changed.Images = append(changed.Images, imageView{Title: d.Context.FullTitle, Src: imageSrc(d.CompositeName())})
	}

	sections := []sectionView{
		changed,
		imageChanges("Added Images", result.AddedImages),
		imageChanges("Removed Images", result.RemovedImages),
		testChanges("Added Tests", result.AddedTests),
		testChanges("Removed Tests", result.RemovedTests),
	}

	var buf bytes.Buffer
	if err := comparisonTmpl.Execute(&buf, sections); err != nil {
		return "", fmt.Errorf("render comparison report: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("failed to clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, IndexFile)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Debugf("wrote comparison report %s", path)

	return path, nil
}

func imageChanges(name string, changes []differ.ImageChange) sectionView {
	s := sectionView{Name: name}
	for _, c := range changes {
		s.Images = append(s.Images, imageView{Title: c.Context.FullTitle, Src: imageSrc(c.Image + ".png")})
	}
	return s
}

// testChanges lists every image of every test under the test's title.
func testChanges(name string, tests []differ.TestChange) sectionView {
	s := sectionView{Name: name}
	for _, t := range tests {
		for _, img := range t.Images {
			s.Images = append(s.Images, imageView{Title: t.Context.FullTitle, Src: imageSrc(img + ".png")})
		}
	}
	return s
}

func imageSrc(name string) string {
	return "../images/" + name
}
