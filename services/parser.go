package services

import (
	"fmt"
	"html"
	"strings"
)

const (
	fileMarkerPrefix = "=== FILE:"
	fileMarkerSuffix = "==="
	endFilesMarker   = "=== END FILES ==="
)

// ParseGeneratedFiles extracts a filename -> content map from a model reply.
// It tries the explicit file-marker protocol first, then markdown code
// fences, and finally wraps the raw reply in a viewable HTML page so a
// generation never comes back empty-handed.
func ParseGeneratedFiles(reply string) map[string]string {
	files := parseFileMarkers(reply)
	if len(files) == 0 {
		files = parseCodeFences(reply)
	}
	if len(files) == 0 {
		files = map[string]string{"index.html": fallbackHTML(reply)}
	}
	return files
}

func parseFileMarkers(reply string) map[string]string {
	files := make(map[string]string)

	var currentFile string
	var content []string

	flush := func() {
		if currentFile != "" && len(content) > 0 {
			files[currentFile] = strings.Join(content, "\n")
		}
	}

	for _, line := range strings.Split(reply, "\n") {
		switch {
		case strings.HasPrefix(line, fileMarkerPrefix):
			flush()
			name := strings.TrimPrefix(line, fileMarkerPrefix)
			name = strings.TrimSuffix(strings.TrimSpace(name), fileMarkerSuffix)
			currentFile = strings.TrimSpace(name)
			content = nil
		case strings.HasPrefix(line, endFilesMarker):
			flush()
			return files
		case currentFile != "":
			content = append(content, line)
		}
	}

	flush()
	return files
}

func parseCodeFences(reply string) map[string]string {
	files := make(map[string]string)

	var language string
	var content []string
	inFence := false

	for _, line := range strings.Split(reply, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inFence {
				if name := languageToFilename(language); name != "" && len(content) > 0 {
					files[name] = strings.Join(content, "\n")
				}
				inFence = false
				language = ""
				content = nil
			} else {
				inFence = true
				language = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(line), "```"))
			}
			continue
		}
		if inFence {
			content = append(content, line)
		}
	}

	return files
}

func languageToFilename(language string) string {
	switch language {
	case "html":
		return "index.html"
	case "css":
		return "styles.css"
	case "javascript", "js":
		return "script.js"
	case "":
		return ""
	default:
		return language + ".txt"
	}
}

// fallbackHTML wraps an unparseable reply in a page the preview iframe can
// still render.
func fallbackHTML(reply string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Generated Website</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; line-height: 1.6; }
        .container { max-width: 800px; margin: 0 auto; }
        h1 { color: #333; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Generated Website</h1>
        <div>
            <p>AI Response:</p>
            <pre style="background: #f4f4f4; padding: 15px; border-radius: 5px; overflow-x: auto;">%s</pre>
        </div>
    </div>
</body>
</html>`, html.EscapeString(truncate(reply, 1000)))
}
