// package formatter provides functions to export playlist data to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/models"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/shared"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Formats lists the supported encodings in the order they are shown in help text.
var Formats = []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

// ParseFormat accepts a format name or its usual file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the file extension used for f, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return string(f)
	}
}

// PlaylistURL returns the YouTube URL of an external playlist id.
func PlaylistURL(playlistID string) string {
	return "https://www.youtube.com/playlist?list=" + url.QueryEscape(playlistID)
}

// WatchURL returns the YouTube URL of an external video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}

// Render encodes exports in the given format.
func Render(format Format, exports []models.PlaylistExport) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(exports, true)
	case FormatCSV:
		return ExportToCSV(exports)
	case FormatMarkdown:
		return ExportToMarkdown(exports)
	case FormatText:
		return ExportToText(exports)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// ExportToJSON encodes exports as a JSON array of {playlist, videos} objects.
func ExportToJSON(exports []models.PlaylistExport, pretty bool) ([]byte, error) {
	out := make([]models.PlaylistExport, len(exports))
	copy(out, exports)
	for i := range out {
		if out[i].Videos == nil {
			out[i].Videos = []models.Video{}
		}
	}
	return shared.MarshalJSON(out, pretty)
}

// ExportToCSV writes one row per video with its playlist's columns repeated.
//
// A playlist without videos still gets a row so it survives the export.
func ExportToCSV(exports []models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Playlist", "Playlist ID", "Position", "Title", "Video ID", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, export := range exports {
		p := export.Playlist
		if len(export.Videos) == 0 {
			if err := writer.Write([]string{p.Title, p.PlaylistID, "", "", "", ""}); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
			continue
		}

		for i, video := range export.Videos {
			record := []string{
				p.Title,
				p.PlaylistID,
				strconv.Itoa(i + 1),
				video.Title,
				video.VideoID,
				WatchURL(video.VideoID),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders each playlist as a section with its thumbnail and a linked video list.
func ExportToMarkdown(exports []models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Playlists\n\n")
	if len(exports) == 0 {
		buf.WriteString("_No playlists._\n")
		return buf.Bytes(), nil
	}

	for _, export := range exports {
		p := export.Playlist
		buf.WriteString(fmt.Sprintf("## [%s](%s)\n\n", p.Title, PlaylistURL(p.PlaylistID)))

		if p.ThumbnailURL != "" {
			buf.WriteString(fmt.Sprintf("![Thumbnail](%s)\n\n", p.ThumbnailURL))
		}

		if p.Description != "" {
			buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", p.Description))
		}

		buf.WriteString(fmt.Sprintf("**Videos**: %d\n\n", len(export.Videos)))

		for i, video := range export.Videos {
			buf.WriteString(fmt.Sprintf("%d. [%s](%s)\n", i+1, video.Title, WatchURL(video.VideoID)))
		}
		if len(export.Videos) > 0 {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts exports to a plain text listing.
func ExportToText(exports []models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	for i, export := range exports {
		if i > 0 {
			buf.WriteString("\n")
		}

		p := export.Playlist
		buf.WriteString(fmt.Sprintf("Playlist: %s (%s)\n", p.Title, p.PlaylistID))
		if p.Description != "" {
			buf.WriteString(fmt.Sprintf("Description: %s\n", p.Description))
		}
		buf.WriteString(fmt.Sprintf("Videos: %d\n", len(export.Videos)))

		for j, video := range export.Videos {
			buf.WriteString(fmt.Sprintf("%d. %s - %s\n", j+1, video.Title, WatchURL(video.VideoID)))
		}
	}

	return buf.Bytes(), nil
}

// WriteExport renders exports and writes them to path, creating parent directories.
//
// When path is a directory the file is named playlists.{ext}.
func WriteExport(format Format, exports []models.PlaylistExport, path string) (string, error) {
	data, err := Render(format, exports)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "playlists."+format.Extension())
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
