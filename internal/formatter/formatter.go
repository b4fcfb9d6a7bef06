// package formatter renders resolution and suggestion results for the CLI
// (plain text, Markdown, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/spillover/internal/services"
	"github.com/desertthunder/spillover/internal/shared"
	"github.com/desertthunder/spillover/internal/tasks"
)

// FormatDuration renders milliseconds as m:ss.
func FormatDuration(ms int) string {
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func artistLine(artists []services.Artist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// ResolutionToText renders a resolution result as aligned plain text.
func ResolutionToText(result *tasks.ResolutionResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Source: %s\n", result.Source))
	if result.SearchQuery != nil {
		buf.WriteString(fmt.Sprintf("Query: %s\n", *result.SearchQuery))
	}
	buf.WriteString(fmt.Sprintf("Candidates: %d\n\n", len(result.Tracks)))

	for i, track := range result.Tracks {
		liked := " "
		if track.IsLiked {
			liked = "*"
		}

		confidence := ""
		if track.Confidence != nil {
			confidence = fmt.Sprintf(" [%d%% %s]", track.Confidence.Score, track.Confidence.Level)
		}

		buf.WriteString(fmt.Sprintf("%2d. %s %s - %s (%s)%s\n",
			i+1, liked, artistLine(track.Artists), track.Name, FormatDuration(track.DurationMS), confidence))
	}

	return buf.Bytes()
}

// ResolutionToMarkdown renders a resolution result as a Markdown document.
func ResolutionToMarkdown(result *tasks.ResolutionResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Resolution: %s\n\n", result.Source))
	if result.SearchQuery != nil {
		buf.WriteString(fmt.Sprintf("**Query**: %s\n\n", *result.SearchQuery))
	}

	buf.WriteString("## Candidates\n\n")
	for i, track := range result.Tracks {
		confidence := ""
		if track.Confidence != nil {
			confidence = fmt.Sprintf(" - confidence %d (%s)", track.Confidence.Score, track.Confidence.Level)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]%s\n",
			i+1, artistLine(track.Artists), track.Name, FormatDuration(track.DurationMS), confidence))
	}

	return buf.Bytes()
}

// ResolutionToCSV renders candidates with columns: ID, Title, Artist, Duration, Confidence, Level, Liked
func ResolutionToCSV(result *tasks.ResolutionResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Duration", "Confidence", "Level", "Liked"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range result.Tracks {
		score, level := "", ""
		if track.Confidence != nil {
			score = strconv.Itoa(track.Confidence.Score)
			level = string(track.Confidence.Level)
		}

		record := []string{
			track.ID,
			track.Name,
			artistLine(track.Artists),
			strconv.Itoa(track.DurationMS),
			score,
			level,
			strconv.FormatBool(track.IsLiked),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TracksToText renders a suggestion list as plain text.
func TracksToText(tracks []services.Track) []byte {
	var buf bytes.Buffer

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%2d. %s - %s (%s)\n",
			i+1, artistLine(track.Artists), track.Name, FormatDuration(track.DurationMS)))
	}

	return buf.Bytes()
}

// WriteResolution writes a resolution result to w in the requested format.
// Supported formats: text (default), markdown, csv, json.
func WriteResolution(w io.Writer, result *tasks.ResolutionResult, format string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "markdown", "md":
		data = ResolutionToMarkdown(result)
	case "csv":
		data, err = ResolutionToCSV(result)
	case "json":
		data, err = shared.MarshalJSON(result, true)
		data = append(data, '\n')
	default:
		data = ResolutionToText(result)
	}

	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
