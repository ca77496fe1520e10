package lrc

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/skillsenselab/lyricsync/timeline"
)

// Generator is the tool name written to the [re:] header tag.
const Generator = "lyricsync"

// Metadata holds the optional ID tag headers prepended to an LRC file. Zero
// fields are omitted.
type Metadata struct {
	Title  string
	Artist string
	Album  string
	Author string
}

// Marshal renders segments as LRC text in timeline order. Each line pairs the
// segment's start timestamp with its trimmed text. Lines whose trimmed text
// is empty are skipped: an empty line in an LRC file blanks the display in
// most players, which is never what a deleted-text edit intends. The set
// Metadata fields become header tags; the [re:lyricsync] generator tag is
// written even when meta is zero, so every export carries its provenance.
func Marshal(segments []timeline.Segment, meta Metadata) string {
	var b strings.Builder

	writeTag(&b, "ti", meta.Title)
	writeTag(&b, "ar", meta.Artist)
	writeTag(&b, "al", meta.Album)
	writeTag(&b, "by", meta.Author)
	writeTag(&b, "re", Generator)

	for _, seg := range segments {
		text := seg.DisplayText()
		if text == "" {
			continue
		}
		b.WriteString(FormatTimestamp(seg.Start))
		b.WriteString(text)
		b.WriteByte('\n')
	}

	return b.String()
}

func writeTag(b *strings.Builder, tag, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "[%s:%s]\n", tag, value)
}

// FormatTimestamp renders seconds as an LRC time tag, "[mm:ss.cc]": minutes
// zero-padded to two digits, seconds to two integer and two fractional
// digits. Values are rounded to the nearest centisecond with carry, so 59.999
// seconds becomes [01:00.00] rather than an out-of-range seconds field.
// Negative times clamp to zero.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	centis := int64(seconds*100 + 0.5)
	mins := centis / 6000
	centis %= 6000
	return fmt.Sprintf("[%02d:%02d.%02d]", mins, centis/100, centis%100)
}

// Filename derives the export file name from the source audio file name,
// replacing its extension with .lrc. An empty name falls back to
// "lyrics.lrc".
func Filename(audioName string) string {
	base := filepath.Base(strings.TrimSpace(audioName))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "lyrics.lrc"
	}
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if name == "" {
		return "lyrics.lrc"
	}
	return name + ".lrc"
}
