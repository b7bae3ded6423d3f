package shader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrResourceUnavailable is returned when a shader source cannot be opened or read.
var ErrResourceUnavailable = errors.New("shader source unavailable")

// Marker is the directive that starts a section in a combined shader file.
const Marker = "#shader"

// Stage identifies the section lines are currently appended to.
type Stage int

const (
	StageNone Stage = iota - 1
	StageVertex
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "none"
	}
}

// Source is a combined shader file split into its two stages.
type Source struct {
	Vertex   string
	Fragment string

	// Dropped counts lines that appeared before the first section marker.
	// They belong to no stage and are discarded.
	Dropped int
}

// LoadSource reads and splits the combined shader file at path.
func LoadSource(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	defer f.Close()

	src, err := ParseSource(f)
	if err != nil {
		return Source{}, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// LoadSourceFS is LoadSource over a file system, e.g. an embed.FS.
func LoadSourceFS(fsys fs.FS, name string) (Source, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	defer f.Close()

	src, err := ParseSource(f)
	if err != nil {
		return Source{}, fmt.Errorf("%s: %w", name, err)
	}
	return src, nil
}

// ParseSource splits r into vertex and fragment sections in a single pass.
//
// A line containing Marker switches the current stage to vertex or fragment,
// depending on which word follows it; a marker naming neither keeps the
// current stage. Marker lines are never emitted. Every other line is
// appended, newline-terminated, to the current stage. Missing or misspelled
// sections yield empty strings; the compiler reports those.
func ParseSource(r io.Reader) (Source, error) {
	var (
		src     Source
		buf     [2]strings.Builder
		current = StageNone
	)

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			switch {
			case strings.Contains(line, Marker):
				if s, ok := stageOf(line); ok {
					current = s
				}
			case current == StageNone:
				src.Dropped++
			default:
				buf[current].WriteString(line)
				buf[current].WriteByte('\n')
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Source{}, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
		}
	}

	src.Vertex = buf[StageVertex].String()
	src.Fragment = buf[StageFragment].String()
	return src, nil
}

// stageOf reads the stage named after the marker on a directive line.
func stageOf(line string) (Stage, bool) {
	rest := line[strings.Index(line, Marker)+len(Marker):]
	switch {
	case strings.Contains(rest, "vertex"):
		return StageVertex, true
	case strings.Contains(rest, "fragment"):
		return StageFragment, true
	}
	return StageNone, false
}
