package transcript

import (
	"archive/zip"
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrNoTranscripts = errors.New("no .docx/.txt transcripts found")

// Source is the raw content of one transcript file.
type Source struct {
	Filename    string
	Interviewee string
	Raw         []string // non-blank lines or paragraphs, in file order
}

// Supported reports whether a file name is a transcript we can read.
// Word lock files (~$...) are never supported.
func Supported(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".docx", ".txt":
		return true
	}
	return false
}

// IntervieweeName derives the interviewee from a file name:
// "Jane_Doe.docx" -> "Jane Doe".
func IntervieweeName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(base, "_", " ")
}

// LoadDir reads every supported transcript in dir, in name order.
func LoadDir(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Source
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		src, err := ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoTranscripts, dir)
	}
	return out, nil
}

func ReadFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, err
	}
	defer f.Close()

	src := Source{Filename: filepath.Base(path), Interviewee: IntervieweeName(path)}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		st, err := f.Stat()
		if err != nil {
			return Source{}, err
		}
		src.Raw, err = ReadDocx(f, st.Size())
		if err != nil {
			return Source{}, fmt.Errorf("docx %s: %w", src.Filename, err)
		}
	case ".txt":
		src.Raw, err = ReadText(f)
		if err != nil {
			return Source{}, fmt.Errorf("txt %s: %w", src.Filename, err)
		}
	default:
		return Source{}, fmt.Errorf("unsupported transcript %q", src.Filename)
	}
	return src, nil
}

// ReadText returns the non-blank lines of r. Invalid UTF-8 is dropped.
func ReadText(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var out []string
	for sc.Scan() {
		line := strings.ToValidUTF8(strings.TrimRight(sc.Text(), "\r"), "")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// ReadDocx returns the trimmed, non-blank paragraph texts of a .docx document.
func ReadDocx(r io.ReaderAt, size int64) ([]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	for _, zf := range zr.File {
		if zf.Name != "word/document.xml" {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return docxParagraphs(rc)
	}
	return nil, errors.New("word/document.xml not found")
}

const (
	wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	mcNS   = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

// docxParagraphs collects the text of w:p elements. A paragraph nested in a
// text box is emitted on its own when it closes, without cutting the
// enclosing one; mc:Fallback copies and non-Word namespaces are skipped.
func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		out      []string
		paras    []*strings.Builder
		inText   bool
		fallback int
	)
	top := func() *strings.Builder {
		if len(paras) == 0 {
			return nil
		}
		return paras[len(paras)-1]
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == mcNS && t.Name.Local == "Fallback" {
				fallback++
			}
			if fallback > 0 || t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				paras = append(paras, &strings.Builder{})
			case "t":
				inText = true
			case "tab":
				if b := top(); b != nil {
					b.WriteByte('\t')
				}
			case "br", "cr":
				if b := top(); b != nil {
					b.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space == mcNS && t.Name.Local == "Fallback" {
				fallback--
				continue
			}
			if fallback > 0 || t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if b := top(); b != nil {
					if s := strings.TrimSpace(b.String()); s != "" {
						out = append(out, s)
					}
					paras = paras[:len(paras)-1]
				}
			}
		case xml.CharData:
			if b := top(); inText && fallback == 0 && b != nil {
				b.Write(t)
			}
		}
	}
}

// Parse turns sources into numbered transcript lines.
func Parse(sources []Source) []Line {
	var out []Line
	for _, src := range sources {
		for i, raw := range src.Raw {
			speaker, ts, text := ParseLine(raw)
			out = append(out, Line{
				Interviewee: src.Interviewee,
				LineNumber:  i + 1,
				Speaker:     speaker,
				Timestamp:   ts,
				Text:        text,
			})
		}
	}
	return out
}
