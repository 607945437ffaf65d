package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/analysis"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/orchestrator"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/transcript"
)

type FileResult struct {
	Filename    string                 `json:"filename"`
	Error       string                 `json:"error,omitempty"`
	Interviewee string                 `json:"interviewee,omitempty"`
	Lines       int                    `json:"lines,omitempty"`
	Sentences   int                    `json:"sentences,omitempty"`
	Roles       []analysis.RoleSummary `json:"roles,omitempty"`
}

type ServiceSplit struct {
	SubjectOnly   int `json:"subject_only"`
	OtherServices int `json:"other_services"`
}

type AnalyzeResponse struct {
	Results      []FileResult                     `json:"results"`
	WordStats    []analysis.WordStat              `json:"word_stats,omitempty"`
	WordGroups   []analysis.WordGroup             `json:"word_groups,omitempty"`
	ServiceSplit *ServiceSplit                    `json:"service_split,omitempty"`
	Distribution map[string]analysis.Distribution `json:"distribution,omitempty"`
	PlotPNG      string                           `json:"plot_png_base64,omitempty"`
}

const unsupportedFile = "Only .docx and .txt files are supported"

func (s *Server) analyzeTranscripts(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form with files"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	dir, err := os.MkdirTemp("", "yucg-upload-*")
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not allocate upload directory"})
		return
	}
	defer os.RemoveAll(dir)

	var (
		results []FileResult
		sources []transcript.Source
	)
	for _, fh := range files {
		src, err := s.readUpload(c, dir, fh)
		if err != nil {
			results = append(results, FileResult{Filename: uploadName(fh), Error: err.Error()})
			continue
		}
		sources = append(sources, src)
	}

	resp, err := s.runUploads(c, sources)
	if err != nil {
		_ = c.Error(err)
		results = append(results, FileResult{Filename: "pipeline", Error: err.Error()})
		c.JSON(http.StatusOK, AnalyzeResponse{Results: results})
		return
	}
	resp.Results = append(results, resp.Results...)
	c.JSON(http.StatusOK, resp)
}

func uploadName(fh *multipart.FileHeader) string {
	if fh.Filename == "" {
		return "unknown"
	}
	return filepath.Base(fh.Filename)
}

var errUnsupported = errors.New(unsupportedFile)

// readUpload stores one upload under dir with its original base name, so
// the interviewee name derives from it, and reads it back.
func (s *Server) readUpload(c *gin.Context, dir string, fh *multipart.FileHeader) (transcript.Source, error) {
	name := uploadName(fh)
	if !transcript.Supported(name) {
		return transcript.Source{}, errUnsupported
	}
	dst := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return transcript.Source{}, fmt.Errorf("save upload: %w", err)
	}
	return transcript.ReadFile(dst)
}

func (s *Server) runUploads(c *gin.Context, sources []transcript.Source) (AnalyzeResponse, error) {
	res, err := s.pipeline.RunSources(c.Request.Context(), sources)
	if err != nil {
		return AnalyzeResponse{}, err
	}
	png, err := s.pipeline.ScatterPNG(res.Groups, orchestrator.PlotLabels{})
	if err != nil {
		return AnalyzeResponse{}, err
	}

	out := AnalyzeResponse{
		WordStats:    res.WordStats,
		WordGroups:   res.Groups,
		ServiceSplit: &ServiceSplit{SubjectOnly: len(res.SubjectOnly), OtherServices: len(res.Other)},
		Distribution: map[string]analysis.Distribution{
			"subject_only":   res.SubjectDist,
			"other_services": res.OtherDist,
		},
	}
	if png != nil {
		out.PlotPNG = base64.StdEncoding.EncodeToString(png)
	}

	for _, src := range sources {
		fr := FileResult{Filename: src.Filename, Interviewee: src.Interviewee}
		for _, l := range res.Lines {
			if l.Interviewee == src.Interviewee {
				fr.Lines++
			}
		}
		for _, st := range res.Sentences {
			if st.Interviewee == src.Interviewee {
				fr.Sentences++
			}
		}
		for _, r := range res.Roles {
			if r.Interviewee == src.Interviewee {
				fr.Roles = append(fr.Roles, r)
			}
		}
		out.Results = append(out.Results, fr)
	}
	logrus.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"files":      len(sources),
		"sentences":  len(res.Sentences),
		"groups":     len(res.Groups),
	}).Info("transcripts analyzed")
	return out, nil
}

type regenerateRequest struct {
	Rows []analysis.WordStat `json:"rows"`
	orchestrator.PlotLabels
}

type regenerateResponse struct {
	WordGroups []analysis.WordGroup `json:"word_groups"`
	PlotPNG    string               `json:"plot_png_base64"`
}

// regeneratePlot re-folds edited word stats and redraws the scatter plot
// with optional title and axis labels.
func (s *Server) regeneratePlot(c *gin.Context) {
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	groups := s.pipeline.Regroup(req.Rows)
	png, err := s.pipeline.ScatterPNG(groups, req.PlotLabels)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := regenerateResponse{WordGroups: groups}
	if out.WordGroups == nil {
		out.WordGroups = []analysis.WordGroup{}
	}
	if png != nil {
		out.PlotPNG = base64.StdEncoding.EncodeToString(png)
	}
	c.JSON(http.StatusOK, out)
}
