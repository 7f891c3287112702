package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnechkaShv/wordcloud-generator/internal/config"
	"github.com/AnechkaShv/wordcloud-generator/internal/engine"
	"github.com/AnechkaShv/wordcloud-generator/internal/generator"
	"github.com/AnechkaShv/wordcloud-generator/internal/params"
	"github.com/AnechkaShv/wordcloud-generator/internal/render"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

const (
	noSourceNotice = "Upload a text file or paste your text to generate a word cloud."
	// In-memory share of a multipart upload before spilling to disk.
	multipartMemory = 8 << 20
)

type WordCloudHandler struct {
	generator *generator.Generator
	base      params.StopwordSet
	maxUpload int64
	timeout   time.Duration
}

func NewWordCloudHandler(gen *generator.Generator, base params.StopwordSet, cfg *config.Config) *WordCloudHandler {
	return &WordCloudHandler{
		generator: gen,
		base:      base,
		maxUpload: cfg.MaxUploadBytes,
		timeout:   cfg.RequestTimeout,
	}
}

// formValues is what the page submits, echoed back when it is re-rendered.
type formValues struct {
	Width     int
	Height    int
	MaxWords  int
	Stopwords string
	Text      string
	FileName  string
}

func (f formValues) request() generator.Request {
	return generator.Request{
		ExtraStopwords: f.Stopwords,
		Width:          f.Width,
		Height:         f.Height,
		MaxWords:       f.MaxWords,
	}
}

type pageData struct {
	Form          formValues
	BaseStopwords []string
	ImageURI      template.URL
	Filename      string
	Error         string
	Notice        string

	MinWidth, MaxWidth, WidthStep          int
	MinHeight, MaxHeight, HeightStep       int
	MinMaxWords, MaxMaxWords, MaxWordsStep int
}

func (h *WordCloudHandler) newPage(form formValues) pageData {
	return pageData{
		Form:          form,
		BaseStopwords: h.base.Sorted(),
		Filename:      render.Filename,
		MinWidth:      params.MinWidth,
		MaxWidth:      params.MaxWidth,
		WidthStep:     params.WidthStep,
		MinHeight:     params.MinHeight,
		MaxHeight:     params.MaxHeight,
		HeightStep:    params.HeightStep,
		MinMaxWords:   params.MinMaxWords,
		MaxMaxWords:   params.MaxMaxWords,
		MaxWordsStep:  params.MaxWordsStep,
	}
}

func defaultForm() formValues {
	req := generator.DefaultRequest()
	return formValues{Width: req.Width, Height: req.Height, MaxWords: req.MaxWords}
}

func (h *WordCloudHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, h.newPage(defaultForm()))
}

// Generate handles the page form: it validates the sidebar values, runs one
// generation and re-renders the page with the image or the error.
func (h *WordCloudHandler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	form, src, err := readForm(r)
	if err != nil {
		page := h.newPage(form)
		page.Error = err.Error()
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			page.Error = fmt.Sprintf("The uploaded file is larger than %d bytes", tooLarge.Limit)
			status = http.StatusRequestEntityTooLarge
		}
		h.renderPage(w, r, status, page)
		return
	}

	page := h.newPage(form)
	req := form.request()
	if err := validatePageRequest(req); err != nil {
		page.Error = err.Error()
		h.renderPage(w, r, http.StatusBadRequest, page)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res := h.generator.Generate(ctx, src, req)
	switch {
	case res.Skipped:
		page.Notice = noSourceNotice
	case res.Err != nil:
		page.Error = res.Err.Message()
	default:
		page.ImageURI = template.URL(render.DataURI(res.PNG))
	}
	h.renderPage(w, r, http.StatusOK, page)
}

// validatePageRequest bounds max_words like the page input does, so the
// unlimited value is only reachable through the JSON API.
func validatePageRequest(req generator.Request) error {
	err := req.Validate()
	if req.MaxWords == params.UnlimitedWords {
		err = errors.Join(err, &params.RangeError{
			Field: "max_words",
			Value: req.MaxWords,
			Min:   params.MinMaxWords,
			Max:   params.MaxMaxWords,
		})
	}
	return err
}

// readForm collects the sidebar values and the text source from a multipart
// or urlencoded body. The form is returned even on error so it can be echoed.
func readForm(r *http.Request) (formValues, generator.Source, error) {
	form := defaultForm()
	var src generator.Source

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return form, src, fmt.Errorf("failed to read form: %w", err)
		}
		if err := r.ParseForm(); err != nil {
			return form, src, fmt.Errorf("failed to read form: %w", err)
		}
	}

	form.Stopwords = r.PostFormValue("stopwords")
	form.Text = r.PostFormValue("text")
	src.Pasted = form.Text

	var errs []error
	for _, field := range []struct {
		name string
		dst  *int
	}{
		{"width", &form.Width},
		{"height", &form.Height},
		{"max_words", &form.MaxWords},
	} {
		if err := parseIntField(r.PostFormValue(field.name), field.name, field.dst); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return form, src, err
	}

	if r.MultipartForm != nil {
		file, header, err := r.FormFile("file")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return form, src, fmt.Errorf("failed to read file: %w", err)
		default:
			defer file.Close()
			content, err := io.ReadAll(file)
			if err != nil {
				return form, src, fmt.Errorf("failed to read file content: %w", err)
			}
			src.File = content
			src.HasFile = true
			form.FileName = header.Filename
		}
	}

	return form, src, nil
}

// parseIntField leaves dst untouched when raw is blank.
func parseIntField(raw, name string, dst *int) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s must be a whole number, got %q", name, raw)
	}
	*dst = v
	return nil
}

func (h *WordCloudHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, page pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

type apiRequest struct {
	Text      string `json:"text"`
	Width     *int   `json:"width"`
	Height    *int   `json:"height"`
	MaxWords  *int   `json:"max_words"`
	Stopwords string `json:"stopwords"`
}

// GenerateAPI renders a cloud from a JSON body and answers with the PNG as a download.
func (h *WordCloudHandler) GenerateAPI(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var body apiRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, fmt.Sprintf("Request body is larger than %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req := generator.DefaultRequest()
	req.ExtraStopwords = body.Stopwords
	if body.Width != nil {
		req.Width = *body.Width
	}
	if body.Height != nil {
		req.Height = *body.Height
	}
	if body.MaxWords != nil {
		req.MaxWords = *body.MaxWords
	}
	if err := req.Validate(); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res := h.generator.Generate(ctx, generator.Source{Pasted: body.Text}, req)
	switch {
	case res.Skipped:
		sendError(w, "Text is required", http.StatusBadRequest)
		return
	case res.Err != nil:
		status := http.StatusInternalServerError
		switch {
		case errors.Is(res.Err, engine.ErrNoWords):
			status = http.StatusUnprocessableEntity
		case errors.Is(res.Err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		}
		sendError(w, res.Err.Message(), status)
		return
	}

	w.Header().Set("Content-Type", render.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PNG)))
	w.WriteHeader(http.StatusOK)
	w.Write(res.PNG)
}

// Stopwords lists the built-in stoplist.
func (h *WordCloudHandler) Stopwords(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{
		"stopwords": h.base.Sorted(),
	})
}
