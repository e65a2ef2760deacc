package service

import (
	"fmt"
	"strings"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/signintech/gopdf"
)

const (
	paperFontName  = "paper"
	paperLineWidth = 540.0
	paperPageBreak = 780.0
	// Fixed header line, matching the printed paper layout.
	paperBoilerplate = "Time: 60 Mins | Total Marks: 100"
)

// PaperService renders an ordered question list into a printable PDF exam
// paper.
type PaperService struct {
	fontPath string
	log      zerolog.Logger
}

// NewPaperService creates a new PaperService.
func NewPaperService(fontPath string, log zerolog.Logger) *PaperService {
	return &PaperService{
		fontPath: fontPath,
		log:      log.With().Str("component", "paper_service").Logger(),
	}
}

// Render produces the paper: title line, boilerplate, then each question in
// order with its 1-based index, text and marks; MCQs get their four options
// labeled A-D on one line. Text is sanitized to a renderable subset first.
func (s *PaperService) Render(questions []model.Question, title string) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.SetMargins(28, 30, 28, 30)
	pdf.AddPage()

	if err := pdf.AddTTFFont(paperFontName, s.fontPath); err != nil {
		return nil, fmt.Errorf("load paper font: %w", err)
	}

	// Header.
	if err := pdf.SetFont(paperFontName, "", 16); err != nil {
		return nil, fmt.Errorf("set font: %w", err)
	}
	centered := gopdf.CellOption{Align: gopdf.Center}
	if err := pdf.CellWithOption(&gopdf.Rect{W: paperLineWidth, H: 20}, Sanitize(title), centered); err != nil {
		return nil, fmt.Errorf("render title: %w", err)
	}
	pdf.Br(24)

	_ = pdf.SetFont(paperFontName, "", 10)
	_ = pdf.CellWithOption(&gopdf.Rect{W: paperLineWidth, H: 14}, paperBoilerplate, centered)
	pdf.Br(28)

	// Questions.
	for i, q := range questions {
		if pdf.GetY() > paperPageBreak {
			pdf.AddPage()
		}

		_ = pdf.SetFont(paperFontName, "", 11)
		line := fmt.Sprintf("Q%d. %s   [%d Marks]", i+1, Sanitize(q.Text), q.Marks)
		if err := pdf.MultiCell(&gopdf.Rect{W: paperLineWidth, H: 16}, line); err != nil {
			return nil, fmt.Errorf("render question %d: %w", i+1, err)
		}

		if q.Type == model.QuestionTypeMCQ && len(q.Options) == model.MCQOptionCount {
			opts := fmt.Sprintf("    (A) %s   (B) %s   (C) %s   (D) %s",
				Sanitize(q.Options[0]), Sanitize(q.Options[1]),
				Sanitize(q.Options[2]), Sanitize(q.Options[3]))
			if err := pdf.MultiCell(&gopdf.Rect{W: paperLineWidth, H: 16}, opts); err != nil {
				return nil, fmt.Errorf("render options %d: %w", i+1, err)
			}
		}

		pdf.Br(10)
	}

	return pdf.GetBytesPdf(), nil
}

// Sanitize replaces characters outside the renderable latin-1 subset with a
// placeholder instead of failing the whole paper.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(' ')
		case r >= 32 && r <= 126:
			b.WriteRune(r)
		case r >= 160 && r <= 255:
			b.WriteRune(r)
		default:
			b.WriteRune('?')
		}
	}
	return b.String()
}
