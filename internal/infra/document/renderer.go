package document

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"cinema-ticketing/internal/domain/session"
	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/pkg/config"
	"cinema-ticketing/internal/pkg/errs"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres. A6 landscape, origin top-left.
const (
	pageWidth  = 148.0
	pageHeight = 105.0

	margin     = 8.0
	lineHeight = 5.0

	titleBaseline = margin + lineHeight
	bodyBaseline  = titleBaseline + lineHeight*1.5

	qrSize = 25.0
	qrX    = pageWidth - margin - qrSize
	qrY    = bodyBaseline - lineHeight

	barcodeWidth  = 50.0
	barcodeHeight = 15.0
	barcodeX      = pageWidth - margin - barcodeWidth
	barcodeY      = qrY + qrSize + 5.0

	footerBaseline = pageHeight - margin/2

	titleFontSize  = 14
	bodyFontSize   = 10
	footerFontSize = 7

	fontFamily     = "DejaVuSans"
	fallbackFamily = "Helvetica"
)

var ErrNotRenderable = errs.New("ticket cannot be rendered")

type CodeGenerator interface {
	Generate(payload string) []byte
}

// Renderer lays out a ticket as a single-page PDF. The TTF font is read
// once per renderer and registered on every document from memory.
type Renderer struct {
	fontPath string
	qr       CodeGenerator
	barcode  CodeGenerator
	logger   *slog.Logger

	fontOnce  sync.Once
	fontBytes []byte
	fontErr   error
}

func NewRenderer(cfg config.Config, qr *QRGenerator, barcode *BarcodeGenerator, logger *slog.Logger) *Renderer {
	return newRenderer(cfg.Document.FontPath, qr, barcode, logger)
}

func newRenderer(fontPath string, qr, barcode CodeGenerator, logger *slog.Logger) *Renderer {
	return &Renderer{
		fontPath: fontPath,
		qr:       qr,
		barcode:  barcode,
		logger:   logger,
	}
}

// loadFont reads the TTF once and checks it registers on a scratch document.
// A bad font is reported here, once, and every render then uses the
// fallback.
func (r *Renderer) loadFont() ([]byte, error) {
	r.fontOnce.Do(func() {
		r.fontBytes, r.fontErr = os.ReadFile(r.fontPath)
		if r.fontErr == nil {
			r.fontErr = registerUTF8Font(fpdf.New("P", "mm", "A4", ""), r.fontBytes)
		}
		if r.fontErr != nil {
			r.fontBytes = nil
			r.logger.Warn("ticket font unavailable, using core font",
				"font_path", r.fontPath,
				"error", r.fontErr.Error())
		}
	})
	return r.fontBytes, r.fontErr
}

// Render produces the document bytes. Code images that cannot be produced
// or embedded are left out; only a failure of the document itself is
// returned.
func (r *Renderer) Render(ctx context.Context, t *ticket.Ticket) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t == nil || !t.IsPersisted() || t.Customer() == nil || t.Session() == nil || t.Seat() == nil {
		return nil, ErrNotRenderable
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pageHeight, Ht: pageWidth},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(fmt.Sprintf("Ticket #%d", t.ID()), true)
	pdf.AddPage()

	family, tr := r.setupFont(pdf, t.ID())

	pdf.SetFont(family, "", titleFontSize)
	title := tr("Cinema Ticket")
	pdf.Text((pageWidth-pdf.GetStringWidth(title))/2, titleBaseline, title)

	pdf.SetFont(family, "", bodyFontSize)
	lines := []string{
		"Film: " + t.Session().FilmTitle(),
		"Session: " + t.SessionTime(),
		"Duration: " + t.Session().FormattedDuration(),
		fmt.Sprintf("Seat: %d", t.Seat().Number()),
		"Customer: " + t.Customer().FullName(),
	}
	if email := t.RecipientEmail(); !email.IsZero() {
		lines = append(lines, "Email: "+email.Value())
	}
	y := bodyBaseline
	for _, line := range lines {
		pdf.Text(margin, y, tr(line))
		y += lineHeight
	}

	r.placeImage(pdf, t.ID(), "qr", r.qr.Generate(t.QRPayload()), qrX, qrY, qrSize, qrSize)
	r.placeImage(pdf, t.ID(), "barcode", r.barcode.Generate(t.BarcodePayload()), barcodeX, barcodeY, barcodeWidth, barcodeHeight)

	pdf.SetFont(family, "", footerFontSize)
	footer := tr(fmt.Sprintf("Ticket #%d | Purchased: %s", t.ID(), t.PurchasedAt().Format(session.StartLayout)))
	pdf.Text(pageWidth-margin-pdf.GetStringWidth(footer), footerBaseline, footer)
	pdf.Text(margin, footerBaseline, tr("Enjoy the show!"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errs.Wrapf(err, "failed to render ticket %d", t.ID())
	}
	return buf.Bytes(), nil
}

// setupFont registers the TTF font, or falls back to a core font with a
// cp1252 translator. Non-Latin glyphs are lost in the fallback.
func (r *Renderer) setupFont(pdf *fpdf.Fpdf, ticketID int64) (string, func(string) string) {
	fallback := func() (string, func(string) string) {
		pdf.ClearError()
		return fallbackFamily, pdf.UnicodeTranslatorFromDescriptor("")
	}

	fontBytes, err := r.loadFont()
	if err != nil {
		return fallback()
	}
	if err := registerUTF8Font(pdf, fontBytes); err != nil {
		r.logger.Warn("font registration failed, using core font",
			"ticket_id", ticketID,
			"font_path", r.fontPath,
			"error", err.Error())
		return fallback()
	}
	return fontFamily, func(s string) string { return s }
}

// registerUTF8Font adds the font and selects it. fpdf skips a font it
// cannot parse without flagging an error, so selection is the real check.
func registerUTF8Font(pdf *fpdf.Fpdf, fontBytes []byte) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errs.Newf("malformed font: %v", rec)
		}
	}()
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontBytes)
	if err := pdf.Error(); err != nil {
		return err
	}
	pdf.SetFont(fontFamily, "", bodyFontSize)
	return pdf.Error()
}

func (r *Renderer) placeImage(pdf *fpdf.Fpdf, ticketID int64, name string, img []byte, x, y, w, h float64) {
	if len(img) == 0 {
		r.logger.Warn("code image unavailable, region omitted", "ticket_id", ticketID, "image", name)
		return
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	if !pdf.Ok() {
		r.logger.Warn("failed to embed code image, region omitted",
			"ticket_id", ticketID,
			"image", name,
			"error", pdf.Error().Error())
		pdf.ClearError()
		return
	}
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}
