package document

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"

	"cinema-ticketing/internal/pkg/config"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"
)

// QRGenerator encodes text into a PNG QR code. Failures yield nil, never an
// error: a ticket without a QR code is still a valid ticket.
type QRGenerator struct {
	sizePx int
	logger *slog.Logger
}

func NewQRGenerator(cfg config.Config, logger *slog.Logger) *QRGenerator {
	size := cfg.Document.QRSizePx
	if size <= 0 {
		size = 256
	}
	return &QRGenerator{sizePx: size, logger: logger}
}

func (g *QRGenerator) Generate(payload string) []byte {
	if payload == "" {
		g.logger.Warn("qr payload is empty")
		return nil
	}
	code, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		g.logger.Warn("failed to encode qr code", "error", err.Error())
		return nil
	}
	out, err := code.PNG(g.sizePx)
	if err != nil {
		g.logger.Warn("failed to render qr code", "error", err.Error())
		return nil
	}
	return out
}

const barcodeModuleWidthPx = 2

// BarcodeGenerator encodes an ASCII string as a Code 128 PNG without a
// human-readable caption.
type BarcodeGenerator struct {
	moduleHeightPx int
	quietZone      int // modules on each side
	logger         *slog.Logger
}

func NewBarcodeGenerator(cfg config.Config, logger *slog.Logger) *BarcodeGenerator {
	height := cfg.Document.BarcodeModuleHeight
	if height <= 0 {
		height = 80
	}
	quiet := cfg.Document.BarcodeQuietZone
	if quiet < 0 {
		quiet = 0
	}
	return &BarcodeGenerator{moduleHeightPx: height, quietZone: quiet, logger: logger}
}

func (g *BarcodeGenerator) Generate(payload string) []byte {
	if payload == "" {
		g.logger.Warn("barcode payload is empty")
		return nil
	}
	code, err := code128.Encode(payload)
	if err != nil {
		g.logger.Warn("failed to encode barcode", "payload", payload, "error", err.Error())
		return nil
	}

	barsWidth := code.Bounds().Dx() * barcodeModuleWidthPx
	scaled, err := barcode.Scale(code, barsWidth, g.moduleHeightPx)
	if err != nil {
		g.logger.Warn("failed to scale barcode", "error", err.Error())
		return nil
	}

	quietPx := g.quietZone * barcodeModuleWidthPx
	canvas := image.NewRGBA(image.Rect(0, 0, barsWidth+2*quietPx, g.moduleHeightPx))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(quietPx, 0, quietPx+barsWidth, g.moduleHeightPx), scaled, scaled.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		g.logger.Warn("failed to encode barcode png", "error", err.Error())
		return nil
	}
	return buf.Bytes()
}
