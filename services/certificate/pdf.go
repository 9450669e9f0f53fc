package certificate

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jung-kurt/gofpdf"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Canvas size: A4 landscape at 150 dpi.
const (
	certWidth  = 1754
	certHeight = 1240
	certMargin = 60
)

// PDFRenderer draws certificate fields onto a template image and embeds the
// result into a single-page landscape PDF. It is stateless per call.
type PDFRenderer struct {
	template image.Image // Optional background; plain background when nil
	font     *truetype.Font
}

// NewPDFRenderer loads the optional PNG template and TTF font. An empty font
// path falls back to the bundled Go Regular face so rendering works without
// any assets on disk.
func NewPDFRenderer(templatePath, fontPath string) (*PDFRenderer, error) {
	fontBytes := goregular.TTF
	if fontPath != "" {
		b, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read certificate font: %w", err)
		}
		fontBytes = b
	}
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate font: %w", err)
	}

	var template image.Image
	if templatePath != "" {
		im, err := gg.LoadImage(templatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load certificate template: %w", err)
		}
		template = im
	}

	return &PDFRenderer{template: template, font: f}, nil
}

// GenerateCertificatePDF renders the certificate raster and wraps it in a
// PDF document.
func (r *PDFRenderer) GenerateCertificatePDF(data CertificateTemplateData) ([]byte, error) {
	dc := gg.NewContext(certWidth, certHeight)

	if r.template != nil {
		scaled := image.NewRGBA(image.Rect(0, 0, certWidth, certHeight))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), r.template, r.template.Bounds(), xdraw.Over, nil)
		dc.DrawImage(scaled, 0, 0)
	} else {
		dc.SetRGB(1, 1, 1)
		dc.Clear()
		dc.SetRGB255(0x00, 0x00, 0x4D)
		dc.SetLineWidth(6)
		dc.DrawRectangle(certMargin/2, certMargin/2, certWidth-certMargin, certHeight-certMargin)
		dc.Stroke()
	}

	dc.SetRGB255(0x22, 0x22, 0x22)

	// Certificate number, top-right
	dc.SetFontFace(r.face(28))
	dc.DrawStringAnchored(data.CertificateNumber, certWidth-certMargin-20, certMargin+20, 1, 0.5)

	// Heading and student name, centered
	dc.SetFontFace(r.face(64))
	dc.DrawStringAnchored("Certificate of Completion", certWidth/2, 280, 0.5, 0.5)

	dc.SetFontFace(r.face(36))
	dc.DrawStringAnchored("This is to certify that", certWidth/2, 420, 0.5, 0.5)

	dc.SetFontFace(r.face(88))
	dc.DrawStringAnchored(data.StudentName, certWidth/2, 540, 0.5, 0.5)

	dc.SetFontFace(r.face(36))
	dc.DrawStringAnchored("has successfully completed the course", certWidth/2, 650, 0.5, 0.5)

	dc.SetFontFace(r.face(56))
	dc.DrawStringAnchored(data.CourseTitle, certWidth/2, 750, 0.5, 0.5)

	dc.SetFontFace(r.face(32))
	summary := fmt.Sprintf("%d of %d lessons completed", data.CompletedLessons, data.TotalLessons)
	if data.AverageScore > 0 {
		summary = fmt.Sprintf("%s  ·  average score %d%%", summary, data.AverageScore)
	}
	dc.DrawStringAnchored(summary, certWidth/2, 850, 0.5, 0.5)
	dc.DrawStringAnchored("Completed on "+data.CompletionDate, certWidth/2, 910, 0.5, 0.5)

	// Instructor, bottom-left
	if data.InstructorName != "" {
		dc.SetFontFace(r.face(32))
		dc.DrawString("Instructor: "+data.InstructorName, certMargin+20, certHeight-certMargin-40)
	}

	// Issue date, bottom-right
	dc.SetFontFace(r.face(28))
	issued := "Issued " + data.IssuedDate.Format("January 2, 2006")
	dc.DrawStringAnchored(issued, certWidth-certMargin-20, certHeight-certMargin-40, 1, 0.5)

	var png bytes.Buffer
	if err := dc.EncodePNG(&png); err != nil {
		return nil, fmt.Errorf("failed to encode certificate image: %w", err)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("certificate", opts, &png)
	pdf.ImageOptions("certificate", 0, 0, 297, 210, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to build certificate PDF: %w", err)
	}
	return out.Bytes(), nil
}

func (r *PDFRenderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: size})
}
