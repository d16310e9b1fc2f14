package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// OCRBackend selects which upstream line source produced a scan's text.
type OCRBackend string

const (
	// OCRBackendTesseract rasterizes with pdftoppm and recognizes with tesseract.
	OCRBackendTesseract OCRBackend = "tesseract"
	// OCRBackendPDFText reads the embedded text layer of born-digital PDFs.
	OCRBackendPDFText OCRBackend = "pdftext"
)

// ValidOCRBackends enumerates the selectable backends.
var ValidOCRBackends = map[OCRBackend]bool{
	OCRBackendTesseract: true,
	OCRBackendPDFText:   true,
}

// ScanStatus represents the lifecycle of a scan.
type ScanStatus string

const (
	ScanStatusPending   ScanStatus = "pending"
	ScanStatusExtracted ScanStatus = "extracted"
	ScanStatusFailed    ScanStatus = "failed"
)
