// Package documents holds the enterprise document catalogue shown by the
// upload tool and validates incoming uploads. Uploaded content is never
// analysed or kept.
package documents

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxUploadSize caps a single uploaded file.
const MaxUploadSize = 25 << 20

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrEmptyFile       = errors.New("empty file")
	ErrUnknownCategory = errors.New("unknown document category")
)

var AcceptedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".dcm", ".dicom"}

type DocumentType struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Examples []string `json:"examples"`
}

var documentTypes = []DocumentType{
	{
		ID:   "contracts",
		Name: "Contracts & Agreements",
		Examples: []string{
			"Master Service Agreements (MSA)",
			"Non-Disclosure Agreements (NDA)",
			"Vendor Contracts",
			"Employment Agreements",
		},
	},
	{
		ID:   "financial-reports",
		Name: "Financial Reports",
		Examples: []string{
			"Balance Sheets",
			"Profit & Loss Statements",
			"Annual Reports",
			"Expense Reports",
		},
	},
	{
		ID:   "compliance-docs",
		Name: "Compliance & Regulatory",
		Examples: []string{
			"ISO Certifications",
			"GDPR Compliance Documents",
			"Audit Reports",
			"Risk Assessments",
		},
	},
	{
		ID:   "project-docs",
		Name: "Project Documentation",
		Examples: []string{
			"Project Plans",
			"Technical Specifications",
			"Meeting Minutes",
			"Status Reports",
		},
	},
}

// Catalog is the render payload of the upload tool.
type Catalog struct {
	DocumentTypes      []DocumentType `json:"documentTypes"`
	AcceptedExtensions []string       `json:"acceptedExtensions"`
	MaxUploadSize      int64          `json:"maxUploadSize"`
}

func NewCatalog() Catalog {
	types := make([]DocumentType, len(documentTypes))
	for i, dt := range documentTypes {
		dt.Examples = slices.Clone(dt.Examples)
		types[i] = dt
	}
	return Catalog{
		DocumentTypes:      types,
		AcceptedExtensions: slices.Clone(AcceptedExtensions),
		MaxUploadSize:      MaxUploadSize,
	}
}

// Upload describes one received file.
type Upload struct {
	Filename string
	Size     int64
	Category string
}

// Receipt is returned for every accepted upload.
type Receipt struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Extension  string `json:"extension"`
	Size       int64  `json:"size"`
	Category   string `json:"category,omitempty"`
	ReceivedAt string `json:"receivedAt"`
	Status     string `json:"status"`
}

// Accept checks an upload against the catalogue rules. Category is optional
// but must name a known document type when set.
func Accept(u Upload, now time.Time) (*Receipt, error) {
	name := filepath.Base(strings.TrimSpace(u.Filename))
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(AcceptedExtensions, ext) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
	}
	if u.Size <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyFile, name)
	}
	if u.Size > MaxUploadSize {
		return nil, fmt.Errorf("%w: %q is %d bytes, limit is %d", ErrTooLarge, name, u.Size, MaxUploadSize)
	}
	if u.Category != "" && !slices.ContainsFunc(documentTypes, func(dt DocumentType) bool { return dt.ID == u.Category }) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, u.Category)
	}

	return &Receipt{
		ID:         uuid.NewString(),
		Filename:   name,
		Extension:  ext,
		Size:       u.Size,
		Category:   u.Category,
		ReceivedAt: now.UTC().Format(time.RFC3339),
		Status:     "received",
	}, nil
}
