package models

type Variant string

const (
	Variant400 Variant = "400"
	Variant500 Variant = "500"
)

// Variants lists the label layouts rendered for every order, in response order.
var Variants = []Variant{Variant400, Variant500}

// Type is the label type reported to clients, e.g. "400ml".
func (v Variant) Type() string {
	return string(v) + "ml"
}

type RenderResult struct {
	Success      bool    `json:"success"`
	Variant      Variant `json:"variant"`
	ImagePath    string  `json:"image_path,omitempty"`
	PDFPath      string  `json:"pdf_path,omitempty"`
	PDFURL       string  `json:"pdf_url,omitempty"`
	Filename     string  `json:"filename,omitempty"`
	RemoteURL    string  `json:"remote_url,omitempty"`
	FontSize     int     `json:"font_size,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	PageWidthPt  float64 `json:"page_width_pt,omitempty"`
	PageHeightPt float64 `json:"page_height_pt,omitempty"`
	ErrorCode    string  `json:"error_code,omitempty"`
	Error        string  `json:"error,omitempty"`
}
