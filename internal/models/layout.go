package models

type LayoutInfo struct {
	Variant Variant   `json:"variant"`
	Type    string    `json:"type"`
	Asset   string    `json:"asset"`
	Corners [4][2]int `json:"corners"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
}
