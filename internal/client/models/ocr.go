package models

// OCRResult is an ephemeral, confidence-scored guess of receipt fields
// extracted from an uploaded image. Every field is optional and untrusted
// until the user confirms it; the result itself is never persisted.
type OCRResult struct {
	Date            *string  `json:"date,omitempty"`
	AmountPaid      *float64 `json:"amountPaid,omitempty"`
	VolumePurchased *float64 `json:"volumePurchased,omitempty"`
	AdvertisedPrice *float64 `json:"advertisedPrice,omitempty"`
	Odometer        *int     `json:"odometer,omitempty"`
	Confidence      float64  `json:"confidence"`
	RawText         string   `json:"rawText,omitempty"`
	ProcessingTime  *float64 `json:"processingTime,omitempty"`
}

// UploadResponse is returned by the receipt-image OCR endpoint.
type UploadResponse struct {
	Success   bool       `json:"success"`
	OCRResult *OCRResult `json:"ocrResult,omitempty"`
	Error     string     `json:"error,omitempty"`
	ImageURL  string     `json:"imageUrl,omitempty"`
}
