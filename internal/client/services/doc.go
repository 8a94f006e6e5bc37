// Package services contains the application services of the fuel tracker
// client: receipt reconciliation (merging OCR extractions or user edits
// into minimal validated payloads), vehicle rules, the derived-statistics
// engine, and receipt export. Services hold no state beyond their API
// client; everything derived is recomputed from inputs on every call.
package services
