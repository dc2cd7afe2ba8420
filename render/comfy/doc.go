// Package comfy implements the primary generation backend against a
// ComfyUI-style engine: multipart asset upload, queue submission via
// POST /prompt, completion polling via GET /history/{id}, artifact
// download via GET /view, plus a single-shot fallback retry for the
// known face-detection failure mode.
package comfy
