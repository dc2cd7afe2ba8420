// Package runpod implements the serverless fallback backend. It reuses
// the same graph preparation as the primary engine but speaks a
// different wire protocol: reference and keypoint images travel inline
// as base64 data URLs in the run payload, completion is polled by job
// id against a fixed terminal status set, and the output image comes
// back base64-encoded instead of through an asset endpoint.
package runpod
