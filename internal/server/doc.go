// Package server implements the MCP (Model Context Protocol) stdio server
// that exposes calibration as a set of tools.
//
// The server speaks JSON-RPC 2.0 over stdin/stdout, one message per line.
// Logging goes to stderr so stdout stays clean for the protocol.
//
// # Tools
//
//   - calibrate: run the calibration orchestrator over whatever inputs the
//     request carries (direct factor, person height, depth/point-cloud
//     data, or a reference object)
//   - point_cloud_build: back-project a depth-map JSON file into a colored
//     point cloud, optionally writing it as ASCII PLY
//   - point_cloud_export: point_cloud_build with a required PLY destination
//   - layout_parse: parse WALL/OBJECT layout text into walls and objects
//   - measure_body: scale pixel-space body baselines by a calibration
//     factor
//
// # Request Lifecycle
//
// Each tools/call is handled synchronously. All cross-request state lives
// in the image cache; calibration itself is a pure function of the
// request, so concurrent or successive requests do not interfere.
package server
