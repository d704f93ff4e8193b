// Package integration contains end-to-end smoke tests for the forgeswarm
// CLI. Tests in this package build the real binary and exercise it as a
// subprocess: project scaffolding, version reporting, and the pre-flight
// failure paths of the run command. No oracle credentials or container
// runtime are required.
//
// Run with: go test ./integration/... -v -timeout 120s
package integration
