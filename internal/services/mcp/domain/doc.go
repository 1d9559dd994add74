// Package domain defines the MCP tools and resources that expose the
// portfolio, the resume and the room registry to assistants.
//
// Handlers here know nothing about transport; the service package binds them
// to an MCP server.
package domain
