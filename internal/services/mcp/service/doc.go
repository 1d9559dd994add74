// Package service wires MCP transports to the portfolio domain handlers.
//
// It knows how to run MCP over stdio or streamable HTTP and leaves tool
// meaning to the domain package.
package service
