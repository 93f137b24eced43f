// Package api is the HTTP surface of lingo serve: merged views, single nodes,
// translated strings and health probes.
package api
