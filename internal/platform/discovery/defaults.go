// Package discovery centralizes in-network address conventions.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceConsole is the console HTTP service identity.
	ServiceConsole = "console"
	// ServiceJaeger is the trace collector UI identity.
	ServiceJaeger = "jaeger"
)

var grpcPorts = map[string]int{
	ServiceConsole: 8092,
}

var httpPorts = map[string]int{
	ServiceConsole: 8090,
	ServiceJaeger:  16686,
}

// DefaultGRPCAddr returns the canonical in-network gRPC address for a service.
func DefaultGRPCAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), grpcPorts)
}

// DefaultHTTPAddr returns the canonical in-network HTTP address for a service.
func DefaultHTTPAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), httpPorts)
}

// OrDefaultGRPCAddr returns value when set, otherwise the service convention.
func OrDefaultGRPCAddr(value, service string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}

func defaultAddr(service string, ports map[string]int) string {
	port, ok := ports[service]
	if !ok || port <= 0 {
		return ""
	}
	return service + ":" + strconv.Itoa(port)
}
