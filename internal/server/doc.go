// Package server exposes the calculators over HTTP.
//
// Endpoints:
//
//	GET /v1/add?x=..&y=..[&algo=..]   sum
//	GET /v1/sub?x=..&y=..[&algo=..]   difference (422 when negative)
//	GET /v1/mul?x=..&y=..[&algo=..]   product
//	GET /health                       liveness and memory statistics
//	GET /metrics                      Prometheus exposition
//
// Every request passes through the security middleware (headers, CORS,
// rate limiting) and the metrics middleware.
package server
