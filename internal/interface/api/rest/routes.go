package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// shares
	RouteShares     = RouteApiV1 + "/shares"
	RouteShare      = RouteShares + "/:code"
	RouteShareFiles = RouteShare + "/files"

	// blobs
	RouteFiles = RouteApiV1 + "/files"
	RouteFile  = RouteFiles + "/:key"

	// ops
	RouteCleanup = RouteApiV1 + "/maintenance/cleanup"
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
