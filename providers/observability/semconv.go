package observability

// Attribute keys.
const (
	AttrError             = "error"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"

	// Response interpretation.
	AttrExtractSource         = "extract.source"
	AttrExtractTier           = "extract.tier"
	AttrExtractFields         = "extract.fields"
	AttrExtractRaw            = "extract.raw"
	AttrExtractAttempts       = "extract.attempts"
	AttrExtractResponse       = "extract.response"
	AttrExtractResponseLength = "extract.response.length"
	AttrCorrectionRule        = "extract.correction.rule"
	AttrCorrectionField       = "extract.correction.field"
	AttrCorrectionFrom        = "extract.correction.from"
	AttrCorrectionTo          = "extract.correction.to"
	AttrSchemaViolation       = "extract.schema.violation"
	AttrExtractNormalized     = "extract.normalized"

	// Vision model calls.
	AttrVisionProvider    = "vision.provider"
	AttrVisionModel       = "vision.model"
	AttrVisionEndpoint    = "vision.endpoint"
	AttrVisionImage       = "vision.image"
	AttrVisionMIMEType    = "vision.mime_type"
	AttrVisionImageBytes  = "vision.image.bytes"
	AttrVisionMaxTokens   = "vision.max_tokens" // #nosec G101 -- model tokens, not a credential
	AttrVisionTemperature = "vision.temperature"
	AttrVisionTokensIn    = "vision.tokens.prompt"     // #nosec G101 -- model tokens, not a credential
	AttrVisionTokensOut   = "vision.tokens.completion" // #nosec G101 -- model tokens, not a credential

	// HTTP.
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"

	// Batch runs.
	AttrBatchRunID       = "batch.run_id"
	AttrBatchDir         = "batch.dir"
	AttrBatchImages      = "batch.images"
	AttrBatchSucceeded   = "batch.succeeded"
	AttrBatchFailed      = "batch.failed"
	AttrBatchConcurrency = "batch.concurrency"
	AttrBatchRaw         = "batch.raw"
	AttrBatchTokens      = "batch.tokens" // #nosec G101 -- model tokens, not a credential
	AttrBatchCost        = "batch.cost"

	// Result stores.
	AttrStorePath    = "store.path"
	AttrStoreFormat  = "store.format"
	AttrStoreRecords = "store.records"
)

// Span names.
const (
	SpanExtract       = "extractor.extract"
	SpanVisionRequest = "vision.request"
	SpanBatchRun      = "batch.run"
	SpanBatchImage    = "batch.image"
	SpanStoreWrite    = "store.write"
)

// Event names.
const (
	EventVisionRequestStart = "vision.request.start"
	EventVisionRequestEnd   = "vision.request.end"
	EventTierFailed         = "extract.tier.failed"
	EventCorrection         = "extract.correction"
)

// Metric names.
const (
	MetricExtractCount       = "idx.extract.count"
	MetricExtractRawCount    = "idx.extract.raw.count"
	MetricCorrectionCount    = "idx.extract.correction.count"
	MetricSchemaViolations   = "idx.extract.schema.violations"
	MetricVisionRequestCount = "idx.vision.request.count"
	MetricVisionDuration     = "idx.vision.request.duration"
	MetricBatchImageFailures = "idx.batch.image.failures"
)
