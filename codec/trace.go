//go:build !cmdlogtrace

package codec

// traceRecords makes Encode log Describe output, enable it with -tags cmdlogtrace
const traceRecords = false
