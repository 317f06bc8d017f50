//go:build cmdlogtrace

package codec

const traceRecords = true
