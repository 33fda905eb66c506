/*
Package observability exports run metrics in Prometheus format.

Metrics implements ports.RunRecorder, so it can be handed to the batch runner and
to the comparison assembler. The collected series can be served over HTTP or
written to a node_exporter textfile after a batch finishes.
*/
package observability
