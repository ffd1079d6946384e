package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the package-wide tracer for pipeline spans. It resolves to a
// no-op implementation unless the host process installs a tracer provider.
var Tracer trace.Tracer = otel.Tracer("readmegen")
