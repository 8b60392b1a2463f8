package output

import (
	"io"

	"github.com/dshills/driftgate/internal/drift"
	"github.com/dshills/driftgate/internal/github"
)

// AnnotationWriter emits one workflow command per issue, e.g.
// "::warning::staging_vs_production: missing env key REDIS_URL".
type AnnotationWriter struct{}

func (a *AnnotationWriter) Write(w io.Writer, report *drift.Report) error {
	ew := &errWriter{w: w}
	for _, p := range report.Response.Pairs {
		for _, iss := range p.Issues {
			cmd := github.CommandFor(iss.AnnotationLevel(p.Risk()))
			ew.println(github.FormatCommand(cmd, p.Name+": "+iss.Text()))
		}
	}
	return ew.err
}
