package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyLink       = "link"
	KeyLine       = "line"
	KeyPermalink  = "permalink"
	KeyDocuments  = "documents"
	KeyRewritten  = "rewritten"
	KeyBroken     = "broken"
	KeyPolicy     = "policy"
	KeyOutput     = "output"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Link(l string) slog.Attr         { return slog.String(KeyLink, l) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func Permalink(p string) slog.Attr    { return slog.String(KeyPermalink, p) }
func Documents(n int) slog.Attr       { return slog.Int(KeyDocuments, n) }
func Rewritten(n int) slog.Attr       { return slog.Int(KeyRewritten, n) }
func Broken(n int) slog.Attr          { return slog.Int(KeyBroken, n) }
func Policy(p string) slog.Attr       { return slog.String(KeyPolicy, p) }
func Output(dir string) slog.Attr     { return slog.String(KeyOutput, dir) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
