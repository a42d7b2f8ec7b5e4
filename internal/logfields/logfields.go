package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyRepo       = "repository"
	KeyPath       = "path"
	KeyRemote     = "remote"
	KeyURL        = "url"
	KeyBackend    = "backend"
	KeyTagCount   = "tag_count"
	KeyRepoCount  = "repositories"
	KeyFailed     = "failed"
	KeyEntries    = "entries"
	KeyAttempt    = "attempt"
	KeyCategory   = "category"
	KeyCommand    = "command"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Repository(r string) slog.Attr   { return slog.String(KeyRepo, r) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Remote(r string) slog.Attr       { return slog.String(KeyRemote, r) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Backend(b string) slog.Attr      { return slog.String(KeyBackend, b) }
func TagCount(n int) slog.Attr        { return slog.Int(KeyTagCount, n) }
func RepoCount(n int) slog.Attr       { return slog.Int(KeyRepoCount, n) }
func Failed(n int) slog.Attr          { return slog.Int(KeyFailed, n) }
func Entries(n int) slog.Attr         { return slog.Int(KeyEntries, n) }
func Attempt(n int) slog.Attr         { return slog.Int(KeyAttempt, n) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
