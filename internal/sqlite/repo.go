package sqlite

import (
	"context"
	"strings"
)

// repo is embedded by every repository. Reads and writes go through the
// transaction carried by ctx when there is one.
type repo struct {
	exec    *Executor
	backend *Backend
}

func newRepo(exec *Executor) repo {
	return repo{exec: exec, backend: exec.backend}
}

func (r repo) querier(ctx context.Context) (Querier, error) {
	return r.exec.Querier(ctx)
}

// likePattern wraps s for a case-insensitive substring match with
// ESCAPE '\'.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
