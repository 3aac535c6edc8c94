package executor

import "context"

// Executor runs external tools (ffmpeg, ffprobe, git) on behalf of the
// pipeline. Keeping it behind an interface lets tests substitute canned
// results for the tool invocations.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
