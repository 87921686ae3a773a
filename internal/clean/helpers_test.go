package clean

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/dirclean/internal/scan"
)

// writeFiles creates files of the given sizes relative to root.
func writeFiles(t *testing.T, root string, files map[string]int) {
	t.Helper()
	for rel, size := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, make([]byte, size), 0o644))
	}
}

func candidate(path string, cat scan.Category) scan.Candidate {
	return scan.Candidate{Path: path, Size: -1, Category: cat}
}

// fakeTrash records Put calls and moves nothing unless dir is set.
type fakeTrash struct {
	mu   sync.Mutex
	dir  string
	puts []string
	err  error
}

func (f *fakeTrash) Put(src string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, src)
	if f.err != nil {
		return f.err
	}
	return os.Rename(src, filepath.Join(f.dir, filepath.Base(src)))
}

func newTestDeleter(trash TrashCapability, confirm Confirmer) *Deleter {
	return NewDeleter(nil, trash, confirm, NewGuard(nil))
}

// prompt is a pending confirmation handed to whoever drains a
// channelConfirmer.
type prompt struct {
	ConfirmRequest
	reply chan<- bool
}

func (p prompt) answer(yes bool) {
	p.reply <- yes
}

// channelConfirmer publishes each Confirm call as a prompt and waits for
// its answer.
type channelConfirmer struct {
	prompts chan prompt
}

func newChannelConfirmer() *channelConfirmer {
	return &channelConfirmer{prompts: make(chan prompt)}
}

func (c *channelConfirmer) Confirm(ctx context.Context, req ConfirmRequest) (bool, error) {
	reply := make(chan bool, 1)

	select {
	case c.prompts <- prompt{ConfirmRequest: req, reply: reply}:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case yes := <-reply:
		return yes, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
