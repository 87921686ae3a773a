package clean

import "context"

// ConfirmRequest asks whether one directory may be deleted.
type ConfirmRequest struct {
	Path string
	Size int64
}

// Confirmer answers confirmation requests. Confirm blocks the calling
// goroutine until a decision is available; a terminal prompt and a GUI
// dialog both fit this contract.
type Confirmer interface {
	Confirm(ctx context.Context, req ConfirmRequest) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, req ConfirmRequest) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, req ConfirmRequest) (bool, error) {
	return f(ctx, req)
}
