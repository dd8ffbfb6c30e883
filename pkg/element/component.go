package element

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Component adapts desc into a templ.Component so it can be embedded in templ
// views or written by any handler that renders templ components.
func (r *Renderer) Component(desc Description) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return r.Dispatch(w, desc)
	})
}

// Fragment renders descs in order as one templ.Component. Rendering stops at
// the first write error or when ctx is cancelled between descriptions.
func (r *Renderer) Fragment(descs ...Description) templ.Component {
	list := append([]Description(nil), descs...)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, desc := range list {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.Dispatch(w, desc); err != nil {
				return err
			}
		}
		return nil
	})
}
